// Package middleware provides cross-cutting middleware for tool execution.
package middleware

import (
	"context"
	"time"

	"github.com/lakeproc/agent-gcp/domain/middleware"
	"github.com/lakeproc/agent-gcp/domain/tool"
	"github.com/lakeproc/agent-gcp/infrastructure/logging"
)

// LoggingConfig configures the logging middleware.
type LoggingConfig struct {
	// LogInput logs the tool input (may contain sensitive data).
	LogInput bool
	// LogOutput logs the tool output (may be large).
	LogOutput bool
}

// Logging returns middleware that logs tool execution.
func Logging(cfg LoggingConfig) middleware.Middleware {
	return func(next middleware.Handler) middleware.Handler {
		return func(ctx context.Context, execCtx *middleware.ExecutionContext) (tool.Result, error) {
			start := time.Now()

			entry := logging.Info().
				Add(logging.CallID(execCtx.CallID)).
				Add(logging.State(execCtx.CurrentState)).
				Add(logging.ToolName(execCtx.Tool.Name()))

			if cfg.LogInput && len(execCtx.Input) > 0 {
				entry = entry.Add(logging.Str("input", string(execCtx.Input)))
			}

			entry.Msg("executing tool")

			result, err := next(ctx, execCtx)
			duration := time.Since(start)

			if err != nil {
				logging.Error().
					Add(logging.CallID(execCtx.CallID)).
					Add(logging.ToolName(execCtx.Tool.Name())).
					Add(logging.ErrorField(err)).
					Add(logging.Duration(duration)).
					Msg("tool execution failed")
			} else {
				logEntry := logging.Info().
					Add(logging.CallID(execCtx.CallID)).
					Add(logging.ToolName(execCtx.Tool.Name())).
					Add(logging.Duration(duration)).
					Add(logging.Cached(result.Cached))

				if cfg.LogOutput && len(result.Output) > 0 {
					output := string(result.Output)
					if len(output) > 500 {
						output = output[:500] + "..."
					}
					logEntry = logEntry.Add(logging.Str("output", output))
				}

				logEntry.Msg("tool executed")
			}

			return result, err
		}
	}
}
