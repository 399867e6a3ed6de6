// Package middleware provides composable middleware for tool execution.
package middleware

import (
	"context"
	"encoding/json"

	"github.com/lakeproc/agent-gcp/domain/agent"
	"github.com/lakeproc/agent-gcp/domain/tool"
)

// ExecutionContext contains all information needed for middleware decisions.
type ExecutionContext struct {
	// CallID is the unique identifier for this invocation.
	CallID string
	// CurrentState is the current state of the agent.
	CurrentState agent.State
	// Tool is the tool being executed.
	Tool tool.Tool
	// Input is the JSON input for the tool.
	Input json.RawMessage
	// Reason is the caller's reason for invoking this tool.
	Reason string
}

// Handler executes a tool and returns its result.
type Handler func(ctx context.Context, execCtx *ExecutionContext) (tool.Result, error)

// Middleware wraps a Handler with additional behavior. Middleware can run
// code before or after the next handler, short-circuit by not calling next,
// or transform results and errors.
type Middleware func(next Handler) Handler

// Chain composes multiple middleware into a single middleware.
// Chain(A, B, C) produces: A -> B -> C -> handler.
func Chain(middlewares ...Middleware) Middleware {
	return func(final Handler) Handler {
		handler := final
		for i := len(middlewares) - 1; i >= 0; i-- {
			handler = middlewares[i](handler)
		}
		return handler
	}
}

// Noop returns a middleware that just passes through.
func Noop() Middleware {
	return func(next Handler) Handler {
		return next
	}
}
