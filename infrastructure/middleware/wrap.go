package middleware

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/lakeproc/agent-gcp/domain/agent"
	"github.com/lakeproc/agent-gcp/domain/middleware"
	"github.com/lakeproc/agent-gcp/domain/tool"
)

// wrappedTool routes Execute through a middleware chain while delegating
// everything else to the underlying tool.
type wrappedTool struct {
	tool.Tool
	handler middleware.Handler
	state   agent.State
}

// WrapTool returns a tool whose Execute runs through the given middleware.
// Each invocation gets a fresh call ID.
func WrapTool(t tool.Tool, middlewares ...middleware.Middleware) tool.Tool {
	return WrapToolInState(t, agent.StateAct, middlewares...)
}

// WrapToolInState is WrapTool with an explicit agent state recorded on the
// execution context.
func WrapToolInState(t tool.Tool, state agent.State, middlewares ...middleware.Middleware) tool.Tool {
	handler := middleware.Chain(middlewares...)(func(ctx context.Context, execCtx *middleware.ExecutionContext) (tool.Result, error) {
		return execCtx.Tool.Execute(ctx, execCtx.Input)
	})
	return &wrappedTool{
		Tool:    t,
		handler: handler,
		state:   state,
	}
}

// Execute runs the tool through the middleware chain.
func (w *wrappedTool) Execute(ctx context.Context, input json.RawMessage) (tool.Result, error) {
	execCtx := &middleware.ExecutionContext{
		CallID:       uuid.NewString(),
		CurrentState: w.state,
		Tool:         w.Tool,
		Input:        input,
	}
	return w.handler(ctx, execCtx)
}
