package middleware

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/lakeproc/agent-gcp/domain/agent"
	"github.com/lakeproc/agent-gcp/domain/tool"
)

func newTestContext(t *testing.T) *ExecutionContext {
	t.Helper()

	tl := tool.NewBuilder("noop").
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			return tool.Result{}, nil
		}).
		MustBuild()

	return &ExecutionContext{
		CallID:       "call-1",
		CurrentState: agent.StateAct,
		Tool:         tl,
	}
}

func TestChainOrder(t *testing.T) {
	t.Parallel()

	var order []string
	mw := func(name string) Middleware {
		return func(next Handler) Handler {
			return func(ctx context.Context, execCtx *ExecutionContext) (tool.Result, error) {
				order = append(order, name+"-before")
				res, err := next(ctx, execCtx)
				order = append(order, name+"-after")
				return res, err
			}
		}
	}

	final := func(ctx context.Context, execCtx *ExecutionContext) (tool.Result, error) {
		order = append(order, "handler")
		return tool.Result{}, nil
	}

	chained := Chain(mw("a"), mw("b"))(final)
	if _, err := chained(context.Background(), newTestContext(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"a-before", "b-before", "handler", "b-after", "a-after"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %s, want %s", i, order[i], want[i])
		}
	}
}

func TestNoopPassesThrough(t *testing.T) {
	t.Parallel()

	called := false
	final := func(ctx context.Context, execCtx *ExecutionContext) (tool.Result, error) {
		called = true
		return tool.NewResult(json.RawMessage(`{}`)), nil
	}

	res, err := Noop()(final)(context.Background(), newTestContext(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("final handler was not called")
	}
	if res.OutputString() != `{}` {
		t.Errorf("Output = %s", res.OutputString())
	}
}
