package memory

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/lakeproc/agent-gcp/domain/tool"
)

func newTool(t *testing.T, name string) tool.Tool {
	t.Helper()

	return tool.NewBuilder(name).
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			return tool.Result{Output: json.RawMessage(`{}`)}, nil
		}).
		MustBuild()
}

func TestRegisterAndGet(t *testing.T) {
	t.Parallel()

	reg := NewToolRegistry()
	if err := reg.Register(newTool(t, "dataplex_get_lake")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	got, ok := reg.Get("dataplex_get_lake")
	if !ok {
		t.Fatal("Get() did not find registered tool")
	}
	if got.Name() != "dataplex_get_lake" {
		t.Errorf("Name() = %q", got.Name())
	}
}

func TestRegisterDuplicate(t *testing.T) {
	t.Parallel()

	reg := NewToolRegistry()
	if err := reg.Register(newTool(t, "dataproc_get_job")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := reg.Register(newTool(t, "dataproc_get_job")); !errors.Is(err, tool.ErrToolExists) {
		t.Errorf("Register() duplicate error = %v, want ErrToolExists", err)
	}
}

func TestListAndNames(t *testing.T) {
	t.Parallel()

	reg := NewToolRegistry()
	reg.Register(newTool(t, "a"))
	reg.Register(newTool(t, "b"))

	if len(reg.List()) != 2 {
		t.Errorf("List() returned %d tools, want 2", len(reg.List()))
	}
	if len(reg.Names()) != 2 {
		t.Errorf("Names() returned %d names, want 2", len(reg.Names()))
	}
	if reg.Count() != 2 {
		t.Errorf("Count() = %d, want 2", reg.Count())
	}
}

func TestUnregister(t *testing.T) {
	t.Parallel()

	reg := NewToolRegistry()
	reg.Register(newTool(t, "catalog_search"))

	if err := reg.Unregister("catalog_search"); err != nil {
		t.Fatalf("Unregister() error = %v", err)
	}
	if reg.Has("catalog_search") {
		t.Error("tool still present after Unregister")
	}
	if err := reg.Unregister("catalog_search"); !errors.Is(err, tool.ErrToolNotFound) {
		t.Errorf("Unregister() missing error = %v, want ErrToolNotFound", err)
	}
}

func TestClear(t *testing.T) {
	t.Parallel()

	reg := NewToolRegistry()
	reg.Register(newTool(t, "a"))
	reg.Clear()

	if reg.Count() != 0 {
		t.Errorf("Count() = %d after Clear, want 0", reg.Count())
	}
}
