package mcp_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/lakeproc/agent-gcp/domain/tool"
	"github.com/lakeproc/agent-gcp/infrastructure/mcp"
	"github.com/lakeproc/agent-gcp/infrastructure/storage/memory"
)

// mockTool is a simple tool for testing.
type mockTool struct {
	name        string
	description string
	annotations tool.Annotations
}

func (m *mockTool) Name() string                  { return m.name }
func (m *mockTool) Description() string           { return m.description }
func (m *mockTool) InputSchema() tool.Schema      { return tool.EmptySchema() }
func (m *mockTool) Annotations() tool.Annotations { return m.annotations }

func (m *mockTool) Execute(ctx context.Context, input json.RawMessage) (tool.Result, error) {
	return tool.Result{Output: json.RawMessage(`{"status":"completed"}`)}, nil
}

func TestNewAgentServer(t *testing.T) {
	t.Parallel()

	t.Run("creates server with registry", func(t *testing.T) {
		t.Parallel()

		registry := memory.NewToolRegistry()
		registry.Register(&mockTool{
			name:        "dataplex_get_lake",
			description: "Fetch a lake",
		})

		srv := mcp.NewAgentServer(mcp.AgentServerConfig{
			Name:     "agent-gcp",
			Version:  "1.0.0",
			Registry: registry,
		})

		if srv == nil {
			t.Fatal("NewAgentServer() returned nil")
		}
		if srv.Server() == nil {
			t.Error("Server() returned nil")
		}
	})

	t.Run("creates server without registry", func(t *testing.T) {
		t.Parallel()

		srv := mcp.NewAgentServer(mcp.AgentServerConfig{
			Name:    "agent-gcp",
			Version: "1.0.0",
		})

		if srv == nil {
			t.Fatal("NewAgentServer() returned nil")
		}
	})

	t.Run("creates server with instructions", func(t *testing.T) {
		t.Parallel()

		srv := mcp.NewAgentServer(mcp.AgentServerConfig{
			Name:         "agent-gcp",
			Version:      "1.0.0",
			Instructions: "Call dataplex tools with project_id and location",
		})

		if srv == nil {
			t.Fatal("NewAgentServer() returned nil")
		}
	})
}

func TestAgentServer_AddTool(t *testing.T) {
	t.Parallel()

	t.Run("adds tool to server with registry", func(t *testing.T) {
		t.Parallel()

		registry := memory.NewToolRegistry()
		srv := mcp.NewAgentServer(mcp.AgentServerConfig{
			Name:     "agent-gcp",
			Version:  "1.0.0",
			Registry: registry,
		})

		if err := srv.AddTool(&mockTool{name: "catalog_search", description: "Search entries"}); err != nil {
			t.Fatalf("AddTool() error = %v", err)
		}

		registered, ok := registry.Get("catalog_search")
		if !ok {
			t.Fatal("tool was not added to registry")
		}
		if registered.Name() != "catalog_search" {
			t.Errorf("Name = %s, want catalog_search", registered.Name())
		}
	})

	t.Run("adds tool to server without registry", func(t *testing.T) {
		t.Parallel()

		srv := mcp.NewAgentServer(mcp.AgentServerConfig{
			Name:    "agent-gcp",
			Version: "1.0.0",
		})

		if err := srv.AddTool(&mockTool{name: "catalog_search"}); err != nil {
			t.Fatalf("AddTool() error = %v", err)
		}
	})
}

func TestAgentServer_Use(t *testing.T) {
	t.Parallel()

	srv := mcp.NewAgentServer(mcp.AgentServerConfig{
		Name:    "agent-gcp",
		Version: "1.0.0",
	})

	// Must not panic with no middlewares.
	srv.Use()
}
