package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/bolt/v3"

	"github.com/lakeproc/agent-gcp/domain/agent"
	"github.com/lakeproc/agent-gcp/gcloud"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bolt.Level
	}{
		{"trace", bolt.TRACE},
		{"debug", bolt.DEBUG},
		{"info", bolt.INFO},
		{"warn", bolt.WARN},
		{"error", bolt.ERROR},
		{"unknown", bolt.INFO},
		{"", bolt.INFO},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := parseLevel(tt.input); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Level != "info" {
		t.Errorf("Level = %q, want info", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("Format = %q, want console", cfg.Format)
	}
}

func TestProductionConfig(t *testing.T) {
	t.Parallel()

	cfg := ProductionConfig()
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Format)
	}
}

func TestFieldsApply(t *testing.T) {
	t.Parallel()

	// Fields must be applicable without panicking regardless of value.
	fields := []Field{
		CallID("call-1"),
		State(agent.StateAct),
		ToolName("dataplex_create_lake"),
		Project("demo-project"),
		Resource("projects/p/locations/l/lakes/lk"),
		OperationName("operations/op-1"),
		ErrorKind(gcloud.KindNotFound),
		OutcomeStatus(gcloud.StatusPending),
		Duration(250 * time.Millisecond),
		Cached(true),
		ErrorField(errors.New("boom")),
		ErrorField(nil),
		Component("pack"),
		Str("custom", "value"),
	}

	ev := Debug()
	for _, f := range fields {
		ev = ev.Add(f)
	}
	ev.Msg("fields applied")
}
