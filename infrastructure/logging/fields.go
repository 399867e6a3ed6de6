package logging

import (
	"time"

	"github.com/felixgeelhaar/bolt/v3"

	"github.com/lakeproc/agent-gcp/domain/agent"
	"github.com/lakeproc/agent-gcp/gcloud"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// CallID adds a call ID field.
func CallID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("call_id", id)
	}
}

// State adds a state field.
func State(s agent.State) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("state", string(s))
	}
}

// ToolName adds a tool name field.
func ToolName(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("tool", name)
	}
}

// Project adds a GCP project field.
func Project(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("project", id)
	}
}

// Resource adds a canonical resource name field.
func Resource(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("resource", name)
	}
}

// OperationName adds a long-running operation name field.
func OperationName(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("operation", name)
	}
}

// ErrorKind adds an error classification field.
func ErrorKind(kind gcloud.ErrorKind) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("error_kind", string(kind))
	}
}

// OutcomeStatus adds an outcome status field.
func OutcomeStatus(status gcloud.Status) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("status", string(status))
	}
}

// Duration adds a duration field in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

// Cached adds a cached field.
func Cached(cached bool) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Bool("cached", cached)
	}
}

// ErrorField adds an error field.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}

// Component adds a component field for categorization.
func Component(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("component", name)
	}
}

// Str adds a string field with custom key.
func Str(key, value string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, value)
	}
}
