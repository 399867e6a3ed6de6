package gcloud

import (
	"context"
	"errors"
)

// Status is the terminal state of a tool invocation.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
	StatusFailed    Status = "failed"
)

// LRO describes a long-running operation that was started but not awaited.
type LRO struct {
	Name     string
	Metadata map[string]any
}

// Outcome is the uniform result every tool returns. Provider failures are
// folded into a failed outcome instead of propagating as errors, so the agent
// always receives a structured report it can act on.
type Outcome struct {
	Status        Status         `json:"status"`
	Data          any            `json:"data,omitempty"`
	OperationName string         `json:"operation_name,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	ErrorKind     ErrorKind      `json:"error_kind,omitempty"`
	Error         string         `json:"error,omitempty"`
}

// Complete builds a completed outcome carrying the result payload.
func Complete(data any) *Outcome {
	return &Outcome{Status: StatusCompleted, Data: data}
}

// Pending builds a pending outcome for a long-running operation.
func Pending(op *LRO) *Outcome {
	return &Outcome{
		Status:        StatusPending,
		OperationName: op.Name,
		Metadata:      op.Metadata,
	}
}

// Fail builds a failed outcome with an explicit kind.
func Fail(kind ErrorKind, msg string) *Outcome {
	return &Outcome{Status: StatusFailed, ErrorKind: kind, Error: msg}
}

// FromError classifies err and folds it into a failed outcome. Context
// cancellation is not foldable: the caller must propagate it, so FromError
// returns the error unchanged in that case.
func FromError(err error) (*Outcome, error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}
	return &Outcome{
		Status:    StatusFailed,
		ErrorKind: Classify(err),
		Error:     err.Error(),
	}, nil
}
