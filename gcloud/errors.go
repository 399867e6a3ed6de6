// Package gcloud provides the shared resource-lifecycle adapter used by the
// Dataplex and Dataproc tool packs: canonical resource paths, request
// translation, operation outcome normalization, and error classification.
package gcloud

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorKind is the stable failure taxonomy surfaced to the agent.
// It is independent of the cloud SDK's error types.
type ErrorKind string

const (
	KindNotFound        ErrorKind = "not_found"
	KindInvalidArgument ErrorKind = "invalid_argument"
	KindAlreadyTerminal ErrorKind = "already_terminal"
	KindTransient       ErrorKind = "transient_api_error"
	KindUnknown         ErrorKind = "unknown"
)

// Error is a classified adapter error.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// NewError creates a classified error.
func NewError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// WrapError classifies an underlying error with an explicit kind.
func WrapError(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, cause: cause}
}

// InvalidArgumentf creates an invalid-argument error.
func InvalidArgumentf(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf creates a not-found error.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// terminalStateMarkers are the message fragments the service emits when a job
// cancellation is rejected because the job already finished.
var terminalStateMarkers = []string{"invalid state", "terminal state"}

// Classify maps an error to the adapter taxonomy.
//
// Errors already carrying a kind keep it. Transport errors are classified by
// gRPC status code, with one special case: an InvalidArgument or
// FailedPrecondition whose message mentions a terminal job state becomes
// AlreadyTerminal, because the caller's reaction differs (report, don't retry).
func Classify(err error) ErrorKind {
	if err == nil {
		return ""
	}

	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}

	if st, ok := status.FromError(err); ok {
		msg := strings.ToLower(st.Message())
		switch st.Code() {
		case codes.NotFound:
			return KindNotFound
		case codes.InvalidArgument, codes.FailedPrecondition:
			for _, marker := range terminalStateMarkers {
				if strings.Contains(msg, marker) {
					return KindAlreadyTerminal
				}
			}
			return KindInvalidArgument
		case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Aborted, codes.Internal:
			return KindTransient
		}
	}

	return KindUnknown
}

// IsNotFound reports whether the error classifies as NotFound.
func IsNotFound(err error) bool {
	return Classify(err) == KindNotFound
}
