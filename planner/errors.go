package planner

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an operation failure. Controllers map kinds to
// HTTP statuses; nothing else about an error is load-bearing.
type ErrorKind string

const (
	KindUnauthenticated ErrorKind = "unauthenticated"
	KindForbidden       ErrorKind = "forbidden"
	KindNotFound        ErrorKind = "not_found"
	KindInvalidInput    ErrorKind = "invalid_input"
	KindConflict        ErrorKind = "conflict"
	KindInvalidState    ErrorKind = "invalid_state"
	KindStorage         ErrorKind = "storage"
)

// Error is the single failure shape every planner operation returns.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Errf builds a planner error with a formatted message.
func Errf(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// StorageErr wraps a persistence failure. The underlying error stays
// reachable through Unwrap for logging and Sentry.
func StorageErr(cause error, message string) *Error {
	return &Error{Kind: KindStorage, Message: message, cause: cause}
}

// KindOf extracts the kind from any error returned by this package.
// Unknown errors count as storage failures.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindStorage
}
