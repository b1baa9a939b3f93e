// Package errors provides structured error handling for the toolkit.
//
// Configuration mistakes are returned to the caller as *ToolkitError values.
// Failures that happen on the UI thread with no caller to return to (a
// panicking close listener, an effect that blew up mid-frame) are sent to the
// process-wide [ErrorHandler] instead, which logs them by default.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates an invalid configuration value.
	KindConfig
	// KindEffect indicates a failure inside an open or close effect.
	KindEffect
	// KindListener indicates a failure inside an event listener.
	KindListener
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindEffect:
		return "effect"
	case KindListener:
		return "listener"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// ToolkitError represents a structured error raised by the toolkit.
type ToolkitError struct {
	// Op is the operation that failed (e.g., "toast.Scheduler.SetMaxVisibleToasts").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error, if captured.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

// New creates a ToolkitError stamped with the current time.
func New(op string, kind ErrorKind, err error) *ToolkitError {
	return &ToolkitError{
		Op:        op,
		Kind:      kind,
		Err:       err,
		Timestamp: time.Now(),
	}
}

func (e *ToolkitError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ToolkitError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "toast.Toast.OnClose").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the toolkit.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ToolkitError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
