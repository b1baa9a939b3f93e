package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

// handlerBox lets atomic.Pointer hold an interface value.
type handlerBox struct{ h ErrorHandler }

var current atomic.Pointer[handlerBox]

func init() {
	current.Store(&handlerBox{h: &LogHandler{}})
}

// SetHandler installs h as the process-wide error handler and returns the
// one it replaces. Nil restores a default LogHandler writing to stderr.
func SetHandler(h ErrorHandler) ErrorHandler {
	if h == nil {
		h = &LogHandler{}
	}
	return current.Swap(&handlerBox{h: h}).h
}

// Handler returns the process-wide error handler.
func Handler() ErrorHandler {
	return current.Load().h
}

// Report hands err to the current handler, stamping it if needed.
func Report(err *ToolkitError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandleError(err)
}

// ReportPanic hands a recovered panic to the current handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandlePanic(err)
}

// Recover reports a panic in progress and stops it. It must be deferred
// directly:
//
//	defer errors.Recover("toast.Toast.OnClose")
func Recover(op string) {
	if r := recover(); r != nil {
		reportRecovered(op, r)
	}
}

// RecoverWithCallback is Recover followed by callback(r) when a panic was
// stopped.
func RecoverWithCallback(op string, callback func(r any)) {
	if r := recover(); r != nil {
		reportRecovered(op, r)
		if callback != nil {
			callback(r)
		}
	}
}

// RecoverAs is Recover for code with a known failure kind, such as a user
// listener. The panic reaches the handler's HandleError as a ToolkitError of
// that kind wrapping a *PanicError.
//
//	defer errors.RecoverAs("toast.Toast.OnClose", errors.KindListener)
func RecoverAs(op string, kind ErrorKind) {
	if r := recover(); r != nil {
		trace := stack(3)
		now := time.Now()
		Report(&ToolkitError{
			Op:         op,
			Kind:       kind,
			Err:        &PanicError{Op: op, Value: r, StackTrace: trace, Timestamp: now},
			StackTrace: trace,
			Timestamp:  now,
		})
	}
}

func reportRecovered(op string, r any) {
	ReportPanic(&PanicError{
		Op:         op,
		Value:      r,
		StackTrace: stack(4),
		Timestamp:  time.Now(),
	})
}

// CaptureStack returns the caller's stack, one "function\n\tfile:line"
// entry per frame.
func CaptureStack() string {
	return stack(3)
}

func stack(skip int) string {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	if n == 0 {
		return ""
	}
	var sb strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for more := true; more; {
		var frame runtime.Frame
		frame, more = frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
	}
	return sb.String()
}
