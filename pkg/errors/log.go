package errors

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// LogHandler is an ErrorHandler that writes through a zerolog logger.
// The zero value logs to stderr with a console writer.
type LogHandler struct {
	// Logger receives the records. Nil means a console logger on stderr.
	Logger *zerolog.Logger
	// Verbose adds stack traces to the records.
	Verbose bool

	once     sync.Once
	fallback zerolog.Logger
}

// NewLogHandler returns a handler writing to log.
func NewLogHandler(log zerolog.Logger, verbose bool) *LogHandler {
	return &LogHandler{Logger: &log, Verbose: verbose}
}

func (h *LogHandler) logger() *zerolog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	h.once.Do(func() {
		h.fallback = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Str("comp", "toastkit").Logger()
	})
	return &h.fallback
}

// HandleError logs a ToolkitError.
func (h *LogHandler) HandleError(err *ToolkitError) {
	if err == nil {
		return
	}
	ev := h.logger().Error().
		Str("op", err.Op).
		Str("kind", err.Kind.String()).
		Err(err.Err)
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Msg("toolkit error")
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	ev := h.logger().Error().
		Str("op", err.Op).
		Interface("panic", err.Value)
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Msg("recovered panic")
}
