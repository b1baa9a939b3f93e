package toast

import "errors"

var (
	// ErrInvalidMaxVisible is returned when the visible-toast cap is not positive.
	ErrInvalidMaxVisible = errors.New("max visible toasts must be greater than zero")
	// ErrUnknownQueueMode is returned for a queue mode name or value that does not exist.
	ErrUnknownQueueMode = errors.New("unknown queue mode")
	// ErrNoRenderContext is returned when a toast is shown with no render context.
	ErrNoRenderContext = errors.New("no render context")
	// ErrContextClosed is returned when a render context's overlay layer is gone.
	ErrContextClosed = errors.New("render context closed")
	// ErrNilEffect is reported when an effect factory returns no effect.
	ErrNilEffect = errors.New("effect factory returned nil")
)
