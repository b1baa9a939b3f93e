package toast

import (
	"fmt"
	"math"
	"time"
)

// DefaultTimeout is how long a toast stays open unless told otherwise.
const DefaultTimeout = 4 * time.Second

// Infinite is the timeout of a toast that never closes on its own.
const Infinite time.Duration = math.MaxInt64

// State is a toast's position in its open/close lifecycle.
//
//	         Open()               effect done
//	Closed ─────────► Opening ─────────────────► Open
//	  ▲                  │ Close()                 │ Close(), timeout, action
//	  │                  ▼                         ▼
//	  └──────────────────────────────────────── Closing
//	            effect done (or no effect)
type State int

const (
	// Closed toasts are detached from any container.
	Closed State = iota
	// Opening toasts are attached and playing their open effect.
	Opening
	// Open toasts are fully shown; their timeout, if finite, is armed.
	Open
	// Closing toasts are playing their close effect.
	Closing
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Opening:
		return "opening"
	case Open:
		return "open"
	case Closing:
		return "closing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// IsFinite reports whether d is an auto-dismiss timeout.
func IsFinite(d time.Duration) bool {
	return d != Infinite
}

func formatTimeout(d time.Duration) string {
	if !IsFinite(d) {
		return "infinite"
	}
	return d.String()
}
