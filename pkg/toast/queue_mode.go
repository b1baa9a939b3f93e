package toast

import (
	"fmt"
	"strings"
)

// QueueMode is the policy applied when a show request finds every slot taken.
type QueueMode int

const (
	// CancelTimeout closes the oldest active toast that has a finite timeout
	// to make room, and when promoting from the queue skips older entries
	// with a finite timeout in favour of the newest one.
	CancelTimeout QueueMode = iota
	// Wait leaves active toasts alone; queued toasts are shown in order as
	// active ones close by themselves.
	Wait
)

func (m QueueMode) String() string {
	switch m {
	case CancelTimeout:
		return "cancel-timeout"
	case Wait:
		return "wait"
	default:
		return fmt.Sprintf("QueueMode(%d)", int(m))
	}
}

// ParseQueueMode parses a mode name as written in configuration files.
// Case, underscores and hyphens are ignored, so "CancelTimeout",
// "cancel_timeout" and "cancel-timeout" are all accepted.
func ParseQueueMode(s string) (QueueMode, error) {
	norm := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch norm {
	case "canceltimeout", "cancel":
		return CancelTimeout, nil
	case "wait":
		return Wait, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownQueueMode, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m QueueMode) MarshalText() ([]byte, error) {
	switch m {
	case CancelTimeout, Wait:
		return []byte(m.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownQueueMode, int(m))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *QueueMode) UnmarshalText(text []byte) error {
	mode, err := ParseQueueMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}
