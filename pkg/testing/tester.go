package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/toastkit/pkg/animation"
	terrors "github.com/go-drift/toastkit/pkg/errors"
)

// DefaultFrameDuration is how far the fake clock moves per pumped frame.
const DefaultFrameDuration = 16 * time.Millisecond

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: driver did not settle")

// FrameTester drives a [animation.FrameDriver] against a [FakeClock], so
// effects, timeouts and posted callbacks run exactly when a test says so.
type FrameTester struct {
	clock         *FakeClock
	driver        *animation.FrameDriver
	frameDuration time.Duration
}

// NewFrameTester creates a tester with a fresh clock and driver.
func NewFrameTester() *FrameTester {
	clock := NewFakeClock()
	return &FrameTester{
		clock:         clock,
		driver:        animation.NewFrameDriver(clock),
		frameDuration: DefaultFrameDuration,
	}
}

// NewFrameTesterWithT creates a tester and routes errors reported through
// package errors to t.Errorf until the test ends. Callback panics on the UI
// thread are recovered by the driver, so this is how a test sees them.
// Tests using it must not run in parallel.
func NewFrameTesterWithT(t testing.TB) *FrameTester {
	t.Helper()
	prev := terrors.SetHandler(reportingHandler{t: t})
	t.Cleanup(func() { terrors.SetHandler(prev) })
	return NewFrameTester()
}

type reportingHandler struct {
	t testing.TB
}

func (h reportingHandler) HandleError(err *terrors.ToolkitError) {
	h.t.Errorf("reported error: %v", err)
}

func (h reportingHandler) HandlePanic(err *terrors.PanicError) {
	h.t.Errorf("recovered %v\n%s", err, err.StackTrace)
}

// SetFrameDuration changes how far the clock moves per pumped frame.
func (t *FrameTester) SetFrameDuration(d time.Duration) {
	if d > 0 {
		t.frameDuration = d
	}
}

// Clock returns the fake clock.
func (t *FrameTester) Clock() *FakeClock {
	return t.clock
}

// Driver returns the frame driver under test.
func (t *FrameTester) Driver() *animation.FrameDriver {
	return t.driver
}

// Pump runs a single frame at the current fake time.
func (t *FrameTester) Pump() {
	t.driver.Step()
}

// PumpFor advances the clock by d one frame at a time, running a frame
// after each advance. The last frame lands exactly on now+d.
func (t *FrameTester) PumpFor(d time.Duration) {
	if d <= 0 {
		return
	}
	end := t.clock.Since() + d
	for at := t.clock.Since(); at < end; {
		at = min(at+t.frameDuration, end)
		t.clock.AdvanceTo(at)
		t.driver.Step()
	}
}

// PumpAndSettle runs frames until the driver has no pending work or the
// timeout is reached. Each frame advances the clock by the frame duration.
func (t *FrameTester) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	for elapsed <= timeout {
		t.driver.Step()
		if !t.driver.HasPendingWork() {
			return nil
		}
		t.clock.Advance(t.frameDuration)
		elapsed += t.frameDuration
	}
	return ErrSettleTimeout
}
