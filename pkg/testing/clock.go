package testing

import (
	"sync/atomic"
	"time"
)

// Epoch is the instant every FakeClock starts at. Timer deadlines in tests
// are easiest to state as Epoch plus an offset.
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// FakeClock is an [animation.Clock] that only moves when told to. It keeps
// the time as an offset from Epoch and never runs backwards. Safe for
// concurrent use.
type FakeClock struct {
	offset atomic.Int64
}

// NewFakeClock returns a FakeClock at Epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{}
}

// Now returns Epoch plus the time advanced so far.
func (c *FakeClock) Now() time.Time {
	return Epoch.Add(c.Since())
}

// Since returns the time advanced since Epoch.
func (c *FakeClock) Since() time.Duration {
	return time.Duration(c.offset.Load())
}

// Advance moves the clock forward by d. Negative d is ignored.
func (c *FakeClock) Advance(d time.Duration) {
	if d > 0 {
		c.offset.Add(int64(d))
	}
}

// AdvanceTo moves the clock to Epoch+at. It reports false, leaving the
// clock alone, if that instant has already passed.
func (c *FakeClock) AdvanceTo(at time.Duration) bool {
	for {
		cur := c.offset.Load()
		if int64(at) < cur {
			return false
		}
		if c.offset.CompareAndSwap(cur, int64(at)) {
			return true
		}
	}
}
