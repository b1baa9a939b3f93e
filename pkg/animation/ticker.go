// Package animation provides the frame-driven timing primitives the toolkit
// is built on.
//
// # Core Components
//
//   - [FrameDriver]: owns the UI thread's work for one render root. Each call
//     to Step runs posted callbacks, fires due timers, and advances tickers.
//
//   - [Ticker]: calls back once per frame with the time elapsed since it started.
//
//   - [Timer]: fires once on the first frame at or past its deadline, measured
//     on the driver's [Clock].
//
//   - [AnimationController]: drives a value from 0.0 to 1.0 over a duration with
//     an easing [Curve]. Effects in package effects are built on it.
//
// # Threading
//
// Everything except Post and Call must run on the goroutine that calls Step
// (or Run). Other goroutines hand work to that goroutine with Post, or with
// Call when they need to wait for it:
//
//	driver := animation.NewFrameDriver(animation.SystemClock{})
//	go driver.Run(ctx, time.Second/60)
//
//	err := driver.Call(ctx, func() {
//	    scheduler.ShowMessage("Saved", toast.DefaultTimeout)
//	})
package animation

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/go-drift/toastkit/pkg/errors"
)

// TickerProvider creates tickers.
type TickerProvider interface {
	CreateTicker(callback func(elapsed time.Duration)) *Ticker
}

// FrameDriver is the single logical UI thread of one render root.
//
// Post and Call are safe for concurrent use. All other methods, and every
// callback the driver invokes, run on the goroutine that calls Step.
type FrameDriver struct {
	clock Clock

	mu      sync.Mutex
	posted  []func()
	tickers []*Ticker
	timers  []*Timer
	frame   uint64
}

// NewFrameDriver creates a driver reading time from clock.
// A nil clock means [SystemClock].
func NewFrameDriver(clock Clock) *FrameDriver {
	if clock == nil {
		clock = SystemClock{}
	}
	return &FrameDriver{clock: clock}
}

// Now returns the current time from the driver's clock.
func (d *FrameDriver) Now() time.Time {
	return d.clock.Now()
}

// Frame returns the number of completed Step calls.
func (d *FrameDriver) Frame() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frame
}

// Post queues callback to run at the start of the next frame.
// Returns false if callback is nil.
func (d *FrameDriver) Post(callback func()) bool {
	if callback == nil {
		return false
	}
	d.mu.Lock()
	d.posted = append(d.posted, callback)
	d.mu.Unlock()
	return true
}

// Call runs fn on the UI thread and waits for it to return.
// Returns ctx.Err() if ctx is done first; fn may still run later in that case.
func (d *FrameDriver) Call(ctx context.Context, fn func()) error {
	if ctx == nil {
		ctx = context.Background()
	}
	done := make(chan struct{})
	d.Post(func() {
		defer close(done)
		fn()
	})
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Step runs one frame: posted callbacks, then due timers, then tickers.
// Work scheduled by a callback during this frame runs on the next one.
func (d *FrameDriver) Step() {
	d.mu.Lock()
	posted := d.posted
	d.posted = nil
	d.mu.Unlock()

	for _, fn := range posted {
		invoke("animation.FrameDriver.Post", fn)
	}

	now := d.clock.Now()
	for _, timer := range d.dueTimers(now) {
		invoke("animation.Timer", timer.fn)
	}

	d.mu.Lock()
	tickers := slices.Clone(d.tickers)
	d.mu.Unlock()
	for _, ticker := range tickers {
		if ticker.isActive && ticker.callback != nil {
			elapsed := now.Sub(ticker.start)
			invoke("animation.Ticker", func() { ticker.callback(elapsed) })
		}
	}

	d.mu.Lock()
	d.frame++
	d.mu.Unlock()
}

// Run steps the driver every interval until ctx is done.
func (d *FrameDriver) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Second / 60
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			d.Step()
		}
	}
}

// HasPendingWork reports whether a future Step has anything to do.
func (d *FrameDriver) HasPendingWork() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.posted) > 0 || len(d.timers) > 0 || len(d.tickers) > 0
}

// HasActiveTickers returns true if any tickers are active.
func (d *FrameDriver) HasActiveTickers() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.tickers) > 0
}

func (d *FrameDriver) dueTimers(now time.Time) []*Timer {
	d.mu.Lock()
	defer d.mu.Unlock()
	var due []*Timer
	kept := d.timers[:0]
	for _, t := range d.timers {
		if !now.Before(t.deadline) {
			t.active = false
			due = append(due, t)
			continue
		}
		kept = append(kept, t)
	}
	clear(d.timers[len(kept):])
	d.timers = kept
	slices.SortStableFunc(due, func(a, b *Timer) int {
		return a.deadline.Compare(b.deadline)
	})
	return due
}

func invoke(op string, fn func()) {
	defer errors.Recover(op)
	fn()
}

// Ticker calls a callback on each frame while active.
//
// The callback receives the elapsed time since Start was called.
// Most code should use [AnimationController] rather than Ticker directly.
type Ticker struct {
	driver   *FrameDriver
	callback func(elapsed time.Duration)
	isActive bool
	start    time.Time
}

// CreateTicker creates an inactive ticker bound to d.
func (d *FrameDriver) CreateTicker(callback func(elapsed time.Duration)) *Ticker {
	return &Ticker{
		driver:   d,
		callback: callback,
	}
}

// Start activates the ticker. Its first callback happens on the next frame.
func (t *Ticker) Start() {
	if t.isActive {
		return
	}
	t.isActive = true
	t.start = t.driver.clock.Now()
	t.driver.mu.Lock()
	t.driver.tickers = append(t.driver.tickers, t)
	t.driver.mu.Unlock()
}

// Stop deactivates the ticker.
func (t *Ticker) Stop() {
	if !t.isActive {
		return
	}
	t.isActive = false
	t.driver.mu.Lock()
	t.driver.tickers = slices.DeleteFunc(t.driver.tickers, func(other *Ticker) bool {
		return other == t
	})
	t.driver.mu.Unlock()
}

// IsActive returns whether the ticker is currently running.
func (t *Ticker) IsActive() bool {
	return t.isActive
}

// Elapsed returns the time since the ticker started.
func (t *Ticker) Elapsed() time.Duration {
	if !t.isActive {
		return 0
	}
	return t.driver.clock.Now().Sub(t.start)
}

// Timer is a one-shot callback on the driver's clock.
type Timer struct {
	driver   *FrameDriver
	deadline time.Time
	fn       func()
	active   bool
}

// AfterFunc schedules fn to run on the first frame at or after now+delay.
func (d *FrameDriver) AfterFunc(delay time.Duration, fn func()) *Timer {
	t := &Timer{
		driver:   d,
		deadline: d.clock.Now().Add(delay),
		fn:       fn,
		active:   true,
	}
	d.mu.Lock()
	d.timers = append(d.timers, t)
	d.mu.Unlock()
	return t
}

// Stop cancels the timer. Returns true if this call prevented it from firing.
func (t *Timer) Stop() bool {
	if t == nil {
		return false
	}
	t.driver.mu.Lock()
	defer t.driver.mu.Unlock()
	if !t.active {
		return false
	}
	t.active = false
	t.driver.timers = slices.DeleteFunc(t.driver.timers, func(other *Timer) bool {
		return other == t
	})
	return true
}

// Deadline returns the time at which the timer fires.
func (t *Timer) Deadline() time.Time {
	return t.deadline
}

// Active reports whether the timer is still waiting to fire.
func (t *Timer) Active() bool {
	t.driver.mu.Lock()
	defer t.driver.mu.Unlock()
	return t.active
}
