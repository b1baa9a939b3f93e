package animation

import (
	"fmt"
	"slices"
	"time"
)

// AnimationStatus says where an AnimationController is.
type AnimationStatus int

const (
	// AnimationDismissed means the controller rests at 0.
	AnimationDismissed AnimationStatus = iota
	// AnimationForward means the controller is running toward 1.
	AnimationForward
	// AnimationReverse means the controller is running toward 0.
	AnimationReverse
	// AnimationCompleted means the controller rests at 1.
	AnimationCompleted
)

func (s AnimationStatus) String() string {
	switch s {
	case AnimationDismissed:
		return "dismissed"
	case AnimationForward:
		return "forward"
	case AnimationReverse:
		return "reverse"
	case AnimationCompleted:
		return "completed"
	default:
		return fmt.Sprintf("AnimationStatus(%d)", int(s))
	}
}

// AnimationController runs Value between 0 and 1 over Duration, advancing
// once per frame of the TickerProvider it was created with. A run that
// starts part of the way through takes a proportional share of Duration.
//
// Dispose stops the controller and drops its listeners.
type AnimationController struct {
	// Value is the current position in [0, 1], after Curve.
	Value float64
	// Duration is the length of a full 0-to-1 run.
	Duration time.Duration
	// Curve maps linear progress onto Value. Nil means linear.
	Curve Curve

	provider TickerProvider
	ticker   *Ticker
	status   AnimationStatus

	// progress is the linear position, from and to bound the current run.
	progress float64
	from, to float64

	valueListeners  []listener[func()]
	statusListeners []listener[func(AnimationStatus)]
	nextID          int
}

type listener[F any] struct {
	id int
	fn F
}

// NewAnimationController creates a controller resting at 0.
func NewAnimationController(provider TickerProvider, duration time.Duration) *AnimationController {
	return &AnimationController{
		Duration: duration,
		Curve:    LinearCurve,
		provider: provider,
	}
}

// Forward runs the controller to 1.
func (c *AnimationController) Forward() { c.run(1, AnimationForward) }

// Reverse runs the controller back to 0.
func (c *AnimationController) Reverse() { c.run(0, AnimationReverse) }

func (c *AnimationController) run(to float64, status AnimationStatus) {
	c.Stop()
	c.from, c.to = c.progress, to
	c.setStatus(status)
	c.ticker = c.provider.CreateTicker(c.tick)
	c.ticker.Start()
}

func (c *AnimationController) tick(elapsed time.Duration) {
	span := c.to - c.from
	if span < 0 {
		span = -span
	}
	done := true
	if total := time.Duration(float64(c.Duration) * span); total > 0 && elapsed < total {
		done = false
		step := float64(elapsed) / float64(total)
		c.progress = c.from + (c.to-c.from)*step
	} else {
		c.progress = c.to
	}

	c.Value = c.progress
	if c.Curve != nil {
		c.Value = c.Curve(c.progress)
	}
	for _, l := range slices.Clone(c.valueListeners) {
		l.fn()
	}

	if done {
		c.Stop()
		if c.to == 1 {
			c.setStatus(AnimationCompleted)
		} else {
			c.setStatus(AnimationDismissed)
		}
	}
}

// Stop freezes the controller where it is. The status is left as is.
func (c *AnimationController) Stop() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
}

// Status returns the controller's status.
func (c *AnimationController) Status() AnimationStatus { return c.status }

// IsAnimating reports whether a run is in progress.
func (c *AnimationController) IsAnimating() bool { return c.ticker != nil }

// AddListener registers fn to run after every change of Value.
func (c *AnimationController) AddListener(fn func()) (unsubscribe func()) {
	id := c.nextID
	c.nextID++
	c.valueListeners = append(c.valueListeners, listener[func()]{id: id, fn: fn})
	return func() { c.valueListeners = dropListener(c.valueListeners, id) }
}

// AddStatusListener registers fn to run after every change of status.
func (c *AnimationController) AddStatusListener(fn func(AnimationStatus)) (unsubscribe func()) {
	id := c.nextID
	c.nextID++
	c.statusListeners = append(c.statusListeners, listener[func(AnimationStatus)]{id: id, fn: fn})
	return func() { c.statusListeners = dropListener(c.statusListeners, id) }
}

func dropListener[F any](list []listener[F], id int) []listener[F] {
	return slices.DeleteFunc(list, func(l listener[F]) bool { return l.id == id })
}

func (c *AnimationController) setStatus(status AnimationStatus) {
	if c.status == status {
		return
	}
	c.status = status
	for _, l := range slices.Clone(c.statusListeners) {
		l.fn(status)
	}
}

// Dispose stops the controller and drops every listener.
func (c *AnimationController) Dispose() {
	c.Stop()
	c.valueListeners = nil
	c.statusListeners = nil
}
