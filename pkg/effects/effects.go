// Package effects provides interruptible visual transitions for opening and
// closing toasts.
//
// An effect is created by a [Factory] for one target, played once, and either
// runs to completion or is interrupted:
//
//	ctx := effects.FadeIn(driver, 250*time.Millisecond, animation.EaseOut)(t)
//	ctx.Play().Then(func(err error) {
//	    if errors.Is(err, effects.ErrInterrupted) {
//	        return
//	    }
//	    // fully visible
//	})
//
// Interrupt is idempotent and safe to call before Play, after completion, or
// several times in a row.
package effects

import (
	"time"

	"github.com/go-drift/toastkit/pkg/animation"
	"github.com/go-drift/toastkit/pkg/widget"
)

// Target is the animatable surface of a widget.
type Target interface {
	Alpha() float64
	SetAlpha(alpha float64)
	OffsetY() float64
	SetOffsetY(dy float64)
	Bounds() widget.Rect
}

// Context is a running (or runnable) effect.
type Context interface {
	// Play starts the effect and returns its future. Calling Play again
	// returns the same future.
	Play() *Future
	// Interrupt stops the effect early and resolves its future with
	// ErrInterrupted. No-op once the future has resolved.
	Interrupt()
}

// Factory creates an effect for target.
type Factory func(target Target) Context

// tweenEffect animates one property of a target from begin to end.
type tweenEffect struct {
	controller *animation.AnimationController
	begin      func() float64
	end        func() float64
	apply      func(v float64)
	future     *Future
}

func newTweenEffect(provider animation.TickerProvider, d time.Duration, curve animation.Curve) *tweenEffect {
	c := animation.NewAnimationController(provider, d)
	if curve != nil {
		c.Curve = curve
	}
	return &tweenEffect{controller: c}
}

func (e *tweenEffect) Play() *Future {
	if e.future != nil {
		return e.future
	}
	e.future = newFuture()
	tween := animation.TweenFloat64(e.begin(), e.end())
	e.apply(tween.Begin)
	e.controller.AddListener(func() {
		e.apply(tween.Transform(e.controller))
	})
	e.controller.AddStatusListener(func(status animation.AnimationStatus) {
		if status == animation.AnimationCompleted {
			e.finish(nil)
		}
	})
	e.controller.Forward()
	return e.future
}

func (e *tweenEffect) Interrupt() {
	if e.future == nil {
		e.future = newFuture()
	}
	if e.future.IsResolved() {
		return
	}
	e.finish(ErrInterrupted)
}

func (e *tweenEffect) finish(err error) {
	e.controller.Dispose()
	e.future.resolve(err)
}

// FadeIn fades the target from transparent to opaque.
func FadeIn(provider animation.TickerProvider, d time.Duration, curve animation.Curve) Factory {
	return func(target Target) Context {
		e := newTweenEffect(provider, d, curve)
		e.begin = func() float64 { return 0 }
		e.end = func() float64 { return 1 }
		e.apply = target.SetAlpha
		return e
	}
}

// FadeOut fades the target from its current opacity to transparent.
func FadeOut(provider animation.TickerProvider, d time.Duration, curve animation.Curve) Factory {
	return func(target Target) Context {
		e := newTweenEffect(provider, d, curve)
		e.begin = target.Alpha
		e.end = func() float64 { return 0 }
		e.apply = target.SetAlpha
		return e
	}
}

// SlideIn moves the target up into its laid-out position from one target
// height below it. The distance is read when the effect starts playing, so
// the target must already be laid out.
func SlideIn(provider animation.TickerProvider, d time.Duration, curve animation.Curve) Factory {
	return func(target Target) Context {
		e := newTweenEffect(provider, d, curve)
		e.begin = func() float64 { return target.Bounds().Height }
		e.end = func() float64 { return 0 }
		e.apply = target.SetOffsetY
		return e
	}
}

// SlideOut moves the target down by its own height from wherever it is.
func SlideOut(provider animation.TickerProvider, d time.Duration, curve animation.Curve) Factory {
	return func(target Target) Context {
		e := newTweenEffect(provider, d, curve)
		e.begin = target.OffsetY
		e.end = func() float64 { return target.Bounds().Height }
		e.apply = target.SetOffsetY
		return e
	}
}

// Parallel plays several effects on the same target and completes when all
// of them have. Interrupting it interrupts every child.
func Parallel(factories ...Factory) Factory {
	return func(target Target) Context {
		children := make([]Context, 0, len(factories))
		for _, f := range factories {
			if f != nil {
				children = append(children, f(target))
			}
		}
		return &parallelEffect{children: children}
	}
}

type parallelEffect struct {
	children []Context
	future   *Future
}

func (p *parallelEffect) Play() *Future {
	if p.future != nil {
		return p.future
	}
	p.future = newFuture()
	if len(p.children) == 0 {
		p.future.resolve(nil)
		return p.future
	}
	remaining := len(p.children)
	for _, child := range p.children {
		child.Play().Then(func(err error) {
			if err != nil {
				p.Interrupt()
				return
			}
			remaining--
			if remaining == 0 {
				p.future.resolve(nil)
			}
		})
	}
	return p.future
}

func (p *parallelEffect) Interrupt() {
	if p.future == nil {
		p.future = newFuture()
	}
	if p.future.IsResolved() {
		return
	}
	p.future.resolve(ErrInterrupted)
	for _, child := range p.children {
		child.Interrupt()
	}
}
