package effects

import (
	"errors"

	terrors "github.com/go-drift/toastkit/pkg/errors"
)

// ErrInterrupted resolves the future of an effect that was interrupted
// before it finished.
var ErrInterrupted = errors.New("effect interrupted")

// Future is the single-shot result of playing an effect.
//
// It resolves exactly once: with nil when the effect runs to completion, or
// with ErrInterrupted. Continuations registered with Then run on the UI
// thread in registration order.
type Future struct {
	done     chan struct{}
	err      error
	resolved bool
	thens    []func(error)
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Resolved returns a future that has already resolved with err.
func Resolved(err error) *Future {
	f := newFuture()
	f.resolve(err)
	return f
}

// Then registers fn to run when the future resolves. If it already has,
// fn runs immediately.
func (f *Future) Then(fn func(err error)) {
	if fn == nil {
		return
	}
	if f.resolved {
		runContinuation(fn, f.err)
		return
	}
	f.thens = append(f.thens, fn)
}

// Done is closed once the future resolves.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Err returns the resolution: nil for completion, ErrInterrupted otherwise.
// It is nil while the future is pending; use IsResolved to tell the two apart.
func (f *Future) Err() error {
	return f.err
}

// IsResolved reports whether the future has resolved.
func (f *Future) IsResolved() bool {
	return f.resolved
}

func (f *Future) resolve(err error) bool {
	if f.resolved {
		return false
	}
	f.resolved = true
	f.err = err
	close(f.done)
	thens := f.thens
	f.thens = nil
	for _, fn := range thens {
		runContinuation(fn, err)
	}
	return true
}

func runContinuation(fn func(error), err error) {
	defer terrors.Recover("effects.Future.Then")
	fn(err)
}
