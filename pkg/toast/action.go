package toast

import "slices"

// Action is one button offered by a toast. Triggering it closes the toast
// and hands Data to the toast's close listeners.
type Action struct {
	Label string
	Data  any
}

// ActionGroup is the sub-widget that presents a toast's actions.
type ActionGroup interface {
	// SetActions replaces the presented actions.
	SetActions(actions []Action)
	// OnTrigger registers fn to run when an action is triggered.
	OnTrigger(fn func(Action)) (unsubscribe func())
	// Dispose releases the group.
	Dispose()
}

// ActionsFactory creates the action group for a toast. A nil factory means
// toasts present no action group.
type ActionsFactory func() ActionGroup

// ButtonGroup is the default ActionGroup: an ordered row of buttons.
type ButtonGroup struct {
	actions   []Action
	listeners []func(Action)
	disposed  bool
}

var _ ActionGroup = (*ButtonGroup)(nil)

// NewButtonGroup is the default ActionsFactory.
func NewButtonGroup() ActionGroup {
	return &ButtonGroup{}
}

// SetActions replaces the buttons.
func (g *ButtonGroup) SetActions(actions []Action) {
	g.actions = slices.Clone(actions)
}

// Actions returns a copy of the buttons, in order.
func (g *ButtonGroup) Actions() []Action {
	return slices.Clone(g.actions)
}

// OnTrigger registers fn to run when a button is triggered.
func (g *ButtonGroup) OnTrigger(fn func(Action)) func() {
	g.listeners = append(g.listeners, fn)
	idx := len(g.listeners) - 1
	return func() {
		if idx < len(g.listeners) {
			g.listeners[idx] = nil
		}
	}
}

// Trigger presses the button at index i. Returns false if there is no such
// button or the group has been disposed.
func (g *ButtonGroup) Trigger(i int) bool {
	if g.disposed || i < 0 || i >= len(g.actions) {
		return false
	}
	a := g.actions[i]
	for _, fn := range slices.Clone(g.listeners) {
		if fn != nil {
			fn(a)
		}
	}
	return true
}

// Dispose drops the buttons and listeners.
func (g *ButtonGroup) Dispose() {
	g.disposed = true
	g.actions = nil
	g.listeners = nil
}

// IsDisposed reports whether Dispose has been called.
func (g *ButtonGroup) IsDisposed() bool {
	return g.disposed
}
