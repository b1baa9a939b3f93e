package toast

import (
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-drift/toastkit/pkg/animation"
	"github.com/go-drift/toastkit/pkg/effects"
	terrors "github.com/go-drift/toastkit/pkg/errors"
	"github.com/go-drift/toastkit/pkg/widget"
)

// Default toast metrics used when neither WithSize nor a sized content is given.
const (
	DefaultWidth      = 320
	LineHeight        = 20
	ActionRowHeight   = 28
	VerticalPadding   = 12
	HorizontalPadding = 16
)

// Disposer is implemented by custom content that owns resources.
type Disposer interface {
	Dispose()
}

// Sizer is implemented by custom content that knows its preferred size.
type Sizer interface {
	PreferredSize() (width, height float64)
}

var nextToastID uint64

// Toast is a single notification. Create one with New; the zero value is not
// usable. A toast may be shown again after a close that did not dispose it,
// but never while it is Opening, Open or Closing.
type Toast struct {
	widget.Base

	// DisposeOnSelfClose controls whether a close the toast triggers itself
	// (timeout, action, eviction) also disposes it. Defaults to true.
	DisposeOnSelfClose bool

	// DisposeContent controls whether Dispose also disposes custom content
	// implementing Disposer. Defaults to true.
	DisposeContent bool

	id      uint64
	message string
	actions []Action
	content any
	timeout time.Duration
	width   float64
	height  float64

	openEffect     effects.Factory
	closeEffect    effects.Factory
	actionsFactory ActionsFactory
	actionGroup    ActionGroup
	unsubActions   func()

	driver        *animation.FrameDriver
	container     Container
	renderContext RenderContext

	state        State
	openCtx      effects.Context
	closeCtx     effects.Context
	suspendCount int
	timer        *animation.Timer
	disposed     bool

	openListeners    []listener[func()]
	closeListeners   []listener[func(data any)]
	disposeListeners []listener[func()]
	nextListenerID   int
}

type listener[F any] struct {
	id int
	fn F
}

// Option configures a Toast.
type Option func(*Toast)

// WithMessage sets the toast's text.
func WithMessage(message string) Option {
	return func(t *Toast) { t.message = message }
}

// WithActions sets the toast's actions.
func WithActions(actions ...Action) Option {
	return func(t *Toast) { t.actions = slices.Clone(actions) }
}

// WithContent sets custom content.
func WithContent(content any) Option {
	return func(t *Toast) { t.content = content }
}

// WithTimeout sets the initial timeout. Scheduler.ShowToast overrides it.
func WithTimeout(d time.Duration) Option {
	return func(t *Toast) { t.timeout = normalizeTimeout(d) }
}

// WithOpenEffect sets the effect played when the toast opens.
func WithOpenEffect(f effects.Factory) Option {
	return func(t *Toast) { t.openEffect = f }
}

// WithCloseEffect sets the effect played when the toast closes.
func WithCloseEffect(f effects.Factory) Option {
	return func(t *Toast) { t.closeEffect = f }
}

// WithToastActionsFactory sets the factory for the action group sub-widget.
// A scheduler only fills in its own factory when this is unset.
func WithToastActionsFactory(f ActionsFactory) Option {
	return func(t *Toast) { t.actionsFactory = f }
}

// WithDisposeOnSelfClose sets DisposeOnSelfClose.
func WithDisposeOnSelfClose(dispose bool) Option {
	return func(t *Toast) { t.DisposeOnSelfClose = dispose }
}

// WithDisposeContent sets DisposeContent.
func WithDisposeContent(dispose bool) Option {
	return func(t *Toast) { t.DisposeContent = dispose }
}

// WithSize fixes the toast's preferred size.
func WithSize(width, height float64) Option {
	return func(t *Toast) { t.width, t.height = width, height }
}

// WithDriver binds the frame driver that runs the toast's timeout. The
// scheduler binds its own driver to toasts that have none.
func WithDriver(d *animation.FrameDriver) Option {
	return func(t *Toast) { t.driver = d }
}

// New creates a closed toast.
func New(opts ...Option) *Toast {
	t := &Toast{
		DisposeOnSelfClose: true,
		DisposeContent:     true,
		id:                 atomic.AddUint64(&nextToastID, 1),
		timeout:            DefaultTimeout,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.Init(widget.Hooks{
		Initialize: t.initialize,
		Draw:       t.draw,
	})
	return t
}

// ID returns a process-unique identifier, useful in logs.
func (t *Toast) ID() uint64 { return t.id }

// State returns the lifecycle state.
func (t *Toast) State() State { return t.state }

// IsDisposed reports whether the toast has been disposed.
func (t *Toast) IsDisposed() bool { return t.disposed }

// Container returns the container the toast is attached to, or nil.
func (t *Toast) Container() Container { return t.container }

// RenderContext returns the render context the toast was last shown in.
func (t *Toast) RenderContext() RenderContext { return t.renderContext }

// Message returns the toast's text.
func (t *Toast) Message() string { return t.message }

// SetMessage changes the toast's text.
func (t *Toast) SetMessage(message string) {
	if t.message == message {
		return
	}
	t.message = message
	t.Invalidate(widget.InvalidationData, widget.InvalidationSize)
}

// Actions returns a copy of the toast's actions.
func (t *Toast) Actions() []Action { return slices.Clone(t.actions) }

// SetActions replaces the toast's actions.
func (t *Toast) SetActions(actions []Action) {
	t.actions = slices.Clone(actions)
	t.Invalidate(widget.InvalidationData, widget.InvalidationSize)
}

// Content returns the custom content.
func (t *Toast) Content() any { return t.content }

// SetContent replaces the custom content. The previous content is not disposed.
func (t *Toast) SetContent(content any) {
	t.content = content
	t.Invalidate(widget.InvalidationData, widget.InvalidationSize)
}

// ActionGroup returns the action group sub-widget, or nil if none was created.
func (t *Toast) ActionGroup() ActionGroup { return t.actionGroup }

// SetActionsFactory replaces the factory used for the action group. It takes
// effect the next time the group is created.
func (t *Toast) SetActionsFactory(f ActionsFactory) {
	t.actionsFactory = f
	t.Invalidate(widget.InvalidationData)
}

// SetOpenEffect replaces the open effect factory.
func (t *Toast) SetOpenEffect(f effects.Factory) { t.openEffect = f }

// SetCloseEffect replaces the close effect factory.
func (t *Toast) SetCloseEffect(f effects.Factory) { t.closeEffect = f }

// Timeout returns the auto-close timeout; Infinite if there is none.
func (t *Toast) Timeout() time.Duration { return t.timeout }

// SetTimeout changes the auto-close timeout. While the toast is open the
// timer restarts from now, or is cancelled if d is Infinite. Negative
// durations are treated as zero.
func (t *Toast) SetTimeout(d time.Duration) {
	t.timeout = normalizeTimeout(d)
	if t.state == Open {
		t.armTimeout()
	}
}

func normalizeTimeout(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

// PreferredSize returns the size the container lays the toast out at.
func (t *Toast) PreferredSize() (width, height float64) {
	if t.width > 0 && t.height > 0 {
		return t.width, t.height
	}
	if s, ok := t.content.(Sizer); ok {
		return s.PreferredSize()
	}
	width = DefaultWidth
	height = VerticalPadding * 2
	if t.message != "" {
		height += float64(strings.Count(t.message, "\n")+1) * LineHeight
	}
	if len(t.actions) > 0 {
		height += ActionRowHeight
	}
	if t.width > 0 {
		width = t.width
	}
	return width, height
}

func (t *Toast) initialize() {
	t.syncActionGroup()
}

func (t *Toast) draw() {
	if t.IsInvalid(widget.InvalidationData) {
		t.syncActionGroup()
	}
}

func (t *Toast) syncActionGroup() {
	if len(t.actions) == 0 {
		if t.actionGroup != nil {
			t.actionGroup.SetActions(nil)
		}
		return
	}
	if t.actionGroup == nil {
		if t.actionsFactory == nil {
			return
		}
		t.actionGroup = t.actionsFactory()
		if t.actionGroup == nil {
			return
		}
		t.unsubActions = t.actionGroup.OnTrigger(t.TriggerAction)
	}
	t.actionGroup.SetActions(t.actions)
}

// OnOpen registers fn to run each time the toast becomes fully open.
func (t *Toast) OnOpen(fn func()) (unsubscribe func()) {
	id := t.nextListenerID
	t.nextListenerID++
	t.openListeners = append(t.openListeners, listener[func()]{id: id, fn: fn})
	return func() { t.openListeners = removeListener(t.openListeners, id) }
}

// OnClose registers fn to run each time the toast finishes closing. data is
// the triggering action's Data, or whatever CloseWith was given; nil for a
// timeout or a plain Close.
func (t *Toast) OnClose(fn func(data any)) (unsubscribe func()) {
	id := t.nextListenerID
	t.nextListenerID++
	t.closeListeners = append(t.closeListeners, listener[func(any)]{id: id, fn: fn})
	return func() { t.closeListeners = removeListener(t.closeListeners, id) }
}

// onDispose registers fn to run once when the toast is disposed. The
// scheduler uses it to forget toasts disposed while they wait.
func (t *Toast) onDispose(fn func()) (unsubscribe func()) {
	id := t.nextListenerID
	t.nextListenerID++
	t.disposeListeners = append(t.disposeListeners, listener[func()]{id: id, fn: fn})
	return func() { t.disposeListeners = removeListener(t.disposeListeners, id) }
}

func removeListener[F any](list []listener[F], id int) []listener[F] {
	for i, l := range list {
		if l.id == id {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}

// SuspendEffects stops Open and Close from interrupting an opposite effect
// that is still playing. Calls nest; each must be paired with ResumeEffects.
func (t *Toast) SuspendEffects() {
	t.suspendCount++
}

// ResumeEffects undoes one SuspendEffects.
func (t *Toast) ResumeEffects() {
	if t.suspendCount > 0 {
		t.suspendCount--
	}
}

// EffectsSuspended reports whether effect interruption is suspended.
func (t *Toast) EffectsSuspended() bool {
	return t.suspendCount > 0
}

// Open shows the toast, playing the open effect if there is one. It is a
// no-op unless the toast is attached to a container, while it is Opening,
// Open or Closing, and after Dispose.
func (t *Toast) Open() {
	if t.disposed || t.container == nil || t.state != Closed {
		return
	}
	t.Validate()

	if t.openEffect == nil {
		t.enterOpen()
		return
	}

	ctx := t.startEffect("toast.Toast.Open", t.openEffect)
	if ctx == nil {
		t.enterOpen()
		return
	}
	t.state = Opening
	t.openCtx = ctx
	ctx.Play().Then(func(err error) {
		if t.openCtx != ctx {
			return
		}
		t.openCtx = nil
		if err != nil || t.state != Opening {
			return
		}
		t.enterOpen()
	})
}

func (t *Toast) enterOpen() {
	t.state = Open
	t.armTimeout()
	for _, l := range slices.Clone(t.openListeners) {
		callListener("toast.Toast.OnOpen", l.fn)
	}
}

func (t *Toast) armTimeout() {
	t.disarmTimeout()
	if t.state != Open || !IsFinite(t.timeout) || t.driver == nil {
		return
	}
	var timer *animation.Timer
	timer = t.driver.AfterFunc(t.timeout, func() {
		if t.timer != timer {
			return
		}
		t.timer = nil
		t.CloseWith(nil, t.DisposeOnSelfClose)
	})
	t.timer = timer
}

func (t *Toast) disarmTimeout() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// TimeoutArmed reports whether an auto-close timer is pending.
func (t *Toast) TimeoutArmed() bool {
	return t.timer != nil
}

// Close closes the toast with no close data. If dispose is true the toast
// is disposed once the close completes. No-op unless the toast is attached
// to a container and not already Closing.
func (t *Toast) Close(dispose bool) {
	t.CloseWith(nil, dispose)
}

// CloseWith is Close with data for the close listeners.
func (t *Toast) CloseWith(data any, dispose bool) {
	if t.container == nil || t.state == Closing || t.state == Closed {
		return
	}

	if t.openCtx != nil && t.suspendCount == 0 {
		ctx := t.openCtx
		t.openCtx = nil
		ctx.Interrupt()
	}
	t.disarmTimeout()
	t.state = Closing

	if t.closeEffect == nil {
		t.completeClose(data, dispose)
		return
	}

	ctx := t.startEffect("toast.Toast.Close", t.closeEffect)
	if ctx == nil {
		t.completeClose(data, dispose)
		return
	}
	t.closeCtx = ctx
	ctx.Play().Then(func(error) {
		if t.closeCtx != ctx {
			return
		}
		t.closeCtx = nil
		if t.state == Closing {
			t.completeClose(data, dispose)
		}
	})
}

// TriggerAction closes the toast on behalf of a. The action group calls this
// when one of its buttons is pressed.
func (t *Toast) TriggerAction(a Action) {
	t.CloseWith(a.Data, t.DisposeOnSelfClose)
}

func (t *Toast) completeClose(data any, dispose bool) {
	t.state = Closed
	if c := t.container; c != nil {
		t.container = nil
		c.RemoveToast(t)
	}
	t.SetAlpha(1)
	t.SetOffsetY(0)
	for _, l := range slices.Clone(t.closeListeners) {
		callListener("toast.Toast.OnClose", func() { l.fn(data) })
	}
	if dispose {
		t.Dispose()
	}
}

// attachTo adds the toast to c. The scheduler calls this on admission.
func (t *Toast) attachTo(c Container) {
	t.container = c
	c.AddToast(t)
}

// abandon finishes the toast's lifecycle at once because its container left
// the render tree. Effects are interrupted regardless of suspension.
func (t *Toast) abandon() {
	if t.state == Closed {
		t.container = nil
		return
	}
	t.disarmTimeout()
	t.state = Closing
	if ctx := t.openCtx; ctx != nil {
		t.openCtx = nil
		ctx.Interrupt()
	}
	if ctx := t.closeCtx; ctx != nil {
		t.closeCtx = nil
		ctx.Interrupt()
	}
	t.completeClose(nil, t.DisposeOnSelfClose && !t.disposed)
}

// Dispose releases the toast's effects, action group and, if
// DisposeContent is set, its content. A toast that is still attached
// finishes closing first, without an effect, so its close listeners run.
func (t *Toast) Dispose() {
	if t.disposed {
		return
	}
	t.disposed = true
	if t.state != Closed {
		t.abandon()
	}
	t.disarmTimeout()

	if t.actionGroup != nil {
		if t.unsubActions != nil {
			t.unsubActions()
			t.unsubActions = nil
		}
		t.actionGroup.Dispose()
		t.actionGroup = nil
	}
	if t.DisposeContent {
		if d, ok := t.content.(Disposer); ok {
			d.Dispose()
		}
	}
	t.openEffect = nil
	t.closeEffect = nil
	t.openListeners = nil
	t.closeListeners = nil

	disposeListeners := t.disposeListeners
	t.disposeListeners = nil
	for _, l := range disposeListeners {
		callListener("toast.Toast.Dispose", l.fn)
	}
}

func callListener(op string, fn func()) {
	defer terrors.RecoverAs(op, terrors.KindListener)
	fn()
}

// startEffect builds an effect for t. A factory that panics or returns nil
// is reported and treated as no effect.
func (t *Toast) startEffect(op string, f effects.Factory) (ctx effects.Context) {
	defer terrors.RecoverAs(op, terrors.KindEffect)
	ctx = f(t)
	if ctx == nil {
		terrors.Report(terrors.New(op, terrors.KindEffect, ErrNilEffect))
	}
	return ctx
}
