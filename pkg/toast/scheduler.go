package toast

import (
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-drift/toastkit/pkg/animation"
	"github.com/go-drift/toastkit/pkg/effects"
	terrors "github.com/go-drift/toastkit/pkg/errors"
)

// Scheduler admits toasts under a cap on how many are visible at once and
// queues the rest. Its state belongs to the goroutine stepping its driver.
type Scheduler struct {
	driver        *animation.FrameDriver
	registry      *ContainerRegistry
	renderContext RenderContext

	maxVisible     int
	queueMode      QueueMode
	defaultTimeout time.Duration

	toastFactory   func() *Toast
	actionsFactory ActionsFactory
	openEffect     effects.Factory
	closeEffect    effects.Factory

	active      []*Toast
	queue       []*Toast
	closeSubs   map[*Toast]func()
	disposeSubs map[*Toast]func()

	log     zerolog.Logger
	metrics *Metrics
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithMaxVisibleToasts sets the cap on visible toasts. Values below one are
// ignored; use SetMaxVisibleToasts to get an error instead.
func WithMaxVisibleToasts(n int) SchedulerOption {
	return func(s *Scheduler) {
		if n > 0 {
			s.maxVisible = n
		}
	}
}

// WithQueueMode sets the queue mode.
func WithQueueMode(m QueueMode) SchedulerOption {
	return func(s *Scheduler) { s.queueMode = m }
}

// WithToastFactory sets the factory behind ShowMessage, ShowMessageWithActions
// and ShowContent.
func WithToastFactory(f func() *Toast) SchedulerOption {
	return func(s *Scheduler) { s.toastFactory = f }
}

// WithContainerFactory sets the factory for per-context containers.
func WithContainerFactory(f ContainerFactory) SchedulerOption {
	return func(s *Scheduler) { s.registry.SetFactory(f) }
}

// WithActionsFactory sets the action group factory given to toasts that have none.
func WithActionsFactory(f ActionsFactory) SchedulerOption {
	return func(s *Scheduler) { s.actionsFactory = f }
}

// WithRenderContext sets the render context ShowToast uses.
func WithRenderContext(rc RenderContext) SchedulerOption {
	return func(s *Scheduler) { s.renderContext = rc }
}

// WithLogger sets the scheduler's logger.
func WithLogger(log zerolog.Logger) SchedulerOption {
	return func(s *Scheduler) { s.log = log }
}

// WithMetrics sets the collectors the scheduler updates.
func WithMetrics(m *Metrics) SchedulerOption {
	return func(s *Scheduler) { s.metrics = m }
}

// WithDefaultTimeout sets the timeout returned by DefaultTimeout.
func WithDefaultTimeout(d time.Duration) SchedulerOption {
	return func(s *Scheduler) { s.defaultTimeout = normalizeTimeout(d) }
}

// WithEffects sets the open and close effects given to toasts the scheduler
// creates itself.
func WithEffects(openEffect, closeEffect effects.Factory) SchedulerOption {
	return func(s *Scheduler) { s.openEffect, s.closeEffect = openEffect, closeEffect }
}

// NewScheduler creates a scheduler driven by driver. Without
// WithRenderContext it shows toasts on a fresh headless Surface.
func NewScheduler(driver *animation.FrameDriver, opts ...SchedulerOption) *Scheduler {
	if driver == nil {
		driver = animation.NewFrameDriver(nil)
	}
	s := &Scheduler{
		driver:         driver,
		registry:       NewContainerRegistry(nil),
		maxVisible:     1,
		queueMode:      CancelTimeout,
		defaultTimeout: DefaultTimeout,
		actionsFactory: NewButtonGroup,
		closeSubs:      make(map[*Toast]func()),
		disposeSubs:    make(map[*Toast]func()),
		log:            zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.renderContext == nil {
		s.renderContext = NewSurface("default")
	}
	return s
}

// Driver returns the frame driver the scheduler runs on.
func (s *Scheduler) Driver() *animation.FrameDriver { return s.driver }

// Registry returns the scheduler's container registry.
func (s *Scheduler) Registry() *ContainerRegistry { return s.registry }

// RenderContext returns the render context ShowToast uses.
func (s *Scheduler) RenderContext() RenderContext { return s.renderContext }

// SetRenderContext changes the render context ShowToast uses. Toasts already
// queued keep the context they were requested for.
func (s *Scheduler) SetRenderContext(rc RenderContext) { s.renderContext = rc }

// MaxVisibleToasts returns the cap on visible toasts.
func (s *Scheduler) MaxVisibleToasts() int { return s.maxVisible }

// SetMaxVisibleToasts changes the cap. Raising it promotes queued toasts
// into the new slots at once. Lowering it closes nothing; new toasts wait
// until enough active ones have closed.
func (s *Scheduler) SetMaxVisibleToasts(n int) error {
	if n <= 0 {
		return terrors.New("toast.Scheduler.SetMaxVisibleToasts", terrors.KindConfig,
			fmt.Errorf("%w: %d", ErrInvalidMaxVisible, n))
	}
	if n == s.maxVisible {
		return nil
	}
	old := s.maxVisible
	s.maxVisible = n
	s.log.Debug().Int("from", old).Int("to", n).Msg("max visible toasts changed")
	s.fillSlots()
	return nil
}

// QueueMode returns the queue mode.
func (s *Scheduler) QueueMode() QueueMode { return s.queueMode }

// SetQueueMode changes the queue mode. It affects later show requests and
// promotions only.
func (s *Scheduler) SetQueueMode(m QueueMode) error {
	switch m {
	case CancelTimeout, Wait:
	default:
		return terrors.New("toast.Scheduler.SetQueueMode", terrors.KindConfig,
			fmt.Errorf("%w: %d", ErrUnknownQueueMode, int(m)))
	}
	s.queueMode = m
	return nil
}

// DefaultTimeout returns the timeout callers should use when they have no
// preference of their own.
func (s *Scheduler) DefaultTimeout() time.Duration { return s.defaultTimeout }

// ActiveToasts returns the admitted toasts, oldest first.
func (s *Scheduler) ActiveToasts() []*Toast { return slices.Clone(s.active) }

// QueuedToasts returns the waiting toasts, head first.
func (s *Scheduler) QueuedToasts() []*Toast { return slices.Clone(s.queue) }

// Apply validates cfg and, only if it is valid, applies all of it. The
// effects in cfg apply to toasts the scheduler creates from then on.
func (s *Scheduler) Apply(cfg Config) error {
	const op = "toast.Scheduler.Apply"
	if err := cfg.Validate(); err != nil {
		return terrors.New(op, terrors.KindConfig, err)
	}
	openEffect, err := cfg.OpenEffect.Build(s.driver, effects.In)
	if err != nil {
		return terrors.New(op, terrors.KindConfig, fmt.Errorf("open effect: %w", err))
	}
	closeEffect, err := cfg.CloseEffect.Build(s.driver, effects.Out)
	if err != nil {
		return terrors.New(op, terrors.KindConfig, fmt.Errorf("close effect: %w", err))
	}

	s.queueMode = cfg.QueueMode
	s.defaultTimeout = cfg.DefaultTimeout
	s.openEffect, s.closeEffect = openEffect, closeEffect
	s.log.Info().
		Int("max_visible_toasts", cfg.MaxVisibleToasts).
		Stringer("queue_mode", cfg.QueueMode).
		Dur("default_timeout", cfg.DefaultTimeout).
		Str("open_effect", cfg.OpenEffect.Name).
		Str("close_effect", cfg.CloseEffect.Name).
		Msg("toast config applied")
	return s.SetMaxVisibleToasts(cfg.MaxVisibleToasts)
}

// NewToast creates a toast with the scheduler's factory, effects and action
// group factory. It is not shown.
func (s *Scheduler) NewToast() *Toast {
	var t *Toast
	if s.toastFactory != nil {
		t = s.toastFactory()
	}
	if t == nil {
		t = New()
	}
	if t.openEffect == nil {
		t.openEffect = s.openEffect
	}
	if t.closeEffect == nil {
		t.closeEffect = s.closeEffect
	}
	return t
}

// ShowMessage shows a text toast.
func (s *Scheduler) ShowMessage(message string, timeout time.Duration) *Toast {
	t := s.NewToast()
	t.SetMessage(message)
	return s.ShowToast(t, timeout)
}

// ShowMessageWithActions shows a text toast with action buttons.
func (s *Scheduler) ShowMessageWithActions(message string, actions []Action, timeout time.Duration) *Toast {
	t := s.NewToast()
	t.SetMessage(message)
	t.SetActions(actions)
	return s.ShowToast(t, timeout)
}

// ShowContent shows a toast with custom content.
func (s *Scheduler) ShowContent(content any, timeout time.Duration) *Toast {
	t := s.NewToast()
	t.SetContent(content)
	return s.ShowToast(t, timeout)
}

// ShowToast shows t in the scheduler's render context with the given
// timeout. See ShowToastOn.
func (s *Scheduler) ShowToast(t *Toast, timeout time.Duration) *Toast {
	return s.ShowToastOn(s.renderContext, t, timeout)
}

// ShowToastOn shows t in rc. If a slot is free t is admitted and opened at
// once; otherwise it is queued and, in CancelTimeout mode, the oldest active
// toast with a finite timeout is asked to close. The request is never
// rejected. Showing a toast that is already active or queued does nothing.
func (s *Scheduler) ShowToastOn(rc RenderContext, t *Toast, timeout time.Duration) *Toast {
	if t == nil {
		return nil
	}
	if s.isScheduled(t) {
		return t
	}
	if t.IsDisposed() || t.State() != Closed {
		s.log.Warn().
			Uint64("toast_id", t.ID()).
			Stringer("state", t.State()).
			Bool("disposed", t.IsDisposed()).
			Msg("toast cannot be shown")
		return t
	}

	t.SetTimeout(timeout)
	t.renderContext = rc
	if t.driver == nil {
		t.driver = s.driver
	}
	if t.actionsFactory == nil {
		t.SetActionsFactory(s.actionsFactory)
	}

	if len(s.active) < s.maxVisible {
		if s.admit(t) {
			return t
		}
		s.updateSizes()
		return t
	}
	s.enqueue(t)
	return t
}

func (s *Scheduler) isScheduled(t *Toast) bool {
	return slices.Contains(s.active, t) || slices.Contains(s.queue, t)
}

func (s *Scheduler) admit(t *Toast) bool {
	c, err := s.registry.Container(t.renderContext)
	if err != nil {
		s.log.Warn().Err(err).Uint64("toast_id", t.ID()).Msg("toast dropped")
		s.drop(t)
		return false
	}

	s.active = append(s.active, t)
	s.closeSubs[t] = t.OnClose(func(any) { s.handleClosed(t) })
	t.attachTo(c)
	c.Validate()

	s.metrics.incShown()
	s.updateSizes()
	s.log.Debug().
		Uint64("toast_id", t.ID()).
		Str("timeout", formatTimeout(t.Timeout())).
		Int("active", len(s.active)).
		Int("queued", len(s.queue)).
		Msg("toast admitted")

	t.Open()
	return true
}

func (s *Scheduler) enqueue(t *Toast) {
	s.queue = append(s.queue, t)
	s.disposeSubs[t] = t.onDispose(func() { s.forgetQueued(t) })
	s.metrics.incQueued()
	s.updateSizes()
	s.log.Debug().
		Uint64("toast_id", t.ID()).
		Int("queued", len(s.queue)).
		Msg("toast queued")

	if s.queueMode != CancelTimeout {
		return
	}
	var victim *Toast
	for _, a := range s.active {
		if IsFinite(a.Timeout()) && a.State() != Closing && a.State() != Closed {
			victim = a
			break
		}
	}
	if victim == nil {
		return
	}
	s.metrics.incEvicted()
	s.log.Debug().
		Uint64("toast_id", victim.ID()).
		Uint64("for_toast_id", t.ID()).
		Msg("toast evicted")
	victim.Close(victim.DisposeOnSelfClose)
}

func (s *Scheduler) handleClosed(t *Toast) {
	if unsubscribe, ok := s.closeSubs[t]; ok {
		delete(s.closeSubs, t)
		unsubscribe()
	}
	i := slices.Index(s.active, t)
	if i < 0 {
		return
	}
	s.active = slices.Delete(s.active, i, i+1)
	s.metrics.incClosed()
	s.updateSizes()
	s.log.Debug().
		Uint64("toast_id", t.ID()).
		Int("active", len(s.active)).
		Int("queued", len(s.queue)).
		Msg("toast closed")
	s.showNextInQueue()
}

// showNextInQueue promotes one queued toast into a free slot. In
// CancelTimeout mode, finite-timeout entries at the head are dropped for as
// long as something is queued behind them; the last one reached is shown.
func (s *Scheduler) showNextInQueue() {
	for len(s.active) < s.maxVisible {
		t := s.dequeue()
		if t == nil {
			return
		}
		for s.queueMode == CancelTimeout && len(s.queue) > 0 && IsFinite(t.Timeout()) {
			next := s.dequeue()
			if next == nil {
				break
			}
			s.metrics.incDiscarded()
			s.log.Debug().
				Uint64("toast_id", t.ID()).
				Uint64("for_toast_id", next.ID()).
				Msg("queued toast discarded")
			s.drop(t)
			t = next
		}
		s.updateSizes()
		s.log.Debug().Uint64("toast_id", t.ID()).Msg("toast promoted")
		if s.admit(t) {
			return
		}
	}
}

// dequeue pops the head of the queue, skipping disposed toasts. Returns nil
// when nothing is left.
func (s *Scheduler) dequeue() *Toast {
	for len(s.queue) > 0 {
		t := s.queue[0]
		s.queue[0] = nil
		s.queue = s.queue[1:]
		s.unwatch(t)
		if !t.IsDisposed() {
			return t
		}
	}
	return nil
}

// forgetQueued removes a toast disposed while it waited.
func (s *Scheduler) forgetQueued(t *Toast) {
	delete(s.disposeSubs, t)
	i := slices.Index(s.queue, t)
	if i < 0 {
		return
	}
	s.queue = slices.Delete(s.queue, i, i+1)
	s.updateSizes()
	s.log.Debug().
		Uint64("toast_id", t.ID()).
		Int("queued", len(s.queue)).
		Msg("queued toast disposed")
}

func (s *Scheduler) unwatch(t *Toast) {
	if unsubscribe, ok := s.disposeSubs[t]; ok {
		delete(s.disposeSubs, t)
		unsubscribe()
	}
}

func (s *Scheduler) fillSlots() {
	for len(s.active) < s.maxVisible && len(s.queue) > 0 {
		s.showNextInQueue()
	}
	s.updateSizes()
}

func (s *Scheduler) drop(t *Toast) {
	if t.DisposeOnSelfClose {
		t.Dispose()
	}
}

func (s *Scheduler) updateSizes() {
	s.metrics.setSizes(len(s.active), len(s.queue))
}

// Close empties the queue, disposing every waiting toast, and closes every
// active toast with dispose. The scheduler stays usable afterwards.
func (s *Scheduler) Close() {
	queued := s.queue
	s.queue = nil
	for _, t := range queued {
		s.unwatch(t)
		t.Dispose()
	}
	for _, t := range slices.Clone(s.active) {
		t.Close(true)
	}
	s.updateSizes()
	s.log.Debug().
		Int("dropped", len(queued)).
		Int("closing", len(s.active)).
		Msg("scheduler closed")
}
