package toast_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/toastkit/pkg/effects"
	terrors "github.com/go-drift/toastkit/pkg/errors"
	dtesting "github.com/go-drift/toastkit/pkg/testing"
	"github.com/go-drift/toastkit/pkg/toast"
)

func newScheduler(t *testing.T, opts ...toast.SchedulerOption) (*dtesting.FrameTester, *toast.Scheduler) {
	t.Helper()
	ft := dtesting.NewFrameTesterWithT(t)
	return ft, toast.NewScheduler(ft.Driver(), opts...)
}

type countingContent struct {
	disposed int
}

func (c *countingContent) Dispose() { c.disposed++ }

func TestToast_NewIsClosed(t *testing.T) {
	tt := toast.New(toast.WithMessage("hello"))

	assert.Equal(t, toast.Closed, tt.State())
	assert.Equal(t, toast.DefaultTimeout, tt.Timeout())
	assert.True(t, tt.DisposeOnSelfClose)
	assert.True(t, tt.DisposeContent)
	assert.Nil(t, tt.Container())
}

func TestToast_CloseWhileDetachedIsNoop(t *testing.T) {
	tt := toast.New()
	closed := 0
	tt.OnClose(func(any) { closed++ })

	tt.Close(true)

	assert.Equal(t, toast.Closed, tt.State())
	assert.False(t, tt.IsDisposed())
	assert.Equal(t, 0, closed)
}

func TestToast_OpenWhileDetachedIsNoop(t *testing.T) {
	ft := dtesting.NewFrameTesterWithT(t)
	tt := toast.New(toast.WithDriver(ft.Driver()), toast.WithTimeout(time.Second))
	opened := 0
	tt.OnOpen(func() { opened++ })

	tt.Open()
	assert.Equal(t, toast.Closed, tt.State())
	assert.False(t, tt.TimeoutArmed())

	ft.PumpFor(5 * time.Second)
	assert.Equal(t, 0, opened)

	_, s := newScheduler(t)
	s.ShowToast(tt, toast.Infinite)
	assert.Equal(t, []*toast.Toast{tt}, s.ActiveToasts())
	assert.Equal(t, toast.Open, tt.State())
}

func TestToast_OpenWithoutEffectIsImmediate(t *testing.T) {
	_, s := newScheduler(t)
	opened := 0

	tt := toast.New(toast.WithMessage("saved"))
	tt.OnOpen(func() { opened++ })
	s.ShowToast(tt, toast.Infinite)

	assert.Equal(t, toast.Open, tt.State())
	assert.Equal(t, 1, opened)
	assert.False(t, tt.TimeoutArmed())
	assert.NotNil(t, tt.Container())
}

func TestToast_TimeoutClosesAndDisposes(t *testing.T) {
	ft, s := newScheduler(t)
	tt := s.ShowMessage("saved", time.Second)

	closed := 0
	var payload any = "unset"
	tt.OnClose(func(data any) {
		closed++
		payload = data
	})
	require.True(t, tt.TimeoutArmed())

	ft.PumpFor(999 * time.Millisecond)
	assert.Equal(t, toast.Open, tt.State())

	ft.PumpFor(time.Millisecond)
	assert.Equal(t, toast.Closed, tt.State())
	assert.True(t, tt.IsDisposed())
	assert.Equal(t, 1, closed)
	assert.Nil(t, payload)
	assert.Empty(t, s.ActiveToasts())
}

func TestToast_TimeoutWithoutSelfDispose(t *testing.T) {
	ft, s := newScheduler(t)
	tt := toast.New(toast.WithDisposeOnSelfClose(false))
	s.ShowToast(tt, 100*time.Millisecond)

	ft.PumpFor(100 * time.Millisecond)

	assert.Equal(t, toast.Closed, tt.State())
	assert.False(t, tt.IsDisposed())
}

func TestToast_SetTimeoutWhileOpenRearms(t *testing.T) {
	ft, s := newScheduler(t)
	tt := s.ShowMessage("saved", time.Second)

	ft.PumpFor(800 * time.Millisecond)
	tt.SetTimeout(time.Second)

	ft.PumpFor(900 * time.Millisecond)
	assert.Equal(t, toast.Open, tt.State())

	ft.PumpFor(100 * time.Millisecond)
	assert.Equal(t, toast.Closed, tt.State())
}

func TestToast_SetTimeoutInfiniteDisarms(t *testing.T) {
	ft, s := newScheduler(t)
	tt := s.ShowMessage("saved", time.Second)
	require.True(t, tt.TimeoutArmed())

	tt.SetTimeout(toast.Infinite)
	assert.False(t, tt.TimeoutArmed())

	ft.PumpFor(10 * time.Second)
	assert.Equal(t, toast.Open, tt.State())

	tt.SetTimeout(50 * time.Millisecond)
	ft.PumpFor(50 * time.Millisecond)
	assert.Equal(t, toast.Closed, tt.State())
}

func TestToast_NegativeTimeoutIsZero(t *testing.T) {
	ft, s := newScheduler(t)
	tt := s.ShowMessage("saved", -5*time.Second)

	assert.Equal(t, time.Duration(0), tt.Timeout())
	ft.Pump()
	assert.Equal(t, toast.Closed, tt.State())
}

func TestToast_CloseTwiceClosesOnce(t *testing.T) {
	ft, s := newScheduler(t)
	tt := toast.New(toast.WithCloseEffect(effects.FadeOut(ft.Driver(), 100*time.Millisecond, nil)))
	s.ShowToast(tt, toast.Infinite)
	closed := 0
	tt.OnClose(func(any) { closed++ })

	tt.Close(false)
	assert.Equal(t, toast.Closing, tt.State())
	tt.Close(false)
	assert.Equal(t, toast.Closing, tt.State())

	ft.PumpFor(200 * time.Millisecond)
	assert.Equal(t, toast.Closed, tt.State())
	assert.Equal(t, 1, closed)
	assert.False(t, tt.IsDisposed())
	assert.Equal(t, 1.0, tt.Alpha())
}

func TestToast_OpenEffectRunsBeforeOpen(t *testing.T) {
	ft, s := newScheduler(t)
	tt := toast.New(toast.WithOpenEffect(effects.FadeIn(ft.Driver(), 100*time.Millisecond, nil)))
	opened := 0
	tt.OnOpen(func() { opened++ })

	s.ShowToast(tt, time.Second)
	assert.Equal(t, toast.Opening, tt.State())
	assert.False(t, tt.TimeoutArmed())
	assert.Equal(t, 0.0, tt.Alpha())

	tt.Open()
	assert.Equal(t, toast.Opening, tt.State())

	ft.PumpFor(112 * time.Millisecond)
	assert.Equal(t, toast.Open, tt.State())
	assert.Equal(t, 1, opened)
	assert.Equal(t, 1.0, tt.Alpha())
	assert.True(t, tt.TimeoutArmed())
}

func TestToast_CloseInterruptsOpenEffect(t *testing.T) {
	ft, s := newScheduler(t)
	tt := toast.New(toast.WithOpenEffect(effects.FadeIn(ft.Driver(), 100*time.Millisecond, nil)))
	opened, closed := 0, 0
	tt.OnOpen(func() { opened++ })
	tt.OnClose(func(any) { closed++ })

	s.ShowToast(tt, toast.Infinite)
	ft.PumpFor(32 * time.Millisecond)
	tt.Close(false)

	assert.Equal(t, toast.Closed, tt.State())
	assert.Equal(t, 1, closed)

	ft.PumpFor(200 * time.Millisecond)
	assert.Equal(t, toast.Closed, tt.State())
	assert.Equal(t, 0, opened)
}

func TestToast_SuspendedEffectsAreNotInterrupted(t *testing.T) {
	ft, s := newScheduler(t)
	tt := toast.New(
		toast.WithOpenEffect(effects.FadeIn(ft.Driver(), 100*time.Millisecond, nil)),
		toast.WithCloseEffect(effects.SlideOut(ft.Driver(), 50*time.Millisecond, nil)),
		toast.WithSize(200, 40),
	)
	opened := 0
	tt.OnOpen(func() { opened++ })

	s.ShowToast(tt, toast.Infinite)
	tt.SuspendEffects()
	assert.True(t, tt.EffectsSuspended())
	tt.Close(false)
	assert.Equal(t, toast.Closing, tt.State())

	ft.PumpFor(32 * time.Millisecond)
	assert.Greater(t, tt.Alpha(), 0.0, "open effect keeps playing")

	ft.PumpFor(200 * time.Millisecond)
	assert.Equal(t, toast.Closed, tt.State())
	assert.Equal(t, 0, opened)

	tt.ResumeEffects()
	assert.False(t, tt.EffectsSuspended())
}

func TestToast_OpenWhileClosingIsNoop(t *testing.T) {
	ft, s := newScheduler(t)
	tt := toast.New(
		toast.WithCloseEffect(effects.FadeOut(ft.Driver(), 100*time.Millisecond, nil)),
		toast.WithDisposeOnSelfClose(false),
	)
	s.ShowToast(tt, toast.Infinite)
	tt.Close(false)

	tt.Open()
	assert.Equal(t, toast.Closing, tt.State())

	ft.PumpFor(200 * time.Millisecond)
	assert.Equal(t, toast.Closed, tt.State())
}

func TestToast_ReshowAfterClose(t *testing.T) {
	_, s := newScheduler(t)
	tt := toast.New(toast.WithMessage("again"))
	opened := 0
	tt.OnOpen(func() { opened++ })

	s.ShowToast(tt, toast.Infinite)
	tt.Close(false)
	require.Equal(t, toast.Closed, tt.State())
	require.False(t, tt.IsDisposed())

	s.ShowToast(tt, toast.Infinite)
	assert.Equal(t, toast.Open, tt.State())
	assert.Equal(t, 2, opened)
	assert.Equal(t, []*toast.Toast{tt}, s.ActiveToasts())
}

func TestToast_TriggerActionClosesWithData(t *testing.T) {
	_, s := newScheduler(t)
	tt := s.ShowMessageWithActions("deleted", []toast.Action{
		{Label: "Undo", Data: "undo"},
		{Label: "Dismiss", Data: "dismiss"},
	}, toast.Infinite)

	group, ok := tt.ActionGroup().(*toast.ButtonGroup)
	require.True(t, ok, "default action group is a ButtonGroup")
	require.Len(t, group.Actions(), 2)

	var payload any
	tt.OnClose(func(data any) { payload = data })

	require.True(t, group.Trigger(0))
	assert.Equal(t, "undo", payload)
	assert.Equal(t, toast.Closed, tt.State())
	assert.True(t, tt.IsDisposed())
	assert.True(t, group.IsDisposed())
	assert.False(t, group.Trigger(1))
}

func TestToast_NoActionsNoGroup(t *testing.T) {
	_, s := newScheduler(t)
	tt := s.ShowMessage("plain", toast.Infinite)

	assert.Nil(t, tt.ActionGroup())
}

func TestToast_CloseWithData(t *testing.T) {
	_, s := newScheduler(t)
	tt := s.ShowMessage("x", toast.Infinite)
	var payload any
	tt.OnClose(func(data any) { payload = data })

	tt.CloseWith(42, false)

	assert.Equal(t, 42, payload)
	assert.False(t, tt.IsDisposed())
}

func TestToast_DisposeAttachedCompletesClose(t *testing.T) {
	ft, s := newScheduler(t)
	tt := toast.New(toast.WithCloseEffect(effects.FadeOut(ft.Driver(), 100*time.Millisecond, nil)))
	s.ShowToast(tt, toast.Infinite)
	closed := 0
	tt.OnClose(func(any) { closed++ })

	tt.Close(false)
	require.Equal(t, toast.Closing, tt.State())
	tt.Dispose()

	assert.Equal(t, toast.Closed, tt.State())
	assert.True(t, tt.IsDisposed())
	assert.Equal(t, 1, closed)
	assert.Empty(t, s.ActiveToasts())

	ft.PumpFor(200 * time.Millisecond)
	assert.Equal(t, 1, closed)

	s.ShowToast(tt, toast.Infinite)
	assert.Equal(t, toast.Closed, tt.State(), "disposed toasts are not shown again")
	assert.Empty(t, s.ActiveToasts())
}

func TestToast_DisposeContent(t *testing.T) {
	_, s := newScheduler(t)

	owned := &countingContent{}
	s.ShowToast(toast.New(toast.WithContent(owned)), toast.Infinite).Dispose()
	assert.Equal(t, 1, owned.disposed)

	kept := &countingContent{}
	s.ShowToast(toast.New(toast.WithContent(kept), toast.WithDisposeContent(false)), toast.Infinite).Dispose()
	assert.Equal(t, 0, kept.disposed)
}

func TestToast_UnsubscribedListenerIsNotCalled(t *testing.T) {
	_, s := newScheduler(t)
	tt := toast.New()
	calls := 0
	unsubscribe := tt.OnOpen(func() { calls++ })
	unsubscribe()

	s.ShowToast(tt, toast.Infinite)

	assert.Equal(t, 0, calls)
}

type errorRecorder struct {
	errs []*terrors.ToolkitError
}

func (r *errorRecorder) HandleError(err *terrors.ToolkitError) {
	r.errs = append(r.errs, err)
}

func (r *errorRecorder) HandlePanic(*terrors.PanicError) {}

func TestToast_PanickingListenerDoesNotStallClose(t *testing.T) {
	rec := &errorRecorder{}
	prev := terrors.SetHandler(rec)
	t.Cleanup(func() { terrors.SetHandler(prev) })

	ft := dtesting.NewFrameTester()
	s := toast.NewScheduler(ft.Driver(), toast.WithQueueMode(toast.Wait))
	first := s.ShowMessage("first", toast.Infinite)
	second := s.ShowMessage("second", toast.Infinite)
	after := false
	first.OnClose(func(any) { panic("boom") })
	first.OnClose(func(any) { after = true })

	first.Close(false)

	require.Len(t, rec.errs, 1)
	assert.Equal(t, "toast.Toast.OnClose", rec.errs[0].Op)
	assert.Equal(t, terrors.KindListener, rec.errs[0].Kind)
	var pe *terrors.PanicError
	require.ErrorAs(t, rec.errs[0], &pe)
	assert.Equal(t, "boom", pe.Value)
	assert.True(t, after)
	assert.Equal(t, []*toast.Toast{second}, s.ActiveToasts())
}

func TestToast_BrokenEffectFactoryIsSkipped(t *testing.T) {
	rec := &errorRecorder{}
	prev := terrors.SetHandler(rec)
	t.Cleanup(func() { terrors.SetHandler(prev) })

	_, s := newScheduler(t)
	tt := toast.New(
		toast.WithOpenEffect(func(effects.Target) effects.Context { return nil }),
		toast.WithCloseEffect(func(effects.Target) effects.Context { panic("no close") }),
	)

	s.ShowToast(tt, toast.Infinite)
	assert.Equal(t, toast.Open, tt.State())

	tt.Close(false)
	assert.Equal(t, toast.Closed, tt.State())
	assert.Empty(t, s.ActiveToasts())

	require.Len(t, rec.errs, 2)
	assert.Equal(t, "toast.Toast.Open", rec.errs[0].Op)
	assert.Equal(t, terrors.KindEffect, rec.errs[0].Kind)
	assert.ErrorIs(t, rec.errs[0], toast.ErrNilEffect)
	assert.Equal(t, "toast.Toast.Close", rec.errs[1].Op)
	assert.Equal(t, terrors.KindEffect, rec.errs[1].Kind)
}

func TestToast_PreferredSize(t *testing.T) {
	w, h := toast.New(toast.WithSize(120, 30)).PreferredSize()
	assert.Equal(t, 120.0, w)
	assert.Equal(t, 30.0, h)

	w, h = toast.New(toast.WithMessage("one\ntwo")).PreferredSize()
	assert.Equal(t, float64(toast.DefaultWidth), w)
	assert.Equal(t, float64(2*toast.VerticalPadding+2*toast.LineHeight), h)

	_, h = toast.New(toast.WithMessage("x"), toast.WithActions(toast.Action{Label: "OK"})).PreferredSize()
	assert.Equal(t, float64(2*toast.VerticalPadding+toast.LineHeight+toast.ActionRowHeight), h)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "closed", toast.Closed.String())
	assert.Equal(t, "opening", toast.Opening.String())
	assert.Equal(t, "open", toast.Open.String())
	assert.Equal(t, "closing", toast.Closing.String())
	assert.Equal(t, "State(9)", toast.State(9).String())
}
