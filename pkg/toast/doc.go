// Package toast shows transient notifications above a render context's
// content and schedules them under a concurrency cap.
//
// # Toasts
//
// A [Toast] carries an optional message, an optional list of [Action]s and
// optional custom content. It moves through Closed → Opening → Open →
// Closing → Closed; the Opening and Closing steps exist only while an open or
// close effect is playing. An open toast with a finite timeout closes itself
// when the timeout elapses.
//
// # Scheduling
//
// A [Scheduler] admits at most MaxVisibleToasts toasts at a time. Further
// requests wait in a FIFO queue. In [CancelTimeout] mode a new request also
// asks the oldest auto-dismissing toast to close early, and promotion from
// the queue skips older auto-dismissing entries in favour of the newest one.
// In [Wait] mode nothing is closed early.
//
//	driver := animation.NewFrameDriver(nil)
//	surface := toast.NewSurface("main")
//	s := toast.NewScheduler(driver, toast.WithRenderContext(surface))
//
//	s.ShowMessage("Saved", toast.DefaultTimeout)
//	s.ShowMessageWithActions("Item deleted", []toast.Action{{Label: "Undo", Data: "undo"}}, toast.Infinite)
//
// # Threading
//
// Toasts and schedulers belong to the goroutine stepping their
// [animation.FrameDriver]. Use FrameDriver.Post or FrameDriver.Call to reach
// them from elsewhere.
package toast
