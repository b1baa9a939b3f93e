// Package testing provides deterministic frame driving for toolkit tests.
//
// # Quick Start
//
// Create a tester, schedule work on its driver, and pump frames:
//
//	func TestToastTimesOut(t *testing.T) {
//	    tester := dtesting.NewFrameTesterWithT(t)
//	    s := toast.NewScheduler(tester.Driver())
//
//	    tt := s.ShowMessage("Saved", time.Second)
//	    tester.PumpFor(time.Second)
//
//	    if tt.State() != toast.Closed {
//	        t.Error("expected toast to close after its timeout")
//	    }
//	}
//
// # Time
//
// The tester's [FakeClock] only moves when told to. Pump runs one frame at
// the current time; PumpFor advances in frame-sized steps; PumpAndSettle
// runs until no timers, tickers or posted callbacks remain:
//
//	tester.Clock().Advance(100 * time.Millisecond)
//	tester.Pump()
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import dtesting "github.com/go-drift/toastkit/pkg/testing"
package testing
