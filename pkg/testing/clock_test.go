package testing

import (
	"sync"
	"testing"
	"time"
)

func TestFakeClock_Advance(t *testing.T) {
	clk := NewFakeClock()
	start := clk.Now()

	clk.Advance(100 * time.Millisecond)
	elapsed := clk.Now().Sub(start)

	if elapsed != 100*time.Millisecond {
		t.Errorf("expected 100ms elapsed, got %v", elapsed)
	}
	if clk.Since() != 100*time.Millisecond {
		t.Errorf("expected Since() 100ms, got %v", clk.Since())
	}
}

func TestFakeClock_StartsAtEpoch(t *testing.T) {
	clk := NewFakeClock()
	if !clk.Now().Equal(Epoch) {
		t.Errorf("expected %v, got %v", Epoch, clk.Now())
	}
}

func TestFakeClock_NeverRunsBackwards(t *testing.T) {
	clk := NewFakeClock()
	clk.Advance(-time.Second)
	if clk.Since() != 0 {
		t.Errorf("negative Advance moved the clock to %v", clk.Since())
	}

	if !clk.AdvanceTo(250 * time.Millisecond) {
		t.Fatal("AdvanceTo a future instant should succeed")
	}
	if clk.AdvanceTo(100 * time.Millisecond) {
		t.Error("AdvanceTo a past instant should fail")
	}
	if got, want := clk.Now(), Epoch.Add(250*time.Millisecond); !got.Equal(want) {
		t.Errorf("Now() = %v, want %v", got, want)
	}
}

func TestFakeClock_ConcurrentAdvance(t *testing.T) {
	clk := NewFakeClock()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			clk.Advance(time.Millisecond)
		}()
	}
	wg.Wait()

	if clk.Since() != 8*time.Millisecond {
		t.Errorf("expected 8ms, got %v", clk.Since())
	}
}
