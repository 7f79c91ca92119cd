package timectrl

import (
	"testing"
	"time"
)

func TestAcceleratedRunsAllSteps(t *testing.T) {
	p := NewPacer(time.Second, Accelerated)

	count := 0
	done := p.Start(100, func() { count++ })

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("accelerated run did not finish")
	}

	if count != 100 {
		t.Fatalf("step function called %d times, want 100", count)
	}
	if p.StepsDone() != 100 {
		t.Fatalf("StepsDone = %d, want 100", p.StepsDone())
	}
}

func TestRealTimePacesSteps(t *testing.T) {
	p := NewPacer(5*time.Millisecond, RealTime)

	start := time.Now()
	done := p.Start(4, func() {})

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("real-time run did not finish")
	}

	// 4 ticks at 5 ms each; allow generous scheduling slack below.
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("real-time run finished in %v, want at least 20ms", elapsed)
	}
}

func TestNewPacerDefaultTick(t *testing.T) {
	p := NewPacer(0, RealTime)
	if p.Tick != 100*time.Millisecond {
		t.Fatalf("default tick = %v, want 100ms", p.Tick)
	}
}

func TestZeroStepsClosesImmediately(t *testing.T) {
	p := NewPacer(time.Hour, RealTime)
	done := p.Start(0, func() { t.Error("step function should not run") })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("zero-step run did not finish")
	}
}
