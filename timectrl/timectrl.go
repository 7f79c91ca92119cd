package timectrl

import (
	"sync"
	"time"
)

// Mode describes how a Pacer advances the simulation.
type Mode int

const (
	// RealTime advances one step per wall-clock tick.
	RealTime Mode = iota
	// Accelerated advances as quickly as the loop can run.
	Accelerated
)

// Pacer drives a step function (typically (*aero.Simulator).Step wrapped
// in a closure) either paced against the wall clock or as fast as
// possible. It decouples how fast the simulation runs from the fixed
// physics step the simulator owns.
type Pacer struct {
	mu sync.RWMutex

	Tick time.Duration
	Mode Mode

	stepsDone int
}

// NewPacer constructs a pacer. A non-positive tick in RealTime mode falls
// back to 100 ms, matching the simulator's default step.
func NewPacer(tick time.Duration, mode Mode) *Pacer {
	if tick <= 0 {
		tick = 100 * time.Millisecond
	}
	return &Pacer{Tick: tick, Mode: mode}
}

// StepsDone returns how many steps have been driven so far.
func (p *Pacer) StepsDone() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stepsDone
}

// Start runs the pacer for the specified number of steps in a separate
// goroutine, invoking step once per advance. It returns a channel that is
// closed when the run finishes.
func (p *Pacer) Start(steps int, step func()) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)

		var ticker *time.Ticker
		if p.Mode == RealTime {
			ticker = time.NewTicker(p.Tick)
			defer ticker.Stop()
		}

		for i := 0; i < steps; i++ {
			if ticker != nil {
				<-ticker.C
			}
			step()

			p.mu.Lock()
			p.stepsDone++
			p.mu.Unlock()
		}
	}()
	return done
}
