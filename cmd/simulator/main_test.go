package main

import (
	"testing"
	"time"

	"github.com/signalsfoundry/aero-simulator/aero"
	"github.com/signalsfoundry/aero-simulator/kb"
	"github.com/signalsfoundry/aero-simulator/model"
	"github.com/signalsfoundry/aero-simulator/timectrl"
)

// TestIntegration_FleetPresetRun runs a tiny end-to-end-style simulation:
// a preset pulled from the fleet store, stepped through the pacer.
func TestIntegration_FleetPresetRun(t *testing.T) {
	fleet := kb.NewFleet()

	trainer := model.DefaultAircraftParams()
	if err := fleet.AddAircraft("trainer", trainer); err != nil {
		t.Fatalf("AddAircraft error: %v", err)
	}
	throttledBack, err := fleet.UpdateAircraft("trainer", model.Overrides{
		ThrustRatio: floatPtr(0.1),
	})
	if err != nil {
		t.Fatalf("UpdateAircraft error: %v", err)
	}

	sim := aero.NewSimulator(throttledBack, 0.1)
	pacer := timectrl.NewPacer(time.Millisecond, timectrl.Accelerated)

	var first, last model.FlightState
	ticks := 0
	done := pacer.Start(50, func() {
		st := sim.Step()
		if ticks == 0 {
			first = st
		}
		last = st
		ticks++
	})
	<-done

	if ticks != 50 {
		t.Fatalf("expected 50 steps, got %d", ticks)
	}
	if pacer.StepsDone() != 50 {
		t.Fatalf("StepsDone() = %d, want 50", pacer.StepsDone())
	}
	// At 10% throttle drag exceeds thrust, so the aircraft must slow down.
	if last.AirspeedMS >= first.AirspeedMS {
		t.Fatalf("expected airspeed to decay, got first %.3f last %.3f",
			first.AirspeedMS, last.AirspeedMS)
	}
	if got := last.ElapsedTimeS; got < 4.9 || got > 5.1 {
		t.Fatalf("elapsed = %.2f s, want about 5.0 s", got)
	}
	if _, ok := fleet.GetAircraft("trainer"); !ok {
		t.Fatalf("trainer preset missing from fleet after run")
	}
}

func floatPtr(v float64) *float64 { return &v }
