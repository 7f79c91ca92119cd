package aero

import (
	"math"
	"testing"

	"github.com/signalsfoundry/aero-simulator/model"
)

func TestStepReferenceScenario(t *testing.T) {
	p := referenceParams()
	sim := NewSimulator(p, 0.1)

	st := sim.Step()

	if st.ElapsedTimeS != 0.1 {
		t.Fatalf("ElapsedTimeS after one step = %v, want 0.1", st.ElapsedTimeS)
	}

	// Forces in the snapshot are the start-of-interval forces.
	if got, want := st.LiftN, ComputeLift(p); math.Abs(got-want) > 1e-9 {
		t.Errorf("LiftN = %v, want pre-update %v", got, want)
	}
	if got, want := st.DragN, ComputeDrag(p); math.Abs(got-want) > 1e-9 {
		t.Errorf("DragN = %v, want pre-update %v", got, want)
	}
	if got, want := st.ThrustN, 18000.0; got != want {
		t.Errorf("ThrustN = %v, want %v", got, want)
	}
	if got, want := st.WeightN, 9810.0; got != want {
		t.Errorf("WeightN = %v, want %v", got, want)
	}

	// Forward-Euler updates: v += (T − D)/m · dt, then
	// alt += v · (L − W)/W · dt.
	axial := (st.ThrustN - st.DragN) / p.MassKg
	wantV := 50 + axial*0.1
	if math.Abs(st.AirspeedMS-wantV) > 1e-9 {
		t.Errorf("AirspeedMS = %v, want %v", st.AirspeedMS, wantV)
	}
	if math.Abs(st.AccelerationMS2-axial) > 1e-9 {
		t.Errorf("AccelerationMS2 = %v, want %v", st.AccelerationMS2, axial)
	}
	wantAlt := 1000 + wantV*((st.LiftN-st.WeightN)/st.WeightN)*0.1
	if math.Abs(st.AltitudeM-wantAlt) > 1e-9 {
		t.Errorf("AltitudeM = %v, want %v", st.AltitudeM, wantAlt)
	}
}

func TestStepClimbSignFollowsLiftExcess(t *testing.T) {
	// Fast and pitched up: lift well above weight, must climb.
	climbing := referenceParams().Derive(model.Overrides{AirspeedMS: floatPtr(80)})
	sim := NewSimulator(climbing, 0.1)
	if st := sim.Step(); st.AltitudeM <= 1000 {
		t.Errorf("expected climb with excess lift, altitude = %v", st.AltitudeM)
	}

	// Slow: lift below weight, must descend.
	sinking := referenceParams().Derive(model.Overrides{AirspeedMS: floatPtr(30)})
	sim = NewSimulator(sinking, 0.1)
	if st := sim.Step(); st.AltitudeM >= 1000 {
		t.Errorf("expected descent with lift deficit, altitude = %v", st.AltitudeM)
	}
}

func TestSimulatorDeterminism(t *testing.T) {
	a := NewSimulator(referenceParams(), 0.05)
	b := NewSimulator(referenceParams(), 0.05)

	for i := 0; i < 200; i++ {
		sa := a.Step()
		sb := b.Step()
		if sa != sb {
			t.Fatalf("step %d diverged: %+v vs %+v", i, sa, sb)
		}
	}
}

func TestAirspeedFloorAtZero(t *testing.T) {
	// No thrust, huge parasitic drag: the aircraft decelerates hard but
	// airspeed must never go negative.
	p := model.DefaultAircraftParams().Derive(model.Overrides{
		MaxThrustN:  floatPtr(0),
		ThrustRatio: floatPtr(0),
		Cd0:         floatPtr(5),
		AirspeedMS:  floatPtr(40),
	})
	sim := NewSimulator(p, 0.5)

	for i := 0; i < 500; i++ {
		st := sim.Step()
		if st.AirspeedMS < 0 {
			t.Fatalf("step %d: airspeed %v went negative", i, st.AirspeedMS)
		}
	}
	if final := sim.Run(1)[0]; final.AirspeedMS != 0 {
		t.Fatalf("expected airspeed to settle at 0, got %v", final.AirspeedMS)
	}
}

func TestGliderHasZeroThrustEveryStep(t *testing.T) {
	p := model.DefaultAircraftParams().Derive(model.Overrides{
		MaxThrustN:  floatPtr(0),
		ThrustRatio: floatPtr(0),
	})
	sim := NewSimulator(p, 0.1)

	prevSpeed := p.AirspeedMS
	for i := 0; i < 50; i++ {
		st := sim.Step()
		if st.ThrustN != 0 {
			t.Fatalf("step %d: glider thrust = %v, want 0", i, st.ThrustN)
		}
		if st.AirspeedMS >= prevSpeed {
			t.Fatalf("step %d: glider airspeed did not decay (%v -> %v)", i, prevSpeed, st.AirspeedMS)
		}
		prevSpeed = st.AirspeedMS
	}
}

func TestSetParamsKeepsTrajectory(t *testing.T) {
	sim := NewSimulator(referenceParams(), 0.1)
	for i := 0; i < 10; i++ {
		sim.Step()
	}
	beforeElapsed := sim.Elapsed()

	// Cut the throttle mid-flight.
	sim.ApplyOverrides(model.Overrides{ThrustRatio: floatPtr(0)})

	if sim.Elapsed() != beforeElapsed {
		t.Fatalf("ApplyOverrides reset elapsed time: %v -> %v", beforeElapsed, sim.Elapsed())
	}
	st := sim.Step()
	if st.ThrustN != 0 {
		t.Fatalf("thrust after throttle cut = %v, want 0", st.ThrustN)
	}
	if st.ElapsedTimeS != beforeElapsed+0.1 {
		t.Fatalf("elapsed after throttle cut = %v, want %v", st.ElapsedTimeS, beforeElapsed+0.1)
	}
}

func TestSetParamsReplacesWholeRecord(t *testing.T) {
	sim := NewSimulator(referenceParams(), 0.1)
	sim.Step()

	next := model.DefaultAircraftParams()
	sim.SetParams(next)
	if sim.Params() != next {
		t.Fatalf("SetParams did not replace the record")
	}
}

func TestDegenerateMassPropagatesWithoutPanic(t *testing.T) {
	p := referenceParams().Derive(model.Overrides{MassKg: floatPtr(0)})
	sim := NewSimulator(p, 0.1)

	st := sim.Step()
	if !math.IsInf(st.AccelerationMS2, 0) && !math.IsNaN(st.AccelerationMS2) {
		t.Fatalf("zero mass acceleration = %v, want non-finite", st.AccelerationMS2)
	}
}

func TestRunAndStepListeners(t *testing.T) {
	sim := NewSimulator(referenceParams(), 0.1)

	var seen []model.FlightState
	sim.RegisterStepListener(func(st model.FlightState) {
		seen = append(seen, st)
	})

	states := sim.Run(25)
	if len(states) != 25 {
		t.Fatalf("Run returned %d states, want 25", len(states))
	}
	if len(seen) != 25 {
		t.Fatalf("listener saw %d states, want 25", len(seen))
	}
	for i := range states {
		if states[i] != seen[i] {
			t.Fatalf("state %d mismatch between Run result and listener", i)
		}
	}
}

func TestNewSimulatorDefaultDt(t *testing.T) {
	sim := NewSimulator(model.DefaultAircraftParams(), 0)
	if sim.Dt() != DefaultDtS {
		t.Fatalf("Dt = %v, want default %v", sim.Dt(), DefaultDtS)
	}
}
