package aero

import (
	"github.com/signalsfoundry/aero-simulator/model"
)

// DefaultDtS is the time step used when a simulator is constructed
// without an explicit one.
const DefaultDtS = 0.1

// Simulator integrates the force model forward in time with a fixed-step
// forward-Euler scheme. It owns its trajectory state (altitude, airspeed,
// elapsed time); the AircraftParams it references are shared read-only and
// can be swapped between steps to model pilot inputs.
//
// A Simulator is not safe for concurrent use; run one instance per
// trajectory.
type Simulator struct {
	params model.AircraftParams

	altitudeM  float64
	airspeedMS float64
	elapsedS   float64
	dtS        float64

	stepListeners []func(model.FlightState)
}

// NewSimulator constructs a simulator whose initial altitude and airspeed
// come from params. A non-positive dtS falls back to DefaultDtS.
func NewSimulator(params model.AircraftParams, dtS float64) *Simulator {
	if dtS <= 0 {
		dtS = DefaultDtS
	}
	return &Simulator{
		params:     params,
		altitudeM:  params.AltitudeM,
		airspeedMS: params.AirspeedMS,
		dtS:        dtS,
	}
}

// RegisterStepListener adds a callback invoked with the snapshot of every
// completed step.
func (s *Simulator) RegisterStepListener(fn func(model.FlightState)) {
	s.stepListeners = append(s.stepListeners, fn)
}

// Step advances the simulation by one time step and returns the resulting
// state. Longitudinal dynamics are simplified: thrust−drag acts along the
// flight path, and climb rate follows from the lift/weight excess. Forces
// in the returned snapshot are those at the start of the interval.
//
// Degenerate configurations propagate as Inf/NaN through the state rather
// than being trapped; the only guards are the airspeed floor at zero and
// the throttle clamp inside ComputeThrust.
func (s *Simulator) Step() model.FlightState {
	cond := s.params
	cond.AltitudeM = s.altitudeM
	cond.AirspeedMS = s.airspeedMS

	lift := ComputeLift(cond)
	drag := ComputeDrag(cond)
	thrust := ComputeThrust(cond)
	weight := ComputeWeight(cond)

	// Along the flight path: a = (T − D) / m, small flight-path angle.
	axial := (thrust - drag) / cond.MassKg

	v := s.airspeedMS + axial*s.dtS
	if v < 0 {
		v = 0
	}
	s.airspeedMS = v

	// sin(γ) ≈ (L − W) / W: excess lift climbs, deficit descends,
	// L == W holds level.
	sinGamma := (lift - weight) / weight
	s.altitudeM += v * sinGamma * s.dtS

	s.elapsedS += s.dtS

	state := model.FlightState{
		AltitudeM:       s.altitudeM,
		AirspeedMS:      s.airspeedMS,
		ElapsedTimeS:    s.elapsedS,
		LiftN:           lift,
		DragN:           drag,
		ThrustN:         thrust,
		WeightN:         weight,
		AccelerationMS2: axial,
	}
	for _, fn := range s.stepListeners {
		fn(state)
	}
	return state
}

// Run advances the simulation by the given number of steps and returns the
// sequence of snapshots.
func (s *Simulator) Run(steps int) []model.FlightState {
	states := make([]model.FlightState, 0, steps)
	for i := 0; i < steps; i++ {
		states = append(states, s.Step())
	}
	return states
}

// SetParams replaces the current parameter set without touching the
// trajectory state, so mid-flight changes keep their history.
func (s *Simulator) SetParams(p model.AircraftParams) {
	s.params = p
}

// ApplyOverrides derives a new parameter set from the current one and
// makes it current. Trajectory state is preserved.
func (s *Simulator) ApplyOverrides(o model.Overrides) {
	s.params = s.params.Derive(o)
}

// Params returns the current parameter set.
func (s *Simulator) Params() model.AircraftParams { return s.params }

// Dt returns the fixed step size in seconds.
func (s *Simulator) Dt() float64 { return s.dtS }

// Elapsed returns the simulated time in seconds since construction.
func (s *Simulator) Elapsed() float64 { return s.elapsedS }
