package model

// FlightState is the snapshot a simulator returns after each step:
// the updated trajectory state plus the forces that were acting at the
// start of the interval.
type FlightState struct {
	AltitudeM    float64
	AirspeedMS   float64
	ElapsedTimeS float64

	// Forces (N) computed from the pre-update condition.
	LiftN   float64
	DragN   float64
	ThrustN float64
	WeightN float64

	// Net axial acceleration (m/s²) applied during the step.
	AccelerationMS2 float64
}
