package model

// AircraftParams holds the aircraft and flight-condition parameters that
// drive the force model. It is a plain value: copy it freely, derive
// variants with Derive. Nothing here is validated; out-of-range values
// propagate into the force computations (see the aero package).
type AircraftParams struct {
	// Mass & geometry
	MassKg      float64
	WingAreaM2  float64
	AspectRatio float64 // span² / area; governs induced drag

	// Lift/drag model (simplified polar)
	ClAlpha          float64 // lift curve slope, per radian; ~2π for a thin airfoil
	Cd0              float64 // zero-lift (parasitic) drag coefficient
	OswaldEfficiency float64

	// Propulsion
	MaxThrustN  float64 // 0 for a glider
	ThrustRatio float64 // throttle, 0 = idle, 1 = full

	// Flight condition
	AltitudeM        float64
	AirspeedMS       float64
	AngleOfAttackDeg float64
}

// DefaultAircraftParams returns the reference light-aircraft configuration.
func DefaultAircraftParams() AircraftParams {
	return AircraftParams{
		MassKg:           1000,
		WingAreaM2:       20,
		AspectRatio:      8,
		ClAlpha:          5.5,
		Cd0:              0.025,
		OswaldEfficiency: 0.82,
		MaxThrustN:       5000,
		ThrustRatio:      1.0,
		AltitudeM:        0,
		AirspeedMS:       50,
		AngleOfAttackDeg: 3,
	}
}

// Overrides names the AircraftParams fields to change when deriving a new
// record. Nil fields are left at the source value.
type Overrides struct {
	MassKg           *float64
	WingAreaM2       *float64
	AspectRatio      *float64
	ClAlpha          *float64
	Cd0              *float64
	OswaldEfficiency *float64
	MaxThrustN       *float64
	ThrustRatio      *float64
	AltitudeM        *float64
	AirspeedMS       *float64
	AngleOfAttackDeg *float64
}

// Derive returns a copy of p with the non-nil override fields applied.
// p itself is never modified.
func (p AircraftParams) Derive(o Overrides) AircraftParams {
	if o.MassKg != nil {
		p.MassKg = *o.MassKg
	}
	if o.WingAreaM2 != nil {
		p.WingAreaM2 = *o.WingAreaM2
	}
	if o.AspectRatio != nil {
		p.AspectRatio = *o.AspectRatio
	}
	if o.ClAlpha != nil {
		p.ClAlpha = *o.ClAlpha
	}
	if o.Cd0 != nil {
		p.Cd0 = *o.Cd0
	}
	if o.OswaldEfficiency != nil {
		p.OswaldEfficiency = *o.OswaldEfficiency
	}
	if o.MaxThrustN != nil {
		p.MaxThrustN = *o.MaxThrustN
	}
	if o.ThrustRatio != nil {
		p.ThrustRatio = *o.ThrustRatio
	}
	if o.AltitudeM != nil {
		p.AltitudeM = *o.AltitudeM
	}
	if o.AirspeedMS != nil {
		p.AirspeedMS = *o.AirspeedMS
	}
	if o.AngleOfAttackDeg != nil {
		p.AngleOfAttackDeg = *o.AngleOfAttackDeg
	}
	return p
}
