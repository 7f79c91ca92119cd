package aero

import (
	"math"

	"github.com/signalsfoundry/aero-simulator/model"
)

// Force model for simplified longitudinal flight:
//
//	Lift = ½ ρ V² S Cl
//	Drag = ½ ρ V² S Cd
//	Cd   = Cd0 + Cl² / (π e AR)
//	Cl   = ClAlpha · α (linear, no stall)
//
// All functions are pure and total over finite inputs. Degenerate
// configurations (zero mass, non-positive e·AR) are not trapped here;
// they surface as Inf/NaN in the results, which callers can detect with
// math.IsInf / math.IsNaN.

// LiftCoefficient returns Cl for the params' angle of attack, using the
// linear lift-curve slope. The angle is converted to radians internally.
func LiftCoefficient(p model.AircraftParams) float64 {
	alphaRad := p.AngleOfAttackDeg * math.Pi / 180
	return p.ClAlpha * alphaRad
}

// DragCoefficient returns the total drag coefficient: parasitic plus
// induced. A non-positive OswaldEfficiency·AspectRatio product makes the
// induced term divide by zero or flip sign; that is a caller
// configuration error and is deliberately not special-cased.
func DragCoefficient(p model.AircraftParams) float64 {
	cl := LiftCoefficient(p)
	induced := cl * cl / (math.Pi * p.OswaldEfficiency * p.AspectRatio)
	return p.Cd0 + induced
}

// DynamicPressure returns q = ½ ρ V² (Pa).
func DynamicPressure(rho, velocity float64) float64 {
	return 0.5 * rho * velocity * velocity
}

// ComputeLift returns the lift force (N) for the params' flight condition,
// with air density taken from the ISA model at the params' altitude.
func ComputeLift(p model.AircraftParams) float64 {
	q := DynamicPressure(AirDensity(p.AltitudeM), p.AirspeedMS)
	return q * p.WingAreaM2 * LiftCoefficient(p)
}

// ComputeDrag returns the drag force (N) for the params' flight condition.
func ComputeDrag(p model.AircraftParams) float64 {
	q := DynamicPressure(AirDensity(p.AltitudeM), p.AirspeedMS)
	return q * p.WingAreaM2 * DragCoefficient(p)
}

// ComputeThrust returns the commanded thrust (N). The throttle is clamped
// to [0, 1] here even though the data model does not enforce it.
func ComputeThrust(p model.AircraftParams) float64 {
	ratio := p.ThrustRatio
	if ratio < 0 {
		ratio = 0
	} else if ratio > 1 {
		ratio = 1
	}
	return p.MaxThrustN * ratio
}

// ComputeWeight returns the aircraft weight (N).
func ComputeWeight(p model.AircraftParams) float64 {
	return p.MassKg * Gravity
}

// ComputeThrustRequired returns the thrust (N) needed for steady level
// flight, where thrust balances drag. It is independent of MaxThrustN and
// ThrustRatio.
func ComputeThrustRequired(p model.AircraftParams) float64 {
	return ComputeDrag(p)
}
