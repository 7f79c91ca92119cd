package aero

import "math"

// AirDensity returns air density (kg/m³) at the given altitude using the
// ISA troposphere model: a linear temperature lapse combined with the
// barometric formula and the ideal gas relation.
//
// The formula is evaluated for any finite altitude. It is accurate within
// the troposphere (0–11 km); outside that band it still produces a defined
// value, just not a physically meaningful one. Callers own the choice of
// sensible inputs.
func AirDensity(altitudeM float64) float64 {
	t := TempSeaLevel - LapseRate*altitudeM
	return RhoSeaLevel * math.Pow(t/TempSeaLevel, Gravity/(GasConstant*LapseRate)-1)
}

// Pressure returns static pressure (Pa) at the given altitude under the
// same troposphere model as AirDensity.
func Pressure(altitudeM float64) float64 {
	t := TempSeaLevel - LapseRate*altitudeM
	return PressureSeaLevel * math.Pow(t/TempSeaLevel, Gravity/(GasConstant*LapseRate))
}
