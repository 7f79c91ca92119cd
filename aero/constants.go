package aero

// Standard sea-level constants (SI) used by the atmosphere and force models.
const (
	// Gravity is standard gravitational acceleration (m/s²).
	Gravity = 9.81
	// RhoSeaLevel is sea-level air density at 15 °C (kg/m³).
	RhoSeaLevel = 1.225
	// TempSeaLevel is the ISA sea-level temperature (K).
	TempSeaLevel = 288.15
	// LapseRate is the tropospheric temperature lapse rate (K/m).
	LapseRate = 0.0065
	// GasConstant is the specific gas constant of dry air (J/(kg·K)).
	GasConstant = 287.05
	// PressureSeaLevel is the ISA sea-level pressure (Pa).
	PressureSeaLevel = 101325.0
)
