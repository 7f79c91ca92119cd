package aero

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/signalsfoundry/aero-simulator/model"
)

// Scenario describes one simulation run: a parameter set derived from the
// defaults, the step size, and how many steps to run.
type Scenario struct {
	Name   string
	Params model.AircraftParams
	DtS    float64
	Steps  int
}

// internal JSON shapes, kept unexported so we're free to evolve them.
// Every parameter field is optional; absent fields keep the default
// aircraft value.
type scenarioJSON struct {
	Name   string      `json:"name"`
	DtS    *float64    `json:"dt_s"`
	Steps  *int        `json:"steps"`
	Params *paramsJSON `json:"params"`
}

type paramsJSON struct {
	MassKg           *float64 `json:"mass_kg"`
	WingAreaM2       *float64 `json:"wing_area_m2"`
	AspectRatio      *float64 `json:"aspect_ratio"`
	ClAlpha          *float64 `json:"cl_alpha"`
	Cd0              *float64 `json:"cd0"`
	OswaldEfficiency *float64 `json:"oswald_efficiency"`
	MaxThrustN       *float64 `json:"max_thrust_n"`
	ThrustRatio      *float64 `json:"thrust_ratio"`
	AltitudeM        *float64 `json:"altitude_m"`
	AirspeedMS       *float64 `json:"airspeed_m_s"`
	AngleOfAttackDeg *float64 `json:"angle_of_attack_deg"`
}

func (j *paramsJSON) overrides() model.Overrides {
	return model.Overrides{
		MassKg:           j.MassKg,
		WingAreaM2:       j.WingAreaM2,
		AspectRatio:      j.AspectRatio,
		ClAlpha:          j.ClAlpha,
		Cd0:              j.Cd0,
		OswaldEfficiency: j.OswaldEfficiency,
		MaxThrustN:       j.MaxThrustN,
		ThrustRatio:      j.ThrustRatio,
		AltitudeM:        j.AltitudeM,
		AirspeedMS:       j.AirspeedMS,
		AngleOfAttackDeg: j.AngleOfAttackDeg,
	}
}

// LoadScenario reads a JSON scenario from r. Parameter fields not present
// in the JSON keep their DefaultAircraftParams values; dt and steps default
// to DefaultDtS and 50. It fails only on JSON and structural errors;
// physically questionable values load fine, matching the force model's
// caller-responsibility contract.
func LoadScenario(r io.Reader) (*Scenario, error) {
	var payload scenarioJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("LoadScenario: decode failed: %w", err)
	}

	sc := &Scenario{
		Name:   payload.Name,
		Params: model.DefaultAircraftParams(),
		DtS:    DefaultDtS,
		Steps:  50,
	}
	if payload.Params != nil {
		sc.Params = sc.Params.Derive(payload.Params.overrides())
	}
	if payload.DtS != nil {
		if *payload.DtS <= 0 {
			return nil, fmt.Errorf("LoadScenario: dt_s must be positive, got %v", *payload.DtS)
		}
		sc.DtS = *payload.DtS
	}
	if payload.Steps != nil {
		if *payload.Steps < 0 {
			return nil, fmt.Errorf("LoadScenario: steps must be non-negative, got %d", *payload.Steps)
		}
		sc.Steps = *payload.Steps
	}
	return sc, nil
}

// NewSimulatorFromScenario is a convenience constructor for drivers that
// load their run description from JSON.
func NewSimulatorFromScenario(sc *Scenario) *Simulator {
	return NewSimulator(sc.Params, sc.DtS)
}
