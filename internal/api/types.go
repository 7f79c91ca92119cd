package api

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/signalsfoundry/aero-simulator/model"
)

// jsonFloat marshals like a float64 but degrades to the strings "NaN",
// "+Inf", "-Inf" for non-finite values instead of failing the whole
// response. The physics core deliberately propagates non-finite results
// for degenerate configurations, and the API surfaces them as-is.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) {
		return []byte(`"NaN"`), nil
	}
	if math.IsInf(v, 1) {
		return []byte(`"+Inf"`), nil
	}
	if math.IsInf(v, -1) {
		return []byte(`"-Inf"`), nil
	}
	return []byte(strconv.FormatFloat(v, 'g', -1, 64)), nil
}

func (f *jsonFloat) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch s {
		case "NaN":
			*f = jsonFloat(math.NaN())
		case "+Inf":
			*f = jsonFloat(math.Inf(1))
		case "-Inf":
			*f = jsonFloat(math.Inf(-1))
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = jsonFloat(v)
	return nil
}

// paramsPayload mirrors model.Overrides on the wire: every field optional,
// absent fields untouched.
type paramsPayload struct {
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

func (p *paramsPayload) overrides() model.Overrides {
	return model.Overrides{
		MassKg:           p.MassKg,
		WingAreaM2:       p.WingAreaM2,
		AspectRatio:      p.AspectRatio,
		ClAlpha:          p.ClAlpha,
		Cd0:              p.Cd0,
		OswaldEfficiency: p.OswaldEfficiency,
		MaxThrustN:       p.MaxThrustN,
		ThrustRatio:      p.ThrustRatio,
		AltitudeM:        p.AltitudeM,
		AirspeedMS:       p.AirspeedMS,
		AngleOfAttackDeg: p.AngleOfAttackDeg,
	}
}

type aircraftJSON struct {
	Name             string  `json:"name"`
	MassKg           float64 `json:"mass_kg"`
	WingAreaM2       float64 `json:"wing_area_m2"`
	AspectRatio      float64 `json:"aspect_ratio"`
	ClAlpha          float64 `json:"cl_alpha"`
	Cd0              float64 `json:"cd0"`
	OswaldEfficiency float64 `json:"oswald_efficiency"`
	MaxThrustN       float64 `json:"max_thrust_n"`
	ThrustRatio      float64 `json:"thrust_ratio"`
	AltitudeM        float64 `json:"altitude_m"`
	AirspeedMS       float64 `json:"airspeed_m_s"`
	AngleOfAttackDeg float64 `json:"angle_of_attack_deg"`
}

func paramsResponse(name string, p model.AircraftParams) aircraftJSON {
	return aircraftJSON{
		Name:             name,
		MassKg:           p.MassKg,
		WingAreaM2:       p.WingAreaM2,
		AspectRatio:      p.AspectRatio,
		ClAlpha:          p.ClAlpha,
		Cd0:              p.Cd0,
		OswaldEfficiency: p.OswaldEfficiency,
		MaxThrustN:       p.MaxThrustN,
		ThrustRatio:      p.ThrustRatio,
		AltitudeM:        p.AltitudeM,
		AirspeedMS:       p.AirspeedMS,
		AngleOfAttackDeg: p.AngleOfAttackDeg,
	}
}

type steadyStateResponse struct {
	AltitudeM       float64   `json:"altitude_m"`
	AirDensityKgM3  jsonFloat `json:"air_density_kg_m3"`
	AirspeedMS      float64   `json:"airspeed_m_s"`
	LiftN           jsonFloat `json:"lift_n"`
	DragN           jsonFloat `json:"drag_n"`
	ThrustN         jsonFloat `json:"thrust_n"`
	WeightN         jsonFloat `json:"weight_n"`
	ThrustRequiredN jsonFloat `json:"thrust_required_n"`
}

type runRequest struct {
	Aircraft string         `json:"aircraft"`
	Params   *paramsPayload `json:"params"`
	DtS      *float64       `json:"dt_s"`
	Steps    *int           `json:"steps"`
}

type flightStateJSON struct {
	AltitudeM       jsonFloat `json:"altitude_m"`
	AirspeedMS      jsonFloat `json:"airspeed_m_s"`
	ElapsedTimeS    jsonFloat `json:"elapsed_time_s"`
	LiftN           jsonFloat `json:"lift_n"`
	DragN           jsonFloat `json:"drag_n"`
	ThrustN         jsonFloat `json:"thrust_n"`
	WeightN         jsonFloat `json:"weight_n"`
	AccelerationMS2 jsonFloat `json:"acceleration_m_s2"`
}

func toFlightStateJSON(st model.FlightState) flightStateJSON {
	return flightStateJSON{
		AltitudeM:       jsonFloat(st.AltitudeM),
		AirspeedMS:      jsonFloat(st.AirspeedMS),
		ElapsedTimeS:    jsonFloat(st.ElapsedTimeS),
		LiftN:           jsonFloat(st.LiftN),
		DragN:           jsonFloat(st.DragN),
		ThrustN:         jsonFloat(st.ThrustN),
		WeightN:         jsonFloat(st.WeightN),
		AccelerationMS2: jsonFloat(st.AccelerationMS2),
	}
}

type runResponse struct {
	DtS    float64           `json:"dt_s"`
	Steps  int               `json:"steps"`
	States []flightStateJSON `json:"states"`
}
