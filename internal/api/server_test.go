package api

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/signalsfoundry/aero-simulator/kb"
	"github.com/signalsfoundry/aero-simulator/model"
)

func newTestServer(t *testing.T) (*Server, *kb.Fleet) {
	t.Helper()
	fleet := kb.NewFleet()
	return NewServer(fleet, nil, nil), fleet
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	return rr
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)
	rr := doJSON(t, s, http.MethodGet, "/healthz", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("/healthz status = %d, want 200", rr.Code)
	}
}

func TestAircraftLifecycle(t *testing.T) {
	s, _ := newTestServer(t)

	rr := doJSON(t, s, http.MethodPost, "/aircraft", map[string]any{
		"name":   "glider",
		"params": map[string]any{"max_thrust_n": 0, "thrust_ratio": 0},
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, s, http.MethodGet, "/aircraft/glider", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("get status = %d", rr.Code)
	}
	var got aircraftJSON
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode aircraft: %v", err)
	}
	if got.MaxThrustN != 0 || got.ThrustRatio != 0 {
		t.Fatalf("created aircraft = %+v, want zero thrust", got)
	}
	if got.MassKg != model.DefaultAircraftParams().MassKg {
		t.Fatalf("unnamed field not defaulted: %+v", got)
	}

	rr = doJSON(t, s, http.MethodPut, "/aircraft/glider", map[string]any{"airspeed_m_s": 35})
	if rr.Code != http.StatusOK {
		t.Fatalf("update status = %d", rr.Code)
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode updated aircraft: %v", err)
	}
	if got.AirspeedMS != 35 {
		t.Fatalf("updated airspeed = %v, want 35", got.AirspeedMS)
	}

	rr = doJSON(t, s, http.MethodGet, "/aircraft", nil)
	var list struct {
		Aircraft []string `json:"aircraft"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Aircraft) != 1 || list.Aircraft[0] != "glider" {
		t.Fatalf("aircraft list = %v", list.Aircraft)
	}

	if rr := doJSON(t, s, http.MethodGet, "/aircraft/phantom", nil); rr.Code != http.StatusNotFound {
		t.Fatalf("missing aircraft status = %d, want 404", rr.Code)
	}
	if rr := doJSON(t, s, http.MethodPost, "/aircraft", map[string]any{"name": "glider"}); rr.Code != http.StatusConflict {
		t.Fatalf("duplicate create status = %d, want 409", rr.Code)
	}
}

func TestSteadyStateReferenceScenario(t *testing.T) {
	s, _ := newTestServer(t)

	rr := doJSON(t, s, http.MethodPost, "/steady-state", map[string]any{
		"params": map[string]any{
			"oswald_efficiency":   0.8,
			"max_thrust_n":        20000,
			"thrust_ratio":        0.9,
			"altitude_m":          1000,
			"airspeed_m_s":        50,
			"angle_of_attack_deg": 3,
		},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("steady-state status = %d, body %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		AirDensityKgM3  float64 `json:"air_density_kg_m3"`
		LiftN           float64 `json:"lift_n"`
		DragN           float64 `json:"drag_n"`
		ThrustN         float64 `json:"thrust_n"`
		WeightN         float64 `json:"weight_n"`
		ThrustRequiredN float64 `json:"thrust_required_n"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode steady-state: %v", err)
	}

	if math.Abs(resp.AirDensityKgM3-1.1116) > 5e-4 {
		t.Errorf("air density = %v, want ≈1.1116", resp.AirDensityKgM3)
	}
	if math.Abs(resp.LiftN-8002.91) > 0.01 {
		t.Errorf("lift = %v, want ≈8002.91", resp.LiftN)
	}
	if math.Abs(resp.DragN-809.37) > 0.01 {
		t.Errorf("drag = %v, want ≈809.37", resp.DragN)
	}
	if resp.ThrustN != 18000 {
		t.Errorf("thrust = %v, want 18000", resp.ThrustN)
	}
	if resp.WeightN != 9810 {
		t.Errorf("weight = %v, want 9810", resp.WeightN)
	}
	if resp.ThrustRequiredN != resp.DragN {
		t.Errorf("thrust required = %v, want drag %v", resp.ThrustRequiredN, resp.DragN)
	}
}

func TestSteadyStateCarriesNonFiniteValues(t *testing.T) {
	s, _ := newTestServer(t)

	rr := doJSON(t, s, http.MethodPost, "/steady-state", map[string]any{
		"params": map[string]any{"oswald_efficiency": 0},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("steady-state status = %d", rr.Code)
	}

	var raw map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode raw response: %v", err)
	}
	if raw["drag_n"] != "+Inf" {
		t.Fatalf("drag_n = %v, want the string \"+Inf\"", raw["drag_n"])
	}
}

func TestRunEndpoint(t *testing.T) {
	s, fleet := newTestServer(t)
	if err := fleet.AddAircraft("trainer", model.DefaultAircraftParams()); err != nil {
		t.Fatalf("AddAircraft: %v", err)
	}

	rr := doJSON(t, s, http.MethodPost, "/simulations/run", map[string]any{
		"aircraft": "trainer",
		"dt_s":     0.1,
		"steps":    3,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("run status = %d, body %s", rr.Code, rr.Body.String())
	}

	var resp runResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode run response: %v", err)
	}
	if resp.Steps != 3 || len(resp.States) != 3 {
		t.Fatalf("run returned %d/%d states, want 3", resp.Steps, len(resp.States))
	}
	if got := float64(resp.States[2].ElapsedTimeS); math.Abs(got-0.3) > 1e-9 {
		t.Fatalf("final elapsed = %v, want 0.3", got)
	}
}

func TestRunEndpointValidation(t *testing.T) {
	s, _ := newTestServer(t)

	if rr := doJSON(t, s, http.MethodPost, "/simulations/run", map[string]any{"aircraft": "phantom"}); rr.Code != http.StatusNotFound {
		t.Fatalf("unknown aircraft status = %d, want 404", rr.Code)
	}
	if rr := doJSON(t, s, http.MethodPost, "/simulations/run", map[string]any{"dt_s": -0.5}); rr.Code != http.StatusBadRequest {
		t.Fatalf("negative dt status = %d, want 400", rr.Code)
	}
	if rr := doJSON(t, s, http.MethodPost, "/simulations/run", map[string]any{"steps": maxRunSteps + 1}); rr.Code != http.StatusBadRequest {
		t.Fatalf("oversized steps status = %d, want 400", rr.Code)
	}
}
