// Package api exposes the flight simulator over a small REST surface:
// fleet presets, steady-state force queries, and trajectory runs.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/signalsfoundry/aero-simulator/aero"
	"github.com/signalsfoundry/aero-simulator/internal/logging"
	"github.com/signalsfoundry/aero-simulator/internal/observability"
	"github.com/signalsfoundry/aero-simulator/kb"
	"github.com/signalsfoundry/aero-simulator/model"
)

const tracerName = "github.com/signalsfoundry/aero-simulator/internal/api"

// maxRunSteps bounds a single run request so one call cannot pin the
// server; sweeps should issue multiple requests.
const maxRunSteps = 100000

// Server handles the REST API. All simulation state lives per-request;
// only the fleet store is shared.
type Server struct {
	fleet     *kb.Fleet
	collector *observability.SimCollector
	log       logging.Logger
}

// NewServer constructs a Server. collector may be nil (no metrics) and log
// may be nil (no logging).
func NewServer(fleet *kb.Fleet, collector *observability.SimCollector, log logging.Logger) *Server {
	if log == nil {
		log = logging.Noop()
	}
	return &Server{fleet: fleet, collector: collector, log: log}
}

// Router returns the configured mux router with logging and metrics
// middleware applied per route.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	s.handle(r, "/healthz", s.handleHealthz).Methods(http.MethodGet)
	s.handle(r, "/aircraft", s.handleListAircraft).Methods(http.MethodGet)
	s.handle(r, "/aircraft", s.handleCreateAircraft).Methods(http.MethodPost)
	s.handle(r, "/aircraft/{name}", s.handleGetAircraft).Methods(http.MethodGet)
	s.handle(r, "/aircraft/{name}", s.handleUpdateAircraft).Methods(http.MethodPut)
	s.handle(r, "/steady-state", s.handleSteadyState).Methods(http.MethodPost)
	s.handle(r, "/simulations/run", s.handleRun).Methods(http.MethodPost)
	return r
}

func (s *Server) handle(r *mux.Router, route string, h http.HandlerFunc) *mux.Route {
	var handler http.Handler = s.withRequestLogger(h)
	if s.collector != nil {
		handler = s.collector.Middleware(route, handler)
	}
	return r.Handle(route, handler)
}

func (s *Server) withRequestLogger(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, log := logging.WithRequestLogger(r.Context(), s.log)
		log.Debug(ctx, "api request",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
		)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListAircraft(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"aircraft": s.fleet.ListAircraft()})
}

func (s *Server) handleCreateAircraft(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name   string         `json:"name"`
		Params *paramsPayload `json:"params"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	params := model.DefaultAircraftParams()
	if payload.Params != nil {
		params = params.Derive(payload.Params.overrides())
	}
	if err := s.fleet.AddAircraft(payload.Name, params); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	writeJSON(w, http.StatusCreated, paramsResponse(payload.Name, params))
}

func (s *Server) handleGetAircraft(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	params, ok := s.fleet.GetAircraft(name)
	if !ok {
		http.Error(w, "aircraft not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, paramsResponse(name, params))
}

func (s *Server) handleUpdateAircraft(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var payload paramsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	params, err := s.fleet.UpdateAircraft(name, payload.overrides())
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, paramsResponse(name, params))
}

// handleSteadyState evaluates the force model once for the requested
// condition, without stepping. The force model does not validate inputs;
// degenerate configurations yield Inf/NaN, which the response carries
// through as-is (see jsonFloat).
func (s *Server) handleSteadyState(w http.ResponseWriter, r *http.Request) {
	params, ok := s.resolveParams(w, r)
	if !ok {
		return
	}

	resp := steadyStateResponse{
		AltitudeM:       params.AltitudeM,
		AirDensityKgM3:  jsonFloat(aero.AirDensity(params.AltitudeM)),
		AirspeedMS:      params.AirspeedMS,
		LiftN:           jsonFloat(aero.ComputeLift(params)),
		DragN:           jsonFloat(aero.ComputeDrag(params)),
		ThrustN:         jsonFloat(aero.ComputeThrust(params)),
		WeightN:         jsonFloat(aero.ComputeWeight(params)),
		ThrustRequiredN: jsonFloat(aero.ComputeThrustRequired(params)),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	_, log := logging.WithRequestLogger(ctx, s.log)

	var payload runRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	params, ok := s.resolveParamsFrom(w, payload.Aircraft, payload.Params)
	if !ok {
		return
	}

	steps := 50
	if payload.Steps != nil {
		steps = *payload.Steps
	}
	if steps < 0 || steps > maxRunSteps {
		http.Error(w, "steps out of range", http.StatusBadRequest)
		return
	}
	dt := aero.DefaultDtS
	if payload.DtS != nil {
		if *payload.DtS <= 0 {
			http.Error(w, "dt_s must be positive", http.StatusBadRequest)
			return
		}
		dt = *payload.DtS
	}

	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "simulations.run", trace.WithAttributes(
		attribute.Int("sim.steps", steps),
		attribute.Float64("sim.dt_s", dt),
	))
	defer span.End()

	sim := aero.NewSimulator(params, dt)
	if s.collector != nil {
		sim.RegisterStepListener(stepObserver(s.collector))
	}

	start := time.Now()
	states := sim.Run(steps)
	span.SetAttributes(attribute.Float64("sim.elapsed_s", sim.Elapsed()))

	log.Info(ctx, "simulation run complete",
		logging.Int("steps", steps),
		logging.Float64("dt_s", dt),
		logging.Float64("wall_ms", float64(time.Since(start).Milliseconds())),
	)

	resp := runResponse{DtS: dt, Steps: steps}
	resp.States = make([]flightStateJSON, 0, len(states))
	for _, st := range states {
		resp.States = append(resp.States, toFlightStateJSON(st))
	}
	writeJSON(w, http.StatusOK, resp)
}

// resolveParams reads a steadyStateRequest-shaped body and produces the
// parameter set: fleet preset if named, defaults otherwise, overrides on
// top.
func (s *Server) resolveParams(w http.ResponseWriter, r *http.Request) (model.AircraftParams, bool) {
	var payload struct {
		Aircraft string         `json:"aircraft"`
		Params   *paramsPayload `json:"params"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid JSON payload", http.StatusBadRequest)
		return model.AircraftParams{}, false
	}
	return s.resolveParamsFrom(w, payload.Aircraft, payload.Params)
}

func (s *Server) resolveParamsFrom(w http.ResponseWriter, aircraft string, overrides *paramsPayload) (model.AircraftParams, bool) {
	params := model.DefaultAircraftParams()
	if aircraft != "" {
		preset, ok := s.fleet.GetAircraft(aircraft)
		if !ok {
			http.Error(w, "aircraft not found", http.StatusNotFound)
			return model.AircraftParams{}, false
		}
		params = preset
	}
	if overrides != nil {
		params = params.Derive(overrides.overrides())
	}
	return params, true
}

func stepObserver(collector *observability.SimCollector) func(model.FlightState) {
	last := time.Now()
	return func(st model.FlightState) {
		now := time.Now()
		collector.ObserveStep(st, now.Sub(last))
		last = now
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already out; nothing useful left to do.
		return
	}
}
