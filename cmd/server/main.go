package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"

	"github.com/signalsfoundry/aero-simulator/internal/api"
	"github.com/signalsfoundry/aero-simulator/internal/logging"
	"github.com/signalsfoundry/aero-simulator/internal/observability"
	"github.com/signalsfoundry/aero-simulator/kb"
	"github.com/signalsfoundry/aero-simulator/model"
)

func main() {
	addr := flag.String("addr", ":8080", "TCP address the API server listens on")
	metricsAddr := flag.String("metrics-addr", ":9090", "HTTP address for Prometheus /metrics")
	fleetPath := flag.String("fleet", "configs/aircraft.json", "Path to a JSON file with aircraft presets")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	collector, err := observability.NewSimCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise metrics collector", logging.String("error", err.Error()))
		os.Exit(1)
	}

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.String("error", err.Error()))
		os.Exit(1)
	}

	fleet := kb.NewFleet()
	loadFleet(ctx, log, fleet, *fleetPath)

	metricsSrv := serveMetrics(*metricsAddr, collector, log)

	server := api.NewServer(fleet, collector, log)
	apiSrv := &http.Server{
		Addr:    *addr,
		Handler: server.Router(),
	}

	log.Info(ctx, "starting API server", logging.String("addr", *addr))
	go func() {
		if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "API server exited", logging.String("error", err.Error()))
		}
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	<-stopCtx.Done()

	log.Info(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = apiSrv.Shutdown(shutdownCtx)
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
	observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)
}

func serveMetrics(addr string, collector *observability.SimCollector, log logging.Logger) *http.Server {
	r := mux.NewRouter()
	r.Handle("/metrics", collector.Handler())
	srv := &http.Server{Addr: addr, Handler: r}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(context.Background(), "metrics server exited", logging.String("error", err.Error()))
		}
	}()
	return srv
}

// fleet file shapes mirror the API's optional-field convention: presets
// start from the defaults and override only what they name.
type fleetFileJSON struct {
	Aircraft []fleetEntryJSON `json:"aircraft"`
}

type fleetEntryJSON struct {
	Name   string          `json:"name"`
	Params json.RawMessage `json:"params"`
}

// loadFleet reads aircraft presets from JSON and registers them in the
// store. A missing file is not fatal; the server just starts with an
// empty fleet.
func loadFleet(ctx context.Context, log logging.Logger, fleet *kb.Fleet, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn(ctx, "no fleet presets loaded", logging.String("path", path), logging.String("error", err.Error()))
		return
	}

	var file fleetFileJSON
	if err := json.Unmarshal(data, &file); err != nil {
		log.Error(ctx, "failed to parse fleet presets", logging.String("path", path), logging.String("error", err.Error()))
		os.Exit(1)
	}

	for _, entry := range file.Aircraft {
		params := model.DefaultAircraftParams()
		if len(entry.Params) > 0 {
			var o overridesJSON
			if err := json.Unmarshal(entry.Params, &o); err != nil {
				log.Error(ctx, "failed to parse preset params",
					logging.String("aircraft", entry.Name), logging.String("error", err.Error()))
				os.Exit(1)
			}
			params = params.Derive(o.overrides())
		}
		if err := fleet.AddAircraft(entry.Name, params); err != nil {
			log.Error(ctx, "failed to register preset",
				logging.String("aircraft", entry.Name), logging.String("error", err.Error()))
			os.Exit(1)
		}
	}
	log.Info(ctx, "fleet presets loaded",
		logging.String("path", path), logging.Int("count", len(file.Aircraft)))
}

type overridesJSON struct {
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

func (o *overridesJSON) overrides() model.Overrides {
	return model.Overrides{
		MassKg:           o.MassKg,
		WingAreaM2:       o.WingAreaM2,
		AspectRatio:      o.AspectRatio,
		ClAlpha:          o.ClAlpha,
		Cd0:              o.Cd0,
		OswaldEfficiency: o.OswaldEfficiency,
		MaxThrustN:       o.MaxThrustN,
		ThrustRatio:      o.ThrustRatio,
		AltitudeM:        o.AltitudeM,
		AirspeedMS:       o.AirspeedMS,
		AngleOfAttackDeg: o.AngleOfAttackDeg,
	}
}
