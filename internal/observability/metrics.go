package observability

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/signalsfoundry/aero-simulator/model"
)

// SimCollector bundles Prometheus metrics for the flight simulator and
// provides helpers to wire them into the HTTP API and the step loop.
type SimCollector struct {
	gatherer prometheus.Gatherer

	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec

	StepsTotal    prometheus.Counter
	StepDurations prometheus.Histogram

	Altitude prometheus.Gauge
	Airspeed prometheus.Gauge
	Lift     prometheus.Gauge
	Drag     prometheus.Gauge
	Thrust   prometheus.Gauge
}

// NewSimCollector registers the simulator's Prometheus metrics against the
// provided registerer, defaulting to the global registry when nil.
func NewSimCollector(reg prometheus.Registerer) (*SimCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "api_requests_total",
		Help: "Total number of handled API requests, labeled by route, method, and status code.",
	}, []string{"route", "method", "code"})
	requests, err := registerCounterVec(reg, requests, "api_requests_total")
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "api_request_duration_seconds",
		Help:    "API request latency in seconds.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"route", "method"})
	durations, err = registerHistogramVec(reg, durations, "api_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	steps, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sim_steps_total",
		Help: "Total number of simulation steps executed.",
	}), "sim_steps_total")
	if err != nil {
		return nil, err
	}

	stepDurations, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sim_step_duration_seconds",
		Help:    "Wall-clock duration of a single simulation step.",
		Buckets: prometheus.ExponentialBuckets(1e-7, 10, 8),
	}), "sim_step_duration_seconds")
	if err != nil {
		return nil, err
	}

	altitude, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "flight_altitude_meters",
		Help: "Altitude of the most recently stepped trajectory.",
	}), "flight_altitude_meters")
	if err != nil {
		return nil, err
	}
	airspeed, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "flight_airspeed_mps",
		Help: "True airspeed of the most recently stepped trajectory.",
	}), "flight_airspeed_mps")
	if err != nil {
		return nil, err
	}
	lift, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "flight_lift_newtons",
		Help: "Lift force at the start of the most recent step.",
	}), "flight_lift_newtons")
	if err != nil {
		return nil, err
	}
	drag, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "flight_drag_newtons",
		Help: "Drag force at the start of the most recent step.",
	}), "flight_drag_newtons")
	if err != nil {
		return nil, err
	}
	thrust, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "flight_thrust_newtons",
		Help: "Thrust at the start of the most recent step.",
	}), "flight_thrust_newtons")
	if err != nil {
		return nil, err
	}

	return &SimCollector{
		gatherer:      gatherer,
		HTTPRequests:  requests,
		HTTPDurations: durations,
		StepsTotal:    steps,
		StepDurations: stepDurations,
		Altitude:      altitude,
		Airspeed:      airspeed,
		Lift:          lift,
		Drag:          drag,
		Thrust:        thrust,
	}, nil
}

// ObserveStep records a completed simulation step: the resulting flight
// state and how long the step took.
func (c *SimCollector) ObserveStep(state model.FlightState, elapsed time.Duration) {
	if c == nil {
		return
	}
	if c.StepsTotal != nil {
		c.StepsTotal.Inc()
	}
	if c.StepDurations != nil {
		c.StepDurations.Observe(elapsed.Seconds())
	}
	if c.Altitude != nil {
		c.Altitude.Set(state.AltitudeM)
	}
	if c.Airspeed != nil {
		c.Airspeed.Set(state.AirspeedMS)
	}
	if c.Lift != nil {
		c.Lift.Set(state.LiftN)
	}
	if c.Drag != nil {
		c.Drag.Set(state.DragN)
	}
	if c.Thrust != nil {
		c.Thrust.Set(state.ThrustN)
	}
}

// Middleware records request counts and durations for HTTP handlers. The
// route label is the registered pattern, not the raw URL, to keep label
// cardinality bounded.
func (c *SimCollector) Middleware(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)

		if c == nil {
			return
		}
		if c.HTTPRequests != nil {
			c.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(sw.code)).Inc()
		}
		if c.HTTPDurations != nil {
			c.HTTPDurations.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
		}
	})
}

// Handler exposes a ready-to-use /metrics handler.
func (c *SimCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
