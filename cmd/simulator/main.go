package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/signalsfoundry/aero-simulator/aero"
	"github.com/signalsfoundry/aero-simulator/model"
	"github.com/signalsfoundry/aero-simulator/timectrl"
)

func main() {
	mass := flag.Float64("mass", 1000, "aircraft mass (kg)")
	wingArea := flag.Float64("wing-area", 20, "wing reference area (m²)")
	aspectRatio := flag.Float64("aspect-ratio", 8, "wing aspect ratio")
	clAlpha := flag.Float64("cl-alpha", 5.5, "lift curve slope (per radian)")
	cd0 := flag.Float64("cd0", 0.025, "zero-lift drag coefficient")
	oswald := flag.Float64("oswald", 0.82, "Oswald efficiency factor")
	maxThrust := flag.Float64("max-thrust", 5000, "maximum thrust (N); 0 for a glider")
	throttle := flag.Float64("throttle", 1.0, "throttle 0–1")
	altitude := flag.Float64("altitude", 0, "initial altitude (m)")
	speed := flag.Float64("speed", 50, "initial true airspeed (m/s)")
	alpha := flag.Float64("alpha", 3, "angle of attack (degrees)")
	steps := flag.Int("steps", 50, "number of time steps to run")
	dt := flag.Float64("dt", 0.1, "time step (s)")
	scenarioPath := flag.String("scenario", "", "optional JSON scenario file; overrides the parameter flags")
	realtime := flag.Bool("realtime", false, "pace steps against the wall clock instead of running flat out")

	flag.Parse()

	params := model.AircraftParams{
		MassKg:           *mass,
		WingAreaM2:       *wingArea,
		AspectRatio:      *aspectRatio,
		ClAlpha:          *clAlpha,
		Cd0:              *cd0,
		OswaldEfficiency: *oswald,
		MaxThrustN:       *maxThrust,
		ThrustRatio:      *throttle,
		AltitudeM:        *altitude,
		AirspeedMS:       *speed,
		AngleOfAttackDeg: *alpha,
	}
	runDt := *dt
	runSteps := *steps

	if *scenarioPath != "" {
		f, err := os.Open(*scenarioPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open scenario %q: %v\n", *scenarioPath, err)
			os.Exit(1)
		}
		sc, err := aero.LoadScenario(f)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load scenario: %v\n", err)
			os.Exit(1)
		}
		params = sc.Params
		runDt = sc.DtS
		runSteps = sc.Steps
		if sc.Name != "" {
			fmt.Printf("Scenario: %s\n\n", sc.Name)
		}
	}

	printSteadyState(params)

	sim := aero.NewSimulator(params, runDt)

	mode := timectrl.Accelerated
	if *realtime {
		mode = timectrl.RealTime
	}
	pacer := timectrl.NewPacer(time.Duration(runDt*float64(time.Second)), mode)

	fmt.Printf("=== Time evolution (%d steps × %g s) ===\n\n", runSteps, runDt)
	fmt.Printf("  %8s %8s %10s %10s %10s %8s %8s\n",
		"Time(s)", "Alt(m)", "Speed(m/s)", "Lift(N)", "Drag(N)", "T(N)", "a(m/s²)")
	fmt.Println("  " + strings.Repeat("-", 64))

	done := pacer.Start(runSteps, func() {
		st := sim.Step()
		fmt.Printf("  %8.1f %8.1f %10.1f %10.1f %10.1f %8.1f %8.2f\n",
			st.ElapsedTimeS, st.AltitudeM, st.AirspeedMS,
			st.LiftN, st.DragN, st.ThrustN, st.AccelerationMS2)
	})
	<-done

	fmt.Println()
	fmt.Println("Done. Change parameters via command-line flags to explore the model.")
}

func printSteadyState(params model.AircraftParams) {
	rho := aero.AirDensity(params.AltitudeM)
	lift := aero.ComputeLift(params)
	drag := aero.ComputeDrag(params)
	weight := aero.ComputeWeight(params)
	thrustReq := aero.ComputeThrustRequired(params)
	thrust := aero.ComputeThrust(params)

	fmt.Println("=== Steady-state aerodynamics (current parameters) ===")
	fmt.Println()
	fmt.Printf("  Altitude:        %.0f m\n", params.AltitudeM)
	fmt.Printf("  Air density:     %.4f kg/m³\n", rho)
	fmt.Printf("  Airspeed:        %.1f m/s\n", params.AirspeedMS)
	fmt.Printf("  Angle of attack: %.1f°\n", params.AngleOfAttackDeg)
	fmt.Printf("  Mass:            %.0f kg\n", params.MassKg)
	fmt.Printf("  Wing area:       %.1f m²\n", params.WingAreaM2)
	fmt.Printf("  Aspect ratio:    %.1f\n", params.AspectRatio)
	fmt.Println()
	fmt.Printf("  Lift:            %.1f N\n", lift)
	fmt.Printf("  Weight:          %.1f N\n", weight)
	fmt.Printf("  Drag:            %.1f N\n", drag)
	fmt.Printf("  Thrust required: %.1f N (for level flight)\n", thrustReq)
	fmt.Printf("  Thrust (current): %.1f N\n", thrust)
	fmt.Println()

	if math.Abs(lift-weight) > weight*0.1 {
		fmt.Println("  → Lift ≠ Weight: aircraft would climb or descend.")
	}
	if math.Abs(thrust-thrustReq) > thrustReq*0.1 {
		fmt.Println("  → Thrust ≠ Thrust required: speed will change over time.")
	}
	fmt.Println()
}
