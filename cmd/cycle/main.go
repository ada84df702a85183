package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"

	zca "github.com/davetew/Zero-Carbon-Aviation"
)

const (
	defaultScenario = "~~unset~~"
)

var (
	scenario   string
	optimize   bool
	stations   bool
	ultraDebug bool
)

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")

func init() {
	// Read flags
	flag.StringVar(&scenario, "scenario", defaultScenario, "cycle scenario TOML file")
	flag.BoolVar(&optimize, "optimize", false, "search for the pressure ratio and turbine inlet temperature of maximum thermal efficiency")
	flag.BoolVar(&stations, "stations", false, "export the cycle stations (T-s and p-h data) as CSV")
	flag.BoolVar(&ultraDebug, "debug", false, "debug everything (really verbose)")
}

func main() {
	flag.Parse()
	if ultraDebug {
		log.Println("[info] DEBUG is ON")
		zca.SetLogger(zca.NewLogger("zca"))
	}
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}
	if scenario == defaultScenario {
		log.Fatal("no scenario provided")
	}
	sc, err := zca.LoadScenario(scenario)
	if err != nil {
		log.Fatalf("[conf] %s", err)
	}
	if sc.Verbose {
		log.Printf("[conf] %s", sc)
		log.Printf("[conf] inlet: %s", sc.Cycle.Inlet)
		if sc.Cycle.Fuel != nil {
			log.Printf("[conf] fuel: %s", sc.Cycle.Fuel)
		}
	}

	cfg := sc.Cycle
	if sc.TargetWork > 0 {
		pr, err := zca.PressureRatioForWork(cfg, sc.TargetWork)
		if err != nil {
			log.Fatalf("[error] no pressure ratio for %.1f kJ/kg: %s", sc.TargetWork/1e3, err)
		}
		log.Printf("[info] PR=%.3f delivers %.1f kJ/kg", pr, sc.TargetWork/1e3)
		cfg = cfg.WithPressureRatio(pr)
	}
	var result zca.CycleResult
	if optimize {
		if cfg, result, err = zca.Optimize(cfg, sc.Bounds); err != nil {
			log.Fatalf("[error] optimization failed: %s", err)
		}
		log.Printf("[info] optimum PR=%.3f TIT=%.1f K", cfg.PressureRatio, cfg.TurbineInletTemperature)
	} else if result, err = zca.Solve(cfg); err != nil {
		log.Fatalf("[error] %s", err)
	}
	fmt.Printf("=== %s ===\n%s\n", sc.Name, result)
	for _, st := range result.Stations() {
		fmt.Printf("%-16s Tt=%8.2f K  Pt=%9.2f kPa  h=%8.2f kJ/kg  s=%8.2f J/kg/K\n", st.Name, st.Tt, st.Pt/1e3, st.Enthalpy/1e3, st.Entropy)
	}
	if result.Choked {
		log.Printf("[warn] nozzle choked: pe/p0=%.3f, %.1f kJ/kg not recovered", result.UnexpandedPressureRatio, result.UnexpandedEnergy/1e3)
	}
	if stations {
		fn, err := zca.ExportStations(zca.ExportConfig{Filename: sc.OutputPrefix}, result)
		if err != nil {
			log.Fatalf("[error] %s", err)
		}
		log.Printf("[info] stations saved to %s", fn)
	}

	switch sc.Propulsor.Mode {
	case 0:
		return
	case zca.FanPropulsor:
		fr, err := sc.Propulsor.FanFor(cfg.Inlet).Evaluate()
		if err != nil {
			log.Fatalf("[error] %s", err)
		}
		fmt.Printf("fan: %s\n", fr)
		fmt.Printf("overall: ηth·ηo,fan=%.4f\n", result.ThermalEfficiency*fr.OverallEfficiency)
		return
	}
	pc, err := sc.Propulsor.Configuration(result)
	if err != nil {
		log.Fatalf("[error] %s", err)
	}
	pr, err := zca.Evaluate(pc)
	if err != nil {
		log.Fatalf("[error] %s", err)
	}
	fmt.Printf("propulsor: %s\n", pr)
	massFlow := pc.MassFlow
	if sc.Propulsor.Mode == zca.ShaftPropulsor && sc.Propulsor.CoreMassFlow > 0 {
		massFlow = sc.Propulsor.CoreMassFlow
	}
	perf, err := zca.NewPerformance(result, pr, massFlow, cfg.Fuel)
	if err != nil {
		log.Fatalf("[error] %s", err)
	}
	fmt.Printf("performance: %s\n", perf)
}
