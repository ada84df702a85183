package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"

	zca "github.com/davetew/Zero-Carbon-Aviation"
)

var errNotRun = errors.New("not run")

var (
	cpus       int
	scenario   string
	stamped    bool
	ultraDebug bool
)

func init() {
	// Read flags
	flag.IntVar(&cpus, "cpus", -1, "number of CPUs to use for this sweep (set to 0 for max CPUs)")
	flag.StringVar(&scenario, "scenario", "", "cycle scenario TOML file with a [sweep] section")
	flag.BoolVar(&stamped, "timestamp", false, "append the creation time to the output file name")
	flag.BoolVar(&ultraDebug, "debug", false, "debug everything (really verbose)")
}

/*
 * Sweeps the pressure ratio and turbine inlet temperature of a scenario and streams every
 * case to a CSV file in the output directory (see ZCA_CONFIG).
 */

func main() {
	flag.Parse()
	if scenario == "" {
		fmt.Println("no scenario provided")
		flag.Usage()
		return
	}
	sc, err := zca.LoadScenario(scenario)
	if err != nil {
		log.Fatalf("[conf] %s", err)
	}
	if sc.Sweep.IsUseless() {
		log.Fatalf("[conf] %s has no [sweep] section", scenario)
	}
	if cpus == -1 && sc.Sweep.Workers > 0 {
		cpus = sc.Sweep.Workers
	}
	availableCPUs := runtime.NumCPU()
	if cpus <= 0 || cpus > availableCPUs {
		cpus = availableCPUs
	}
	runtime.GOMAXPROCS(cpus)
	log.Printf("[info] running on %d CPUs\n", cpus)
	if ultraDebug {
		zca.SetLogger(zca.NewLogger("zca"))
	}

	configs := zca.Grid(sc.Cycle, sc.Sweep.PressureRatios, sc.Sweep.TurbineInletTemperatures)
	log.Printf("[conf] %d cases: %d pressure ratios × %d temperatures", len(configs), len(sc.Sweep.PressureRatios), len(sc.Sweep.TurbineInletTemperatures))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Every result is also kept to report the best case.
	rslts := make(chan zca.SweepResult, 10)
	toFile := make(chan zca.SweepResult, 10)
	all := make([]zca.SweepResult, len(configs))
	for i := range all {
		all[i].Err = errNotRun
	}
	done := make(chan struct{})
	go func() {
		defer close(toFile)
		for r := range rslts {
			all[r.Index] = r
			toFile <- r
		}
	}()
	go func() {
		defer close(done)
		fn, err := zca.ExportSweep(zca.ExportConfig{Filename: sc.OutputPrefix, Timestamp: stamped}, toFile)
		if err != nil {
			log.Printf("[warn] export: %s", err)
			return
		}
		log.Printf("[info] results saved to %s", fn)
	}()
	zca.NewSweeper(sc.Name, cpus).Stream(ctx, configs, rslts)
	<-done

	failed := 0
	for _, r := range all {
		if r.Err != nil {
			failed++
		}
	}
	if ctx.Err() != nil {
		log.Printf("[warn] sweep interrupted")
	}
	best, ok := zca.Best(all)
	if !ok {
		log.Fatalf("[error] all %d cases failed", len(configs))
	}
	fmt.Printf("\n\n=== RESULT ===\n\n%d cases, %d failed\nbest: PR=%.2f TIT=%.1f K %s\n\n", len(configs), failed, best.Config.PressureRatio, best.Config.TurbineInletTemperature, best.Result)
}
