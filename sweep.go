package zca

import (
	"context"
	"errors"
	"math"
	"runtime"
	"sync"

	kitlog "github.com/go-kit/log"
	"gonum.org/v1/gonum/floats"
)

// SweepResult is the outcome of one configuration of a sweep. Err is set if that case
// failed; other cases are unaffected.
type SweepResult struct {
	Index  int
	Config CycleConfiguration
	Result CycleResult
	Err    error
}

// Sweeper evaluates independent cycle configurations over a bounded number of goroutines.
type Sweeper struct {
	Name    string
	Workers int
	logger  kitlog.Logger
}

// NewSweeper returns a new Sweeper. A non positive number of workers uses all CPUs.
func NewSweeper(name string, workers int) *Sweeper {
	if workers <= 0 || workers > runtime.NumCPU() {
		workers = runtime.NumCPU()
	}
	return &Sweeper{Name: name, Workers: workers, logger: kitlog.With(currentLogger(), "sweep", name)}
}

// Stream solves every configuration and sends each result on out as soon as it is
// available, in completion order. It closes out when done. Cancelling the context stops
// dispatching new cases; cases already running complete.
func (s *Sweeper) Stream(ctx context.Context, configs []CycleConfiguration, out chan<- SweepResult) {
	defer close(out)
	var wg sync.WaitGroup
	cpuChan := make(chan bool, s.Workers)
	s.logger.Log("level", "info", "subsys", "sweep", "cases", len(configs), "workers", s.Workers)
dispatch:
	for i, cfg := range configs {
		select {
		case <-ctx.Done():
			break dispatch
		case cpuChan <- true:
			if ctx.Err() != nil {
				<-cpuChan
				break dispatch
			}
		}
		wg.Add(1)
		go func(i int, cfg CycleConfiguration) {
			defer wg.Done()
			r, err := Solve(cfg)
			<-cpuChan
			if err != nil {
				kv := []interface{}{"level", "warning", "subsys", "sweep", "case", i, "err", err}
				var perr *ParamError
				if errors.As(err, &perr) {
					kv = append(kv, perr.Keyvals()...)
				}
				s.logger.Log(kv...)
			}
			out <- SweepResult{Index: i, Config: cfg, Result: r, Err: err}
		}(i, cfg)
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		s.logger.Log("level", "notice", "subsys", "sweep", "status", "cancelled", "err", err)
	}
}

// Run solves every configuration and returns the results in input order. Cases not
// dispatched before the context was cancelled carry the context error, which is also
// returned.
func (s *Sweeper) Run(ctx context.Context, configs []CycleConfiguration) ([]SweepResult, error) {
	out := make(chan SweepResult, s.Workers)
	go s.Stream(ctx, configs, out)
	results := make([]SweepResult, len(configs))
	done := make([]bool, len(configs))
	failed := 0
	for r := range out {
		results[r.Index] = r
		done[r.Index] = true
		if r.Err != nil {
			failed++
		}
	}
	for i := range results {
		if !done[i] {
			results[i] = SweepResult{Index: i, Config: configs[i], Err: ctx.Err()}
		}
	}
	s.logger.Log("level", "notice", "subsys", "sweep", "status", "finished", "cases", len(configs), "failed", failed)
	return results, ctx.Err()
}

// Span returns n evenly spaced values from lo to hi inclusive.
func Span(lo, hi float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// Grid returns one configuration per (pressure ratio, turbine inlet temperature) pair,
// pressure ratio major. An empty slice keeps the base value.
func Grid(base CycleConfiguration, prs, tits []float64) []CycleConfiguration {
	if len(prs) == 0 {
		prs = []float64{base.PressureRatio}
	}
	if len(tits) == 0 {
		tits = []float64{base.TurbineInletTemperature}
	}
	configs := make([]CycleConfiguration, 0, len(prs)*len(tits))
	for _, pr := range prs {
		for _, tit := range tits {
			configs = append(configs, base.WithPressureRatio(pr).WithTurbineInletTemperature(tit))
		}
	}
	return configs
}

// Best returns the successful result of highest thermal efficiency.
func Best(results []SweepResult) (SweepResult, bool) {
	η := make([]float64, len(results))
	found := false
	for i, r := range results {
		if r.Err != nil {
			η[i] = math.Inf(-1)
			continue
		}
		η[i] = r.Result.ThermalEfficiency
		found = true
	}
	if !found {
		return SweepResult{}, false
	}
	return results[floats.MaxIdx(η)], true
}
