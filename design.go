package zca

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/optimize"
)

const (
	// MinPressureRatio and MaxPressureRatio bound the search of PressureRatioForWork.
	MinPressureRatio = 1.
	MaxPressureRatio = 40.
	prTolerance      = 1e-10
)

// PressureRatioForWork returns the pressure ratio at which the cycle delivers the target
// specific net work (J/kg), all else being equal. Brent's method searches the part of
// [MinPressureRatio, MaxPressureRatio] where the cycle exists; an ErrInfeasibleCycle is
// returned when the target is not bracketed on that interval.
func PressureRatioForWork(c CycleConfiguration, target float64) (float64, error) {
	const op = "pressure ratio for work"
	log := currentLogger()
	lo, hi, err := feasibleBracket(c, MinPressureRatio, MaxPressureRatio)
	if err != nil {
		return math.NaN(), err
	}
	δw := func(pr float64) (float64, error) {
		r, err := Solve(c.WithPressureRatio(pr))
		if err != nil {
			return 0, err
		}
		return r.NetWork - target, nil
	}
	pr, iters, err := brent(δw, lo, hi, prTolerance)
	if err != nil {
		log.Log("level", "warning", "subsys", "design", "op", op, "target(kJ/kg)", target/1e3, "err", err)
		if err == errNotBracketed || err == errNoConverge {
			return math.NaN(), paramErr(ErrInfeasibleCycle, op, err.Error(), "target", target, "PR_min", lo, "PR_max", hi)
		}
		return math.NaN(), err
	}
	log.Log("level", "info", "subsys", "design", "op", op, "target(kJ/kg)", target/1e3, "PR", pr, "iterations", iters)
	return pr, nil
}

// solves returns whether the cycle exists at this pressure ratio. Errors other than an
// infeasible cycle are returned.
func solves(c CycleConfiguration, pr float64) (bool, error) {
	_, err := Solve(c.WithPressureRatio(pr))
	if err != nil && !errors.Is(err, ErrInfeasibleCycle) {
		return false, err
	}
	return err == nil, nil
}

// feasibleBracket narrows [lo, hi] to the pressure ratios at which the cycle solves. Losses
// make low pressure ratios infeasible, a cold hot section the high ones.
func feasibleBracket(c CycleConfiguration, lo, hi float64) (float64, float64, error) {
	loOK, err := solves(c, lo)
	if err != nil {
		return lo, hi, err
	}
	hiOK, err := solves(c, hi)
	if err != nil {
		return lo, hi, err
	}
	switch {
	case loOK && hiOK:
		return lo, hi, nil
	case loOK:
		hi, err = highestFeasiblePR(c, lo, hi)
		return lo, hi, err
	case hiOK:
		lo, err = lowestFeasiblePR(c, lo, hi)
		return lo, hi, err
	}
	// Neither end: look for any pressure ratio in between.
	for _, pr := range Span(lo, hi, 41)[1:40] {
		ok, err := solves(c, pr)
		if err != nil {
			return lo, hi, err
		}
		if !ok {
			continue
		}
		if lo, err = lowestFeasiblePR(c, lo, pr); err != nil {
			return lo, hi, err
		}
		hi, err = highestFeasiblePR(c, pr, hi)
		return lo, hi, err
	}
	return lo, hi, paramErr(ErrInfeasibleCycle, "pressure ratio for work", "no feasible pressure ratio", "PR_min", lo, "PR_max", hi, "TIT", c.TurbineInletTemperature)
}

// highestFeasiblePR bisects for the largest pressure ratio that still solves. The cycle must
// solve at lo.
func highestFeasiblePR(c CycleConfiguration, lo, hi float64) (float64, error) {
	if _, err := Solve(c.WithPressureRatio(lo)); err != nil {
		return math.NaN(), err
	}
	for i := 0; i < 60 && hi-lo > prTolerance; i++ {
		mid := 0.5 * (lo + hi)
		if _, err := Solve(c.WithPressureRatio(mid)); err != nil {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo, nil
}

// lowestFeasiblePR bisects for the smallest pressure ratio that still solves. The cycle must
// solve at hi.
func lowestFeasiblePR(c CycleConfiguration, lo, hi float64) (float64, error) {
	if _, err := Solve(c.WithPressureRatio(hi)); err != nil {
		return math.NaN(), err
	}
	for i := 0; i < 60 && hi-lo > prTolerance; i++ {
		mid := 0.5 * (lo + hi)
		if _, err := Solve(c.WithPressureRatio(mid)); err != nil {
			lo = mid
		} else {
			hi = mid
		}
	}
	return hi, nil
}

// Bounds are the design space of Optimize.
type Bounds struct {
	MinPressureRatio, MaxPressureRatio       float64
	MinTurbineInletTemp, MaxTurbineInletTemp float64 // K
}

// DefaultBounds are PR in [1, 60] and TIT in [1000, 2000] °C.
var DefaultBounds = Bounds{1, 60, 1273.15, 2273.15}

// Optimize returns the configuration of maximum thermal efficiency over pressure ratio and
// turbine inlet temperature within the bounds, starting from c. Component efficiencies,
// losses and cooling model are held fixed.
func Optimize(c CycleConfiguration, b Bounds) (CycleConfiguration, CycleResult, error) {
	const op = "optimize"
	if !(b.MinPressureRatio >= 1 && b.MaxPressureRatio > b.MinPressureRatio &&
		b.MinTurbineInletTemp > 0 && b.MaxTurbineInletTemp > b.MinTurbineInletTemp) {
		return c, CycleResult{}, paramErr(ErrInfeasibleCycle, op, "invalid bounds", "PR_min", b.MinPressureRatio, "PR_max", b.MaxPressureRatio, "TIT_min", b.MinTurbineInletTemp, "TIT_max", b.MaxTurbineInletTemp)
	}
	if _, err := Solve(c); err != nil {
		return c, CycleResult{}, err
	}
	log := currentLogger()
	at := func(u []float64) CycleConfiguration {
		return c.WithPressureRatio(toBounded(u[0], b.MinPressureRatio, b.MaxPressureRatio)).
			WithTurbineInletTemperature(toBounded(u[1], b.MinTurbineInletTemp, b.MaxTurbineInletTemp))
	}
	problem := optimize.Problem{
		Func: func(u []float64) float64 {
			r, err := Solve(at(u))
			if err != nil {
				return 2 // worse than any feasible 1 − η
			}
			return 1 - r.ThermalEfficiency
		},
	}
	u0 := []float64{
		fromBounded(c.PressureRatio, b.MinPressureRatio, b.MaxPressureRatio),
		fromBounded(c.TurbineInletTemperature, b.MinTurbineInletTemp, b.MaxTurbineInletTemp),
	}
	settings := &optimize.Settings{
		FuncEvaluations: 5000,
		Converger:       &optimize.FunctionConverge{Absolute: 1e-12, Iterations: 200},
	}
	result, err := optimize.Minimize(problem, u0, settings, &optimize.NelderMead{})
	if result == nil {
		msg := "no result"
		if err != nil {
			msg = err.Error()
		}
		return c, CycleResult{}, paramErr(ErrInfeasibleCycle, op, msg, "PR", c.PressureRatio, "TIT", c.TurbineInletTemperature)
	}
	if err != nil {
		log.Log("level", "warning", "subsys", "design", "op", op, "status", result.Status, "err", err)
	}
	best := at(result.X)
	r, err := Solve(best)
	if err != nil {
		return c, CycleResult{}, err
	}
	log.Log("level", "info", "subsys", "design", "op", op, "status", result.Status, "evaluations", result.FuncEvaluations, "PR", best.PressureRatio, "TIT(K)", best.TurbineInletTemperature, "η", r.ThermalEfficiency)
	return best, r, nil
}
