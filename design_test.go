package zca

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestPressureRatioForWork(t *testing.T) {
	c := coreConfig()
	pr, err := PressureRatioForWork(c, 300e3)
	if err != nil {
		t.Fatal(err)
	}
	if !scalar.EqualWithinAbs(pr, 2.87179536, 1e-6) {
		t.Fatalf("PR=%.8f", pr)
	}
	r, err := Solve(c.WithPressureRatio(pr))
	if err != nil {
		t.Fatal(err)
	}
	if !scalar.EqualWithinAbs(r.NetWork, 300e3, 1e-2) {
		t.Fatalf("w=%f J/kg", r.NetWork)
	}
	// The peak specific work of this core is about 474 kJ/kg.
	_, err = PressureRatioForWork(c, 600e3)
	assertErrorIs(t, err, ErrInfeasibleCycle)
}

func TestPressureRatioForWorkColdTurbine(t *testing.T) {
	// At 900 K the cycle only exists up to PR ≈ 32.46, below the search bound.
	c := coreConfig().WithTurbineInletTemperature(900)
	if _, err := Solve(c.WithPressureRatio(MaxPressureRatio)); err == nil {
		t.Fatal("PR=40 should be infeasible at 900 K")
	}
	pr, err := PressureRatioForWork(c, -50e3)
	if err != nil {
		t.Fatal(err)
	}
	if !scalar.EqualWithinAbs(pr, 28.563197672, 1e-6) {
		t.Fatalf("PR=%.9f", pr)
	}
	hi, err := highestFeasiblePR(c, MinPressureRatio, MaxPressureRatio)
	if err != nil {
		t.Fatal(err)
	}
	if !scalar.EqualWithinAbs(hi, 32.463417840, 1e-6) {
		t.Fatalf("highest feasible PR=%.9f", hi)
	}
	_, err = PressureRatioForWork(c, 200e3)
	assertErrorIs(t, err, ErrInfeasibleCycle)
}

func TestPressureRatioForWorkLossy(t *testing.T) {
	// Burner and nozzle losses leave no turbine pressure ratio at PR 1.
	c := coreConfig()
	c.BurnerPressureLoss, c.NozzlePressureLoss = 0.05, 0.02
	if _, err := Solve(c.WithPressureRatio(MinPressureRatio)); err == nil {
		t.Fatal("PR=1 should be infeasible with losses")
	}
	lo, err := lowestFeasiblePR(c, MinPressureRatio, MaxPressureRatio)
	if err != nil {
		t.Fatal(err)
	}
	// (1 − 0.05)(1 − 0.02)·PR = 1
	if !scalar.EqualWithinAbs(lo, 1/(0.95*0.98), 1e-6) {
		t.Fatalf("lowest feasible PR=%.9f", lo)
	}
	pr, err := PressureRatioForWork(c, 250e3)
	if err != nil {
		t.Fatal(err)
	}
	r, err := Solve(c.WithPressureRatio(pr))
	if err != nil {
		t.Fatal(err)
	}
	if !scalar.EqualWithinAbs(r.NetWork, 250e3, 1e-2) {
		t.Fatalf("w=%f J/kg at PR=%f", r.NetWork, pr)
	}
}

func TestOptimize(t *testing.T) {
	c := coreConfig()
	start, err := Solve(c)
	if err != nil {
		t.Fatal(err)
	}
	best, r, err := Optimize(c, DefaultBounds)
	if err != nil {
		t.Fatal(err)
	}
	if r.ThermalEfficiency <= start.ThermalEfficiency {
		t.Fatalf("η=%f did not improve on %f", r.ThermalEfficiency, start.ThermalEfficiency)
	}
	// The optimum of this core is in the hot, high pressure corner of the design space.
	if r.ThermalEfficiency < 0.56 {
		t.Fatalf("η=%f PR=%f TIT=%f", r.ThermalEfficiency, best.PressureRatio, best.TurbineInletTemperature)
	}
	if best.PressureRatio > DefaultBounds.MaxPressureRatio || best.TurbineInletTemperature > DefaultBounds.MaxTurbineInletTemp {
		t.Fatalf("out of bounds: PR=%f TIT=%f", best.PressureRatio, best.TurbineInletTemperature)
	}
	// Everything else is held.
	if best.CompressorEfficiency != c.CompressorEfficiency || best.Inlet != c.Inlet {
		t.Fatal("Optimize changed a fixed parameter")
	}
	again, _ := Solve(best)
	if again != r {
		t.Fatal("returned result does not match the returned configuration")
	}

	_, _, err = Optimize(c, Bounds{MinPressureRatio: 10, MaxPressureRatio: 5, MinTurbineInletTemp: 1000, MaxTurbineInletTemp: 2000})
	assertErrorIs(t, err, ErrInfeasibleCycle)
	_, _, err = Optimize(c.WithTurbineInletTemperature(800), DefaultBounds)
	assertErrorIs(t, err, ErrInfeasibleCycle)
}
