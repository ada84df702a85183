package zca

import (
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestFan(t *testing.T) {
	r, err := Fan{PressureRatio: 1.5, FlightMach: 0.8, IsentropicEfficiency: 0.9, Gamma: 1.4}.Evaluate()
	if err != nil {
		t.Fatal(err)
	}
	exp := FanResult{
		NozzleMach:              1.154438754,
		TotalTemperatureRatio:   1.136471402,
		StaticTemperatureRatio:  1.012154298,
		VelocityRatio:           1.451791577,
		SpecificThrust:          0.451791577,
		KineticEnergyEfficiency: 0.921045096,
		PropulsiveEfficiency:    0.815730023,
		OverallEfficiency:       0.751324137,
	}
	got := []float64{r.NozzleMach, r.TotalTemperatureRatio, r.StaticTemperatureRatio, r.VelocityRatio, r.SpecificThrust, r.KineticEnergyEfficiency, r.PropulsiveEfficiency, r.OverallEfficiency}
	want := []float64{exp.NozzleMach, exp.TotalTemperatureRatio, exp.StaticTemperatureRatio, exp.VelocityRatio, exp.SpecificThrust, exp.KineticEnergyEfficiency, exp.PropulsiveEfficiency, exp.OverallEfficiency}
	if !floats.EqualApprox(got, want, 1e-8) {
		t.Fatalf("got %v\nwant %v", got, want)
	}
}

func TestFanIdeal(t *testing.T) {
	for _, fpr := range []float64{1.0001, 1.2, 1.5, 2} {
		r, err := Fan{PressureRatio: fpr, FlightMach: 0.8, IsentropicEfficiency: 1, Gamma: 1.4}.Evaluate()
		if err != nil {
			t.Fatal(err)
		}
		// A lossless fan turns all of its work into jet kinetic energy, and the jet leaves at
		// ambient static temperature.
		if !scalar.EqualWithinAbs(r.KineticEnergyEfficiency, 1, 1e-9) {
			t.Fatalf("FPR=%f ηKE=%.12f", fpr, r.KineticEnergyEfficiency)
		}
		if !scalar.EqualWithinAbs(r.StaticTemperatureRatio, 1, 1e-12) {
			t.Fatalf("FPR=%f T2n/T0=%.12f", fpr, r.StaticTemperatureRatio)
		}
		if !scalar.EqualWithinAbs(r.PropulsiveEfficiency, 2/(1+r.VelocityRatio), 1e-12) {
			t.Fatalf("FPR=%f ηp=%f U/U0=%f", fpr, r.PropulsiveEfficiency, r.VelocityRatio)
		}
	}
	// No pressure rise, no jet.
	r, err := Fan{PressureRatio: 1, FlightMach: 0.5, IsentropicEfficiency: 0.9, Gamma: 1.4}.Evaluate()
	if err != nil {
		t.Fatal(err)
	}
	if r.SpecificThrust > 1e-12 || r.PropulsiveEfficiency != 1 || r.KineticEnergyEfficiency != 1 {
		t.Fatalf("FPR=1: %s", r)
	}
}

func TestFanInvalid(t *testing.T) {
	for name, f := range map[string]Fan{
		"static":     {PressureRatio: 1.5, FlightMach: 0, IsentropicEfficiency: 0.9, Gamma: 1.4},
		"FPR < 1":    {PressureRatio: 0.9, FlightMach: 0.8, IsentropicEfficiency: 0.9, Gamma: 1.4},
		"η = 0":      {PressureRatio: 1.5, FlightMach: 0.8, IsentropicEfficiency: 0, Gamma: 1.4},
		"γ = 1":      {PressureRatio: 1.5, FlightMach: 0.8, IsentropicEfficiency: 0.9, Gamma: 1},
		"negative M": {PressureRatio: 1.5, FlightMach: -0.8, IsentropicEfficiency: 0.9, Gamma: 1.4},
	} {
		_, err := f.Evaluate()
		if err == nil {
			t.Fatalf("%s: evaluated", name)
		}
		assertErrorIs(t, err, ErrInvalidFlowState)
	}
}
