package zca

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func cruiseJet(t *testing.T, fuel *Fuel) (CycleResult, PropulsorResult) {
	M0 := 0.8
	c := CycleConfiguration{
		PressureRatio:           20,
		TurbineInletTemperature: C2K(1400),
		CompressorEfficiency:    0.9,
		TurbineEfficiency:       0.9,
		Inlet:                   GasState{Pt: 26.5e3 * δ(M0, 1.4), Tt: C2K(-50) * θ(M0, 1.4), Mach: M0, Gas: Air},
		Sizing:                  BalanceWork,
		Fuel:                    fuel,
		CombustionEfficiency:    0.99,
	}
	r, err := Solve(c)
	if err != nil {
		t.Fatal(err)
	}
	p, err := Evaluate(FromCycle(r, 50))
	if err != nil {
		t.Fatal(err)
	}
	return r, p
}

func TestPerformance(t *testing.T) {
	jet, err := NewFuel(DefaultFuels, JetA, 1)
	if err != nil {
		t.Fatal(err)
	}
	r, p := cruiseJet(t, &jet)
	perf, err := NewPerformance(r, p, 50, &jet)
	if err != nil {
		t.Fatal(err)
	}
	if !scalar.EqualWithinRel(perf.FuelFlow, r.FuelAirRatio*50, 1e-14) {
		t.Fatalf("fuel flow=%f", perf.FuelFlow)
	}
	if !scalar.EqualWithinRel(perf.TSFC, perf.FuelFlow/p.Thrust, 1e-14) || perf.StoredTSFC != perf.TSFC {
		t.Fatalf("TSFC=%g stored=%g", perf.TSFC, perf.StoredTSFC)
	}
	// A cruise turbojet burns between 20 and 40 g/kN/s.
	if perf.TSFC*1e6 < 20 || perf.TSFC*1e6 > 40 {
		t.Fatalf("TSFC=%f g/kN/s", perf.TSFC*1e6)
	}
	if !scalar.EqualWithinRel(perf.OverallEfficiency, p.ThrustPower/(perf.FuelFlow*jet.LHV), 1e-14) {
		t.Fatalf("ηo=%f", perf.OverallEfficiency)
	}
	if perf.OverallEfficiency <= 0 || perf.OverallEfficiency >= perf.ThermalEfficiency {
		t.Fatalf("ηo=%f ηth=%f", perf.OverallEfficiency, perf.ThermalEfficiency)
	}

	if !scalar.EqualWithinRel(perf.FuelCostRate, perf.FuelFlow*1400/804, 1e-12) {
		t.Fatalf("fuel cost=%f USD/s", perf.FuelCostRate)
	}
	// Complete combustion of C12H23 gives about 3.16 kg of CO2 per kg of fuel.
	if !scalar.EqualWithinRel(perf.CO2Rate/perf.FuelFlow, 3.156350857, 1e-9) {
		t.Fatalf("CO2=%f kg/kg", perf.CO2Rate/perf.FuelFlow)
	}

	// Hydrogen: less fuel, but more stored mass per unit of thrust than its LHV suggests.
	h2, _ := NewFuel(DefaultFuels, Hydrogen, 0.3)
	r2, p2 := cruiseJet(t, &h2)
	perf2, err := NewPerformance(r2, p2, 50, &h2)
	if err != nil {
		t.Fatal(err)
	}
	if perf2.TSFC >= perf.TSFC || !scalar.EqualWithinRel(perf2.StoredTSFC, perf2.TSFC/0.3, 1e-14) {
		t.Fatalf("hydrogen TSFC=%g stored=%g", perf2.TSFC, perf2.StoredTSFC)
	}
	if perf2.CO2Rate != 0 || perf2.FuelCostRate != perf2.FuelFlow*4 {
		t.Fatalf("hydrogen CO2=%f kg/s cost=%f USD/s", perf2.CO2Rate, perf2.FuelCostRate)
	}
}

func TestPerformanceWithoutFuel(t *testing.T) {
	r, p := cruiseJet(t, nil)
	perf, err := NewPerformance(r, p, 50, nil)
	if err != nil {
		t.Fatal(err)
	}
	if perf.TSFC != 0 || perf.OverallEfficiency != r.ThermalEfficiency*p.PropulsiveEfficiency {
		t.Fatalf("%s", perf)
	}
}

func TestPerformanceNoThrust(t *testing.T) {
	jet, _ := NewFuel(DefaultFuels, JetA, 1)
	c := coreConfig()
	c.Fuel = &jet
	c.CombustionEfficiency = 1
	r, err := Solve(c)
	if err != nil {
		t.Fatal(err)
	}
	// Turbine expanded to ambient: the jet is at rest.
	p, err := Evaluate(FromCycle(r, 10))
	if err != nil {
		t.Fatal(err)
	}
	_, err = NewPerformance(r, p, 10, &jet)
	assertErrorIs(t, err, ErrInvalidVelocityRatio)
}
