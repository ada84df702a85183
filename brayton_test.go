package zca

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestBraytonCore(t *testing.T) {
	r, err := Solve(coreConfig())
	if err != nil {
		t.Fatal(err)
	}
	if r.ThermalEfficiency <= 0.35 || r.ThermalEfficiency >= 0.55 {
		t.Fatalf("η=%f outside of the modern core envelope", r.ThermalEfficiency)
	}
	if !scalar.EqualWithinAbs(r.ThermalEfficiency, 0.499082573, 1e-6) {
		t.Fatalf("η=%.9f", r.ThermalEfficiency)
	}
	if !scalar.EqualWithinAbs(r.Compressor.Tt, 877.73253387, 1e-6) {
		t.Fatalf("T2=%f", r.Compressor.Tt)
	}
	if !scalar.EqualWithinAbs(r.NetWork/1e3, 448.98896327, 1e-6) {
		t.Fatalf("w=%f kJ/kg", r.NetWork/1e3)
	}
	if !scalar.EqualWithinAbs(r.TurbinePressureRatio, 30, 1e-12) {
		t.Fatalf("πt=%f", r.TurbinePressureRatio)
	}
	if r.Choked || r.NozzlePressureRatio != 1 || r.IdealJetVelocity != 0 {
		t.Fatal("a turbine expanded to ambient leaves nothing to the nozzle")
	}
	if r.CoolingFraction != 0 || r.FuelAirRatio != 0 {
		t.Fatal("no cooling and no fuel were requested")
	}
	// Repeated runs are bit for bit identical.
	for i := 0; i < 10; i++ {
		again, err := Solve(coreConfig())
		if err != nil {
			t.Fatal(err)
		}
		if again != r {
			t.Fatalf("run #%d differs", i)
		}
	}
}

func TestBraytonIdeal(t *testing.T) {
	prev := -1.
	for _, pr := range []float64{1, 1.5, 2, 5, 10, 20, 30, 40} {
		c := coreConfig().WithPressureRatio(pr)
		c.CompressorEfficiency = 1
		c.TurbineEfficiency = 1
		r, err := Solve(c)
		if err != nil {
			t.Fatal(err)
		}
		exp := 1 - math.Pow(pr, -(Air.Gamma-1)/Air.Gamma)
		if !scalar.EqualWithinAbs(r.ThermalEfficiency, exp, 1e-12) {
			t.Fatalf("PR=%f η=%f expected %f", pr, r.ThermalEfficiency, exp)
		}
		if r.ThermalEfficiency <= prev {
			t.Fatalf("η not increasing with PR at %f", pr)
		}
		prev = r.ThermalEfficiency
	}
}

func TestBraytonUnitPressureRatio(t *testing.T) {
	r, err := Solve(coreConfig().WithPressureRatio(1))
	if err != nil {
		t.Fatal(err)
	}
	if r.CompressorWork != 0 || r.ThermalEfficiency != 0 {
		t.Fatalf("PR=1: wc=%f η=%f", r.CompressorWork, r.ThermalEfficiency)
	}
	// Any burner loss then makes the turbine undrivable.
	c := coreConfig().WithPressureRatio(1)
	c.BurnerPressureLoss = 0.04
	_, err = Solve(c)
	assertErrorIs(t, err, ErrInfeasibleCycle)
	var perr *ParamError
	if !errors.As(err, &perr) {
		t.Fatal("not a *ParamError")
	}
	if _, ok := perr.Param("πt"); !ok {
		t.Fatalf("πt not attached: %s", err)
	}
}

func TestBraytonInfeasible(t *testing.T) {
	mods := map[string]func(c *CycleConfiguration){
		"PR < 1":            func(c *CycleConfiguration) { c.PressureRatio = 0.9 },
		"TIT below T2":      func(c *CycleConfiguration) { c.TurbineInletTemperature = 800 },
		"TIT not finite":    func(c *CycleConfiguration) { c.TurbineInletTemperature = math.Inf(1) },
		"ηc = 0":            func(c *CycleConfiguration) { c.CompressorEfficiency = 0 },
		"ηt > 1":            func(c *CycleConfiguration) { c.TurbineEfficiency = 1.01 },
		"burner loss = 1":   func(c *CycleConfiguration) { c.BurnerPressureLoss = 1 },
		"cooling = 1":       func(c *CycleConfiguration) { c.Cooling.Fraction = 1 },
		"shaft work":        func(c *CycleConfiguration) { c.ShaftWork = 100e3 },
		"no combustion eff": func(c *CycleConfiguration) { f, _ := NewFuel(DefaultFuels, JetA, 1); c.Fuel = &f },
		"unknown sizing":    func(c *CycleConfiguration) { c.Sizing = TurbineSizing(7) },
		"huge shaft work": func(c *CycleConfiguration) {
			c.Sizing = BalanceWork
			c.ShaftWork = 2e6
		},
		"Stanton metal colder than T2": func(c *CycleConfiguration) {
			c.Cooling.Stanton = &StantonCooling{StantonNumber: 0.05, MetalTemperature: 800}
		},
		"cooling air below turbine exit": func(c *CycleConfiguration) {
			c.Sizing = BalanceWork
			c.Cooling = Cooling{Fraction: 0.1, PressureLoss: 0.9, Station: MixAfterExpansion}
		},
	}
	for name, mod := range mods {
		c := coreConfig()
		mod(&c)
		if _, err := Solve(c); err == nil {
			t.Fatalf("%s: solved", name)
		} else if !errors.Is(err, ErrInfeasibleCycle) {
			t.Fatalf("%s: %s", name, err)
		}
	}
	// Invalid inlet states are flow state errors.
	c := coreConfig()
	c.Inlet.Gamma = 1
	_, err := Solve(c)
	assertErrorIs(t, err, ErrInvalidFlowState)
}

func TestBraytonCooling(t *testing.T) {
	for _, tc := range []struct {
		name    string
		cooling Cooling
		hot     Gas
		η       float64
	}{
		{"fixed, mixed at inlet", Cooling{Fraction: 0.1}, Gas{}, 0.490214392},
		{"fixed, mixed at exit", Cooling{Fraction: 0.1, Station: MixAfterExpansion}, Gas{}, 0.427162980},
		{"Stanton", Cooling{Stanton: &StantonCooling{StantonNumber: 0.05, MetalTemperature: C2K(1000)}}, Gas{}, 0.493695838},
		{"Stanton, mass weighted", Cooling{Stanton: &StantonCooling{StantonNumber: 0.05, MetalTemperature: C2K(1000)}, Rule: MassWeighted}, Gas{}, 0.493695838},
		{"hot gas, energy weighted", Cooling{Fraction: 0.1}, Gas{Gamma: 1.33, R: Air.R}, 0.485852650},
		{"hot gas, mass weighted", Cooling{Fraction: 0.1, Rule: MassWeighted}, Gas{Gamma: 1.33, R: Air.R}, 0.478810761},
	} {
		c := coreConfig()
		c.Cooling = tc.cooling
		c.HotGas = tc.hot
		r, err := Solve(c)
		if err != nil {
			t.Fatalf("%s: %s", tc.name, err)
		}
		if !scalar.EqualWithinAbs(r.ThermalEfficiency, tc.η, 1e-8) {
			t.Fatalf("%s: η=%.9f expected %.9f", tc.name, r.ThermalEfficiency, tc.η)
		}
	}
	// Stanton sizing gives the expected fraction, and none below the metal temperature.
	c := coreConfig()
	c.Cooling.Stanton = &StantonCooling{StantonNumber: 0.05, MetalTemperature: C2K(1000)}
	r, _ := Solve(c)
	if !scalar.EqualWithinAbs(r.CoolingFraction, 0.0632243190, 1e-9) {
		t.Fatalf("β=%.10f", r.CoolingFraction)
	}
	if r.TurbineInlet.Tt >= r.Combustor.Tt {
		t.Fatal("cooling air did not cool the turbine inlet")
	}
	c.TurbineInletTemperature = C2K(950)
	if r, err := Solve(c); err != nil || r.CoolingFraction != 0 {
		t.Fatalf("β=%f below metal temperature (%v)", r.CoolingFraction, err)
	}
}

func TestBraytonBalanceWork(t *testing.T) {
	c := coreConfig()
	c.Sizing = BalanceWork
	r, err := Solve(c)
	if err != nil {
		t.Fatal(err)
	}
	if r.TurbineWork != r.CompressorWork {
		t.Fatal("turbine does not drive the compressor exactly")
	}
	if !scalar.EqualWithinAbs(r.TurbinePressureRatio, 4.742478303, 1e-8) {
		t.Fatalf("πt=%.9f", r.TurbinePressureRatio)
	}
	if !scalar.EqualWithinAbs(r.ThermalEfficiency, 0.546052146, 1e-8) {
		t.Fatalf("η=%.9f", r.ThermalEfficiency)
	}
	if !r.Choked || r.Nozzle.Mach != 1 {
		t.Fatalf("NPR=%f must choke the nozzle", r.NozzlePressureRatio)
	}
	if !scalar.EqualWithinAbs(r.UnexpandedPressureRatio, 3.341808358, 1e-8) {
		t.Fatalf("pe/p0=%.9f", r.UnexpandedPressureRatio)
	}
	if !scalar.EqualWithinAbs(r.UnexpandedEnergy/1e3, 291.380666686, 1e-6) {
		t.Fatalf("unexpanded energy=%f kJ/kg", r.UnexpandedEnergy/1e3)
	}
	if !scalar.EqualWithinAbs(r.IdealJetVelocity, 991.205463739, 1e-6) {
		t.Fatalf("Vj=%f", r.IdealJetVelocity)
	}

	c.ShaftWork = 200e3
	r, err = Solve(c)
	if err != nil {
		t.Fatal(err)
	}
	if !scalar.EqualWithinAbs(r.TurbinePressureRatio, 9.719090627, 1e-8) || !scalar.EqualWithinAbs(r.ThermalEfficiency, 0.528104674, 1e-8) {
		t.Fatalf("with shaft work: πt=%f η=%f", r.TurbinePressureRatio, r.ThermalEfficiency)
	}
}

func TestBraytonCruise(t *testing.T) {
	M0 := 0.8
	inlet := GasState{Pt: 26.5e3 * δ(M0, 1.4), Tt: C2K(-50) * θ(M0, 1.4), Mach: M0, Gas: Air}
	c := CycleConfiguration{
		PressureRatio:           20,
		TurbineInletTemperature: C2K(1400),
		CompressorEfficiency:    0.9,
		TurbineEfficiency:       0.9,
		Inlet:                   inlet,
		BurnerPressureLoss:      0.05,
		NozzlePressureLoss:      0.02,
		Sizing:                  BalanceWork,
	}
	r, err := Solve(c)
	if err != nil {
		t.Fatal(err)
	}
	if !scalar.EqualWithinAbs(r.AmbientPressure, 26.5e3, 1e-8) || !scalar.EqualWithinAbs(r.FlightVelocity, 239.572672605, 1e-6) {
		t.Fatalf("p0=%f V0=%f", r.AmbientPressure, r.FlightVelocity)
	}
	if !scalar.EqualWithinAbs(r.ThermalEfficiency, 0.569403860, 1e-8) {
		t.Fatalf("η=%.9f", r.ThermalEfficiency)
	}
	if !scalar.EqualWithinAbs(r.Nozzle.Velocity(), 653.025332668, 1e-6) {
		t.Fatalf("Ve=%f", r.Nozzle.Velocity())
	}
}

func TestBraytonFuel(t *testing.T) {
	h2, err := NewFuel(DefaultFuels, Hydrogen, 0.3)
	if err != nil {
		t.Fatal(err)
	}
	c := coreConfig()
	c.Fuel = &h2
	c.CombustionEfficiency = 1
	r, err := Solve(c)
	if err != nil {
		t.Fatal(err)
	}
	if !scalar.EqualWithinAbs(r.FuelAirRatio, 0.00749690512, 1e-11) {
		t.Fatalf("f=%.11f", r.FuelAirRatio)
	}
	if !scalar.EqualWithinRel(r.StoredFuelAirRatio, r.FuelAirRatio/0.3, 1e-12) {
		t.Fatalf("stored f=%f", r.StoredFuelAirRatio)
	}
	c.CombustionEfficiency = 0.5
	r2, _ := Solve(c)
	if !scalar.EqualWithinRel(r2.FuelAirRatio, 2*r.FuelAirRatio, 1e-12) {
		t.Fatal("fuel flow does not scale with combustion efficiency")
	}
}

func TestBraytonStations(t *testing.T) {
	r, err := Solve(coreConfig())
	if err != nil {
		t.Fatal(err)
	}
	st := r.Stations()
	if len(st) != 6 {
		t.Fatalf("%d stations", len(st))
	}
	if st[0].Enthalpy != 0 || st[0].Entropy != 0 {
		t.Fatal("inlet is the reference state")
	}
	if !scalar.EqualWithinAbs(st[1].Enthalpy, r.CompressorWork, 1e-6) {
		t.Fatal("compressor exit enthalpy is the compressor work")
	}
	// Polytropic losses generate entropy in both turbomachines.
	if st[1].Entropy <= 0 || st[4].Entropy <= st[3].Entropy {
		t.Fatalf("entropy: %+v", st)
	}
	// The combustor adds heat at constant pressure.
	if st[2].Pt != st[1].Pt || st[2].Entropy <= st[1].Entropy {
		t.Fatalf("combustor: %+v", st[1:3])
	}
}

func TestPolicyStrings(t *testing.T) {
	for _, s := range []TurbineSizing{ExpandToAmbient, BalanceWork} {
		if back, err := TurbineSizingFromString(s.String()); err != nil || back != s {
			t.Fatalf("%s: %v", s, err)
		}
	}
	for _, s := range []MixingStation{MixBeforeExpansion, MixAfterExpansion} {
		if back, err := MixingStationFromString(s.String()); err != nil || back != s {
			t.Fatalf("%s: %v", s, err)
		}
	}
	for _, r := range []MixingRule{EnergyWeighted, MassWeighted} {
		if back, err := MixingRuleFromString(r.String()); err != nil || back != r {
			t.Fatalf("%s: %v", r, err)
		}
	}
	if _, err := TurbineSizingFromString("sideways"); err == nil {
		t.Fatal("unknown sizing accepted")
	}
	if _, err := MixingRuleFromString("volume"); err == nil {
		t.Fatal("unknown rule accepted")
	}
	assertPanic(t, func() {
		_ = TurbineSizing(9).String()
	})
	assertPanic(t, func() {
		_ = MixingStation(9).String()
	})
}
