package zca

import (
	"fmt"
	"math"
	"strings"
)

// TurbineSizing defines how the turbine pressure ratio is chosen.
type TurbineSizing uint8

// MixingStation defines where the turbine cooling air rejoins the main flow.
type MixingStation uint8

// MixingRule defines how the temperature of two mixed streams is averaged.
type MixingRule uint8

const (
	// ExpandToAmbient expands the turbine down to ambient static pressure: the net cycle
	// work is delivered as shaft work and no jet is produced.
	ExpandToAmbient TurbineSizing = iota
	// BalanceWork sizes the turbine to drive the compressor plus ShaftWork; the remaining
	// pressure is left to the nozzle.
	BalanceWork
)

const (
	// MixBeforeExpansion mixes the cooling air into the combustor exit flow at turbine inlet.
	MixBeforeExpansion MixingStation = iota
	// MixAfterExpansion expands only the hot flow and mixes the cooling air at turbine exit.
	MixAfterExpansion
)

const (
	// EnergyWeighted averages temperatures weighted by mass flow times cp.
	EnergyWeighted MixingRule = iota
	// MassWeighted averages temperatures weighted by mass flow only.
	MassWeighted
)

func (s TurbineSizing) String() string {
	switch s {
	case ExpandToAmbient:
		return "expand"
	case BalanceWork:
		return "balance"
	}
	panic("cannot stringify unknown turbine sizing")
}

func (s MixingStation) String() string {
	switch s {
	case MixBeforeExpansion:
		return "inlet"
	case MixAfterExpansion:
		return "exit"
	}
	panic("cannot stringify unknown mixing station")
}

func (r MixingRule) String() string {
	switch r {
	case EnergyWeighted:
		return "energy"
	case MassWeighted:
		return "mass"
	}
	panic("cannot stringify unknown mixing rule")
}

// TurbineSizingFromString parses "expand" or "balance".
func TurbineSizingFromString(s string) (TurbineSizing, error) {
	switch strings.ToLower(s) {
	case "", "expand", "ambient", "shaft":
		return ExpandToAmbient, nil
	case "balance", "jet", "core":
		return BalanceWork, nil
	}
	return 0, fmt.Errorf("unknown turbine sizing `%s`", s)
}

// MixingStationFromString parses "inlet" or "exit".
func MixingStationFromString(s string) (MixingStation, error) {
	switch strings.ToLower(s) {
	case "", "inlet", "before":
		return MixBeforeExpansion, nil
	case "exit", "after":
		return MixAfterExpansion, nil
	}
	return 0, fmt.Errorf("unknown mixing station `%s`", s)
}

// MixingRuleFromString parses "energy" or "mass".
func MixingRuleFromString(s string) (MixingRule, error) {
	switch strings.ToLower(s) {
	case "", "energy":
		return EnergyWeighted, nil
	case "mass":
		return MassWeighted, nil
	}
	return 0, fmt.Errorf("unknown mixing rule `%s`", s)
}

// mix returns the temperature of the mixture of a hot and a cold stream.
func (r MixingRule) mix(mHot, tHot, cpHot, mCold, tCold, cpCold float64) float64 {
	if mCold == 0 {
		return tHot
	}
	if r == MassWeighted {
		return (mHot*tHot + mCold*tCold) / (mHot + mCold)
	}
	return (mHot*cpHot*tHot + mCold*cpCold*tCold) / (mHot*cpHot + mCold*cpCold)
}

// StantonCooling sizes the cooling flow from a Stanton number and an allowable blade metal
// temperature: β = St·(T3 − Tm)/(Tm − T2).
type StantonCooling struct {
	StantonNumber    float64
	MetalTemperature float64 // K
}

func (s StantonCooling) fraction(t2, t3 float64) (float64, error) {
	if s.MetalTemperature <= t2 {
		return 0, paramErr(ErrInfeasibleCycle, "turbine cooling", "metal temperature must exceed compressor exit temperature", "Tmetal", s.MetalTemperature, "T2", t2)
	}
	if t3 <= s.MetalTemperature {
		return 0, nil
	}
	return s.StantonNumber * (t3 - s.MetalTemperature) / (s.MetalTemperature - t2), nil
}

// Cooling describes the turbine cooling air bled from compressor exit.
type Cooling struct {
	Fraction     float64         // cooling to inlet mass flow ratio, used when Stanton is nil
	Stanton      *StantonCooling // when set, the fraction is computed
	PressureLoss float64         // cooling circuit pressure loss fraction
	Station      MixingStation
	Rule         MixingRule
}

// CycleConfiguration is the immutable input of one Brayton cycle evaluation. All values are SI.
type CycleConfiguration struct {
	PressureRatio           float64
	TurbineInletTemperature float64 // combustor exit temperature (K)
	CompressorEfficiency    float64 // polytropic
	TurbineEfficiency       float64 // polytropic
	Inlet                   GasState
	HotGas                  Gas     // hot section properties, the inlet gas when zero
	BurnerPressureLoss      float64 // fraction in [0, 1)
	NozzlePressureLoss      float64 // fraction in [0, 1)
	Cooling                 Cooling
	Sizing                  TurbineSizing
	ShaftWork               float64 // J/kg of inlet air, BalanceWork only
	Fuel                    *Fuel
	CombustionEfficiency    float64 // required with Fuel
}

// NewCycleConfiguration returns a configuration from dimensioned values, checking units.
func NewCycleConfiguration(pr float64, tit Quantity, ηc, ηt float64, inlet GasState) (CycleConfiguration, error) {
	t, err := tit.SI(Temperature)
	if err != nil {
		return CycleConfiguration{}, err
	}
	cfg := CycleConfiguration{PressureRatio: pr, TurbineInletTemperature: t, CompressorEfficiency: ηc, TurbineEfficiency: ηt, Inlet: inlet}
	return cfg, cfg.Validate()
}

// WithPressureRatio returns a copy with another pressure ratio.
func (c CycleConfiguration) WithPressureRatio(pr float64) CycleConfiguration {
	c.PressureRatio = pr
	return c
}

// WithTurbineInletTemperature returns a copy with another turbine inlet temperature (K).
func (c CycleConfiguration) WithTurbineInletTemperature(t float64) CycleConfiguration {
	c.TurbineInletTemperature = t
	return c
}

func (c CycleConfiguration) hotGas() Gas {
	if c.HotGas.isZero() {
		return c.Inlet.Gas
	}
	return c.HotGas
}

func checkFraction(name string, v float64) error {
	if !(v >= 0 && v < 1) {
		return paramErr(ErrInfeasibleCycle, "brayton", name+" must be in [0, 1)", name, v)
	}
	return nil
}

func checkEfficiency(name string, v float64) error {
	if !(v > 0 && v <= 1) {
		return paramErr(ErrInfeasibleCycle, "brayton", name+" must be in (0, 1]", name, v)
	}
	return nil
}

// Validate checks the configuration without solving it.
func (c CycleConfiguration) Validate() error {
	if err := c.Inlet.Validate(); err != nil {
		return err
	}
	if err := c.hotGas().Validate(); err != nil {
		return err
	}
	if !(c.PressureRatio >= 1) || math.IsInf(c.PressureRatio, 0) {
		return paramErr(ErrInfeasibleCycle, "brayton", "pressure ratio must be at least 1", "PR", c.PressureRatio)
	}
	if !(c.TurbineInletTemperature > 0) || math.IsInf(c.TurbineInletTemperature, 0) {
		return paramErr(ErrInfeasibleCycle, "brayton", "turbine inlet temperature must be positive", "TIT", c.TurbineInletTemperature)
	}
	if err := checkEfficiency("ηpoly_compressor", c.CompressorEfficiency); err != nil {
		return err
	}
	if err := checkEfficiency("ηpoly_turbine", c.TurbineEfficiency); err != nil {
		return err
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"burner_pressure_loss", c.BurnerPressureLoss},
		{"nozzle_pressure_loss", c.NozzlePressureLoss},
		{"cooling_pressure_loss", c.Cooling.PressureLoss},
		{"cooling_fraction", c.Cooling.Fraction},
	} {
		if err := checkFraction(f.name, f.v); err != nil {
			return err
		}
	}
	if s := c.Cooling.Stanton; s != nil {
		if !(s.StantonNumber >= 0) || !(s.MetalTemperature > 0) {
			return paramErr(ErrInfeasibleCycle, "brayton", "invalid Stanton cooling model", "St", s.StantonNumber, "Tmetal", s.MetalTemperature)
		}
	}
	if c.Sizing > BalanceWork || c.Cooling.Station > MixAfterExpansion || c.Cooling.Rule > MassWeighted {
		return paramErr(ErrInfeasibleCycle, "brayton", "unknown policy", "sizing", uint8(c.Sizing), "station", uint8(c.Cooling.Station), "rule", uint8(c.Cooling.Rule))
	}
	if !(c.ShaftWork >= 0) || math.IsInf(c.ShaftWork, 0) {
		return paramErr(ErrInfeasibleCycle, "brayton", "shaft work must be non-negative", "shaft_work", c.ShaftWork)
	}
	if c.ShaftWork > 0 && c.Sizing != BalanceWork {
		return paramErr(ErrInfeasibleCycle, "brayton", "a shaft work requirement needs a work-balanced turbine", "shaft_work", c.ShaftWork, "sizing", c.Sizing)
	}
	if c.Fuel != nil {
		if err := c.Fuel.Validate(); err != nil {
			return err
		}
		if err := checkEfficiency("combustion_efficiency", c.CombustionEfficiency); err != nil {
			return err
		}
	}
	return nil
}

// Station is a cycle station for T-s and p-h diagrams. Enthalpy and entropy are relative to
// the inlet stagnation state.
type Station struct {
	Name     string
	Tt       float64 // K
	Pt       float64 // Pa
	Enthalpy float64 // J/kg
	Entropy  float64 // J/kg/K
}

// CycleResult is the output of a successful Solve.
type CycleResult struct {
	Inlet        GasState
	Compressor   GasState // compressor exit
	Combustor    GasState // combustor exit
	TurbineInlet GasState // after cooling air mixing when mixed before expansion
	Turbine      GasState // turbine exit, after cooling air mixing
	Nozzle       GasState // nozzle exit, Mach resolved

	CoolingFraction      float64
	TurbinePressureRatio float64
	NozzlePressureRatio  float64 // nozzle total to ambient static pressure

	CompressorWork float64 // J/kg
	TurbineWork    float64 // J/kg
	NetWork        float64 // J/kg
	HeatAddition   float64 // J/kg

	ThermalEfficiency float64

	Choked                  bool
	UnexpandedPressureRatio float64 // nozzle exit static to ambient pressure
	UnexpandedEnergy        float64 // J/kg of kinetic energy not recovered by a choked nozzle
	IdealJetVelocity        float64 // fully expanded jet velocity (m/s)

	AmbientPressure float64 // Pa
	FlightVelocity  float64 // m/s

	FuelAirRatio       float64 // kg fuel per kg air, zero without a fuel
	StoredFuelAirRatio float64 // kg stored fuel system per kg air
}

// Stations returns the cycle stations: inlet, compressor exit, combustor exit, turbine inlet,
// turbine exit and nozzle exit.
func (r CycleResult) Stations() []Station {
	cp := r.Inlet.Cp()
	gas := r.Inlet.R
	t0, p0 := r.Inlet.Tt, r.Inlet.Pt
	mk := func(name string, s GasState) Station {
		return Station{
			Name:     name,
			Tt:       s.Tt,
			Pt:       s.Pt,
			Enthalpy: cp * (s.Tt - t0),
			Entropy:  cp*math.Log(s.Tt/t0) - gas*math.Log(s.Pt/p0),
		}
	}
	return []Station{
		mk("inlet", r.Inlet),
		mk("compressor exit", r.Compressor),
		mk("combustor exit", r.Combustor),
		mk("turbine inlet", r.TurbineInlet),
		mk("turbine exit", r.Turbine),
		mk("nozzle exit", r.Nozzle),
	}
}

func (r CycleResult) String() string {
	return fmt.Sprintf("η=%.4f w=%.1f kJ/kg q=%.1f kJ/kg πt=%.3f β=%.4f", r.ThermalEfficiency, r.NetWork/1e3, r.HeatAddition/1e3, r.TurbinePressureRatio, r.CoolingFraction)
}

// Solve marches the Brayton cycle station by station. It is a pure function of the
// configuration.
func Solve(c CycleConfiguration) (CycleResult, error) {
	if err := c.Validate(); err != nil {
		return CycleResult{}, err
	}
	cold := c.Inlet.Gas
	hot := c.hotGas()
	cpc, cph := cold.Cp(), hot.Cp()
	r := CycleResult{
		Inlet:           c.Inlet,
		AmbientPressure: c.Inlet.StaticPressure(),
		FlightVelocity:  c.Inlet.Velocity(),
	}
	p0 := r.AmbientPressure

	// Compressor
	t1, p1 := c.Inlet.Tt, c.Inlet.Pt
	t2 := t1 * math.Pow(c.PressureRatio, (cold.Gamma-1)/(cold.Gamma*c.CompressorEfficiency))
	p2 := p1 * c.PressureRatio
	r.Compressor = GasState{Pt: p2, Tt: t2, Gas: cold}
	r.CompressorWork = cpc * (t2 - t1)

	// Combustor
	t3 := c.TurbineInletTemperature
	if t3 <= t2 {
		return CycleResult{}, paramErr(ErrInfeasibleCycle, "brayton", "turbine inlet temperature must exceed compressor exit temperature", "TIT", t3, "T2", t2, "PR", c.PressureRatio)
	}
	p3 := p2 * (1 - c.BurnerPressureLoss)
	r.Combustor = GasState{Pt: p3, Tt: t3, Gas: hot}

	β := c.Cooling.Fraction
	if c.Cooling.Stanton != nil {
		var err error
		if β, err = c.Cooling.Stanton.fraction(t2, t3); err != nil {
			return CycleResult{}, err
		}
	}
	if β < 0 || β >= 1 {
		return CycleResult{}, paramErr(ErrInfeasibleCycle, "brayton", "cooling fraction must be in [0, 1)", "β", β, "TIT", t3, "T2", t2)
	}
	r.CoolingFraction = β
	r.HeatAddition = (1 - β) * cph * (t3 - t2)
	pc := p2 * (1 - c.Cooling.PressureLoss)

	// Turbine
	t41, p41, mt := t3, p3, 1-β
	if c.Cooling.Station == MixBeforeExpansion {
		t41 = c.Cooling.Rule.mix(1-β, t3, cph, β, t2, cpc)
		p41 = p3*(1-β) + pc*β
		mt = 1
	}
	r.TurbineInlet = GasState{Pt: p41, Tt: t41, Gas: hot}

	k := (hot.Gamma - 1) * c.TurbineEfficiency / hot.Gamma
	var t45h, p45 float64
	switch c.Sizing {
	case ExpandToAmbient:
		p45 = p0 / (1 - c.NozzlePressureLoss)
		r.TurbinePressureRatio = p41 / p45
		if r.TurbinePressureRatio < 1 {
			return CycleResult{}, paramErr(ErrInfeasibleCycle, "brayton", "turbine pressure ratio below 1, turbine cannot be driven", "πt", r.TurbinePressureRatio, "PR", c.PressureRatio, "burner_pressure_loss", c.BurnerPressureLoss, "nozzle_pressure_loss", c.NozzlePressureLoss)
		}
		t45h = t41 * math.Pow(r.TurbinePressureRatio, -k)
		r.TurbineWork = mt * cph * (t41 - t45h)
	case BalanceWork:
		r.TurbineWork = r.CompressorWork + c.ShaftWork
		t45h = t41 - r.TurbineWork/(mt*cph)
		if t45h <= 0 {
			return CycleResult{}, paramErr(ErrInfeasibleCycle, "brayton", "turbine exit temperature would be non-physical", "T45", t45h, "wt", r.TurbineWork, "TIT", t3)
		}
		r.TurbinePressureRatio = math.Pow(t41/t45h, 1/k)
		p45 = p41 / r.TurbinePressureRatio
		if available := p41 * (1 - c.NozzlePressureLoss) / p0; r.TurbinePressureRatio > available {
			return CycleResult{}, paramErr(ErrInfeasibleCycle, "brayton", "required turbine pressure ratio exceeds the available pressure ratio", "πt", r.TurbinePressureRatio, "available", available, "PR", c.PressureRatio, "shaft_work", c.ShaftWork)
		}
	}
	if β > 0 && c.Cooling.Station == MixAfterExpansion && pc < p45 {
		return CycleResult{}, paramErr(ErrInfeasibleCycle, "brayton", "cooling air pressure below turbine exit pressure", "p_cooling", pc, "p45", p45)
	}
	t45 := t45h
	if c.Cooling.Station == MixAfterExpansion {
		t45 = c.Cooling.Rule.mix(1-β, t45h, cph, β, t2, cpc)
	}
	r.Turbine = GasState{Pt: p45, Tt: t45, Gas: hot}

	// Nozzle
	pt5 := p45 * (1 - c.NozzlePressureLoss)
	if c.Sizing == ExpandToAmbient {
		pt5 = p0
	}
	r.NozzlePressureRatio = pt5 / p0
	if r.NozzlePressureRatio < 1 {
		return CycleResult{}, paramErr(ErrInfeasibleCycle, "brayton", "nozzle pressure ratio below 1", "NPR", r.NozzlePressureRatio)
	}
	crit := δ(1, hot.Gamma)
	var me float64
	if r.NozzlePressureRatio > crit {
		r.Choked = true
		me = 1
	} else {
		var err error
		if me, err = MachFromPressureRatio(r.NozzlePressureRatio, hot.Gamma); err != nil {
			return CycleResult{}, err
		}
	}
	r.Nozzle = GasState{Pt: pt5, Tt: t45, Mach: me, Gas: hot}
	r.UnexpandedPressureRatio = r.Nozzle.StaticPressure() / p0
	r.IdealJetVelocity = math.Sqrt(2 * cph * t45 * (1 - math.Pow(r.NozzlePressureRatio, -(hot.Gamma-1)/hot.Gamma)))
	if r.Choked {
		ve := r.Nozzle.Velocity()
		r.UnexpandedEnergy = 0.5 * (r.IdealJetVelocity*r.IdealJetVelocity - ve*ve)
	}

	// Aggregate
	if c.Sizing == ExpandToAmbient {
		r.NetWork = r.TurbineWork - r.CompressorWork
	} else {
		r.NetWork = c.ShaftWork + 0.5*(r.IdealJetVelocity*r.IdealJetVelocity-r.FlightVelocity*r.FlightVelocity)
	}
	r.ThermalEfficiency = r.NetWork / r.HeatAddition
	if c.Fuel != nil {
		r.FuelAirRatio = r.HeatAddition / (c.CombustionEfficiency * c.Fuel.LHV)
		r.StoredFuelAirRatio = r.FuelAirRatio / c.Fuel.StoredMassFraction
	}
	return r, nil
}
