package zca

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// PropulsorMode defines what turns the cycle output into thrust.
type PropulsorMode uint8

const (
	// NozzlePropulsor expands the cycle exhaust through its own nozzle.
	NozzlePropulsor PropulsorMode = iota + 1
	// ShaftPropulsor drives a fan or propeller with a shaft power.
	ShaftPropulsor
	// FanPropulsor evaluates a non dimensional ducted fan at the flight Mach number.
	FanPropulsor
)

func (m PropulsorMode) String() string {
	switch m {
	case NozzlePropulsor:
		return "nozzle"
	case ShaftPropulsor:
		return "shaft"
	case FanPropulsor:
		return "fan"
	}
	panic("cannot stringify unknown propulsor mode")
}

// PropulsorModeFromString parses "nozzle", "shaft" or "fan".
func PropulsorModeFromString(s string) (PropulsorMode, error) {
	switch strings.ToLower(s) {
	case "nozzle", "jet":
		return NozzlePropulsor, nil
	case "shaft", "propeller":
		return ShaftPropulsor, nil
	case "fan":
		return FanPropulsor, nil
	}
	return 0, fmt.Errorf("unknown propulsor mode `%s`", s)
}

// PropulsorScenario is the propulsor section of a scenario. A zero Mode means none.
type PropulsorScenario struct {
	Mode          PropulsorMode
	MassFlow      float64 // kg/s through the propulsor
	NozzleLoss    float64
	ShaftPower    float64 // W, shaft mode
	CoreMassFlow  float64 // kg/s, shaft mode: when ShaftPower is zero it is the cycle net power of this flow
	FanEfficiency float64
	Fan           Fan // fan mode, flight Mach and γ are taken from the inlet
}

// Configuration returns the propulsor configuration fed by a solved cycle. It must not be
// called in fan mode, see FanFor.
func (p PropulsorScenario) Configuration(r CycleResult) (PropulsorConfiguration, error) {
	switch p.Mode {
	case NozzlePropulsor:
		c := FromCycle(r, p.MassFlow)
		c.NozzleLoss = p.NozzleLoss
		return c, nil
	case ShaftPropulsor:
		power := p.ShaftPower
		if power == 0 {
			power = p.CoreMassFlow * r.NetWork
		}
		return PropulsorConfiguration{
			FlightVelocity:  r.FlightVelocity,
			AmbientPressure: r.AmbientPressure,
			MassFlow:        p.MassFlow,
			Source:          ShaftPowerSource,
			ShaftPower:      power,
			FanEfficiency:   p.FanEfficiency,
			NozzleLoss:      p.NozzleLoss,
		}, nil
	}
	return PropulsorConfiguration{}, fmt.Errorf("no propulsor configuration in %s mode", p.Mode)
}

// FanFor returns the fan flying at the inlet conditions of the cycle.
func (p PropulsorScenario) FanFor(inlet GasState) Fan {
	f := p.Fan
	f.FlightMach = inlet.Mach
	f.Gamma = inlet.Gamma
	return f
}

// SweepScenario is the PR × TIT grid of a scenario.
type SweepScenario struct {
	PressureRatios           []float64
	TurbineInletTemperatures []float64 // K
	Workers                  int
}

// IsUseless returns whether this sweep doesn't actually do anything.
func (s SweepScenario) IsUseless() bool {
	return len(s.PressureRatios) == 0 && len(s.TurbineInletTemperatures) == 0
}

// Scenario is a complete cycle study read from a TOML file.
type Scenario struct {
	Name         string
	OutputPrefix string
	Verbose      bool

	Cycle      CycleConfiguration
	TargetWork float64 // J/kg, zero when the pressure ratio is given
	Bounds     Bounds
	Propulsor  PropulsorScenario
	Sweep      SweepScenario
}

func (s Scenario) String() string {
	return fmt.Sprintf("%s: PR=%.2f TIT=%.2f K ηc=%.3f ηt=%.3f sizing=%s", s.Name, s.Cycle.PressureRatio, s.Cycle.TurbineInletTemperature, s.Cycle.CompressorEfficiency, s.Cycle.TurbineEfficiency, s.Cycle.Sizing)
}

// scenarioReader reads typed values and keeps the first error.
type scenarioReader struct {
	v    *viper.Viper
	path string
	err  error
}

func (r *scenarioReader) fail(key string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("%s: `%s`: %w", r.path, key, err)
	}
}

func (r *scenarioReader) require(key string) bool {
	if !r.v.IsSet(key) {
		r.fail(key, fmt.Errorf("missing required key"))
		return false
	}
	return true
}

// quantity returns the SI value of a unit carrying string, or def when unset.
func (r *scenarioReader) quantity(key string, d Dimension, def float64) float64 {
	if !r.v.IsSet(key) {
		return def
	}
	v, err := parseSI(r.v.GetString(key), d)
	if err != nil {
		r.fail(key, err)
	}
	return v
}

func (r *scenarioReader) float(key string, def float64) float64 {
	if !r.v.IsSet(key) {
		return def
	}
	return r.v.GetFloat64(key)
}

// span reads a `from`, `to`, `count` table.
func (r *scenarioReader) span(key string, d Dimension) []float64 {
	if !r.v.IsSet(key) {
		return nil
	}
	n := r.v.GetInt(key + ".count")
	if n <= 0 {
		r.fail(key+".count", fmt.Errorf("must be positive"))
		return nil
	}
	var lo, hi float64
	if d == Dimensionless {
		lo, hi = r.v.GetFloat64(key+".from"), r.v.GetFloat64(key+".to")
	} else {
		lo, hi = r.quantity(key+".from", d, 0), r.quantity(key+".to", d, 0)
	}
	return Span(lo, hi, n)
}

// LoadScenario reads a scenario TOML file. Dimensional values are strings carrying their unit,
// e.g. `turbine_inlet_temperature = "1500 degC"`, and are checked against the expected
// dimension. The fuel heating values come from the process configuration (see Config).
func LoadScenario(path string) (Scenario, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return Scenario{}, fmt.Errorf("%s: %s", path, err)
	}
	v.SetDefault("inlet.mach", 0)
	v.SetDefault("gas.gamma", Air.Gamma)
	v.SetDefault("cycle.combustion_efficiency", 1)
	v.SetDefault("fuel.stored_mass_fraction", 1)
	r := &scenarioReader{v: v, path: path}

	s := Scenario{
		Name:         v.GetString("general.name"),
		OutputPrefix: v.GetString("general.output_prefix"),
		Verbose:      v.GetBool("general.verbose"),
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(path, ".toml")
	}
	if s.OutputPrefix == "" {
		s.OutputPrefix = "cycle"
	}

	// Inlet, from ambient static conditions and flight Mach number.
	inletGas := Gas{Gamma: v.GetFloat64("gas.gamma"), R: r.quantity("gas.R", SpecificHeat, Air.R)}
	r.require("inlet.pressure")
	r.require("inlet.temperature")
	p0 := r.quantity("inlet.pressure", Pressure, 0)
	t0 := r.quantity("inlet.temperature", Temperature, 0)
	M0 := v.GetFloat64("inlet.mach")
	if r.err != nil {
		return Scenario{}, r.err
	}
	if err := inletGas.Validate(); err != nil {
		return Scenario{}, fmt.Errorf("%s: [gas]: %w", path, err)
	}
	if err := checkMach("inlet", M0); err != nil {
		return Scenario{}, fmt.Errorf("%s: [inlet]: %w", path, err)
	}
	inlet := GasState{Pt: p0 * δ(M0, inletGas.Gamma), Tt: t0 * θ(M0, inletGas.Gamma), Mach: M0, Gas: inletGas}

	// Cycle
	c := CycleConfiguration{Inlet: inlet}
	s.TargetWork = r.quantity("cycle.target_specific_work", SpecificEnergy, 0)
	if s.TargetWork == 0 {
		r.require("cycle.pressure_ratio")
	}
	c.PressureRatio = r.float("cycle.pressure_ratio", MinPressureRatio)
	r.require("cycle.turbine_inlet_temperature")
	c.TurbineInletTemperature = r.quantity("cycle.turbine_inlet_temperature", Temperature, 0)
	r.require("cycle.compressor_efficiency")
	r.require("cycle.turbine_efficiency")
	c.CompressorEfficiency = v.GetFloat64("cycle.compressor_efficiency")
	c.TurbineEfficiency = v.GetFloat64("cycle.turbine_efficiency")
	c.BurnerPressureLoss = v.GetFloat64("cycle.burner_pressure_loss")
	c.NozzlePressureLoss = v.GetFloat64("cycle.nozzle_pressure_loss")
	c.ShaftWork = r.quantity("cycle.shaft_work", SpecificEnergy, 0)
	var err error
	if c.Sizing, err = TurbineSizingFromString(v.GetString("cycle.sizing")); err != nil {
		r.fail("cycle.sizing", err)
	}
	if v.IsSet("hotgas") {
		c.HotGas = Gas{Gamma: r.float("hotgas.gamma", inletGas.Gamma), R: r.quantity("hotgas.R", SpecificHeat, inletGas.R)}
	}

	// Cooling
	switch model := strings.ToLower(v.GetString("cycle.cooling.model")); model {
	case "", "none":
	case "fixed":
		c.Cooling.Fraction = v.GetFloat64("cycle.cooling.fraction")
	case "stanton":
		r.require("cycle.cooling.stanton_number")
		r.require("cycle.cooling.metal_temperature")
		c.Cooling.Stanton = &StantonCooling{
			StantonNumber:    v.GetFloat64("cycle.cooling.stanton_number"),
			MetalTemperature: r.quantity("cycle.cooling.metal_temperature", Temperature, 0),
		}
	default:
		r.fail("cycle.cooling.model", fmt.Errorf("unknown cooling model `%s`", model))
	}
	c.Cooling.PressureLoss = v.GetFloat64("cycle.cooling.pressure_loss")
	if c.Cooling.Station, err = MixingStationFromString(v.GetString("cycle.cooling.station")); err != nil {
		r.fail("cycle.cooling.station", err)
	}
	if c.Cooling.Rule, err = MixingRuleFromString(v.GetString("cycle.cooling.rule")); err != nil {
		r.fail("cycle.cooling.rule", err)
	}

	// Fuel
	if v.IsSet("fuel.type") {
		ft, err := FuelTypeFromString(v.GetString("fuel.type"))
		if err != nil {
			r.fail("fuel.type", err)
		} else {
			_, table, err := Config()
			if err != nil {
				return Scenario{}, err
			}
			fuel, err := NewFuel(table, ft, v.GetFloat64("fuel.stored_mass_fraction"))
			if err != nil {
				r.fail("fuel", err)
			}
			c.Fuel = &fuel
			c.CombustionEfficiency = v.GetFloat64("cycle.combustion_efficiency")
		}
	}
	if r.err != nil {
		return Scenario{}, r.err
	}
	if err := c.Validate(); err != nil {
		return Scenario{}, fmt.Errorf("%s: [cycle]: %w", path, err)
	}
	s.Cycle = c

	// Optimization bounds
	s.Bounds = Bounds{
		MinPressureRatio:    r.float("optimize.min_pressure_ratio", DefaultBounds.MinPressureRatio),
		MaxPressureRatio:    r.float("optimize.max_pressure_ratio", DefaultBounds.MaxPressureRatio),
		MinTurbineInletTemp: r.quantity("optimize.min_turbine_inlet_temperature", Temperature, DefaultBounds.MinTurbineInletTemp),
		MaxTurbineInletTemp: r.quantity("optimize.max_turbine_inlet_temperature", Temperature, DefaultBounds.MaxTurbineInletTemp),
	}

	// Propulsor
	if v.IsSet("propulsor.mode") {
		p := &s.Propulsor
		if p.Mode, err = PropulsorModeFromString(v.GetString("propulsor.mode")); err != nil {
			r.fail("propulsor.mode", err)
		}
		p.NozzleLoss = v.GetFloat64("propulsor.nozzle_loss")
		switch p.Mode {
		case NozzlePropulsor:
			r.require("propulsor.mass_flow")
			p.MassFlow = r.quantity("propulsor.mass_flow", MassFlow, 0)
		case ShaftPropulsor:
			r.require("propulsor.mass_flow")
			p.MassFlow = r.quantity("propulsor.mass_flow", MassFlow, 0)
			p.ShaftPower = r.quantity("propulsor.shaft_power", Power, 0)
			p.CoreMassFlow = r.quantity("propulsor.core_mass_flow", MassFlow, 0)
			p.FanEfficiency = r.float("propulsor.fan_efficiency", 1)
			if p.ShaftPower == 0 && p.CoreMassFlow == 0 {
				r.fail("propulsor", fmt.Errorf("shaft mode needs a shaft_power or a core_mass_flow"))
			}
		case FanPropulsor:
			r.require("propulsor.fan.pressure_ratio")
			p.Fan = Fan{
				PressureRatio:        v.GetFloat64("propulsor.fan.pressure_ratio"),
				IsentropicEfficiency: r.float("propulsor.fan.isentropic_efficiency", 1),
			}
		}
	}

	// Sweep
	s.Sweep = SweepScenario{
		PressureRatios:           r.span("sweep.pressure_ratio", Dimensionless),
		TurbineInletTemperatures: r.span("sweep.turbine_inlet_temperature", Temperature),
		Workers:                  v.GetInt("sweep.workers"),
	}
	if r.err != nil {
		return Scenario{}, r.err
	}
	return s, nil
}
