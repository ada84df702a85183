package zca

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Dimension is the physical dimension of a quantity.
type Dimension uint8

const (
	Dimensionless Dimension = iota
	Temperature
	Pressure
	Velocity
	SpecificEnergy // J/kg
	SpecificHeat   // J/kg/K
	Density
	MassFlow
	Force
	Power
	Area
	Mass
	Volume
	FuelConsumption // kg/N/s
	SpecificThrust  // N·s/kg
	MassCost        // USD/kg
	VolumeCost      // USD/m^3
	EnergyCost      // USD/J
	EmissionsFactor // kg CO2/J
)

func (d Dimension) String() string {
	switch d {
	case Dimensionless:
		return "dimensionless"
	case Temperature:
		return "temperature"
	case Pressure:
		return "pressure"
	case Velocity:
		return "velocity"
	case SpecificEnergy:
		return "specific energy"
	case SpecificHeat:
		return "specific heat"
	case Density:
		return "density"
	case MassFlow:
		return "mass flow"
	case Force:
		return "force"
	case Power:
		return "power"
	case Area:
		return "area"
	case Mass:
		return "mass"
	case Volume:
		return "volume"
	case FuelConsumption:
		return "fuel consumption"
	case SpecificThrust:
		return "specific thrust"
	case MassCost:
		return "mass specific cost"
	case VolumeCost:
		return "volume specific cost"
	case EnergyCost:
		return "energy specific cost"
	case EmissionsFactor:
		return "emissions factor"
	}
	panic("cannot stringify unknown dimension")
}

// unit converts to SI as value*scale + offset.
type unit struct {
	dim    Dimension
	scale  float64
	offset float64
}

// The unit table is built once at package initialization and never written again.
var unitTable = map[string]unit{
	"":  {Dimensionless, 1, 0},
	"-": {Dimensionless, 1, 0},
	"%": {Dimensionless, 1e-2, 0},

	"K":    {Temperature, 1, 0},
	"degC": {Temperature, 1, 273.15},
	"°C":   {Temperature, 1, 273.15},
	"degF": {Temperature, 5. / 9, 273.15 - 32*5./9},
	"°F":   {Temperature, 5. / 9, 273.15 - 32*5./9},
	"degR": {Temperature, 5. / 9, 0},
	"°R":   {Temperature, 5. / 9, 0},

	"Pa":  {Pressure, 1, 0},
	"kPa": {Pressure, 1e3, 0},
	"MPa": {Pressure, 1e6, 0},
	"bar": {Pressure, 1e5, 0},
	"atm": {Pressure, 101325, 0},
	"psi": {Pressure, 6894.757293168361, 0},

	"m/s":  {Velocity, 1, 0},
	"km/h": {Velocity, 1 / 3.6, 0},
	"kt":   {Velocity, 1852. / 3600, 0},
	"ft/s": {Velocity, 0.3048, 0},

	"J/kg":   {SpecificEnergy, 1, 0},
	"kJ/kg":  {SpecificEnergy, 1e3, 0},
	"MJ/kg":  {SpecificEnergy, 1e6, 0},
	"kWh/kg": {SpecificEnergy, 3.6e6, 0},
	"Btu/lb": {SpecificEnergy, 2326, 0},

	"J/kg/K":  {SpecificHeat, 1, 0},
	"kJ/kg/K": {SpecificHeat, 1e3, 0},

	"kg/m^3":  {Density, 1, 0},
	"kg/L":    {Density, 1e3, 0},
	"g/cm^3":  {Density, 1e3, 0},
	"lb/ft^3": {Density, 16.018463373960138, 0},

	"kg/s": {MassFlow, 1, 0},
	"lb/s": {MassFlow, 0.45359237, 0},

	"N":   {Force, 1, 0},
	"kN":  {Force, 1e3, 0},
	"lbf": {Force, 4.4482216152605, 0},

	"W":  {Power, 1, 0},
	"kW": {Power, 1e3, 0},
	"MW": {Power, 1e6, 0},
	"hp": {Power, 745.69987158227022, 0},

	"m^2":  {Area, 1, 0},
	"cm^2": {Area, 1e-4, 0},
	"ft^2": {Area, 0.09290304, 0},

	"kg": {Mass, 1, 0},
	"t":  {Mass, 1e3, 0},
	"lb": {Mass, 0.45359237, 0},

	"m^3": {Volume, 1, 0},
	"L":   {Volume, 1e-3, 0},
	"gal": {Volume, 3.785411784e-3, 0},

	"kg/N/s":   {FuelConsumption, 1, 0},
	"g/kN/s":   {FuelConsumption, 1e-6, 0},
	"lb/lbf/h": {FuelConsumption, 0.45359237 / 4.4482216152605 / 3600, 0},

	"N*s/kg": {SpecificThrust, 1, 0},

	// Costs are in US dollars.
	"USD/kg": {MassCost, 1, 0},
	"USD/t":  {MassCost, 1e-3, 0},
	"USD/lb": {MassCost, 1 / 0.45359237, 0},

	"USD/m^3": {VolumeCost, 1, 0},
	"USD/L":   {VolumeCost, 1e3, 0},
	"USD/gal": {VolumeCost, 1 / 3.785411784e-3, 0},

	"USD/J":   {EnergyCost, 1, 0},
	"USD/MJ":  {EnergyCost, 1e-6, 0},
	"USD/kWh": {EnergyCost, 1 / 3.6e6, 0},

	"kg/J":   {EmissionsFactor, 1, 0},
	"kg/MJ":  {EmissionsFactor, 1e-6, 0},
	"kg/kWh": {EmissionsFactor, 1 / 3.6e6, 0},
	"g/kWh":  {EmissionsFactor, 1e-3 / 3.6e6, 0},
}

// Units returns the symbols known for a dimension, sorted.
func Units(d Dimension) []string {
	var syms []string
	for sym, u := range unitTable {
		if u.dim == d {
			syms = append(syms, sym)
		}
	}
	sort.Strings(syms)
	return syms
}

// Quantity is a value tagged with its unit symbol.
type Quantity struct {
	Value float64
	Unit  string
}

// Q returns a new Quantity.
func Q(value float64, unit string) Quantity {
	return Quantity{value, unit}
}

func (q Quantity) String() string {
	if q.Unit == "" {
		return strconv.FormatFloat(q.Value, 'g', -1, 64)
	}
	return strconv.FormatFloat(q.Value, 'g', -1, 64) + " " + q.Unit
}

// Dimension returns the dimension of the quantity's unit.
func (q Quantity) Dimension() (Dimension, error) {
	u, ok := unitTable[q.Unit]
	if !ok {
		return 0, paramErr(ErrUnitMismatch, "quantity", "unknown unit", "unit", q.Unit)
	}
	return u.dim, nil
}

// SI returns the value in the canonical SI unit of the expected dimension.
func (q Quantity) SI(want Dimension) (float64, error) {
	u, ok := unitTable[q.Unit]
	if !ok {
		return 0, paramErr(ErrUnitMismatch, "quantity", "unknown unit", "unit", q.Unit)
	}
	if u.dim != want {
		return 0, paramErr(ErrUnitMismatch, "quantity", fmt.Sprintf("expected %s, got %s", want, u.dim), "value", q.Value, "unit", q.Unit)
	}
	return q.Value*u.scale + u.offset, nil
}

// In converts the quantity into the provided unit.
func (q Quantity) In(target string) (float64, error) {
	t, ok := unitTable[target]
	if !ok {
		return 0, paramErr(ErrUnitMismatch, "quantity", "unknown unit", "unit", target)
	}
	si, err := q.SI(t.dim)
	if err != nil {
		return 0, err
	}
	return (si - t.offset) / t.scale, nil
}

// MustSI is like SI but panics on error. Only use it with literal quantities.
func (q Quantity) MustSI(want Dimension) float64 {
	v, err := q.SI(want)
	if err != nil {
		panic(err)
	}
	return v
}

// ParseQuantity parses strings like "1500 degC", "100kPa" or "0.9".
func ParseQuantity(s string) (Quantity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Quantity{}, paramErr(ErrUnitMismatch, "parse quantity", "empty string")
	}
	// Longest numeric prefix.
	end := 0
	for i := len(s); i > 0; i-- {
		if _, err := strconv.ParseFloat(s[:i], 64); err == nil {
			end = i
			break
		}
	}
	if end == 0 {
		return Quantity{}, paramErr(ErrUnitMismatch, "parse quantity", "no numeric value", "input", s)
	}
	v, _ := strconv.ParseFloat(s[:end], 64)
	sym := strings.TrimSpace(s[end:])
	if _, ok := unitTable[sym]; !ok {
		return Quantity{}, paramErr(ErrUnitMismatch, "parse quantity", "unknown unit", "input", s, "unit", sym)
	}
	return Quantity{v, sym}, nil
}

// parseSI parses a string quantity and converts it to SI in one go.
func parseSI(s string, want Dimension) (float64, error) {
	q, err := ParseQuantity(s)
	if err != nil {
		return 0, err
	}
	return q.SI(want)
}
