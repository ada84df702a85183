package zca

import (
	"fmt"
	"strings"
)

// FuelType identifies a fuel in a FuelProperties provider.
type FuelType uint8

const (
	// Methane is liquefied natural gas.
	Methane FuelType = iota + 1
	// JetA is conventional kerosene jet fuel.
	JetA
	// Ammonia is liquid NH3.
	Ammonia
	// Hydrogen is liquid H2.
	Hydrogen
	// Ethanol is liquid C2H5OH.
	Ethanol
)

func (f FuelType) String() string {
	switch f {
	case Methane:
		return "Methane"
	case JetA:
		return "Jet-A"
	case Ammonia:
		return "Ammonia"
	case Hydrogen:
		return "Hydrogen"
	case Ethanol:
		return "Ethanol"
	}
	panic("cannot stringify unknown fuel type")
}

// FuelTypeFromString returns the fuel type from its name (case insensitive).
func FuelTypeFromString(name string) (FuelType, error) {
	switch strings.ToLower(strings.Replace(name, "-", "", -1)) {
	case "methane", "ch4", "lng":
		return Methane, nil
	case "jeta", "kerosene":
		return JetA, nil
	case "ammonia", "nh3":
		return Ammonia, nil
	case "hydrogen", "h2":
		return Hydrogen, nil
	case "ethanol", "c2h5oh":
		return Ethanol, nil
	}
	return 0, paramErr(ErrUnknownFuel, "fuel type", "undefined fuel", "name", name)
}

// FuelProperties provides the fuel data the cycle needs. Combustion chemistry stays
// behind this interface.
type FuelProperties interface {
	// HeatingValue returns the lower heating value (energy per mass).
	HeatingValue(FuelType) (Quantity, error)
	// LiquidDensity returns the liquid storage density (mass per volume).
	LiquidDensity(FuelType) (Quantity, error)
	// SpecificCost returns the fuel price per mass or per liquid volume.
	SpecificCost(FuelType) (Quantity, error)
	// CarbonMassFraction returns the mass fraction of carbon in the fuel molecule.
	CarbonMassFraction(FuelType) (float64, error)
}

// FuelTable is a static FuelProperties provider.
type FuelTable map[FuelType]FuelData

// FuelData is one row of a FuelTable.
type FuelData struct {
	LHV                Quantity
	Density            Quantity
	Cost               Quantity // mass or volume specific, zero when unknown
	CarbonMassFraction float64
}

// Molar masses in g/mol.
const (
	molarMassC   = 12.011
	molarMassH   = 1.008
	molarMassO   = 15.999
	molarMassCO2 = molarMassC + 2*molarMassO
)

// carbonFraction returns the carbon mass fraction of CcHhOo.
func carbonFraction(c, h, o float64) float64 {
	return c * molarMassC / (c*molarMassC + h*molarMassH + o*molarMassO)
}

// DefaultFuels holds lower heating values at 298 K, liquid densities, indicative prices
// and the carbon content of each molecule (Jet-A as C12H23).
var DefaultFuels = FuelTable{
	Methane:  {LHV: Q(50.0, "MJ/kg"), Density: Q(423, "kg/m^3"), Cost: Q(0.25, "USD/kg"), CarbonMassFraction: carbonFraction(1, 4, 0)},
	JetA:     {LHV: Q(43.2, "MJ/kg"), Density: Q(804, "kg/m^3"), Cost: Q(1.4, "USD/L"), CarbonMassFraction: carbonFraction(12, 23, 0)},
	Ammonia:  {LHV: Q(18.6, "MJ/kg"), Density: Q(682, "kg/m^3"), Cost: Q(500, "USD/t")},
	Hydrogen: {LHV: Q(120.0, "MJ/kg"), Density: Q(71, "kg/m^3"), Cost: Q(4, "USD/kg")},
	Ethanol:  {LHV: Q(26.8, "MJ/kg"), Density: Q(789, "kg/m^3"), Cost: Q(1.74, "USD/gal"), CarbonMassFraction: carbonFraction(2, 6, 1)},
}

func (t FuelTable) row(f FuelType, what string) (FuelData, error) {
	d, ok := t[f]
	if !ok {
		return FuelData{}, paramErr(ErrUnknownFuel, "fuel table", "no "+what+" for fuel", "fuel", uint8(f))
	}
	return d, nil
}

// HeatingValue implements the FuelProperties interface.
func (t FuelTable) HeatingValue(f FuelType) (Quantity, error) {
	d, err := t.row(f, "heating value")
	return d.LHV, err
}

// LiquidDensity implements the FuelProperties interface.
func (t FuelTable) LiquidDensity(f FuelType) (Quantity, error) {
	d, err := t.row(f, "liquid density")
	return d.Density, err
}

// SpecificCost implements the FuelProperties interface.
func (t FuelTable) SpecificCost(f FuelType) (Quantity, error) {
	d, err := t.row(f, "specific cost")
	return d.Cost, err
}

// CarbonMassFraction implements the FuelProperties interface.
func (t FuelTable) CarbonMassFraction(f FuelType) (float64, error) {
	d, err := t.row(f, "carbon mass fraction")
	return d.CarbonMassFraction, err
}

// With returns a copy of the table with the provided row replaced.
func (t FuelTable) With(f FuelType, d FuelData) FuelTable {
	c := make(FuelTable, len(t)+1)
	for k, v := range t {
		c[k] = v
	}
	c[f] = d
	return c
}

// Fuel is the resolved fuel used by a cycle: heating value and density in SI, plus the
// fraction of the stored system mass that is fuel (e.g. tank mass for hydrogen).
type Fuel struct {
	Type               FuelType
	LHV                float64 // J/kg
	Density            float64 // kg/m^3
	StoredMassFraction float64 // (0, 1]
	Cost               float64 // USD/kg, zero when unknown
	CarbonMassFraction float64
}

// NewFuel resolves a fuel from a provider.
func NewFuel(p FuelProperties, f FuelType, storedMassFraction float64) (Fuel, error) {
	lhv, err := p.HeatingValue(f)
	if err != nil {
		return Fuel{}, err
	}
	rho, err := p.LiquidDensity(f)
	if err != nil {
		return Fuel{}, err
	}
	cost, err := p.SpecificCost(f)
	if err != nil {
		return Fuel{}, err
	}
	fuel := Fuel{Type: f, StoredMassFraction: storedMassFraction}
	if fuel.CarbonMassFraction, err = p.CarbonMassFraction(f); err != nil {
		return Fuel{}, err
	}
	if fuel.LHV, err = lhv.SI(SpecificEnergy); err != nil {
		return Fuel{}, err
	}
	if fuel.Density, err = rho.SI(Density); err != nil {
		return Fuel{}, err
	}
	if fuel.Cost, err = massCost(cost, fuel.Density); err != nil {
		return Fuel{}, err
	}
	return fuel, fuel.Validate()
}

// massCost converts a mass or volume specific cost to USD/kg.
func massCost(q Quantity, density float64) (float64, error) {
	if q == (Quantity{}) {
		return 0, nil
	}
	d, err := q.Dimension()
	if err != nil {
		return 0, err
	}
	switch d {
	case MassCost:
		return q.SI(MassCost)
	case VolumeCost:
		v, err := q.SI(VolumeCost)
		return v / density, err
	}
	return 0, paramErr(ErrUnitMismatch, "fuel cost", fmt.Sprintf("expected %s or %s, got %s", MassCost, VolumeCost, d), "cost", q)
}

// Validate checks the fuel values.
func (f Fuel) Validate() error {
	if !(f.LHV > 0) {
		return paramErr(ErrInfeasibleCycle, "fuel", "heating value must be positive", "fuel", f.Type, "LHV", f.LHV)
	}
	if !(f.Density > 0) {
		return paramErr(ErrInfeasibleCycle, "fuel", "liquid density must be positive", "fuel", f.Type, "density", f.Density)
	}
	if !(f.StoredMassFraction > 0 && f.StoredMassFraction <= 1) {
		return paramErr(ErrInfeasibleCycle, "fuel", "stored mass fraction must be in (0, 1]", "fuel", f.Type, "stored_mass_fraction", f.StoredMassFraction)
	}
	if !(f.Cost >= 0) {
		return paramErr(ErrInfeasibleCycle, "fuel", "cost must be non-negative", "fuel", f.Type, "cost", f.Cost)
	}
	if !(f.CarbonMassFraction >= 0 && f.CarbonMassFraction <= 1) {
		return paramErr(ErrInfeasibleCycle, "fuel", "carbon mass fraction must be in [0, 1]", "fuel", f.Type, "carbon_mass_fraction", f.CarbonMassFraction)
	}
	return nil
}

// StoredHeatingValue returns the heating value per unit of stored mass (fuel and tank) in J/kg.
func (f Fuel) StoredHeatingValue() float64 {
	return f.LHV * f.StoredMassFraction
}

// VolumetricEnergyDensity returns the liquid energy density in J/m^3.
func (f Fuel) VolumetricEnergyDensity() float64 {
	return f.LHV * f.Density
}

// CostPerVolume returns the liquid volume specific cost in USD/m^3.
func (f Fuel) CostPerVolume() float64 {
	return f.Cost * f.Density
}

// CostPerEnergy returns the cost on a lower heating value basis in USD/J.
func (f Fuel) CostPerEnergy() float64 {
	return f.Cost / f.LHV
}

// EmissionsFactor returns the CO2 released by complete combustion per unit of heating value,
// in kg/J. It is zero for carbon free fuels.
func (f Fuel) EmissionsFactor() float64 {
	return f.CarbonMassFraction * molarMassCO2 / molarMassC / f.LHV
}

func (f Fuel) String() string {
	return fmt.Sprintf("%s (LHV %.1f MJ/kg, %.0f kg/m^3, stored fraction %.2f, %.4f USD/kWh, %.3f kg CO2/kWh)", f.Type, f.LHV/1e6, f.Density, f.StoredMassFraction, f.CostPerEnergy()*3.6e6, f.EmissionsFactor()*3.6e6)
}
