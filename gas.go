package zca

import (
	"fmt"
	"math"
)

// Air is dry air as a calorically perfect gas.
var Air = Gas{Gamma: 1.4, R: 287.058}

// Gas holds the constant properties of a calorically perfect gas.
type Gas struct {
	Gamma float64 // ratio of specific heats
	R     float64 // specific gas constant (J/kg/K)
}

// Cp returns the specific heat at constant pressure (J/kg/K).
func (g Gas) Cp() float64 {
	return g.R * γ1(g.Gamma)
}

// Validate returns an ErrInvalidFlowState if the gas is not a valid perfect gas.
func (g Gas) Validate() error {
	if err := checkγ("gas", g.Gamma); err != nil {
		return err
	}
	if !(g.R > 0) || math.IsInf(g.R, 0) {
		return paramErr(ErrInvalidFlowState, "gas", "gas constant must be positive", "R", g.R)
	}
	return nil
}

func (g Gas) isZero() bool {
	return g == Gas{}
}

// GasState is a flow station: stagnation conditions, Mach number and gas properties.
// Static conditions are always derived, never stored.
type GasState struct {
	Pt   float64 // stagnation pressure (Pa)
	Tt   float64 // stagnation temperature (K)
	Mach float64
	Gas
}

// NewGasState returns a validated GasState from dimensioned stagnation conditions.
func NewGasState(pt, tt Quantity, mach float64, gas Gas) (GasState, error) {
	p, err := pt.SI(Pressure)
	if err != nil {
		return GasState{}, err
	}
	t, err := tt.SI(Temperature)
	if err != nil {
		return GasState{}, err
	}
	s := GasState{Pt: p, Tt: t, Mach: mach, Gas: gas}
	return s, s.Validate()
}

// Validate checks the invariants of a flow station.
func (s GasState) Validate() error {
	if err := s.Gas.Validate(); err != nil {
		return err
	}
	if err := checkMach("gas state", s.Mach); err != nil {
		return err
	}
	if !(s.Pt > 0) || math.IsInf(s.Pt, 0) {
		return paramErr(ErrInvalidFlowState, "gas state", "stagnation pressure must be positive", "Pt", s.Pt)
	}
	if !(s.Tt > 0) || math.IsInf(s.Tt, 0) {
		return paramErr(ErrInvalidFlowState, "gas state", "stagnation temperature must be positive", "Tt", s.Tt)
	}
	return nil
}

// StaticTemperature returns T in K.
func (s GasState) StaticTemperature() float64 {
	return s.Tt / θ(s.Mach, s.Gamma)
}

// StaticPressure returns P in Pa.
func (s GasState) StaticPressure() float64 {
	return s.Pt / δ(s.Mach, s.Gamma)
}

// StaticDensity returns ρ in kg/m^3.
func (s GasState) StaticDensity() float64 {
	return s.StaticPressure() / (s.R * s.StaticTemperature())
}

// SoundSpeed returns the local speed of sound in m/s.
func (s GasState) SoundSpeed() float64 {
	return SoundSpeed(s.StaticTemperature(), s.Gamma, s.R)
}

// Velocity returns the flow velocity in m/s.
func (s GasState) Velocity() float64 {
	return s.Mach * s.SoundSpeed()
}

// WithMach returns a copy of the station at another Mach number and same stagnation state.
func (s GasState) WithMach(M float64) GasState {
	s.Mach = M
	return s
}

func (s GasState) String() string {
	return fmt.Sprintf("Pt=%.1f kPa Tt=%.2f K M=%.3f", s.Pt/1e3, s.Tt, s.Mach)
}
