package zca

import (
	"fmt"
	"math"
)

// Fan is a ducted fan stage with a fully expanded nozzle, flying at M0.
type Fan struct {
	PressureRatio        float64 // fan total pressure ratio
	FlightMach           float64
	IsentropicEfficiency float64
	Gamma                float64
}

// FanResult holds the non-dimensional fan performance.
type FanResult struct {
	NozzleMach              float64 // fully expanded nozzle exit Mach number
	TotalTemperatureRatio   float64 // Tt2/Tt0
	StaticTemperatureRatio  float64 // T2n/T0
	VelocityRatio           float64 // U2n/U0
	SpecificThrust          float64 // thrust/(ṁ·U0)
	KineticEnergyEfficiency float64 // jet kinetic energy rise over fan work
	PropulsiveEfficiency    float64
	OverallEfficiency       float64
}

func (r FanResult) String() string {
	return fmt.Sprintf("M=%.3f U/U0=%.4f F/(ṁU0)=%.4f ηKE=%.4f ηp=%.4f ηo=%.4f", r.NozzleMach, r.VelocityRatio, r.SpecificThrust, r.KineticEnergyEfficiency, r.PropulsiveEfficiency, r.OverallEfficiency)
}

// Evaluate returns the fan performance. The flight Mach number must be positive since
// every output is normalized by the flight velocity.
func (f Fan) Evaluate() (FanResult, error) {
	const op = "fan"
	if err := checkγ(op, f.Gamma); err != nil {
		return FanResult{}, err
	}
	if !(f.FlightMach > 0) || math.IsInf(f.FlightMach, 0) {
		return FanResult{}, paramErr(ErrInvalidFlowState, op, "flight Mach number must be positive", "M0", f.FlightMach)
	}
	if !(f.PressureRatio >= 1) || math.IsInf(f.PressureRatio, 0) {
		return FanResult{}, paramErr(ErrInvalidFlowState, op, "fan pressure ratio must be at least 1", "FPR", f.PressureRatio)
	}
	if !(f.IsentropicEfficiency > 0 && f.IsentropicEfficiency <= 1) {
		return FanResult{}, paramErr(ErrInvalidFlowState, op, "isentropic efficiency must be in (0, 1]", "η", f.IsentropicEfficiency)
	}
	γ, M0 := f.Gamma, f.FlightMach
	τ := math.Pow(f.PressureRatio, 1/γ1(γ)) // isentropic temperature ratio
	θ0 := θ(M0, γ)

	var r FanResult
	r.NozzleMach = math.Sqrt(2 / (γ - 1) * (τ*θ0 - 1))
	r.TotalTemperatureRatio = (τ-1)/f.IsentropicEfficiency + 1
	r.StaticTemperatureRatio = θ0 / θ(r.NozzleMach, γ) * r.TotalTemperatureRatio
	r.VelocityRatio = r.NozzleMach / M0 * math.Sqrt(r.StaticTemperatureRatio)
	r.SpecificThrust = r.VelocityRatio - 1
	u2 := r.VelocityRatio * r.VelocityRatio
	if f.PressureRatio == 1 {
		// No work, no jet: the limits of both efficiencies.
		r.KineticEnergyEfficiency = 1
		r.PropulsiveEfficiency = 1
	} else {
		r.KineticEnergyEfficiency = M0 * M0 * (γ - 1) / 2 / θ0 * (u2 - 1) / (r.TotalTemperatureRatio - 1)
		r.PropulsiveEfficiency = 2 * r.SpecificThrust / (u2 - 1)
	}
	r.OverallEfficiency = r.KineticEnergyEfficiency * r.PropulsiveEfficiency
	return r, nil
}
