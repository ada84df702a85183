package zca

import "math"

/* Perfect-gas isentropic relations. Every function takes γ explicitly. */

// γ1 returns γ/(γ-1).
func γ1(γ float64) float64 {
	return γ / (γ - 1)
}

func checkγ(op string, γ float64) error {
	if !(γ > 1) || math.IsInf(γ, 0) {
		return paramErr(ErrInvalidFlowState, op, "ratio of specific heats must exceed 1", "γ", γ)
	}
	return nil
}

func checkMach(op string, M float64) error {
	if !(M >= 0) || math.IsInf(M, 0) {
		return paramErr(ErrInvalidFlowState, op, "Mach number must be finite and non-negative", "M", M)
	}
	return nil
}

// θ is the total to static temperature ratio, without checks.
func θ(M, γ float64) float64 {
	return 1 + (γ-1)/2*M*M
}

// δ is the total to static pressure ratio, without checks.
func δ(M, γ float64) float64 {
	return math.Pow(θ(M, γ), γ1(γ))
}

// StagnationToStaticTemperatureRatio returns Tt/T = 1 + (γ-1)/2·M².
func StagnationToStaticTemperatureRatio(M, γ float64) (float64, error) {
	const op = "stagnation to static temperature ratio"
	if err := checkγ(op, γ); err != nil {
		return 0, err
	}
	if err := checkMach(op, M); err != nil {
		return 0, err
	}
	return θ(M, γ), nil
}

// StagnationToStaticPressureRatio returns Pt/P = (Tt/T)^(γ/(γ-1)).
func StagnationToStaticPressureRatio(M, γ float64) (float64, error) {
	const op = "stagnation to static pressure ratio"
	if err := checkγ(op, γ); err != nil {
		return 0, err
	}
	if err := checkMach(op, M); err != nil {
		return 0, err
	}
	return δ(M, γ), nil
}

// MachFromPressureRatio inverts StagnationToStaticPressureRatio in closed form.
// A ratio below one would need a negative Mach number and is rejected.
func MachFromPressureRatio(ratio, γ float64) (float64, error) {
	const op = "Mach from pressure ratio"
	if err := checkγ(op, γ); err != nil {
		return 0, err
	}
	if !(ratio >= 1) || math.IsInf(ratio, 0) {
		return 0, paramErr(ErrInvalidFlowState, op, "total to static pressure ratio must be at least 1", "Pt/P", ratio, "γ", γ)
	}
	return machFromθ(math.Pow(ratio, 1/γ1(γ)), γ), nil
}

// MachFromTemperatureRatio inverts StagnationToStaticTemperatureRatio.
func MachFromTemperatureRatio(ratio, γ float64) (float64, error) {
	const op = "Mach from temperature ratio"
	if err := checkγ(op, γ); err != nil {
		return 0, err
	}
	if !(ratio >= 1) || math.IsInf(ratio, 0) {
		return 0, paramErr(ErrInvalidFlowState, op, "total to static temperature ratio must be at least 1", "Tt/T", ratio, "γ", γ)
	}
	return machFromθ(ratio, γ), nil
}

func machFromθ(tr, γ float64) float64 {
	m2 := 2 / (γ - 1) * (tr - 1)
	if m2 <= 0 {
		return 0
	}
	return math.Sqrt(m2)
}

// AreaRatioFromMach returns A/A*, the ratio of the flow area to the sonic throat area.
// It is infinite at M = 0.
func AreaRatioFromMach(M, γ float64) (float64, error) {
	const op = "area ratio from Mach"
	if err := checkγ(op, γ); err != nil {
		return 0, err
	}
	if err := checkMach(op, M); err != nil {
		return 0, err
	}
	if M == 0 {
		return math.Inf(1), nil
	}
	exp := (γ + 1) / (2 * (γ - 1))
	return math.Pow(2/(γ+1)*θ(M, γ), exp) / M, nil
}

// CriticalPressureRatio returns the total to static pressure ratio at M = 1.
// Nozzles fed above this ratio choke.
func CriticalPressureRatio(γ float64) (float64, error) {
	if err := checkγ("critical pressure ratio", γ); err != nil {
		return 0, err
	}
	return δ(1, γ), nil
}

// SoundSpeed returns the speed of sound in m/s for a static temperature in K.
func SoundSpeed(T, γ, R float64) float64 {
	return math.Sqrt(γ * R * T)
}
