package zca

import (
	"fmt"
	"math"
)

// JetSource is where a propulsor gets its jet velocity from.
type JetSource uint8

const (
	// ExitStateSource expands a nozzle exit station.
	ExitStateSource JetSource = iota + 1
	// ExitVelocitySource takes a fully expanded jet velocity.
	ExitVelocitySource
	// ShaftPowerSource accelerates the stream with a shaft power through a fan efficiency.
	ShaftPowerSource
)

func (s JetSource) String() string {
	switch s {
	case ExitStateSource:
		return "exit state"
	case ExitVelocitySource:
		return "exit velocity"
	case ShaftPowerSource:
		return "shaft power"
	}
	panic("cannot stringify unknown jet source")
}

// PropulsorConfiguration is the input of a propulsor evaluation. The jet velocity comes
// from Source. A zero Source is inferred from the fields: the exit state when Exit is set,
// the shaft power when ShaftPower is set, else the exit velocity (which may then be zero).
type PropulsorConfiguration struct {
	FlightVelocity  float64 // m/s
	AmbientPressure float64 // Pa
	MassFlow        float64 // kg/s

	Source        JetSource
	Exit          *GasState // nozzle exit station
	ExitVelocity  float64   // m/s, fully expanded jet
	ShaftPower    float64   // W delivered to a fan or propeller
	FanEfficiency float64   // shaft power to jet kinetic energy, required with ShaftPower

	// NozzleLoss is the fraction of jet kinetic energy lost, in [0, 1). It slows the jet
	// only: the exit area and pressure thrust of an exit state are those of the lossless
	// station.
	NozzleLoss float64
}

// FromCycle returns a propulsor configuration fed by the nozzle of a solved cycle.
func FromCycle(r CycleResult, massFlow float64) PropulsorConfiguration {
	exit := r.Nozzle
	return PropulsorConfiguration{
		FlightVelocity:  r.FlightVelocity,
		AmbientPressure: r.AmbientPressure,
		MassFlow:        massFlow,
		Source:          ExitStateSource,
		Exit:            &exit,
	}
}

// PropulsorResult is the output of Evaluate.
type PropulsorResult struct {
	Thrust                        float64 // N
	MomentumThrust                float64 // N
	PressureThrust                float64 // N
	SpecificThrust                float64 // N·s/kg
	ExitVelocity                  float64 // m/s
	ExitArea                      float64 // m^2, zero unless computed from an exit state
	PropulsiveEfficiency          float64
	VelocityRatio                 float64 // V0/Ve
	ResidualKineticEnergyFraction float64 // share of jet kinetic energy left in the wake, 1 − ηp
	JetPower                      float64 // W, rate of kinetic energy added to the stream
	ThrustPower                   float64 // W, thrust times flight velocity
}

func (r PropulsorResult) String() string {
	return fmt.Sprintf("F=%.1f N (p: %.1f N) Ve=%.1f m/s ηp=%.4f", r.Thrust, r.PressureThrust, r.ExitVelocity, r.PropulsiveEfficiency)
}

func (c PropulsorConfiguration) validate() error {
	const op = "propulsor"
	if !(c.FlightVelocity >= 0) || math.IsInf(c.FlightVelocity, 0) {
		return paramErr(ErrInvalidFlowState, op, "flight velocity must be non-negative", "V0", c.FlightVelocity)
	}
	if !(c.MassFlow > 0) || math.IsInf(c.MassFlow, 0) {
		return paramErr(ErrInvalidFlowState, op, "mass flow must be positive", "mass_flow", c.MassFlow)
	}
	if !(c.NozzleLoss >= 0 && c.NozzleLoss < 1) {
		return paramErr(ErrInvalidFlowState, op, "nozzle loss must be in [0, 1)", "nozzle_loss", c.NozzleLoss)
	}
	src, err := c.source()
	if err != nil {
		return err
	}
	switch src {
	case ExitStateSource:
		if c.Exit == nil {
			return paramErr(ErrInvalidFlowState, op, "exit state source without an exit state")
		}
		if err := c.Exit.Validate(); err != nil {
			return err
		}
		if !(c.AmbientPressure > 0) {
			return paramErr(ErrInvalidFlowState, op, "ambient pressure must be positive with an exit state", "P0", c.AmbientPressure)
		}
	case ExitVelocitySource:
		// Any finite Ve, a slow one is caught against V0.
		if math.IsNaN(c.ExitVelocity) || math.IsInf(c.ExitVelocity, 0) {
			return paramErr(ErrInvalidFlowState, op, "exit velocity must be finite", "Ve", c.ExitVelocity)
		}
	case ShaftPowerSource:
		if !(c.ShaftPower > 0) || math.IsInf(c.ShaftPower, 0) {
			return paramErr(ErrInvalidFlowState, op, "shaft power must be positive", "shaft_power", c.ShaftPower)
		}
		if !(c.FanEfficiency > 0 && c.FanEfficiency <= 1) {
			return paramErr(ErrInvalidFlowState, op, "fan efficiency must be in (0, 1]", "fan_efficiency", c.FanEfficiency)
		}
	}
	return nil
}

// source returns the jet source, inferring it when unset.
func (c PropulsorConfiguration) source() (JetSource, error) {
	if c.Source != 0 {
		if c.Source > ShaftPowerSource {
			return 0, paramErr(ErrInvalidFlowState, "propulsor", "unknown jet source", "source", uint8(c.Source))
		}
		return c.Source, nil
	}
	src, set := ExitVelocitySource, 0
	if c.Exit != nil {
		src = ExitStateSource
		set++
	}
	if c.ExitVelocity != 0 {
		src = ExitVelocitySource
		set++
	}
	if c.ShaftPower != 0 {
		src = ShaftPowerSource
		set++
	}
	if set > 1 {
		return 0, paramErr(ErrInvalidFlowState, "propulsor", "at most one of exit state, exit velocity or shaft power may be set", "sources", set)
	}
	return src, nil
}

// Evaluate returns the uninstalled single-stream thrust and efficiency of a propulsor.
// A jet slower than the flight velocity is rejected with ErrInvalidVelocityRatio.
func Evaluate(c PropulsorConfiguration) (PropulsorResult, error) {
	if err := c.validate(); err != nil {
		return PropulsorResult{}, err
	}
	v0, mdot := c.FlightVelocity, c.MassFlow
	var r PropulsorResult
	var pe, ae float64
	src, _ := c.source()
	switch src {
	case ExitStateSource:
		if v := c.Exit.Velocity(); v > 0 {
			pe = c.Exit.StaticPressure()
			ae = mdot / (c.Exit.StaticDensity() * v)
		}
		r.ExitVelocity = c.Exit.Velocity() * math.Sqrt(1-c.NozzleLoss)
	case ExitVelocitySource:
		r.ExitVelocity = c.ExitVelocity * math.Sqrt(1-c.NozzleLoss)
	default:
		ke := c.FanEfficiency * (1 - c.NozzleLoss) * c.ShaftPower / mdot
		r.ExitVelocity = math.Sqrt(v0*v0 + 2*ke)
	}
	ve := r.ExitVelocity
	if ve < v0 {
		return PropulsorResult{}, paramErr(ErrInvalidVelocityRatio, "propulsor", "jet velocity below flight velocity", "Ve", ve, "V0", v0)
	}
	r.ExitArea = ae
	r.MomentumThrust = mdot * (ve - v0)
	if ae > 0 {
		r.PressureThrust = (pe - c.AmbientPressure) * ae
	}
	r.Thrust = r.MomentumThrust + r.PressureThrust
	r.SpecificThrust = r.Thrust / mdot

	// ηp = 2/(1 + Ve/V0) written with r = V0/Ve so that Ve = V0 gives exactly 1.
	if ve == 0 {
		r.VelocityRatio = 1 // Ve = V0 = 0
	} else {
		r.VelocityRatio = v0 / ve
	}
	vr := r.VelocityRatio
	r.PropulsiveEfficiency = 2 * vr / (1 + vr)
	r.ResidualKineticEnergyFraction = (1 - vr) / (1 + vr)
	r.JetPower = 0.5 * mdot * (ve*ve - v0*v0)
	r.ThrustPower = r.Thrust * v0
	return r, nil
}
