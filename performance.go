package zca

import "fmt"

// Performance combines a solved cycle and its propulsor into the figures an aircraft
// level model consumes.
type Performance struct {
	ThermalEfficiency    float64
	PropulsiveEfficiency float64
	OverallEfficiency    float64 // thrust power over fuel heat release rate
	TSFC                 float64 // kg/N/s, zero without fuel
	StoredTSFC           float64 // kg/N/s of stored fuel system mass
	FuelFlow             float64 // kg/s
	FuelCostRate         float64 // USD/s, zero for unpriced fuels
	CO2Rate              float64 // kg/s
	SpecificThrust       float64 // N·s/kg
}

// NewPerformance returns the engine level performance. massFlow must be the propulsor mass
// flow (kg/s of inlet air) so that the fuel flow matches the cycle's fuel to air ratio.
func NewPerformance(c CycleResult, p PropulsorResult, massFlow float64, fuel *Fuel) (Performance, error) {
	perf := Performance{
		ThermalEfficiency:    c.ThermalEfficiency,
		PropulsiveEfficiency: p.PropulsiveEfficiency,
		SpecificThrust:       p.SpecificThrust,
	}
	if fuel == nil || c.FuelAirRatio == 0 {
		perf.OverallEfficiency = c.ThermalEfficiency * p.PropulsiveEfficiency
		return perf, nil
	}
	if p.Thrust <= 0 {
		return Performance{}, paramErr(ErrInvalidVelocityRatio, "performance", "fuel consumption needs positive thrust", "thrust", p.Thrust)
	}
	perf.FuelFlow = c.FuelAirRatio * massFlow
	perf.TSFC = perf.FuelFlow / p.Thrust
	perf.StoredTSFC = perf.TSFC / fuel.StoredMassFraction
	perf.OverallEfficiency = p.ThrustPower / (perf.FuelFlow * fuel.LHV)
	perf.FuelCostRate = perf.FuelFlow * fuel.Cost
	perf.CO2Rate = perf.FuelFlow * fuel.LHV * fuel.EmissionsFactor()
	return perf, nil
}

func (p Performance) String() string {
	return fmt.Sprintf("ηth=%.4f ηp=%.4f ηo=%.4f TSFC=%.3f g/kN/s fuel=%.1f USD/h CO2=%.1f kg/h", p.ThermalEfficiency, p.PropulsiveEfficiency, p.OverallEfficiency, p.TSFC*1e6, p.FuelCostRate*3600, p.CO2Rate*3600)
}
