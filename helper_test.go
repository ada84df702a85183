package zca

import (
	"errors"
	"testing"
)

func assertPanic(t *testing.T, f func()) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("code did not panic")
		}
	}()
	f()
}

func assertErrorIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("expected %v, got %v", target, err)
	}
}

// stdInlet is sea level static air at 25 °C.
func stdInlet() GasState {
	return GasState{Pt: 101325, Tt: 298.15, Gas: Air}
}

// coreConfig is a modern turbofan core: PR 30, 1500 °C, ηc 0.90, ηt 0.89, no losses.
func coreConfig() CycleConfiguration {
	return CycleConfiguration{
		PressureRatio:           30,
		TurbineInletTemperature: C2K(1500),
		CompressorEfficiency:    0.90,
		TurbineEfficiency:       0.89,
		Inlet:                   stdInlet(),
	}
}
