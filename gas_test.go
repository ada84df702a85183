package zca

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestGas(t *testing.T) {
	if cp := Air.Cp(); !scalar.EqualWithinAbs(cp, 1004.703, 1e-3) {
		t.Fatalf("cp=%f", cp)
	}
	assertErrorIs(t, Gas{Gamma: 1, R: 287}.Validate(), ErrInvalidFlowState)
	assertErrorIs(t, Gas{Gamma: 1.4, R: 0}.Validate(), ErrInvalidFlowState)
	if err := Air.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestGasState(t *testing.T) {
	s, err := NewGasState(Q(1, "atm"), Q(15, "degC"), 0, Air)
	if err != nil {
		t.Fatal(err)
	}
	if s.StaticTemperature() != s.Tt || s.StaticPressure() != s.Pt || s.Velocity() != 0 {
		t.Fatal("static and total conditions differ at rest")
	}
	if !scalar.EqualWithinAbs(s.StaticDensity(), 1.225, 1e-3) {
		t.Fatalf("ρ=%f", s.StaticDensity())
	}
	sonic := s.WithMach(1)
	if s.Mach != 0 {
		t.Fatal("WithMach modified the receiver")
	}
	if !scalar.EqualWithinAbs(sonic.StaticTemperature(), 288.15/1.2, 1e-10) {
		t.Fatalf("T*=%f", sonic.StaticTemperature())
	}
	if !scalar.EqualWithinAbs(sonic.Velocity(), sonic.SoundSpeed(), 1e-12) {
		t.Fatal("V != a at M=1")
	}
	if _, err := NewGasState(Q(1, "atm"), Q(1, "atm"), 0, Air); err == nil {
		t.Fatal("pressure accepted as temperature")
	} else {
		assertErrorIs(t, err, ErrUnitMismatch)
	}
	_, err = NewGasState(Q(1, "atm"), Q(15, "degC"), -0.1, Air)
	assertErrorIs(t, err, ErrInvalidFlowState)
	_, err = NewGasState(Q(-1, "atm"), Q(15, "degC"), 0, Air)
	assertErrorIs(t, err, ErrInvalidFlowState)
	_, err = NewGasState(Q(1, "atm"), Q(-300, "degC"), 0, Air)
	assertErrorIs(t, err, ErrInvalidFlowState)
	_, err = NewGasState(Q(1, "atm"), Q(15, "degC"), 0.5, Gas{Gamma: 0.9, R: 287})
	assertErrorIs(t, err, ErrInvalidFlowState)
}
