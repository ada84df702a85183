package zca

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestCelsius(t *testing.T) {
	if C2K(0) != ZeroCelsius || K2C(ZeroCelsius) != 0 {
		t.Fatal("0 °C != 273.15 K")
	}
	for _, tC := range []float64{-50, 15, 1500} {
		if !scalar.EqualWithinAbs(K2C(C2K(tC)), tC, 1e-12) {
			t.Fatalf("round trip failed for %f °C", tC)
		}
	}
}

func TestBrent(t *testing.T) {
	cubic := func(x float64) (float64, error) { return x*x*x - 2*x - 5, nil }
	x, iters, err := brent(cubic, 2, 3, 1e-12)
	if err != nil {
		t.Fatal(err)
	}
	if !scalar.EqualWithinAbs(x, 2.0945514815423265, 1e-10) {
		t.Fatalf("root=%.15f", x)
	}
	if iters == 0 || iters > 20 {
		t.Fatalf("took %d iterations", iters)
	}
	// Roots on the bounds.
	if x, _, err := brent(func(x float64) (float64, error) { return x - 1, nil }, 1, 2, 1e-12); err != nil || x != 1 {
		t.Fatalf("root on lower bound: x=%f err=%v", x, err)
	}
	if _, _, err := brent(func(x float64) (float64, error) { return x*x + 1, nil }, -1, 1, 1e-12); err != errNotBracketed {
		t.Fatalf("expected errNotBracketed, got %v", err)
	}
	if _, _, err := brent(func(x float64) (float64, error) { return math.Cos(x), ErrInfeasibleCycle }, 0, 3, 1e-12); err != ErrInfeasibleCycle {
		t.Fatalf("function errors must be returned, got %v", err)
	}
}

func TestBounded(t *testing.T) {
	for _, x := range []float64{1.5, 30, 59.5} {
		if !scalar.EqualWithinRel(toBounded(fromBounded(x, 1, 60), 1, 60), x, 1e-10) {
			t.Fatalf("bounded round trip failed for %f", x)
		}
	}
	if x := toBounded(fromBounded(1, 1, 60), 1, 60); !(x > 1 && x < 1+1e-6) {
		t.Fatalf("bound not nudged inside: %f", x)
	}
	if toBounded(-1e3, 1, 60) < 1 || toBounded(1e3, 1, 60) > 60 {
		t.Fatal("toBounded left the interval")
	}
}
