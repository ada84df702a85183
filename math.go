package zca

import (
	"errors"
	"math"
)

const (
	// ZeroCelsius is 0 °C in Kelvin.
	ZeroCelsius = 273.15
	brentε      = 1e-12
	brentMaxIt  = 200
)

// C2K converts Celsius to Kelvin.
func C2K(tC float64) float64 {
	return tC + ZeroCelsius
}

// K2C converts Kelvin to Celsius.
func K2C(tK float64) float64 {
	return tK - ZeroCelsius
}

var (
	errNotBracketed = errors.New("root is not bracketed")
	errNoConverge   = errors.New("root finder did not converge")
)

// brent finds a root of f in [a, b] with Brent's method. f(a) and f(b) must have opposite
// signs. The tolerance is absolute on x.
func brent(f func(float64) (float64, error), a, b, tol float64) (float64, int, error) {
	fa, err := f(a)
	if err != nil {
		return math.NaN(), 0, err
	}
	fb, err := f(b)
	if err != nil {
		return math.NaN(), 0, err
	}
	if fa == 0 {
		return a, 0, nil
	}
	if fb == 0 {
		return b, 0, nil
	}
	if math.Signbit(fa) == math.Signbit(fb) {
		return math.NaN(), 0, errNotBracketed
	}
	c, fc := a, fa
	d := b - a
	e := d
	for iter := 1; iter <= brentMaxIt; iter++ {
		if math.Signbit(fb) == math.Signbit(fc) {
			c, fc = a, fa
			d = b - a
			e = d
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}
		tol1 := 2*brentε*math.Abs(b) + 0.5*tol
		xm := 0.5 * (c - b)
		if math.Abs(xm) <= tol1 || fb == 0 {
			return b, iter, nil
		}
		if math.Abs(e) >= tol1 && math.Abs(fa) > math.Abs(fb) {
			// Inverse quadratic interpolation, or secant when only two points are distinct.
			var p, q float64
			s := fb / fa
			if a == c {
				p = 2 * xm * s
				q = 1 - s
			} else {
				qa := fa / fc
				r := fb / fc
				p = s * (2*xm*qa*(qa-r) - (b-a)*(r-1))
				q = (qa - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			if 2*p < math.Min(3*xm*q-math.Abs(tol1*q), math.Abs(e*q)) {
				e = d
				d = p / q
			} else {
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}
		a, fa = b, fb
		if math.Abs(d) > tol1 {
			b += d
		} else {
			b += math.Copysign(tol1, xm)
		}
		if fb, err = f(b); err != nil {
			return math.NaN(), iter, err
		}
	}
	return b, brentMaxIt, errNoConverge
}

// toBounded maps an unbounded variable onto (lo, hi) with a logistic curve.
func toBounded(u, lo, hi float64) float64 {
	return lo + (hi-lo)/(1+math.Exp(-u))
}

// fromBounded is the inverse of toBounded. x is nudged inside the open interval first.
func fromBounded(x, lo, hi float64) float64 {
	span := hi - lo
	ε := 1e-9 * span
	x = math.Max(lo+ε, math.Min(hi-ε, x))
	return -math.Log(span/(x-lo) - 1)
}
