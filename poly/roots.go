package poly

import (
	"fmt"
	"math"
	"math/cmplx"
)

// DefaultMaxSteps bounds every root finder when the caller passes a
// non-positive step budget.
const DefaultMaxSteps = 500

func stepBudget(maxSteps int) int {
	if maxSteps <= 0 {
		return DefaultMaxSteps
	}
	return maxSteps
}

// Newton iterates x <- x - p(x)/p'(x) from x0 until p(x) is zero.
func Newton[T Scalar](p Poly[T], x0 T, maxSteps int) (T, error) {
	maxSteps = stepBudget(maxSteps)
	dp := p.Derivative()
	x := x0
	for step := 0; !p.IsRoot(x); step++ {
		if step >= maxSteps {
			return x, &NonConvergenceError[T]{Last: x, Steps: step}
		}
		d := dp.Eval(x)
		if d == 0 {
			return x, &NonConvergenceError[T]{Last: x, Steps: step, Cause: ErrZeroDerivative}
		}
		x -= p.Eval(x) / d
		if !finite(ToComplex(x)) {
			return x, &NonConvergenceError[T]{Last: x, Steps: step + 1, Cause: ErrNotFinite}
		}
	}
	return x, nil
}

// Laguerre runs Laguerre's method from x0 in complex arithmetic. It works for
// real and complex coefficients and converges cubically near simple roots.
func Laguerre[T Scalar](p Poly[T], x0 complex128, maxSteps int) (complex128, error) {
	if p.Degree() < 1 {
		return x0, fmt.Errorf("laguerre on degree %d: %w", p.Degree(), ErrDegreeTooLow)
	}
	maxSteps = stepBudget(maxSteps)
	n := complex(float64(p.Degree()), 0)
	d1 := p.Derivative()
	d2 := d1.Derivative()

	x := x0
	for step := 0; !p.IsRootComplex(x); step++ {
		if step >= maxSteps {
			return x, &NonConvergenceError[complex128]{Last: x, Steps: step}
		}
		px := p.EvalComplex(x)
		g := d1.EvalComplex(x) / px
		h := g*g - d2.EvalComplex(x)/px
		s := cmplx.Sqrt((n - 1) * (n*h - g*g))

		// pick the sign that keeps the denominator away from cancellation
		den := g + s
		if alt := g - s; cmplx.Abs(alt) > cmplx.Abs(den) {
			den = alt
		}
		if den == 0 {
			return x, &NonConvergenceError[complex128]{Last: x, Steps: step, Cause: ErrZeroDerivative}
		}
		x -= n / den
		if !finite(x) {
			return x, &NonConvergenceError[complex128]{Last: x, Steps: step + 1, Cause: ErrNotFinite}
		}
	}
	return x, nil
}

// Factor is the monic quadratic x^2 + U*x + V.
type Factor[R Real] struct {
	U, V R
}

// Roots solves the factor with the quadratic formula.
func (f Factor[R]) Roots() (complex128, complex128) {
	return SolveQuadratic(float64(f.U), float64(f.V))
}

// Poly returns the factor as a polynomial.
func (f Factor[R]) Poly() Poly[R] {
	return New(f.V, f.U, 1)
}

func (f Factor[R]) String() string {
	return fmt.Sprintf("x^2%+gx%+g", float64(f.U), float64(f.V))
}

// SolveQuadratic returns the roots of x^2 + u*x + v. A negative discriminant
// yields a conjugate pair with the positive imaginary part first.
func SolveQuadratic(u, v float64) (complex128, complex128) {
	d := u*u - 4*v
	if d >= 0 {
		sq := math.Sqrt(d)
		return complex(-0.5*(u+sq), 0), complex(-0.5*(u-sq), 0)
	}
	sq := math.Sqrt(-d)
	return complex(-0.5*u, 0.5*sq), complex(-0.5*u, -0.5*sq)
}

// QuadraticFactor extracts a real quadratic factor of p with Bairstow's
// method. The trial factor starts from the two leading coefficients and is
// refined by a two dimensional Newton step on the remainder of the division
// until both of its roots are roots of p.
func QuadraticFactor[R Real](p Poly[R], maxSteps int) (Factor[R], error) {
	n := p.Degree()
	if n < 2 {
		return Factor[R]{}, fmt.Errorf("bairstow on degree %d: %w", n, ErrDegreeTooLow)
	}
	maxSteps = stepBudget(maxSteps)

	f := Factor[R]{U: p.Coef(n - 1), V: p.Coef(n - 2)}
	if a := p.Coef(n); a != 0 {
		f.U /= a
		f.V /= a
	}

	for step := 0; ; step++ {
		r1, r2 := f.Roots()
		if p.IsRootComplex(r1) && p.IsRootComplex(r2) {
			return f, nil
		}
		if step >= maxSteps {
			return f, &NonConvergenceError[Factor[R]]{Last: f, Steps: step}
		}

		// remainder c*x+d of p and its sensitivities g, h
		q, rem := p.DeflateQuadraticWithResidue(f.U, f.V)
		c, d := rem.Coef(1), rem.Coef(0)
		_, rem = q.DeflateQuadraticWithResidue(f.U, f.V)
		g, h := rem.Coef(1), rem.Coef(0)

		det := f.V*g*g + h*(h-f.U*g)
		if det == 0 {
			return f, &NonConvergenceError[Factor[R]]{Last: f, Steps: step, Cause: ErrZeroDerivative}
		}
		j := 1 / det
		f = Factor[R]{
			U: f.U - j*(g*d-h*c),
			V: f.V - j*((g*f.U-h)*d-g*f.V*c),
		}
		if !finite(complex(float64(f.U), float64(f.V))) {
			return f, &NonConvergenceError[Factor[R]]{Last: f, Steps: step + 1, Cause: ErrNotFinite}
		}
	}
}

// Bairstow returns the two roots of the quadratic factor found by
// QuadraticFactor. On failure the roots of the last trial factor are
// returned with the error.
func Bairstow[R Real](p Poly[R], maxSteps int) (complex128, complex128, error) {
	f, err := QuadraticFactor(p, maxSteps)
	r1, r2 := f.Roots()
	return r1, r2, err
}
