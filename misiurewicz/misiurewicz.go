// Package misiurewicz searches for the parameters c whose critical orbit
// z -> z^2 + c lands on a cycle: c is a root of f^(k+n)(0) - f^k(0) seen as a
// polynomial in c.
package misiurewicz

import (
	"errors"
	"fmt"

	"github.com/malfet/Mandelbrot/poly"
)

var (
	// ErrDegenerate is returned for k or n below one, where the polynomial
	// is zero or carries no preperiodic points.
	ErrDegenerate = errors.New("degenerate misiurewicz polynomial")
	// ErrTooLarge is returned when the polynomial degree would exceed
	// MaxDegree.
	ErrTooLarge = errors.New("misiurewicz polynomial too large")
)

const maxDegreeLog2 = 15

// MaxDegree bounds the polynomials Solve builds. The degree is 2^(k+n-1).
const MaxDegree = 1 << maxDegreeLog2

// Polynomial returns f^(k+n)(0) - f^k(0) with f(z) = z^2 + x, trimmed of
// vanishing leading terms. Negative k or n count as zero.
func Polynomial[T poly.Scalar](k, n int) poly.Poly[T] {
	x := poly.X[T]()
	c := poly.Const[T](0)
	for range max(k, 0) {
		c = c.Mul(c).Add(x)
	}
	pk := c
	for range max(n, 0) {
		c = c.Mul(c).Add(x)
	}
	return c.Sub(pk).Trim()
}

// Method selects the root finder Solve uses.
type Method int

const (
	// Bairstow extracts real quadratic factors, giving conjugate pairs.
	Bairstow Method = iota
	// Laguerre extracts one complex root at a time.
	Laguerre
)

func (m Method) String() string {
	switch m {
	case Bairstow:
		return "bairstow"
	case Laguerre:
		return "laguerre"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod is the inverse of Method.String.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "bairstow":
		return Bairstow, nil
	case "laguerre":
		return Laguerre, nil
	}
	return 0, fmt.Errorf("unknown method %q", s)
}

// Root is one root of a Misiurewicz polynomial.
type Root struct {
	Value complex128
	// Residual is |P(Value)| on the polynomial before any deflation.
	Residual float64
	// Converged is false when the root finder gave up and Value is its last
	// estimate.
	Converged bool
	// Polished is set when Value was refined on the undeflated polynomial.
	Polished bool
}

// Result of a root search.
type Result struct {
	K, N       int
	Polynomial poly.Poly[float64]
	// TrivialRoots is the multiplicity of the root at zero, which is not
	// listed in Roots.
	TrivialRoots int
	Roots        []Root
	// Missing counts roots the search gave up on because no estimate stayed
	// finite.
	Missing int
	// Degraded is set when any root did not converge or is missing. Later
	// roots were found on a polynomial deflated by an inexact estimate.
	Degraded bool
}

// MaxResidual is the largest residual among the roots.
func (r Result) MaxResidual() float64 {
	var m float64
	for _, root := range r.Roots {
		m = max(m, root.Residual)
	}
	return m
}
