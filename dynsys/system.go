// Package dynsys provides the discrete dynamical systems the field renderers
// iterate over the complex plane.
package dynsys

import (
	"fmt"
	"math/cmplx"
	"strings"

	"github.com/malfet/Mandelbrot/poly"
)

// Iterator is a single stream of iterates. Implementations are not safe for
// concurrent use; a renderer asks the Factory for one per worker.
type Iterator interface {
	// Init resets the orbit for a new sample point.
	Init(seed complex128)
	// Step advances the orbit and returns the new iterate.
	Step() complex128
	// Value returns the current iterate.
	Value() complex128
}

// Factory returns a fresh Iterator bound to its captured parameters.
type Factory func() Iterator

// Kind selects a System variant.
type Kind int

const (
	// Quadratic is z <- z^2 + c with c the sample point and z reset to 0.
	Quadratic Kind = iota
	// QuadraticFixed is z <- z^2 + c for a fixed c, z seeded at the sample point.
	QuadraticFixed
	// Power is z <- z^p + c for a real exponent p, z reset to 0.
	Power
	// Newton is z <- z - P(z)/P'(z) seeded at the sample point.
	Newton
)

var kindNames = map[Kind]string{
	Quadratic:      "mandelbrot",
	QuadraticFixed: "julia",
	Power:          "multibrot",
	Newton:         "newton",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown system %q", s)
}

// System is the closed set of dynamical systems behind Iterator. Dispatch is
// a switch on kind so every variant shares one concrete type.
type System struct {
	kind Kind
	z, c complex128
	p    complex128

	poly, deriv poly.Poly[complex128]
}

// NewMandelbrot returns the quadratic map with the sample point as parameter.
func NewMandelbrot() *System {
	return &System{kind: Quadratic}
}

// NewJulia returns the quadratic map with parameter c fixed.
func NewJulia(c complex128) *System {
	return &System{kind: QuadraticFixed, c: c}
}

// NewMultibrot returns z <- z^p + c.
func NewMultibrot(p float64) *System {
	return &System{kind: Power, p: complex(p, 0)}
}

// NewNewton returns Newton's iteration for the roots of p.
func NewNewton(p poly.Poly[complex128]) *System {
	return &System{kind: Newton, poly: p, deriv: p.Derivative()}
}

// Kind reports the variant.
func (s *System) Kind() Kind {
	return s.kind
}

// Init implements Iterator.
func (s *System) Init(seed complex128) {
	switch s.kind {
	case Quadratic, Power:
		s.c = seed
		s.z = 0
	case QuadraticFixed, Newton:
		s.z = seed
	}
}

// Step implements Iterator. A Newton step at a critical point of P sends the
// orbit to infinity.
func (s *System) Step() complex128 {
	switch s.kind {
	case Quadratic, QuadraticFixed:
		s.z = s.z*s.z + s.c
	case Power:
		s.z = cmplx.Pow(s.z, s.p) + s.c
	case Newton:
		d := s.deriv.Eval(s.z)
		if d == 0 {
			s.z = cmplx.Inf()
			break
		}
		s.z -= s.poly.Eval(s.z) / d
	}
	return s.z
}

// Value implements Iterator.
func (s *System) Value() complex128 {
	return s.z
}

// MandelbrotFactory returns a Factory of Quadratic systems.
func MandelbrotFactory() Factory {
	return func() Iterator { return NewMandelbrot() }
}

// JuliaFactory returns a Factory of QuadraticFixed systems with parameter c.
func JuliaFactory(c complex128) Factory {
	return func() Iterator { return NewJulia(c) }
}

// MultibrotFactory returns a Factory of Power systems with exponent p.
func MultibrotFactory(p float64) Factory {
	return func() Iterator { return NewMultibrot(p) }
}

// NewtonFactory returns a Factory of Newton systems for p. The polynomial is
// immutable so every instance shares it.
func NewtonFactory(p poly.Poly[complex128]) Factory {
	return func() Iterator { return NewNewton(p) }
}
