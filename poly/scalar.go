package poly

import (
	"math"
	"math/cmplx"
)

// Scalar is a coefficient representation a Poly can be built over.
type Scalar interface {
	float32 | float64 | complex64 | complex128
}

// Real is the subset of Scalar Bairstow's method works on.
type Real interface {
	float32 | float64
}

// tolerance holds the zero thresholds of one representation.
// abs applies to |x| of reals, norm to |z|² of complex values.
type tolerance struct {
	abs  float64
	norm float64
}

var (
	single = tolerance{abs: 1e-6, norm: 1e-6}
	double = tolerance{abs: 1e-10, norm: 1e-12}
)

func toleranceOf[T Scalar]() tolerance {
	var zero T
	switch any(zero).(type) {
	case float32, complex64:
		return single
	}
	return double
}

// IsZero reports whether x is zero at the precision of its representation.
func IsZero[T Scalar](x T) bool {
	switch v := any(x).(type) {
	case float32:
		return math.Abs(float64(v)) < single.abs
	case float64:
		return math.Abs(v) < double.abs
	case complex64:
		return norm(complex128(v)) < single.norm
	case complex128:
		return norm(v) < double.norm
	}
	return x == 0
}

// IsNegative reports whether x prints with a leading minus sign.
// Complex values are never negative.
func IsNegative[T Scalar](x T) bool {
	switch v := any(x).(type) {
	case float32:
		return v < 0
	case float64:
		return v < 0
	}
	return false
}

// Norm returns |z|².
func Norm(z complex128) float64 {
	return norm(z)
}

func norm(z complex128) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}

// isZeroComplex applies the complex tolerance matching T's precision.
func isZeroComplex[T Scalar](z complex128) bool {
	return norm(z) < toleranceOf[T]().norm
}

func finite(z complex128) bool {
	return !cmplx.IsNaN(z) && !cmplx.IsInf(z)
}

// ToComplex widens any scalar to complex128.
func ToComplex[T Scalar](x T) complex128 {
	switch v := any(x).(type) {
	case float32:
		return complex(float64(v), 0)
	case float64:
		return complex(v, 0)
	case complex64:
		return complex128(v)
	case complex128:
		return v
	}
	return 0
}

// FromComplex narrows z to T, dropping the imaginary part for reals.
func FromComplex[T Scalar](z complex128) T {
	var out T
	switch p := any(&out).(type) {
	case *float32:
		*p = float32(real(z))
	case *float64:
		*p = real(z)
	case *complex64:
		*p = complex64(z)
	case *complex128:
		*p = z
	}
	return out
}
