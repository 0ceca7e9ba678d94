// Package poly implements polynomials over real and complex coefficients
// together with the root finders used to factor them.
//
// A Poly is immutable: every operation returns a new value. Coefficient i
// multiplies x^i, so New(1, 0, 2) is 2x^2+1.
package poly

// Poly is a polynomial with coefficients of type T. The zero value is the
// constant 0.
type Poly[T Scalar] struct {
	c []T
}

// New builds a polynomial from coefficients in increasing degree order.
// New() is the constant 0.
func New[T Scalar](coefficients ...T) Poly[T] {
	if len(coefficients) == 0 {
		return Poly[T]{c: []T{0}}
	}
	c := make([]T, len(coefficients))
	copy(c, coefficients)
	return Poly[T]{c: c}
}

// Const returns the degree 0 polynomial a.
func Const[T Scalar](a T) Poly[T] {
	return Poly[T]{c: []T{a}}
}

// X returns the polynomial x.
func X[T Scalar]() Poly[T] {
	return Poly[T]{c: []T{0, 1}}
}

// ToComplex128 converts p to complex coefficients.
func ToComplex128[T Scalar](p Poly[T]) Poly[complex128] {
	c := make([]complex128, p.len())
	for i := range c {
		c[i] = ToComplex(p.Coef(i))
	}
	return Poly[complex128]{c: c}
}

func (p Poly[T]) len() int {
	if len(p.c) == 0 {
		return 1
	}
	return len(p.c)
}

// Degree is the number of coefficients minus one. Leading zeros count.
func (p Poly[T]) Degree() int {
	return p.len() - 1
}

// Coef returns the coefficient of x^i, zero past the end.
func (p Poly[T]) Coef(i int) T {
	if i < 0 || i >= len(p.c) {
		return 0
	}
	return p.c[i]
}

// Coefficients returns a copy of the coefficients.
func (p Poly[T]) Coefficients() []T {
	out := make([]T, p.len())
	copy(out, p.c)
	return out
}

// Lead returns the coefficient of the highest power.
func (p Poly[T]) Lead() T {
	return p.Coef(p.Degree())
}

// Trim drops zero leading coefficients, keeping at least the constant term.
func (p Poly[T]) Trim() Poly[T] {
	n := p.len()
	for n > 1 && p.Coef(n-1) == 0 {
		n--
	}
	return New(p.c[:min(n, len(p.c))]...)
}

// Eval evaluates p at x with Horner's method.
func (p Poly[T]) Eval(x T) T {
	var acc T
	for i := len(p.c) - 1; i >= 0; i-- {
		acc = acc*x + p.c[i]
	}
	return acc
}

// EvalComplex evaluates p at a complex point regardless of T.
func (p Poly[T]) EvalComplex(z complex128) complex128 {
	var acc complex128
	for i := len(p.c) - 1; i >= 0; i-- {
		acc = acc*z + ToComplex(p.c[i])
	}
	return acc
}

// At evaluates p at x of another representation. Imaginary parts of complex
// coefficients are dropped when U is real.
func At[T, U Scalar](p Poly[T], x U) U {
	var acc U
	for i := len(p.c) - 1; i >= 0; i-- {
		acc = acc*x + FromComplex[U](ToComplex(p.c[i]))
	}
	return acc
}

// IsRoot reports whether p(x) is zero at T's precision.
func (p Poly[T]) IsRoot(x T) bool {
	return IsZero(p.Eval(x))
}

// IsRootComplex reports whether p(z) is zero at the complex precision
// matching T.
func (p Poly[T]) IsRootComplex(z complex128) bool {
	return isZeroComplex[T](p.EvalComplex(z))
}

// Add returns p+q.
func (p Poly[T]) Add(q Poly[T]) Poly[T] {
	n := max(p.len(), q.len())
	c := make([]T, n)
	for i := range c {
		c[i] = p.Coef(i) + q.Coef(i)
	}
	return Poly[T]{c: c}
}

// Sub returns p-q.
func (p Poly[T]) Sub(q Poly[T]) Poly[T] {
	n := max(p.len(), q.len())
	c := make([]T, n)
	for i := range c {
		c[i] = p.Coef(i) - q.Coef(i)
	}
	return Poly[T]{c: c}
}

// Mul returns p*q.
func (p Poly[T]) Mul(q Poly[T]) Poly[T] {
	c := make([]T, p.Degree()+q.Degree()+1)
	for i := 0; i <= p.Degree(); i++ {
		a := p.Coef(i)
		if a == 0 {
			continue
		}
		for j := 0; j <= q.Degree(); j++ {
			c[i+j] += a * q.Coef(j)
		}
	}
	return Poly[T]{c: c}
}

// Pow returns p^n; p^0 is the constant 1.
func (p Poly[T]) Pow(n int) Poly[T] {
	out := Const(T(1))
	for range n {
		out = out.Mul(p)
	}
	return out
}

// Scale multiplies every coefficient by a.
func (p Poly[T]) Scale(a T) Poly[T] {
	c := p.Coefficients()
	for i := range c {
		c[i] *= a
	}
	return Poly[T]{c: c}
}

// AddScalar returns p+a.
func (p Poly[T]) AddScalar(a T) Poly[T] {
	c := p.Coefficients()
	c[0] += a
	return Poly[T]{c: c}
}

// SubScalar returns p-a.
func (p Poly[T]) SubScalar(a T) Poly[T] {
	c := p.Coefficients()
	c[0] -= a
	return Poly[T]{c: c}
}

// DivScalar divides every coefficient by a.
func (p Poly[T]) DivScalar(a T) Poly[T] {
	c := p.Coefficients()
	for i := range c {
		c[i] /= a
	}
	return Poly[T]{c: c}
}

// Derivative returns dp/dx. The derivative of a constant is the constant 0.
func (p Poly[T]) Derivative() Poly[T] {
	if p.Degree() == 0 {
		return New[T]()
	}
	c := make([]T, p.Degree())
	var k T
	for i := range c {
		k++
		c[i] = k * p.c[i+1]
	}
	return Poly[T]{c: c}
}

// Equal reports whether p and q agree coefficient-wise within T's zero
// tolerance. Missing coefficients are zero.
func (p Poly[T]) Equal(q Poly[T]) bool {
	n := max(p.len(), q.len())
	for i := range n {
		if !IsZero(p.Coef(i) - q.Coef(i)) {
			return false
		}
	}
	return true
}
