package poly

import "fmt"

// DeflateWithResidue divides p by (x-r) with Ruffini's rule and returns the
// quotient and the remainder p(r). A constant polynomial yields the zero
// quotient and itself as the remainder.
func (p Poly[T]) DeflateWithResidue(r T) (Poly[T], T) {
	n := p.Degree()
	if n == 0 {
		return New[T](), p.Coef(0)
	}
	q := make([]T, n)
	var prev T
	for i := n - 1; i >= 0; i-- {
		q[i] = p.c[i+1] + prev*r
		prev = q[i]
	}
	return Poly[T]{c: q}, p.c[0] + prev*r
}

// Deflate divides p by (x-r). It fails with ErrNotARoot unless r is a root of
// p and the division leaves no remainder.
func (p Poly[T]) Deflate(r T) (Poly[T], error) {
	if p.Degree() == 0 {
		return p, fmt.Errorf("deflate by %v: %w", r, ErrDegreeTooLow)
	}
	if !p.IsRoot(r) {
		return p, fmt.Errorf("deflate by %v: %w", r, ErrNotARoot)
	}
	q, residue := p.DeflateWithResidue(r)
	if !IsZero(residue) {
		return p, fmt.Errorf("deflate by %v: residue %v: %w", r, residue, ErrNotARoot)
	}
	return q, nil
}

// DeflateQuadraticWithResidue divides p by x^2+u*x+v. The residue is the
// polynomial {d, c} such that p = (x^2+u*x+v)*q + c*x + d. Polynomials of
// degree one or less are returned unchanged as the residue.
func (p Poly[T]) DeflateQuadraticWithResidue(u, v T) (Poly[T], Poly[T]) {
	n := p.Degree()
	if n <= 1 {
		return New[T](), New(p.Coefficients()...)
	}
	q := make([]T, n-1)
	var prev, pprev T
	for i := n - 2; i >= 0; i-- {
		q[i] = p.c[i+2] - u*prev - v*pprev
		pprev, prev = prev, q[i]
	}
	c := p.c[1] - u*prev - v*pprev
	d := p.c[0] - v*prev
	return Poly[T]{c: q}, New(d, c)
}

// DeflateQuadratic divides p by x^2+u*x+v and drops the remainder.
func (p Poly[T]) DeflateQuadratic(u, v T) Poly[T] {
	q, _ := p.DeflateQuadraticWithResidue(u, v)
	return q
}
