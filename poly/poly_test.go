package poly

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"
)

func TestIsZero(t *testing.T) {
	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"float32 below tolerance", IsZero(float32(5e-7)), true},
		{"float32 above tolerance", IsZero(float32(5e-6)), false},
		{"float64 below tolerance", IsZero(5e-11), true},
		{"float64 above tolerance", IsZero(5e-9), false},
		{"complex64 norm below tolerance", IsZero(complex64(complex(5e-4, 5e-4))), true},
		{"complex64 norm above tolerance", IsZero(complex64(complex(1e-2, 0))), false},
		{"complex128 norm below tolerance", IsZero(complex(5e-7, 5e-7)), true},
		{"complex128 norm above tolerance", IsZero(complex(1e-5, 0)), false},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestIsNegative(t *testing.T) {
	if !IsNegative(-1.0) || IsNegative(2.0) {
		t.Errorf("float64 sign misclassified")
	}
	if !IsNegative(float32(-0.5)) {
		t.Errorf("float32 -0.5 should be negative")
	}
	if IsNegative(complex(-1, -1)) || IsNegative(complex64(-3)) {
		t.Errorf("complex values are never negative")
	}
}

func TestEval(t *testing.T) {
	p := New(1.0, -3, 0, 2) // 2x^3-3x+1
	tests := []struct{ x, want float64 }{
		{0, 1},
		{1, 0},
		{2, 11},
		{-1, 2},
	}
	for _, tt := range tests {
		if got := p.Eval(tt.x); got != tt.want {
			t.Errorf("p(%g) = %g, want %g", tt.x, got, tt.want)
		}
	}

	var zero Poly[float64]
	if zero.Degree() != 0 || zero.Eval(3) != 0 {
		t.Errorf("zero value should be the constant 0")
	}
}

func TestEvalAtOtherRepresentation(t *testing.T) {
	p := New(1.0, 0, 1) // x^2+1
	if got := At(p, complex(0, 1)); !IsZero(got) {
		t.Errorf("x^2+1 at i = %v, want 0", got)
	}
	if got := p.EvalComplex(complex(1, 1)); got != complex(1, 2) {
		t.Errorf("x^2+1 at 1+i = %v, want (1+2i)", got)
	}
	if got := At(p, float32(2)); got != 5 {
		t.Errorf("x^2+1 at float32 2 = %v, want 5", got)
	}
}

func TestArithmetic(t *testing.T) {
	a := New(1.0, 1)  // x+1
	b := New(-1.0, 1) // x-1

	if got, want := a.Mul(b), New(-1.0, 0, 1); !got.Equal(want) {
		t.Errorf("(x+1)(x-1) = %v, want %v", got, want)
	}
	if got, want := a.Add(b), New(0.0, 2); !got.Equal(want) {
		t.Errorf("(x+1)+(x-1) = %v, want %v", got, want)
	}
	if got, want := a.Sub(b), Const(2.0); !got.Equal(want) {
		t.Errorf("(x+1)-(x-1) = %v, want %v", got, want)
	}
	if got, want := a.Pow(3), New(1.0, 3, 3, 1); !got.Equal(want) {
		t.Errorf("(x+1)^3 = %v, want %v", got, want)
	}
	if got, want := a.Pow(0), Const(1.0); !got.Equal(want) {
		t.Errorf("(x+1)^0 = %v, want %v", got, want)
	}
	if got, want := a.Scale(3).AddScalar(1).SubScalar(2).DivScalar(2), New(1.0, 1.5); !got.Equal(want) {
		t.Errorf("scalar chain = %v, want %v", got, want)
	}
	if got := X[float64]().Coefficients(); len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("X() = %v, want [0 1]", got)
	}
}

func TestCoefficientsAreCopied(t *testing.T) {
	src := []float64{1, 2, 3}
	p := New(src...)
	src[0] = 100
	c := p.Coefficients()
	c[1] = 100
	if p.Coef(0) != 1 || p.Coef(1) != 2 {
		t.Errorf("polynomial shares storage with caller: %v", p)
	}
	if p.Coef(7) != 0 || p.Coef(-1) != 0 {
		t.Errorf("coefficients outside the range should be zero")
	}
}

func TestDerivative(t *testing.T) {
	p := New(5.0, 3, 0, 2) // 2x^3+3x+5
	if got, want := p.Derivative(), New(3.0, 0, 6); !got.Equal(want) {
		t.Errorf("d/dx %v = %v, want %v", p, got, want)
	}
	d := Const(7.0).Derivative()
	if d.Degree() != 0 || d.Coef(0) != 0 {
		t.Errorf("derivative of a constant = %v, want 0", d)
	}
	c := New[complex128](1, 1i, 1).Derivative()
	if c.Coef(0) != 1i || c.Coef(1) != 2 {
		t.Errorf("complex derivative = %v", c)
	}
}

func TestTrim(t *testing.T) {
	p := New(1.0, 2, 0, 0).Trim()
	if p.Degree() != 1 {
		t.Errorf("trim kept degree %d, want 1", p.Degree())
	}
	if z := New(0.0, 0).Trim(); z.Degree() != 0 || z.Coef(0) != 0 {
		t.Errorf("trim of zero polynomial = %v", z)
	}
}

func TestDeflateRoundTrip(t *testing.T) {
	// (x-1)(x+2)(x-3)
	p := New(-1.0, 1).Mul(New(2.0, 1)).Mul(New(-3.0, 1))
	for _, r := range []float64{1, -2, 3} {
		q, err := p.Deflate(r)
		if err != nil {
			t.Fatalf("deflate by %g: %v", r, err)
		}
		if q.Degree() != 2 {
			t.Errorf("deflate by %g: degree %d, want 2", r, q.Degree())
		}
		if back := q.Mul(New(-r, 1)); !back.Equal(p) {
			t.Errorf("deflate by %g: q*(x-r) = %v, want %v", r, back, p)
		}
		if _, residue := p.DeflateWithResidue(r); !IsZero(residue) {
			t.Errorf("deflate by %g: residue %g", r, residue)
		}
	}
}

func TestDeflateComplexRoot(t *testing.T) {
	p := New[complex128](1, 0, 1) // x^2+1
	q, err := p.Deflate(1i)
	if err != nil {
		t.Fatalf("deflate by i: %v", err)
	}
	if want := New[complex128](1i, 1); !q.Equal(want) {
		t.Errorf("x^2+1 / (x-i) = %v, want %v", q, want)
	}
}

func TestDeflateNotARoot(t *testing.T) {
	p := New(-1.0, 0, 1)
	if _, err := p.Deflate(2); !errors.Is(err, ErrNotARoot) {
		t.Errorf("deflate by non-root: err = %v, want ErrNotARoot", err)
	}
	if _, err := Const(1.0).Deflate(0); !errors.Is(err, ErrDegreeTooLow) {
		t.Errorf("deflate constant: err = %v, want ErrDegreeTooLow", err)
	}
	q, residue := p.DeflateWithResidue(2)
	if residue != 3 {
		t.Errorf("residue of x^2-1 at 2 = %g, want 3", residue)
	}
	if back := q.Mul(New(-2.0, 1)).AddScalar(residue); !back.Equal(p) {
		t.Errorf("q*(x-2)+residue = %v, want %v", back, p)
	}
}

func TestDeflateQuadraticWithResidue(t *testing.T) {
	p := New(1.0, 2, 3, 4, 5)
	u, v := 1.5, 2.0
	q, rem := p.DeflateQuadraticWithResidue(u, v)
	if q.Degree() != 2 {
		t.Fatalf("quotient degree %d, want 2", q.Degree())
	}
	if rem.Coef(0) != 4.5 || rem.Coef(1) != 11.625 {
		t.Errorf("residue = %v, want 11.625x+4.5", rem)
	}
	if back := q.Mul(New(v, u, 1)).Add(rem); !back.Equal(p) {
		t.Errorf("q*(x^2+ux+v)+residue = %v, want %v", back, p)
	}

	exact := New(2.0, -3, 1).Mul(New(5.0, 2, 1))
	q = exact.DeflateQuadratic(2, 5)
	if want := New(2.0, -3, 1); !q.Equal(want) {
		t.Errorf("exact quadratic deflation = %v, want %v", q, want)
	}

	q, rem = New(3.0, 1).DeflateQuadraticWithResidue(1, 1)
	if q.Degree() != 0 || q.Coef(0) != 0 || !rem.Equal(New(3.0, 1)) {
		t.Errorf("linear polynomial should come back as the residue, got q=%v rem=%v", q, rem)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		p    Poly[float64]
		want string
	}{
		{New(0.0, 0, 0, 2, 1), "x^4+2x^3"},
		{New(-1.0, 0, 1), "x^2-1"},
		{New(3.0, -1), "-1x+3"},
		{New(0.0, 1), "x"},
		{New(0.0), "0"},
		{New(0.5, 1, 0, -2), "-2x^3+x+0.5"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}

	c := New[complex128](1i, 1)
	if got, want := c.String(), "x+(0+1i)"; got != want {
		t.Errorf("complex String() = %q, want %q", got, want)
	}
}

func TestNewton(t *testing.T) {
	root, err := Newton(New(-2.0, 0, 1), 1, 0)
	if err != nil {
		t.Fatalf("newton on x^2-2: %v", err)
	}
	if math.Abs(root-math.Sqrt2) > 1e-9 {
		t.Errorf("newton root = %.12f, want sqrt(2)", root)
	}
	t.Logf("✓ x^2-2 root %.15f", root)
}

func TestNewtonZeroDerivative(t *testing.T) {
	_, err := Newton(New(1.0, 0, 1), 0, 0)
	if !errors.Is(err, ErrNoConvergence) || !errors.Is(err, ErrZeroDerivative) {
		t.Errorf("err = %v, want non-convergence caused by zero derivative", err)
	}
}

func TestNewtonNonConvergence(t *testing.T) {
	// x^2+1 has no real roots, real Newton wanders forever
	_, err := Newton(New(1.0, 0, 1), 0.5, 50)
	if !errors.Is(err, ErrNoConvergence) {
		t.Fatalf("err = %v, want ErrNoConvergence", err)
	}
	last, ok := LastEstimate[float64](err)
	if !ok {
		t.Fatalf("error does not carry a float64 estimate: %v", err)
	}
	t.Logf("✓ gave up at %g: %v", last, err)
}

func TestLaguerre(t *testing.T) {
	cube := New[complex128](-1, 0, 0, 1)
	root, err := Laguerre(cube, 2, 0)
	if err != nil {
		t.Fatalf("laguerre on x^3-1: %v", err)
	}
	if cmplx.Abs(root-1) > 1e-6 {
		t.Errorf("root = %v, want 1", root)
	}

	// real coefficients, complex root
	root, err = Laguerre(New(1.0, 0, 1), 0.5, 0)
	if err != nil {
		t.Fatalf("laguerre on x^2+1: %v", err)
	}
	if cmplx.Abs(root*root+1) > 1e-6 {
		t.Errorf("root = %v is not a root of x^2+1", root)
	}
}

func TestLaguerreEdgeCases(t *testing.T) {
	// p' and p'' vanish at 0 so both denominators are zero
	_, err := Laguerre(New[complex128](-1, 0, 0, 1), 0, 0)
	if !errors.Is(err, ErrZeroDerivative) {
		t.Errorf("err = %v, want ErrZeroDerivative", err)
	}
	if _, err := Laguerre(Const(1.0), 0, 0); !errors.Is(err, ErrDegreeTooLow) {
		t.Errorf("err = %v, want ErrDegreeTooLow", err)
	}
}

func TestSolveQuadratic(t *testing.T) {
	r1, r2 := SolveQuadratic(2, 5)
	if r1 != complex(-1, 2) || r2 != complex(-1, -2) {
		t.Errorf("x^2+2x+5 roots = %v %v, want -1±2i", r1, r2)
	}
	r1, r2 = SolveQuadratic(-3, 2)
	if r1 != 1 || r2 != 2 {
		t.Errorf("x^2-3x+2 roots = %v %v, want 1 2", r1, r2)
	}
}

func TestBairstowKnownConjugatePair(t *testing.T) {
	// (x^2+2x+5)(x^2-3x+2) has roots -1±2i, 1 and 2
	p := New(5.0, 2, 1).Mul(New(2.0, -3, 1))
	want := []complex128{complex(-1, 2), complex(-1, -2), 1, 2}

	var found []complex128
	for p.Degree() > 1 {
		f, err := QuadraticFactor(p, 0)
		if err != nil {
			t.Fatalf("bairstow on %v: %v", p, err)
		}
		r1, r2 := f.Roots()
		found = append(found, r1, r2)
		t.Logf("✓ factor %v", f)
		p = p.DeflateQuadratic(f.U, f.V)
	}

	if len(found) != len(want) {
		t.Fatalf("found %d roots, want %d", len(found), len(want))
	}
	orig := New(5.0, 2, 1).Mul(New(2.0, -3, 1))
	for _, w := range want {
		ok := false
		for _, r := range found {
			if cmplx.Abs(r-w) < 1e-6 {
				ok = true
			}
		}
		if !ok {
			t.Errorf("root %v not found in %v", w, found)
		}
	}
	for _, r := range found {
		if !orig.IsRootComplex(r) {
			t.Errorf("|P(%v)| = %g is not zero", r, cmplx.Abs(orig.EvalComplex(r)))
		}
	}
}

func TestBairstowQuadratic(t *testing.T) {
	r1, r2, err := Bairstow(New(5.0, 2, 1), 0)
	if err != nil {
		t.Fatalf("bairstow on x^2+2x+5: %v", err)
	}
	if r1 != cmplx.Conj(r2) || real(r1) != -1 {
		t.Errorf("roots %v %v are not -1±2i", r1, r2)
	}
	if _, err := QuadraticFactor(New(1.0, 1), 0); !errors.Is(err, ErrDegreeTooLow) {
		t.Errorf("err = %v, want ErrDegreeTooLow", err)
	}
}

func TestBairstowSinglePrecision(t *testing.T) {
	p := New[float32](5, 2, 1).Mul(New[float32](1, 1, 1))
	f, err := QuadraticFactor(p, 0)
	if err != nil {
		t.Fatalf("float32 bairstow: %v", err)
	}
	r1, r2 := f.Roots()
	if !p.IsRootComplex(r1) || !p.IsRootComplex(r2) {
		t.Errorf("factor %v roots are not roots of %v", f, p)
	}
}
