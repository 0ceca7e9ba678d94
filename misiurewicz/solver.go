package misiurewicz

import (
	"errors"
	"fmt"
	"log/slog"
	"math/cmplx"

	"github.com/malfet/Mandelbrot/poly"
)

// Solver finds all non-trivial roots of Misiurewicz polynomials.
type Solver struct {
	Method Method
	// MaxSteps bounds each root finder call. Zero selects
	// poly.DefaultMaxSteps.
	MaxSteps int
	// Polish refines every root with Laguerre's method on the polynomial
	// with the zero roots removed.
	Polish bool
	Logger *slog.Logger
}

// laguerreStarts are tried in order until one converges.
var laguerreStarts = []complex128{0, complex(0.5, 0.5), complex(-1, 0.25)}

// Solve builds the (k, n) polynomial and extracts its roots. Roots the
// finder could not converge on are reported with Converged unset and the
// result marked Degraded rather than failing the whole search.
func (s Solver) Solve(k, n int) (Result, error) {
	if k < 1 || n < 1 {
		return Result{}, fmt.Errorf("misiurewicz(%d,%d): %w", k, n, ErrDegenerate)
	}
	if k+n-1 > maxDegreeLog2 {
		return Result{}, fmt.Errorf("misiurewicz(%d,%d): degree 2^%d exceeds %d: %w", k, n, k+n-1, MaxDegree, ErrTooLarge)
	}
	log := s.Logger
	if log == nil {
		log = slog.Default()
	}
	log = log.With("k", k, "n", n, "method", s.Method)

	res := Result{K: k, N: n, Polynomial: Polynomial[float64](k, n)}
	p := res.Polynomial
	for p.Degree() > 0 && p.IsRoot(0) {
		p, _ = p.DeflateWithResidue(0)
		res.TrivialRoots++
	}
	reduced := p
	log.Debug("removed zero roots", "multiplicity", res.TrivialRoots, "degree", reduced.Degree())

	switch s.Method {
	case Bairstow:
		s.bairstow(log, &res, reduced)
	case Laguerre:
		s.laguerre(log, &res, poly.ToComplex128(reduced))
	default:
		return Result{}, fmt.Errorf("misiurewicz(%d,%d): unknown method %v", k, n, s.Method)
	}

	if s.Polish {
		s.polish(log, &res, poly.ToComplex128(reduced))
	}
	for i := range res.Roots {
		res.Roots[i].Residual = cmplx.Abs(res.Polynomial.EvalComplex(res.Roots[i].Value))
	}
	if res.Degraded {
		log.Warn("root set degraded", "roots", len(res.Roots), "max_residual", res.MaxResidual())
	}
	return res, nil
}

func (s Solver) bairstow(log *slog.Logger, res *Result, p poly.Poly[float64]) {
	for p.Degree() > 1 {
		f, err := poly.QuadraticFactor(p, s.MaxSteps)
		if errors.Is(err, poly.ErrNotFinite) {
			// the trial factor blew up, finish one root at a time
			log.Warn("bairstow diverged, switching to laguerre", "degree", p.Degree(), "err", err)
			s.laguerre(log, res, poly.ToComplex128(p))
			return
		}
		converged := err == nil
		if !converged {
			log.Warn("quadratic factor did not converge", "factor", f, "err", err)
			res.Degraded = true
		} else {
			log.Debug("quadratic factor", "factor", f)
		}
		r1, r2 := f.Roots()
		res.Roots = append(res.Roots, Root{Value: r1, Converged: converged}, Root{Value: r2, Converged: converged})
		p = p.DeflateQuadratic(f.U, f.V)
	}
	appendLinear(res, poly.ToComplex128(p))
}

// laguerre extracts roots one at a time. When no start yields a finite
// estimate it stops, counting the rest of the degree as Missing.
func (s Solver) laguerre(log *slog.Logger, res *Result, p poly.Poly[complex128]) {
	for p.Degree() > 1 {
		r, converged, err := s.laguerreRoot(p)
		if err != nil {
			log.Warn("no finite root estimate, stopping", "remaining", p.Degree(), "err", err)
			res.Degraded = true
			res.Missing = p.Degree()
			return
		}
		if !converged {
			log.Warn("root did not converge", "last", r, "degree", p.Degree())
			res.Degraded = true
		} else {
			log.Debug("root", "value", r)
		}
		res.Roots = append(res.Roots, Root{Value: r, Converged: converged})
		p, _ = p.DeflateWithResidue(r)
	}
	appendLinear(res, p)
}

// laguerreRoot returns the first converged root over laguerreStarts, or the
// last finite estimate with converged unset.
func (s Solver) laguerreRoot(p poly.Poly[complex128]) (root complex128, converged bool, err error) {
	found := false
	for _, x0 := range laguerreStarts {
		r, lerr := poly.Laguerre(p, x0, s.MaxSteps)
		if lerr == nil {
			return r, true, nil
		}
		err = lerr
		if !cmplx.IsNaN(r) && !cmplx.IsInf(r) {
			root, found = r, true
		}
	}
	if !found {
		return 0, false, err
	}
	return root, false, nil
}

// appendLinear adds the root of the degree one remainder.
func appendLinear(res *Result, p poly.Poly[complex128]) {
	if p.Degree() != 1 {
		return
	}
	v := -p.Coef(0) / p.Coef(1)
	if imag(v) == 0 {
		// drop a negative zero imaginary part
		v = complex(real(v), 0)
	}
	res.Roots = append(res.Roots, Root{Value: v, Converged: true})
}

// polishDistance is how close a refined root may come to an earlier root
// before the refinement is discarded as a collapse onto it.
const polishDistance = 1e-9

func (s Solver) polish(log *slog.Logger, res *Result, p poly.Poly[complex128]) {
	for i, root := range res.Roots {
		r, err := poly.Laguerre(p, root.Value, s.MaxSteps)
		if err != nil {
			log.Debug("polish failed", "root", root.Value, "err", err)
			continue
		}
		if j := nearest(res.Roots[:i], r); j >= 0 {
			log.Debug("polish collapsed onto an earlier root", "root", root.Value, "onto", res.Roots[j].Value)
			continue
		}
		res.Roots[i].Value = r
		res.Roots[i].Polished = true
	}
}

// nearest returns the index of the first root within polishDistance of z,
// or -1.
func nearest(roots []Root, z complex128) int {
	for j, r := range roots {
		if cmplx.Abs(r.Value-z) < polishDistance {
			return j
		}
	}
	return -1
}
