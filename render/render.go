// Package render computes escape-time and attraction-time fields of the
// systems in package dynsys and writes them to a mandel.PixelSink.
package render

import (
	"errors"
	"log/slog"
	"math"
	"math/cmplx"
)

const (
	// DefaultIterations is the iteration cap renderers start with.
	DefaultIterations = 256
	// DefaultPartitions yields 16 escape-time workers.
	DefaultPartitions = 3
	// Bailout is the squared magnitude past which an orbit has escaped.
	Bailout = 4.0
	// DefaultEpsilon is the squared step length below which an orbit has
	// converged.
	DefaultEpsilon = 1e-8
	// DefaultMatchEpsilon is the squared distance under which two limit
	// points are the same attraction point.
	DefaultMatchEpsilon = 1e-6
)

// ErrInvalidConfig is returned for renders that cannot start.
var ErrInvalidConfig = errors.New("invalid render configuration")

// Pending is a render running in the background.
type Pending[R any] struct {
	done chan struct{}
	res  R
	err  error
}

func start[R any](fn func() (R, error)) *Pending[R] {
	p := &Pending[R]{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		p.res, p.err = fn()
	}()
	return p
}

// Wait blocks until the render is complete.
func (p *Pending[R]) Wait() (R, error) {
	<-p.done
	return p.res, p.err
}

// Done is closed once Wait would not block.
func (p *Pending[R]) Done() <-chan struct{} {
	return p.done
}

func norm(z complex128) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}

func finite(z complex128) bool {
	return !cmplx.IsNaN(z) && !cmplx.IsInf(z)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
