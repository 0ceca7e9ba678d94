package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	mandel "github.com/malfet/Mandelbrot"
	"github.com/malfet/Mandelbrot/dynsys"
	"github.com/malfet/Mandelbrot/misiurewicz"
	"github.com/malfet/Mandelbrot/poly"
	"github.com/malfet/Mandelbrot/render"
	"github.com/malfet/Mandelbrot/surface"
)

const (
	maxSide       = 4096
	maxIterations = 1 << 16
	defaultWidth  = 800
	defaultHeight = 800
)

const (
	modeEscape     = "escape"
	modeAttraction = "attraction"
)

var errBadRequest = errors.New("bad request")

// job is a validated request.
type job struct {
	kind       dynsys.Kind
	mode       string
	region     mandel.Region
	w, h       int
	iterations int
	partitions int
	factory    dynsys.Factory
}

func newJob(req mandel.Request) (job, error) {
	if req.Kind == "" {
		req.Kind = dynsys.Quadratic.String()
	}
	kind, err := dynsys.ParseKind(req.Kind)
	if err != nil {
		return job{}, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	j := job{
		kind:       kind,
		mode:       req.Mode,
		region:     mandel.DefaultRegion,
		w:          req.Width,
		h:          req.Height,
		iterations: req.Iterations,
		partitions: render.DefaultPartitions,
	}
	if j.w == 0 {
		j.w = defaultWidth
	}
	if j.h == 0 {
		j.h = defaultHeight
	}
	if j.w < 0 || j.h < 0 || j.w > maxSide || j.h > maxSide {
		return job{}, fmt.Errorf("%w: size %dx%d outside 0..%d", errBadRequest, j.w, j.h, maxSide)
	}
	if j.iterations == 0 {
		j.iterations = render.DefaultIterations
	}
	if j.iterations < 0 || j.iterations > maxIterations {
		return job{}, fmt.Errorf("%w: %d iterations outside 0..%d", errBadRequest, j.iterations, maxIterations)
	}
	if req.Partitions != nil {
		j.partitions = *req.Partitions
	}
	if j.partitions < 0 || j.partitions > 15 {
		return job{}, fmt.Errorf("%w: %d partitions", errBadRequest, j.partitions)
	}

	switch {
	case req.Region != nil:
		j.region = req.Region.Region()
	case req.Preset != "":
		if j.region, err = mandel.Preset(req.Preset); err != nil {
			return job{}, fmt.Errorf("%w: %v", errBadRequest, err)
		}
	}
	if j.region.Empty() {
		return job{}, fmt.Errorf("%w: empty region %v", errBadRequest, j.region)
	}

	switch kind {
	case dynsys.Quadratic:
		j.factory = dynsys.MandelbrotFactory()
	case dynsys.QuadraticFixed:
		j.factory = dynsys.JuliaFactory(complex(req.C[0], req.C[1]))
	case dynsys.Power:
		p := req.Power
		if p == 0 {
			p = 2
		}
		j.factory = dynsys.MultibrotFactory(p)
	case dynsys.Newton:
		p := poly.New[complex128](-1, 0, 0, 1)
		if req.K != 0 || req.N != 0 {
			if req.K < 1 || req.N < 1 || req.K+req.N > 12 {
				return job{}, fmt.Errorf("%w: misiurewicz(%d,%d)", errBadRequest, req.K, req.N)
			}
			p = misiurewicz.Polynomial[complex128](req.K, req.N)
		}
		j.factory = dynsys.NewtonFactory(p)
	}

	if j.mode == "" {
		j.mode = modeEscape
		if kind == dynsys.Newton {
			j.mode = modeAttraction
		}
	}
	if j.mode != modeEscape && j.mode != modeAttraction {
		return job{}, fmt.Errorf("%w: unknown mode %q", errBadRequest, j.mode)
	}
	return j, nil
}

// run renders the job, reporting escape-time partitions to onProgress, and
// returns the summary and the PNG.
func (j job) run(ctx context.Context, log *slog.Logger, onProgress func(mandel.Progress)) (mandel.Summary, []byte, error) {
	sum := mandel.Summary{
		Kind:   j.kind.String(),
		Mode:   j.mode,
		Region: j.region.String(),
		Width:  j.w,
		Height: j.h,
	}
	surf := surface.New(j.w, j.h)

	switch j.mode {
	case modeEscape:
		tracker := newProgressTracker(j.w * j.h)
		r := render.NewEscapeTime(j.factory)
		r.Region = j.region
		r.Iterations = j.iterations
		r.Partitions = j.partitions
		r.Logger = log
		r.OnPartition = func(tile image.Rectangle, area float64) {
			tracker.tileFinished(tile, area, onProgress)
		}
		res, err := wait(ctx, r.Start(surf))
		if err != nil {
			return sum, nil, err
		}
		sum.Area = res.Area
		sum.ElapsedMS = res.Elapsed.Milliseconds()
	case modeAttraction:
		r := render.NewAttraction(j.factory)
		r.Region = j.region
		r.Iterations = j.iterations
		r.Logger = log
		res, err := wait(ctx, r.Start(surf))
		if err != nil {
			return sum, nil, err
		}
		for _, p := range res.Points {
			sum.Points = append(sum.Points, [2]float64{real(p), imag(p)})
		}
		sum.ElapsedMS = res.Elapsed.Milliseconds()
	}

	var buf bytes.Buffer
	if err := surf.EncodePNG(&buf, surface.NewHSV(surface.DefaultSize)); err != nil {
		return sum, nil, fmt.Errorf("encode png: %w", err)
	}
	return sum, buf.Bytes(), nil
}

// wait returns when the render completes or ctx ends. An abandoned render
// runs to completion in the background.
func wait[R any](ctx context.Context, p *render.Pending[R]) (R, error) {
	select {
	case <-p.Done():
		return p.Wait()
	case <-ctx.Done():
		var zero R
		return zero, context.Cause(ctx)
	}
}
