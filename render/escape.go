package render

import (
	"fmt"
	"image"
	"log/slog"
	"math"
	"sync"
	"time"

	mandel "github.com/malfet/Mandelbrot"
	"github.com/malfet/Mandelbrot/dynsys"
)

// Result of an escape-time render.
type Result struct {
	// Area is the sample-space area of the pixels that never escaped.
	Area    float64
	Elapsed time.Duration
}

// EscapeTime renders smoothed escape times. The pixel grid is split into
// (Partitions+1)^2 tiles rendered in parallel, each by its own iterator from
// Factory, so workers write disjoint pixels of the sink without locking.
type EscapeTime struct {
	Region     mandel.Region
	Iterations int
	Partitions int
	Factory    dynsys.Factory
	Logger     *slog.Logger

	// OnPartition, when set, is called from the worker goroutine once its
	// tile is written. Calls may be concurrent.
	OnPartition func(tile image.Rectangle, area float64)
}

// NewEscapeTime returns a renderer over the default region.
func NewEscapeTime(f dynsys.Factory) *EscapeTime {
	return &EscapeTime{
		Region:     mandel.DefaultRegion,
		Iterations: DefaultIterations,
		Partitions: DefaultPartitions,
		Factory:    f,
	}
}

// Render computes every pixel of sink and blocks until all partitions are
// done.
func (r *EscapeTime) Render(sink mandel.PixelSink) (Result, error) {
	cfg := *r
	return cfg.render(sink)
}

// Start renders in the background. The configuration is copied, so r may be
// changed for the next render while this one runs.
func (r *EscapeTime) Start(sink mandel.PixelSink) *Pending[Result] {
	cfg := *r
	return start(func() (Result, error) { return cfg.render(sink) })
}

func (r EscapeTime) validate(sink mandel.PixelSink) error {
	switch {
	case sink == nil:
		return fmt.Errorf("%w: nil sink", ErrInvalidConfig)
	case r.Factory == nil:
		return fmt.Errorf("%w: nil factory", ErrInvalidConfig)
	case r.Iterations < 0:
		return fmt.Errorf("%w: %d iterations", ErrInvalidConfig, r.Iterations)
	case sink.Width() < 0 || sink.Height() < 0:
		return fmt.Errorf("%w: sink is %dx%d", ErrInvalidConfig, sink.Width(), sink.Height())
	}
	return nil
}

func (r EscapeTime) render(sink mandel.PixelSink) (Result, error) {
	if err := r.validate(sink); err != nil {
		return Result{}, err
	}
	log := loggerOrDefault(r.Logger)
	began := time.Now()

	tiles := Partition(mandel.Bounds(sink), r.Partitions)
	areas := make([]float64, len(tiles))

	var wg sync.WaitGroup
	for i, tile := range tiles {
		wg.Add(1)
		go func() {
			defer wg.Done()
			areas[i] = r.renderTile(sink, tile, r.Factory())
			log.Debug("partition rendered", "tile", tile, "area", areas[i])
			if r.OnPartition != nil {
				r.OnPartition(tile, areas[i])
			}
		}()
	}
	wg.Wait()

	var area float64
	for _, a := range areas {
		area += a
	}
	res := Result{Area: area, Elapsed: time.Since(began)}
	log.Info("escape-time render finished",
		"region", r.Region, "iterations", r.Iterations, "partitions", len(tiles),
		"area", res.Area, "elapsed", res.Elapsed)
	return res, nil
}

// renderTile writes the pixels of tile and returns the area of the pixels
// that did not escape.
func (r EscapeTime) renderTile(sink mandel.PixelSink, tile image.Rectangle, it dynsys.Iterator) float64 {
	w, h := sink.Width(), sink.Height()
	stepX, stepY := r.Region.Steps(w, h)
	pixelArea := r.Region.PixelArea(w, h)
	var inv float64
	if r.Iterations > 0 {
		inv = 1 / float64(r.Iterations)
	}

	var area float64
	for y := tile.Min.Y; y < tile.Max.Y; y++ {
		row := r.Region.TopLeft + complex(float64(y), 0)*stepY
		for x := tile.Min.X; x < tile.Max.X; x++ {
			t, escaped := EscapeTimeOf(it, row+complex(float64(x), 0)*stepX, r.Iterations)
			if !escaped {
				area += pixelArea
				sink.SetBackground(x, y)
				continue
			}
			sink.SetPixel(x, y, clamp01(t*inv))
		}
	}
	return area
}

// EscapeTimeOf iterates it from seed for at most maxIter steps. It returns the
// continuous escape time k+1-log2(log|z|^2) of the first step k whose iterate
// leaves the bailout disk, 0 when that happens on the first step, and
// (maxIter, false) when the orbit stays bounded. An orbit that becomes NaN or
// infinite escapes at that step without smoothing.
func EscapeTimeOf(it dynsys.Iterator, seed complex128, maxIter int) (float64, bool) {
	it.Init(seed)
	for step := range max(maxIter, 0) {
		m := norm(it.Step())
		if m <= Bailout {
			continue
		}
		switch {
		case math.IsNaN(m) || math.IsInf(m, 0):
			return float64(step), true
		case step == 0:
			return 0, true
		}
		// m > 4 keeps log(m) > 1 so the outer log is defined
		return float64(step) + 1 - math.Log2(math.Log(m)), true
	}
	return float64(max(maxIter, 0)), false
}
