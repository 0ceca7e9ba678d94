package render

import (
	"fmt"
	"log/slog"
	"time"

	mandel "github.com/malfet/Mandelbrot"
	"github.com/malfet/Mandelbrot/dynsys"
)

// Registry numbers the attraction points seen during one render in order of
// first appearance.
type Registry struct {
	eps    float64
	points []complex128
}

// NewRegistry returns an empty registry matching points closer than eps in
// squared distance.
func NewRegistry(eps float64) *Registry {
	return &Registry{eps: eps}
}

// Index returns the index of the first registered point within eps of z,
// registering z when none is.
func (r *Registry) Index(z complex128) int {
	for i, p := range r.points {
		if norm(p-z) < r.eps {
			return i
		}
	}
	r.points = append(r.points, z)
	return len(r.points) - 1
}

// Len is the number of registered points.
func (r *Registry) Len() int {
	return len(r.points)
}

// Points returns the registered points in index order.
func (r *Registry) Points() []complex128 {
	out := make([]complex128, len(r.points))
	copy(out, r.points)
	return out
}

// AttractionResult of an attraction-point render.
type AttractionResult struct {
	Points  []complex128
	Elapsed time.Duration
}

// Count is the number of distinct attraction points found.
func (r AttractionResult) Count() int {
	return len(r.Points)
}

// Attraction renders which attraction point each sample converges to and how
// fast. Pixels are written in row order on the calling goroutine because the
// registry numbering depends on visiting order.
type Attraction struct {
	Region     mandel.Region
	Iterations int
	// Epsilon is the squared step length that counts as converged.
	Epsilon float64
	// MatchEpsilon is the squared distance that identifies two limit points.
	MatchEpsilon float64
	Factory      dynsys.Factory
	Logger       *slog.Logger
}

// NewAttraction returns a renderer over the default region.
func NewAttraction(f dynsys.Factory) *Attraction {
	return &Attraction{
		Region:       mandel.DefaultRegion,
		Iterations:   DefaultIterations,
		Epsilon:      DefaultEpsilon,
		MatchEpsilon: DefaultMatchEpsilon,
		Factory:      f,
	}
}

// Render classifies every pixel of sink. Each call starts a fresh registry.
func (r *Attraction) Render(sink mandel.PixelSink) (AttractionResult, error) {
	cfg := *r
	return cfg.render(sink)
}

// Start renders in the background on a snapshot of the configuration.
func (r *Attraction) Start(sink mandel.PixelSink) *Pending[AttractionResult] {
	cfg := *r
	return start(func() (AttractionResult, error) { return cfg.render(sink) })
}

func (r Attraction) render(sink mandel.PixelSink) (AttractionResult, error) {
	switch {
	case sink == nil:
		return AttractionResult{}, fmt.Errorf("%w: nil sink", ErrInvalidConfig)
	case r.Factory == nil:
		return AttractionResult{}, fmt.Errorf("%w: nil factory", ErrInvalidConfig)
	case r.Iterations < 0:
		return AttractionResult{}, fmt.Errorf("%w: %d iterations", ErrInvalidConfig, r.Iterations)
	}
	eps, matchEps := r.Epsilon, r.MatchEpsilon
	if eps <= 0 {
		eps = DefaultEpsilon
	}
	if matchEps <= 0 {
		matchEps = DefaultMatchEpsilon
	}
	log := loggerOrDefault(r.Logger)
	began := time.Now()

	w, h := sink.Width(), sink.Height()
	stepX, stepY := r.Region.Steps(w, h)
	var inv float64
	if r.Iterations > 0 {
		inv = 1 / float64(r.Iterations)
	}

	registry := NewRegistry(matchEps)
	it := r.Factory()
	for y := range max(h, 0) {
		row := r.Region.TopLeft + complex(float64(y), 0)*stepY
		for x := range max(w, 0) {
			z, steps, ok := AttractionTimeOf(it, row+complex(float64(x), 0)*stepX, r.Iterations, eps)
			if !ok {
				sink.SetBackground(x, y)
				continue
			}
			known := registry.Len()
			idx := registry.Index(z)
			if registry.Len() > known {
				log.Debug("new attraction point", "index", idx, "point", z)
			}
			sink.SetPixel(x, y, float64(idx)/float64(registry.Len())+float64(steps)*inv)
		}
	}

	res := AttractionResult{Points: registry.Points(), Elapsed: time.Since(began)}
	log.Info("attraction render finished",
		"region", r.Region, "iterations", r.Iterations,
		"points", res.Count(), "elapsed", res.Elapsed)
	return res, nil
}

// AttractionTimeOf iterates it from seed until the squared distance between
// consecutive iterates drops below eps. It returns the limit point and the
// step it was reached on, or ok == false when the orbit did not settle within
// maxIter steps or became NaN or infinite.
func AttractionTimeOf(it dynsys.Iterator, seed complex128, maxIter int, eps float64) (z complex128, step int, ok bool) {
	it.Init(seed)
	prev := it.Value()
	for step = range max(maxIter, 0) {
		z = it.Step()
		if !finite(z) {
			return z, step, false
		}
		if norm(z-prev) < eps {
			return z, step, true
		}
		prev = z
	}
	return seed, max(maxIter, 0), false
}
