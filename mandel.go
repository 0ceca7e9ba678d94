// Package mandel holds the shared vocabulary of the field renderers: the
// rectangle of the complex plane being sampled and the pixel sink results are
// written to.
package mandel

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Region is a rectangle of the complex plane. Pixel (0,0) samples TopLeft and
// the imaginary part grows with the pixel row.
type Region struct {
	TopLeft     complex128
	BottomRight complex128
}

// DefaultRegion is the square [-2,2]x[-2,2].
var DefaultRegion = Region{
	TopLeft:     complex(-2, -2),
	BottomRight: complex(2, 2),
}

// Landmark regions of the Mandelbrot set.
var (
	// SeahorseValley shows curled filaments between the main cardioid and
	// the period-2 bulb.
	SeahorseValley = Rect(-0.8, 0.05, -0.7, 0.15)

	// ElephantValley shows trunk-shaped tendrils near the real axis.
	ElephantValley = Rect(-1.85, -0.10, -1.75, -0.02)

	// SpiralMinibrot is a small copy of the set wrapped in tight spirals.
	SpiralMinibrot = Rect(-0.7435, 0.1310, -0.7420, 0.1325)

	// TripleSpiral has threefold spiral arms.
	TripleSpiral = Rect(-0.7480, 0.0950, -0.7450, 0.0980)

	// ValleyOfTheDragon is a deep zoom into spiral filaments.
	ValleyOfTheDragon = Rect(-0.7400, 0.1800, -0.7350, 0.1850)

	// MinibrotInMiniSpiral is a copy of the set inside a spiral arm.
	MinibrotInMiniSpiral = Rect(-1.7390, -0.0235, -1.7375, -0.0220)
)

var presets = map[string]Region{
	"default":     DefaultRegion,
	"seahorse":    SeahorseValley,
	"elephant":    ElephantValley,
	"spiral":      SpiralMinibrot,
	"triple":      TripleSpiral,
	"dragon":      ValleyOfTheDragon,
	"mini-spiral": MinibrotInMiniSpiral,
}

// Preset looks up a named landmark region.
func Preset(name string) (Region, error) {
	r, ok := presets[strings.ToLower(name)]
	if !ok {
		return Region{}, fmt.Errorf("unknown region preset %q (have %s)", name, strings.Join(PresetNames(), ", "))
	}
	return r, nil
}

// PresetNames lists the names Preset accepts.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Rect builds a Region from its real and imaginary bounds.
func Rect(xmin, ymin, xmax, ymax float64) Region {
	return Region{
		TopLeft:     complex(xmin, ymin),
		BottomRight: complex(xmax, ymax),
	}
}

// Steps returns the sample increments of one pixel column (real) and one
// pixel row (purely imaginary) for a w x h grid.
func (r Region) Steps(w, h int) (stepX, stepY complex128) {
	stepX = complex((real(r.BottomRight)-real(r.TopLeft))/float64(w), 0)
	stepY = complex(0, (imag(r.BottomRight)-imag(r.TopLeft))/float64(h))
	return stepX, stepY
}

// Point maps pixel (x,y) of a w x h grid to its sample value.
func (r Region) Point(x, y, w, h int) complex128 {
	stepX, stepY := r.Steps(w, h)
	return r.TopLeft + complex(float64(y), 0)*stepY + complex(float64(x), 0)*stepX
}

// PixelArea is the sample-space area one pixel of a w x h grid covers.
func (r Region) PixelArea(w, h int) float64 {
	stepX, stepY := r.Steps(w, h)
	return math.Abs(real(stepX) * imag(stepY))
}

// Empty reports whether the region has no area.
func (r Region) Empty() bool {
	return real(r.TopLeft) == real(r.BottomRight) || imag(r.TopLeft) == imag(r.BottomRight)
}

func (r Region) String() string {
	return fmt.Sprintf("%v-%v", r.TopLeft, r.BottomRight)
}
