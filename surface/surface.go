// Package surface is an in-memory mandel.PixelSink that keeps the raw pixel
// values so the same render can be colored with different palettes.
package surface

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	mandel "github.com/malfet/Mandelbrot"
)

// Surface stores one value per pixel plus a background mask. Writes to
// distinct pixels may run concurrently.
type Surface struct {
	w, h       int
	vals       []float64
	background []bool
}

var _ mandel.PixelSink = (*Surface)(nil)

// New returns a w x h surface with every pixel set to background.
// Negative sizes are treated as zero.
func New(w, h int) *Surface {
	w, h = max(w, 0), max(h, 0)
	s := &Surface{
		w:          w,
		h:          h,
		vals:       make([]float64, w*h),
		background: make([]bool, w*h),
	}
	s.Clear()
	return s
}

func (s *Surface) Width() int  { return s.w }
func (s *Surface) Height() int { return s.h }

func (s *Surface) SetPixel(x, y int, v float64) {
	if !s.in(x, y) {
		return
	}
	i := y*s.w + x
	s.vals[i] = v
	s.background[i] = false
}

func (s *Surface) SetBackground(x, y int) {
	if !s.in(x, y) {
		return
	}
	i := y*s.w + x
	s.vals[i] = 0
	s.background[i] = true
}

// Value returns the value at (x,y) and whether it was set by SetPixel.
func (s *Surface) Value(x, y int) (float64, bool) {
	if !s.in(x, y) {
		return math.NaN(), false
	}
	i := y*s.w + x
	return s.vals[i], !s.background[i]
}

// Clear marks every pixel as background.
func (s *Surface) Clear() {
	for i := range s.vals {
		s.vals[i] = 0
		s.background[i] = true
	}
}

// Row returns a copy of the values of row y with background pixels as NaN.
func (s *Surface) Row(y int) []float64 {
	if y < 0 || y >= s.h {
		return nil
	}
	out := make([]float64, s.w)
	for x := range out {
		v, ok := s.Value(x, y)
		if !ok {
			v = math.NaN()
		}
		out[x] = v
	}
	return out
}

// Image colors the surface with p. Background pixels are opaque black.
func (s *Surface) Image(p Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.w, s.h))
	black := color.RGBA{A: 255}
	for y := range s.h {
		for x := range s.w {
			i := y*s.w + x
			if s.background[i] {
				img.SetRGBA(x, y, black)
				continue
			}
			img.SetRGBA(x, y, p.At(s.vals[i]))
		}
	}
	return img
}

// EncodePNG writes the surface colored with p as a PNG.
func (s *Surface) EncodePNG(w io.Writer, p Palette) error {
	return png.Encode(w, s.Image(p))
}

func (s *Surface) in(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.w && y < s.h
}
