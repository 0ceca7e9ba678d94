package surface

import (
	"image/color"
	"math"
)

// Palette maps normalized pixel values onto colors. Values between two
// entries are blended linearly.
type Palette []color.RGBA

// DefaultSize is the number of entries NewHSV and Grayscale produce.
const DefaultSize = 256

// NewHSV returns a palette walking the hue circle once at full saturation
// and value.
func NewHSV(size int) Palette {
	if size < 2 {
		size = 2
	}
	p := make(Palette, size)
	for i := range p {
		p[i] = hsv(float64(i)/float64(size), 1, 1)
	}
	return p
}

// Grayscale returns a palette from black to white.
func Grayscale(size int) Palette {
	if size < 2 {
		size = 2
	}
	p := make(Palette, size)
	for i := range p {
		l := uint8(255 * i / (size - 1))
		p[i] = color.RGBA{l, l, l, 255}
	}
	return p
}

// At returns the color of v, clamped to [0,1]. An empty palette yields black.
func (p Palette) At(v float64) color.RGBA {
	if len(p) == 0 {
		return color.RGBA{A: 255}
	}
	if math.IsNaN(v) || v <= 0 {
		return p[0]
	}
	v *= float64(len(p))
	idx := int(math.Floor(v))
	if idx >= len(p)-1 {
		return p[len(p)-1]
	}
	a := v - float64(idx)
	return blend(p[idx], p[idx+1], a)
}

func blend(c0, c1 color.RGBA, a float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round((1-a)*float64(x) + a*float64(y)))
	}
	return color.RGBA{mix(c0.R, c1.R), mix(c0.G, c1.G), mix(c0.B, c1.B), mix(c0.A, c1.A)}
}

// hsv converts a hue in [0,1) with saturation and value to RGB.
func hsv(h, s, v float64) color.RGBA {
	h = math.Mod(h, 1)
	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	case 5:
		r, g, b = v, p, q
	}
	return color.RGBA{uint8(r * 255), uint8(g * 255), uint8(b * 255), 255}
}
