package mandel

import "image"

// PixelSink receives the per-pixel scalars of a render. Renderers never read
// pixels back. Concurrent calls only ever target disjoint pixels.
type PixelSink interface {
	Width() int
	Height() int
	// SetPixel stores a value to be mapped through a palette.
	SetPixel(x, y int, v float64)
	// SetBackground marks a pixel as in-set / unclassified.
	SetBackground(x, y int)
}

// Bounds returns the pixel rectangle of s.
func Bounds(s PixelSink) image.Rectangle {
	return image.Rect(0, 0, s.Width(), s.Height())
}
