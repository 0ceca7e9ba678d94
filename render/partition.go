package render

import "image"

// Partition splits r into (k+1) x (k+1) tiles of equal size. Tiles in the
// last row and column absorb the remainder when r does not divide evenly.
// Tiles never overlap and together cover r exactly; some may be empty when r
// is smaller than k+1 pixels across.
func Partition(r image.Rectangle, k int) []image.Rectangle {
	if k < 0 {
		k = 0
	}
	n := k + 1
	w, h := r.Dx(), r.Dy()
	stepW, stepH := w/n, h/n

	tiles := make([]image.Rectangle, 0, n*n)
	for tx := range n {
		x0 := tx * stepW
		x1 := x0 + stepW
		if tx == k {
			x1 = w
		}
		for ty := range n {
			y0 := ty * stepH
			y1 := y0 + stepH
			if ty == k {
				y1 = h
			}
			tiles = append(tiles, image.Rect(
				r.Min.X+x0,
				r.Min.Y+y0,
				r.Min.X+x1,
				r.Min.Y+y1,
			))
		}
	}
	return tiles
}
