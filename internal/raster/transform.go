package raster

import "math"

// Point transformations change levels in place without touching geometry.
// They never fail.

// Negative turns dark pixels light and vice-versa: level becomes
// maxval - level.
func (img *Image) Negative() {
	assertf(img != nil, "nil image")
	for y := 0; y < img.height; y++ {
		for x := 0; x < img.width; x++ {
			img.SetPixel(x, y, img.maxval-img.Pixel(x, y))
		}
	}
}

// Threshold sets pixels below thr to black (0) and all others to white
// (maxval).
func (img *Image) Threshold(thr uint8) {
	assertf(img != nil, "nil image")
	for y := 0; y < img.height; y++ {
		for x := 0; x < img.width; x++ {
			if img.Pixel(x, y) < thr {
				img.SetPixel(x, y, 0)
			} else {
				img.SetPixel(x, y, img.maxval)
			}
		}
	}
}

// Brighten multiplies every level by factor, rounding half up and
// saturating at maxval. factor must be non-negative; values below 1 darken.
func (img *Image) Brighten(factor float64) {
	assertf(img != nil, "nil image")
	assertf(factor >= 0, "negative brighten factor %g", factor)
	for y := 0; y < img.height; y++ {
		for x := 0; x < img.width; x++ {
			img.SetPixel(x, y, saturate(float64(img.Pixel(x, y))*factor, img.maxval))
		}
	}
}

// saturate rounds v half up and clamps it to [0, maxval].
func saturate(v float64, maxval uint8) uint8 {
	v = math.Floor(v + 0.5)
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= float64(maxval):
		return maxval
	default:
		return uint8(v)
	}
}
