package raster

// SummedAreaTable holds, for every pixel (x, y), the sum of all levels in the
// rectangle from the origin to (x, y) inclusive. It answers rectangle sums
// in constant time.
//
// Sums are 64-bit: a 10000x10000 image at maxval 255 already overflows
// 32 bits.
type SummedAreaTable struct {
	width  int
	height int
	sums   []uint64
}

// NewSummedAreaTable builds the table of img in a single row-major pass.
// The table does not alias img, so img may be modified afterwards.
func NewSummedAreaTable(img *Image) (*SummedAreaTable, error) {
	assertf(img != nil, "nil image")

	w, h := img.width, img.height
	sums, err := allocate[uint64](w, h, "summed-area table")
	if err != nil {
		return nil, err
	}

	for y := 0; y < h; y++ {
		row := y * w
		for x := 0; x < w; x++ {
			i := row + x
			v := uint64(img.pix[i])
			switch {
			case x == 0 && y == 0:
				sums[i] = v
			case y == 0:
				sums[i] = sums[i-1] + v
			case x == 0:
				sums[i] = sums[i-w] + v
			default:
				sums[i] = sums[i-1] + sums[i-w] - sums[i-w-1] + v
			}
		}
	}
	img.acc.load(uint64(len(sums)))

	return &SummedAreaTable{width: w, height: h, sums: sums}, nil
}

// Width returns the width of the source image.
func (t *SummedAreaTable) Width() int { return t.width }

// Height returns the height of the source image.
func (t *SummedAreaTable) Height() int { return t.height }

// At returns the sum of the levels in [0, x] x [0, y].
func (t *SummedAreaTable) At(x, y int) uint64 {
	assertf(0 <= x && x < t.width && 0 <= y && y < t.height,
		"table cell (%d,%d) outside %dx%d", x, y, t.width, t.height)
	return t.sums[y*t.width+x]
}

// RectSum returns the sum of the levels in [xl, xr] x [yt, yb].
// Requires 0 <= xl <= xr < width and 0 <= yt <= yb < height.
func (t *SummedAreaTable) RectSum(xl, yt, xr, yb int) uint64 {
	assertf(0 <= xl && xl <= xr && xr < t.width && 0 <= yt && yt <= yb && yb < t.height,
		"rectangle [%d,%d]x[%d,%d] outside %dx%d table", xl, xr, yt, yb, t.width, t.height)

	w := t.width
	br := t.sums[yb*w+xr]
	switch {
	case xl == 0 && yt == 0:
		return br
	case yt == 0:
		return br - t.sums[yb*w+xl-1]
	case xl == 0:
		return br - t.sums[(yt-1)*w+xr]
	default:
		return br - t.sums[yb*w+xl-1] - t.sums[(yt-1)*w+xr] + t.sums[(yt-1)*w+xl-1]
	}
}
