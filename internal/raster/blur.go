package raster

import (
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// BlurOption configures Blur.
type BlurOption func(*blurConfig)

type blurConfig struct {
	workers int
}

// WithWorkers splits the rows into bands processed by up to n goroutines.
// n <= 1 keeps the blur on the calling goroutine; n above the image height
// uses one goroutine per row.
func WithWorkers(n int) BlurOption {
	return func(c *blurConfig) {
		c.workers = n
	}
}

// Blur applies a (2dx+1) x (2dy+1) mean filter to img in place.
//
// Each pixel becomes the mean of the window [x-dx, x+dx] x [y-dy, y+dy]
// clipped to the image, rounded to the nearest level with ties rounding up.
// dx and dy must be non-negative; Blur(img, 0, 0) leaves img unchanged.
//
// The only error is a failure to allocate the summed-area table, in which
// case img is not modified.
func Blur(img *Image, dx, dy int, opts ...BlurOption) error {
	assertf(img != nil, "nil image")
	assertf(dx >= 0 && dy >= 0, "negative blur window (%d,%d)", dx, dy)

	cfg := blurConfig{workers: 1}
	for _, opt := range opts {
		opt(&cfg)
	}

	start := time.Now()
	table, err := NewSummedAreaTable(img)
	if err != nil {
		return errors.Wrap(err, "blur")
	}

	h := img.height
	workers := min(cfg.workers, h)
	if workers <= 1 {
		blurRows(img, table, dx, dy, 0, h)
	} else {
		band := (h + workers - 1) / workers
		var g errgroup.Group
		g.SetLimit(workers)
		for y0 := 0; y0 < h; y0 += band {
			y0, y1 := y0, min(y0+band, h)
			g.Go(func() error {
				blurRows(img, table, dx, dy, y0, y1)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return errors.Wrap(err, "blur")
		}
	}
	img.acc.store(uint64(len(img.pix)))

	Logger().Debug("blur",
		"width", img.width, "height", h, "dx", dx, "dy", dy,
		"workers", max(workers, 1), "elapsed", time.Since(start))
	return nil
}

// blurRows writes the blurred levels of rows [y0, y1). It reads only from
// table, so bands may run concurrently.
func blurRows(img *Image, table *SummedAreaTable, dx, dy, y0, y1 int) {
	w, h := img.width, img.height
	for y := y0; y < y1; y++ {
		yt, yb := clipLow(y, dy), clipHigh(y, dy, h)
		rows := uint64(yb - yt + 1)
		for x := 0; x < w; x++ {
			xl, xr := clipLow(x, dx), clipHigh(x, dx, w)
			area := rows * uint64(xr-xl+1)
			img.pix[y*w+x] = uint8(roundMean(table.RectSum(xl, yt, xr, yb), area))
		}
	}
}

// clipLow returns max(0, c-d) without overflowing for large d.
func clipLow(c, d int) int {
	if d > c {
		return 0
	}
	return c - d
}

// clipHigh returns min(n-1, c+d) without overflowing for large d.
func clipHigh(c, d, n int) int {
	if d > n-1-c {
		return n - 1
	}
	return c + d
}

// roundMean returns sum/area rounded half up. area must be positive.
func roundMean(sum, area uint64) uint64 {
	return (2*sum + area) / (2 * area)
}
