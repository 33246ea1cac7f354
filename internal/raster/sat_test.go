package raster

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bruteRectSum adds the levels of [xl, xr] x [yt, yb] one by one.
func bruteRectSum(img *Image, xl, yt, xr, yb int) uint64 {
	var sum uint64
	for y := yt; y <= yb; y++ {
		for x := xl; x <= xr; x++ {
			sum += uint64(img.Pixel(x, y))
		}
	}
	return sum
}

func TestSummedAreaTable_Recurrence(t *testing.T) {
	img := newTestImage(t, 3, 3, 9,
		1, 2, 3,
		4, 5, 6,
		7, 8, 9)

	table, err := NewSummedAreaTable(img)
	require.NoError(t, err)

	want := [][]uint64{
		{1, 3, 6},
		{5, 12, 21},
		{12, 27, 45},
	}
	for y, row := range want {
		for x, v := range row {
			assert.Equal(t, v, table.At(x, y), "table (%d,%d)", x, y)
		}
	}
	assert.Equal(t, 3, table.Width())
	assert.Equal(t, 3, table.Height())
}

func TestSummedAreaTable_RectSumMatchesBruteForce(t *testing.T) {
	sizes := [][2]int{{1, 1}, {1, 6}, {6, 1}, {5, 5}, {7, 4}}
	for i, size := range sizes {
		w, h := size[0], size[1]
		img := newRandomImage(t, w, h, 255, int64(i+1))
		table, err := NewSummedAreaTable(img)
		require.NoError(t, err)

		for yt := 0; yt < h; yt++ {
			for yb := yt; yb < h; yb++ {
				for xl := 0; xl < w; xl++ {
					for xr := xl; xr < w; xr++ {
						require.Equal(t, bruteRectSum(img, xl, yt, xr, yb), table.RectSum(xl, yt, xr, yb),
							"%dx%d rect [%d,%d]x[%d,%d]", w, h, xl, xr, yt, yb)
					}
				}
			}
		}
	}
}

func TestSummedAreaTable_Monotonic(t *testing.T) {
	img := newRandomImage(t, 9, 6, 255, 42)
	table, err := NewSummedAreaTable(img)
	require.NoError(t, err)

	for y := 0; y < 6; y++ {
		for x := 0; x < 9; x++ {
			if x > 0 {
				assert.GreaterOrEqual(t, table.At(x, y), table.At(x-1, y))
			}
			if y > 0 {
				assert.GreaterOrEqual(t, table.At(x, y), table.At(x, y-1))
			}
		}
	}
}

func TestSummedAreaTable_DoesNotAliasImage(t *testing.T) {
	img := newUniformImage(t, 4, 4, 255, 10)
	table, err := NewSummedAreaTable(img)
	require.NoError(t, err)

	img.SetPixel(0, 0, 200)
	assert.Equal(t, uint64(160), table.RectSum(0, 0, 3, 3))
}

func TestSummedAreaTable_SaturatedImageFitsBound(t *testing.T) {
	const w, h = 300, 200
	img := newUniformImage(t, w, h, 255, 255)
	table, err := NewSummedAreaTable(img)
	require.NoError(t, err)

	assert.Equal(t, uint64(w*h*255), table.At(w-1, h-1))
	assert.Equal(t, uint64(w*h*255), table.RectSum(0, 0, w-1, h-1))
}

func TestSummedAreaTable_LargeDimensionsNeed64Bits(t *testing.T) {
	// Worst-case corner cell of a 10000x10000 image at maxval 255.
	worst := uint64(10000) * 10000 * 255
	assert.Greater(t, worst, uint64(math.MaxUint32))
	assert.LessOrEqual(t, worst, uint64(math.MaxUint64)/2, "roundMean doubles the sum")
}

func TestSummedAreaTable_RectSumPanicsOutOfRange(t *testing.T) {
	img := newUniformImage(t, 3, 3, 255, 1)
	table, err := NewSummedAreaTable(img)
	require.NoError(t, err)

	assert.Panics(t, func() { table.RectSum(-1, 0, 1, 1) })
	assert.Panics(t, func() { table.RectSum(0, 0, 3, 1) })
	assert.Panics(t, func() { table.RectSum(2, 0, 1, 1) })
	assert.Panics(t, func() { table.RectSum(0, 2, 1, 1) })
}

func TestSummedAreaTable_ResourceExhausted(t *testing.T) {
	img := newUniformImage(t, 10, 10, 255, 1)
	limitPixels(t, 50)

	_, err := NewSummedAreaTable(img)
	assert.ErrorIs(t, err, ErrResourceExhausted)
}
