package raster

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/pkg/errors"
)

// ErrResourceExhausted is returned when an image or a summed-area table
// cannot be allocated.
var ErrResourceExhausted = errors.New("resource exhausted")

// ErrPixelRange is returned when pixel data holds a level above maxval.
var ErrPixelRange = errors.New("pixel level above maxval")

// DefaultMaxPixels bounds the number of cells a single allocation may hold
// unless SetMaxPixels says otherwise.
const DefaultMaxPixels = 1 << 30

var maxPixels atomic.Int64

func init() {
	maxPixels.Store(DefaultMaxPixels)
}

// SetMaxPixels changes the allocation limit, in cells, for images and
// summed-area tables. A non-positive n restores DefaultMaxPixels.
func SetMaxPixels(n int64) {
	if n <= 0 {
		n = DefaultMaxPixels
	}
	maxPixels.Store(n)
}

// MaxPixels returns the current allocation limit in cells.
func MaxPixels() int64 {
	return maxPixels.Load()
}

// CheckDimensions reports whether a width x height buffer may be allocated
// under the current limit. Negative dimensions are a contract violation.
func CheckDimensions(width, height int) error {
	assertf(width >= 0 && height >= 0, "negative dimensions %dx%d", width, height)
	if width == 0 || height == 0 {
		return nil
	}
	limit := maxPixels.Load()
	if width > math.MaxInt/height || int64(width) > limit/int64(height) {
		Logger().Warn("allocation refused", "width", width, "height", height, "limit", limit)
		return errors.Wrapf(ErrResourceExhausted, "%dx%d exceeds %d cells", width, height, limit)
	}
	return nil
}

// allocate returns a zeroed slice of width*height cells, or an error wrapping
// ErrResourceExhausted when the runtime refuses the request.
func allocate[T any](width, height int, what string) (cells []T, err error) {
	if err := CheckDimensions(width, height); err != nil {
		return nil, errors.Wrap(err, what)
	}
	defer func() {
		if r := recover(); r != nil {
			cells = nil
			err = errors.Wrapf(ErrResourceExhausted, "%s %dx%d: %v", what, width, height, r)
		}
	}()
	return make([]T, width*height), nil
}

// assertf panics when a precondition does not hold.
func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("raster: "+format, args...))
	}
}
