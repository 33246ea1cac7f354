package raster

import (
	"sync/atomic"

	"github.com/pkg/errors"
)

// PixMax is the largest maxval an image may declare.
const PixMax = 255

// Image is an 8-bit grayscale raster.
//
// Width, height and maxval are fixed for the lifetime of the image. Pixel
// levels are expected to stay within [0, maxval]; New and FromPixels enforce
// this, mutating operations do not re-check it on every write.
//
// An Image must not be copied after first use.
type Image struct {
	width  int
	height int
	maxval uint8
	pix    []uint8
	acc    counters
}

// New creates a black (zero-filled) image.
//
// Requires width >= 0, height >= 0 and 0 < maxval <= PixMax; violating this
// panics. The only error is an allocation failure wrapping
// ErrResourceExhausted.
func New(width, height int, maxval uint8) (*Image, error) {
	assertf(width >= 0 && height >= 0, "negative dimensions %dx%d", width, height)
	assertf(maxval > 0, "maxval must be positive")

	pix, err := allocate[uint8](width, height, "image")
	if err != nil {
		return nil, err
	}
	return &Image{width: width, height: height, maxval: maxval, pix: pix}, nil
}

// FromPixels builds an image that takes ownership of pix, a row-major block
// of width*height levels. The caller must not use pix afterwards.
//
// It fails when the block has the wrong length or holds a level above maxval.
func FromPixels(width, height int, maxval uint8, pix []uint8) (*Image, error) {
	assertf(width >= 0 && height >= 0, "negative dimensions %dx%d", width, height)
	assertf(maxval > 0, "maxval must be positive")

	if err := CheckDimensions(width, height); err != nil {
		return nil, err
	}
	if len(pix) != width*height {
		return nil, errors.Errorf("pixel block has %d bytes, want %d", len(pix), width*height)
	}
	for i, p := range pix {
		if p > maxval {
			return nil, errors.Wrapf(ErrPixelRange, "level %d at (%d,%d) exceeds %d",
				p, i%width, i/width, maxval)
		}
	}
	img := &Image{width: width, height: height, maxval: maxval, pix: pix}
	img.acc.store(uint64(len(pix)))
	return img, nil
}

// Destroy releases the image *imgp and sets *imgp to nil.
// It does nothing when *imgp is already nil. imgp itself must not be nil.
func Destroy(imgp **Image) {
	assertf(imgp != nil, "nil image handle")
	if img := *imgp; img != nil {
		img.pix = nil
		img.width, img.height = 0, 0
	}
	*imgp = nil
}

// Width returns the image width in pixels.
func (img *Image) Width() int {
	assertf(img != nil, "nil image")
	return img.width
}

// Height returns the image height in pixels.
func (img *Image) Height() int {
	assertf(img != nil, "nil image")
	return img.height
}

// Maxval returns the gray level that represents white.
func (img *Image) Maxval() uint8 {
	assertf(img != nil, "nil image")
	return img.maxval
}

// ValidPos reports whether (x, y) is inside the image.
func (img *Image) ValidPos(x, y int) bool {
	assertf(img != nil, "nil image")
	return 0 <= x && x < img.width && 0 <= y && y < img.height
}

// ValidRect reports whether the w x h rectangle at (x, y) lies completely
// inside the image. A zero-area rectangle is valid when its origin lies
// within [0, width] x [0, height].
func (img *Image) ValidRect(x, y, w, h int) bool {
	assertf(img != nil, "nil image")
	if x < 0 || y < 0 || w < 0 || h < 0 {
		return false
	}
	if w == 0 || h == 0 {
		return x <= img.width && y <= img.height
	}
	return img.ValidPos(x+w-1, y+h-1)
}

// index maps (x, y) to its offset in pix.
func (img *Image) index(x, y int) int {
	assertf(img != nil, "nil image")
	assertf(img.ValidPos(x, y), "pixel (%d,%d) outside %dx%d image", x, y, img.width, img.height)
	return y*img.width + x
}

// Pixel returns the level at (x, y). (x, y) must be a valid position.
func (img *Image) Pixel(x, y int) uint8 {
	i := img.index(x, y)
	img.acc.load(1)
	return img.pix[i]
}

// SetPixel sets the level at (x, y). (x, y) must be a valid position.
func (img *Image) SetPixel(x, y int, level uint8) {
	i := img.index(x, y)
	img.acc.store(1)
	img.pix[i] = level
}

// AppendPixels appends the row-major pixel block to dst and returns it.
func (img *Image) AppendPixels(dst []byte) []byte {
	assertf(img != nil, "nil image")
	img.acc.load(uint64(len(img.pix)))
	return append(dst, img.pix...)
}

// Clone returns a deep copy of the image. Access counters start at zero.
func (img *Image) Clone() (*Image, error) {
	assertf(img != nil, "nil image")
	dst, err := New(img.width, img.height, img.maxval)
	if err != nil {
		return nil, err
	}
	copy(dst.pix, img.pix)
	img.acc.load(uint64(len(img.pix)))
	return dst, nil
}

// Stats returns the minimum and maximum levels in the image.
// An empty image reports (0, 0).
func (img *Image) Stats() (lo, hi uint8) {
	assertf(img != nil, "nil image")
	if len(img.pix) == 0 {
		return 0, 0
	}
	lo, hi = img.pix[0], img.pix[0]
	for _, p := range img.pix[1:] {
		if p < lo {
			lo = p
		} else if p > hi {
			hi = p
		}
	}
	img.acc.load(uint64(len(img.pix)))
	return lo, hi
}

// AccessCounts is a snapshot of the pixel accesses made on an image.
type AccessCounts struct {
	// Memory counts every pixel array access, reads and writes alike.
	Memory uint64 `json:"memory"`

	// Reads counts pixel reads.
	Reads uint64 `json:"reads"`

	// Writes counts pixel writes.
	Writes uint64 `json:"writes"`
}

// Sub returns the accesses made since the snapshot prev.
func (a AccessCounts) Sub(prev AccessCounts) AccessCounts {
	return AccessCounts{
		Memory: a.Memory - prev.Memory,
		Reads:  a.Reads - prev.Reads,
		Writes: a.Writes - prev.Writes,
	}
}

// Add returns the combined accesses of a and b.
func (a AccessCounts) Add(b AccessCounts) AccessCounts {
	return AccessCounts{
		Memory: a.Memory + b.Memory,
		Reads:  a.Reads + b.Reads,
		Writes: a.Writes + b.Writes,
	}
}

// Accesses returns the access counters of the image.
func (img *Image) Accesses() AccessCounts {
	assertf(img != nil, "nil image")
	return AccessCounts{
		Memory: img.acc.mem.Load(),
		Reads:  img.acc.reads.Load(),
		Writes: img.acc.writes.Load(),
	}
}

// ResetAccesses zeroes the access counters of the image.
func (img *Image) ResetAccesses() {
	assertf(img != nil, "nil image")
	img.acc.mem.Store(0)
	img.acc.reads.Store(0)
	img.acc.writes.Store(0)
}

type counters struct {
	mem    atomic.Uint64
	reads  atomic.Uint64
	writes atomic.Uint64
}

func (c *counters) load(n uint64) {
	c.mem.Add(n)
	c.reads.Add(n)
}

func (c *counters) store(n uint64) {
	c.mem.Add(n)
	c.writes.Add(n)
}
