package pgm

import (
	"os"
	"sync"

	"github.com/pkg/errors"

	"github.com/ironsheep/image8bit/internal/raster"
)

// Cache provides thread-safe caching of decoded PGM images to avoid
// redundant disk reads.
//
// Images are keyed by the exact path string passed to Load. Since raster
// images are mutable, Load hands out clones: callers may modify what they
// get without affecting the cached copy.
//
// # Memory Management
//
// Cached images remain in memory until removed via Evict or Clear. Callers
// that overwrite a file must Evict its path so the next Load sees the new
// content.
type Cache struct {
	mu     sync.RWMutex
	images map[string]*raster.Image
}

// NewCache creates an empty cache, ready for concurrent use.
func NewCache() *Cache {
	return &Cache{
		images: make(map[string]*raster.Image),
	}
}

// Load returns a private copy of the image at path, reading the file only on
// the first request.
func (c *Cache) Load(path string) (*raster.Image, error) {
	c.mu.RLock()
	cached, ok := c.images[path]
	c.mu.RUnlock()

	if !ok {
		img, err := Load(path)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.images[path] = img
		c.mu.Unlock()
		cached = img
	}

	return cached.Clone()
}

// Evict removes path from the cache. Unknown paths are ignored.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Clear removes every image from the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*raster.Image)
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// ImageInfo contains metadata about a PGM file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Maxval is the gray level representing white.
	Maxval int `json:"maxval"`

	// Min and Max are the darkest and brightest levels present.
	Min int `json:"min"`
	Max int `json:"max"`

	// FileSizeBytes is the size of the file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Info loads the image at path through cache and describes it.
func Info(cache *Cache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to stat file")
	}

	lo, hi := img.Stats()
	return &ImageInfo{
		Width:         img.Width(),
		Height:        img.Height(),
		Maxval:        int(img.Maxval()),
		Min:           int(lo),
		Max:           int(hi),
		FileSizeBytes: stat.Size(),
	}, nil
}
