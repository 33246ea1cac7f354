package server

import (
	"log"
	"os"
	"runtime"
	"strconv"

	"github.com/ironsheep/image8bit/internal/raster"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvLogLevel    = "IMAGE8BIT_LOG_LEVEL"
	EnvBlurWorkers = "IMAGE8BIT_BLUR_WORKERS"
	EnvMaxPixels   = "IMAGE8BIT_MAX_PIXELS"
)

// Config holds the server settings.
type Config struct {
	// BlurWorkers is the default number of goroutines image_blur uses when
	// the call does not name one. Defaults to runtime.NumCPU().
	BlurWorkers int

	// MaxPixels is the largest image, in pixels, the process may allocate.
	// Defaults to raster.DefaultMaxPixels.
	MaxPixels int64

	// Debug enables per-request logging.
	Debug bool

	// Version is reported in the initialize handshake.
	Version string
}

// ConfigFromEnv reads the IMAGE8BIT_* environment variables. Values that do
// not parse as positive integers are logged and replaced by defaults.
func ConfigFromEnv() Config {
	cfg := Config{
		Debug: os.Getenv(EnvLogLevel) == "debug",
	}
	if v := os.Getenv(EnvBlurWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			log.Printf("Ignoring %s=%q: want a positive integer", EnvBlurWorkers, v)
		} else {
			cfg.BlurWorkers = n
		}
	}
	if v := os.Getenv(EnvMaxPixels); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			log.Printf("Ignoring %s=%q: want a positive integer", EnvMaxPixels, v)
		} else {
			cfg.MaxPixels = n
		}
	}
	return cfg.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.BlurWorkers <= 0 {
		c.BlurWorkers = runtime.NumCPU()
	}
	if c.MaxPixels <= 0 {
		c.MaxPixels = raster.DefaultMaxPixels
	}
	if c.Version == "" {
		c.Version = "dev"
	}
	return c
}
