// Package pgm reads and writes 8-bit grayscale images on disk.
//
// The native format is binary PGM ("P5") as described at
// http://netpbm.sourceforge.net/doc/pgm.html, restricted to maxval <= 255.
// The pixel block is stored in the same row-major order the raster package
// uses in memory.
//
// # Foreign Formats
//
// Import converts PNG, JPEG, GIF, BMP and TIFF files to gray images using
// either BT.601 luma or CIE L* lightness. Export writes PNG or JPEG, with
// levels rescaled to the full 0-255 range and optional resizing.
//
// # Caching
//
// Cache keeps decoded images keyed by path and hands out clones, so tool
// calls that mutate an image never corrupt the cached copy.
//
// # Error Handling
//
// Malformed files yield errors wrapping ErrInvalidFormat, ErrInvalidHeader or
// ErrShortPixelData; pixel levels above maxval wrap raster.ErrPixelRange.
// Dimensions beyond the allocation limit wrap raster.ErrResourceExhausted.
package pgm
