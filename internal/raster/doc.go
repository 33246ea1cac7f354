// Package raster implements in-memory 8-bit grayscale images and the
// operations defined on them.
//
// An Image owns a flat, row-major pixel buffer with one byte per pixel:
// pixel (x, y) lives at index y*width + x. The layout is private to the
// package. Point and geometric operations go through Pixel and SetPixel,
// which drive the per-image access counters; bulk operations such as Blur
// and Stats add their counts in one step.
//
// # Coordinate System
//
// Coordinates are 0-based with the origin at the top-left corner:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - Rectangles are given as an origin (x, y) plus width and height
//
// # Contracts and Errors
//
// The package distinguishes caller bugs from runtime failures:
//   - Contract violations (coordinates outside the image, negative blur
//     windows, nil images) panic with a message prefixed by "raster:".
//     Nothing is clamped silently.
//   - Allocation failures (an image or summed-area table that is too large)
//     are returned as errors wrapping ErrResourceExhausted. The input image
//     is left unmodified.
//
// # Blur
//
// Blur replaces every pixel by the rounded mean of the window
// [x-dx, x+dx] x [y-dy, y+dy] clipped to the image. It runs in O(width*height)
// regardless of the window size by querying a SummedAreaTable built from
// a snapshot of the pixels before any of them is overwritten. Rows may be
// processed by several workers since the table is read-only once built.
//
// # Thread Safety
//
// Distinct images may be used concurrently. A single image must not be
// mutated concurrently by the caller. Access counters are atomic.
package raster
