// Package server implements the MCP (Model Context Protocol) server for 8-bit
// graymap tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the raster and pgm
// packages through the MCP protocol, so that MCP-compatible clients can
// inspect, filter and transform PGM images on the local file system.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Inspection:
//   - image_load: Dimensions, maxval, level range and file size
//   - image_stats: Level range with access counts
//   - image_locate: Find a sub-image
//
// Filters (in place):
//   - image_blur: Clipped-window mean blur
//   - image_negative, image_threshold, image_brighten
//
// Geometry:
//   - image_rotate, image_mirror, image_crop
//   - image_paste, image_blend
//
// Files:
//   - image_create: New black image
//   - image_import: PNG/JPEG/GIF/BMP/TIFF to PGM
//   - image_export: PGM to PNG/JPEG
//
// Tools that produce an image write it to "output", which defaults to the
// input "path". The result reports the output path, the new dimensions and
// the pixel accesses the operation performed.
//
// # Image Caching
//
// Decoded PGM files are cached by path. Every call works on a private copy,
// and writing a file evicts its cached entry.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// Calls that break a raster precondition, such as a negative blur radius or
// a crop rectangle outside the image, are reported the same way.
//
// # Usage
//
//	srv := server.New(server.ConfigFromEnv())
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
