// Package raster turns pixel coordinates into RGB565 frames.
//
// A frame is a W*H*2 byte buffer, row-major, low byte of each pixel first.
// The pieces compose as Plane -> Escape -> Palette -> RGB565 -> Writer -> Surface;
// each step is a pure function except the Writer, which owns the buffer.
package raster
