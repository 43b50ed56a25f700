package raster

import (
	"fmt"
	"sync"

	"badgefx/hal"
)

// Surface receives finished frames. Implementations must not retain buf.
type Surface interface {
	Present(buf []byte, w, h int, f hal.PixelFormat) error
}

// FramebufferSurface copies frames centred onto a hal.Framebuffer and presents it.
type FramebufferSurface struct {
	FB hal.Framebuffer
}

func (s FramebufferSurface) Present(buf []byte, w, h int, f hal.PixelFormat) error {
	fb := s.FB
	if fb == nil {
		return nil
	}
	if f != fb.Format() {
		return fmt.Errorf("raster: frame format %s does not match framebuffer %s", f, fb.Format())
	}
	bpp := f.BytesPerPixel()
	if len(buf) < w*h*bpp {
		return fmt.Errorf("raster: frame buffer %d bytes, want %d", len(buf), w*h*bpp)
	}

	dst := fb.Buffer()
	stride := fb.StrideBytes()
	fw, fh := fb.Width(), fb.Height()

	// Clip the canvas to the framebuffer when it is larger.
	ox, oy := (fw-w)/2, (fh-h)/2
	sx, sy := 0, 0
	if ox < 0 {
		sx, ox = -ox, 0
	}
	if oy < 0 {
		sy, oy = -oy, 0
	}
	cw := min(w-sx, fw-ox)
	ch := min(h-sy, fh-oy)

	for y := 0; y < ch; y++ {
		src := buf[((sy+y)*w+sx)*bpp:]
		row := dst[(oy+y)*stride+ox*bpp:]
		copy(row[:cw*bpp], src[:cw*bpp])
	}
	return fb.Present()
}

// Fanout presents each frame to every surface in order.
type Fanout []Surface

func (s Fanout) Present(buf []byte, w, h int, f hal.PixelFormat) error {
	var first error
	for _, out := range s {
		if out == nil {
			continue
		}
		if err := out.Present(buf, w, h, f); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Capture keeps a copy of the last presented frame.
type Capture struct {
	mu       sync.Mutex
	buf      []byte
	w, h     int
	presents int
}

func (c *Capture) Present(buf []byte, w, h int, f hal.PixelFormat) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buf = append(c.buf[:0], buf[:w*h*f.BytesPerPixel()]...)
	c.w, c.h = w, h
	c.presents++
	return nil
}

// Frame returns a copy of the last frame and its size.
func (c *Capture) Frame() (buf []byte, w, h int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]byte(nil), c.buf...), c.w, c.h
}

// Presents returns how many frames have been presented.
func (c *Capture) Presents() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.presents
}

// At returns the packed pixel at (x, y) of the last frame.
func (c *Capture) At(x, y int) uint16 {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := 2 * (x + c.w*y)
	return uint16(c.buf[i]) | uint16(c.buf[i+1])<<8
}
