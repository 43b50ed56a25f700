// Package fbtext draws tinyfont text onto a hal.Framebuffer.
package fbtext

import (
	"image/color"

	"badgefx/badgeos/raster"
	"badgefx/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Font is the face used for menus and the panic screen.
var Font tinyfont.Fonter = &tinyfont.TomThumb

// Display adapts an RGB565 framebuffer to drivers.Displayer.
type Display struct {
	fb hal.Framebuffer
}

var _ drivers.Displayer = (*Display)(nil)

func New(fb hal.Framebuffer) *Display {
	return &Display{fb: fb}
}

func (d *Display) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *Display) SetPixel(x, y int16, c color.RGBA) {
	buf, ok := d.buffer()
	if !ok {
		return
	}
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	pixel := raster.RGB565(c.R, c.G, c.B)
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

// Display presents the framebuffer.
func (d *Display) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

func (d *Display) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	buf, ok := d.buffer()
	if !ok {
		return nil
	}

	w, h := d.fb.Width(), d.fb.Height()
	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	pixel := raster.RGB565(c.R, c.G, c.B)
	lo, hi := byte(pixel), byte(pixel>>8)
	stride := d.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			buf[off] = lo
			buf[off+1] = hi
		}
	}
	return nil
}

func (d *Display) SetScroll(line int16) {
	_ = line
}

func (d *Display) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}

// Clear fills the whole framebuffer with c.
func (d *Display) Clear(c color.RGBA) {
	if d.fb != nil {
		d.fb.ClearRGB(c.R, c.G, c.B)
	}
}

// LineHeight is the vertical advance of Font in pixels.
func LineHeight() int16 {
	return int16(Font.GetYAdvance())
}

// CharWidth is the advance of one Font glyph.
func CharWidth() int16 {
	_, w := tinyfont.LineWidth(Font, "0")
	return int16(w)
}

// WriteLine draws s with its top edge at y.
func (d *Display) WriteLine(x, y int16, s string, c color.RGBA) {
	tinyfont.WriteLine(d, Font, x, y+LineHeight()-1, s, c)
}

func (d *Display) buffer() ([]byte, bool) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return nil, false
	}
	buf := d.fb.Buffer()
	return buf, buf != nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
