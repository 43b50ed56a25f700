package raster

import (
	"fmt"

	"badgefx/hal"
)

// Writer owns one RGB565 frame and hands it to a Surface on Ready.
type Writer struct {
	w, h int
	buf  []byte
	out  Surface
}

// NewWriter allocates a zeroed w x h frame.
func NewWriter(w, h int, out Surface) *Writer {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("raster: invalid frame size %dx%d", w, h))
	}
	return &Writer{w: w, h: h, buf: make([]byte, w*h*2), out: out}
}

func (w *Writer) Width() int  { return w.w }
func (w *Writer) Height() int { return w.h }

// Buffer returns the live frame bytes.
func (w *Writer) Buffer() []byte { return w.buf }

// Put stores one pixel, low byte first.
func (w *Writer) Put(x, y int, c uint16) {
	if x < 0 || x >= w.w || y < 0 || y >= w.h {
		panic(fmt.Sprintf("raster: put (%d,%d) outside %dx%d frame", x, y, w.w, w.h))
	}
	i := 2 * (x + w.w*y)
	w.buf[i] = byte(c)
	w.buf[i+1] = byte(c >> 8)
}

// FillColumn paints every pixel of column x.
func (w *Writer) FillColumn(x int, c uint16) {
	if x < 0 || x >= w.w {
		panic(fmt.Sprintf("raster: column %d outside %dx%d frame", x, w.w, w.h))
	}
	lo, hi := byte(c), byte(c>>8)
	for i := 2 * x; i < len(w.buf); i += 2 * w.w {
		w.buf[i] = lo
		w.buf[i+1] = hi
	}
}

// Ready publishes the current frame.
func (w *Writer) Ready() error {
	if w.out == nil {
		return nil
	}
	return w.out.Present(w.buf, w.w, w.h, hal.PixelFormatRGB565)
}
