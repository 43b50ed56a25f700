package anim

import (
	"fmt"

	"badgefx/badgeos/raster"
)

// FractalMax is the counter range the escape palette is stretched over.
const FractalMax = 0xFF

// Fractal scans the Mandelbrot set once per activation.
type Fractal struct {
	w, h  int
	out   raster.Surface
	state State

	wr      *raster.Writer
	pending bool
	scanned bool
}

func NewFractal(w, h int, out raster.Surface) *Fractal {
	return &Fractal{w: w, h: h, out: out}
}

func (f *Fractal) Name() string  { return "mandelbrot" }
func (f *Fractal) State() State  { return f.state }
func (f *Fractal) Scanned() bool { return f.scanned }

// Buffer returns the current frame, or nil when not active.
func (f *Fractal) Buffer() []byte {
	if f.wr == nil {
		return nil
	}
	return f.wr.Buffer()
}

func (f *Fractal) Activate() error {
	if f.w <= 0 || f.h <= 0 {
		return fmt.Errorf("mandelbrot: invalid canvas %dx%d", f.w, f.h)
	}
	f.wr = raster.NewWriter(f.w, f.h, f.out)
	f.pending = true
	f.scanned = false
	f.state = Active
	return nil
}

// Tick runs the whole scan on the first call after Activate. Each finished
// column is published so the image builds up left to right.
func (f *Fractal) Tick() error {
	if f.state != Active || !f.pending {
		return nil
	}
	f.pending = false

	plane := raster.Plane{W: f.w, H: f.h}
	for x := 0; x < f.w; x++ {
		for y := 0; y < f.h; y++ {
			f.wr.Put(x, y, pixel(plane, x, y))
		}
		if err := f.wr.Ready(); err != nil {
			return fmt.Errorf("mandelbrot: present column %d: %w", x, err)
		}
	}
	if err := f.wr.Ready(); err != nil {
		return fmt.Errorf("mandelbrot: present: %w", err)
	}
	f.scanned = true
	return nil
}

func (f *Fractal) Suspend() {
	f.wr = nil
	f.pending = false
	f.scanned = false
	f.state = Suspended
}

func pixel(plane raster.Plane, x, y int) uint16 {
	if plane.OnAxis(x, y) {
		return raster.AxisColor
	}
	n := raster.Escape(raster.Point{}, plane.Point(x, y), raster.EscapeBound, raster.EscapeBudget)
	return raster.EscapePalette.Cycle(float64(n), FractalMax).RGB565()
}
