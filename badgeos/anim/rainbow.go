package anim

import (
	"fmt"

	"badgefx/badgeos/raster"
)

// PhaseStep is how far the rainbow scrolls per frame.
const PhaseStep = 10

// DefaultMaxCounter is the badge's background cycle length.
const DefaultMaxCounter = 600

// Rainbow scrolls vertical bands of the scroll palette across the canvas.
type Rainbow struct {
	w, h  int
	max   int
	out   raster.Surface
	state State

	wr    *raster.Writer
	phase int
}

// NewRainbow returns a rainbow whose palette cycle spans maxCounter columns.
func NewRainbow(w, h, maxCounter int, out raster.Surface) *Rainbow {
	return &Rainbow{w: w, h: h, max: maxCounter, out: out}
}

func (r *Rainbow) Name() string { return "rainbow" }
func (r *Rainbow) State() State { return r.state }
func (r *Rainbow) Phase() int   { return r.phase }

// Buffer returns the current frame, or nil when not active.
func (r *Rainbow) Buffer() []byte {
	if r.wr == nil {
		return nil
	}
	return r.wr.Buffer()
}

func (r *Rainbow) Activate() error {
	if r.w <= 0 || r.h <= 0 {
		return fmt.Errorf("rainbow: invalid canvas %dx%d", r.w, r.h)
	}
	if r.max <= 0 {
		return fmt.Errorf("rainbow: invalid max counter %d", r.max)
	}
	r.wr = raster.NewWriter(r.w, r.h, r.out)
	r.phase = 0
	r.state = Active
	return nil
}

func (r *Rainbow) Tick() error {
	if r.state != Active {
		return nil
	}
	r.phase -= PhaseStep

	for x := 0; x < r.w; x++ {
		v := ((x+r.phase)%r.w + r.w) % r.w
		c := raster.ScrollPalette.Cycle(float64(v), float64(r.max))
		r.wr.FillColumn(x, c.RGB565())
	}
	if err := r.wr.Ready(); err != nil {
		return fmt.Errorf("rainbow: present: %w", err)
	}
	return nil
}

func (r *Rainbow) Suspend() {
	r.wr = nil
	r.phase = 0
	r.state = Suspended
}
