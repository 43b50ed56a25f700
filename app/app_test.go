package app

import (
	"errors"
	"testing"

	"badgefx/badgeos/kernel"
	"badgefx/badgeos/proto"
	"badgefx/badgeos/raster"
	"badgefx/hal"
)

type testFB struct {
	w, h     int
	buf      []byte
	presents int
}

func (f *testFB) Width() int              { return f.w }
func (f *testFB) Height() int             { return f.h }
func (f *testFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *testFB) StrideBytes() int        { return f.w * 2 }
func (f *testFB) Buffer() []byte          { return f.buf }
func (f *testFB) Present() error {
	f.presents++
	return nil
}

func (f *testFB) ClearRGB(r, g, b uint8) {
	p := raster.RGB565(r, g, b)
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i] = byte(p)
		f.buf[i+1] = byte(p >> 8)
	}
}

func (f *testFB) at(x, y int) uint16 {
	i := y*f.w*2 + x*2
	return uint16(f.buf[i]) | uint16(f.buf[i+1])<<8
}

type testHAL struct {
	fb    *testFB
	lines []string
	keys  chan hal.KeyEvent
	ticks chan uint64
}

func newTestHAL(w, h int) *testHAL {
	return &testHAL{
		fb:    &testFB{w: w, h: h, buf: make([]byte, w*h*2)},
		keys:  make(chan hal.KeyEvent, 8),
		ticks: make(chan uint64, 8),
	}
}

func (h *testHAL) Logger() hal.Logger   { return h }
func (h *testHAL) Display() hal.Display { return h }
func (h *testHAL) Input() hal.Input     { return h }
func (h *testHAL) Time() hal.Time       { return h }

func (h *testHAL) Framebuffer() hal.Framebuffer { return h.fb }
func (h *testHAL) Keyboard() hal.Keyboard       { return h }
func (h *testHAL) Events() <-chan hal.KeyEvent  { return h.keys }
func (h *testHAL) Ticks() <-chan uint64         { return h.ticks }
func (h *testHAL) WriteLineString(s string)     { h.lines = append(h.lines, s) }
func (h *testHAL) WriteLineBytes(b []byte)      { h.lines = append(h.lines, string(b)) }

func TestRainbowAutostartDrawsCentred(t *testing.T) {
	h := newTestHAL(16, 6)
	cfg := DefaultConfig()
	cfg.CanvasWidth, cfg.CanvasHeight = 12, 2
	cfg.MaxBGCounter = 12
	cfg.Autostart = proto.AppRainbow
	cfg.RainbowInterval = 1

	var mirror raster.Capture
	cfg.Mirror = &mirror
	step := New(h, cfg)

	if err := step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if mirror.Presents() != 1 {
		t.Fatalf("expected first rainbow frame, got %d", mirror.Presents())
	}
	// The 12x2 canvas sits at (2,2) on the 16x6 display.
	if got := h.fb.at(2, 2); got != 0x780F {
		t.Fatalf("expected 0x780f at canvas origin, got %#04x", got)
	}
	if got := h.fb.at(1, 2); got != 0 {
		t.Fatalf("expected border untouched, got %#04x", got)
	}

	h.ticks <- 1
	h.ticks <- 2
	if err := step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if mirror.Presents() != 2 {
		t.Fatalf("expected one frame per due wake, got %d", mirror.Presents())
	}

	h.keys <- hal.KeyEvent{Code: hal.KeyF1, Press: true}
	for seq := uint64(3); seq < 8; seq++ {
		h.ticks <- seq
		if err := step(); err != nil {
			t.Fatalf("step: %v", err)
		}
	}
	if got := h.fb.at(2, 2); got == 0x780F {
		t.Fatal("expected the rainbow to be replaced by the menu")
	}
	found := false
	for _, l := range h.lines {
		if l == "launcher: rainbow exited" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected exit to be logged, got %q", h.lines)
	}
}

type panicTask struct{}

func (panicTask) Step(*kernel.Context) { panic("bad pixel") }

func TestPanicHaltsAndPaints(t *testing.T) {
	h := newTestHAL(64, 32)
	cfg := DefaultConfig()
	cfg.CanvasWidth, cfg.CanvasHeight = 4, 4
	s := newSystem(h, cfg)
	s.k.AddTask(panicTask{})

	err := s.step()
	if !errors.Is(err, hal.ErrHalted) {
		t.Fatalf("expected ErrHalted, got %v", err)
	}
	if err := s.step(); !errors.Is(err, hal.ErrHalted) {
		t.Fatalf("expected the system to stay halted, got %v", err)
	}
	if got := h.fb.at(63, 31); got != 0xFFFF {
		t.Fatalf("expected white panic screen, got %#04x", got)
	}
	if len(h.lines) == 0 || h.lines[0] != "badgefx panic:" {
		t.Fatalf("expected panic report in the log, got %q", h.lines)
	}
}

func TestEachSystemHaltsOnItsOwnPanic(t *testing.T) {
	for i := 0; i < 2; i++ {
		h := newTestHAL(64, 32)
		cfg := DefaultConfig()
		cfg.CanvasWidth, cfg.CanvasHeight = 4, 4
		s := newSystem(h, cfg)
		s.k.AddTask(panicTask{})

		if err := s.step(); !errors.Is(err, hal.ErrHalted) {
			t.Fatalf("system %d: expected ErrHalted, got %v", i, err)
		}
		if got := h.fb.at(63, 31); got != 0xFFFF {
			t.Fatalf("system %d: expected panic screen, got %#04x", i, got)
		}
	}
}
