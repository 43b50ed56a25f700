package anim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"badgefx/badgeos/raster"
	"badgefx/hal"
)

type recorder struct {
	frames [][]byte
	err    error
}

func (r *recorder) Present(buf []byte, w, h int, f hal.PixelFormat) error {
	r.frames = append(r.frames, append([]byte(nil), buf...))
	return r.err
}

func px(buf []byte, w, x, y int) uint16 {
	i := 2 * (x + w*y)
	return uint16(buf[i]) | uint16(buf[i+1])<<8
}

func TestFractal4x4(t *testing.T) {
	var rec recorder
	f := NewFractal(4, 4, &rec)
	assert.Equal(t, Inactive, f.State())

	require.NoError(t, f.Activate())
	assert.Equal(t, Active, f.State())
	assert.False(t, f.Scanned())
	require.NoError(t, f.Tick())
	assert.True(t, f.Scanned())

	// One present per column plus the final one.
	require.Len(t, rec.frames, 5)

	want := [4][4]uint16{
		{0x1800, 0x1800, 0x0000, 0x1800},
		{0x1800, 0x001F, 0x0000, 0x1800},
		{0x0000, 0x0000, 0x0000, 0x0000},
		{0x1800, 0x001F, 0x0000, 0x1800},
	}
	last := rec.frames[4]
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, want[y][x], px(last, 4, x, y), "(%d,%d)", x, y)
		}
	}
	assert.Equal(t, []byte{0x00, 0x18}, last[0:2])

	first := rec.frames[0]
	assert.Equal(t, uint16(0x1800), px(first, 4, 0, 0))
	assert.Equal(t, uint16(0), px(first, 4, 1, 0), "column 1 is drawn after the first present")

	require.NoError(t, f.Tick())
	assert.Len(t, rec.frames, 5, "later ticks are idle")
}

func TestFractalSuspendStartsOver(t *testing.T) {
	var rec recorder
	f := NewFractal(4, 4, &rec)
	require.NoError(t, f.Activate())
	require.NoError(t, f.Tick())

	f.Suspend()
	assert.Equal(t, Suspended, f.State())
	assert.Nil(t, f.Buffer())
	assert.False(t, f.Scanned())
	require.NoError(t, f.Tick())
	assert.Len(t, rec.frames, 5)

	require.NoError(t, f.Activate())
	assert.Equal(t, make([]byte, 32), f.Buffer())
	require.NoError(t, f.Tick())
	assert.Len(t, rec.frames, 10)
	assert.True(t, f.Scanned())
}

func TestFractalPresentError(t *testing.T) {
	boom := errors.New("boom")
	f := NewFractal(3, 3, &recorder{err: boom})
	require.NoError(t, f.Activate())
	err := f.Tick()
	assert.ErrorIs(t, err, boom)
	assert.False(t, f.Scanned())
}

func TestFractalInvalidSize(t *testing.T) {
	f := NewFractal(0, 4, nil)
	assert.Error(t, f.Activate())
	assert.Equal(t, Inactive, f.State())
}

func TestRainbowScrolls(t *testing.T) {
	var rec recorder
	r := NewRainbow(12, 2, 12, &rec)
	require.NoError(t, r.Activate())
	assert.Equal(t, make([]byte, 12*2*2), r.Buffer())
	assert.Equal(t, 0, r.Phase())

	require.NoError(t, r.Tick())
	assert.Equal(t, -10, r.Phase())
	require.Len(t, rec.frames, 1)
	assert.Equal(t, []byte{0x0F, 0x78}, rec.frames[0][0:2])

	first := []uint16{0x780F, 0xB807, 0xF800, 0xB9E0, 0x7BE0, 0x3DE0, 0x07E0, 0x05E7, 0x03EF, 0x01F7, 0x001F, 0x3817}
	for x, c := range first {
		assert.Equal(t, c, px(rec.frames[0], 12, x, 0), "x=%d", x)
		assert.Equal(t, c, px(rec.frames[0], 12, x, 1), "x=%d", x)
	}

	require.NoError(t, r.Tick())
	assert.Equal(t, -20, r.Phase())
	// Two steps of 10 on a 12 column cycle shift the bands by 20 mod 12.
	for x := 0; x < 12; x++ {
		assert.Equal(t, first[(x+2)%12], px(rec.frames[1], 12, x, 0), "x=%d", x)
	}
}

func TestRainbowWiderThanCycle(t *testing.T) {
	var rec recorder
	r := NewRainbow(428, 1, 100, &rec)
	require.NoError(t, r.Activate())
	require.NoError(t, r.Tick())
	require.Len(t, rec.frames, 1)

	// Columns whose counter runs past the cycle keep the wrapped channels.
	cols := map[int]uint16{
		0:   0xF44F,
		10:  0x001F,
		50:  0xC980,
		110: 0x001F,
		200: 0xFA95,
		300: 0xFAB5,
		427: 0xF46F,
	}
	for x, c := range cols {
		assert.Equal(t, c, px(rec.frames[0], 428, x, 0), "x=%d", x)
	}
}

func TestRainbowLifecycle(t *testing.T) {
	var rec recorder
	r := NewRainbow(12, 1, DefaultMaxCounter, &rec)

	require.NoError(t, r.Tick())
	assert.Empty(t, rec.frames, "inactive rainbow does not draw")

	require.NoError(t, r.Activate())
	require.NoError(t, r.Tick())
	require.NoError(t, r.Tick())
	r.Suspend()
	assert.Equal(t, Suspended, r.State())
	assert.Equal(t, 0, r.Phase())
	assert.Nil(t, r.Buffer())

	require.NoError(t, r.Tick())
	assert.Len(t, rec.frames, 2)

	require.NoError(t, r.Activate())
	require.NoError(t, r.Tick())
	assert.Equal(t, -10, r.Phase())
	assert.Equal(t, rec.frames[0], rec.frames[2])

	assert.Error(t, NewRainbow(12, 1, 0, nil).Activate())
}

func TestDriversShareInterface(t *testing.T) {
	var capt raster.Capture
	drivers := []Driver{NewFractal(2, 2, &capt), NewRainbow(2, 2, 6, &capt)}
	names := []string{"mandelbrot", "rainbow"}
	for i, d := range drivers {
		assert.Equal(t, names[i], d.Name())
		require.NoError(t, d.Activate())
		require.NoError(t, d.Tick())
	}
	assert.Equal(t, 2+1+1, capt.Presents())
	assert.Equal(t, "suspended", Suspended.String())
}
