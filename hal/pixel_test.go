//go:build !tinygo

package hal

import "testing"

func TestRGB565RoundTripExtremes(t *testing.T) {
	cases := []struct {
		r, g, b uint8
		want    uint16
	}{
		{0, 0, 0, 0x0000},
		{0xFF, 0xFF, 0xFF, 0xFFFF},
		{0xFF, 0, 0, 0xF800},
		{0, 0xFF, 0, 0x07E0},
		{0, 0, 0xFF, 0x001F},
	}
	for _, tc := range cases {
		got := rgb565(tc.r, tc.g, tc.b)
		if got != tc.want {
			t.Fatalf("rgb565(%d,%d,%d): expected %#04x, got %#04x", tc.r, tc.g, tc.b, tc.want, got)
		}
		r, g, b := rgb888From565(got)
		if r != tc.r || g != tc.g || b != tc.b {
			t.Fatalf("rgb888From565(%#04x): expected %d,%d,%d, got %d,%d,%d", got, tc.r, tc.g, tc.b, r, g, b)
		}
	}
}

func TestExpandRGB565LittleEndian(t *testing.T) {
	src := []byte{0x00, 0xF8, 0x1F, 0x00}
	dst := make([]byte, 8)
	ExpandRGB565(dst, src)

	want := []byte{0xFF, 0x00, 0x00, 0xFF, 0x00, 0x00, 0xFF, 0xFF}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("byte %d: expected %#02x, got %#02x", i, want[i], dst[i])
		}
	}
}

func TestHostFramebufferClearWritesLowByteFirst(t *testing.T) {
	fb := newHostFramebuffer(3, 2)
	if fb.StrideBytes() != 6 {
		t.Fatalf("expected stride 6, got %d", fb.StrideBytes())
	}
	fb.ClearRGB(0xFF, 0, 0)

	buf := fb.Buffer()
	if len(buf) != 12 {
		t.Fatalf("expected 12 bytes, got %d", len(buf))
	}
	for i := 0; i < len(buf); i += 2 {
		if buf[i] != 0x00 || buf[i+1] != 0xF8 {
			t.Fatalf("pixel %d: expected 00 f8, got %02x %02x", i/2, buf[i], buf[i+1])
		}
	}

	if err := fb.Present(); err != nil {
		t.Fatalf("present: %v", err)
	}
	if fb.presentCount() != 1 {
		t.Fatalf("expected 1 present, got %d", fb.presentCount())
	}
}

func TestFunctionKeys(t *testing.T) {
	for _, k := range []KeyCode{KeyF1, KeyF2, KeyF3, KeyF4, KeyF5} {
		if !k.IsFunction() {
			t.Fatalf("expected %d to be a function key", k)
		}
	}
	for _, k := range []KeyCode{KeyUnknown, KeyEnter, KeyEscape, KeyUp} {
		if k.IsFunction() {
			t.Fatalf("expected %d not to be a function key", k)
		}
	}
}

func TestNewHostDefaultsToBadgeCanvas(t *testing.T) {
	h := newHost(Options{})
	fb := h.Display().Framebuffer()
	if fb.Width() != 428 || fb.Height() != 142 {
		t.Fatalf("expected 428x142, got %dx%d", fb.Width(), fb.Height())
	}
	if fb.Format() != PixelFormatRGB565 {
		t.Fatalf("expected rgb565, got %s", fb.Format())
	}
}
