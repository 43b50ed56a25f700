package raster

// RGB is a 24-bit color.
type RGB struct {
	R, G, B uint8
}

// Uint32 packs the color as 0xRRGGBB.
func (c RGB) Uint32() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// RGBFromUint32 unpacks the low 24 bits of v.
func RGBFromUint32(v uint32) RGB {
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// Ramp is the shape of one channel across a palette segment.
type Ramp uint8

const (
	Hold Ramp = iota
	Rise
	Fall
)

func (r Ramp) level(f float64) int {
	switch r {
	case Rise:
		return int(f)
	case Fall:
		return int(0xFF - f)
	default:
		return 0
	}
}

// Segment holds the ramps of the three channels over one third of the cycle.
type Segment struct {
	R, G, B Ramp
}

// Palette maps a counter value in [0, max) onto a three-segment color cycle.
type Palette struct {
	Name     string
	Segments [3]Segment
	// Overflow, when set, is returned for counter values at or past max.
	Overflow *RGB
}

var (
	overflowBlue = RGB{B: 0xFF}

	// EscapePalette fades black to red, red to green, green to blue, then
	// saturates at pure blue.
	EscapePalette = Palette{
		Name: "escape",
		Segments: [3]Segment{
			{R: Rise},
			{R: Fall, G: Rise},
			{G: Fall, B: Rise},
		},
		Overflow: &overflowBlue,
	}

	// ScrollPalette cycles blue to red, red to green, green to blue.
	ScrollPalette = Palette{
		Name: "scroll",
		Segments: [3]Segment{
			{R: Rise, B: Fall},
			{R: Fall, G: Rise},
			{G: Fall, B: Rise},
		},
	}
)

// Cycle returns the color for counter value v of a cycle of length max.
//
// Channel levels are truncated toward zero and packed into 0xRRGGBB before
// being split again, so values outside the cycle wrap instead of clamping.
func (p Palette) Cycle(v, max float64) RGB {
	span := max / 3
	t0 := span
	t1 := 2 * max / 3

	var seg Segment
	var start float64
	switch {
	case v >= 0 && v < t0:
		seg = p.Segments[0]
	case v >= t0 && v < t1:
		seg, start = p.Segments[1], t0
	case p.Overflow == nil || v < max:
		seg, start = p.Segments[2], t1
	default:
		return *p.Overflow
	}

	f := (v - start) * 0xFF / span
	packed := seg.R.level(f)<<16 | seg.G.level(f)<<8 | seg.B.level(f)
	return RGBFromUint32(uint32(packed))
}
