package raster

// RGB565 keeps the top 5 bits of red and blue and the top 6 bits of green.
func RGB565(r, g, b uint8) uint16 {
	return uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b&0xF8)>>3
}

// RGB565 quantizes the color.
func (c RGB) RGB565() uint16 {
	return RGB565(c.R, c.G, c.B)
}

// Expand565 widens a packed pixel back to 8 bits per channel, replicating the
// high bits into the low ones. Previews only.
func Expand565(p uint16) RGB {
	r := uint8(p>>11) & 0x1F
	g := uint8(p>>5) & 0x3F
	b := uint8(p) & 0x1F
	return RGB{R: r<<3 | r>>2, G: g<<2 | g>>4, B: b<<3 | b>>2}
}
