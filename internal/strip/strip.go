// Package strip mirrors one row of each frame onto an addressable LED strip.
//
// Without a SPI port the strip is printed to the terminal instead.
package strip

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"badgefx/badgeos/raster"
	"badgefx/hal"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/extra/devices/screen"
	"periph.io/x/host/v3"
)

type Options struct {
	Dev     string
	SpeedHz int
	Pixels  int
	Row     int
}

// Mirror is a raster.Surface that samples Pixels evenly spaced columns of Row.
type Mirror struct {
	mu     sync.Mutex
	drawer display.Drawer
	row    int
	img    *image.NRGBA

	// Hardware is true when frames go to a real strip.
	Hardware bool
}

func New(d display.Drawer, pixels, row int) *Mirror {
	if pixels <= 0 {
		pixels = 1
	}
	return &Mirror{
		drawer: d,
		row:    row,
		img:    image.NewNRGBA(image.Rect(0, 0, pixels, 1)),
	}
}

// Open initialises periph and picks the SPI strip named by o.Dev, falling back
// to a terminal strip when no port can be opened.
func Open(o Options) (*Mirror, error) {
	if o.Pixels <= 0 {
		return nil, fmt.Errorf("strip: pixels must be positive, got %d", o.Pixels)
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("strip: host init: %w", err)
	}

	if o.Dev != "" {
		port, err := spireg.Open(o.Dev)
		if err == nil {
			speed := o.SpeedHz
			if speed <= 0 {
				speed = 2400000
			}
			d, err := nrzled.NewSPI(port, &nrzled.Opts{
				NumPixels: o.Pixels,
				Channels:  3,
				Freq:      physic.Frequency(speed) * physic.Hertz,
			})
			if err == nil {
				_ = d.Halt()
				m := New(d, o.Pixels, o.Row)
				m.Hardware = true
				return m, nil
			}
			_ = port.Close()
		}
	}
	return New(screen.New(o.Pixels), o.Pixels, o.Row), nil
}

func (m *Mirror) Present(buf []byte, w, h int, f hal.PixelFormat) error {
	if f != hal.PixelFormatRGB565 {
		return fmt.Errorf("strip: unsupported format %s", f)
	}
	if w <= 0 || h <= 0 || len(buf) < w*h*2 {
		return fmt.Errorf("strip: short frame %dx%d (%d bytes)", w, h, len(buf))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	row := m.row
	if row >= h {
		row = h - 1
	}
	if row < 0 {
		row = 0
	}

	n := m.img.Bounds().Dx()
	for i := 0; i < n; i++ {
		x := (2*i + 1) * w / (2 * n)
		off := 2 * (x + w*row)
		c := raster.Expand565(uint16(buf[off]) | uint16(buf[off+1])<<8)
		m.img.SetNRGBA(i, 0, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
	}
	return m.drawer.Draw(m.drawer.Bounds(), m.img, image.Point{})
}

// Close turns the strip off.
func (m *Mirror) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.drawer.Halt()
}
