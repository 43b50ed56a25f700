package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"

	"badgefx/badgeos/anim"
	"badgefx/badgeos/raster"
)

// Frame is one captured RGB565 canvas.
type Frame struct {
	Buf      []byte
	W, H     int
	Presents int
}

func render(name string, w, h, maxV, ticks int) (Frame, error) {
	var capt raster.Capture
	var drv anim.Driver
	switch name {
	case "mandelbrot":
		drv = anim.NewFractal(w, h, &capt)
	case "rainbow":
		if maxV <= 0 {
			maxV = anim.DefaultMaxCounter
		}
		drv = anim.NewRainbow(w, h, maxV, &capt)
	default:
		return Frame{}, fmt.Errorf("unknown app %q", name)
	}

	if err := drv.Activate(); err != nil {
		return Frame{}, err
	}
	defer drv.Suspend()
	for i := 0; i < ticks; i++ {
		if err := drv.Tick(); err != nil {
			return Frame{}, fmt.Errorf("tick %d: %w", i, err)
		}
	}

	buf, fw, fh := capt.Frame()
	if len(buf) == 0 {
		return Frame{}, fmt.Errorf("%s produced no frame", name)
	}
	return Frame{Buf: buf, W: fw, H: fh, Presents: capt.Presents()}, nil
}

// Image expands the frame to 8 bits per channel.
func (f Frame) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.W, f.H))
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			i := 2 * (x + f.W*y)
			c := raster.Expand565(uint16(f.Buf[i]) | uint16(f.Buf[i+1])<<8)
			img.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return img
}

func writePNG(w io.Writer, f Frame, scale int) error {
	var img image.Image = f.Image()
	if scale > 1 {
		img = resize.Resize(uint(f.W*scale), uint(f.H*scale), img, resize.NearestNeighbor)
	}
	return png.Encode(w, img)
}

func writePNGFile(path string, f Frame, scale int) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writePNG(file, f, scale); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// writeRaw stores the frame bytes exactly as the display receives them.
func writeRaw(w io.Writer, f Frame) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	if _, err := enc.Write(f.Buf); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

func writeRawFile(path string, f Frame) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeRaw(file, f); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func writePalette(w io.Writer, name string, maxV int) error {
	var p raster.Palette
	switch name {
	case "escape":
		p = raster.EscapePalette
		if maxV <= 0 {
			maxV = anim.FractalMax
		}
	case "scroll":
		p = raster.ScrollPalette
		if maxV <= 0 {
			maxV = anim.DefaultMaxCounter
		}
	default:
		return fmt.Errorf("unknown palette %q", name)
	}

	for v := 0; v <= maxV; v++ {
		c := p.Cycle(float64(v), float64(maxV))
		cf, _ := colorful.MakeColor(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
		if _, err := fmt.Fprintf(w, "%4d %s 0x%04X\n", v, cf.Hex(), c.RGB565()); err != nil {
			return err
		}
	}
	return nil
}
