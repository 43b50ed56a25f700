package app

import (
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"badgefx/badgeos/fbtext"
	"badgefx/badgeos/kernel"
	"badgefx/hal"
)

var (
	panicBG = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	panicFG = color.RGBA{A: 255}
)

func installPanicHandler(k *kernel.Kernel, h hal.HAL, halt func(kernel.PanicInfo)) {
	k.SetPanicHandler(func(info kernel.PanicInfo) {
		halt(info)

		lines := panicReport(info)
		if l := h.Logger(); l != nil {
			for _, line := range lines {
				l.WriteLineString(line)
			}
		}

		disp := h.Display()
		if disp == nil {
			return
		}
		fb := disp.Framebuffer()
		if fb == nil {
			return
		}
		drawPanic(fbtext.New(fb), fb.Width(), fb.Height(), lines)
	})
}

func panicReport(info kernel.PanicInfo) []string {
	lines := []string{
		"badgefx panic:",
		fmt.Sprintf("task: %d", info.TaskID),
		fmt.Sprintf("panic: %v", info.Value),
	}
	if len(info.Stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	lines = append(lines, "stack:")
	for _, line := range strings.Split(string(info.Stack), "\n") {
		if line == "" {
			continue
		}
		lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
	}
	return lines
}

func drawPanic(d *fbtext.Display, w, h int, lines []string) {
	d.Clear(panicBG)

	fontWidth := fbtext.CharWidth()
	fontHeight := fbtext.LineHeight()
	if fontWidth <= 0 || fontHeight <= 0 {
		_ = d.Display()
		return
	}
	cols := int16(w) / fontWidth
	if cols <= 0 {
		cols = 1
	}

	y := int16(0)
	for _, line := range lines {
		for len(line) > 0 {
			if y+fontHeight > int16(h) {
				_ = d.Display()
				return
			}
			chunk, rest := takeRunes(line, cols)
			d.WriteLine(0, y, chunk, panicFG)
			y += fontHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = d.Display()
}

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if int64(len(s)) <= int64(n) {
		return s, ""
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
