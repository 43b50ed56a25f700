package raster

import "fmt"

// AxisColor is drawn on the graph axes instead of an escape-time color.
const AxisColor uint16 = 0x0000

// Point is a value on the complex plane.
type Point struct {
	Re, Im float64
}

// Plane maps a W x H pixel grid onto the complex plane with the origin at the
// grid centre and one unit spanning H/2 pixels.
type Plane struct {
	W, H int
}

// Graph returns graph coordinates: x grows right, y grows up.
func (p Plane) Graph(x, y int) (gx, gy float64) {
	return float64(x) - float64(p.W)/2, float64(p.H)/2 - float64(y)
}

// OnAxis reports whether the pixel lies on either graph axis.
func (p Plane) OnAxis(x, y int) bool {
	gx, gy := p.Graph(x, y)
	return gx == 0 || gy == 0
}

// Contains reports whether the pixel is inside the grid.
func (p Plane) Contains(x, y int) bool {
	return x >= 0 && x < p.W && y >= 0 && y < p.H
}

// Point returns the complex value for a pixel.
func (p Plane) Point(x, y int) Point {
	if !p.Contains(x, y) {
		panic(fmt.Sprintf("raster: pixel (%d,%d) outside %dx%d plane", x, y, p.W, p.H))
	}
	gx, gy := p.Graph(x, y)
	h := float64(p.H)
	return Point{Re: 2 * gx / h, Im: 2 * gy / h}
}
