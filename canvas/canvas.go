// Package canvas owns the RGBA pixel grid and the brush primitives that
// mutate it. The buffer is a contiguous row-major byte slice with four
// channels per pixel; all mutation goes through Clear or the stamping
// operations, which clip to the grid before touching memory.
package canvas

import "math"

// Color stores explicit 8-bit RGBA channels
type Color struct {
	R, G, B, A uint8
}

// Point represents a 2D pixel coordinate
type Point struct {
	X, Y int
}

// Framebuffer is a width*height RGBA pixel grid
type Framebuffer struct {
	width      int
	height     int
	background Color
	pix        []byte // len == width*height*4, row-major
}

// New creates a framebuffer cleared to the background color
func New(width, height int, background Color) *Framebuffer {
	f := &Framebuffer{
		width:      width,
		height:     height,
		background: background,
		pix:        make([]byte, width*height*4),
	}
	f.Clear()
	return f
}

// Width returns the buffer width in pixels
func (f *Framebuffer) Width() int {
	return f.width
}

// Height returns the buffer height in pixels
func (f *Framebuffer) Height() int {
	return f.height
}

// Pix returns the raw RGBA bytes. The slice is owned by the framebuffer;
// callers must not retain it across mutations.
func (f *Framebuffer) Pix() []byte {
	return f.pix
}

// At returns the color at (x, y), or the zero Color when out of bounds
func (f *Framebuffer) At(x, y int) Color {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return Color{}
	}
	i := (y*f.width + x) * 4
	return Color{f.pix[i], f.pix[i+1], f.pix[i+2], f.pix[i+3]}
}

// Clear overwrites every pixel with the background color
func (f *Framebuffer) Clear() {
	for i := 0; i < len(f.pix); i += 4 {
		f.pix[i] = f.background.R
		f.pix[i+1] = f.background.G
		f.pix[i+2] = f.background.B
		f.pix[i+3] = f.background.A
	}
}

// PaintDisc stamps a filled disc centered at (cx, cy). Pixels exactly on
// the radius are painted; radius 0 paints the single center pixel. The
// bounding box is clipped to the grid, so out-of-range centers are safe.
func (f *Framebuffer) PaintDisc(cx, cy, radius int, c Color) {
	r2 := radius * radius
	x0 := max(cx-radius, 0)
	x1 := min(cx+radius, f.width-1)
	y0 := max(cy-radius, 0)
	y1 := min(cy+radius, f.height-1)

	for y := y0; y <= y1; y++ {
		dy := y - cy
		dy2 := dy * dy
		rowBase := y * f.width * 4
		for x := x0; x <= x1; x++ {
			dx := x - cx
			if dx*dx+dy2 > r2 {
				continue
			}
			i := rowBase + x*4
			f.pix[i] = c.R
			f.pix[i+1] = c.G
			f.pix[i+2] = c.B
			f.pix[i+3] = c.A
		}
	}
}

// PaintLine stamps discs along the segment from (x0, y0) to (x1, y1),
// one per step on the dominant axis, endpoints included. This is stamp
// interpolation, not a minimal line algorithm: consecutive discs overlap
// so a drag stroke has no gaps.
func (f *Framebuffer) PaintLine(x0, y0, x1, y1, radius int, c Color) {
	dx := x1 - x0
	dy := y1 - y0
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		f.PaintDisc(x0, y0, radius, c)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := x0 + int(math.Round(t*float64(dx)))
		y := y0 + int(math.Round(t*float64(dy)))
		f.PaintDisc(x, y, radius, c)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
