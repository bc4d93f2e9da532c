// Package framebuffer provides the CPU render target: a flat RGB8 color
// buffer and float32 depth buffer, plus an optional shadow depth buffer.
package framebuffer

import (
	"fmt"
	"math"
)

// FarDepth is the cleared depth value; any rendered fragment is nearer.
var FarDepth = float32(math.Inf(1))

// Buffer is a width x height render target. The color buffer holds 3 bytes
// per pixel in row-major order with the origin at the top-left; the depth
// and shadow buffers hold one float32 per pixel. Color and depth never
// alias: they are independent allocations addressed through the same
// (x, y) helpers.
type Buffer struct {
	Width  int
	Height int

	color  []uint8
	depth  []float32
	shadow []float32
}

// New allocates a cleared buffer. The shadow plane is only allocated when
// requested; ShadowDepth returns nil without it.
func New(width, height int, withShadow bool) (*Buffer, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("invalid buffer size %dx%d", width, height)
	}

	b := &Buffer{
		Width:  width,
		Height: height,
		color:  make([]uint8, width*height*3),
		depth:  make([]float32, width*height),
	}
	if withShadow {
		b.shadow = make([]float32, width*height)
	}
	b.Clear()
	b.ClearShadow()
	return b, nil
}

// Clear resets the color buffer to black and the depth buffer to FarDepth.
func (b *Buffer) Clear() {
	for i := range b.color {
		b.color[i] = 0
	}
	clearDepth(b.depth)
}

// ClearShadow resets the shadow buffer to FarDepth. No-op without one.
func (b *Buffer) ClearShadow() {
	clearDepth(b.shadow)
}

// clearDepth fills a depth plane with FarDepth using copy doubling.
func clearDepth(d []float32) {
	if len(d) == 0 {
		return
	}
	d[0] = FarDepth
	for i := 1; i < len(d); i *= 2 {
		copy(d[i:], d[:i])
	}
}

// SetRGB writes one pixel. Callers must stay in bounds.
func (b *Buffer) SetRGB(x, y int, r, g, bl uint8) {
	i := (y*b.Width + x) * 3
	b.color[i] = r
	b.color[i+1] = g
	b.color[i+2] = bl
}

// RGBAt reads one pixel. Callers must stay in bounds.
func (b *Buffer) RGBAt(x, y int) (r, g, bl uint8) {
	i := (y*b.Width + x) * 3
	return b.color[i], b.color[i+1], b.color[i+2]
}

// DepthAt reads the depth value at (x, y).
func (b *Buffer) DepthAt(x, y int) float32 {
	return b.depth[y*b.Width+x]
}

// SetDepth writes the depth value at (x, y).
func (b *Buffer) SetDepth(x, y int, d float32) {
	b.depth[y*b.Width+x] = d
}

// Color returns the flat row-major RGB8 color buffer. The slice stays valid
// until the buffer is garbage collected; treat it as read-only between
// Clear calls.
func (b *Buffer) Color() []uint8 {
	return b.color
}

// Depth returns the flat row-major depth buffer.
func (b *Buffer) Depth() []float32 {
	return b.depth
}

// ShadowDepth returns the flat shadow depth buffer, or nil if the buffer
// was created without one.
func (b *Buffer) ShadowDepth() []float32 {
	return b.shadow
}
