// Package texture provides the RGB8 texture maps sampled by the shader
// pipelines, and decoding of the TGA files they are loaded from.
package texture

import (
	"fmt"
	"image"

	"github.com/softras/softras/pkg/math"
)

// Map is a row-major RGB8 sample grid. Pix holds 3 bytes per texel,
// top-left origin.
type Map struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewMap allocates a black texture map.
func NewMap(width, height int) (*Map, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("invalid texture size %dx%d", width, height)
	}
	return &Map{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}, nil
}

// At returns the texel at (x, y). Callers must stay in bounds.
func (m *Map) At(x, y int) (r, g, b uint8) {
	i := (y*m.Width + x) * 3
	return m.Pix[i], m.Pix[i+1], m.Pix[i+2]
}

// Set writes the texel at (x, y). Callers must stay in bounds.
func (m *Map) Set(x, y int, r, g, b uint8) {
	i := (y*m.Width + x) * 3
	m.Pix[i] = r
	m.Pix[i+1] = g
	m.Pix[i+2] = b
}

// Sample returns the nearest texel for the given UV coordinates.
// U and V wrap into [0,1); V=0 is the bottom of the image. The lookup
// never indexes out of bounds.
func (m *Map) Sample(u, v float32) (r, g, b uint8) {
	u = wrap01(u)
	v = wrap01(v)

	x := int(u * float32(m.Width))
	y := int((1 - v) * float32(m.Height))
	if x >= m.Width {
		x = m.Width - 1
	}
	if y >= m.Height {
		y = m.Height - 1
	}

	return m.At(x, y)
}

// SampleVector decodes a normal-map texel into a unit vector. Channels map
// from [0,255] to [-1,1].
func (m *Map) SampleVector(u, v float32) math.Vec3 {
	r, g, b := m.Sample(u, v)
	return math.Vec3{
		X: float32(r)/127.5 - 1,
		Y: float32(g)/127.5 - 1,
		Z: float32(b)/127.5 - 1,
	}.Normalize()
}

// Fill sets every texel to one color.
func (m *Map) Fill(r, g, b uint8) {
	for i := 0; i < len(m.Pix); i += 3 {
		m.Pix[i] = r
		m.Pix[i+1] = g
		m.Pix[i+2] = b
	}
}

// FromImage converts a decoded image into a Map, dropping alpha.
func FromImage(img image.Image) (*Map, error) {
	bounds := img.Bounds()
	m, err := NewMap(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r16, g16, b16, _ := img.At(x, y).RGBA()
			m.Set(x-bounds.Min.X, y-bounds.Min.Y, uint8(r16>>8), uint8(g16>>8), uint8(b16>>8))
		}
	}
	return m, nil
}

// wrap01 maps a coordinate into [0,1).
func wrap01(f float32) float32 {
	f -= float32(int(f))
	if f < 0 {
		f++
	}
	return f
}

// Set bundles the texture maps a scene can carry. Any map may be nil; the
// shader pipeline selected at scene construction declares which ones it
// requires.
type Set struct {
	Diffuse       *Map // base color
	Normal        *Map // object-space normals
	NormalTangent *Map // tangent-space normals
	Specular      *Map // specular intensity in the red channel
}
