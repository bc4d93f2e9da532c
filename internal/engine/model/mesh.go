// Package model holds the renderer-facing mesh representation built from
// parsed OBJ data.
package model

import (
	"fmt"

	"github.com/softras/softras/pkg/formats"
	"github.com/softras/softras/pkg/math"
)

// Face references the attribute arrays of its mesh. UV and Normal entries
// are -1 when the face carries no texture coordinates or normals.
type Face struct {
	Position [3]int
	UV       [3]int
	Normal   [3]int
}

// Mesh is a validated triangle mesh. Attribute arrays are indexed per face
// corner, OBJ-style, so a position shared by several faces can pair with
// different UVs. Tangents and Bitangents are indexed by position and stay
// nil until ComputeTangents runs.
type Mesh struct {
	Positions []math.Vec3
	UVs       []math.Vec2
	Normals   []math.Vec3
	Faces     []Face

	Tangents   []math.Vec3
	Bitangents []math.Vec3

	min math.Vec3
	max math.Vec3
}

// NewMesh builds a mesh from parsed OBJ data. Face indices are validated
// against the attribute arrays, bounds are computed, and smooth per-position
// normals are derived when the file carries none.
func NewMesh(obj *formats.OBJ) (*Mesh, error) {
	if obj == nil {
		return nil, fmt.Errorf("nil OBJ data")
	}
	if len(obj.Positions) == 0 || len(obj.Faces) == 0 {
		return nil, fmt.Errorf("mesh has no geometry")
	}

	m := &Mesh{
		Positions: make([]math.Vec3, len(obj.Positions)),
		UVs:       make([]math.Vec2, len(obj.TexCoords)),
		Normals:   make([]math.Vec3, len(obj.Normals)),
		Faces:     make([]Face, len(obj.Faces)),
	}
	for i, p := range obj.Positions {
		m.Positions[i] = math.Vec3{X: p[0], Y: p[1], Z: p[2]}
	}
	for i, t := range obj.TexCoords {
		m.UVs[i] = math.Vec2{X: t[0], Y: t[1]}
	}
	for i, n := range obj.Normals {
		m.Normals[i] = math.Vec3{X: n[0], Y: n[1], Z: n[2]}.Normalize()
	}

	for i, f := range obj.Faces {
		face := Face{Position: f.Position, UV: f.UV, Normal: f.Normal}
		for c := 0; c < 3; c++ {
			if face.Position[c] < 0 || face.Position[c] >= len(m.Positions) {
				return nil, fmt.Errorf("face %d: position index %d out of range", i, face.Position[c])
			}
			if face.UV[c] >= len(m.UVs) {
				return nil, fmt.Errorf("face %d: texture index %d out of range", i, face.UV[c])
			}
			if face.Normal[c] >= len(m.Normals) {
				return nil, fmt.Errorf("face %d: normal index %d out of range", i, face.Normal[c])
			}
		}
		m.Faces[i] = face
	}

	if len(m.Normals) == 0 {
		m.computeNormals()
	}
	m.computeBounds()
	return m, nil
}

// HasUVs reports whether every face carries texture coordinates.
func (m *Mesh) HasUVs() bool {
	for _, f := range m.Faces {
		if f.UV[0] < 0 || f.UV[1] < 0 || f.UV[2] < 0 {
			return false
		}
	}
	return len(m.Faces) > 0
}

// HasNormals reports whether every face carries normals, either from the
// source file or derived at build time.
func (m *Mesh) HasNormals() bool {
	for _, f := range m.Faces {
		if f.Normal[0] < 0 || f.Normal[1] < 0 || f.Normal[2] < 0 {
			return false
		}
	}
	return len(m.Faces) > 0
}

// Bounds returns the axis-aligned bounding box of the mesh.
func (m *Mesh) Bounds() (min, max math.Vec3) {
	return m.min, m.max
}

// Center returns the midpoint of the bounding box.
func (m *Mesh) Center() math.Vec3 {
	return m.min.Add(m.max).Scale(0.5)
}

// Radius returns the distance from the center to the farthest bounding box
// corner. Used to frame the mesh in the camera and light frusta.
func (m *Mesh) Radius() float32 {
	return m.max.Sub(m.min).Length() * 0.5
}

func (m *Mesh) computeBounds() {
	m.min = m.Positions[0]
	m.max = m.Positions[0]
	for _, p := range m.Positions[1:] {
		m.min.X = min32(m.min.X, p.X)
		m.min.Y = min32(m.min.Y, p.Y)
		m.min.Z = min32(m.min.Z, p.Z)
		m.max.X = max32(m.max.X, p.X)
		m.max.Y = max32(m.max.Y, p.Y)
		m.max.Z = max32(m.max.Z, p.Z)
	}
}

// computeNormals derives smooth per-position normals from area-weighted
// face normals. Faces are rewired to index the derived array.
func (m *Mesh) computeNormals() {
	m.Normals = make([]math.Vec3, len(m.Positions))
	for _, f := range m.Faces {
		p0 := m.Positions[f.Position[0]]
		p1 := m.Positions[f.Position[1]]
		p2 := m.Positions[f.Position[2]]
		// Cross product length is proportional to face area, so summing
		// unnormalized face normals weights by area.
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		for c := 0; c < 3; c++ {
			i := f.Position[c]
			m.Normals[i] = m.Normals[i].Add(n)
		}
	}
	for i := range m.Normals {
		m.Normals[i] = m.Normals[i].Normalize()
	}
	for i := range m.Faces {
		m.Faces[i].Normal = m.Faces[i].Position
	}
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
