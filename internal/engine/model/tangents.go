package model

import (
	"fmt"

	"github.com/softras/softras/pkg/math"
)

// ComputeTangents fills the per-position tangent and bitangent arrays needed
// by tangent-space normal mapping. Contributions are accumulated per face
// from the UV-space derivatives of the surface, then Gram-Schmidt
// orthogonalized against the vertex normal. Triangles with a degenerate UV
// area contribute nothing.
func (m *Mesh) ComputeTangents() error {
	if !m.HasUVs() {
		return fmt.Errorf("mesh has no texture coordinates, cannot compute tangents")
	}
	if !m.HasNormals() {
		return fmt.Errorf("mesh has no normals, cannot compute tangents")
	}

	tangents := make([]math.Vec3, len(m.Positions))
	bitangents := make([]math.Vec3, len(m.Positions))
	normals := make([]math.Vec3, len(m.Positions))

	for _, f := range m.Faces {
		p0 := m.Positions[f.Position[0]]
		p1 := m.Positions[f.Position[1]]
		p2 := m.Positions[f.Position[2]]
		uv0 := m.UVs[f.UV[0]]
		uv1 := m.UVs[f.UV[1]]
		uv2 := m.UVs[f.UV[2]]

		for c := 0; c < 3; c++ {
			i := f.Position[c]
			normals[i] = normals[i].Add(m.Normals[f.Normal[c]])
		}

		e1 := p1.Sub(p0)
		e2 := p2.Sub(p0)
		du1 := uv1.X - uv0.X
		dv1 := uv1.Y - uv0.Y
		du2 := uv2.X - uv0.X
		dv2 := uv2.Y - uv0.Y

		denom := du1*dv2 - du2*dv1
		if denom == 0 {
			continue
		}
		r := 1.0 / denom

		t := e1.Scale(dv2 * r).Sub(e2.Scale(dv1 * r))
		b := e2.Scale(du1 * r).Sub(e1.Scale(du2 * r))
		for c := 0; c < 3; c++ {
			i := f.Position[c]
			tangents[i] = tangents[i].Add(t)
			bitangents[i] = bitangents[i].Add(b)
		}
	}

	for i := range tangents {
		n := normals[i].Normalize()
		t := tangents[i]
		b := bitangents[i]

		// T = normalize(T - N*(N·T))
		t = t.Sub(n.Scale(n.Dot(t)))
		if t.LengthSqr() < 1e-8 {
			// Degenerate frame: pick any tangent perpendicular to N.
			if abs32(n.X) < 0.9 {
				t = math.Vec3{X: 1}.Sub(n.Scale(n.X))
			} else {
				t = math.Vec3{Y: 1}.Sub(n.Scale(n.Y))
			}
		}
		tangents[i] = t.Normalize()

		if b.LengthSqr() < 1e-8 {
			b = n.Cross(tangents[i])
		}
		bitangents[i] = b.Normalize()
	}

	m.Tangents = tangents
	m.Bitangents = bitangents
	return nil
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
