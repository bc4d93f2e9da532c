package shader

import "github.com/softras/softras/pkg/math"

// normalMapPipeline lights each fragment with a normal fetched from an
// object-space normal map, so the lighting detail is independent of the
// mesh tessellation. When a specular map is bound the highlight is
// evaluated per fragment as well.
type normalMapPipeline struct {
	frame Frame
	uv    [3]math.Vec2
	pos   [3]math.Vec3
}

func (p *normalMapPipeline) Begin(f Frame) {
	p.frame = f
}

func (p *normalMapPipeline) Vertex(slot int, v Vertex) math.Vec4 {
	p.uv[slot] = v.UV
	p.pos[slot] = v.Position
	return p.frame.ViewProjection.MulVec4(math.Vec4From(v.Position, 1))
}

func (p *normalMapPipeline) Fragment(bary math.Vec3) (r, g, b uint8) {
	uv := lerp2(p.uv[0], p.uv[1], p.uv[2], bary)

	n := p.frame.Maps.Normal.SampleVector(uv.X, uv.Y)
	intensity := clamp01(n.Dot(p.frame.Light))
	if p.frame.Maps.Specular != nil {
		pos := lerp3(p.pos[0], p.pos[1], p.pos[2], bary)
		view := p.frame.Eye.Sub(pos).Normalize()
		intensity += specularWeight * specularTerm(n, p.frame.Light, view, p.frame.Maps, uv.X, uv.Y)
	}

	dr, dg, db := p.frame.Maps.Diffuse.Sample(uv.X, uv.Y)
	return modulate(dr, intensity), modulate(dg, intensity), modulate(db, intensity)
}

// tangentNormalMapPipeline lights each fragment with a normal fetched from
// a tangent-space normal map, rotated into object space through the
// interpolated per-vertex tangent frame.
type tangentNormalMapPipeline struct {
	frame     Frame
	uv        [3]math.Vec2
	normal    [3]math.Vec3
	tangent   [3]math.Vec3
	bitangent [3]math.Vec3
}

func (p *tangentNormalMapPipeline) Begin(f Frame) {
	p.frame = f
}

func (p *tangentNormalMapPipeline) Vertex(slot int, v Vertex) math.Vec4 {
	p.uv[slot] = v.UV
	p.normal[slot] = v.Normal
	p.tangent[slot] = v.Tangent
	p.bitangent[slot] = v.Bitangent
	return p.frame.ViewProjection.MulVec4(math.Vec4From(v.Position, 1))
}

func (p *tangentNormalMapPipeline) Fragment(bary math.Vec3) (r, g, b uint8) {
	uv := lerp2(p.uv[0], p.uv[1], p.uv[2], bary)

	n := lerp3(p.normal[0], p.normal[1], p.normal[2], bary).Normalize()
	t := lerp3(p.tangent[0], p.tangent[1], p.tangent[2], bary)
	bt := lerp3(p.bitangent[0], p.bitangent[1], p.bitangent[2], bary)

	// Re-orthogonalize the interpolated frame against the normal.
	t = t.Sub(n.Scale(n.Dot(t))).Normalize()
	bt = bt.Sub(n.Scale(n.Dot(bt))).Normalize()

	sampled := p.frame.Maps.NormalTangent.SampleVector(uv.X, uv.Y)
	world := t.Scale(sampled.X).Add(bt.Scale(sampled.Y)).Add(n.Scale(sampled.Z)).Normalize()

	intensity := clamp01(world.Dot(p.frame.Light))
	dr, dg, db := p.frame.Maps.Diffuse.Sample(uv.X, uv.Y)
	return modulate(dr, intensity), modulate(dg, intensity), modulate(db, intensity)
}
