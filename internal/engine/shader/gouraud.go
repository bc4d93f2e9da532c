package shader

import "github.com/softras/softras/pkg/math"

// gouraudPipeline evaluates lighting per vertex and interpolates the
// resulting intensity across the triangle. There is no ambient term: a
// surface perpendicular to the light renders black. With specular enabled
// the per-vertex intensity also includes a view-aligned highlight whose
// exponent comes from the specular map.
type gouraudPipeline struct {
	specular bool

	frame     Frame
	uv        [3]math.Vec2
	intensity [3]float32
}

func (p *gouraudPipeline) Begin(f Frame) {
	p.frame = f
}

func (p *gouraudPipeline) Vertex(slot int, v Vertex) math.Vec4 {
	p.uv[slot] = v.UV

	n := v.Normal.Normalize()
	intensity := clamp01(n.Dot(p.frame.Light))
	if p.specular {
		view := p.frame.Eye.Sub(v.Position).Normalize()
		intensity += specularWeight * specularTerm(n, p.frame.Light, view, p.frame.Maps, v.UV.X, v.UV.Y)
	}
	p.intensity[slot] = intensity

	return p.frame.ViewProjection.MulVec4(math.Vec4From(v.Position, 1))
}

func (p *gouraudPipeline) Fragment(bary math.Vec3) (r, g, b uint8) {
	uv := lerp2(p.uv[0], p.uv[1], p.uv[2], bary)
	intensity := p.intensity[0]*bary.X + p.intensity[1]*bary.Y + p.intensity[2]*bary.Z

	dr, dg, db := p.frame.Maps.Diffuse.Sample(uv.X, uv.Y)
	return modulate(dr, intensity), modulate(dg, intensity), modulate(db, intensity)
}
