package shader

import "github.com/softras/softras/pkg/math"

// unlitPipeline returns the diffuse sample directly, ignoring lighting.
type unlitPipeline struct {
	frame Frame
	uv    [3]math.Vec2
}

func (p *unlitPipeline) Begin(f Frame) {
	p.frame = f
}

func (p *unlitPipeline) Vertex(slot int, v Vertex) math.Vec4 {
	p.uv[slot] = v.UV
	return p.frame.ViewProjection.MulVec4(math.Vec4From(v.Position, 1))
}

func (p *unlitPipeline) Fragment(bary math.Vec3) (r, g, b uint8) {
	uv := lerp2(p.uv[0], p.uv[1], p.uv[2], bary)
	return p.frame.Maps.Diffuse.Sample(uv.X, uv.Y)
}
