// Package shader implements the pluggable shading stage of the render
// pipeline. A Pipeline is stateful per triangle: the rasterizer feeds it
// three vertices, then queries it once per covered pixel with the
// barycentric weights of that pixel.
package shader

import (
	"fmt"
	gomath "math"

	"github.com/softras/softras/internal/engine/texture"
	"github.com/softras/softras/pkg/math"
)

// Pipeline names accepted by New.
const (
	Unlit            = "unlit"
	Gouraud          = "gouraud"
	GouraudSpecular  = "gouraud_specular"
	NormalMap        = "normalmap"
	TangentNormalMap = "tangent_normalmap"
)

// Frame carries the per-frame inputs shared by every triangle: the combined
// view-projection transform, the camera position, the unit direction from
// surface to light, and the bound texture maps.
type Frame struct {
	ViewProjection math.Mat4
	Eye            math.Vec3
	Light          math.Vec3
	Maps           *texture.Set
}

// Vertex is one mesh corner handed to the vertex stage. Tangent and
// Bitangent are only populated for the tangent-space pipeline.
type Vertex struct {
	Position  math.Vec3
	UV        math.Vec2
	Normal    math.Vec3
	Tangent   math.Vec3
	Bitangent math.Vec3
}

// Pipeline is the per-triangle shading contract. Begin is called once per
// frame, Vertex once per triangle corner (slots 0..2) returning the clip
// space position, and Fragment once per covered pixel with the
// perspective-corrected barycentric weights of the three slots.
type Pipeline interface {
	Begin(f Frame)
	Vertex(slot int, v Vertex) math.Vec4
	Fragment(bary math.Vec3) (r, g, b uint8)
}

// Names lists the known pipeline names in a stable order.
func Names() []string {
	return []string{Unlit, Gouraud, GouraudSpecular, NormalMap, TangentNormalMap}
}

// RequiresTangents reports whether a pipeline consumes per-vertex tangent
// frames, so the caller knows to compute them at mesh build time.
func RequiresTangents(name string) bool {
	return name == TangentNormalMap
}

// New constructs the named pipeline and validates that the maps it samples
// are present.
func New(name string, maps *texture.Set) (Pipeline, error) {
	if maps == nil {
		maps = &texture.Set{}
	}
	if maps.Diffuse == nil {
		return nil, fmt.Errorf("pipeline %q: missing diffuse map", name)
	}

	switch name {
	case Unlit:
		return &unlitPipeline{}, nil
	case Gouraud:
		return &gouraudPipeline{}, nil
	case GouraudSpecular:
		if maps.Specular == nil {
			return nil, fmt.Errorf("pipeline %q: missing specular map", name)
		}
		return &gouraudPipeline{specular: true}, nil
	case NormalMap:
		if maps.Normal == nil {
			return nil, fmt.Errorf("pipeline %q: missing normal map", name)
		}
		return &normalMapPipeline{}, nil
	case TangentNormalMap:
		if maps.NormalTangent == nil {
			return nil, fmt.Errorf("pipeline %q: missing tangent-space normal map", name)
		}
		return &tangentNormalMapPipeline{}, nil
	default:
		return nil, fmt.Errorf("unknown pipeline %q (known: %v)", name, Names())
	}
}

// specularWeight balances the specular term against the diffuse term.
const specularWeight = 0.6

// lerp2 interpolates three Vec2 corners with barycentric weights.
func lerp2(a, b, c math.Vec2, w math.Vec3) math.Vec2 {
	return math.Vec2{
		X: a.X*w.X + b.X*w.Y + c.X*w.Z,
		Y: a.Y*w.X + b.Y*w.Y + c.Y*w.Z,
	}
}

// lerp3 interpolates three Vec3 corners with barycentric weights.
func lerp3(a, b, c math.Vec3, w math.Vec3) math.Vec3 {
	return a.Scale(w.X).Add(b.Scale(w.Y)).Add(c.Scale(w.Z))
}

// clamp01 clamps an intensity to [0, 1].
func clamp01(f float32) float32 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// modulate scales an 8-bit color channel by an intensity, saturating at 255.
func modulate(c uint8, intensity float32) uint8 {
	v := float32(c) * intensity
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return uint8(v)
}

// specularTerm evaluates the view-aligned reflection highlight. The
// specular map sample sets the shininess exponent, floored at 1 so a black
// map still behaves.
func specularTerm(normal, light, view math.Vec3, maps *texture.Set, u, v float32) float32 {
	if maps.Specular == nil {
		return 0
	}
	r := light.Reflect(normal)
	align := r.Dot(view)
	if align <= 0 {
		return 0
	}
	power, _, _ := maps.Specular.Sample(u, v)
	exp := float64(power)
	if exp < 1 {
		exp = 1
	}
	return float32(gomath.Pow(float64(align), exp))
}
