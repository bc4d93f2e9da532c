// Package scene owns the per-frame render state: buffers, camera and light
// transforms, the bound mesh and texture maps, and the shading pipeline. A
// frame is driven as clear → set camera/light → render → read buffers.
package scene

import (
	"fmt"
	gomath "math"

	"github.com/softras/softras/internal/engine/camera"
	"github.com/softras/softras/internal/engine/framebuffer"
	"github.com/softras/softras/internal/engine/lighting"
	"github.com/softras/softras/internal/engine/model"
	"github.com/softras/softras/internal/engine/rasterizer"
	"github.com/softras/softras/internal/engine/shader"
	"github.com/softras/softras/internal/engine/texture"
	"github.com/softras/softras/pkg/math"
)

// Config sizes the output and selects the shading pipeline. Zero values
// for the projection fields fall back to defaults.
type Config struct {
	Width    int
	Height   int
	Pipeline string

	FOVDegrees float32 // vertical field of view, default 60
	Near       float32 // default 0.1
	Far        float32 // default 100
}

// Scene renders one mesh with one camera and one directional light per
// frame. All buffers are owned by the scene and reused across frames; the
// mesh and maps are borrowed read-only.
type Scene struct {
	buf  *framebuffer.Buffer
	rast *rasterizer.Rasterizer

	mesh     *model.Mesh
	maps     *texture.Set
	pipeline shader.Pipeline

	projection math.Mat4
	view       math.Mat4
	eye        math.Vec3
	light      lighting.Directional
}

// New validates the configuration and builds a scene. It fails when the
// resolution is invalid, the pipeline name is unknown, the maps it needs
// are missing, or the mesh lacks attributes the pipeline samples.
func New(cfg Config, mesh *model.Mesh, maps *texture.Set) (*Scene, error) {
	if cfg.Width < 1 || cfg.Height < 1 {
		return nil, fmt.Errorf("invalid resolution %dx%d", cfg.Width, cfg.Height)
	}
	if mesh == nil {
		return nil, fmt.Errorf("nil mesh")
	}

	pipeline, err := shader.New(cfg.Pipeline, maps)
	if err != nil {
		return nil, fmt.Errorf("bind pipeline: %w", err)
	}
	if !mesh.HasUVs() {
		return nil, fmt.Errorf("pipeline %q needs texture coordinates the mesh lacks", cfg.Pipeline)
	}
	if shader.RequiresTangents(cfg.Pipeline) && mesh.Tangents == nil {
		if err := mesh.ComputeTangents(); err != nil {
			return nil, fmt.Errorf("pipeline %q: %w", cfg.Pipeline, err)
		}
	}

	buf, err := framebuffer.New(cfg.Width, cfg.Height, true)
	if err != nil {
		return nil, err
	}

	fov := cfg.FOVDegrees
	if fov <= 0 {
		fov = 60
	}
	near := cfg.Near
	if near <= 0 {
		near = 0.1
	}
	far := cfg.Far
	if far <= near {
		far = 100
	}
	aspect := float32(cfg.Width) / float32(cfg.Height)

	s := &Scene{
		buf:        buf,
		rast:       rasterizer.New(buf),
		mesh:       mesh,
		maps:       maps,
		pipeline:   pipeline,
		projection: math.Perspective(fov*gomath.Pi/180, aspect, near, far),
		light:      lighting.NewDirectional(math.Vec3{Z: 1}),
	}
	// Default pose: camera on +Z looking at the origin.
	s.SetCamera(math.Vec3{Z: 1}, math.Vec3{}, math.Vec3{Y: 1})
	return s, nil
}

// Clear resets the color buffer to black and the depth buffer to the far
// sentinel. Call once before every frame that should not accumulate onto
// the previous one.
func (s *Scene) Clear() {
	s.buf.Clear()
}

// SetCamera recomputes the view transform for the upcoming frame. The up
// vector must not be parallel to the view direction.
func (s *Scene) SetCamera(lookFrom, lookAt, up math.Vec3) {
	s.eye = lookFrom
	s.view = camera.Camera{Eye: lookFrom, Center: lookAt, Up: up}.View()
}

// SetLightDirection stores the direction from surface to light. The input
// is normalized defensively.
func (s *Scene) SetLightDirection(v math.Vec3) {
	s.light = lighting.NewDirectional(v)
}

// Render rasterizes the mesh into the color and depth buffers with the
// current camera and light. Degenerate, back-facing and fully off-screen
// triangles are skipped silently.
func (s *Scene) Render() {
	s.pipeline.Begin(shader.Frame{
		ViewProjection: s.projection.Mul(s.view),
		Eye:            s.eye,
		Light:          s.light.Direction,
		Maps:           s.maps,
	})

	var clip [3]math.Vec4
	for _, face := range s.mesh.Faces {
		for c := 0; c < 3; c++ {
			clip[c] = s.pipeline.Vertex(c, s.vertex(face, c))
		}
		s.rast.Draw(s.pipeline, clip)
	}
}

// RenderShadow runs a depth-only pass from the light's point of view into
// the shadow buffer. The light frustum is fitted to the mesh bounds.
func (s *Scene) RenderShadow() {
	s.buf.ClearShadow()
	vp := s.light.ViewProjection(s.mesh.Center(), s.mesh.Radius())

	var clip [3]math.Vec4
	for _, face := range s.mesh.Faces {
		for c := 0; c < 3; c++ {
			p := s.mesh.Positions[face.Position[c]]
			clip[c] = vp.MulVec4(math.Vec4From(p, 1))
		}
		s.rast.DrawDepth(s.buf.ShadowDepth(), clip)
	}
}

// vertex assembles the shader input for one face corner.
func (s *Scene) vertex(face model.Face, c int) shader.Vertex {
	pi := face.Position[c]
	v := shader.Vertex{Position: s.mesh.Positions[pi]}
	if face.UV[c] >= 0 {
		v.UV = s.mesh.UVs[face.UV[c]]
	}
	if face.Normal[c] >= 0 {
		v.Normal = s.mesh.Normals[face.Normal[c]]
	}
	if s.mesh.Tangents != nil {
		v.Tangent = s.mesh.Tangents[pi]
		v.Bitangent = s.mesh.Bitangents[pi]
	}
	return v
}

// Width returns the horizontal resolution.
func (s *Scene) Width() int { return s.buf.Width }

// Height returns the vertical resolution.
func (s *Scene) Height() int { return s.buf.Height }

// FrameBuffer returns the flat row-major RGB8 color buffer. Read-only
// between Render and the next Clear.
func (s *Scene) FrameBuffer() []uint8 {
	return s.buf.Color()
}

// ZBuffer returns the flat row-major depth buffer.
func (s *Scene) ZBuffer() []float32 {
	return s.buf.Depth()
}

// ShadowBuffer returns the flat row-major shadow depth buffer filled by
// RenderShadow.
func (s *Scene) ShadowBuffer() []float32 {
	return s.buf.ShadowDepth()
}

// DepthView renders the depth buffer as a grayscale RGB8 image for
// debugging, mapping the depth range found in the buffer to white..black.
func (s *Scene) DepthView() []uint8 {
	depth := s.buf.Depth()
	minD, maxD := float32(gomath.Inf(1)), float32(gomath.Inf(-1))
	for _, d := range depth {
		if gomath.IsInf(float64(d), 1) {
			continue
		}
		if d < minD {
			minD = d
		}
		if d > maxD {
			maxD = d
		}
	}

	out := make([]uint8, len(depth)*3)
	span := maxD - minD
	for i, d := range depth {
		var c uint8
		if !gomath.IsInf(float64(d), 1) {
			if span > 0 {
				c = uint8((1 - (d-minD)/span) * 255)
			} else {
				c = 255
			}
		}
		out[i*3] = c
		out[i*3+1] = c
		out[i*3+2] = c
	}
	return out
}
