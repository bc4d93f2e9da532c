package scene

import (
	gomath "math"
	"strings"
	"testing"

	"github.com/softras/softras/internal/engine/model"
	"github.com/softras/softras/internal/engine/shader"
	"github.com/softras/softras/internal/engine/texture"
	"github.com/softras/softras/pkg/formats"
	"github.com/softras/softras/pkg/math"
)

// quadMesh builds a quad at z=0 facing +Z, large enough to fill the whole
// viewport when viewed head-on from (0, 0, 1) with a 90 degree FOV.
func quadMesh(t *testing.T) *model.Mesh {
	t.Helper()
	obj, err := formats.ParseOBJ(strings.NewReader(`
v -2 -2 0
v 2 -2 0
v 2 2 0
v -2 2 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1
f 1/1/1 3/3/1 4/4/1
`))
	if err != nil {
		t.Fatalf("ParseOBJ() error = %v", err)
	}
	m, err := model.NewMesh(obj)
	if err != nil {
		t.Fatalf("NewMesh() error = %v", err)
	}
	return m
}

func solidMaps(t *testing.T, r, g, b uint8) *texture.Set {
	t.Helper()
	m, err := texture.NewMap(1, 1)
	if err != nil {
		t.Fatalf("NewMap() error = %v", err)
	}
	m.Fill(r, g, b)
	return &texture.Set{Diffuse: m}
}

func headOnConfig(pipeline string) Config {
	return Config{Width: 16, Height: 16, Pipeline: pipeline, FOVDegrees: 90}
}

func TestNewValidation(t *testing.T) {
	mesh := quadMesh(t)
	maps := solidMaps(t, 255, 0, 0)

	tests := []struct {
		name string
		cfg  Config
		mesh *model.Mesh
		maps *texture.Set
	}{
		{"zero width", Config{Width: 0, Height: 16, Pipeline: shader.Unlit}, mesh, maps},
		{"zero height", Config{Width: 16, Height: 0, Pipeline: shader.Unlit}, mesh, maps},
		{"nil mesh", headOnConfig(shader.Unlit), nil, maps},
		{"unknown pipeline", headOnConfig("raytrace"), mesh, maps},
		{"missing normal map", headOnConfig(shader.NormalMap), mesh, maps},
		{"missing diffuse", headOnConfig(shader.Unlit), mesh, &texture.Set{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg, tt.mesh, tt.maps); err == nil {
				t.Error("expected construction error, got nil")
			}
		})
	}
}

func TestNewRejectsMeshWithoutUVs(t *testing.T) {
	obj, err := formats.ParseOBJ(strings.NewReader(`
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3//1
`))
	if err != nil {
		t.Fatalf("ParseOBJ() error = %v", err)
	}
	mesh, err := model.NewMesh(obj)
	if err != nil {
		t.Fatalf("NewMesh() error = %v", err)
	}

	if _, err := New(headOnConfig(shader.Unlit), mesh, solidMaps(t, 1, 1, 1)); err == nil {
		t.Error("expected error for mesh without texture coordinates")
	}
}

func TestClearResetsBuffers(t *testing.T) {
	s, err := New(headOnConfig(shader.Unlit), quadMesh(t), solidMaps(t, 255, 0, 0))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	s.SetCamera(math.Vec3{Z: 1}, math.Vec3{}, math.Vec3{Y: 1})
	s.Render()
	s.Clear()

	for _, c := range s.FrameBuffer() {
		if c != 0 {
			t.Fatal("Clear() left a non-black color sample")
		}
	}
	for _, d := range s.ZBuffer() {
		if !gomath.IsInf(float64(d), 1) {
			t.Fatalf("Clear() left depth %v, want +Inf", d)
		}
	}
}

func TestUnlitQuadFillsViewport(t *testing.T) {
	s, err := New(headOnConfig(shader.Unlit), quadMesh(t), solidMaps(t, 255, 0, 0))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	s.Clear()
	s.SetCamera(math.Vec3{Z: 1}, math.Vec3{}, math.Vec3{Y: 1})
	s.SetLightDirection(math.Vec3{Z: 1})
	s.Render()

	fb := s.FrameBuffer()
	for i := 0; i < len(fb); i += 3 {
		if fb[i] != 255 || fb[i+1] != 0 || fb[i+2] != 0 {
			t.Fatalf("pixel %d = (%d, %d, %d), want (255, 0, 0)", i/3, fb[i], fb[i+1], fb[i+2])
		}
	}

	// The quad is parallel to the image plane, so every pixel must carry
	// the same depth.
	zb := s.ZBuffer()
	first := zb[0]
	if gomath.IsInf(float64(first), 1) {
		t.Fatal("depth buffer untouched after render")
	}
	for i, d := range zb {
		if absf(d-first) > 1e-5 {
			t.Fatalf("depth[%d] = %v, want uniform %v", i, d, first)
		}
	}
}

func TestGouraudPerpendicularLightRendersBlack(t *testing.T) {
	s, err := New(headOnConfig(shader.Gouraud), quadMesh(t), solidMaps(t, 255, 255, 255))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	s.Clear()
	s.SetCamera(math.Vec3{Z: 1}, math.Vec3{}, math.Vec3{Y: 1})
	// Light perpendicular to the quad normal: zero diffuse everywhere.
	s.SetLightDirection(math.Vec3{X: 1})
	s.Render()

	for _, c := range s.FrameBuffer() {
		if c != 0 {
			t.Fatal("perpendicular light should render black")
		}
	}
	// Geometry still rasterizes: depth must be written.
	if gomath.IsInf(float64(s.ZBuffer()[0]), 1) {
		t.Error("depth buffer untouched, quad was not rasterized")
	}
}

func TestRenderShadowFillsShadowBuffer(t *testing.T) {
	s, err := New(headOnConfig(shader.Unlit), quadMesh(t), solidMaps(t, 255, 0, 0))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	s.Clear()
	s.SetLightDirection(math.Vec3{Z: 1})
	s.RenderShadow()

	finite := 0
	for _, d := range s.ShadowBuffer() {
		if !gomath.IsInf(float64(d), 1) {
			finite++
		}
	}
	if finite == 0 {
		t.Error("shadow pass wrote no depth")
	}

	// Shadow rendering must leave the color buffer alone.
	for _, c := range s.FrameBuffer() {
		if c != 0 {
			t.Fatal("shadow pass wrote color")
		}
	}
}

func TestTangentPipelineComputesTangents(t *testing.T) {
	mesh := quadMesh(t)
	maps := solidMaps(t, 255, 255, 255)
	nt, _ := texture.NewMap(1, 1)
	nt.Fill(128, 128, 255)
	maps.NormalTangent = nt

	if _, err := New(headOnConfig(shader.TangentNormalMap), mesh, maps); err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if mesh.Tangents == nil || mesh.Bitangents == nil {
		t.Error("scene construction should compute tangent frames")
	}
}

func TestDepthViewGrayscale(t *testing.T) {
	s, err := New(headOnConfig(shader.Unlit), quadMesh(t), solidMaps(t, 255, 0, 0))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	s.Clear()
	s.SetCamera(math.Vec3{Z: 1}, math.Vec3{}, math.Vec3{Y: 1})
	s.Render()

	view := s.DepthView()
	if len(view) != len(s.FrameBuffer()) {
		t.Fatalf("depth view len = %d, want %d", len(view), len(s.FrameBuffer()))
	}
	if view[0] == 0 {
		t.Error("covered pixel should be bright in the depth view")
	}
}

func absf(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
