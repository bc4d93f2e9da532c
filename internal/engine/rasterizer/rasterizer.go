// Package rasterizer converts clip-space triangles into depth-tested
// fragment writes. Screen-space math runs in float64; buffers stay float32.
package rasterizer

import (
	gomath "math"

	"github.com/softras/softras/internal/engine/framebuffer"
	"github.com/softras/softras/internal/engine/shader"
	"github.com/softras/softras/pkg/math"
)

// Rasterizer draws triangles into one framebuffer.
type Rasterizer struct {
	buf *framebuffer.Buffer
}

// New binds a rasterizer to a framebuffer.
func New(buf *framebuffer.Buffer) *Rasterizer {
	return &Rasterizer{buf: buf}
}

// screenVertex is a projected triangle corner. X and Y are pixel
// coordinates with Y growing downward, Z is NDC depth, W the clip-space w
// kept for perspective-correct interpolation.
type screenVertex struct {
	X, Y, Z, W float64
}

// Draw rasterizes one triangle. The pipeline must already hold the
// triangle's vertices; clip carries the clip-space positions its vertex
// stage returned. Covered pixels that pass the strictly-nearer depth test
// invoke the fragment stage with perspective-corrected barycentric weights.
func (r *Rasterizer) Draw(p shader.Pipeline, clip [3]math.Vec4) {
	sv, area, ok := r.setup(clip)
	if !ok {
		return
	}

	r.walk(sv, area, func(x, y int, z float64, bary math.Vec3) {
		if float32(z) >= r.buf.DepthAt(x, y) {
			return
		}
		cr, cg, cb := p.Fragment(bary)
		r.buf.SetRGB(x, y, cr, cg, cb)
		r.buf.SetDepth(x, y, float32(z))
	})
}

// DrawDepth rasterizes only the depth of a triangle into the given plane,
// which must match the framebuffer dimensions. Used for the shadow pass.
func (r *Rasterizer) DrawDepth(plane []float32, clip [3]math.Vec4) {
	sv, area, ok := r.setup(clip)
	if !ok {
		return
	}

	w := r.buf.Width
	r.walk(sv, area, func(x, y int, z float64, bary math.Vec3) {
		if float32(z) < plane[y*w+x] {
			plane[y*w+x] = float32(z)
		}
	})
}

// setup culls and projects a clip-space triangle. Returns ok=false when the
// triangle produces no fragments: fully outside the frustum, crossing the
// w=0 plane (no near-plane clipping, the whole triangle is dropped),
// back-facing, or degenerate.
func (r *Rasterizer) setup(clip [3]math.Vec4) ([3]screenVertex, float64, bool) {
	var sv [3]screenVertex

	if outsideFrustum(clip) {
		return sv, 0, false
	}
	for _, c := range clip {
		if c.W <= 0 {
			return sv, 0, false
		}
	}

	fw, fh := float64(r.buf.Width), float64(r.buf.Height)
	for i, c := range clip {
		w := float64(c.W)
		ndcX := float64(c.X) / w
		ndcY := float64(c.Y) / w
		sv[i] = screenVertex{
			X: (ndcX + 1) * 0.5 * fw,
			Y: (1 - ndcY) * 0.5 * fh, // Y flipped: NDC up, screen down
			Z: float64(c.Z) / w,
			W: w,
		}
	}

	// Signed area doubles as the back-face test: negative winding is
	// culled, zero area is degenerate.
	area := edge(sv[0], sv[1], pt{sv[2].X, sv[2].Y})
	if area <= 0 {
		return sv, 0, false
	}
	return sv, area, true
}

// walk visits every covered pixel of a projected triangle, handing the
// callback the interpolated NDC depth and the perspective-corrected
// barycentric weights.
func (r *Rasterizer) walk(sv [3]screenVertex, area float64, visit func(x, y int, z float64, bary math.Vec3)) {
	minX := int(gomath.Max(0, gomath.Floor(min3(sv[0].X, sv[1].X, sv[2].X))))
	maxX := int(gomath.Min(float64(r.buf.Width-1), gomath.Ceil(max3(sv[0].X, sv[1].X, sv[2].X))))
	minY := int(gomath.Max(0, gomath.Floor(min3(sv[0].Y, sv[1].Y, sv[2].Y))))
	maxY := int(gomath.Min(float64(r.buf.Height-1), gomath.Ceil(max3(sv[0].Y, sv[1].Y, sv[2].Y))))

	invW := [3]float64{1 / sv[0].W, 1 / sv[1].W, 1 / sv[2].W}
	invArea := 1 / area

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := pt{float64(x) + 0.5, float64(y) + 0.5}

			// Edge weights opposite each vertex. A pixel exactly on an
			// edge belongs to the triangle only when that edge is a top
			// or left edge, so mesh-adjacent triangles claim shared-edge
			// pixels exactly once.
			w0 := edge(sv[1], sv[2], p)
			w1 := edge(sv[2], sv[0], p)
			w2 := edge(sv[0], sv[1], p)
			if !covers(w0, sv[1], sv[2]) || !covers(w1, sv[2], sv[0]) || !covers(w2, sv[0], sv[1]) {
				continue
			}

			b0 := w0 * invArea
			b1 := w1 * invArea
			b2 := w2 * invArea

			z := b0*sv[0].Z + b1*sv[1].Z + b2*sv[2].Z

			// Perspective-correct weights: scale by 1/w, renormalize.
			c0 := b0 * invW[0]
			c1 := b1 * invW[1]
			c2 := b2 * invW[2]
			sum := c0 + c1 + c2
			if sum == 0 {
				continue
			}
			bary := math.Vec3{
				X: float32(c0 / sum),
				Y: float32(c1 / sum),
				Z: float32(c2 / sum),
			}

			visit(x, y, z, bary)
		}
	}
}

type pt struct {
	X, Y float64
}

// edge is the signed doubled area of triangle (a, b, p). The sign is
// chosen so that triangles wound counter-clockwise in NDC (the standard
// front-facing order) come out positive after the screen-space Y flip.
func edge(a, b screenVertex, p pt) float64 {
	return (p.X-a.X)*(b.Y-a.Y) - (p.Y-a.Y)*(b.X-a.X)
}

// covers applies the top-left fill rule to one edge weight.
func covers(w float64, a, b screenVertex) bool {
	if w > 0 {
		return true
	}
	return w == 0 && topLeft(a, b)
}

// topLeft reports whether the directed edge a→b is a top edge or a left
// edge. With front-facing winding in Y-down screen coordinates the
// interior lies on the positive side, so a top edge runs horizontally
// leftward and a left edge points downward (increasing Y).
func topLeft(a, b screenVertex) bool {
	return (a.Y == b.Y && b.X < a.X) || b.Y > a.Y
}

// outsideFrustum reports whether all three vertices fall outside the same
// clip plane, which guarantees the triangle is invisible.
func outsideFrustum(clip [3]math.Vec4) bool {
	type test func(c math.Vec4) bool
	planes := []test{
		func(c math.Vec4) bool { return c.X > c.W },
		func(c math.Vec4) bool { return c.X < -c.W },
		func(c math.Vec4) bool { return c.Y > c.W },
		func(c math.Vec4) bool { return c.Y < -c.W },
		func(c math.Vec4) bool { return c.Z > c.W },
		func(c math.Vec4) bool { return c.Z < -c.W },
		func(c math.Vec4) bool { return c.W <= 0 },
	}
	for _, outside := range planes {
		if outside(clip[0]) && outside(clip[1]) && outside(clip[2]) {
			return true
		}
	}
	return false
}

func min3(a, b, c float64) float64 {
	return gomath.Min(a, gomath.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return gomath.Max(a, gomath.Max(b, c))
}
