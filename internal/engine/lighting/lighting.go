// Package lighting provides the directional light model and the light-space
// matrices used by the shadow pass.
package lighting

import (
	gomath "math"

	"github.com/softras/softras/pkg/math"
)

// Directional is a light infinitely far away. Direction points TO the light
// source, matching the convention of the diffuse term n·l.
type Directional struct {
	Direction math.Vec3
}

// NewDirectional normalizes dir into a directional light. A zero vector
// falls back to straight overhead so the diffuse term stays well-defined.
func NewDirectional(dir math.Vec3) Directional {
	if dir.LengthSqr() == 0 {
		dir = math.Vec3{Y: 1}
	}
	return Directional{Direction: dir.Normalize()}
}

// SunDirection converts longitude/latitude angles in degrees to a direction
// vector pointing towards the sun. Longitude rotates around the Y axis,
// latitude is the elevation from the horizon.
func SunDirection(longitude, latitude float32) math.Vec3 {
	lonRad := float64(longitude) * gomath.Pi / 180.0
	latRad := float64(latitude) * gomath.Pi / 180.0

	return math.Vec3{
		X: float32(gomath.Cos(latRad) * gomath.Sin(lonRad)),
		Y: float32(gomath.Sin(latRad)),
		Z: float32(gomath.Cos(latRad) * gomath.Cos(lonRad)),
	}
}

// ViewProjection computes the orthographic view-projection matrix of the
// light for rendering a shadow depth pass. The frustum is sized from the
// bounding sphere given by center and radius so the whole mesh lands inside
// the shadow buffer, with padding against edge clipping.
func (l Directional) ViewProjection(center math.Vec3, radius float32) math.Mat4 {
	if radius <= 0 {
		radius = 1
	}
	lightDistance := radius * 2
	lightPos := center.Add(l.Direction.Scale(lightDistance))

	// Avoid an up vector parallel to the light direction.
	up := math.Vec3{Y: 1}
	if abs32(l.Direction.Y) > 0.99 {
		up = math.Vec3{Z: 1}
	}
	view := math.LookAt(lightPos, center, up)

	padding := radius * 0.1
	halfSize := radius + padding
	near := float32(0.1)
	far := lightDistance + radius + padding

	proj := math.Ortho(-halfSize, halfSize, -halfSize, halfSize, near, far)
	return proj.Mul(view)
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
