// Package camera provides the view transform and an orbit controller for
// the interactive viewer.
package camera

import (
	gomath "math"

	"github.com/softras/softras/pkg/math"
)

// Camera is a look-at camera pose.
type Camera struct {
	Eye    math.Vec3
	Center math.Vec3
	Up     math.Vec3
}

// View returns the world-to-camera matrix for this pose.
func (c Camera) View() math.Mat4 {
	return math.LookAt(c.Eye, c.Center, c.Up)
}

// Orbit rotates a camera around a center point on a sphere, driven by
// mouse drag and scroll input. Angles are in radians.
type Orbit struct {
	Center   math.Vec3
	Distance float32
	Pitch    float32
	Yaw      float32

	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbit creates an orbit controller framing a bounding sphere. The
// starting distance leaves the whole sphere visible with a standard
// vertical field of view.
func NewOrbit(center math.Vec3, radius float32) *Orbit {
	if radius <= 0 {
		radius = 1
	}
	return &Orbit{
		Center:          center,
		Distance:        radius * 2.5,
		Pitch:           0.3,
		MinDistance:     radius * 1.1,
		MaxDistance:     radius * 20,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (o *Orbit) Position() math.Vec3 {
	x := o.Distance * float32(gomath.Cos(float64(o.Pitch))*gomath.Sin(float64(o.Yaw)))
	y := o.Distance * float32(gomath.Sin(float64(o.Pitch)))
	z := o.Distance * float32(gomath.Cos(float64(o.Pitch))*gomath.Cos(float64(o.Yaw)))
	return o.Center.Add(math.Vec3{X: x, Y: y, Z: z})
}

// Camera returns the pose for the current orbit state.
func (o *Orbit) Camera() Camera {
	return Camera{
		Eye:    o.Position(),
		Center: o.Center,
		Up:     math.Vec3{Y: 1},
	}
}

// Drag updates the orbit angles from a mouse drag delta in pixels.
func (o *Orbit) Drag(deltaX, deltaY float32) {
	o.Yaw -= deltaX * o.DragSensitivity
	o.Pitch += deltaY * o.DragSensitivity

	if o.Pitch < o.MinPitch {
		o.Pitch = o.MinPitch
	}
	if o.Pitch > o.MaxPitch {
		o.Pitch = o.MaxPitch
	}
}

// Zoom updates the distance from a scroll wheel delta. Positive deltas
// move the camera closer. Speed scales with distance for consistent feel.
func (o *Orbit) Zoom(delta float32) {
	o.Distance -= delta * o.Distance * o.ZoomSensitivity
	if o.Distance < o.MinDistance {
		o.Distance = o.MinDistance
	}
	if o.Distance > o.MaxDistance {
		o.Distance = o.MaxDistance
	}
}
