package math

import (
	gomath "math"
	"testing"
)

func TestIdentityMulVec4(t *testing.T) {
	v := Vec4{1, 2, 3, 1}
	got := Identity().MulVec4(v)
	if got != v {
		t.Errorf("Identity().MulVec4(%v) = %v, want unchanged", v, got)
	}
}

func TestMulAssociatesWithVec4(t *testing.T) {
	a := RotateY(0.7)
	b := Perspective(0.785398, 1.0, 0.1, 100)
	v := Vec4{0.3, -0.2, -5, 1}

	left := b.Mul(a).MulVec4(v)
	right := b.MulVec4(a.MulVec4(v))

	const eps = 1e-4
	if absf(left.X-right.X) > eps || absf(left.Y-right.Y) > eps ||
		absf(left.Z-right.Z) > eps || absf(left.W-right.W) > eps {
		t.Errorf("(B*A)v = %v, B(Av) = %v", left, right)
	}
}

func TestLookAtEyeMapsToOrigin(t *testing.T) {
	eye := Vec3{1, 2, 3}
	view := LookAt(eye, Vec3{0, 0, 0}, Vec3{0, 1, 0})
	got := view.MulVec4(Vec4From(eye, 1))

	const eps = 1e-5
	if absf(got.X) > eps || absf(got.Y) > eps || absf(got.Z) > eps {
		t.Errorf("view * eye = %v, want origin", got)
	}
}

func TestLookAtCenterOnNegativeZ(t *testing.T) {
	view := LookAt(Vec3{0, 0, 5}, Vec3{0, 0, 0}, Vec3{0, 1, 0})
	got := view.MulVec4(Vec4{0, 0, 0, 1})

	// The look-at target sits straight ahead, which is -Z in view space.
	if got.Z >= 0 {
		t.Errorf("view * center = %v, want negative Z", got)
	}
	const eps = 1e-5
	if absf(got.X) > eps || absf(got.Y) > eps {
		t.Errorf("view * center = %v, want on the view axis", got)
	}
}

func TestPerspectiveMapsNearFarPlanes(t *testing.T) {
	near, far := float32(1), float32(10)
	proj := Perspective(float32(gomath.Pi/2), 1.0, near, far)

	nearClip := proj.MulVec4(Vec4{0, 0, -near, 1})
	farClip := proj.MulVec4(Vec4{0, 0, -far, 1})

	const eps = 1e-4
	if absf(nearClip.Z/nearClip.W+1) > eps {
		t.Errorf("near plane maps to NDC z = %v, want -1", nearClip.Z/nearClip.W)
	}
	if absf(farClip.Z/farClip.W-1) > eps {
		t.Errorf("far plane maps to NDC z = %v, want 1", farClip.Z/farClip.W)
	}
}

func TestRotateYQuarterTurn(t *testing.T) {
	m := RotateY(float32(gomath.Pi / 2))
	got := m.TransformDirection(Vec3{1, 0, 0})

	const eps = 1e-6
	if absf(got.X) > eps || absf(got.Y) > eps || absf(got.Z-(-1)) > eps {
		t.Errorf("RotateY(90°) * +X = %v, want (0,0,-1)", got)
	}
}
