package editor

import (
	"testing"

	"emitter-editor/math"
)

var (
	testRight = math.Vec3{X: 1}
	testUp    = math.Vec3{Z: 1}
)

func TestMouseToScaleGrowsOnUpwardDrag(t *testing.T) {
	x, y := MouseToScale(1, 1, -10, 0.01)
	if !nearlyEqual(x, 1.1) || !nearlyEqual(y, 1.1) {
		t.Errorf("MouseToScale(1, 1, -10, 0.01) = (%v, %v), want (1.1, 1.1)", x, y)
	}
}

func TestMouseToScaleShrinksOnDownwardDrag(t *testing.T) {
	x, y := MouseToScale(2, 4, 10, 0.01)
	if !nearlyEqual(x, 1.8) || !nearlyEqual(y, 3.6) {
		t.Errorf("MouseToScale(2, 4, 10, 0.01) = (%v, %v), want (1.8, 3.6)", x, y)
	}
}

func TestMouseToScaleClampsToRange(t *testing.T) {
	x, _ := MouseToScale(1, 1, 200, 0.01)
	if x != 0 {
		t.Errorf("large downward drag should clamp size to 0, got %v", x)
	}
	x, _ = MouseToScale(400, 400, -100, 0.01)
	if x != 500 {
		t.Errorf("large upward drag should clamp size to 500, got %v", x)
	}
}

func TestMouseToMovementFreeFollowsCamera(t *testing.T) {
	got := MouseToMovement(10, -10, 0.01, testRight, testUp, GrabFree)
	want := math.Vec3{X: 0.1, Z: 0.1}
	if !vecNear(got, want) {
		t.Errorf("free movement = %v, want %v", got, want)
	}
}

func TestMouseToMovementAxisConstraint(t *testing.T) {
	// An oblique camera basis exercises the masking: the constrained
	// result must have no component outside the chosen axis.
	right := math.Vec3{X: 0.707, Y: 0.707}
	up := math.Vec3{X: -0.2, Y: 0.2, Z: 0.96}

	got := MouseToMovement(30, -12, 0.01, right, up, GrabXAxis)
	if got.Y != 0 || got.Z != 0 {
		t.Errorf("X axis grab produced off-axis movement: %v", got)
	}
	if got.X == 0 {
		t.Error("X axis grab produced no movement at all")
	}

	got = MouseToMovement(30, -12, 0.01, right, up, GrabZAxis)
	if got.X != 0 || got.Y != 0 {
		t.Errorf("Z axis grab produced off-axis movement: %v", got)
	}
}

func TestMouseToMovementAxisUsesDominantBasis(t *testing.T) {
	right := math.Vec3{X: 0.707, Y: 0.707}
	up := math.Vec3{X: -0.2, Y: 0.2, Z: 0.96}

	// camRight aligns with X far better than camUp, so horizontal drag
	// alone drives the X grab: 30 * 0.01 * 0.707.
	got := MouseToMovement(30, -12, 0.01, right, up, GrabXAxis)
	if !nearlyEqual(got.X, 0.2121) {
		t.Errorf("X axis movement = %v, want 0.2121 along X", got)
	}

	// camUp dominates Z, so vertical drag drives the Z grab.
	got = MouseToMovement(30, -12, 0.01, right, up, GrabZAxis)
	if !nearlyEqual(got.Z, 0.1152) {
		t.Errorf("Z axis movement = %v, want 0.1152 along Z", got)
	}
}

func TestMouseToMovementPlaneConstraint(t *testing.T) {
	right := math.Vec3{X: 0.707, Y: 0.707}
	up := math.Vec3{X: -0.2, Y: 0.2, Z: 0.96}

	got := MouseToMovement(30, -12, 0.01, right, up, GrabYZPlane)
	if got.X != 0 {
		t.Errorf("YZ plane grab moved along X: %v", got)
	}
	got = MouseToMovement(30, -12, 0.01, right, up, GrabXYPlane)
	if got.Z != 0 {
		t.Errorf("XY plane grab moved along Z: %v", got)
	}
}

func TestMouseToRotationModes(t *testing.T) {
	free := MouseToRotation(10, 20, 0.01, RotateFree)
	if !nearlyEqual(free.X, 20*0.01*180) || free.Y != 0 || !nearlyEqual(free.Z, 10*0.01*180) {
		t.Errorf("free rotation = %v", free)
	}

	x := MouseToRotation(10, 20, 0.01, RotateXAxis)
	if !nearlyEqual(x.X, 36) || x.Y != 0 || x.Z != 0 {
		t.Errorf("X rotation = %v, want (36, 0, 0)", x)
	}
	y := MouseToRotation(10, 20, 0.01, RotateYAxis)
	if y.X != 0 || !nearlyEqual(y.Y, 18) || y.Z != 0 {
		t.Errorf("Y rotation = %v, want (0, 18, 0)", y)
	}
	z := MouseToRotation(10, 20, 0.01, RotateZAxis)
	if z.X != 0 || z.Y != 0 || !nearlyEqual(z.Z, 18) {
		t.Errorf("Z rotation = %v, want (0, 0, 18)", z)
	}
}

func nearlyEqual(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 0.0001
}

func vecNear(a, b math.Vec3) bool {
	return nearlyEqual(a.X, b.X) && nearlyEqual(a.Y, b.Y) && nearlyEqual(a.Z, b.Z)
}
