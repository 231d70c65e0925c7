package camera

import (
	stdmath "math"
	"testing"

	"emitter-editor/math"
)

func almostEqual(a, b float32) bool {
	return stdmath.Abs(float64(a-b)) < 0.0001
}

func TestDefaultPosition(t *testing.T) {
	c := NewOrbit()
	pos := c.Position()

	// Yaw 180, pitch 0: the eye sits at distance along -Y.
	if !almostEqual(pos.X, 0) || !almostEqual(pos.Y, -defaultDistance) || !almostEqual(pos.Z, 0) {
		t.Errorf("default position %v, want (0,-%v,0)", pos, float32(defaultDistance))
	}
}

func TestBasisOrthonormal(t *testing.T) {
	c := NewOrbit()
	c.Yaw = 137
	c.Pitch = 33

	f, r, u := c.Forward(), c.Right(), c.Up()
	for name, v := range map[string]math.Vec3{"forward": f, "right": r, "up": u} {
		if !almostEqual(v.Length(), 1) {
			t.Errorf("%s not unit length: %v", name, v.Length())
		}
	}
	if !almostEqual(f.Dot(r), 0) || !almostEqual(f.Dot(u), 0) || !almostEqual(r.Dot(u), 0) {
		t.Errorf("basis not orthogonal: f.r=%v f.u=%v r.u=%v", f.Dot(r), f.Dot(u), r.Dot(u))
	}
	// Right stays parallel to the ground plane
	if !almostEqual(r.Z, 0) {
		t.Errorf("right axis left the ground plane: %v", r)
	}
}

func TestPitchClamp(t *testing.T) {
	c := NewOrbit()
	c.Update(0, 0, true, false, 0)     // prime mouse tracking
	c.Update(0, 10000, true, false, 0) // drag far down
	if c.Pitch > maxPitch {
		t.Errorf("pitch %v exceeded clamp %v", c.Pitch, float32(maxPitch))
	}
	c.Update(0, -100000, true, false, 0)
	if c.Pitch < -maxPitch {
		t.Errorf("pitch %v under clamp %v", c.Pitch, float32(-maxPitch))
	}
}

func TestDollyClamp(t *testing.T) {
	c := NewOrbit()
	for i := 0; i < 200; i++ {
		c.Update(0, 0, false, false, 1) // scroll in
	}
	if c.Distance < minDistance {
		t.Errorf("distance %v under clamp %v", c.Distance, float32(minDistance))
	}
	for i := 0; i < 200; i++ {
		c.Update(0, 0, false, false, -1)
	}
	if c.Distance > maxDistance {
		t.Errorf("distance %v over clamp %v", c.Distance, float32(maxDistance))
	}
}

func TestFirstDragFrameDoesNotJump(t *testing.T) {
	c := NewOrbit()
	yaw := c.Yaw
	// Mouse was far away while idle; the first pressed frame must only latch.
	c.Update(500, 500, false, false, 0)
	c.Update(900, 900, true, false, 0)
	if c.Yaw != yaw {
		t.Errorf("first drag frame rotated the camera by %v", c.Yaw-yaw)
	}
	c.Update(910, 900, true, false, 0)
	if c.Yaw == yaw {
		t.Error("second drag frame should rotate")
	}
}

func TestPanMovesTarget(t *testing.T) {
	c := NewOrbit()
	c.Update(0, 0, true, true, 0)
	c.Update(100, 0, true, true, 0)
	if c.Target == math.Vec3Zero {
		t.Error("pan left the target in place")
	}
	if !almostEqual(c.Distance, defaultDistance) {
		t.Errorf("pan changed distance to %v", c.Distance)
	}
}

func TestReset(t *testing.T) {
	c := NewOrbit()
	c.Yaw = 20
	c.Pitch = 40
	c.Distance = 30
	c.Target = math.NewVec3(1, 2, 3)
	c.Reset()

	if c.Yaw != defaultYaw || c.Pitch != 0 || c.Distance != defaultDistance || c.Target != math.Vec3Zero {
		t.Errorf("reset left camera at yaw=%v pitch=%v dist=%v target=%v", c.Yaw, c.Pitch, c.Distance, c.Target)
	}
}
