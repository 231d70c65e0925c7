package render

import (
	"testing"

	"emitter-editor/core"
	"emitter-editor/math"
	"emitter-editor/particles"
)

func TestAppendParticlesLayout(t *testing.T) {
	pool := []particles.Particle{
		{
			Active:   true,
			Position: math.NewVec3(1, 2, 3),
			Velocity: math.NewVec3(4, 5, 6),
			Color:    core.Color{R: 0.1, G: 0.2, B: 0.3, A: 0.4},
			Size:     7,
			Life:     2,
			MaxLife:  5,
		},
	}

	data := AppendParticles(nil, pool)
	if len(data) != VertexStride*VertsPerParticle {
		t.Fatalf("one particle should pack %d floats, got %d", VertexStride*VertsPerParticle, len(data))
	}

	// First vertex carries the full attribute set in order.
	v := data[:VertexStride]
	if v[0] != 1 || v[1] != 2 || v[2] != 3 {
		t.Errorf("position %v", v[0:3])
	}
	if v[3] != 0 || v[4] != 0 {
		t.Errorf("first corner texcoord %v, want (0,0)", v[3:5])
	}
	if v[5] != 0.1 || v[6] != 0.2 || v[7] != 0.3 || v[8] != 0.4 {
		t.Errorf("color %v", v[5:9])
	}
	if v[9] != 7 {
		t.Errorf("size %v", v[9])
	}
	if v[10] != 4 || v[11] != 5 || v[12] != 6 {
		t.Errorf("velocity %v", v[10:13])
	}
	if v[13] != 3 { // age = maxLife - life
		t.Errorf("age %v, want 3", v[13])
	}

	// All six vertices share the particle center; only texcoords differ.
	wantUV := [][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 0}, {1, 1}, {0, 1}}
	for i := 0; i < VertsPerParticle; i++ {
		base := i * VertexStride
		if data[base] != 1 || data[base+1] != 2 || data[base+2] != 3 {
			t.Errorf("vertex %d moved off the particle center", i)
		}
		if data[base+3] != wantUV[i][0] || data[base+4] != wantUV[i][1] {
			t.Errorf("vertex %d texcoord (%v,%v), want %v", i, data[base+3], data[base+4], wantUV[i])
		}
	}
}

func TestAppendParticlesSkipsInactive(t *testing.T) {
	pool := []particles.Particle{
		{Active: false},
		{Active: true, MaxLife: 1, Life: 1},
		{Active: false},
	}
	data := AppendParticles(nil, pool)
	if len(data) != VertexStride*VertsPerParticle {
		t.Errorf("expected one particle packed, got %d floats", len(data))
	}
}

func TestAtlasFrameWraps(t *testing.T) {
	// 4 frames [0..3] at 10 fps: age 0.35 lands on frame 3, 0.45 wraps to 0.
	if got := AtlasFrame(0.35, 10, 0, 3); got != 3 {
		t.Errorf("frame at 0.35s = %d, want 3", got)
	}
	if got := AtlasFrame(0.45, 10, 0, 3); got != 0 {
		t.Errorf("frame at 0.45s = %d, want 0", got)
	}
	// Ranges not starting at zero stay inside [start, end].
	if got := AtlasFrame(0.0, 10, 5, 8); got != 5 {
		t.Errorf("frame at range start = %d, want 5", got)
	}
	if got := AtlasFrame(10.0, 0, 2, 2); got != 2 {
		t.Errorf("single-frame range = %d, want 2", got)
	}
}

func TestRenderModeIndexCoversAllModes(t *testing.T) {
	// The shader's mode switch depends on these exact values.
	want := map[int32]bool{}
	for i, m := range []int32{
		RenderModeIndex(0), // Normal
		RenderModeIndex(1), // Linked
		RenderModeIndex(2), // Billboard_to_Local_Z
		RenderModeIndex(3), // Billboard_to_World_Z
		RenderModeIndex(4), // Aligned_to_World_Z
		RenderModeIndex(5), // Aligned_to_Particle_Direction
		RenderModeIndex(6), // Motion_Blur
	} {
		if m != int32(i) {
			t.Errorf("render mode %d maps to shader index %d", i, m)
		}
		want[m] = true
	}
	if len(want) != 7 {
		t.Errorf("expected 7 distinct shader indices, got %d", len(want))
	}
}

func TestAxisGizmoScreenPositions(t *testing.T) {
	vp := core.Viewport{Width: 800, Height: 600}
	view := math.Mat4Identity()

	got := AxisGizmoScreenPositions(view, vp)
	if len(got) != 6 {
		t.Fatalf("expected 6 axis endpoints, got %d", len(got))
	}

	center := math.Vec2{X: 800 - 60, Y: 60}
	// With an identity view, +X projects straight right of the center.
	if got[0].X <= center.X || got[0].Y != center.Y {
		t.Errorf("+X endpoint %v not right of center %v", got[0], center)
	}
	// Opposite axes mirror through the center.
	for i := 0; i < 6; i += 2 {
		dx := got[i].X - center.X
		mx := got[i+1].X - center.X
		if dx != -mx {
			t.Errorf("axes %d/%d not mirrored: %v vs %v", i, i+1, got[i], got[i+1])
		}
	}
}
