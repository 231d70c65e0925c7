package emitter

import (
	"testing"

	"emitter-editor/math"
)

func TestNewDefault(t *testing.T) {
	e := NewDefault("fire")

	if e.Name != "fire" {
		t.Errorf("expected name fire, got %q", e.Name)
	}
	if e.Update != UpdateFountain {
		t.Errorf("expected Fountain update mode, got %v", e.Update)
	}
	if e.Blend != BlendLighten {
		t.Errorf("expected Lighten blend mode, got %v", e.Blend)
	}
	if e.Birthrate != 2.0 {
		t.Errorf("expected birthrate 2, got %v", e.Birthrate)
	}
	if e.LifeExp != 1.5 {
		t.Errorf("expected lifeExp 1.5, got %v", e.LifeExp)
	}
	if e.XSize != 0.1 || e.YSize != 0.1 {
		t.Errorf("expected 0.1x0.1 emission plane, got %vx%v", e.XSize, e.YSize)
	}
}

func TestModeRoundTrip(t *testing.T) {
	for _, u := range []UpdateMode{UpdateFountain, UpdateSingle, UpdateExplosion, UpdateLightning} {
		if got := ParseUpdateMode(u.String()); got != u {
			t.Errorf("update mode %v round-tripped to %v", u, got)
		}
	}
	for _, r := range []RenderMode{
		RenderNormal, RenderLinked, RenderBillboardLocalZ, RenderBillboardWorldZ,
		RenderAlignedWorldZ, RenderAlignedParticleDir, RenderMotionBlur,
	} {
		if got := ParseRenderMode(r.String()); got != r {
			t.Errorf("render mode %v round-tripped to %v", r, got)
		}
	}
	for _, b := range []BlendMode{BlendNormal, BlendPunchThrough, BlendLighten} {
		if got := ParseBlendMode(b.String()); got != b {
			t.Errorf("blend mode %v round-tripped to %v", b, got)
		}
	}
}

func TestParseModeUnknownFallsBack(t *testing.T) {
	if ParseUpdateMode("Volcano") != UpdateFountain {
		t.Error("unknown update mode should fall back to Fountain")
	}
	if ParseRenderMode("Sideways") != RenderNormal {
		t.Error("unknown render mode should fall back to Normal")
	}
	if ParseBlendMode("Darken") != BlendNormal {
		t.Error("unknown blend mode should fall back to Normal")
	}
}

func TestTrackSampling(t *testing.T) {
	var tr Track
	tr.Add(0, math.NewVec3(0, 0, 0))
	tr.Add(10, math.NewVec3(10, 0, 0))

	mid := tr.ValueAt(5)
	if mid.X != 5 || mid.Y != 0 || mid.Z != 0 {
		t.Errorf("expected (5,0,0) at t=5, got %v", mid)
	}

	before := tr.ValueAt(-3)
	if before.X != 0 {
		t.Errorf("expected clamp to first key before range, got %v", before)
	}
	after := tr.ValueAt(25)
	if after.X != 10 {
		t.Errorf("expected clamp to last key past range, got %v", after)
	}
}

func TestTrackAddKeepsOrder(t *testing.T) {
	var tr Track
	tr.Add(10, math.NewVec3(10, 0, 0))
	tr.Add(0, math.NewVec3(0, 0, 0))
	tr.Add(5, math.NewVec3(0, 5, 0))

	times := []float32{0, 5, 10}
	for i, want := range times {
		if tr.Keys[i].Time != want {
			t.Fatalf("key %d at time %v, want %v", i, tr.Keys[i].Time, want)
		}
	}
	if got := tr.ValueAt(5); got.Y != 5 {
		t.Errorf("expected Y=5 at t=5, got %v", got)
	}
}

func TestTrackEmpty(t *testing.T) {
	var tr Track
	if got := tr.ValueAt(3); got != math.Vec3Zero {
		t.Errorf("empty track should sample to zero, got %v", got)
	}
	if tr.Duration() != 0 {
		t.Errorf("empty track duration should be 0, got %v", tr.Duration())
	}
}

func TestAnimatedPositionFallsBackToStatic(t *testing.T) {
	e := NewDefault("e")
	e.Position = math.NewVec3(1, 2, 3)
	if got := e.AnimatedPosition(7); got != e.Position {
		t.Errorf("expected static position without keys, got %v", got)
	}

	e.PositionKeys.Add(0, math.NewVec3(0, 0, 0))
	e.PositionKeys.Add(2, math.NewVec3(4, 0, 0))
	if got := e.AnimatedPosition(1); got.X != 2 {
		t.Errorf("expected X=2 at t=1, got %v", got)
	}
}

func TestDocumentAddRemove(t *testing.T) {
	d := NewDocument()
	if len(d.Emitters) != 1 {
		t.Fatalf("new document should hold one emitter, got %d", len(d.Emitters))
	}

	i := d.Add()
	if i != 1 || len(d.Emitters) != 2 {
		t.Fatalf("Add returned %d with %d emitters", i, len(d.Emitters))
	}
	if d.Emitters[1].Name == d.Emitters[0].Name {
		t.Errorf("added emitter reused name %q", d.Emitters[1].Name)
	}

	d.Remove(0)
	if len(d.Emitters) != 1 {
		t.Fatalf("expected 1 emitter after remove, got %d", len(d.Emitters))
	}
	d.Remove(5) // out of range is a no-op
	if len(d.Emitters) != 1 {
		t.Fatalf("out-of-range remove changed count to %d", len(d.Emitters))
	}
}

func TestDocumentDuplicateNaming(t *testing.T) {
	d := NewDocument()
	d.Emitters[0].Name = "flame"

	i := d.Duplicate(0)
	if i < 0 {
		t.Fatal("duplicate failed")
	}
	if d.Emitters[i].Name != "flame_2" {
		t.Errorf("expected flame_2, got %q", d.Emitters[i].Name)
	}

	j := d.Duplicate(i)
	if d.Emitters[j].Name != "flame_3" {
		t.Errorf("expected flame_3, got %q", d.Emitters[j].Name)
	}

	if d.Duplicate(99) != -1 {
		t.Error("out-of-range duplicate should return -1")
	}
}

func TestDocumentDuplicateCopiesTracks(t *testing.T) {
	d := NewDocument()
	d.Emitters[0].PositionKeys.Add(0, math.NewVec3(1, 0, 0))

	i := d.Duplicate(0)
	d.Emitters[i].PositionKeys.Keys[0].Value.X = 99
	if d.Emitters[0].PositionKeys.Keys[0].Value.X != 1 {
		t.Error("duplicate shares position track storage with original")
	}
}

func TestDocumentReset(t *testing.T) {
	d := NewDocument()
	d.Add()
	d.Add()
	d.SetModelName("torch")
	d.Reset()

	if len(d.Emitters) != 1 {
		t.Errorf("reset should leave one emitter, got %d", len(d.Emitters))
	}
	if d.ModelName != "emitter_model" {
		t.Errorf("reset should clear model name, got %q", d.ModelName)
	}
	if d.Dirty {
		t.Error("reset document should not be dirty")
	}
}
