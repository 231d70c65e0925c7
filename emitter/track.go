package emitter

import (
	"emitter-editor/math"
)

// Keyframe is one sample of an animation track.
type Keyframe struct {
	Time  float32
	Value math.Vec3
}

// Track is a piecewise-linear animation over keyframes. Keys are kept
// sorted by time; sampling outside the key range clamps to the end keys.
type Track struct {
	Keys []Keyframe
}

// Add inserts a keyframe, keeping the keys ordered by time.
func (t *Track) Add(time float32, value math.Vec3) {
	k := Keyframe{Time: time, Value: value}
	for i, existing := range t.Keys {
		if time < existing.Time {
			t.Keys = append(t.Keys, Keyframe{})
			copy(t.Keys[i+1:], t.Keys[i:])
			t.Keys[i] = k
			return
		}
	}
	t.Keys = append(t.Keys, k)
}

// ValueAt samples the track at the given time with linear interpolation
// between the surrounding keys. An empty track samples to zero.
func (t *Track) ValueAt(time float32) math.Vec3 {
	if len(t.Keys) == 0 {
		return math.Vec3Zero
	}
	if time <= t.Keys[0].Time {
		return t.Keys[0].Value
	}
	last := t.Keys[len(t.Keys)-1]
	if time >= last.Time {
		return last.Value
	}
	for i := 1; i < len(t.Keys); i++ {
		if time < t.Keys[i].Time {
			a, b := t.Keys[i-1], t.Keys[i]
			span := b.Time - a.Time
			if span <= 0 {
				return b.Value
			}
			f := (time - a.Time) / span
			return math.Vec3{
				X: math.Mix(a.Value.X, b.Value.X, f),
				Y: math.Mix(a.Value.Y, b.Value.Y, f),
				Z: math.Mix(a.Value.Z, b.Value.Z, f),
			}
		}
	}
	return last.Value
}

// Duration is the time of the last keyframe, or zero for an empty track.
func (t *Track) Duration() float32 {
	if len(t.Keys) == 0 {
		return 0
	}
	return t.Keys[len(t.Keys)-1].Time
}

// Clone returns a deep copy of the track.
func (t *Track) Clone() Track {
	if len(t.Keys) == 0 {
		return Track{}
	}
	keys := make([]Keyframe, len(t.Keys))
	copy(keys, t.Keys)
	return Track{Keys: keys}
}
