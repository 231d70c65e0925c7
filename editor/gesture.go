package editor

import (
	"emitter-editor/emitter"
	"emitter-editor/math"
)

// InteractionMode names the current gesture, if any.
type InteractionMode int

const (
	ModeIdle InteractionMode = iota
	ModeGrabbing
	ModeScaling
	ModeRotating
)

func (m InteractionMode) String() string {
	switch m {
	case ModeGrabbing:
		return "grab"
	case ModeScaling:
		return "scale"
	case ModeRotating:
		return "rotate"
	}
	return "idle"
}

// InteractionState tracks an in-flight transform gesture on one emitter.
// The gesture keeps a snapshot of the whole emitter when it starts, so a
// cancel restores every field exactly, and it re-applies the transform
// from the snapshot on each frame instead of accumulating per-frame
// deltas.
type InteractionState struct {
	Mode     InteractionMode
	Grab     GrabMode
	Scale    ScaleMode
	Rotation RotationMode

	Target   int
	StartX   float32
	StartY   float32
	snapshot emitter.Emitter
}

// Active reports whether a gesture is in progress.
func (s *InteractionState) Active() bool {
	return s.Mode != ModeIdle
}

func (s *InteractionState) begin(mode InteractionMode, target int, e *emitter.Emitter, mouseX, mouseY float32) {
	s.Mode = mode
	s.Target = target
	s.StartX = mouseX
	s.StartY = mouseY
	s.snapshot = *e
	s.snapshot.PositionKeys = e.PositionKeys.Clone()
	s.snapshot.OrientationKeys = e.OrientationKeys.Clone()
}

// BeginGrab starts an unconstrained move gesture.
func (s *InteractionState) BeginGrab(target int, e *emitter.Emitter, mouseX, mouseY float32) {
	s.begin(ModeGrabbing, target, e, mouseX, mouseY)
	s.Grab = GrabFree
}

// BeginScale starts a uniform scale gesture.
func (s *InteractionState) BeginScale(target int, e *emitter.Emitter, mouseX, mouseY float32) {
	s.begin(ModeScaling, target, e, mouseX, mouseY)
	s.Scale = ScaleUniform
}

// BeginRotate starts an unconstrained rotate gesture.
func (s *InteractionState) BeginRotate(target int, e *emitter.Emitter, mouseX, mouseY float32) {
	s.begin(ModeRotating, target, e, mouseX, mouseY)
	s.Rotation = RotateFree
}

// SetGrabMode switches the axis constraint mid-gesture. Picking the mode
// that is already active drops back to free movement.
func (s *InteractionState) SetGrabMode(mode GrabMode) {
	if s.Mode != ModeGrabbing {
		return
	}
	if s.Grab == mode {
		s.Grab = GrabFree
		return
	}
	s.Grab = mode
}

// SetRotationMode switches the axis constraint mid-gesture.
func (s *InteractionState) SetRotationMode(mode RotationMode) {
	if s.Mode != ModeRotating {
		return
	}
	if s.Rotation == mode {
		s.Rotation = RotateFree
		return
	}
	s.Rotation = mode
}

// Apply recomputes the target emitter's transform from the gesture
// snapshot and the total mouse travel since the gesture began.
func (s *InteractionState) Apply(e *emitter.Emitter, mouseX, mouseY, sensitivity float32, camRight, camUp math.Vec3) {
	dx := mouseX - s.StartX
	dy := mouseY - s.StartY

	switch s.Mode {
	case ModeGrabbing:
		delta := MouseToMovement(dx, dy, sensitivity, camRight, camUp, s.Grab)
		e.Position = s.snapshot.Position.Add(delta)
	case ModeScaling:
		e.XSize, e.YSize = MouseToScale(s.snapshot.XSize, s.snapshot.YSize, dy, sensitivity)
	case ModeRotating:
		delta := MouseToRotation(dx, dy, sensitivity, s.Rotation)
		e.RotationAngles = s.snapshot.RotationAngles.Add(delta)
	}
}

// Confirm ends the gesture, leaving the emitter as Apply last left it,
// and returns the snapshot taken at gesture start so the caller can
// record an undo step.
func (s *InteractionState) Confirm() emitter.Emitter {
	before := s.snapshot
	s.reset()
	return before
}

// Cancel restores the emitter from the snapshot and ends the gesture.
func (s *InteractionState) Cancel(e *emitter.Emitter) {
	*e = s.snapshot
	s.reset()
}

// Abort ends the gesture without touching any emitter. Used when the
// target index no longer refers to a live emitter.
func (s *InteractionState) Abort() {
	s.reset()
}

func (s *InteractionState) reset() {
	s.Mode = ModeIdle
	s.Grab = GrabNone
	s.Scale = ScaleNone
	s.Rotation = RotateNone
	s.Target = -1
	s.snapshot = emitter.Emitter{}
}
