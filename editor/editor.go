package editor

import (
	"log"

	"emitter-editor/camera"
	"emitter-editor/core"
	"emitter-editor/emitter"
	"emitter-editor/math"
	"emitter-editor/particles"
)

const defaultSensitivity = 0.01

// Editor drives one frame of the application: input polling, shortcut
// handling, gesture updates, camera control, and particle simulation.
type Editor struct {
	Doc      *emitter.Document
	Sys      *particles.System
	History  *History
	Input    *InputManager
	Camera   *camera.Orbit
	Gesture  InteractionState
	Selected int

	// Sensitivity scales mouse travel for move, scale, and rotate gestures.
	Sensitivity float32

	// ViewportHovered gates picking and gesture starts, so clicks on
	// surrounding UI never reach the scene.
	ViewportHovered bool
}

func NewEditor(doc *emitter.Document, sys *particles.System, window *core.Window) *Editor {
	return &Editor{
		Doc:             doc,
		Sys:             sys,
		History:         NewHistory(100),
		Input:           NewInputManager(window),
		Camera:          camera.NewOrbit(),
		Selected:        0,
		Sensitivity:     defaultSensitivity,
		ViewportHovered: true,
	}
}

// Update runs one editor frame.
func (ed *Editor) Update(window *core.Window, dt float32, vp core.Viewport) {
	ed.Input.Update(window)

	ed.clampSelection()

	if ed.Gesture.Active() {
		ed.updateGesture(vp)
	} else {
		ed.handleShortcuts(vp)
	}
	// Orbiting is on its own mouse button, so it stays live during
	// gestures.
	ed.updateCamera()

	ed.advanceSimulation(dt)
	ed.Input.EndFrame()
}

// clampSelection drops a selection that no longer refers to a live
// emitter. A stale gesture target aborts the gesture without touching
// the document.
func (ed *Editor) clampSelection() {
	if ed.Selected >= len(ed.Doc.Emitters) {
		ed.Selected = len(ed.Doc.Emitters) - 1
	}
	if ed.Gesture.Active() &&
		(ed.Gesture.Target < 0 || ed.Gesture.Target >= len(ed.Doc.Emitters)) {
		ed.Gesture.Abort()
	}
}

func (ed *Editor) updateGesture(vp core.Viewport) {
	if !ed.Gesture.Active() {
		return
	}
	in := ed.Input
	target := &ed.Doc.Emitters[ed.Gesture.Target]

	// Axis constraints switch mid-gesture. Shift+axis locks to the
	// plane that excludes that axis (move only).
	if ed.Gesture.Mode == ModeGrabbing {
		switch {
		case in.ShiftDown && in.IsKeyPressed(core.KeyX):
			ed.Gesture.SetGrabMode(GrabYZPlane)
		case in.ShiftDown && in.IsKeyPressed(core.KeyY):
			ed.Gesture.SetGrabMode(GrabXZPlane)
		case in.ShiftDown && in.IsKeyPressed(core.KeyZ):
			ed.Gesture.SetGrabMode(GrabXYPlane)
		case in.IsKeyPressed(core.KeyX):
			ed.Gesture.SetGrabMode(GrabXAxis)
		case in.IsKeyPressed(core.KeyY):
			ed.Gesture.SetGrabMode(GrabYAxis)
		case in.IsKeyPressed(core.KeyZ):
			ed.Gesture.SetGrabMode(GrabZAxis)
		}
	}
	if ed.Gesture.Mode == ModeRotating {
		switch {
		case in.IsKeyPressed(core.KeyX):
			ed.Gesture.SetRotationMode(RotateXAxis)
		case in.IsKeyPressed(core.KeyY):
			ed.Gesture.SetRotationMode(RotateYAxis)
		case in.IsKeyPressed(core.KeyZ):
			ed.Gesture.SetRotationMode(RotateZAxis)
		}
	}

	ed.Gesture.Apply(target, in.MouseX, in.MouseY, ed.Sensitivity, ed.Camera.Right(), ed.Camera.Up())

	switch {
	case in.IsMousePressed(MouseLeft) || in.IsKeyPressed(core.KeyEnter):
		index := ed.Gesture.Target
		before := ed.Gesture.Confirm()
		label := "transform"
		switch {
		case before.Position != target.Position:
			label = "move"
		case before.XSize != target.XSize || before.YSize != target.YSize:
			label = "scale"
		case before.RotationAngles != target.RotationAngles:
			label = "rotate"
		}
		ed.History.Record(NewTransformCommand(ed.Doc, index, before, *target, label))
		ed.Doc.Dirty = true
	case in.IsMousePressed(MouseRight) || in.IsKeyPressed(core.KeyEscape):
		ed.Gesture.Cancel(target)
	}
}

func (ed *Editor) handleShortcuts(vp core.Viewport) {
	in := ed.Input

	switch {
	case in.IsShortcut(core.KeyZ):
		if err := ed.History.Undo(); err != nil {
			log.Printf("undo failed: %v", err)
		}
		return
	case in.IsShiftShortcut(core.KeyZ):
		if err := ed.History.Redo(); err != nil {
			log.Printf("redo failed: %v", err)
		}
		return
	case in.IsShortcut(core.KeyD):
		if ed.validSelection() {
			cmd := NewDuplicateEmitterCommand(ed.Doc, ed.Selected)
			if err := ed.History.Do(cmd); err != nil {
				log.Printf("duplicate failed: %v", err)
				return
			}
			ed.Selected = cmd.Index()
		}
		return
	}

	switch {
	case in.IsKeyPressed(core.KeyN):
		cmd := NewAddEmitterCommand(ed.Doc)
		if err := ed.History.Do(cmd); err == nil {
			ed.Selected = cmd.Index()
		}
	case in.IsKeyPressed(core.KeyDelete):
		if ed.validSelection() {
			cmd := NewRemoveEmitterCommand(ed.Doc, ed.Selected)
			if err := ed.History.Do(cmd); err != nil {
				log.Printf("remove failed: %v", err)
			}
		}
	case in.IsKeyPressed(core.KeyG):
		ed.startGesture(ModeGrabbing)
	case in.IsKeyPressed(core.KeyS) && !in.CtrlDown:
		ed.startGesture(ModeScaling)
	case in.IsKeyPressed(core.KeyR):
		ed.startGesture(ModeRotating)
	case in.IsMousePressed(MouseLeft) && ed.ViewportHovered:
		ed.pickAt(vp)
	}
}

func (ed *Editor) startGesture(mode InteractionMode) {
	if !ed.ViewportHovered || !ed.validSelection() {
		return
	}
	in := ed.Input
	e := &ed.Doc.Emitters[ed.Selected]
	switch mode {
	case ModeGrabbing:
		ed.Gesture.BeginGrab(ed.Selected, e, in.MouseX, in.MouseY)
	case ModeScaling:
		ed.Gesture.BeginScale(ed.Selected, e, in.MouseX, in.MouseY)
	case ModeRotating:
		ed.Gesture.BeginRotate(ed.Selected, e, in.MouseX, in.MouseY)
	}
}

func (ed *Editor) pickAt(vp core.Viewport) {
	view := ed.Camera.ViewMatrix()
	proj := ed.Camera.ProjectionMatrix(vp.Aspect())
	ray := ScreenToRay(ed.Input.MouseX, ed.Input.MouseY,
		float32(vp.Width), float32(vp.Height), view, proj, ed.Camera.Position())

	clock := ed.simClock()
	if idx := PickEmitter(ed.Doc, clock, ray); idx >= 0 {
		ed.Selected = idx
	}
}

// simClock reports the selected emitter's simulation time, for sampling
// keyed positions the same way the renderer does.
func (ed *Editor) simClock() float32 {
	if st := ed.Sys.Store(ed.Selected); st != nil {
		return st.Clock()
	}
	return 0
}

func (ed *Editor) updateCamera() {
	in := ed.Input
	dragging := in.IsMouseDown(MouseMiddle)
	panning := dragging && in.ShiftDown
	scroll := float32(0)
	if ed.ViewportHovered {
		scroll = in.ScrollY
	}
	ed.Camera.Update(float64(in.MouseX), float64(in.MouseY), dragging, panning, scroll)

	if in.IsKeyPressed(core.KeyO) {
		ed.Camera.Reset()
	}
}

func (ed *Editor) advanceSimulation(dt float32) {
	ed.Sys.EnsureStores(len(ed.Doc.Emitters))
	for i := range ed.Doc.Emitters {
		if st := ed.Sys.Store(i); st != nil {
			st.Advance(&ed.Doc.Emitters[i], dt)
		}
	}
}

func (ed *Editor) validSelection() bool {
	return ed.Selected >= 0 && ed.Selected < len(ed.Doc.Emitters)
}

// SelectedEmitter returns the selected emitter, or nil when nothing is
// selected.
func (ed *Editor) SelectedEmitter() *emitter.Emitter {
	if !ed.validSelection() {
		return nil
	}
	return &ed.Doc.Emitters[ed.Selected]
}

// CameraAxes exposes the camera basis used by move gestures.
func (ed *Editor) CameraAxes() (right, up math.Vec3) {
	return ed.Camera.Right(), ed.Camera.Up()
}

// ActiveParticleCount reports the live particle count for emitter i.
func (ed *Editor) ActiveParticleCount(i int) int {
	if st := ed.Sys.Store(i); st != nil {
		return st.ActiveCount()
	}
	return 0
}

// TotalParticleCount reports the live particle count across all emitters.
func (ed *Editor) TotalParticleCount() int {
	return ed.Sys.TotalActive()
}
