package editor

import (
	"emitter-editor/core"
)

const (
	MouseLeft   = 0
	MouseRight  = 1
	MouseMiddle = 2
)

// InputManager polls window state once per frame and exposes edge-triggered
// queries on top of it. Scroll accumulates between frames through the GLFW
// callback and is cleared by EndFrame.
type InputManager struct {
	MouseX, MouseY           float32
	MouseDeltaX, MouseDeltaY float32
	ScrollY                  float32

	mouseButtons     [8]bool
	prevMouseButtons [8]bool
	keys             [512]bool
	prevKeys         [512]bool

	ShiftDown bool
	CtrlDown  bool
	AltDown   bool

	firstPoll bool
}

func NewInputManager(window *core.Window) *InputManager {
	im := &InputManager{firstPoll: true}
	window.SetScrollCallback(func(xoff, yoff float64) {
		im.ScrollY += float32(yoff)
	})
	return im
}

var trackedKeys = []int{
	core.Key0, core.Key1, core.Key2, core.Key3, core.Key4,
	core.Key5, core.Key6, core.Key7, core.Key8, core.Key9,
	core.KeyA, core.KeyD, core.KeyG, core.KeyN, core.KeyO,
	core.KeyQ, core.KeyR, core.KeyS, core.KeyX, core.KeyY, core.KeyZ,
	core.KeyEscape, core.KeyEnter, core.KeyTab, core.KeyDelete,
}

// Update polls the window. Call once per frame before event handling.
func (im *InputManager) Update(window *core.Window) {
	x, y := window.GetCursorPos()
	mx, my := float32(x), float32(y)
	if im.firstPoll {
		im.MouseX, im.MouseY = mx, my
		im.firstPoll = false
	}
	im.MouseDeltaX = mx - im.MouseX
	im.MouseDeltaY = my - im.MouseY
	im.MouseX, im.MouseY = mx, my

	im.prevMouseButtons = im.mouseButtons
	for b := 0; b < len(im.mouseButtons); b++ {
		im.mouseButtons[b] = window.IsMouseButtonPressed(b)
	}

	im.prevKeys = im.keys
	for _, k := range trackedKeys {
		if k >= 0 && k < len(im.keys) {
			im.keys[k] = window.IsKeyPressed(k)
		}
	}

	im.ShiftDown = window.IsKeyPressed(core.KeyLeftShift) || window.IsKeyPressed(core.KeyRightShift)
	im.CtrlDown = window.IsKeyPressed(core.KeyLeftControl) || window.IsKeyPressed(core.KeyRightControl)
	im.AltDown = window.IsKeyPressed(core.KeyLeftAlt) || window.IsKeyPressed(core.KeyRightAlt)
}

// EndFrame clears per-frame accumulators. Call after event handling.
func (im *InputManager) EndFrame() {
	im.ScrollY = 0
}

func (im *InputManager) IsMouseDown(button int) bool {
	return button >= 0 && button < len(im.mouseButtons) && im.mouseButtons[button]
}

func (im *InputManager) IsMousePressed(button int) bool {
	return button >= 0 && button < len(im.mouseButtons) &&
		im.mouseButtons[button] && !im.prevMouseButtons[button]
}

func (im *InputManager) IsMouseReleased(button int) bool {
	return button >= 0 && button < len(im.mouseButtons) &&
		!im.mouseButtons[button] && im.prevMouseButtons[button]
}

func (im *InputManager) IsKeyDown(key int) bool {
	return key >= 0 && key < len(im.keys) && im.keys[key]
}

func (im *InputManager) IsKeyPressed(key int) bool {
	return key >= 0 && key < len(im.keys) && im.keys[key] && !im.prevKeys[key]
}

// IsShortcut reports a Ctrl+key press without Shift.
func (im *InputManager) IsShortcut(key int) bool {
	return im.CtrlDown && !im.ShiftDown && im.IsKeyPressed(key)
}

// IsShiftShortcut reports a Ctrl+Shift+key press.
func (im *InputManager) IsShiftShortcut(key int) bool {
	return im.CtrlDown && im.ShiftDown && im.IsKeyPressed(key)
}
