package editor

import (
	"emitter-editor/math"
)

// GrabMode constrains a move gesture.
type GrabMode int

const (
	GrabNone GrabMode = iota
	GrabFree
	GrabXAxis
	GrabYAxis
	GrabZAxis
	GrabYZPlane // X locked
	GrabXZPlane // Y locked
	GrabXYPlane // Z locked
)

func (m GrabMode) String() string {
	switch m {
	case GrabFree:
		return "move"
	case GrabXAxis:
		return "move X"
	case GrabYAxis:
		return "move Y"
	case GrabZAxis:
		return "move Z"
	case GrabYZPlane:
		return "move YZ"
	case GrabXZPlane:
		return "move XZ"
	case GrabXYPlane:
		return "move XY"
	}
	return "none"
}

// ScaleMode constrains a scale gesture. Only uniform scaling exists today;
// the mode keeps the gesture machinery symmetric with grab and rotate.
type ScaleMode int

const (
	ScaleNone ScaleMode = iota
	ScaleUniform
)

// RotationMode constrains a rotate gesture.
type RotationMode int

const (
	RotateNone RotationMode = iota
	RotateFree
	RotateXAxis
	RotateYAxis
	RotateZAxis
)

func (m RotationMode) String() string {
	switch m {
	case RotateFree:
		return "rotate"
	case RotateXAxis:
		return "rotate X"
	case RotateYAxis:
		return "rotate Y"
	case RotateZAxis:
		return "rotate Z"
	}
	return "none"
}

// MouseToMovement turns an accumulated mouse delta into a world-space
// translation. The unconstrained movement follows the camera: horizontal
// drag along the camera's right axis, vertical drag along its up axis
// (screen Y grows downward, so dy is negated). Axis modes map the drag
// onto the one world axis; plane modes zero the locked axis.
func MouseToMovement(dx, dy, sensitivity float32, camRight, camUp math.Vec3, mode GrabMode) math.Vec3 {
	free := camRight.Mul(dx * sensitivity).Add(camUp.Mul(-dy * sensitivity))

	switch mode {
	case GrabXAxis:
		return axisMovement(dx, dy, sensitivity, camRight, camUp, math.Vec3{X: 1})
	case GrabYAxis:
		return axisMovement(dx, dy, sensitivity, camRight, camUp, math.Vec3{Y: 1})
	case GrabZAxis:
		return axisMovement(dx, dy, sensitivity, camRight, camUp, math.Vec3{Z: 1})
	case GrabYZPlane:
		return math.Vec3{Y: free.Y, Z: free.Z}
	case GrabXZPlane:
		return math.Vec3{X: free.X, Z: free.Z}
	case GrabXYPlane:
		return math.Vec3{X: free.X, Y: free.Y}
	}
	return free
}

// axisMovement constrains the drag to one world axis. Whichever of the
// camera's right/up vectors lines up better with the axis drives it, so
// an axis grab keeps responding at any camera angle.
func axisMovement(dx, dy, sensitivity float32, camRight, camUp math.Vec3, axis math.Vec3) math.Vec3 {
	rightDot := camRight.Dot(axis)
	upDot := camUp.Dot(axis)
	if math.Abs(rightDot) >= math.Abs(upDot) {
		return axis.Mul(dx * sensitivity * rightDot)
	}
	return axis.Mul(-dy * sensitivity * upDot)
}

// MouseToScale applies a uniform scale factor to the start size: dragging
// up (negative dy) grows, dragging down shrinks. Sizes clamp to [0, 500].
func MouseToScale(startX, startY, dy, sensitivity float32) (float32, float32) {
	factor := 1 + -dy*sensitivity
	return math.Clamp(startX*factor, 0, 500), math.Clamp(startY*factor, 0, 500)
}

// MouseToRotation turns a mouse delta into Euler angle deltas in degrees.
// Free rotation maps vertical drag to tilt (X) and horizontal drag to spin
// (Z); single-axis modes use whichever drag direction reads naturally for
// that axis.
func MouseToRotation(dx, dy, sensitivity float32, mode RotationMode) math.Vec3 {
	switch mode {
	case RotateXAxis:
		return math.Vec3{X: dy * sensitivity * 180}
	case RotateYAxis:
		return math.Vec3{Y: dx * sensitivity * 180}
	case RotateZAxis:
		return math.Vec3{Z: dx * sensitivity * 180}
	}
	return math.Vec3{X: dy * sensitivity * 180, Z: dx * sensitivity * 180}
}
