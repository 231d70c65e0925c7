// Package camera provides the editor's turntable orbit camera. The world
// is Z-up; yaw spins the camera around the target on the ground plane and
// pitch tilts it toward the poles.
package camera

import (
	"emitter-editor/math"
)

const (
	defaultDistance = 5.0
	defaultYaw      = 180.0 // camera starts on the -Y side, facing the origin

	minDistance = 0.1
	maxDistance = 50.0
	maxPitch    = 89.0

	orbitSensitivity = 0.5
	panSensitivity   = 0.01
	dollyFactor      = 0.1

	fovDegrees = 45.0
	nearPlane  = 0.1
	farPlane   = 100.0
)

var worldUp = math.Vec3{Z: 1}

// Orbit is a target-locked turntable camera.
type Orbit struct {
	Target   math.Vec3
	Distance float32
	Yaw      float32 // degrees around Z
	Pitch    float32 // degrees above the ground plane

	lastX, lastY float64
	firstMouse   bool
}

func NewOrbit() *Orbit {
	return &Orbit{
		Distance:   defaultDistance,
		Yaw:        defaultYaw,
		firstMouse: true,
	}
}

// Position derives the eye point from the spherical orbit parameters.
func (c *Orbit) Position() math.Vec3 {
	yaw := math.Radians(c.Yaw)
	pitch := math.Radians(c.Pitch)
	return c.Target.Add(math.Vec3{
		X: c.Distance * math.Cos(pitch) * math.Sin(yaw),
		Y: c.Distance * math.Cos(pitch) * math.Cos(yaw),
		Z: c.Distance * math.Sin(pitch),
	})
}

func (c *Orbit) ViewMatrix() math.Mat4 {
	return math.Mat4LookAt(c.Position(), c.Target, worldUp)
}

func (c *Orbit) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Mat4Perspective(math.Radians(fovDegrees), aspect, nearPlane, farPlane)
}

// Forward is the unit view direction, eye toward target.
func (c *Orbit) Forward() math.Vec3 {
	return c.Target.Sub(c.Position()).Normalize()
}

// Right is the camera's screen-right axis in world space.
func (c *Orbit) Right() math.Vec3 {
	return c.Forward().Cross(worldUp).Normalize()
}

// Up is the camera's screen-up axis in world space.
func (c *Orbit) Up() math.Vec3 {
	return c.Right().Cross(c.Forward())
}

// Update consumes one frame of mouse state. Dragging orbits, dragging with
// pan held pans the target, scroll dollies toward or away from the target.
func (c *Orbit) Update(mouseX, mouseY float64, dragging, panning bool, scroll float32) {
	if scroll != 0 {
		c.Distance = math.Clamp(c.Distance*(1-scroll*dollyFactor), minDistance, maxDistance)
	}

	if !dragging {
		c.firstMouse = true
		c.lastX, c.lastY = mouseX, mouseY
		return
	}
	if c.firstMouse {
		c.lastX, c.lastY = mouseX, mouseY
		c.firstMouse = false
		return
	}

	dx := float32(mouseX - c.lastX)
	dy := float32(mouseY - c.lastY)
	c.lastX, c.lastY = mouseX, mouseY

	if panning {
		toEye := c.Position().Sub(c.Target)
		right := toEye.Cross(worldUp).Normalize()
		localUp := right.Cross(toEye).Normalize()
		c.Target = c.Target.
			Add(right.Mul(dx * panSensitivity * c.Distance)).
			Add(localUp.Mul(dy * panSensitivity * c.Distance))
		return
	}

	c.Yaw += dx * orbitSensitivity
	c.Pitch = math.Clamp(c.Pitch+dy*orbitSensitivity, -maxPitch, maxPitch)
}

// Reset restores the default framing.
func (c *Orbit) Reset() {
	c.Target = math.Vec3Zero
	c.Distance = defaultDistance
	c.Yaw = defaultYaw
	c.Pitch = 0
	c.firstMouse = true
}
