package particles

import (
	"emitter-editor/core"
	"emitter-editor/math"
)

// Particle is one live (or reusable) particle slot.
type Particle struct {
	Position math.Vec3
	Velocity math.Vec3
	Color    core.Color
	Size     float32
	Rotation float32 // degrees, accumulated self-rotation
	Life     float32 // seconds remaining
	MaxLife  float32
	Mass     float32
	Active   bool
}

// Age is the time the particle has been alive, used for atlas frame lookup.
func (p *Particle) Age() float32 {
	return p.MaxLife - p.Life
}

// LifeFraction is the remaining share of lifetime, 1 at spawn and 0 at death.
func (p *Particle) LifeFraction() float32 {
	if p.MaxLife <= 0 {
		return 0
	}
	return p.Life / p.MaxLife
}
