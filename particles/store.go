package particles

import (
	"math/rand"

	"emitter-editor/emitter"
	"emitter-editor/math"
)

// DefaultMaxParticles bounds each store's pool.
const DefaultMaxParticles = 500000

// Store holds the simulation state for one emitter: its particle pool, its
// spawn accumulator and its own random source so stores stay independent.
type Store struct {
	particles []Particle
	max       int
	rng       *rand.Rand

	spawnAccum float32
	clock      float32 // simulation time driving animation tracks
}

// NewStore returns an empty store capped at max particles. A max of zero or
// less falls back to DefaultMaxParticles.
func NewStore(max int, seed int64) *Store {
	if max <= 0 {
		max = DefaultMaxParticles
	}
	return &Store{
		max: max,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Particles exposes the pool, inactive slots included. Callers filter on
// Active.
func (s *Store) Particles() []Particle {
	return s.particles
}

// ActiveCount reports how many particles are currently alive.
func (s *Store) ActiveCount() int {
	n := 0
	for i := range s.particles {
		if s.particles[i].Active {
			n++
		}
	}
	return n
}

// Clock is the store's accumulated simulation time.
func (s *Store) Clock() float32 {
	return s.clock
}

// Reset clears all particles and rewinds the clock.
func (s *Store) Reset() {
	s.particles = s.particles[:0]
	s.spawnAccum = 0
	s.clock = 0
}

// Advance steps the store by dt seconds: ages and moves live particles,
// then spawns whatever the emitter's birthrate has accrued.
//
// Drag applies as vel *= (1 - drag*dt), which flips the velocity when
// drag*dt exceeds 1; large steps with strong drag are the caller's problem.
func (s *Store) Advance(e *emitter.Emitter, dt float32) {
	s.clock += dt

	for i := range s.particles {
		p := &s.particles[i]
		if !p.Active {
			continue
		}
		p.Life -= dt
		if p.Life <= 0 {
			p.Active = false
			continue
		}

		p.Position = p.Position.Add(p.Velocity.Mul(dt))
		p.Velocity.Z -= e.Grav * dt
		p.Velocity = p.Velocity.Mul(1 - e.Drag*dt)

		frac := p.LifeFraction()
		p.Color.R = math.Mix(e.ColorEnd.X, e.ColorStart.X, frac)
		p.Color.G = math.Mix(e.ColorEnd.Y, e.ColorStart.Y, frac)
		p.Color.B = math.Mix(e.ColorEnd.Z, e.ColorStart.Z, frac)
		p.Color.A = math.Mix(e.AlphaEnd, e.AlphaStart, frac)
		p.Size = math.Mix(e.SizeEnd, e.SizeStart, frac)

		p.Rotation += e.ParticleRot * dt
	}

	s.spawnNew(e, dt)
}

// spawnNew drains the spawn accumulator. Each update mode decides its own
// continuous-spawn behavior; only Fountain emits over time, the others
// burst through user action and stay quiet here. A full pool stops the
// drain but keeps the backlog, so spawning catches up once slots free.
func (s *Store) spawnNew(e *emitter.Emitter, dt float32) {
	switch e.Update {
	case emitter.UpdateFountain:
		if e.Birthrate <= 0 {
			return
		}
		interval := 1 / e.Birthrate
		s.spawnAccum += dt
		for s.spawnAccum >= interval {
			if !s.spawnOne(e, e.AnimatedPosition(s.clock)) {
				break
			}
			s.spawnAccum -= interval
		}
	case emitter.UpdateSingle, emitter.UpdateExplosion, emitter.UpdateLightning:
		// burst modes, nothing accrues per frame
	}
}

// Burst spawns n particles at once, for the non-continuous update modes.
func (s *Store) Burst(e *emitter.Emitter, n int) {
	at := e.AnimatedPosition(s.clock)
	for i := 0; i < n; i++ {
		s.spawnOne(e, at)
	}
}

// spawnOne fills a free slot with a fresh particle and reports whether it
// found one; a full pool with no inactive slot spawns nothing.
func (s *Store) spawnOne(e *emitter.Emitter, emitterPos math.Vec3) bool {
	var p *Particle
	for i := range s.particles {
		if !s.particles[i].Active {
			p = &s.particles[i]
			break
		}
	}
	if p == nil {
		if len(s.particles) >= s.max {
			return false
		}
		s.particles = append(s.particles, Particle{})
		p = &s.particles[len(s.particles)-1]
	}

	orient := e.Orientation()

	local := math.Vec3{
		X: s.uniform(-e.XSize/2, e.XSize/2),
		Y: s.uniform(-e.YSize/2, e.YSize/2),
	}

	p.Active = true
	p.Life = e.LifeExp
	p.MaxLife = e.LifeExp
	p.Mass = e.Mass
	p.Position = emitterPos.Add(orient.RotateVector(local))

	speed := e.Velocity * s.uniform(0.8, 1.2)
	dir := coneDirection(s.rng, e.Spread)
	p.Velocity = orient.RotateVector(dir.Mul(speed))

	p.Color.R = e.ColorStart.X
	p.Color.G = e.ColorStart.Y
	p.Color.B = e.ColorStart.Z
	p.Color.A = e.AlphaStart
	p.Size = e.SizeStart
	p.Rotation = 0
	return true
}

// coneDirection samples a unit direction inside a cone around local +Z.
// The polar angle is uniform in [0, spread/2] degrees, so samples bunch
// toward the cone axis rather than spreading uniformly over solid angle.
func coneDirection(rng *rand.Rand, spreadDeg float32) math.Vec3 {
	polar := math.Radians(rng.Float32() * spreadDeg / 2)
	azimuth := math.Radians(rng.Float32() * 360)

	sp := math.Sin(polar)
	return math.Vec3{
		X: sp * math.Cos(azimuth),
		Y: sp * math.Sin(azimuth),
		Z: math.Cos(polar),
	}
}

func (s *Store) uniform(lo, hi float32) float32 {
	return lo + s.rng.Float32()*(hi-lo)
}
