package editor

import (
	stdmath "math"

	"emitter-editor/emitter"
	"emitter-editor/math"
)

// Ray is a world-space picking ray.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// ScreenToRay converts a cursor position into a world-space ray by
// unprojecting through the inverse projection and view matrices.
func ScreenToRay(mouseX, mouseY, width, height float32, view, proj math.Mat4, camPos math.Vec3) Ray {
	ndcX := (2*mouseX)/width - 1
	ndcY := 1 - (2*mouseY)/height

	clip := math.Vec4{X: ndcX, Y: ndcY, Z: 0, W: 1}

	invProj := proj.Inverse()
	eye := invProj.MulVec(clip)
	if eye.W != 0 {
		eye.X /= eye.W
		eye.Y /= eye.W
		eye.Z /= eye.W
	}
	eye.W = 1

	invView := view.Inverse()
	world := invView.MulVec(eye)

	dir := math.Vec3{X: world.X, Y: world.Y, Z: world.Z}.Sub(camPos).Normalize()
	return Ray{Origin: camPos, Direction: dir}
}

// raySphere intersects a ray with a sphere and returns the nearest
// non-negative hit distance, or false when the ray misses.
func raySphere(r Ray, center math.Vec3, radius float32) (float32, bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := float32(stdmath.Sqrt(float64(disc)))
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// pickRadius sizes the click target for an emitter node. Small emitters
// still get a grabbable sphere.
func pickRadius(e *emitter.Emitter) float32 {
	half := e.XSize
	if e.YSize > half {
		half = e.YSize
	}
	half /= 2
	if half+0.2 > 0.5 {
		return half + 0.2
	}
	return 0.5
}

// rayDisc intersects a ray with a flat disc and returns the hit distance,
// or false when the ray misses, is parallel to the disc plane, or the
// intersection lies behind the origin.
func rayDisc(r Ray, center, normal math.Vec3, radius float32) (float32, bool) {
	denom := r.Direction.Dot(normal)
	if math.Abs(denom) < 1e-6 {
		return 0, false
	}
	t := center.Sub(r.Origin).Dot(normal) / denom
	if t < 0 {
		return 0, false
	}
	point := r.Origin.Add(r.Direction.Mul(t))
	if point.Distance(center) > radius {
		return 0, false
	}
	return t, true
}

// coneHit tests the ray against the emitter's spread cone, approximated
// as a sequence of discs along the emission axis. The cone is drawn one
// unit tall, so the proxies cover that same span.
func coneHit(r Ray, e *emitter.Emitter, clock float32) (float32, bool) {
	const steps = 8
	const height = 1.0

	// No cone is drawn for an emitter that cannot emit.
	if e.Velocity <= 0 || e.Spread <= 0 {
		return 0, false
	}

	apex := e.AnimatedPosition(clock)
	axis := e.Orientation().RotateVector(math.Vec3{Z: 1})
	halfAngle := math.Radians(e.Spread / 2)
	tanHalf := math.Tan(halfAngle)

	best := float32(0)
	hit := false
	for i := 1; i <= steps; i++ {
		d := height * float32(i) / steps
		center := apex.Add(axis.Mul(d))
		radius := d * tanHalf
		if radius < 0.1 {
			radius = 0.1
		}
		if t, ok := rayDisc(r, center, axis, radius); ok && (!hit || t < best) {
			best = t
			hit = true
		}
	}
	return best, hit
}

// PickEmitter returns the index of the nearest emitter hit by the ray,
// or -1 when the ray hits nothing. Both the node sphere and the spread
// cone count as clickable surface.
func PickEmitter(doc *emitter.Document, clock float32, r Ray) int {
	picked := -1
	best := float32(stdmath.Inf(1))

	for i := range doc.Emitters {
		e := &doc.Emitters[i]
		pos := e.AnimatedPosition(clock)

		if t, ok := raySphere(r, pos, pickRadius(e)); ok && t < best {
			best = t
			picked = i
		}
		if t, ok := coneHit(r, e, clock); ok && t < best {
			best = t
			picked = i
		}
	}
	return picked
}
