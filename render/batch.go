package render

import (
	"emitter-editor/particles"
)

// Vertex layout for the particle shader:
// position(3) + texcoord(2) + color(4) + size(1) + velocity(3) + age(1).
const (
	VertexStride     = 14
	VertsPerParticle = 6 // two triangles, expanded to a quad in the vertex shader
)

// AppendParticles packs every active particle into the vertex buffer
// layout and returns the grown slice. All six corners carry the particle
// center; the shader offsets each corner by its texcoord and the camera
// (or mode-specific) basis.
func AppendParticles(dst []float32, pool []particles.Particle) []float32 {
	corners := [VertsPerParticle][2]float32{
		{0, 0}, {1, 0}, {1, 1}, // first triangle
		{0, 0}, {1, 1}, {0, 1}, // second triangle
	}

	for i := range pool {
		p := &pool[i]
		if !p.Active {
			continue
		}
		age := p.Age()
		for _, uv := range corners {
			dst = append(dst,
				p.Position.X, p.Position.Y, p.Position.Z,
				uv[0], uv[1],
				p.Color.R, p.Color.G, p.Color.B, p.Color.A,
				p.Size,
				p.Velocity.X, p.Velocity.Y, p.Velocity.Z,
				age,
			)
		}
	}
	return dst
}

// AtlasFrame computes the texture atlas frame a particle of the given age
// shows. Frames advance at fps and wrap within [frameStart, frameEnd].
// This mirrors the lookup in the vertex shader and exists so the frame
// math has a CPU-side reference.
func AtlasFrame(age, fps, frameStart, frameEnd float32) int {
	if fps <= 0 {
		fps = 1
	}
	total := frameEnd - frameStart + 1
	if total <= 0 {
		return int(frameStart)
	}
	t := age * fps
	frame := frameStart + mod(t, total)
	return int(frame)
}

func mod(a, b float32) float32 {
	m := a - b*float32(int(a/b))
	if m < 0 {
		m += b
	}
	return m
}
