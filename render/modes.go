package render

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"

	"emitter-editor/emitter"
)

// RenderModeIndex maps a render mode to the integer the particle vertex
// shader switches on. Each mode maps explicitly; anything unrecognized
// renders as a camera-facing billboard.
func RenderModeIndex(m emitter.RenderMode) int32 {
	switch m {
	case emitter.RenderNormal:
		return 0
	case emitter.RenderLinked:
		return 1
	case emitter.RenderBillboardLocalZ:
		return 2
	case emitter.RenderBillboardWorldZ:
		return 3
	case emitter.RenderAlignedWorldZ:
		return 4
	case emitter.RenderAlignedParticleDir:
		return 5
	case emitter.RenderMotionBlur:
		return 6
	}
	return 0
}

// BlendFactors returns the GL source and destination blend factors for a
// blend mode. Punch-Through blends like Normal; its hard edge comes from
// the fragment shader's alpha discard.
func BlendFactors(m emitter.BlendMode) (src, dst uint32) {
	switch m {
	case emitter.BlendLighten:
		return gl.SRC_ALPHA, gl.ONE
	case emitter.BlendNormal, emitter.BlendPunchThrough:
		return gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA
	}
	return gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA
}
