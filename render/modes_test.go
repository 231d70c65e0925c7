package render

import (
	"testing"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"emitter-editor/emitter"
)

func TestBlendFactors(t *testing.T) {
	cases := []struct {
		mode     emitter.BlendMode
		src, dst uint32
	}{
		{emitter.BlendNormal, gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA},
		{emitter.BlendPunchThrough, gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA},
		{emitter.BlendLighten, gl.SRC_ALPHA, gl.ONE},
	}
	for _, c := range cases {
		src, dst := BlendFactors(c.mode)
		if src != c.src || dst != c.dst {
			t.Errorf("%v: got (%v,%v), want (%v,%v)", c.mode, src, dst, c.src, c.dst)
		}
	}
}
