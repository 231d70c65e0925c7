package render

import (
	"fmt"
	"log"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"emitter-editor/core"
	"emitter-editor/emitter"
	"emitter-editor/math"
	"emitter-editor/particles"
)

const (
	gridExtent = 10.0
	gridLines  = 21

	gizmoMargin = 60.0
	gizmoSize   = 40.0

	initialParticleVerts = 6 * 1000
)

// gizmoAxes are the world directions the corner axis gizmo draws, paired
// with their line colors (positive axes bright, negative dim).
var gizmoAxes = []struct {
	dir   math.Vec3
	color core.Color
}{
	{math.Vec3{X: 1}, core.Color{R: 1, G: 0.4, B: 0.4, A: 1}},
	{math.Vec3{X: -1}, core.Color{R: 0.7, G: 0.3, B: 0.3, A: 1}},
	{math.Vec3{Y: 1}, core.Color{R: 0.4, G: 1, B: 0.4, A: 1}},
	{math.Vec3{Y: -1}, core.Color{R: 0.3, G: 0.7, B: 0.3, A: 1}},
	{math.Vec3{Z: 1}, core.Color{R: 0.4, G: 0.4, B: 1, A: 1}},
	{math.Vec3{Z: -1}, core.Color{R: 0.3, G: 0.3, B: 0.7, A: 1}},
}

// Renderer draws the editor scene: ground grid, emitter nodes, particle
// batches and the orientation gizmo. It owns all GL objects it creates.
type Renderer struct {
	particleProg uint32
	lineProg     uint32

	particleVAO uint32
	particleVBO uint32
	particleCap int // capacity of particleVBO in floats

	lineVAO uint32
	lineVBO uint32
	lineCap int

	// particle shader uniforms
	viewLoc       int32
	projLoc       int32
	renderModeLoc int32
	xGridLoc      int32
	yGridLoc      int32
	fpsLoc        int32
	frameStartLoc int32
	frameEndLoc   int32
	hasTextureLoc int32
	texLoc        int32

	// line shader uniforms
	lineViewLoc  int32
	lineProjLoc  int32
	lineModelLoc int32
	lineColorLoc int32

	// offscreen viewport target
	fbo      uint32
	fboColor uint32
	fboDepth uint32
	fbWidth  int
	fbHeight int

	view math.Mat4
	proj math.Mat4

	textures *textureCache
	refModel *RefModel
	scratch  []float32
}

// NewRenderer compiles the shader programs and sets up vertex state. It
// requires a current GL context.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{
		textures: newTextureCache(),
		view:     math.Mat4Identity(),
		proj:     math.Mat4Identity(),
	}

	var err error
	if r.particleProg, err = newProgram(particleVertSrc, particleFragSrc); err != nil {
		return nil, fmt.Errorf("particle shader: %w", err)
	}
	if r.lineProg, err = newProgram(lineVertSrc, lineFragSrc); err != nil {
		return nil, fmt.Errorf("line shader: %w", err)
	}

	r.viewLoc = gl.GetUniformLocation(r.particleProg, gl.Str("view\x00"))
	r.projLoc = gl.GetUniformLocation(r.particleProg, gl.Str("projection\x00"))
	r.renderModeLoc = gl.GetUniformLocation(r.particleProg, gl.Str("renderMode\x00"))
	r.xGridLoc = gl.GetUniformLocation(r.particleProg, gl.Str("xGrid\x00"))
	r.yGridLoc = gl.GetUniformLocation(r.particleProg, gl.Str("yGrid\x00"))
	r.fpsLoc = gl.GetUniformLocation(r.particleProg, gl.Str("fps\x00"))
	r.frameStartLoc = gl.GetUniformLocation(r.particleProg, gl.Str("frameStart\x00"))
	r.frameEndLoc = gl.GetUniformLocation(r.particleProg, gl.Str("frameEnd\x00"))
	r.hasTextureLoc = gl.GetUniformLocation(r.particleProg, gl.Str("hasTexture\x00"))
	r.texLoc = gl.GetUniformLocation(r.particleProg, gl.Str("particleTexture\x00"))

	r.lineViewLoc = gl.GetUniformLocation(r.lineProg, gl.Str("view\x00"))
	r.lineProjLoc = gl.GetUniformLocation(r.lineProg, gl.Str("projection\x00"))
	r.lineModelLoc = gl.GetUniformLocation(r.lineProg, gl.Str("model\x00"))
	r.lineColorLoc = gl.GetUniformLocation(r.lineProg, gl.Str("lineColor\x00"))

	r.setupParticleBuffers()
	r.setupLineBuffers()

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.DEPTH_TEST)
	gl.LineWidth(1)

	return r, nil
}

func (r *Renderer) setupParticleBuffers() {
	gl.GenVertexArrays(1, &r.particleVAO)
	gl.GenBuffers(1, &r.particleVBO)

	gl.BindVertexArray(r.particleVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.particleVBO)

	r.particleCap = VertexStride * initialParticleVerts
	gl.BufferData(gl.ARRAY_BUFFER, 4*r.particleCap, nil, gl.DYNAMIC_DRAW)

	stride := int32(VertexStride * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, stride, 5*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(3, 1, gl.FLOAT, false, stride, 9*4)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointerWithOffset(4, 3, gl.FLOAT, false, stride, 10*4)
	gl.EnableVertexAttribArray(4)
	gl.VertexAttribPointerWithOffset(5, 1, gl.FLOAT, false, stride, 13*4)
	gl.EnableVertexAttribArray(5)

	gl.BindVertexArray(0)
}

func (r *Renderer) setupLineBuffers() {
	gl.GenVertexArrays(1, &r.lineVAO)
	gl.GenBuffers(1, &r.lineVBO)

	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)

	r.lineCap = 3 * 300
	gl.BufferData(gl.ARRAY_BUFFER, 4*r.lineCap, nil, gl.DYNAMIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
}

// SetCamera installs the view and projection for the frame.
func (r *Renderer) SetCamera(view, proj math.Mat4) {
	r.view = view
	r.proj = proj
}

// SetTextureDir points bare texture names at a directory.
func (r *Renderer) SetTextureDir(dir string) {
	r.textures.SetDir(dir)
}

// SetRefModel installs (or clears, with nil) a reference model wireframe.
func (r *Renderer) SetRefModel(m *RefModel) {
	r.refModel = m
}

// DrawScene renders one frame of the world: grid, root node, reference
// wireframe, every emitter's particles, then the emitter nodes on top.
// Simulation must already have been advanced by the caller.
func (r *Renderer) DrawScene(doc *emitter.Document, sys *particles.System, selected int) {
	r.drawGrid()
	r.drawDummyNode(math.Vec3Zero)
	if r.refModel != nil {
		r.drawRefModel(r.refModel)
	}

	for i := range doc.Emitters {
		if s := sys.Store(i); s != nil {
			r.drawParticles(&doc.Emitters[i], s)
		}
	}

	gl.DepthMask(true)
	for i := range doc.Emitters {
		clock := float32(0)
		if s := sys.Store(i); s != nil {
			clock = s.Clock()
		}
		r.drawEmitterNode(&doc.Emitters[i], i == selected, clock)
	}
}

func (r *Renderer) drawParticles(e *emitter.Emitter, store *particles.Store) {
	r.scratch = AppendParticles(r.scratch[:0], store.Particles())
	if len(r.scratch) == 0 {
		return
	}

	gl.UseProgram(r.particleProg)
	gl.UniformMatrix4fv(r.viewLoc, 1, false, (*float32)(unsafe.Pointer(&r.view[0][0])))
	gl.UniformMatrix4fv(r.projLoc, 1, false, (*float32)(unsafe.Pointer(&r.proj[0][0])))
	gl.Uniform1i(r.renderModeLoc, RenderModeIndex(e.Render))
	gl.Uniform1i(r.xGridLoc, int32(e.XGrid))
	gl.Uniform1i(r.yGridLoc, int32(e.YGrid))

	fps := e.FPS
	if fps <= 0 {
		fps = 1
	}
	frameEnd := e.FrameEnd
	if frameEnd <= 0 {
		frameEnd = float32(e.XGrid*e.YGrid - 1)
	}
	gl.Uniform1f(r.fpsLoc, fps)
	gl.Uniform1f(r.frameStartLoc, e.FrameStart)
	gl.Uniform1f(r.frameEndLoc, frameEnd)

	tex := r.textures.Get(e.TextureRef())
	if tex != 0 {
		gl.Uniform1i(r.hasTextureLoc, 1)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, tex)
		gl.Uniform1i(r.texLoc, 0)
	} else {
		gl.Uniform1i(r.hasTextureLoc, 0)
	}

	src, dst := BlendFactors(e.Blend)
	gl.BlendFunc(src, dst)

	gl.BindVertexArray(r.particleVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.particleVBO)
	if len(r.scratch) > r.particleCap {
		// grow only, never shrink
		r.particleCap = len(r.scratch) * 2
		gl.BufferData(gl.ARRAY_BUFFER, 4*r.particleCap, nil, gl.DYNAMIC_DRAW)
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, 4*len(r.scratch), gl.Ptr(r.scratch))

	// Particles read depth but never write it, so they layer over the
	// grid without punching holes in each other.
	gl.DepthMask(false)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(r.scratch)/VertexStride))
	gl.DepthMask(true)

	gl.BindVertexArray(0)
	gl.UseProgram(0)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}

// drawLines pushes raw position triples through the line shader.
func (r *Renderer) drawLines(verts []float32, model math.Mat4, color core.Color) {
	if len(verts) == 0 {
		return
	}

	gl.UseProgram(r.lineProg)
	gl.UniformMatrix4fv(r.lineViewLoc, 1, false, (*float32)(unsafe.Pointer(&r.view[0][0])))
	gl.UniformMatrix4fv(r.lineProjLoc, 1, false, (*float32)(unsafe.Pointer(&r.proj[0][0])))
	gl.UniformMatrix4fv(r.lineModelLoc, 1, false, (*float32)(unsafe.Pointer(&model[0][0])))
	gl.Uniform3f(r.lineColorLoc, color.R, color.G, color.B)

	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	if len(verts) > r.lineCap {
		r.lineCap = len(verts) * 2
		gl.BufferData(gl.ARRAY_BUFFER, 4*r.lineCap, nil, gl.DYNAMIC_DRAW)
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, 4*len(verts), gl.Ptr(verts))
	gl.DrawArrays(gl.LINES, 0, int32(len(verts)/3))

	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

func (r *Renderer) drawGrid() {
	var verts []float32
	step := gridExtent / float32(gridLines-1) * 2

	for i := 0; i < gridLines; i++ {
		pos := -gridExtent + float32(i)*step
		verts = append(verts,
			-gridExtent, pos, 0, gridExtent, pos, 0,
			pos, -gridExtent, 0, pos, gridExtent, 0,
		)
	}
	r.drawLines(verts, math.Mat4Identity(), core.Color{R: 0.4, G: 0.4, B: 0.4, A: 1})

	axes := []float32{
		-gridExtent, 0, 0, gridExtent, 0, 0,
		0, -gridExtent, 0, 0, gridExtent, 0,
	}
	r.drawLines(axes, math.Mat4Identity(), core.Color{R: 0.7, G: 0.7, B: 0.7, A: 1})
}

func (r *Renderer) drawDummyNode(pos math.Vec3) {
	const s = 0.5
	cross := []float32{
		-s, 0, 0, s, 0, 0,
		0, -s, 0, 0, s, 0,
		0, 0, -s, 0, 0, s,
	}
	r.drawLines(cross, math.Mat4Translation(pos), core.Color{R: 1, G: 1, B: 0, A: 1})
}

func (r *Renderer) drawEmitterNode(e *emitter.Emitter, selected bool, clock float32) {
	model := e.Orientation().ToMat4().Mul(math.Mat4Translation(e.AnimatedPosition(clock)))

	color := core.Color{R: 0, G: 0.4, B: 0.4, A: 1}
	if selected {
		color = core.Color{R: 0, G: 1, B: 1, A: 1}
	}

	var verts []float32
	if e.XSize > 0 || e.YSize > 0 {
		hx, hy := e.XSize/2, e.YSize/2
		verts = []float32{
			-hx, -hy, 0, hx, -hy, 0,
			hx, -hy, 0, hx, hy, 0,
			hx, hy, 0, -hx, hy, 0,
			-hx, hy, 0, -hx, -hy, 0,
		}
	} else {
		const s = 0.3
		verts = []float32{
			-s, 0, 0, s, 0, 0,
			0, -s, 0, 0, s, 0,
		}
	}

	// Emission indicator: center line up the local Z axis plus four cone
	// edges at the half spread angle.
	if e.Velocity > 0 {
		const arrow = 1.0
		verts = append(verts, 0, 0, 0, 0, 0, arrow)
		if e.Spread > 0 {
			half := math.Radians(e.Spread / 2)
			sx := math.Sin(half) * arrow
			sz := math.Cos(half) * arrow
			verts = append(verts,
				0, 0, 0, -sx, 0, sz,
				0, 0, 0, sx, 0, sz,
				0, 0, 0, 0, -sx, sz,
				0, 0, 0, 0, sx, sz,
			)
		}
	}

	r.drawLines(verts, model, color)
}

// DrawAxisGizmo paints the world-axis compass in the top-right corner in
// screen space, always on top.
func (r *Renderer) DrawAxisGizmo(vp core.Viewport) {
	savedView, savedProj := r.view, r.proj
	r.proj = math.Mat4Orthographic(0, float32(vp.Width), 0, float32(vp.Height), -1, 1)
	worldView := r.view
	r.view = math.Mat4Identity()

	gl.Disable(gl.DEPTH_TEST)

	center := gizmoCenter(vp)
	for _, axis := range gizmoAxes {
		end := gizmoEndpoint(worldView, axis.dir, center)
		r.drawLines([]float32{center.X, center.Y, 0, end.X, end.Y, 0},
			math.Mat4Identity(), axis.color)
	}

	gl.Enable(gl.DEPTH_TEST)
	r.view, r.proj = savedView, savedProj
}

// AxisGizmoScreenPositions returns the screen endpoint of each gizmo axis
// for the axes +X, -X, +Y, -Y, +Z, -Z, for hit-testing the gizmo.
func AxisGizmoScreenPositions(view math.Mat4, vp core.Viewport) []math.Vec2 {
	center := gizmoCenter(vp)
	out := make([]math.Vec2, 0, len(gizmoAxes))
	for _, axis := range gizmoAxes {
		out = append(out, gizmoEndpoint(view, axis.dir, center))
	}
	return out
}

func gizmoCenter(vp core.Viewport) math.Vec2 {
	return math.Vec2{X: float32(vp.Width) - gizmoMargin, Y: gizmoMargin}
}

func gizmoEndpoint(view math.Mat4, dir math.Vec3, center math.Vec2) math.Vec2 {
	v := view.MulVec(dir.ToVec4(0))
	return math.Vec2{X: center.X + v.X*gizmoSize, Y: center.Y + v.Y*gizmoSize}
}

// BeginOffscreen targets rendering at an offscreen color texture sized to
// the viewport, recreating it on resize. EndOffscreen restores the default
// framebuffer; ColorTexture exposes the result.
func (r *Renderer) BeginOffscreen(vp core.Viewport) {
	r.ensureFramebuffer(vp.Width, vp.Height)

	gl.BindFramebuffer(gl.FRAMEBUFFER, r.fbo)
	gl.Viewport(0, 0, int32(vp.Width), int32(vp.Height))
	gl.ClearColor(0.15, 0.15, 0.15, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (r *Renderer) EndOffscreen() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

func (r *Renderer) ColorTexture() uint32 {
	return r.fboColor
}

func (r *Renderer) ensureFramebuffer(width, height int) {
	if r.fbo != 0 && r.fbWidth == width && r.fbHeight == height {
		return
	}
	r.destroyFramebuffer()
	r.fbWidth, r.fbHeight = width, height

	gl.GenFramebuffers(1, &r.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, r.fbo)

	gl.GenTextures(1, &r.fboColor)
	gl.BindTexture(gl.TEXTURE_2D, r.fboColor)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB, int32(width), int32(height), 0,
		gl.RGB, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, r.fboColor, 0)

	gl.GenRenderbuffers(1, &r.fboDepth)
	gl.BindRenderbuffer(gl.RENDERBUFFER, r.fboDepth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT, int32(width), int32(height))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, r.fboDepth)

	if gl.CheckFramebufferStatus(gl.FRAMEBUFFER) != gl.FRAMEBUFFER_COMPLETE {
		log.Printf("viewport framebuffer incomplete at %dx%d", width, height)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

func (r *Renderer) destroyFramebuffer() {
	if r.fbo != 0 {
		gl.DeleteFramebuffers(1, &r.fbo)
		r.fbo = 0
	}
	if r.fboColor != 0 {
		gl.DeleteTextures(1, &r.fboColor)
		r.fboColor = 0
	}
	if r.fboDepth != 0 {
		gl.DeleteRenderbuffers(1, &r.fboDepth)
		r.fboDepth = 0
	}
	r.fbWidth, r.fbHeight = 0, 0
}

// Destroy frees every GL object the renderer owns.
func (r *Renderer) Destroy() {
	r.destroyFramebuffer()
	r.textures.Destroy()
	r.refModel = nil
	if r.particleProg != 0 {
		gl.DeleteProgram(r.particleProg)
		r.particleProg = 0
	}
	if r.lineProg != 0 {
		gl.DeleteProgram(r.lineProg)
		r.lineProg = 0
	}
	if r.particleVAO != 0 {
		gl.DeleteVertexArrays(1, &r.particleVAO)
		r.particleVAO = 0
	}
	if r.particleVBO != 0 {
		gl.DeleteBuffers(1, &r.particleVBO)
		r.particleVBO = 0
	}
	if r.lineVAO != 0 {
		gl.DeleteVertexArrays(1, &r.lineVAO)
		r.lineVAO = 0
	}
	if r.lineVBO != 0 {
		gl.DeleteBuffers(1, &r.lineVBO)
		r.lineVBO = 0
	}
}
