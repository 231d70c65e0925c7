// Package mdl reads and writes ASCII model files holding emitter nodes.
//
// The file format is Y-up; the editor works in Z-up. Both axis conventions
// meet only here: positions swap Y and Z on the way through, orientations
// are rotated a quarter turn about the Z axis.
package mdl

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"emitter-editor/emitter"
	"emitter-editor/math"
)

// Encode renders the document as ASCII model text.
func Encode(d *emitter.Document) string {
	var b strings.Builder

	name := d.ModelName
	if name == "" {
		name = "emitter_model"
	}

	fmt.Fprintf(&b, "#MAXMODEL ASCII\n")
	fmt.Fprintf(&b, "# model: %s\n", name)
	fmt.Fprintf(&b, "newmodel %s\n", name)
	fmt.Fprintf(&b, "setsupermodel %s NULL\n", name)
	fmt.Fprintf(&b, "classification effect\n")
	fmt.Fprintf(&b, "setanimationscale 1\n")
	fmt.Fprintf(&b, "#MAXGEOM ASCII\n")
	fmt.Fprintf(&b, "beginmodelgeom %s\n", name)

	fmt.Fprintf(&b, "node dummy %s\n", name)
	fmt.Fprintf(&b, "  parent NULL\n")
	fmt.Fprintf(&b, "endnode\n")

	for i := range d.Emitters {
		encodeEmitter(&b, &d.Emitters[i], name)
	}

	fmt.Fprintf(&b, "endmodelgeom %s\n", name)
	return b.String()
}

func encodeEmitter(b *strings.Builder, e *emitter.Emitter, parent string) {
	fmt.Fprintf(b, "node emitter %s\n", e.Name)
	fmt.Fprintf(b, "  parent %s\n", parent)
	fmt.Fprintf(b, "  p2p %d\n", b2i(e.P2P))
	fmt.Fprintf(b, "  p2p_sel %d\n", e.P2PSel)
	fmt.Fprintf(b, "  affectedByWind %d\n", b2i(e.AffectedByWind))
	fmt.Fprintf(b, "  m_isTinted %d\n", b2i(e.Tinted))
	fmt.Fprintf(b, "  bounce %d\n", b2i(e.Bounce))
	fmt.Fprintf(b, "  random %d\n", b2i(e.Random))
	fmt.Fprintf(b, "  inherit %d\n", b2i(e.Inherit))
	fmt.Fprintf(b, "  inheritvel %d\n", b2i(e.InheritVel))
	fmt.Fprintf(b, "  inherit_local %d\n", b2i(e.InheritLocal))
	fmt.Fprintf(b, "  splat %d\n", b2i(e.Splat))
	fmt.Fprintf(b, "  inherit_part %d\n", b2i(e.InheritPart))
	fmt.Fprintf(b, "  renderorder %d\n", e.RenderOrder)
	fmt.Fprintf(b, "  spawntype %d\n", int(e.Spawn))
	fmt.Fprintf(b, "  update %s\n", e.Update)
	fmt.Fprintf(b, "  render %s\n", e.Render)
	fmt.Fprintf(b, "  blend %s\n", e.Blend)

	if e.Texture != "" {
		fmt.Fprintf(b, "  texture %s\n", e.Texture)
	}

	fmt.Fprintf(b, "  xgrid %d\n", e.XGrid)
	fmt.Fprintf(b, "  ygrid %d\n", e.YGrid)
	fmt.Fprintf(b, "  loop %d\n", b2i(e.Loop))
	fmt.Fprintf(b, "  deadspace %s\n", ftoa(e.Deadspace))
	fmt.Fprintf(b, "  twosidedtex %d\n", b2i(e.TwoSidedTex))
	fmt.Fprintf(b, "  blastRadius %s\n", ftoa(e.BlastRadius))
	fmt.Fprintf(b, "  blastLength %s\n", ftoa(e.BlastLength))

	pos := gameToMDL(e.Position)
	fmt.Fprintf(b, "  position %s %s %s\n", ftoa(pos.X), ftoa(pos.Y), ftoa(pos.Z))

	q := gameToMDLOrientation(e.Orientation())
	fmt.Fprintf(b, "  orientation %s %s %s %s\n", ftoa(q.W), ftoa(q.X), ftoa(q.Y), ftoa(q.Z))

	if e.XSize > 0 || e.YSize > 0 {
		fmt.Fprintf(b, "  xsize %s\n", ftoa(e.XSize))
		fmt.Fprintf(b, "  ysize %s\n", ftoa(e.YSize))
	}

	fmt.Fprintf(b, "  colorStart %s %s %s\n", ftoa(e.ColorStart.X), ftoa(e.ColorStart.Y), ftoa(e.ColorStart.Z))
	fmt.Fprintf(b, "  colorEnd %s %s %s\n", ftoa(e.ColorEnd.X), ftoa(e.ColorEnd.Y), ftoa(e.ColorEnd.Z))
	fmt.Fprintf(b, "  alphaStart %s\n", ftoa(e.AlphaStart))
	fmt.Fprintf(b, "  alphaEnd %s\n", ftoa(e.AlphaEnd))
	fmt.Fprintf(b, "  sizeStart %s\n", ftoa(e.SizeStart))
	fmt.Fprintf(b, "  sizeEnd %s\n", ftoa(e.SizeEnd))
	fmt.Fprintf(b, "  sizeStart_y %s\n", ftoa(e.SizeStartY))
	fmt.Fprintf(b, "  sizeEnd_y %s\n", ftoa(e.SizeEndY))

	fmt.Fprintf(b, "  birthrate %s\n", ftoa(e.Birthrate))
	fmt.Fprintf(b, "  lifeExp %s\n", ftoa(e.LifeExp))
	fmt.Fprintf(b, "  mass %s\n", ftoa(e.Mass))
	fmt.Fprintf(b, "  spread %s\n", ftoa(e.Spread))
	fmt.Fprintf(b, "  particleRot %s\n", ftoa(e.ParticleRot))
	fmt.Fprintf(b, "  velocity %s\n", ftoa(e.Velocity))

	// Zero-valued optionals stay out of the file; the defaults come back on load.
	writeOpt(b, "grav", e.Grav)
	writeOpt(b, "drag", e.Drag)
	writeOpt(b, "threshold", e.Threshold)
	writeOpt(b, "fps", e.FPS)
	writeOpt(b, "frameStart", e.FrameStart)
	writeOpt(b, "frameEnd", e.FrameEnd)
	writeOpt(b, "bounce_co", e.BounceCo)
	writeOpt(b, "combinetime", e.CombineTime)
	writeOpt(b, "blurlength", e.BlurLength)
	writeOpt(b, "lightningDelay", e.LightningDelay)
	writeOpt(b, "lightningRadius", e.LightningRadius)
	writeOpt(b, "lightningScale", e.LightningScale)
	writeOpt(b, "lightningSubDiv", e.LightningSubDiv)
	writeOpt(b, "lightningZigZag", e.LightningZigZag)

	if n := len(e.PositionKeys.Keys); n > 0 {
		fmt.Fprintf(b, "  positionkey %d\n", n)
		for _, k := range e.PositionKeys.Keys {
			p := gameToMDL(k.Value)
			fmt.Fprintf(b, "    %s %s %s %s\n", ftoa(k.Time), ftoa(p.X), ftoa(p.Y), ftoa(p.Z))
		}
	}
	if n := len(e.OrientationKeys.Keys); n > 0 {
		fmt.Fprintf(b, "  orientationkey %d\n", n)
		for _, k := range e.OrientationKeys.Keys {
			fmt.Fprintf(b, "    %s %s %s %s 0\n", ftoa(k.Time), ftoa(k.Value.X), ftoa(k.Value.Y), ftoa(k.Value.Z))
		}
	}

	fmt.Fprintf(b, "endnode\n")
}

// Decode parses ASCII model text into a document. Unknown tokens are
// skipped and malformed values keep the field's default, so a damaged
// file still loads as far as it can.
func Decode(r io.Reader) (*emitter.Document, error) {
	d := &emitter.Document{ModelName: "emitter_model", SuperModel: "NULL"}

	sc := bufio.NewScanner(r)
	var cur *emitter.Emitter

	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		token, args := fields[0], fields[1:]

		switch token {
		case "newmodel":
			if len(args) > 0 {
				d.ModelName = args[0]
			}
			continue
		case "setsupermodel":
			if len(args) > 1 {
				d.SuperModel = args[1]
			}
			continue
		case "node":
			cur = nil
			if len(args) > 1 && args[0] == "emitter" {
				cur = findOrAddEmitter(d, args[1])
			}
			continue
		case "endnode":
			cur = nil
			continue
		}

		if cur == nil {
			continue
		}
		decodeProperty(sc, cur, token, args)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading model text: %w", err)
	}
	if len(d.Emitters) == 0 {
		d.Emitters = append(d.Emitters, emitter.NewDefault("emitter_1"))
	}
	return d, nil
}

// findOrAddEmitter returns the emitter named name, appending a fresh default
// when it is new. Animation sections repeat node headers for names already
// seen, and their keys belong on the existing emitter.
func findOrAddEmitter(d *emitter.Document, name string) *emitter.Emitter {
	for i := range d.Emitters {
		if d.Emitters[i].Name == name {
			return &d.Emitters[i]
		}
	}
	e := emitter.NewDefault(name)
	d.Emitters = append(d.Emitters, e)
	return &d.Emitters[len(d.Emitters)-1]
}

func decodeProperty(sc *bufio.Scanner, e *emitter.Emitter, token string, args []string) {
	switch token {
	case "parent":
		e.Parent = str(args, e.Parent)
	case "p2p":
		e.P2P = boolArg(args, e.P2P)
	case "p2p_sel":
		e.P2PSel = intArg(args, e.P2PSel)
	case "affectedByWind":
		e.AffectedByWind = boolArg(args, e.AffectedByWind)
	case "m_isTinted":
		e.Tinted = boolArg(args, e.Tinted)
	case "bounce":
		e.Bounce = boolArg(args, e.Bounce)
	case "random":
		e.Random = boolArg(args, e.Random)
	case "inherit":
		e.Inherit = boolArg(args, e.Inherit)
	case "inheritvel":
		e.InheritVel = boolArg(args, e.InheritVel)
	case "inherit_local":
		e.InheritLocal = boolArg(args, e.InheritLocal)
	case "splat":
		e.Splat = boolArg(args, e.Splat)
	case "inherit_part":
		e.InheritPart = boolArg(args, e.InheritPart)
	case "renderorder":
		e.RenderOrder = intArg(args, e.RenderOrder)
	case "spawntype":
		e.Spawn = emitter.SpawnType(intArg(args, int(e.Spawn)))
	case "update":
		e.Update = emitter.ParseUpdateMode(str(args, ""))
	case "render":
		e.Render = emitter.ParseRenderMode(str(args, ""))
	case "blend":
		e.Blend = emitter.ParseBlendMode(str(args, ""))
	case "texture":
		e.Texture = str(args, e.Texture)
	case "xgrid":
		e.XGrid = intArg(args, e.XGrid)
	case "ygrid":
		e.YGrid = intArg(args, e.YGrid)
	case "loop":
		e.Loop = boolArg(args, e.Loop)
	case "deadspace":
		e.Deadspace = floatArg(args, 0, e.Deadspace)
	case "twosidedtex":
		e.TwoSidedTex = boolArg(args, e.TwoSidedTex)
	case "blastRadius":
		e.BlastRadius = floatArg(args, 0, e.BlastRadius)
	case "blastLength":
		e.BlastLength = floatArg(args, 0, e.BlastLength)
	case "position":
		e.Position = mdlToGame(vec3Arg(args, gameToMDL(e.Position)))
	case "orientation":
		if len(args) >= 4 {
			q := math.Quaternion{
				W: floatArg(args, 0, 1),
				X: floatArg(args, 1, 0),
				Y: floatArg(args, 2, 0),
				Z: floatArg(args, 3, 0),
			}
			euler := mdlToGameOrientation(q).ToEuler()
			e.RotationAngles = math.Vec3{
				X: math.Degrees(euler.X),
				Y: math.Degrees(euler.Y),
				Z: math.Degrees(euler.Z),
			}
		}
	case "xsize":
		e.XSize = floatArg(args, 0, e.XSize)
	case "ysize":
		e.YSize = floatArg(args, 0, e.YSize)
	case "colorStart":
		e.ColorStart = vec3Arg(args, e.ColorStart)
	case "colorEnd":
		e.ColorEnd = vec3Arg(args, e.ColorEnd)
	case "alphaStart":
		e.AlphaStart = floatArg(args, 0, e.AlphaStart)
	case "alphaEnd":
		e.AlphaEnd = floatArg(args, 0, e.AlphaEnd)
	case "sizeStart":
		e.SizeStart = floatArg(args, 0, e.SizeStart)
	case "sizeEnd":
		e.SizeEnd = floatArg(args, 0, e.SizeEnd)
	case "sizeStart_y":
		e.SizeStartY = floatArg(args, 0, e.SizeStartY)
	case "sizeEnd_y":
		e.SizeEndY = floatArg(args, 0, e.SizeEndY)
	case "birthrate":
		e.Birthrate = floatArg(args, 0, e.Birthrate)
	case "lifeExp":
		e.LifeExp = floatArg(args, 0, e.LifeExp)
	case "mass":
		e.Mass = floatArg(args, 0, e.Mass)
	case "spread":
		e.Spread = floatArg(args, 0, e.Spread)
	case "particleRot":
		e.ParticleRot = floatArg(args, 0, e.ParticleRot)
	case "velocity":
		e.Velocity = floatArg(args, 0, e.Velocity)
	case "grav":
		e.Grav = floatArg(args, 0, e.Grav)
	case "drag":
		e.Drag = floatArg(args, 0, e.Drag)
	case "threshold":
		e.Threshold = floatArg(args, 0, e.Threshold)
	case "fps":
		e.FPS = floatArg(args, 0, e.FPS)
	case "frameStart":
		e.FrameStart = floatArg(args, 0, e.FrameStart)
	case "frameEnd":
		e.FrameEnd = floatArg(args, 0, e.FrameEnd)
	case "bounce_co":
		e.BounceCo = floatArg(args, 0, e.BounceCo)
	case "combinetime":
		e.CombineTime = floatArg(args, 0, e.CombineTime)
	case "blurlength":
		e.BlurLength = floatArg(args, 0, e.BlurLength)
	case "lightningDelay":
		e.LightningDelay = floatArg(args, 0, e.LightningDelay)
	case "lightningRadius":
		e.LightningRadius = floatArg(args, 0, e.LightningRadius)
	case "lightningScale":
		e.LightningScale = floatArg(args, 0, e.LightningScale)
	case "lightningSubDiv":
		e.LightningSubDiv = floatArg(args, 0, e.LightningSubDiv)
	case "lightningZigZag":
		e.LightningZigZag = floatArg(args, 0, e.LightningZigZag)
	case "positionkey":
		e.PositionKeys.Keys = e.PositionKeys.Keys[:0]
		for i, n := 0, intArg(args, 0); i < n && sc.Scan(); i++ {
			f := strings.Fields(sc.Text())
			if len(f) < 4 {
				continue
			}
			p := mdlToGame(math.Vec3{
				X: floatArg(f, 1, 0),
				Y: floatArg(f, 2, 0),
				Z: floatArg(f, 3, 0),
			})
			e.PositionKeys.Add(floatArg(f, 0, 0), p)
		}
	case "orientationkey":
		e.OrientationKeys.Keys = e.OrientationKeys.Keys[:0]
		for i, n := 0, intArg(args, 0); i < n && sc.Scan(); i++ {
			f := strings.Fields(sc.Text())
			if len(f) < 4 {
				continue
			}
			v := math.Vec3{
				X: floatArg(f, 1, 0),
				Y: floatArg(f, 2, 0),
				Z: floatArg(f, 3, 0),
			}
			e.OrientationKeys.Add(floatArg(f, 0, 0), v)
		}
	}
}

// Load reads a model file. The document's texture directory follows the
// file so relative texture names resolve next to it.
func Load(path string) (*emitter.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening model file: %w", err)
	}
	defer f.Close()

	d, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	d.TextureDir = filepath.Dir(path)
	d.SourcePath = path
	log.Printf("loaded %d emitter(s) from %s", len(d.Emitters), path)
	return d, nil
}

// Save writes the document to path and marks it clean.
func Save(path string, d *emitter.Document) error {
	if err := os.WriteFile(path, []byte(Encode(d)), 0o644); err != nil {
		return fmt.Errorf("writing model file: %w", err)
	}
	d.SourcePath = path
	d.Dirty = false
	return nil
}

func writeOpt(b *strings.Builder, key string, v float32) {
	if v == 0 {
		return
	}
	fmt.Fprintf(b, "  %s %s\n", key, ftoa(v))
}

func gameToMDL(v math.Vec3) math.Vec3 {
	return math.Vec3{X: v.X, Y: v.Z, Z: v.Y}
}

func mdlToGame(v math.Vec3) math.Vec3 {
	return math.Vec3{X: v.X, Y: v.Z, Z: v.Y}
}

func gameToMDLOrientation(q math.Quaternion) math.Quaternion {
	t := math.QuaternionFromAxisAngle(math.Vec3{Z: 1}, math.Radians(-90))
	return t.Mul(q)
}

func mdlToGameOrientation(q math.Quaternion) math.Quaternion {
	t := math.QuaternionFromAxisAngle(math.Vec3{Z: 1}, math.Radians(90))
	return t.Mul(q)
}

func ftoa(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

func b2i(v bool) int {
	if v {
		return 1
	}
	return 0
}

func str(args []string, fallback string) string {
	if len(args) == 0 {
		return fallback
	}
	return args[0]
}

func intArg(args []string, fallback int) int {
	if len(args) == 0 {
		return fallback
	}
	v, err := strconv.Atoi(args[0])
	if err != nil {
		return fallback
	}
	return v
}

func boolArg(args []string, fallback bool) bool {
	if len(args) == 0 {
		return fallback
	}
	v, err := strconv.Atoi(args[0])
	if err != nil {
		return fallback
	}
	return v != 0
}

func floatArg(args []string, i int, fallback float32) float32 {
	if i >= len(args) {
		return fallback
	}
	v, err := strconv.ParseFloat(args[i], 32)
	if err != nil {
		return fallback
	}
	return float32(v)
}

func vec3Arg(args []string, fallback math.Vec3) math.Vec3 {
	if len(args) < 3 {
		return fallback
	}
	return math.Vec3{
		X: floatArg(args, 0, fallback.X),
		Y: floatArg(args, 1, fallback.Y),
		Z: floatArg(args, 2, fallback.Z),
	}
}
