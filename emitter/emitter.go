package emitter

import (
	"emitter-editor/math"
)

// UpdateMode selects the spawn behavior of an emitter.
type UpdateMode int

const (
	UpdateFountain UpdateMode = iota
	UpdateSingle
	UpdateExplosion
	UpdateLightning
)

func (u UpdateMode) String() string {
	switch u {
	case UpdateFountain:
		return "Fountain"
	case UpdateSingle:
		return "Single"
	case UpdateExplosion:
		return "Explosion"
	case UpdateLightning:
		return "Lightning"
	}
	return "Fountain"
}

// ParseUpdateMode maps an MDL keyword to an UpdateMode; unknown values
// fall back to Fountain.
func ParseUpdateMode(s string) UpdateMode {
	switch s {
	case "Single":
		return UpdateSingle
	case "Explosion":
		return UpdateExplosion
	case "Lightning":
		return UpdateLightning
	}
	return UpdateFountain
}

// RenderMode selects how a particle quad is oriented by the GPU.
type RenderMode int

const (
	RenderNormal RenderMode = iota // camera-facing billboard
	RenderLinked
	RenderBillboardLocalZ
	RenderBillboardWorldZ
	RenderAlignedWorldZ
	RenderAlignedParticleDir // velocity-aligned
	RenderMotionBlur         // velocity-stretched
)

func (r RenderMode) String() string {
	switch r {
	case RenderNormal:
		return "Normal"
	case RenderLinked:
		return "Linked"
	case RenderBillboardLocalZ:
		return "Billboard_to_Local_Z"
	case RenderBillboardWorldZ:
		return "Billboard_to_World_Z"
	case RenderAlignedWorldZ:
		return "Aligned_to_World_Z"
	case RenderAlignedParticleDir:
		return "Aligned_to_Particle_Direction"
	case RenderMotionBlur:
		return "Motion_Blur"
	}
	return "Normal"
}

func ParseRenderMode(s string) RenderMode {
	switch s {
	case "Linked":
		return RenderLinked
	case "Billboard_to_Local_Z":
		return RenderBillboardLocalZ
	case "Billboard_to_World_Z":
		return RenderBillboardWorldZ
	case "Aligned_to_World_Z":
		return RenderAlignedWorldZ
	case "Aligned_to_Particle_Direction":
		return RenderAlignedParticleDir
	case "Motion_Blur":
		return RenderMotionBlur
	}
	return RenderNormal
}

// BlendMode selects the blend equation for an emitter's particles.
type BlendMode int

const (
	BlendNormal BlendMode = iota
	BlendPunchThrough
	BlendLighten
)

func (b BlendMode) String() string {
	switch b {
	case BlendNormal:
		return "Normal"
	case BlendPunchThrough:
		return "Punch-Through"
	case BlendLighten:
		return "Lighten"
	}
	return "Normal"
}

func ParseBlendMode(s string) BlendMode {
	switch s {
	case "Punch-Through":
		return BlendPunchThrough
	case "Lighten":
		return BlendLighten
	}
	return BlendNormal
}

type SpawnType int

const (
	SpawnNormal SpawnType = 0
	SpawnTrail  SpawnType = 1
)

// Emitter is one particle source's configuration. It is passive data: the
// document owns it, the simulation reads it, gestures and the property panel
// mutate it between frames.
type Emitter struct {
	Name   string
	Parent string

	// Flags carried for the document format
	P2P            bool
	P2PSel         int
	AffectedByWind bool
	Tinted         bool
	Bounce         bool
	Random         bool
	Inherit        bool
	InheritVel     bool
	InheritLocal   bool
	Splat          bool
	InheritPart    bool
	RenderOrder    int
	Spawn          SpawnType

	Update UpdateMode
	Render RenderMode
	Blend  BlendMode

	// Texture
	Texture     string // display name (filename without extension)
	TexturePath string // resolved path, takes precedence when set
	XGrid       int
	YGrid       int
	Loop        bool
	Deadspace   float32
	TwoSidedTex bool

	BlastRadius float32
	BlastLength float32

	// Transform (editor space, Z-up)
	Position       math.Vec3
	RotationAngles math.Vec3 // Euler angles in degrees

	// Emission plane half-extents are Size/2 around the local origin
	XSize float32
	YSize float32

	// Particle behavior
	Birthrate   float32 // particles per second
	LifeExp     float32 // seconds
	Velocity    float32
	Spread      float32 // full cone angle in degrees
	Mass        float32
	ParticleRot float32 // degrees per second of particle self-rotation

	// Color and opacity over lifetime
	ColorStart math.Vec3
	ColorEnd   math.Vec3
	AlphaStart float32
	AlphaEnd   float32

	// Size over lifetime
	SizeStart  float32
	SizeEnd    float32
	SizeStartY float32
	SizeEndY   float32

	Grav       float32
	Drag       float32
	Threshold  float32
	FPS        float32
	FrameStart float32
	FrameEnd   float32
	BounceCo   float32

	CombineTime     float32
	BlurLength      float32
	LightningDelay  float32
	LightningRadius float32
	LightningScale  float32
	LightningSubDiv float32
	LightningZigZag float32

	PositionKeys    Track
	OrientationKeys Track
}

// NewDefault returns an emitter configured as a small untextured fire effect.
func NewDefault(name string) Emitter {
	return Emitter{
		Name:       name,
		Parent:     "NULL",
		P2PSel:     1,
		Inherit:    true,
		Update:     UpdateFountain,
		Render:     RenderNormal,
		Blend:      BlendLighten,
		XGrid:      1,
		YGrid:      1,
		Birthrate:  2.0,
		LifeExp:    1.5,
		Velocity:   1.0,
		Spread:     45.0,
		Mass:       1.0,
		ColorStart: math.NewVec3(0.929, 0.592, 0.231),
		ColorEnd:   math.NewVec3(0.910, 0.471, 0.0),
		AlphaStart: 1.0,
		AlphaEnd:   1.0,
		SizeStart:  0.5,
		SizeEnd:    0.0,
		XSize:      0.1,
		YSize:      0.1,
	}
}

// Orientation converts the stored Euler angles (degrees) to a quaternion.
func (e *Emitter) Orientation() math.Quaternion {
	return math.QuaternionFromEuler(math.Vec3{
		X: math.Radians(e.RotationAngles.X),
		Y: math.Radians(e.RotationAngles.Y),
		Z: math.Radians(e.RotationAngles.Z),
	})
}

// AnimatedPosition samples the position track at the given simulation time,
// or returns the static position when no track is present.
func (e *Emitter) AnimatedPosition(time float32) math.Vec3 {
	if len(e.PositionKeys.Keys) == 0 {
		return e.Position
	}
	return e.PositionKeys.ValueAt(time)
}

// AnimatedOrientation samples the orientation track at the given time.
func (e *Emitter) AnimatedOrientation(time float32) math.Vec3 {
	if len(e.OrientationKeys.Keys) == 0 {
		return math.Vec3Zero
	}
	return e.OrientationKeys.ValueAt(time)
}

// TextureRef is the texture lookup key: the resolved path when one is set,
// else the bare name. Empty means untextured.
func (e *Emitter) TextureRef() string {
	if e.TexturePath != "" {
		return e.TexturePath
	}
	return e.Texture
}
