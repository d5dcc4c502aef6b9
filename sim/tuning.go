package sim

import "github.com/go-gl/mathgl/mgl64"

const (
	ParticleMass         = 50.0
	SpringConstant       = 2.0e-11 // pseudo-elastic correction, relaxation does the real work
	Damping              = 1.0 - 2.0e-5
	ConstraintIterations = 50
	FixedStepSquared     = 0.01 // constant dt², never scaled by wall-clock time
	MinStepMillis        = 16
	WindFlipMillis       = 1200
	CollisionOffset      = 0.03

	DefaultWidth  = 50
	DefaultHeight = 50

	SphereRadius = 1.0
	SphereScale  = 0.5
	SphereSpeed  = 0.05
	SphereBoundX = 1.5

	// Springs and triangles shorter than this contribute nothing rather
	// than dividing by a near-zero length.
	minLength = 1e-9
)

func defaultGravity() mgl64.Vec3 { return mgl64.Vec3{0, -0.02, 0} }

func defaultAnchor() mgl64.Vec3 { return mgl64.Vec3{-1, 1, -2} }

func defaultWindForce() mgl64.Vec3 { return mgl64.Vec3{0, -2, -1.5} }

func defaultSpherePosition() mgl64.Vec3 { return mgl64.Vec3{-0.5, -0.5, -2.5} }

// Params holds the construction-time configuration of a cloth mesh.
type Params struct {
	Width, Height        int
	Anchor               mgl64.Vec3
	Gravity              mgl64.Vec3
	ParticleMass         float64
	SpringConstant       float64
	Damping              float64
	ConstraintIterations int
	CollisionOffset      float64
}

func DefaultParams() Params {
	return Params{
		Width:                DefaultWidth,
		Height:               DefaultHeight,
		Anchor:               defaultAnchor(),
		Gravity:              defaultGravity(),
		ParticleMass:         ParticleMass,
		SpringConstant:       SpringConstant,
		Damping:              Damping,
		ConstraintIterations: ConstraintIterations,
		CollisionOffset:      CollisionOffset,
	}
}
