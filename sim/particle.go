package sim

import "github.com/go-gl/mathgl/mgl64"

// Color is a cosmetic RGBA attribute read by viewers; the physics never
// touches it.
type Color struct {
	R, G, B, A float64
}

// Particle is one mass point of the cloth. Position and PrevPosition carry
// the Verlet state; Acceleration is rebuilt by force accumulation each step.
type Particle struct {
	Position     mgl64.Vec3
	PrevPosition mgl64.Vec3
	Acceleration mgl64.Vec3
	Mass         float64
	Pinned       bool
	Color        Color
}

// Spring constrains two particles, referenced by flat index into the cloth's
// particle arena, toward a fixed rest length. Endpoints and rest length never
// change after construction.
type Spring struct {
	A, B       int
	RestLength float64
}
