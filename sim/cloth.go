package sim

import "github.com/go-gl/mathgl/mgl64"

// Collider is anything the cloth can be pushed out of. The cloth references
// colliders, it does not own them.
type Collider interface {
	Contains(point mgl64.Vec3) bool
	Position() mgl64.Vec3
	Radius() float64
}

// Cloth is a row-major grid of particles tied together by structural, shear
// and bend springs. Grid topology is fixed at construction; every later stage
// only mutates particle state.
type Cloth struct {
	Width, Height int
	Particles     []Particle
	Springs       []Spring

	params    Params
	colliders []Collider
	windForce mgl64.Vec3
}

var (
	clothBaseColor   = Color{R: 0.996, G: 1.0, B: 0.906, A: 1.0}
	clothAccentColor = Color{R: 0.941, G: 0.427, B: 0.102, A: 1.0}
)

// NewCloth builds a p.Width × p.Height particle grid hanging from p.Anchor.
// The mesh spans a 2-unit extent along each axis regardless of resolution,
// and the three particles at each end of the first row are pinned.
func NewCloth(p Params) *Cloth {
	c := &Cloth{
		Width:     p.Width,
		Height:    p.Height,
		Particles: make([]Particle, p.Width*p.Height),
		params:    p,
	}

	xSpacing := 2.0 / float64(p.Width-1)
	ySpacing := 2.0 / float64(p.Height-1)

	for row := 0; row < p.Height; row++ {
		for col := 0; col < p.Width; col++ {
			pos := mgl64.Vec3{
				p.Anchor.X() + float64(col)*xSpacing,
				p.Anchor.Y() - float64(row)*ySpacing,
				p.Anchor.Z(),
			}
			color := clothBaseColor
			if row%2 != 0 && col%2 != 0 {
				color = clothAccentColor
			}
			c.Particles[c.index(row, col)] = Particle{
				Position:     pos,
				PrevPosition: pos,
				Mass:         p.ParticleMass,
				Color:        color,
			}
		}
	}

	// Springs are built only after the full grid exists, so every endpoint
	// index is valid for the spring's entire lifetime.
	c.generateSprings()

	for _, col := range []int{0, 1, 2, p.Width - 1, p.Width - 2, p.Width - 3} {
		c.Particles[c.index(0, col)].Pinned = true
	}

	return c
}

func (c *Cloth) index(row, col int) int {
	return row*c.Width + col
}

// ParticleAt returns the particle at (row, col) in the grid.
func (c *Cloth) ParticleAt(row, col int) *Particle {
	return &c.Particles[c.index(row, col)]
}

// generateSprings connects the grid with four spring topologies: structural
// (adjacent), shear (diagonal) and bend (two apart). Bend springs are omitted
// for the last three rows, matching the boundary policy of the mesh design.
func (c *Cloth) generateSprings() {
	link := func(rowA, colA, rowB, colB int) {
		a, b := c.index(rowA, colA), c.index(rowB, colB)
		// Rest length is measured from the constructed grid, so a freshly
		// built mesh is an exact fixed point of constraint relaxation.
		rest := c.Particles[a].Position.Sub(c.Particles[b].Position).Len()
		c.Springs = append(c.Springs, Spring{A: a, B: b, RestLength: rest})
	}

	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			if col+1 < c.Width {
				link(row, col, row, col+1) // structural horizontal
			}
			if row+1 < c.Height {
				link(row, col, row+1, col) // structural vertical
			}
			if row+1 < c.Height && col+1 < c.Width {
				link(row, col, row+1, col+1) // shear
				link(row+1, col, row, col+1) // shear
			}
			if row+3 < c.Height {
				link(row, col, row+2, col) // bend vertical
				if col+2 < c.Width {
					link(row, col, row, col+2) // bend horizontal
				}
			}
		}
	}
}

// ApplyWind stores the wind force used by the next force accumulation pass.
func (c *Cloth) ApplyWind(force mgl64.Vec3) {
	c.windForce = force
}

// RegisterCollider adds a collider to the set checked during collision
// resolution.
func (c *Cloth) RegisterCollider(col Collider) {
	c.colliders = append(c.colliders, col)
}

// Detach clears every pin so the cloth drops. Calling it again is a no-op.
func (c *Cloth) Detach() {
	for i := range c.Particles {
		c.Particles[i].Pinned = false
	}
}
