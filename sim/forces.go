package sim

import "github.com/go-gl/mathgl/mgl64"

// accumulateForces rebuilds every particle's acceleration for this step.
// Acceleration is reset at the top of the pass rather than carried over
// between frames (see DESIGN.md).
//
// Two passes: wind over every quad's two triangles, then gravity plus spring
// tension over every spring. Gravity is applied per spring endpoint, so a
// particle's effective gravity scales with its spring degree.
func (c *Cloth) accumulateForces() {
	for i := range c.Particles {
		c.Particles[i].Acceleration = mgl64.Vec3{}
	}

	for row := 0; row+1 < c.Height; row++ {
		for col := 0; col+1 < c.Width; col++ {
			c.addWindForce(c.index(row+1, col), c.index(row, col), c.index(row, col+1))
			c.addWindForce(c.index(row+1, col), c.index(row, col+1), c.index(row+1, col+1))
		}
	}

	for _, s := range c.Springs {
		p0 := &c.Particles[s.A]
		p1 := &c.Particles[s.B]

		delta := p0.Position.Sub(p1.Position)
		length := delta.Len()

		if length > minLength {
			stretch := length - s.RestLength
			springAccel := delta.Mul(c.params.SpringConstant * stretch / length).Mul(1 / p0.Mass)
			p0.Acceleration = p0.Acceleration.Sub(springAccel)
			p1.Acceleration = p1.Acceleration.Add(springAccel)
		}

		p0.Acceleration = p0.Acceleration.Add(c.params.Gravity.Mul(1 / p0.Mass))
		p1.Acceleration = p1.Acceleration.Add(c.params.Gravity.Mul(1 / p1.Mass))
	}
}

// addWindForce projects the current wind vector onto the triangle's face
// normal and spreads the resulting acceleration over its three particles.
// Drag falls off with the cosine of the angle between wind and surface.
func (c *Cloth) addWindForce(i0, i1, i2 int) {
	v0 := &c.Particles[i0]
	v1 := &c.Particles[i1]
	v2 := &c.Particles[i2]

	normal := v1.Position.Sub(v0.Position).Cross(v2.Position.Sub(v0.Position))
	length := normal.Len()
	if length < minLength {
		return // degenerate triangle, no defined facing
	}
	normal = normal.Mul(1 / length)

	accel := normal.Mul(normal.Dot(c.windForce) / (v0.Mass + v1.Mass + v2.Mass))

	v0.Acceleration = v0.Acceleration.Add(accel)
	v1.Acceleration = v1.Acceleration.Add(accel)
	v2.Acceleration = v2.Acceleration.Add(accel)
}
