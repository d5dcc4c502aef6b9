package sim

// Step runs one fixed-timestep simulation update over the whole mesh:
// force accumulation, constraint relaxation, Verlet integration, collision
// resolution. Each stage sees the full particle set left by the previous one.
func (c *Cloth) Step() {
	c.accumulateForces()
	c.satisfyConstraints()
	c.integrate()
	c.resolveCollisions()
}

// integrate advances every unpinned particle with damped Verlet integration.
// The timestep is a constant; wall-clock time only gates whether a step runs
// at all, it never scales one.
func (c *Cloth) integrate() {
	for i := range c.Particles {
		p := &c.Particles[i]
		if p.Pinned {
			continue
		}
		prev := p.Position
		velocity := p.Position.Sub(p.PrevPosition).Mul(c.params.Damping)
		p.Position = p.Position.Add(velocity).Add(p.Acceleration.Mul(FixedStepSquared))
		p.PrevPosition = prev
	}
}

// resolveCollisions pushes any particle found inside a collider onto the
// collider's surface plus a small stand-off offset. Pure positional
// correction: prior position is left alone, so the next step sees an
// implicit velocity change.
func (c *Cloth) resolveCollisions() {
	for _, col := range c.colliders {
		center := col.Position()
		radius := col.Radius()

		for i := range c.Particles {
			p := &c.Particles[i]
			if !col.Contains(p.Position) {
				continue
			}

			delta := p.Position.Sub(center)
			length := delta.Len()
			if length < minLength {
				continue // at the exact center there is no outward normal
			}

			surface := delta.Mul(radius / length)
			p.Position = center.Add(surface).Add(surface.Mul(c.params.CollisionOffset))
		}
	}
}
