package sim

// satisfyConstraints relaxes every spring partway toward its rest length,
// Gauss-Seidel style: corrections from earlier springs in an iteration are
// visible to later springs in the same iteration. Pinned endpoints are
// skipped individually, so one end of a spring may move while the other
// stays put.
func (c *Cloth) satisfyConstraints() {
	for iter := 0; iter < c.params.ConstraintIterations; iter++ {
		for _, s := range c.Springs {
			p0 := &c.Particles[s.A]
			p1 := &c.Particles[s.B]

			delta := p0.Position.Sub(p1.Position)
			length := delta.Len()
			if length < minLength {
				continue
			}

			correction := delta.Mul((1 - s.RestLength/length) * 0.5)

			if !p0.Pinned {
				p0.Position = p0.Position.Sub(correction)
			}
			if !p1.Pinned {
				p1.Position = p1.Position.Add(correction)
			}
		}
	}
}
