package sim

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestPinnedParticlesInvariantAcrossSteps(t *testing.T) {
	c := NewCloth(testParams(8, 8))

	pinnedIdx := []int{}
	pinnedPos := []mgl64.Vec3{}
	for i := range c.Particles {
		if c.Particles[i].Pinned {
			pinnedIdx = append(pinnedIdx, i)
			pinnedPos = append(pinnedPos, c.Particles[i].Position)
		}
	}

	for step := 0; step < 20; step++ {
		c.Step()
	}

	for k, i := range pinnedIdx {
		if c.Particles[i].Position != pinnedPos[k] {
			t.Fatalf("pinned particle %d moved: %v -> %v", i, pinnedPos[k], c.Particles[i].Position)
		}
	}
}

func TestDetachedClothFallsUnderGravity(t *testing.T) {
	c := NewCloth(testParams(8, 8))

	corner := c.index(0, 0)
	before := c.Particles[corner].Position

	c.Detach()
	for step := 0; step < 10; step++ {
		c.Step()
	}

	after := c.Particles[corner].Position
	if after == before {
		t.Fatal("previously pinned particle did not move after detach")
	}
	if after.Y() >= before.Y() {
		t.Fatalf("expected particle to fall: y %f -> %f", before.Y(), after.Y())
	}
}

func TestRestMeshStaysPutWithoutForces(t *testing.T) {
	// 5x5 mesh at rest length, zero wind, zero gravity: one step must leave
	// every particle exactly in place.
	p := testParams(5, 5)
	p.Gravity = mgl64.Vec3{}
	c := NewCloth(p)
	c.Detach()

	before := make([]mgl64.Vec3, len(c.Particles))
	for i := range c.Particles {
		before[i] = c.Particles[i].Position
	}

	c.Step()

	for i := range c.Particles {
		if c.Particles[i].Position != before[i] {
			t.Fatalf("particle %d drifted from %v to %v with no forces applied",
				i, before[i], c.Particles[i].Position)
		}
	}
}

func TestIntegrationUsesAccumulatedAcceleration(t *testing.T) {
	p := testParams(4, 4)
	p.Gravity = mgl64.Vec3{0, -1, 0}
	c := NewCloth(p)
	c.Detach()

	center := c.index(2, 1)
	before := c.Particles[center].Position

	c.Step()

	after := c.Particles[center].Position
	if after.Y() >= before.Y() {
		t.Fatalf("expected downward motion under gravity: y %f -> %f", before.Y(), after.Y())
	}
}

func TestAccelerationResetEachStep(t *testing.T) {
	p := testParams(4, 4)
	p.Gravity = mgl64.Vec3{}
	c := NewCloth(p)
	c.Detach()

	// Seed a stale acceleration; the next force pass must not keep it.
	c.Particles[c.index(1, 1)].Acceleration = mgl64.Vec3{100, 100, 100}

	c.accumulateForces()

	acc := c.Particles[c.index(1, 1)].Acceleration
	if acc.Len() > 1e-6 {
		t.Fatalf("stale acceleration survived the force pass: %v", acc)
	}
}

func TestZeroWindContributesNoForce(t *testing.T) {
	p := testParams(5, 5)
	p.Gravity = mgl64.Vec3{}
	c := NewCloth(p)
	c.ApplyWind(mgl64.Vec3{})

	c.accumulateForces()

	for i := range c.Particles {
		if c.Particles[i].Acceleration.Len() != 0 {
			t.Fatalf("particle %d accelerated by zero wind: %v", i, c.Particles[i].Acceleration)
		}
	}
}

func TestWindPushesFlatClothAlongItsNormal(t *testing.T) {
	p := testParams(5, 5)
	p.Gravity = mgl64.Vec3{}
	c := NewCloth(p)
	c.Detach()

	// The mesh lies in a constant-z plane, so wind along z must accelerate
	// particles along z.
	c.ApplyWind(mgl64.Vec3{0, 0, -1.5})
	c.Step()

	center := c.ParticleAt(2, 2)
	if center.Position.Z() >= p.Anchor.Z() {
		t.Fatalf("expected wind to push cloth toward -z, center z = %f", center.Position.Z())
	}
	if math.Abs(center.Position.X()-(p.Anchor.X()+1)) > 1e-9 {
		t.Fatalf("wind along z moved center in x: %f", center.Position.X())
	}
}
