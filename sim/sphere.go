package sim

import "github.com/go-gl/mathgl/mgl64"

// Sphere is a moving spherical collider. It travels at constant speed along
// the x axis, reversing direction when it crosses the fixed bounds.
type Sphere struct {
	position mgl64.Vec3
	radius   float64
	velocity mgl64.Vec3
	moving   bool
}

// NewSphere builds a collider at position with the given radius and scale.
// The stored radius is already scaled.
func NewSphere(position mgl64.Vec3, radius, scale float64) *Sphere {
	return &Sphere{
		position: position,
		radius:   radius * scale,
		velocity: mgl64.Vec3{SphereSpeed, 0, 0},
		moving:   true,
	}
}

// Move advances the sphere by one velocity increment, bouncing between the
// x bounds. No-op while movement is toggled off.
func (s *Sphere) Move() {
	if !s.moving {
		return
	}
	if s.position.X() < -SphereBoundX {
		s.velocity[0] = SphereSpeed
	} else if s.position.X() > SphereBoundX {
		s.velocity[0] = -SphereSpeed
	}
	s.position = s.position.Add(s.velocity)
}

// ToggleMovement flips whether Move advances the sphere. Independent of the
// simulation pause state.
func (s *Sphere) ToggleMovement() {
	s.moving = !s.moving
}

// Contains reports whether point lies strictly inside the sphere.
func (s *Sphere) Contains(point mgl64.Vec3) bool {
	return point.Sub(s.position).Len() < s.radius
}

func (s *Sphere) Position() mgl64.Vec3 { return s.position }

func (s *Sphere) Radius() float64 { return s.radius }

func (s *Sphere) Moving() bool { return s.moving }
