package sim

// World bundles the cloth, its moving collider and the wind generator into
// one explicit state value owned by the frame driver. It has exactly one
// writer: the goroutine calling Advance. Readers may inspect it only between
// calls.
type World struct {
	Cloth  *Cloth
	Sphere *Sphere
	Wind   *Wind
	Paused bool
	Tick   int
}

// NewWorld builds a width × height cloth hung above a moving sphere, with
// the default physical constants and seed wind.
func NewWorld(width, height int) *World {
	params := DefaultParams()
	params.Width = width
	params.Height = height

	cloth := NewCloth(params)
	sphere := NewSphere(defaultSpherePosition(), SphereRadius, SphereScale)
	cloth.RegisterCollider(sphere)

	return &World{
		Cloth:  cloth,
		Sphere: sphere,
		Wind:   NewWind(defaultWindForce()),
	}
}

// Advance runs one simulation cycle if at least MinStepMillis of wall-clock
// time has elapsed, and reports whether the cycle ran. While paused the cycle
// still consumes the elapsed time but leaves all state untouched. The elapsed
// time gates the step; the integration timestep itself is constant.
func (w *World) Advance(elapsedMillis int64) bool {
	if elapsedMillis <= MinStepMillis {
		return false
	}
	if !w.Paused {
		w.Tick++
		w.Sphere.Move()
		w.Cloth.ApplyWind(w.Wind.Generate(elapsedMillis))
		w.Cloth.Step()
	}
	return true
}

// TogglePause stops future cycles from mutating state; it never interrupts
// one in progress.
func (w *World) TogglePause() {
	w.Paused = !w.Paused
}

func (w *World) ToggleWind() {
	w.Wind.Toggle()
}

func (w *World) ToggleSphereMotion() {
	w.Sphere.ToggleMovement()
}

// Detach drops the cloth by clearing every pin. Idempotent.
func (w *World) Detach() {
	w.Cloth.Detach()
}
