package sim

import "github.com/go-gl/mathgl/mgl64"

// Wind produces an oscillating force vector: every WindFlipMillis of
// accumulated time the vector flips sign, direction reversing while the
// magnitude stays constant.
type Wind struct {
	force       mgl64.Vec3
	timeBlowing int64
	enabled     bool
}

func NewWind(force mgl64.Vec3) *Wind {
	return &Wind{force: force, enabled: true}
}

// Generate advances the oscillation clock by elapsedMillis and returns the
// current wind force, or the zero vector while disabled. The clock advances
// even while disabled, so re-enabling resumes the phase the oscillation
// would have reached.
func (w *Wind) Generate(elapsedMillis int64) mgl64.Vec3 {
	w.timeBlowing += elapsedMillis
	if w.timeBlowing > WindFlipMillis {
		w.timeBlowing = 0
		w.force = w.force.Mul(-1)
	}
	if !w.enabled {
		return mgl64.Vec3{}
	}
	return w.force
}

// Toggle flips whether Generate returns the live force vector.
func (w *Wind) Toggle() {
	w.enabled = !w.enabled
}

func (w *Wind) Enabled() bool { return w.enabled }
