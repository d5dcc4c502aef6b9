package protocol

// Welcome carries the static mesh description: particle colors never change,
// so they ride along here instead of in every state broadcast.
type Welcome struct {
	ClientID string       `json:"clientId"`
	TickHz   int          `json:"tickHz"`
	Width    int          `json:"width"`
	Height   int          `json:"height"`
	Colors   [][4]float64 `json:"colors"`
}

// State is one snapshot of the simulation, read between steps.
type State struct {
	Tick         int            `json:"tick"`
	Paused       bool           `json:"paused"`
	WindEnabled  bool           `json:"windEnabled"`
	SphereMoving bool           `json:"sphereMoving"`
	Positions    [][3]float64   `json:"positions"`
	Sphere       SphereSnapshot `json:"sphere"`
}

type SphereSnapshot struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Radius float64 `json:"radius"`
}
