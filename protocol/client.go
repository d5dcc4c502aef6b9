package protocol

// Messages coming in from viewer clients.

type Hello struct {
	V    int    `json:"v"`              // version
	Name string `json:"name,omitempty"` // optional name
}

// Command is a control request against the running simulation. All actions
// are boolean-flag toggles except detach, which clears the cloth's pins.
type Command struct {
	Action string `json:"action"`
}

const (
	ActionPause        = "pause"
	ActionDetach       = "detach"
	ActionToggleWind   = "toggle-wind"
	ActionToggleSphere = "toggle-sphere"
)
