package session

type Conn interface {
	Send([]byte) error
	Close() error
}

// Join: issued once after hello parsed
type Join struct {
	Conn  Conn
	Name  string
	Reply chan<- JoinResult
}

type JoinResult struct {
	ClientID string
}

// Control: a simulation command from a viewer
type Control struct {
	ClientID string
	Action   string
}

// Leave: issued on disconnect
type Leave struct {
	ClientID string
}
