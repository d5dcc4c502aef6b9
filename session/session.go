package session

import (
	"fmt"
	"log"
	"time"

	"clothsim/protocol"
	"clothsim/sim"
)

// Session owns one simulation world and is its only writer. A single
// goroutine (Run) drives the world from a ticker, applies viewer commands
// from the inbox, and broadcasts snapshots between steps.
type Session struct {
	Inbox          chan any
	tickHz         int
	broadcastEvery int
	world          *sim.World
	clients        map[string]Conn
	nextID         int
	lastUpdate     time.Time
	cycles         int
	quit           chan struct{}

	Code    string            // session code (e.g. "ABC123")
	OnEmpty func(code string) // called when last viewer leaves
}

func New(width, height int) *Session {
	broadcastEvery := protocol.SimTickHz / protocol.BroadcastHz
	if broadcastEvery <= 0 {
		broadcastEvery = 1
	}
	return &Session{
		Inbox:          make(chan any, 256),
		tickHz:         protocol.SimTickHz,
		broadcastEvery: broadcastEvery,
		world:          sim.NewWorld(width, height),
		clients:        make(map[string]Conn),
		nextID:         1,
		quit:           make(chan struct{}),
	}
}

func (s *Session) Stop() {
	close(s.quit)
}

// NumViewers returns the current number of connected clients.
func (s *Session) NumViewers() int {
	return len(s.clients)
}

func (s *Session) Run() {
	ticker := time.NewTicker(time.Second / time.Duration(s.tickHz))
	defer ticker.Stop()

	for {
		select {
		case <-s.quit:
			return
		case cmd := <-s.Inbox:
			s.handleCommand(cmd)
		case now := <-ticker.C:
			if s.lastUpdate.IsZero() {
				// Eating the first elapsed span since it is unbounded.
				s.lastUpdate = now
				continue
			}
			elapsed := now.Sub(s.lastUpdate).Milliseconds()
			if s.world.Advance(elapsed) {
				s.lastUpdate = now
				s.cycles++
				if s.cycles%s.broadcastEvery == 0 {
					s.broadcastState()
				}
			}
		}
	}
}

func (s *Session) handleCommand(cmd any) {
	switch c := cmd.(type) {
	case Join:
		clientID := fmt.Sprintf("c%d", s.nextID)
		s.nextID++
		s.clients[clientID] = c.Conn
		c.Reply <- JoinResult{ClientID: clientID}
		s.sendWelcome(c.Conn, clientID)
		s.sendStateTo(c.Conn)
	case Control:
		if _, ok := s.clients[c.ClientID]; !ok {
			return
		}
		s.applyControl(c.Action)
	case Leave:
		s.handleLeave(c.ClientID)
	}
}

func (s *Session) applyControl(action string) {
	switch action {
	case protocol.ActionPause:
		s.world.TogglePause()
	case protocol.ActionDetach:
		s.world.Detach()
	case protocol.ActionToggleWind:
		s.world.ToggleWind()
	case protocol.ActionToggleSphere:
		s.world.ToggleSphereMotion()
	default:
		log.Printf("session %s: unknown command action %q", s.Code, action)
	}
}

func (s *Session) handleLeave(clientID string) {
	if c, ok := s.clients[clientID]; ok {
		_ = c.Close()
		delete(s.clients, clientID)
	}
	if len(s.clients) == 0 && s.OnEmpty != nil && s.Code != "" {
		s.OnEmpty(s.Code)
	}
}

func (s *Session) removeClient(clientID string) {
	if c, ok := s.clients[clientID]; ok {
		_ = c.Close()
	}
	delete(s.clients, clientID)
}

func (s *Session) sendWelcome(c Conn, clientID string) {
	cloth := s.world.Cloth
	welcome := protocol.Welcome{
		ClientID: clientID,
		TickHz:   s.tickHz,
		Width:    cloth.Width,
		Height:   cloth.Height,
		Colors:   make([][4]float64, 0, len(cloth.Particles)),
	}
	for i := range cloth.Particles {
		col := cloth.Particles[i].Color
		welcome.Colors = append(welcome.Colors, [4]float64{col.R, col.G, col.B, col.A})
	}
	b, err := protocol.Encode(protocol.MsgWelcome, welcome)
	if err != nil {
		return
	}
	_ = c.Send(b)
}

func (s *Session) broadcastState() {
	snapshot := s.buildSnapshot()
	b, err := protocol.Encode(protocol.MsgState, snapshot)
	if err != nil {
		return
	}

	var failed []string
	for id, c := range s.clients {
		if err := c.Send(b); err != nil {
			failed = append(failed, id)
		}
	}
	for _, id := range failed {
		s.removeClient(id)
	}
}

func (s *Session) sendStateTo(c Conn) {
	snapshot := s.buildSnapshot()
	b, err := protocol.Encode(protocol.MsgState, snapshot)
	if err != nil {
		return
	}
	_ = c.Send(b)
}

func (s *Session) buildSnapshot() protocol.State {
	w := s.world
	snapshot := protocol.State{
		Tick:         w.Tick,
		Paused:       w.Paused,
		WindEnabled:  w.Wind.Enabled(),
		SphereMoving: w.Sphere.Moving(),
		Positions:    make([][3]float64, 0, len(w.Cloth.Particles)),
		Sphere: protocol.SphereSnapshot{
			X:      w.Sphere.Position().X(),
			Y:      w.Sphere.Position().Y(),
			Z:      w.Sphere.Position().Z(),
			Radius: w.Sphere.Radius(),
		},
	}
	for i := range w.Cloth.Particles {
		pos := w.Cloth.Particles[i].Position
		snapshot.Positions = append(snapshot.Positions, [3]float64{pos.X(), pos.Y(), pos.Z()})
	}
	return snapshot
}
