package session

import (
	"testing"
	"time"

	"clothsim/protocol"
)

type fakeConn struct {
	sendCh chan []byte
}

func (f *fakeConn) Send(b []byte) error {
	cp := make([]byte, len(b))
	copy(cp, b)
	f.sendCh <- cp
	return nil
}

func (f *fakeConn) Close() error {
	return nil
}

func join(t *testing.T, s *Session, fc *fakeConn, name string) JoinResult {
	t.Helper()
	reply := make(chan JoinResult, 1)
	s.Inbox <- Join{Conn: fc, Name: name, Reply: reply}
	select {
	case res := <-reply:
		if res.ClientID == "" {
			t.Fatalf("expected client id, got empty")
		}
		return res
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for join result")
		return JoinResult{}
	}
}

func waitFor[T any](t *testing.T, fc *fakeConn, msgType string, ok func(T) bool) T {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case b := <-fc.sendCh:
			env, err := protocol.DecodeEnvelope(b)
			if err != nil || env.T != msgType {
				continue
			}
			payload, err := protocol.DecodePayload[T](env)
			if err != nil {
				t.Fatalf("decode %s payload: %v", msgType, err)
			}
			if ok == nil || ok(payload) {
				return payload
			}
		case <-timeout:
			var zero T
			t.Fatalf("timed out waiting for %s message", msgType)
			return zero
		}
	}
}

func TestSessionJoinSendsWelcomeWithMeshDescription(t *testing.T) {
	s := New(8, 8)
	go s.Run()
	defer s.Stop()

	fc := &fakeConn{sendCh: make(chan []byte, 64)}
	res := join(t, s, fc, "viewer")

	welcome := waitFor[protocol.Welcome](t, fc, protocol.MsgWelcome, nil)
	if welcome.ClientID != res.ClientID {
		t.Fatalf("welcome client id = %q, want %q", welcome.ClientID, res.ClientID)
	}
	if welcome.Width != 8 || welcome.Height != 8 {
		t.Fatalf("welcome mesh dims = %dx%d, want 8x8", welcome.Width, welcome.Height)
	}
	if len(welcome.Colors) != 64 {
		t.Fatalf("welcome color count = %d, want 64", len(welcome.Colors))
	}
}

func TestSessionBroadcastsFullParticleSnapshot(t *testing.T) {
	s := New(6, 6)
	go s.Run()
	defer s.Stop()

	fc := &fakeConn{sendCh: make(chan []byte, 64)}
	join(t, s, fc, "viewer")

	state := waitFor[protocol.State](t, fc, protocol.MsgState, nil)
	if len(state.Positions) != 36 {
		t.Fatalf("snapshot position count = %d, want 36", len(state.Positions))
	}
	if state.Sphere.Radius <= 0 {
		t.Fatalf("snapshot sphere radius = %f, want > 0", state.Sphere.Radius)
	}
}

func TestSessionTickAdvancesOverTime(t *testing.T) {
	s := New(6, 6)
	go s.Run()
	defer s.Stop()

	fc := &fakeConn{sendCh: make(chan []byte, 256)}
	join(t, s, fc, "viewer")

	first := waitFor[protocol.State](t, fc, protocol.MsgState, nil)
	later := waitFor[protocol.State](t, fc, protocol.MsgState, func(st protocol.State) bool {
		return st.Tick > first.Tick
	})
	if later.Tick <= first.Tick {
		t.Fatalf("tick did not advance: %d -> %d", first.Tick, later.Tick)
	}
}

func TestSessionPauseCommandFreezesTick(t *testing.T) {
	s := New(6, 6)
	go s.Run()
	defer s.Stop()

	fc := &fakeConn{sendCh: make(chan []byte, 256)}
	res := join(t, s, fc, "viewer")

	s.Inbox <- Control{ClientID: res.ClientID, Action: protocol.ActionPause}

	paused := waitFor[protocol.State](t, fc, protocol.MsgState, func(st protocol.State) bool {
		return st.Paused
	})

	// Ticks may still be in flight from before the pause landed; once a
	// later snapshot arrives, the tick must be frozen.
	next := waitFor[protocol.State](t, fc, protocol.MsgState, func(st protocol.State) bool {
		return st.Paused
	})
	if next.Tick != paused.Tick {
		t.Fatalf("tick advanced while paused: %d -> %d", paused.Tick, next.Tick)
	}
}

func TestSessionDetachCommandIsAppliedToWorld(t *testing.T) {
	s := New(6, 6)
	go s.Run()
	defer s.Stop()

	fc := &fakeConn{sendCh: make(chan []byte, 256)}
	res := join(t, s, fc, "viewer")

	s.Inbox <- Control{ClientID: res.ClientID, Action: protocol.ActionDetach}
	s.Inbox <- Control{ClientID: res.ClientID, Action: protocol.ActionPause}

	// Wait until both commands have been applied.
	waitFor[protocol.State](t, fc, protocol.MsgState, func(st protocol.State) bool {
		return st.Paused
	})

	for i := range s.world.Cloth.Particles {
		if s.world.Cloth.Particles[i].Pinned {
			t.Fatalf("particle %d still pinned after detach command", i)
		}
	}
}

func TestSessionIgnoresCommandsFromUnknownClients(t *testing.T) {
	s := New(6, 6)
	go s.Run()
	defer s.Stop()

	fc := &fakeConn{sendCh: make(chan []byte, 256)}
	join(t, s, fc, "viewer")

	s.Inbox <- Control{ClientID: "ghost", Action: protocol.ActionPause}

	// By the time several ticks have elapsed the command has been drained.
	state := waitFor[protocol.State](t, fc, protocol.MsgState, func(st protocol.State) bool {
		return st.Tick >= 5
	})
	if state.Paused {
		t.Fatal("command from unknown client was applied")
	}
}

func TestManagerReusesSessionsByCode(t *testing.T) {
	m := NewManager(6, 6)

	a := m.GetOrCreate("ABC123")
	b := m.GetOrCreate("ABC123")
	if a != b {
		t.Fatal("same code produced different sessions")
	}
	defer a.Stop()

	if m.GetOrCreate("") != nil {
		t.Fatal("empty code must not create a session")
	}
}

func TestManagerCreateGeneratesUniqueCodes(t *testing.T) {
	m := NewManager(6, 6)

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		code := m.Create()
		if len(code) != 6 {
			t.Fatalf("code %q length = %d, want 6", code, len(code))
		}
		if seen[code] {
			t.Fatalf("duplicate session code %q", code)
		}
		seen[code] = true
	}

	if got := len(m.List()); got != 10 {
		t.Fatalf("session list length = %d, want 10", got)
	}

	for code := range seen {
		m.remove(code)
	}
}

func TestManagerRemovesSessionWhenLastViewerLeaves(t *testing.T) {
	m := NewManager(6, 6)
	s := m.GetOrCreate("DROPME")

	fc := &fakeConn{sendCh: make(chan []byte, 256)}
	res := join(t, s, fc, "viewer")

	s.Inbox <- Leave{ClientID: res.ClientID}

	deadline := time.After(2 * time.Second)
	for {
		if len(m.List()) == 0 {
			return
		}
		select {
		case <-deadline:
			t.Fatal("session was not reaped after last viewer left")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
