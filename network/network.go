package network

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"clothsim/protocol"
	"clothsim/session"
)

const (
	readLimit    = 1 << 20 // 1MB
	pongWait     = 60 * time.Second
	pingPeriod   = 25 * time.Second
	writeTimeout = 10 * time.Second
	sendBuffer   = 32
)

var upgrader = websocket.Upgrader{
	// For dev, allow all origins. Lock this down in prod.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server exposes the simulation sessions over websocket.
type Server struct {
	manager *session.Manager
}

func NewServer(m *session.Manager) *Server {
	return &Server{manager: m}
}

// HandleWS upgrades the connection, performs the hello handshake, attaches
// the client to its session, and pumps commands until the socket closes.
func (srv *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("session")
	if code == "" {
		http.Error(w, "missing session code", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}

	// Basic timeouts + pong handling (keeps connections healthy)
	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	client := newClient(conn)
	go client.writePump()

	hello, err := readHello(conn)
	if err != nil {
		log.Println("hello:", err)
		client.Close()
		return
	}

	sess := srv.manager.GetOrCreate(code)
	reply := make(chan session.JoinResult, 1)
	sess.Inbox <- session.Join{Conn: client, Name: hello.Name, Reply: reply}
	res := <-reply

	srv.readLoop(conn, sess, res.ClientID)
	sess.Inbox <- session.Leave{ClientID: res.ClientID}
}

func readHello(conn *websocket.Conn) (protocol.Hello, error) {
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return protocol.Hello{}, err
	}
	env, err := protocol.DecodeEnvelope(msg)
	if err != nil {
		return protocol.Hello{}, err
	}
	return protocol.DecodePayload[protocol.Hello](env)
}

func (srv *Server) readLoop(conn *websocket.Conn, sess *session.Session, clientID string) {
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		env, err := protocol.DecodeEnvelope(msg)
		if err != nil {
			log.Println("decode:", err)
			continue
		}
		if env.T != protocol.MsgCommand {
			continue
		}
		cmd, err := protocol.DecodePayload[protocol.Command](env)
		if err != nil {
			log.Println("command:", err)
			continue
		}
		sess.Inbox <- session.Control{ClientID: clientID, Action: cmd.Action}
	}
}

// client wraps a websocket connection behind the session.Conn interface,
// serializing writes through a buffered channel.
type client struct {
	conn      *websocket.Conn
	send      chan []byte
	closeOnce sync.Once
	done      chan struct{}
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
}

func (c *client) Send(b []byte) error {
	select {
	case c.send <- b:
		return nil
	case <-c.done:
		return websocket.ErrCloseSent
	default:
		// Slow consumer: drop the connection rather than block the session.
		c.Close()
		return websocket.ErrCloseSent
	}
}

func (c *client) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
	return nil
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case b := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
				c.Close()
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}
		}
	}
}
