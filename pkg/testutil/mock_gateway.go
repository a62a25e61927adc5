package testutil

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// mockGateway implements enough of the gateway handshake for session tests:
// HELLO on connect, READY after IDENTIFY, heartbeat ACKs, and dispatch
// injection.
type mockGateway struct {
	mu        sync.Mutex
	upgrader  websocket.Upgrader
	conns     []*gatewayConn
	interval  int // heartbeat interval advertised in HELLO, milliseconds
	identifys []json.RawMessage
	resumes   []json.RawMessage
	seq       int64
}

type gatewayConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func newMockGateway() *mockGateway {
	return &mockGateway{
		interval: 45000,
	}
}

// SetHeartbeatInterval overrides the interval advertised in HELLO.
func (g *mockGateway) SetHeartbeatInterval(ms int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.interval = ms
}

// Identifies returns the raw IDENTIFY payloads received so far.
func (g *mockGateway) Identifies() []json.RawMessage {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]json.RawMessage(nil), g.identifys...)
}

// Resumes returns the raw RESUME payloads received so far.
func (g *mockGateway) Resumes() []json.RawMessage {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]json.RawMessage(nil), g.resumes...)
}

type wirePayload struct {
	Op   int             `json:"op"`
	Data json.RawMessage `json:"d,omitempty"`
	Seq  *int64          `json:"s,omitempty"`
	Type string          `json:"t,omitempty"`
}

func (g *mockGateway) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	gc := &gatewayConn{conn: conn}
	g.mu.Lock()
	g.conns = append(g.conns, gc)
	interval := g.interval
	g.mu.Unlock()

	hello, _ := json.Marshal(map[string]int{"heartbeat_interval": interval})
	gc.write(wirePayload{Op: 10, Data: hello})

	go g.readLoop(gc)
}

func (g *mockGateway) readLoop(gc *gatewayConn) {
	for {
		var p wirePayload
		if err := gc.conn.ReadJSON(&p); err != nil {
			return
		}
		switch p.Op {
		case 1: // heartbeat -> ack
			gc.write(wirePayload{Op: 11})
		case 2: // identify -> ready
			g.mu.Lock()
			g.identifys = append(g.identifys, p.Data)
			g.mu.Unlock()
			ready, _ := json.Marshal(map[string]any{
				"v":                  10,
				"session_id":         "mock-session",
				"resume_gateway_url": "",
				"user": map[string]any{
					"id":       "180000000000000001",
					"username": "testbot",
					"bot":      true,
				},
			})
			g.dispatchTo(gc, "READY", ready)
		case 6: // resume -> resumed
			g.mu.Lock()
			g.resumes = append(g.resumes, p.Data)
			g.mu.Unlock()
			g.dispatchTo(gc, "RESUMED", json.RawMessage(`{}`))
		}
	}
}

// RequestReconnect sends op 7 to every connected session, asking it to drop
// the connection and resume.
func (g *mockGateway) RequestReconnect() {
	g.mu.Lock()
	conns := append([]*gatewayConn(nil), g.conns...)
	g.mu.Unlock()
	for _, gc := range conns {
		gc.write(wirePayload{Op: 7})
	}
}

// Dispatch sends a named event to every connected session.
func (g *mockGateway) Dispatch(event string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	g.mu.Lock()
	conns := append([]*gatewayConn(nil), g.conns...)
	g.mu.Unlock()
	for _, gc := range conns {
		g.dispatchTo(gc, event, raw)
	}
	return nil
}

func (g *mockGateway) dispatchTo(gc *gatewayConn, event string, data json.RawMessage) {
	g.mu.Lock()
	g.seq++
	seq := g.seq
	g.mu.Unlock()
	gc.write(wirePayload{Op: 0, Data: data, Seq: &seq, Type: event})
}

func (gc *gatewayConn) write(p wirePayload) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	_ = gc.conn.WriteJSON(p)
}
