package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/zap8600/go-discordapi/pkg/model"
)

// gatewayVersion is the gateway protocol version spoken here.
const gatewayVersion = "10"

// ErrClosed is returned by Open on a session that was already closed.
var ErrClosed = errors.New("gateway: session closed")

// Fatal close codes: reconnecting cannot help, the session stops.
var fatalCloseCodes = map[int]string{
	4004: "authentication failed",
	4010: "invalid shard",
	4011: "sharding required",
	4012: "invalid API version",
	4013: "invalid intents",
	4014: "disallowed intents",
}

// Config configures a gateway session.
type Config struct {
	// Token is the raw bot token used in IDENTIFY and RESUME.
	Token string
	// Intents gates which event groups are delivered.
	Intents Intent
	// URL is the wss endpoint from gateway discovery.
	URL string
	// Logger defaults to a no-op logger.
	Logger zerolog.Logger
	// Dialer defaults to websocket.DefaultDialer.
	Dialer *websocket.Dialer
}

// Session maintains one realtime gateway connection: handshake, heartbeats,
// dispatch routing and resume-on-drop.
type Session struct {
	cfg    Config
	log    zerolog.Logger
	dialer *websocket.Dialer

	mu       sync.Mutex
	conn     *websocket.Conn
	writeMu  sync.Mutex
	handlers map[string][]Handler
	opened   bool
	closed   bool
	cancel   context.CancelFunc
	done     chan struct{}

	seq       atomic.Int64
	acked     atomic.Bool
	sessionID string
	resumeURL string
	user      *model.User
}

// NewSession creates an unopened session.
func NewSession(cfg Config) (*Session, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("gateway: token is required")
	}
	if cfg.URL == "" {
		return nil, fmt.Errorf("gateway: url is required")
	}
	if cfg.Intents == 0 {
		cfg.Intents = IntentsDefault
	}
	dialer := cfg.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	return &Session{
		cfg:      cfg,
		log:      cfg.Logger,
		dialer:   dialer,
		handlers: make(map[string][]Handler),
		done:     make(chan struct{}),
	}, nil
}

// On registers a handler for the named dispatch event. EventAny receives
// every dispatch. Must be called before Open.
func (s *Session) On(event string, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[event] = append(s.handlers[event], h)
}

// User returns the bot user from READY, nil before the first handshake.
func (s *Session) User() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Sequence returns the last dispatch sequence seen.
func (s *Session) Sequence() int64 {
	return s.seq.Load()
}

// Open connects, completes the handshake and starts the read loop. It
// returns once the connection is established; events arrive on handlers
// until Close or a fatal close code.
func (s *Session) Open(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.opened {
		s.mu.Unlock()
		return fmt.Errorf("gateway: session already open")
	}
	s.opened = true
	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.mu.Unlock()

	if err := s.connect(ctx, false); err != nil {
		cancel()
		s.mu.Lock()
		s.opened = false
		s.mu.Unlock()
		return err
	}

	go s.run(runCtx)
	return nil
}

// Done is closed when the session stops for good.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Close sends a clean close so the server invalidates the session, then
// stops the read loop.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	conn := s.conn
	cancel := s.cancel
	s.mu.Unlock()

	if conn != nil {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		s.writeMu.Lock()
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(5*time.Second))
		s.writeMu.Unlock()
		_ = conn.Close()
	}
	if cancel != nil {
		cancel()
	}
	return nil
}

// connect dials, reads HELLO, starts heartbeating and identifies or resumes.
func (s *Session) connect(ctx context.Context, resume bool) error {
	url := s.cfg.URL
	s.mu.Lock()
	if s.sessionID == "" {
		resume = false
	}
	if resume && s.resumeURL != "" {
		url = s.resumeURL
	}
	s.mu.Unlock()
	url = url + "?v=" + gatewayVersion + "&encoding=json"

	conn, _, err := s.dialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("gateway: dialing %s: %w", url, err)
	}

	var hello payload
	if err := conn.ReadJSON(&hello); err != nil {
		conn.Close()
		return fmt.Errorf("gateway: reading hello: %w", err)
	}
	if hello.Op != OpHello {
		conn.Close()
		return fmt.Errorf("gateway: expected hello, got op %d", hello.Op)
	}
	var hd helloData
	if err := json.Unmarshal(hello.Data, &hd); err != nil {
		conn.Close()
		return fmt.Errorf("gateway: decoding hello: %w", err)
	}

	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
	s.acked.Store(true)

	interval := time.Duration(hd.HeartbeatInterval) * time.Millisecond
	go s.heartbeat(conn, interval)

	if resume {
		s.mu.Lock()
		data := resumeData{Token: s.cfg.Token, SessionID: s.sessionID, Seq: s.seq.Load()}
		s.mu.Unlock()
		if err := s.send(conn, OpResume, data); err != nil {
			conn.Close()
			return err
		}
		s.log.Info().Int64("seq", data.Seq).Msg("resuming gateway session")
		return nil
	}

	identify := identifyData{
		Token: s.cfg.Token,
		Properties: identifyProperties{
			OS:      runtime.GOOS,
			Browser: "go-discordapi",
			Device:  "go-discordapi",
		},
		Intents: s.cfg.Intents,
	}
	if err := s.send(conn, OpIdentify, identify); err != nil {
		conn.Close()
		return err
	}
	s.log.Info().Msg("gateway session identified")
	return nil
}

func (s *Session) send(conn *websocket.Conn, op Opcode, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("gateway: encoding op %d: %w", op, err)
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := conn.WriteJSON(payload{Op: op, Data: raw}); err != nil {
		return fmt.Errorf("gateway: writing op %d: %w", op, err)
	}
	return nil
}

// heartbeat beats at the advertised interval until the connection dies. The
// first beat fires after interval*jitter per the protocol. A missing ACK
// between beats marks the connection zombied and closes it, which unblocks
// the read loop into a resume.
func (s *Session) heartbeat(conn *websocket.Conn, interval time.Duration) {
	first := time.Duration(rand.Float64() * float64(interval))
	t := time.NewTimer(first)
	defer t.Stop()

	for {
		<-t.C
		if !s.acked.Load() {
			s.log.Warn().Msg("heartbeat ack missing, closing zombied connection")
			conn.Close()
			return
		}
		s.acked.Store(false)
		seq := s.seq.Load()
		if err := s.send(conn, OpHeartbeat, seq); err != nil {
			conn.Close()
			return
		}
		t.Reset(interval)

		// Stop when the session swapped to a new connection.
		s.mu.Lock()
		current := s.conn
		s.mu.Unlock()
		if current != conn {
			return
		}
	}
}

// run owns the read loop and the reconnect policy.
func (s *Session) run(ctx context.Context) {
	defer close(s.done)

	resume := true
	for {
		err := s.readLoop(ctx)

		s.mu.Lock()
		closed := s.closed
		s.mu.Unlock()
		if closed || ctx.Err() != nil {
			return
		}

		var closeErr *websocket.CloseError
		if errors.As(err, &closeErr) {
			if reason, fatal := fatalCloseCodes[closeErr.Code]; fatal {
				s.log.Error().Int("code", closeErr.Code).Str("reason", reason).Msg("fatal gateway close")
				return
			}
			// 4007 (invalid seq) and 4009 (session timed out) need a fresh
			// identify rather than a resume.
			if closeErr.Code == 4007 || closeErr.Code == 4009 {
				resume = false
			}
		}

		bo := backoff.NewExponentialBackOff()
		bo.InitialInterval = time.Second
		bo.MaxInterval = time.Minute
		bo.MaxElapsedTime = 0

		for {
			wait := bo.NextBackOff()
			s.log.Info().Dur("backoff", wait).Bool("resume", resume).Msg("reconnecting to gateway")
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
			if err := s.connect(ctx, resume); err != nil {
				s.log.Warn().Err(err).Msg("gateway reconnect failed")
				continue
			}
			break
		}
		resume = true
	}
}

// readLoop decodes payloads until the connection drops, returning the read
// error that broke it.
func (s *Session) readLoop(ctx context.Context) error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return ErrClosed
	}

	for {
		var p payload
		if err := conn.ReadJSON(&p); err != nil {
			return err
		}

		switch p.Op {
		case OpDispatch:
			if p.Seq != nil {
				s.seq.Store(*p.Seq)
			}
			s.dispatch(&p)

		case OpHeartbeat:
			// Server requested an immediate beat.
			_ = s.send(conn, OpHeartbeat, s.seq.Load())

		case OpHeartbeatACK:
			s.acked.Store(true)

		case OpReconnect:
			s.log.Info().Msg("gateway requested reconnect")
			conn.Close()
			return fmt.Errorf("gateway: server requested reconnect")

		case OpInvalidSession:
			var resumable bool
			_ = json.Unmarshal(p.Data, &resumable)
			s.log.Warn().Bool("resumable", resumable).Msg("gateway session invalidated")
			if !resumable {
				s.mu.Lock()
				s.sessionID = ""
				s.resumeURL = ""
				s.mu.Unlock()
				s.seq.Store(0)
			}
			conn.Close()
			return fmt.Errorf("gateway: session invalidated")

		default:
			s.log.Debug().Int("op", int(p.Op)).Msg("unhandled gateway opcode")
		}
	}
}

func (s *Session) dispatch(p *payload) {
	ev := &Event{Type: p.Type, Data: p.Data}
	if p.Seq != nil {
		ev.Seq = *p.Seq
	}

	if p.Type == EventReady {
		var rd readyData
		if err := json.Unmarshal(p.Data, &rd); err == nil {
			s.mu.Lock()
			s.sessionID = rd.SessionID
			s.resumeURL = rd.ResumeGatewayURL
			s.user = rd.User
			s.mu.Unlock()
			s.log.Info().Str("session_id", rd.SessionID).Msg("gateway ready")
		}
	}

	s.mu.Lock()
	handlers := append([]Handler(nil), s.handlers[p.Type]...)
	handlers = append(handlers, s.handlers[EventAny]...)
	s.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
}
