package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/dshills/gesturekit/config"
	"github.com/dshills/gesturekit/gesture"
	"github.com/dshills/gesturekit/pointer"
)

// Server timeouts.
const (
	readTimeout  = 10 * time.Second
	writeTimeout = 10 * time.Second
	idleTimeout  = 120 * time.Second
)

// Inbound message types.
const (
	msgPointer   = "pointer"
	msgConfigure = "configure"
)

// Outbound message types.
const (
	msgWelcome    = "welcome"
	msgGesture    = "gesture"
	msgConfigured = "configured"
	msgError      = "error"
)

// touchPayload is the wire form of one contact.
type touchPayload struct {
	ID int32   `json:"id"`
	X  float32 `json:"x"`
	Y  float32 `json:"y"`
}

// inboundMessage is every client-to-server frame. Type selects which fields
// apply: "pointer" uses action/pointer/points/time_ms, "configure" uses the
// toggle pointers, where nil leaves a toggle unchanged.
type inboundMessage struct {
	Type    string         `json:"type"`
	Action  string         `json:"action,omitempty"`
	Pointer int32          `json:"pointer,omitempty"`
	Points  []touchPayload `json:"points,omitempty"`
	TimeMS  int64          `json:"time_ms,omitempty"`

	LongPress *bool `json:"long_press,omitempty"`
	DoubleTap *bool `json:"double_tap,omitempty"`
	Scale     *bool `json:"scale,omitempty"`
	Rotate    *bool `json:"rotate,omitempty"`
}

// toggleState reports the recognizer toggles after a configure frame.
type toggleState struct {
	LongPress bool `json:"long_press"`
	DoubleTap bool `json:"double_tap"`
	Scale     bool `json:"scale"`
	Rotate    bool `json:"rotate"`
}

// outboundMessage is every server-to-client frame.
type outboundMessage struct {
	Type       string         `json:"type"`
	Session    string         `json:"session,omitempty"`
	Gesture    *gesture.Event `json:"gesture,omitempty"`
	Configured *toggleState   `json:"configured,omitempty"`
	Error      string         `json:"error,omitempty"`
}

// Server accepts websocket clients on /ws and classifies each client's
// pointer stream with a per-session recognizer, streaming the resulting
// gestures back. /healthz and /stats are plain HTTP endpoints.
type Server struct {
	cfg config.Config
	log *logrus.Logger

	httpSrv *http.Server

	mu       sync.Mutex
	sessions map[uuid.UUID]*session

	totalSessions atomic.Uint64
	pointerEvents atomic.Uint64
	gestureEvents atomic.Uint64
}

// New creates a bridge server. Each new session's recognizer starts with
// cfg's thresholds and toggles. A nil log gets a default logger.
func New(cfg config.Config, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.New()
	}
	return &Server{
		cfg:      cfg,
		log:      log,
		sessions: make(map[uuid.UUID]*session),
	}
}

// SetConfig swaps the server configuration. New sessions pick it up as
// they open and live sessions are retuned in place. The listen address
// cannot change once ListenAndServe has been called.
func (s *Server) SetConfig(cfg config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	for _, sess := range s.sessions {
		cfg.Apply(sess.rec)
	}
	s.log.Info("bridge configuration updated")
}

func (s *Server) config() config.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Handler returns the HTTP handler serving /ws, /healthz and /stats.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/stats", s.handleStats)
	return mux
}

// ListenAndServe serves on the configured address until Shutdown or a
// listener error.
func (s *Server) ListenAndServe() error {
	addr := s.config().Bridge.Addr
	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
	s.log.WithField("addr", addr).Info("bridge listening")
	return s.httpSrv.ListenAndServe()
}

// Shutdown stops the listener and closes all live sessions.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.httpSrv != nil {
		err = s.httpSrv.Shutdown(ctx)
	}

	// Shutdown does not touch hijacked connections; close them directly so
	// their read loops exit.
	s.mu.Lock()
	for _, sess := range s.sessions {
		sess.conn.Close()
	}
	s.mu.Unlock()
	return err
}

// session is one websocket client with its own recognizer.
type session struct {
	id      uuid.UUID
	conn    *websocket.Conn
	rec     *gesture.Recognizer
	log     *logrus.Entry
	writeMu sync.Mutex
}

func (s *session) send(msg outboundMessage) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(msg)
}

func (s *session) sendError(text string) {
	if err := s.send(outboundMessage{Type: msgError, Error: text}); err != nil {
		s.log.WithError(err).Debug("error frame write failed")
	}
}

func (s *Server) upgrader() *websocket.Upgrader {
	up := &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	if s.config().Bridge.AllowAnyOrigin {
		up.CheckOrigin = func(*http.Request) bool { return true }
	} else {
		up.CheckOrigin = isSameOrigin
	}
	return up
}

func isSameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return originURL.Host == r.Host
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader().Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	sess := s.newSession(conn)
	defer s.dropSession(sess)

	if err := sess.send(outboundMessage{Type: msgWelcome, Session: sess.id.String()}); err != nil {
		return
	}

	for {
		messageType, payload, err := conn.ReadMessage()
		if err != nil {
			sess.log.WithError(err).Debug("session read ended")
			return
		}
		if messageType != websocket.TextMessage {
			sess.sendError("only text messages are accepted")
			continue
		}
		s.handleMessage(sess, payload)
	}
}

func (s *Server) newSession(conn *websocket.Conn) *session {
	sess := &session{
		id:   uuid.New(),
		conn: conn,
	}
	sess.log = s.log.WithField("session", sess.id)

	// The recognizer serializes callbacks, including timer-driven ones, so
	// the sink only has to serialize against frames written outside it.
	collector := &gesture.Collector{Sink: func(ev gesture.Event) {
		s.gestureEvents.Add(1)
		if err := sess.send(outboundMessage{Type: msgGesture, Gesture: &ev}); err != nil {
			sess.log.WithError(err).Debug("gesture frame write failed")
		}
	}}
	sess.rec = gesture.New(collector)
	s.config().Apply(sess.rec)

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	s.totalSessions.Add(1)

	sess.log.Info("session opened")
	return sess
}

func (s *Server) dropSession(sess *session) {
	s.mu.Lock()
	delete(s.sessions, sess.id)
	s.mu.Unlock()
	sess.log.Info("session closed")
}

func (s *Server) handleMessage(sess *session, payload []byte) {
	var msg inboundMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		sess.sendError("invalid JSON payload")
		return
	}

	switch msg.Type {
	case msgPointer:
		s.handlePointer(sess, msg)
	case msgConfigure:
		s.handleConfigure(sess, msg)
	default:
		sess.sendError(fmt.Sprintf("unknown message type %q", msg.Type))
	}
}

func (s *Server) handlePointer(sess *session, msg inboundMessage) {
	action, err := pointer.ParseAction(msg.Action)
	if err != nil {
		sess.sendError(err.Error())
		return
	}

	ev := pointer.Event{
		Action:  action,
		Pointer: pointer.ID(msg.Pointer),
		Time:    time.Now(),
	}
	if msg.TimeMS != 0 {
		ev.Time = time.UnixMilli(msg.TimeMS)
	}
	if len(msg.Points) > 0 {
		ev.Points = make([]pointer.Touch, len(msg.Points))
		for i, p := range msg.Points {
			ev.Points[i] = pointer.Touch{ID: pointer.ID(p.ID), X: p.X, Y: p.Y}
		}
	}

	s.pointerEvents.Add(1)
	sess.rec.OnPointerEvent(ev)
}

func (s *Server) handleConfigure(sess *session, msg inboundMessage) {
	if msg.LongPress != nil {
		sess.rec.SetLongPressEnabled(*msg.LongPress)
	}
	if msg.DoubleTap != nil {
		sess.rec.SetDoubleTapEnabled(*msg.DoubleTap)
	}
	if msg.Scale != nil {
		sess.rec.SetScaleEnabled(*msg.Scale)
	}
	if msg.Rotate != nil {
		sess.rec.SetRotateEnabled(*msg.Rotate)
	}

	state := &toggleState{
		LongPress: sess.rec.IsLongPressEnabled(),
		DoubleTap: sess.rec.IsDoubleTapEnabled(),
		Scale:     sess.rec.IsScaleEnabled(),
		Rotate:    sess.rec.IsRotateEnabled(),
	}
	if err := sess.send(outboundMessage{Type: msgConfigured, Configured: state}); err != nil {
		sess.log.WithError(err).Debug("configured frame write failed")
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// statsSnapshot is the /stats response body.
type statsSnapshot struct {
	ActiveSessions int    `json:"active_sessions"`
	TotalSessions  uint64 `json:"total_sessions"`
	PointerEvents  uint64 `json:"pointer_events"`
	GestureEvents  uint64 `json:"gesture_events"`
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	active := len(s.sessions)
	s.mu.Unlock()

	snap := statsSnapshot{
		ActiveSessions: active,
		TotalSessions:  s.totalSessions.Load(),
		PointerEvents:  s.pointerEvents.Load(),
		GestureEvents:  s.gestureEvents.Load(),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(snap)
}
