package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/msto63/pascal/foundation/calc"
	mdwexecutor "github.com/msto63/pascal/foundation/calc/executor"
	"github.com/msto63/pascal/internal/pascal/session"
	"github.com/msto63/pascal/pkg/core/logging"
)

// Message types
const (
	TypeEval   = "eval"
	TypeVars   = "vars"
	TypePing   = "ping"
	TypeResult = "result"
	TypePong   = "pong"
	TypeError  = "error"
)

// ClientMessage is sent by the client
type ClientMessage struct {
	Type string `json:"type"`
	Line string `json:"line,omitempty"`
}

// ServerMessage is sent by the server
type ServerMessage struct {
	Type      string             `json:"type"`
	SessionID string             `json:"session_id,omitempty"`
	Lines     []mdwexecutor.Line `json:"lines,omitempty"`
	Continue  *bool              `json:"continue,omitempty"`
	Variables []Variable         `json:"variables,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// Variable is a binding with its value rendered like interpreter output
type Variable struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SessionFactory creates the session of a new connection
type SessionFactory func() (*session.Session, error)

// WebSocketConfig holds connection limits
type WebSocketConfig struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxMessageSize int64

	// Precision of variable values in vars replies
	Precision int
}

// WebSocketHandler serves one calculator session per connection
type WebSocketHandler struct {
	newSession SessionFactory
	config     WebSocketConfig
	upgrader   websocket.Upgrader
	logger     *logging.Logger

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(factory SessionFactory, cfg WebSocketConfig, logger *logging.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		newSession: factory,
		config:     cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins for local use
			},
		},
		logger: logger,
		conns:  make(map[*websocket.Conn]struct{}),
	}
}

// ServeHTTP handles WebSocket upgrade and connections
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess, err := h.newSession()
	if err != nil {
		h.logger.Error("Failed to create session", "error", err)
		writeError(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", "error", err)
		return
	}
	h.handleConnection(r.Context(), conn, sess)
}

// CloseAll closes every open connection with a going-away close frame
func (h *WebSocketHandler) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	deadline := time.Now().Add(time.Second)
	for conn := range h.conns {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"), deadline)
		conn.Close()
		delete(h.conns, conn)
	}
}

// Connections returns the number of open connections
func (h *WebSocketHandler) Connections() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *WebSocketHandler) track(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *WebSocketHandler) untrack(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
}

// handleConnection handles a single WebSocket connection
func (h *WebSocketHandler) handleConnection(ctx context.Context, conn *websocket.Conn, sess *session.Session) {
	h.track(conn)
	defer func() {
		h.untrack(conn)
		conn.Close()
	}()

	h.logger.Info("WebSocket session started",
		"remote", conn.RemoteAddr().String(),
		"session", sess.ID(),
	)

	conn.SetReadLimit(h.config.MaxMessageSize)
	conn.SetReadDeadline(time.Now().Add(h.config.ReadTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(h.config.ReadTimeout))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("WebSocket read error", "session", sess.ID(), "error", err)
			} else {
				h.logger.Info("WebSocket session closed", "session", sess.ID(), "lines", sess.Lines())
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(h.config.ReadTimeout))

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			if !h.send(conn, ServerMessage{Type: TypeError, Error: "invalid message: " + err.Error()}) {
				return
			}
			continue
		}

		switch msg.Type {
		case TypePing:
			if !h.send(conn, ServerMessage{Type: TypePong}) {
				return
			}

		case TypeVars:
			if !h.send(conn, ServerMessage{Type: TypeVars, Variables: h.variables(sess)}) {
				return
			}

		case TypeEval:
			result := sess.Eval(ctx, msg.Line)
			cont := result.Continue
			if !h.send(conn, ServerMessage{
				Type:      TypeResult,
				SessionID: sess.ID(),
				Lines:     result.Lines,
				Continue:  &cont,
			}) {
				return
			}
			if !cont {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended"),
					time.Now().Add(h.config.WriteTimeout))
				h.logger.Info("WebSocket session ended by quit", "session", sess.ID())
				return
			}

		default:
			if !h.send(conn, ServerMessage{Type: TypeError, Error: "unknown message type: " + msg.Type}) {
				return
			}
		}
	}
}

func (h *WebSocketHandler) variables(sess *session.Session) []Variable {
	bindings := sess.Environment().Bindings()
	vars := make([]Variable, len(bindings))
	for i, b := range bindings {
		vars[i] = Variable{Name: b.Name, Value: calc.FormatNumber(b.Value, h.config.Precision)}
	}
	return vars
}

// send writes a message and reports whether the connection is still usable
func (h *WebSocketHandler) send(conn *websocket.Conn, msg ServerMessage) bool {
	conn.SetWriteDeadline(time.Now().Add(h.config.WriteTimeout))
	if err := conn.WriteJSON(msg); err != nil {
		h.logger.Warn("WebSocket write failed", "error", err)
		return false
	}
	return true
}
