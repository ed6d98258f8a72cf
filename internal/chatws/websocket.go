// Package chatws provides the WebSocket chat endpoint. Clients join
// with a session ID and exchange JSON frames; replies come from the
// same engine the HTTP API uses.
package chatws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/DineshDhasara/supportbot/internal/engine"
)

// Client frame types.
const (
	frameJoin   = "join"
	frameChat   = "chat"
	frameTyping = "typing"
	framePing   = "ping"
)

// Server frame types.
const (
	frameJoined  = "joined"
	frameMessage = "message"
	framePong    = "pong"
	frameError   = "error"
)

// clientFrame is one inbound WebSocket message.
type clientFrame struct {
	Type      string         `json:"type"`
	SessionID string         `json:"sessionId,omitempty"`
	Message   string         `json:"message,omitempty"`
	Payload   *typingPayload `json:"payload,omitempty"`
}

type typingPayload struct {
	IsTyping bool `json:"isTyping"`
}

// Handler upgrades chat connections and runs the per-connection read
// loop.
type Handler struct {
	eng *engine.Engine

	mu      sync.RWMutex
	clients map[string]*websocket.Conn
}

// NewHandler creates a WebSocket chat handler.
func NewHandler(eng *engine.Engine) *Handler {
	return &Handler{eng: eng, clients: make(map[string]*websocket.Conn)}
}

// ServeHTTP implements http.Handler for WebSocket upgrade.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	slog.Info("WebSocket connection request", "ip", r.RemoteAddr)

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("Failed to accept WebSocket", "error", err)
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "session ended"); closeErr != nil {
			slog.Debug("Failed to close websocket", "error", closeErr)
		}
	}()
	defer h.unregister(ws)

	ctx := r.Context()
	for {
		_, data, err := ws.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == -1 && ctx.Err() == nil {
				slog.Debug("WebSocket read error", "error", err)
			}
			return
		}

		var frame clientFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			h.writeError(ws, "Invalid message format")
			continue
		}
		h.handleFrame(ctx, ws, frame)
	}
}

func (h *Handler) handleFrame(ctx context.Context, ws *websocket.Conn, frame clientFrame) {
	switch frame.Type {
	case frameJoin:
		if frame.SessionID == "" {
			h.writeError(ws, "Session ID is required to join")
			return
		}
		h.register(frame.SessionID, ws)
		h.writeJSON(ws, map[string]interface{}{
			"type":      frameJoined,
			"sessionId": frame.SessionID,
			"message":   "Connected to real-time chat",
		})

	case frameChat:
		h.handleChat(ctx, ws, frame.SessionID, frame.Message)

	case frameTyping:
		isTyping := frame.Payload != nil && frame.Payload.IsTyping
		h.forwardTyping(frame.SessionID, isTyping)

	case framePing:
		h.writeJSON(ws, map[string]string{"type": framePong})

	default:
		h.writeError(ws, "Unknown message type")
	}
}

func (h *Handler) handleChat(ctx context.Context, ws *websocket.Conn, sessionID, message string) {
	if sessionID == "" || message == "" {
		h.writeError(ws, "sessionId and message are required")
		return
	}

	h.writeJSON(ws, map[string]interface{}{"type": frameTyping, "isTyping": true})

	res, err := h.eng.Process(ctx, engine.Request{SessionID: sessionID, Message: message})
	if err != nil {
		slog.Error("WebSocket chat processing failed", "session_id", sessionID, "error", err)
		res = engine.FailureResult(sessionID)
	}

	h.writeJSON(ws, map[string]interface{}{
		"type":       frameMessage,
		"from":       "bot",
		"reply":      res.Reply,
		"intent":     res.Intent,
		"confidence": res.Confidence,
		"metadata":   res.Metadata,
		"timestamp":  time.Now().UnixMilli(),
	})

	h.writeJSON(ws, map[string]interface{}{"type": frameTyping, "isTyping": false})
}

// forwardTyping relays a typing indicator to the connection joined for
// the session, if any.
func (h *Handler) forwardTyping(sessionID string, isTyping bool) {
	h.mu.RLock()
	client, ok := h.clients[sessionID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	h.writeJSON(client, map[string]interface{}{"type": frameTyping, "isTyping": isTyping})
}

func (h *Handler) register(sessionID string, ws *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[sessionID] = ws
}

func (h *Handler) unregister(ws *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, client := range h.clients {
		if client == ws {
			delete(h.clients, id)
			slog.Info("Session disconnected", "session_id", id)
		}
	}
}

func (h *Handler) writeError(ws *websocket.Conn, message string) {
	h.writeJSON(ws, map[string]string{"type": frameError, "message": message})
}

func (h *Handler) writeJSON(ws *websocket.Conn, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("Failed to marshal websocket frame", "error", err)
		return
	}
	if err := ws.Write(context.Background(), websocket.MessageText, data); err != nil {
		slog.Debug("WebSocket write error", "error", err)
	}
}
