// Package ws upgrades HTTP requests to websocket connections and
// bridges them onto the hub: one read loop feeding frames in, one
// write pump draining broadcasts out.
package ws

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/zr-chat/relay/internal/hub"
)

// Handler owns the upgrader and hands accepted connections to the hub.
type Handler struct {
	hub      *hub.Hub
	upgrader websocket.Upgrader
}

// New creates the websocket handler.
func New(h *hub.Hub) *Handler {
	return &Handler{
		hub: h,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes registers the websocket endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws", h.handleWS)
}

func (h *Handler) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}

	wc := newWSConn(conn)
	sessionID := h.hub.Register(wc)

	go wc.writePump()
	h.readLoop(wc, sessionID)
}

// readLoop delivers each inbound text message to the hub as one frame.
// It returns when the peer disconnects, releasing the session exactly
// once.
func (h *Handler) readLoop(wc *wsConn, sessionID string) {
	defer func() {
		wc.shutdown()
		h.hub.Disconnect(sessionID)
	}()

	for {
		_, data, err := wc.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] read error session=%s: %v", sessionID, err)
			}
			return
		}
		h.hub.HandleFrame(sessionID, string(data))
	}
}
