package chat

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zr-chat/relay/internal/hub"
	"github.com/zr-chat/relay/pkg/utils"
)

// Handler exposes the read endpoints backed by hub state.
type Handler struct {
	hub          *hub.Hub
	historyLimit int
	startedAt    time.Time
}

// New creates the chat read handler.
func New(h *hub.Hub, historyLimit int) *Handler {
	return &Handler{
		hub:          h,
		historyLimit: historyLimit,
		startedAt:    time.Now(),
	}
}

// RegisterRoutes registers the authenticated read routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/messages", h.handleMessages)
	r.Get("/online-users", h.handleOnlineUsers)
}

func (h *Handler) handleMessages(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.hub.RecentMessages(h.historyLimit))
}

func (h *Handler) handleOnlineUsers(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string][]string{"users": h.hub.OnlineUsers()})
}

// Health serves liveness and counters; it is registered without auth.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	stats := h.hub.Snapshot()
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"status":        "healthy",
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
		"uptime":        time.Since(h.startedAt).Seconds(),
		"connections":   stats.Connections,
		"onlineUsers":   stats.OnlineUsers,
		"totalMessages": stats.TotalMessages,
	})
}
