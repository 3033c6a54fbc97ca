package chat

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/zr-chat/relay/internal/hub"
	"github.com/zr-chat/relay/internal/middleware"
	authservice "github.com/zr-chat/relay/internal/service/auth"
)

type nopConn struct{}

func (nopConn) Send(string) error { return nil }
func (nopConn) Alive() bool       { return true }

func setup(t *testing.T) (*chi.Mux, *hub.Hub, string) {
	t.Helper()

	chatHub := hub.New(hub.NewRegistry(), hub.NewPresence(), hub.NewLedger(), hub.NewHistory())
	authSvc := authservice.NewService("test-secret")
	token, _, err := authSvc.Register("alice", "hunter2")
	if err != nil {
		t.Fatalf("Register err: %v", err)
	}

	handler := New(chatHub, 50)
	r := chi.NewRouter()
	r.Get("/health", handler.Health)
	r.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth(authSvc))
		handler.RegisterRoutes(protected)
	})
	return r, chatHub, token
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestMessagesRequiresAuth(t *testing.T) {
	r, _, _ := setup(t)

	if resp := get(r, "/messages", ""); resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.Code)
	}
	if resp := get(r, "/messages", "garbage"); resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 with bad token, got %d", resp.Code)
	}
}

func TestMessagesReturnsEnrichedHistory(t *testing.T) {
	r, chatHub, token := setup(t)

	id := chatHub.Register(nopConn{})
	chatHub.HandleFrame(id, "SEND\ndestination:/app/chat\n\n{\"sender\":\"alice\",\"content\":\"hi\"}\x00")
	msgID := chatHub.RecentMessages(1)[0].ID
	chatHub.HandleFrame(id, "SEND\ndestination:/app/reaction\n\n{\"messageId\":\""+msgID+"\",\"emoji\":\"👍\",\"username\":\"bob\"}\x00")

	resp := get(r, "/messages", token)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var messages []struct {
		Sender    string `json:"sender"`
		Content   string `json:"content"`
		Reactions []struct {
			Emoji string   `json:"emoji"`
			Count int      `json:"count"`
			Users []string `json:"users"`
		} `json:"reactions"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &messages); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if len(messages) != 1 || messages[0].Sender != "alice" {
		t.Fatalf("unexpected messages: %+v", messages)
	}
	if len(messages[0].Reactions) != 1 || messages[0].Reactions[0].Count != 1 {
		t.Fatalf("reactions not included: %+v", messages[0].Reactions)
	}
}

func TestOnlineUsers(t *testing.T) {
	r, chatHub, token := setup(t)

	id := chatHub.Register(nopConn{})
	chatHub.HandleFrame(id, "SEND\ndestination:/app/chat\n\n{\"sender\":\"alice\",\"content\":\"hi\"}\x00")

	resp := get(r, "/online-users", token)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var result struct {
		Users []string `json:"users"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if len(result.Users) != 1 || result.Users[0] != "alice" {
		t.Fatalf("unexpected users: %v", result.Users)
	}
}

func TestHealthOpenAndCounts(t *testing.T) {
	r, chatHub, _ := setup(t)

	id := chatHub.Register(nopConn{})
	chatHub.HandleFrame(id, "SEND\ndestination:/app/chat\n\n{\"sender\":\"alice\",\"content\":\"hi\"}\x00")

	resp := get(r, "/health", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 without auth, got %d", resp.Code)
	}

	var health struct {
		Status        string `json:"status"`
		Connections   int    `json:"connections"`
		OnlineUsers   int    `json:"onlineUsers"`
		TotalMessages int    `json:"totalMessages"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &health); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if health.Status != "healthy" || health.Connections != 1 || health.OnlineUsers != 1 || health.TotalMessages != 1 {
		t.Fatalf("unexpected health payload: %+v", health)
	}
}
