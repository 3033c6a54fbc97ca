// Package hub is the messaging core of the relay: it tracks live
// connections, dispatches inbound frames, keeps the presence, typing,
// reaction, and message-log state, and fans broadcasts out to every
// client. Delivery is best effort: no acknowledgments, no retries, no
// backlog for offline peers.
package hub

import (
	"encoding/json"
	"log"

	"github.com/zr-chat/relay/internal/model/chat"
	"github.com/zr-chat/relay/internal/stomp"
)

// Inbound action destinations.
const (
	DestChat        = "/app/chat"
	DestTypingStart = "/app/typing/start"
	DestTypingStop  = "/app/typing/stop"
	DestReaction    = "/app/reaction"
)

// Outbound broadcast topics. Every connected client receives every
// topic; the protocol has no subscribe step.
const (
	TopicMessages  = "/topic/messages"
	TopicOnline    = "/topic/online"
	TopicTyping    = "/topic/typing"
	TopicReactions = "/topic/reactions"
)

type chatPayload struct {
	Sender   string `json:"sender"`
	Content  string `json:"content"`
	Type     string `json:"type"`
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`
	FileURL  string `json:"fileUrl"`
}

type typingPayload struct {
	Username string `json:"username"`
}

type reactionPayload struct {
	MessageID string `json:"messageId"`
	Emoji     string `json:"emoji"`
	Username  string `json:"username"`
}

type userListEvent struct {
	Users []string `json:"users"`
}

type reactionEvent struct {
	MessageID string   `json:"messageId"`
	Emoji     string   `json:"emoji"`
	Count     int      `json:"count"`
	Users     []string `json:"users"`
}

// Stats is the snapshot served by the health endpoint.
type Stats struct {
	Connections   int
	OnlineUsers   int
	TotalMessages int
}

// Hub wires the registry, presence tracker, reaction ledger, and
// message history together and owns frame dispatch and broadcast.
type Hub struct {
	registry  *Registry
	presence  *Presence
	reactions *Ledger
	history   *History
}

// New assembles a hub from its injected state structures.
func New(registry *Registry, presence *Presence, reactions *Ledger, history *History) *Hub {
	return &Hub{
		registry:  registry,
		presence:  presence,
		reactions: reactions,
		history:   history,
	}
}

// Register adds an accepted connection and returns its session ID.
func (h *Hub) Register(conn Conn) string {
	id := h.registry.Register(conn)
	log.Printf("[hub] connection registered session=%s total=%d", id, h.registry.Count())
	return id
}

// Disconnect releases the session. If the connection had bound a
// display name its online and typing entries are cleared and both
// updated sets are broadcast.
func (h *Hub) Disconnect(sessionID string) {
	s, ok := h.registry.Unregister(sessionID)
	if !ok {
		return
	}
	log.Printf("[hub] connection closed session=%s total=%d", sessionID, h.registry.Count())

	if s.DisplayName == "" {
		return
	}
	h.presence.MarkOffline(s.DisplayName)
	h.presence.StopTyping(s.DisplayName)
	h.Publish(TopicOnline, userListEvent{Users: h.presence.ListOnline()})
	h.Publish(TopicTyping, userListEvent{Users: h.presence.ListTyping()})
}

// HandleFrame decodes and dispatches one inbound frame. All failures
// are local: malformed frames and payloads are logged and dropped and
// the connection stays open.
func (h *Hub) HandleFrame(sessionID, raw string) {
	frame := stomp.Decode(raw)

	switch frame.Command {
	case stomp.CommandConnect:
		h.handleConnect(sessionID)
	case stomp.CommandSend:
		h.handleSend(sessionID, frame)
	default:
		log.Printf("[hub] dropping frame with unknown command %q session=%s", frame.Command, sessionID)
	}
}

func (h *Hub) handleConnect(sessionID string) {
	conn, ok := h.registry.Conn(sessionID)
	if !ok {
		return
	}
	if err := conn.Send(stomp.Connected()); err != nil {
		log.Printf("[hub] failed to send handshake session=%s: %v", sessionID, err)
	}
}

func (h *Hub) handleSend(sessionID string, frame stomp.Frame) {
	destination := frame.Headers["destination"]

	switch destination {
	case DestChat:
		h.handleChat(sessionID, frame.Body)
	case DestTypingStart:
		h.handleTyping(frame.Body, true)
	case DestTypingStop:
		h.handleTyping(frame.Body, false)
	case DestReaction:
		h.handleReaction(frame.Body)
	default:
		log.Printf("[hub] dropping SEND to unknown destination %q session=%s", destination, sessionID)
	}
}

func (h *Hub) handleChat(sessionID, body string) {
	var payload chatPayload
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		log.Printf("[hub] invalid chat payload session=%s: %v", sessionID, err)
		return
	}
	if payload.Sender == "" {
		log.Printf("[hub] chat payload missing sender session=%s", sessionID)
		return
	}
	if payload.Type == "" {
		payload.Type = chat.TypeText
	}

	msg := h.history.Append(chat.Message{
		Sender:   payload.Sender,
		Content:  payload.Content,
		Type:     payload.Type,
		FileName: payload.FileName,
		FileSize: payload.FileSize,
		FileURL:  payload.FileURL,
	})

	// First chat message from a connection binds its identity.
	if h.registry.BindName(sessionID, payload.Sender) {
		h.presence.MarkOnline(payload.Sender)
		h.Publish(TopicOnline, userListEvent{Users: h.presence.ListOnline()})
	}

	h.Publish(TopicMessages, msg)
}

func (h *Hub) handleTyping(body string, start bool) {
	var payload typingPayload
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		log.Printf("[hub] invalid typing payload: %v", err)
		return
	}
	if payload.Username == "" {
		log.Printf("[hub] typing payload missing username")
		return
	}

	if start {
		h.presence.StartTyping(payload.Username)
	} else {
		h.presence.StopTyping(payload.Username)
	}
	h.Publish(TopicTyping, userListEvent{Users: h.presence.ListTyping()})
}

func (h *Hub) handleReaction(body string) {
	var payload reactionPayload
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		log.Printf("[hub] invalid reaction payload: %v", err)
		return
	}
	if payload.MessageID == "" || payload.Emoji == "" || payload.Username == "" {
		log.Printf("[hub] reaction payload missing fields")
		return
	}

	// Always broadcast the post-toggle state; nil means the last
	// reactor left and the entry was removed.
	entry := h.reactions.Toggle(payload.MessageID, payload.Emoji, payload.Username)
	event := reactionEvent{
		MessageID: payload.MessageID,
		Emoji:     payload.Emoji,
		Users:     []string{},
	}
	if entry != nil {
		event.Count = entry.Count
		event.Users = entry.Users
	}
	h.Publish(TopicReactions, event)
}

// Publish encodes payload as the body of a MESSAGE frame addressed to
// destination and writes it to every live connection. A failed write is
// logged and skipped; it never aborts delivery to the remaining peers.
func (h *Hub) Publish(destination string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[hub] failed to marshal broadcast for %s: %v", destination, err)
		return
	}
	frame := stomp.Message(destination, string(body))

	h.registry.ForEachLive(func(conn Conn) {
		if err := conn.Send(frame); err != nil {
			log.Printf("[hub] broadcast to %s failed for one connection: %v", destination, err)
		}
	})
}

// RecentMessages returns the newest messages oldest-first, each
// enriched with its reaction entries.
func (h *Hub) RecentMessages(limit int) []chat.Message {
	messages := h.history.Recent(limit)
	for i := range messages {
		entries := h.reactions.ListForMessage(messages[i].ID)
		if entries == nil {
			entries = []chat.ReactionEntry{}
		}
		messages[i].Reactions = entries
	}
	return messages
}

// OnlineUsers returns the current online display names.
func (h *Hub) OnlineUsers() []string {
	return h.presence.ListOnline()
}

// Snapshot returns the counters served by the health endpoint.
func (h *Hub) Snapshot() Stats {
	return Stats{
		Connections:   h.registry.Count(),
		OnlineUsers:   h.presence.CountOnline(),
		TotalMessages: h.history.Total(),
	}
}
