package hub

import (
	"strconv"
	"sync"
	"time"

	"github.com/zr-chat/relay/internal/model/chat"
)

// History is the append-only, time-ordered chat message log. Only the
// most recent window is ever served, but nothing is evicted.
type History struct {
	mu       sync.Mutex
	messages []chat.Message
	nextID   int64
}

// NewHistory bootstraps an empty log. IDs are numeric strings seeded
// from the wall clock so they stay unique and strictly increasing
// across appends.
func NewHistory() *History {
	return &History{nextID: time.Now().UnixMilli()}
}

// Append assigns the message its ID and timestamp and stores it,
// returning the stored value.
func (h *History) Append(msg chat.Message) chat.Message {
	h.mu.Lock()
	defer h.mu.Unlock()

	msg.ID = strconv.FormatInt(h.nextID, 10)
	h.nextID++
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	h.messages = append(h.messages, msg)
	return msg
}

// Recent returns at most limit messages from the tail of the log,
// oldest first. The result is a copy safe to hand out.
func (h *History) Recent(limit int) []chat.Message {
	h.mu.Lock()
	defer h.mu.Unlock()

	start := 0
	if limit >= 0 && len(h.messages) > limit {
		start = len(h.messages) - limit
	}
	out := make([]chat.Message, len(h.messages)-start)
	copy(out, h.messages[start:])
	return out
}

// Total returns the number of messages ever appended.
func (h *History) Total() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.messages)
}
