package hub

import (
	"sync"

	"github.com/zr-chat/relay/internal/model/chat"
)

type reaction struct {
	emoji    string
	reactors []string
}

// Ledger maintains emoji reactions per message. Per message, entries
// keep the order in which each emoji was first seen.
type Ledger struct {
	mu        sync.Mutex
	byMessage map[string][]*reaction
}

// NewLedger bootstraps an empty reaction ledger.
func NewLedger() *Ledger {
	return &Ledger{byMessage: make(map[string][]*reaction)}
}

// Toggle adds username as a reactor if absent or removes it if present,
// and returns the resulting entry. A nil result means the reaction was
// fully removed (its last reactor left); zero-count entries are never
// retained.
func (l *Ledger) Toggle(messageID, emoji, username string) *chat.ReactionEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := l.byMessage[messageID]
	for i, r := range entries {
		if r.emoji != emoji {
			continue
		}
		if idx := indexOf(r.reactors, username); idx >= 0 {
			r.reactors = append(r.reactors[:idx], r.reactors[idx+1:]...)
			if len(r.reactors) == 0 {
				l.byMessage[messageID] = append(entries[:i], entries[i+1:]...)
				if len(l.byMessage[messageID]) == 0 {
					delete(l.byMessage, messageID)
				}
				return nil
			}
		} else {
			r.reactors = append(r.reactors, username)
		}
		return snapshotReaction(r)
	}

	r := &reaction{emoji: emoji, reactors: []string{username}}
	l.byMessage[messageID] = append(entries, r)
	return snapshotReaction(r)
}

// ListForMessage returns the message's reaction entries in emoji
// first-seen order. The result is a copy safe to hand out.
func (l *Ledger) ListForMessage(messageID string) []chat.ReactionEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := l.byMessage[messageID]
	if len(entries) == 0 {
		return nil
	}
	out := make([]chat.ReactionEntry, 0, len(entries))
	for _, r := range entries {
		out = append(out, *snapshotReaction(r))
	}
	return out
}

func snapshotReaction(r *reaction) *chat.ReactionEntry {
	users := make([]string, len(r.reactors))
	copy(users, r.reactors)
	return &chat.ReactionEntry{Emoji: r.emoji, Count: len(users), Users: users}
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
