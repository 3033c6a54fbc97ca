package hub

import (
	"sort"
	"sync"
)

// Presence maintains the online and typing display-name sets. All
// operations are idempotent; broadcasting changes is the caller's job.
type Presence struct {
	mu     sync.Mutex
	online map[string]struct{}
	typing map[string]struct{}
}

// NewPresence bootstraps empty online/typing sets.
func NewPresence() *Presence {
	return &Presence{
		online: make(map[string]struct{}),
		typing: make(map[string]struct{}),
	}
}

// MarkOnline adds a display name to the online set.
func (p *Presence) MarkOnline(name string) {
	p.mu.Lock()
	p.online[name] = struct{}{}
	p.mu.Unlock()
}

// MarkOffline removes a display name from the online set.
func (p *Presence) MarkOffline(name string) {
	p.mu.Lock()
	delete(p.online, name)
	p.mu.Unlock()
}

// IsOnline reports whether the name is currently online.
func (p *Presence) IsOnline(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.online[name]
	return ok
}

// ListOnline returns the online set, sorted for stable output.
func (p *Presence) ListOnline() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return sortedNames(p.online)
}

// StartTyping adds a display name to the typing set.
func (p *Presence) StartTyping(name string) {
	p.mu.Lock()
	p.typing[name] = struct{}{}
	p.mu.Unlock()
}

// StopTyping removes a display name from the typing set.
func (p *Presence) StopTyping(name string) {
	p.mu.Lock()
	delete(p.typing, name)
	p.mu.Unlock()
}

// ListTyping returns the typing set, sorted for stable output.
func (p *Presence) ListTyping() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return sortedNames(p.typing)
}

// CountOnline returns the number of online users.
func (p *Presence) CountOnline() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.online)
}

func sortedNames(set map[string]struct{}) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
