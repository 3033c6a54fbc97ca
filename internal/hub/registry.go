package hub

import (
	"sync"

	"github.com/google/uuid"
)

// Conn is the transport-owned handle the hub writes frames to. The
// transport layer owns the underlying connection; the hub only keeps a
// reference for the connection's lifetime.
type Conn interface {
	// Send writes one encoded frame. It must fail fast instead of
	// blocking when the peer is slow or gone.
	Send(frame string) error
	// Alive reports whether the connection is still writable.
	Alive() bool
}

// Session is a snapshot of the per-connection record.
type Session struct {
	ID          string
	DisplayName string
}

type session struct {
	conn        Conn
	displayName string
}

// Registry tracks every live connection and its session record.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

// NewRegistry bootstraps an empty connection registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*session)}
}

// Register adds a connection and returns its new session ID.
func (r *Registry) Register(conn Conn) string {
	id := uuid.NewString()

	r.mu.Lock()
	r.sessions[id] = &session{conn: conn}
	r.mu.Unlock()

	return id
}

// Unregister removes the session and returns its final snapshot.
func (r *Registry) Unregister(sessionID string) (Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return Session{}, false
	}
	delete(r.sessions, sessionID)
	return Session{ID: sessionID, DisplayName: s.displayName}, true
}

// BindName sets the session's display name if it has none yet and
// reports whether the name was bound by this call. Once set, the name
// is immutable for the connection's lifetime (first writer wins).
func (r *Registry) BindName(sessionID, name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok || s.displayName != "" {
		return false
	}
	s.displayName = name
	return true
}

// Conn returns the connection handle for a session.
func (r *Registry) Conn(sessionID string) (Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, false
	}
	return s.conn, true
}

// ForEachLive visits every registered connection that is still writable
// at iteration time. The snapshot is taken under the lock; visits happen
// outside it so a slow peer cannot stall registration.
func (r *Registry) ForEachLive(visit func(conn Conn)) {
	r.mu.RLock()
	conns := make([]Conn, 0, len(r.sessions))
	for _, s := range r.sessions {
		conns = append(conns, s.conn)
	}
	r.mu.RUnlock()

	for _, conn := range conns {
		if conn.Alive() {
			visit(conn)
		}
	}
}

// Count returns the number of registered connections.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
