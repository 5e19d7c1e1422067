package store

import (
	"sync"
)

// SessionStore maps a logical player to the set of live transport
// connections it currently holds. A user with several tabs or a reconnect
// in flight has several entries; the user is online iff the set is
// non-empty.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]map[string]struct{}
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: map[string]map[string]struct{}{},
	}
}

// Add registers a connection for userID.
func (s *SessionStore) Add(userID, connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conns, ok := s.sessions[userID]
	if !ok {
		conns = map[string]struct{}{}
		s.sessions[userID] = conns
	}
	conns[connID] = struct{}{}
}

// Remove drops a connection and reports whether the user still has any
// live connection left.
func (s *SessionStore) Remove(userID, connID string) (online bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conns, ok := s.sessions[userID]
	if !ok {
		return false
	}
	delete(conns, connID)
	if len(conns) == 0 {
		delete(s.sessions, userID)
		return false
	}
	return true
}

// Connections returns the live connection ids for userID.
func (s *SessionStore) Connections(userID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conns, ok := s.sessions[userID]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(conns))
	for id := range conns {
		out = append(out, id)
	}
	return out
}

// OnlineUsers returns the number of users holding at least one connection.
func (s *SessionStore) OnlineUsers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
