package room

import (
	"sync"
)

// Sessions tracks the active connection for each user in each room.
// A user may only hold one live connection per room; a newer connection
// supersedes the old one.
type Sessions struct {
	mu     sync.Mutex
	active map[sessionKey]*Client
}

type sessionKey struct {
	userID int64
	roomID int64
}

// NewSessions returns an empty session registry
func NewSessions() *Sessions {
	return &Sessions{
		active: make(map[sessionKey]*Client),
	}
}

func keyFor(c *Client) sessionKey {
	return sessionKey{userID: c.user.ID, roomID: c.room.ID}
}

// Bind registers the client as the active session for its user and room.
// If another client held the session, it is returned so the caller can
// notify it that it has been superseded.
func (s *Sessions) Bind(c *Client) (displaced *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := keyFor(c)
	prev := s.active[key]
	if prev == c {
		return nil
	}

	s.active[key] = c
	return prev
}

// Unbind removes the client's session. A stale client (one that was
// already superseded) is a no-op so a late disconnect cannot evict the
// newer session.
func (s *Sessions) Unbind(c *Client) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := keyFor(c)
	if s.active[key] != c {
		return false
	}

	delete(s.active, key)
	return true
}

// IsCurrent reports whether the client still holds the active session
func (s *Sessions) IsCurrent(c *Client) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.active[keyFor(c)] == c
}

// IsOnline reports whether the user has an active session in the room
func (s *Sessions) IsOnline(userID, roomID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.active[sessionKey{userID: userID, roomID: roomID}] != nil
}
