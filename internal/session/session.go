// Package session ties together the per-session state: the identity slot
// (zero-or-one current user) and the session's own problem/comment sandbox.
// Only the identity is durable, held in Redis under a fixed per-session key.
// The collections exist for the lifetime of the session only.
package session

import (
	"sync"
	"time"

	"milaan/internal/models"
	"milaan/internal/store"
)

// Session is one user session: an identity slot plus an independent copy of
// the problem collections.
type Session struct {
	ID        string
	Store     *store.Store
	CreatedAt time.Time

	mu       sync.Mutex
	user     *models.User
	lastSeen time.Time
}

// Current returns the session's identity, or nil when logged out.
func (s *Session) Current() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user.Clone()
}

// setUser replaces the identity slot.
func (s *Session) setUser(u *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u.Clone()
}

func (s *Session) clearUser() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

func (s *Session) seen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
