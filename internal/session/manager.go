package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"milaan/internal/cache"
	"milaan/internal/models"
	"milaan/internal/store"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// identityKey is the fixed per-session slot the current identity persists
// under.
func identityKey(sid string) string {
	return "milaan:session:" + sid + ":user"
}

// Manager owns the live sessions. Each session gets its own freshly seeded
// state container at start and loses it at logout or idle expiry; there is no
// cross-session consistency. A shared read-only-ish default sandbox serves
// unauthenticated requests.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	defaultSession *Session
	rdb            *redis.Client
	newStore       func() *store.Store
	ttl            time.Duration
	now            func() time.Time
}

// NewManager returns a manager producing sandboxes via newStore. rdb may be
// nil; identity persistence is then skipped.
func NewManager(rdb *redis.Client, newStore func() *store.Store, ttl time.Duration) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		rdb:      rdb,
		newStore: newStore,
		ttl:      ttl,
		now:      func() time.Time { return time.Now().UTC() },
	}
	m.defaultSession = &Session{
		ID:        "public",
		Store:     newStore(),
		CreatedAt: m.now(),
	}
	return m
}

// Default returns the shared sandbox for unauthenticated requests.
func (m *Manager) Default() *Session {
	return m.defaultSession
}

// Start creates a new session with its own sandbox.
func (m *Manager) Start() *Session {
	now := m.now()
	s := &Session{
		ID:        uuid.NewString(),
		Store:     m.newStore(),
		CreatedAt: now,
		lastSeen:  now,
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Resume returns the session for id, rebuilding it from the persisted
// identity when the in-memory copy is gone (a restart discards sandboxes but
// the identity slot is durable). Reports false when the session cannot be
// resumed at all.
func (m *Manager) Resume(ctx context.Context, id string) (*Session, bool) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if ok {
		s.touch(m.now())
		return s, true
	}

	var u models.User
	found, err := cache.GetJSON(ctx, m.rdb, identityKey(id), &u)
	if err != nil {
		slog.Warn("identity restore failed", "session", id, "error", err)
		return nil, false
	}
	if !found {
		return nil, false
	}

	now := m.now()
	s = &Session{
		ID:        id,
		Store:     m.newStore(),
		CreatedAt: now,
		lastSeen:  now,
		user:      &u,
	}
	m.mu.Lock()
	// Another request may have restored it concurrently; keep the first.
	if existing, ok := m.sessions[id]; ok {
		s = existing
	} else {
		m.sessions[id] = s
	}
	m.mu.Unlock()
	s.touch(now)
	return s, true
}

// Adopt sets the session's identity and persists it under the session's
// fixed key. Persistence is best-effort.
func (m *Manager) Adopt(ctx context.Context, s *Session, u *models.User) {
	s.setUser(u)
	if err := cache.SetJSON(ctx, m.rdb, identityKey(s.ID), u, 0); err != nil {
		slog.Warn("identity persist failed", "session", s.ID, "error", err)
	}
}

// End clears the identity slot and discards the session and its sandbox.
func (m *Manager) End(ctx context.Context, s *Session) {
	s.clearUser()
	if err := cache.Delete(ctx, m.rdb, identityKey(s.ID)); err != nil {
		slog.Warn("identity delete failed", "session", s.ID, "error", err)
	}
	m.mu.Lock()
	delete(m.sessions, s.ID)
	m.mu.Unlock()
}

// Sweep discards sessions idle longer than the TTL and returns how many were
// dropped.
func (m *Manager) Sweep(ctx context.Context) int {
	cutoff := m.now().Add(-m.ttl)

	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		if s.seen().Before(cutoff) {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		if err := cache.Delete(ctx, m.rdb, identityKey(s.ID)); err != nil {
			slog.Warn("identity delete failed", "session", s.ID, "error", err)
		}
	}
	return len(expired)
}

// RunJanitor sweeps on the given interval until ctx is cancelled.
func (m *Manager) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(ctx); n > 0 {
				slog.Info("expired sessions swept", "count", n)
			}
		}
	}
}
