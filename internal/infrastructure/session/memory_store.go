package session

import (
	"context"
	"sync"
	"time"

	"github.com/aidtrack/dashboard-api/internal/core/domain"
)

// MemoryStore is an in-process SessionStore for tests and single-node
// development runs.
type MemoryStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]memorySession
}

type memorySession struct {
	session   domain.Session
	expiresAt time.Time
}

// NewMemoryStore returns an empty store. A non-positive ttl means sessions
// never expire.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, sessions: make(map[string]memorySession)}
}

func (s *MemoryStore) Load(_ context.Context, sid string) (domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.sessions[sid]
	if !ok {
		return domain.Session{}, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		return domain.Session{}, nil
	}
	return entry.session, nil
}

func (s *MemoryStore) Set(_ context.Context, sid string, sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := memorySession{session: sess}
	if s.ttl > 0 {
		entry.expiresAt = time.Now().Add(s.ttl)
	}
	s.sessions[sid] = entry
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sid)
	return nil
}

// Len reports the number of stored sessions, expired or not. Test helper.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
