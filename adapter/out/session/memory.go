// Package session provides session-store implementations keyed by opaque
// session identifiers.
package session

import (
	"context"
	"sync"

	"quotable_server/core/domain"
	"quotable_server/core/port/out"
	"quotable_server/pkg/apperr"
)

// MemoryStore is the in-process store. A single RWMutex guards the map; the
// map access is the only critical section, never a downstream call. No TTL,
// no eviction: growth is bounded only by logout.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.TokenPayload
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*domain.TokenPayload),
	}
}

func (s *MemoryStore) Save(_ context.Context, sessionID string, token *domain.TokenPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = token
	return nil
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*domain.TokenPayload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	token, ok := s.sessions[sessionID]
	if !ok {
		return nil, apperr.SessionNotFound(sessionID)
	}
	return token, nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

var _ out.SessionStore = (*MemoryStore)(nil)
