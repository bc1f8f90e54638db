// Package sessions maps issued tokens to user identifiers. Sessions have no
// expiry; a token stays valid until it is revoked or its store is lost.
package sessions

import (
	"context"
	"sync"
)

type Store interface {
	// Get returns the user id for token, or ok=false if the token is unknown.
	Get(ctx context.Context, token string) (userID string, ok bool, err error)
	Put(ctx context.Context, token, userID string) error
	Revoke(ctx context.Context, token string) error
}

// MemoryStore is the default registry. All sessions are lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, token string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.sessions[token]
	return userID, ok, nil
}

func (s *MemoryStore) Put(_ context.Context, token, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = userID
	return nil
}

func (s *MemoryStore) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
