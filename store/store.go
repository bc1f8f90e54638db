// Package store serializes every read and read-modify-write against the
// persisted document behind one lock.
package store

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type Store struct {
	mu      sync.Mutex
	backend Backend
	logger  *zap.Logger
}

func New(backend Backend, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{backend: backend, logger: logger}
}

// View loads the document and runs fn against it. Changes made by fn are
// discarded.
func (s *Store) View(ctx context.Context, fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.backend.Load(ctx)
	if err != nil {
		s.logger.Error("Failed to load document", zap.Error(err))
		return err
	}
	return fn(&Tx{doc: doc})
}

// Update loads the document, runs fn and saves the result only if fn
// succeeds. A failed save leaves the previously persisted state in place.
func (s *Store) Update(ctx context.Context, fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.backend.Load(ctx)
	if err != nil {
		s.logger.Error("Failed to load document", zap.Error(err))
		return err
	}
	if err := fn(&Tx{doc: doc}); err != nil {
		return err
	}
	if err := s.backend.Save(ctx, doc); err != nil {
		s.logger.Error("Failed to save document", zap.Error(err))
		return err
	}
	return nil
}
