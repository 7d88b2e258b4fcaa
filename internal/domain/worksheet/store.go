package worksheet

import (
	"context"
	"sync"

	"dealerdesk/internal/core/apperror"
)

// Store persists worksheet state between requests. The in-memory store is
// the default; a Redis-backed store (internal/infrastructure/session) is
// used when the server runs with more than one instance.
type Store interface {
	Get(ctx context.Context, id string) (*State, error)
	Put(ctx context.Context, state *State) error
	Delete(ctx context.Context, id string) error
}

// MemoryStore keeps worksheet state in a process-local map.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]*State
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]*State)}
}

// Get implements Store.
func (s *MemoryStore) Get(ctx context.Context, id string) (*State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[id]
	if !ok {
		return nil, apperror.NewNotFound("worksheet", id)
	}
	return state.Clone(), nil
}

// Put implements Store.
func (s *MemoryStore) Put(ctx context.Context, state *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state.ID] = state.Clone()
	return nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, id)
	return nil
}
