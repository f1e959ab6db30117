package scope

import (
	"context"
	"errors"
	"sync"
)

// ErrNoCurrentUI is returned by Get when the calling context does not carry
// a UI identifier, i.e. the caller is not inside a UI construction chain.
var ErrNoCurrentUI = errors.New("scope: no current UI identifier in context")

// Store holds UI-scoped values: named objects cached per identifier and
// released together when the owning UI or session goes away.
type Store struct {
	mu     sync.Mutex
	values map[Identifier]map[string]any
}

// NewStore creates an empty UI-scoped store.
func NewStore() *Store {
	return &Store{values: make(map[Identifier]map[string]any)}
}

// Get returns the value registered under name for the context's current UI,
// constructing it with factory on first use. Repeated calls under the same
// identifier return the same value.
func (s *Store) Get(ctx context.Context, name string, factory func() (any, error)) (any, error) {
	id, ok := FromContext(ctx)
	if !ok {
		return nil, ErrNoCurrentUI
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, ok := s.values[id]
	if !ok {
		bucket = make(map[string]any)
		s.values[id] = bucket
	}
	if v, ok := bucket[name]; ok {
		return v, nil
	}

	v, err := factory()
	if err != nil {
		return nil, err
	}
	bucket[name] = v
	return v, nil
}

// Drop releases every value held for the given identifier. Called when a UI
// instance or its whole session is discarded.
func (s *Store) Drop(id Identifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, id)
}

// Len reports how many identifiers currently hold scoped values.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}
