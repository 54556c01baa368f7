// Package memory provides the in-memory reference backend for the entity
// store port. Records are kept encoded, so Get and List hand out fresh
// decodes and callers can never reach stored state through a returned slice
// or map. The other backends get the same isolation from their wire
// round-trips.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/masstest/masstest-backend/internal/store"
)

// Store is a mutex-guarded map of encoded records keyed by entity id.
type Store[T store.Entity] struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewStore creates an empty in-memory store.
func NewStore[T store.Entity]() *Store[T] {
	return &Store[T]{items: make(map[string][]byte)}
}

// Get returns a copy of the entity for id, if present.
func (s *Store[T]) Get(_ context.Context, id string) (T, bool, error) {
	var zero T

	s.mu.RLock()
	data, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return zero, false, nil
	}

	var entity T
	if err := json.Unmarshal(data, &entity); err != nil {
		return zero, false, fmt.Errorf("decode %q: %w", id, err)
	}
	return entity, true, nil
}

// List returns copies of all stored entities in unspecified order.
func (s *Store[T]) List(_ context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]T, 0, len(s.items))
	for id, data := range s.items {
		var entity T
		if err := json.Unmarshal(data, &entity); err != nil {
			return nil, fmt.Errorf("decode %q: %w", id, err)
		}
		items = append(items, entity)
	}
	return items, nil
}

// Create stores the entity under its own key, overwriting any previous value.
func (s *Store[T]) Create(_ context.Context, entity T) (T, error) {
	var zero T

	data, err := json.Marshal(entity)
	if err != nil {
		return zero, fmt.Errorf("encode %q: %w", entity.Key(), err)
	}

	s.mu.Lock()
	s.items[entity.Key()] = data
	s.mu.Unlock()
	return entity, nil
}

// Update replaces the entity stored under id. Returns false if id is unknown.
func (s *Store[T]) Update(_ context.Context, id string, entity T) (bool, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return false, fmt.Errorf("encode %q: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	s.items[id] = data
	return true, nil
}

// Remove deletes the entity under id. Returns false if id is unknown.
func (s *Store[T]) Remove(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}
