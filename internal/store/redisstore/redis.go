// Package redisstore backs the entity store port with one Redis hash per
// entity kind. Hash field operations are atomic on the server, satisfying
// the per-key consistency the platform requires.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/masstest/masstest-backend/internal/store"
	"github.com/redis/go-redis/v9"
)

// Store keeps one entity kind in the hash "entities:<kind>".
type Store[T store.Entity] struct {
	rdb  *redis.Client
	key  string
	kind string
}

// NewStore creates a redis-backed store for the given entity kind.
func NewStore[T store.Entity](rdb *redis.Client, kind string) *Store[T] {
	return &Store[T]{rdb: rdb, key: "entities:" + kind, kind: kind}
}

// Get returns the entity for id, if present.
func (s *Store[T]) Get(ctx context.Context, id string) (T, bool, error) {
	var zero T

	data, err := s.rdb.HGet(ctx, s.key, id).Result()
	if errors.Is(err, redis.Nil) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("get %s %q: %w", s.kind, id, err)
	}

	var entity T
	if err := json.Unmarshal([]byte(data), &entity); err != nil {
		return zero, false, fmt.Errorf("decode %s %q: %w", s.kind, id, err)
	}
	return entity, true, nil
}

// List returns all entities of this kind.
func (s *Store[T]) List(ctx context.Context) ([]T, error) {
	fields, err := s.rdb.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.kind, err)
	}

	items := make([]T, 0, len(fields))
	for id, data := range fields {
		var entity T
		if err := json.Unmarshal([]byte(data), &entity); err != nil {
			return nil, fmt.Errorf("decode %s %q: %w", s.kind, id, err)
		}
		items = append(items, entity)
	}
	return items, nil
}

// Create stores the entity under its own key, overwriting any previous value.
func (s *Store[T]) Create(ctx context.Context, entity T) (T, error) {
	var zero T

	data, err := json.Marshal(entity)
	if err != nil {
		return zero, fmt.Errorf("encode %s: %w", s.kind, err)
	}
	if err := s.rdb.HSet(ctx, s.key, entity.Key(), data).Err(); err != nil {
		return zero, fmt.Errorf("create %s %q: %w", s.kind, entity.Key(), err)
	}
	return entity, nil
}

// Update replaces the stored entity. Returns false if id is unknown.
func (s *Store[T]) Update(ctx context.Context, id string, entity T) (bool, error) {
	exists, err := s.rdb.HExists(ctx, s.key, id).Result()
	if err != nil {
		return false, fmt.Errorf("update %s %q: %w", s.kind, id, err)
	}
	if !exists {
		return false, nil
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return false, fmt.Errorf("encode %s: %w", s.kind, err)
	}
	if err := s.rdb.HSet(ctx, s.key, id, data).Err(); err != nil {
		return false, fmt.Errorf("update %s %q: %w", s.kind, id, err)
	}
	return true, nil
}

// Remove hard-deletes the field. Returns false if id is unknown.
func (s *Store[T]) Remove(ctx context.Context, id string) (bool, error) {
	removed, err := s.rdb.HDel(ctx, s.key, id).Result()
	if err != nil {
		return false, fmt.Errorf("remove %s %q: %w", s.kind, id, err)
	}
	return removed > 0, nil
}
