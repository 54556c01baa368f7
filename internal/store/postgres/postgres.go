// Package postgres backs the entity store port with a single JSONB document
// table so every entity kind shares one schema (see migrations/). Row-level
// operations are atomic, which is all the consistency model requires.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/masstest/masstest-backend/internal/store"
)

// Store persists one entity kind as JSONB rows in the entities table.
type Store[T store.Entity] struct {
	pool *pgxpool.Pool
	kind string
}

// NewStore creates a postgres-backed store for the given entity kind.
// The kind partitions the shared entities table ("user", "test", ...).
func NewStore[T store.Entity](pool *pgxpool.Pool, kind string) *Store[T] {
	return &Store[T]{pool: pool, kind: kind}
}

// Get returns the entity for id, if present.
func (s *Store[T]) Get(ctx context.Context, id string) (T, bool, error) {
	var zero T
	var data []byte

	err := s.pool.QueryRow(ctx,
		`SELECT data FROM entities WHERE kind = $1 AND id = $2`,
		s.kind, id,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("get %s %q: %w", s.kind, id, err)
	}

	var entity T
	if err := json.Unmarshal(data, &entity); err != nil {
		return zero, false, fmt.Errorf("decode %s %q: %w", s.kind, id, err)
	}
	return entity, true, nil
}

// List returns all entities of this kind.
func (s *Store[T]) List(ctx context.Context) ([]T, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT data FROM entities WHERE kind = $1 ORDER BY id`,
		s.kind,
	)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.kind, err)
	}
	defer rows.Close()

	var items []T
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var entity T
		if err := json.Unmarshal(data, &entity); err != nil {
			return nil, fmt.Errorf("decode %s: %w", s.kind, err)
		}
		items = append(items, entity)
	}
	return items, rows.Err()
}

// Create upserts the entity under its own key.
func (s *Store[T]) Create(ctx context.Context, entity T) (T, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("encode %s: %w", s.kind, err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO entities (kind, id, data) VALUES ($1, $2, $3)
		 ON CONFLICT (kind, id) DO UPDATE SET data = EXCLUDED.data`,
		s.kind, entity.Key(), data,
	)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("create %s %q: %w", s.kind, entity.Key(), err)
	}
	return entity, nil
}

// Update replaces the stored entity. Returns false if id is unknown.
func (s *Store[T]) Update(ctx context.Context, id string, entity T) (bool, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return false, fmt.Errorf("encode %s: %w", s.kind, err)
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE entities SET data = $3 WHERE kind = $1 AND id = $2`,
		s.kind, id, data,
	)
	if err != nil {
		return false, fmt.Errorf("update %s %q: %w", s.kind, id, err)
	}
	return tag.RowsAffected() > 0, nil
}

// Remove hard-deletes the row. Returns false if id is unknown.
func (s *Store[T]) Remove(ctx context.Context, id string) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM entities WHERE kind = $1 AND id = $2`,
		s.kind, id,
	)
	if err != nil {
		return false, fmt.Errorf("remove %s %q: %w", s.kind, id, err)
	}
	return tag.RowsAffected() > 0, nil
}
