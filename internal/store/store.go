// Package store defines the keyed-entity storage port used by all services.
// Backends (memory, postgres, redis) are selected at construction time; each
// guarantees that individual operations on one entity kind are atomic and
// linearizable with respect to one another.
package store

import "context"

// Entity is anything addressable by a string key.
type Entity interface {
	Key() string
}

// Store is the generic keyed-entity port. Get reports existence via the
// bool; Update and Remove report whether the key existed. Remove is a hard
// delete; soft-delete flags on entities are the caller's concern.
type Store[T Entity] interface {
	Get(ctx context.Context, id string) (T, bool, error)
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, entity T) (T, error)
	Update(ctx context.Context, id string, entity T) (bool, error)
	Remove(ctx context.Context, id string) (bool, error)
}
