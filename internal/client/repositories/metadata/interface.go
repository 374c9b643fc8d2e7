// Package metadata stores small key/value records that back the credential
// tiers: a SQLite table for the durable tier and a process-local map for the
// session tier.
package metadata

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("metadata: key not found")

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

// Store is a Repository that can also apply several writes atomically.
// Either every write made by fn becomes visible, or none does.
type Store interface {
	Repository
	Update(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error
}
