// Package kv defines the persistent key-value store used for cached
// translation suggestions and other small reswed state.
package kv

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// KV stores JSON-serializable values under string keys.
// Get on a missing or expired key returns an error wrapping sql.ErrNoRows.
type KV interface {
	Get(ctx context.Context, key string, dest any) error
	// Put stores value. A ttl of zero or less never expires.
	Put(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Has(ctx context.Context, key string) (bool, error)
	// Keys lists live keys starting with prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)
	DeletePrefix(ctx context.Context, prefix string) (int64, error)
}

// Sweeper is implemented by stores that can drop expired rows eagerly.
type Sweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
}

// IsMiss reports whether err means the key is absent or expired.
func IsMiss(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
