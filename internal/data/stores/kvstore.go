package stores

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/colonyops/reswed/internal/core/kv"
	"github.com/colonyops/reswed/internal/data/db"
)

// KVStore implements kv.KV on the kv_store table. Values are JSON encoded;
// expiry is stored as unix nanoseconds and enforced on read.
type KVStore struct {
	db  *db.DB
	now func() time.Time
}

var (
	_ kv.KV      = (*KVStore)(nil)
	_ kv.Sweeper = (*KVStore)(nil)
)

// NewKVStore creates a new SQLite-backed KV store.
func NewKVStore(db *db.DB) *KVStore {
	return &KVStore{db: db, now: time.Now}
}

// lookup returns the stored value of key. Expired rows are deleted and
// reported as sql.ErrNoRows.
func (s *KVStore) lookup(ctx context.Context, key string) ([]byte, error) {
	var (
		value   []byte
		expires sql.NullInt64
	)
	err := s.db.Conn().QueryRowContext(ctx,
		"SELECT value, expires_at FROM kv_store WHERE key = ?", key,
	).Scan(&value, &expires)
	if err != nil {
		return nil, err
	}

	if expires.Valid && expires.Int64 < s.now().UnixNano() {
		_, _ = s.db.Conn().ExecContext(ctx, "DELETE FROM kv_store WHERE key = ?", key)
		return nil, sql.ErrNoRows
	}

	return value, nil
}

// Get decodes the value of key into dest.
func (s *KVStore) Get(ctx context.Context, key string, dest any) error {
	value, err := s.lookup(ctx, key)
	if err != nil {
		return fmt.Errorf("kv get %q: %w", key, err)
	}
	if err := json.Unmarshal(value, dest); err != nil {
		return fmt.Errorf("kv decode %q: %w", key, err)
	}
	return nil
}

// Has reports whether key holds a live value.
func (s *KVStore) Has(ctx context.Context, key string) (bool, error) {
	_, err := s.lookup(ctx, key)
	switch {
	case err == nil:
		return true, nil
	case IsNotFoundError(err):
		return false, nil
	default:
		return false, fmt.Errorf("kv has %q: %w", key, err)
	}
}

// Put upserts key. created_at survives overwrites.
func (s *KVStore) Put(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv encode %q: %w", key, err)
	}

	now := s.now()
	var expires sql.NullInt64
	if ttl > 0 {
		expires = sql.NullInt64{Int64: now.Add(ttl).UnixNano(), Valid: true}
	}

	_, err = s.db.Conn().ExecContext(ctx, `
		INSERT INTO kv_store (key, value, expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at`,
		key, data, expires, now.UnixNano(), now.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("kv put %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.Conn().ExecContext(ctx, "DELETE FROM kv_store WHERE key = ?", key); err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

// Keys lists live keys beginning with prefix in sorted order.
func (s *KVStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.Conn().QueryContext(ctx, `
		SELECT key FROM kv_store
		WHERE substr(key, 1, length(?1)) = ?1
		  AND (expires_at IS NULL OR expires_at >= ?2)
		ORDER BY key`,
		prefix, s.now().UnixNano(),
	)
	if err != nil {
		return nil, fmt.Errorf("kv keys %q: %w", prefix, err)
	}
	defer func() { _ = rows.Close() }()

	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("kv keys scan: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// DeletePrefix removes every key beginning with prefix, expired or not.
func (s *KVStore) DeletePrefix(ctx context.Context, prefix string) (int64, error) {
	res, err := s.db.Conn().ExecContext(ctx,
		"DELETE FROM kv_store WHERE substr(key, 1, length(?1)) = ?1", prefix)
	if err != nil {
		return 0, fmt.Errorf("kv delete prefix %q: %w", prefix, err)
	}
	return res.RowsAffected()
}

// SweepExpired deletes all entries whose TTL has passed and returns how
// many were removed.
func (s *KVStore) SweepExpired(ctx context.Context) (int64, error) {
	res, err := s.db.Conn().ExecContext(ctx,
		"DELETE FROM kv_store WHERE expires_at IS NOT NULL AND expires_at < ?",
		s.now().UnixNano(),
	)
	if err != nil {
		return 0, fmt.Errorf("kv sweep: %w", err)
	}
	return res.RowsAffected()
}
