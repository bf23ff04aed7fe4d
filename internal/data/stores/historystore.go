package stores

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/colonyops/reswed/internal/core/history"
	"github.com/colonyops/reswed/internal/data/db"
)

// DefaultHistoryLimit caps List when the filter sets no limit.
const DefaultHistoryLimit = 50

// HistoryStore implements history.Store using SQLite.
type HistoryStore struct {
	db *db.DB
}

var _ history.Store = (*HistoryStore)(nil)

// NewHistoryStore creates a new SQLite-backed edit history.
func NewHistoryStore(db *db.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// Record appends an entry.
func (s *HistoryStore) Record(ctx context.Context, e history.Entry) error {
	at := e.At
	if at.IsZero() {
		at = time.Now()
	}

	_, err := s.db.Conn().ExecContext(ctx, `
		INSERT INTO edit_history (file, lang, key, op, old_value, new_value, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.File, e.Lang, e.Key, string(e.Op), e.Old, e.New, at.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("record history %s/%s: %w", e.File, e.Key, err)
	}
	return nil
}

// List returns entries matching f, newest first.
func (s *HistoryStore) List(ctx context.Context, f history.Filter) ([]history.Entry, error) {
	var (
		where []string
		args  []any
	)
	if f.File != "" {
		where = append(where, "file = ?")
		args = append(args, f.File)
	}
	if f.Key != "" {
		where = append(where, "key = ?")
		args = append(args, f.Key)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	q := "SELECT id, file, lang, key, op, old_value, new_value, created_at FROM edit_history"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Conn().QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]history.Entry, 0)
	for rows.Next() {
		var (
			e  history.Entry
			op string
			at int64
		)
		if err := rows.Scan(&e.ID, &e.File, &e.Lang, &e.Key, &op, &e.Old, &e.New, &at); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.Op = history.Op(op)
		e.At = time.Unix(0, at)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
