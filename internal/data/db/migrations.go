package db

import (
	"cmp"
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"slices"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migration is one schema version of the reswed database (kv cache, edit
// history) with the SQL to apply and revert it.
type Migration struct {
	Version int
	Name    string
	UpSQL   string
	DownSQL string
}

var migrationFile = regexp.MustCompile(`^(\d+)_([a-z0-9_]+)\.(up|down)\.sql$`)

// parseFilename splits "NNNN_name.up.sql" into its version, name and
// direction.
func parseFilename(filename string) (int, string, string, error) {
	m := migrationFile.FindStringSubmatch(filename)
	if m == nil {
		return 0, "", "", fmt.Errorf("expected NNNN_name.{up,down}.sql, got %q", filename)
	}

	version, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, "", "", fmt.Errorf("parse version %q: %w", m[1], err)
	}
	if version == 0 {
		return 0, "", "", errors.New("version must be positive")
	}

	return version, m[2], m[3], nil
}

// loadMigrations reads the embedded SQL files. Every version needs exactly
// one up and one down file.
func loadMigrations() ([]Migration, error) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	byVersion := map[int]*Migration{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		version, name, direction, err := parseFilename(entry.Name())
		if err != nil {
			return nil, fmt.Errorf("migration %s: %w", entry.Name(), err)
		}

		body, err := fs.ReadFile(migrationsFS, path.Join("migrations", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}

		m, ok := byVersion[version]
		if !ok {
			m = &Migration{Version: version, Name: name}
			byVersion[version] = m
		}

		slot := &m.UpSQL
		if direction == "down" {
			slot = &m.DownSQL
		}
		if *slot != "" {
			return nil, fmt.Errorf("migration %04d has two %s files", version, direction)
		}
		*slot = string(body)
	}

	out := make([]Migration, 0, len(byVersion))
	for _, m := range byVersion {
		if m.UpSQL == "" || m.DownSQL == "" {
			return nil, fmt.Errorf("migration %04d (%s) needs both up and down files", m.Version, m.Name)
		}
		out = append(out, *m)
	}

	slices.SortFunc(out, func(a, b Migration) int { return cmp.Compare(a.Version, b.Version) })
	return out, nil
}

// migrator runs migrations against one connection, tracking applied
// versions in schema_migrations.
type migrator struct {
	conn *sql.DB
}

func (mg migrator) prepare(ctx context.Context) ([]Migration, map[int]bool, error) {
	migrations, err := loadMigrations()
	if err != nil {
		return nil, nil, err
	}

	_, err = mg.conn.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		name       TEXT NOT NULL,
		applied_at INTEGER NOT NULL
	)`)
	if err != nil {
		return nil, nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	rows, err := mg.conn.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, nil, fmt.Errorf("query schema_migrations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	applied := map[int]bool{}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, nil, fmt.Errorf("scan version: %w", err)
		}
		applied[v] = true
	}

	return migrations, applied, rows.Err()
}

// step runs the migration body and its bookkeeping statement in one
// transaction.
func (mg migrator) step(ctx context.Context, body, record string, args ...any) error {
	tx, err := mg.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, body); err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	if _, err := tx.ExecContext(ctx, record, args...); err != nil {
		return fmt.Errorf("record: %w", err)
	}

	return tx.Commit()
}

// migrateUp applies every pending migration in version order.
func migrateUp(ctx context.Context, conn *sql.DB) error {
	mg := migrator{conn: conn}
	migrations, applied, err := mg.prepare(ctx)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}

		log.Debug().Int("version", m.Version).Str("name", m.Name).Msg("applying migration")
		err := mg.step(ctx, m.UpSQL,
			"INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, ?)",
			m.Version, m.Name, time.Now().UnixNano())
		if err != nil {
			return fmt.Errorf("migration %04d (%s): %w", m.Version, m.Name, err)
		}
	}

	return nil
}

// MigrateDown reverts the n most recent applied migrations.
func MigrateDown(ctx context.Context, conn *sql.DB, n int) error {
	if n <= 0 {
		return fmt.Errorf("n must be positive, got %d", n)
	}

	mg := migrator{conn: conn}
	migrations, applied, err := mg.prepare(ctx)
	if err != nil {
		return err
	}

	migrations = slices.DeleteFunc(migrations, func(m Migration) bool { return !applied[m.Version] })
	if n > len(migrations) {
		return fmt.Errorf("cannot revert %d migrations, only %d applied", n, len(migrations))
	}
	slices.Reverse(migrations)

	for _, m := range migrations[:n] {
		log.Info().Int("version", m.Version).Str("name", m.Name).Msg("reverting migration")
		err := mg.step(ctx, m.DownSQL, "DELETE FROM schema_migrations WHERE version = ?", m.Version)
		if err != nil {
			return fmt.Errorf("revert %04d (%s): %w", m.Version, m.Name, err)
		}
	}

	return nil
}
