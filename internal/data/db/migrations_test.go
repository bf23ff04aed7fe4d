package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := Open(t.TempDir(), DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func hasTable(t *testing.T, conn *sql.DB, table string) bool {
	t.Helper()
	var n int
	err := conn.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&n)
	require.NoError(t, err)
	return n == 1
}

func recordedVersions(t *testing.T, conn *sql.DB) []int {
	t.Helper()
	rows, err := conn.Query("SELECT version FROM schema_migrations ORDER BY version")
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	var out []int
	for rows.Next() {
		var v int
		require.NoError(t, rows.Scan(&v))
		out = append(out, v)
	}
	require.NoError(t, rows.Err())
	return out
}

func TestOpen_AppliesAllMigrations(t *testing.T) {
	database := openTestDB(t)

	migrations, err := loadMigrations()
	require.NoError(t, err)

	want := make([]int, 0, len(migrations))
	for _, m := range migrations {
		want = append(want, m.Version)
	}
	assert.Equal(t, want, recordedVersions(t, database.Conn()))

	for _, table := range []string{"kv_store", "edit_history"} {
		assert.True(t, hasTable(t, database.Conn(), table), table)
	}
}

func TestMigrateUp_Idempotent(t *testing.T) {
	database := openTestDB(t)
	before := recordedVersions(t, database.Conn())

	require.NoError(t, migrateUp(context.Background(), database.Conn()))
	assert.Equal(t, before, recordedVersions(t, database.Conn()))
}

func TestMigrateDown_KeepsOlderTables(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	conn := database.Conn()

	_, err := conn.ExecContext(ctx,
		"INSERT INTO kv_store (key, value, created_at, updated_at) VALUES ('suggest:abc', '{}', 1, 1)")
	require.NoError(t, err)

	require.NoError(t, MigrateDown(ctx, conn, 1))
	assert.False(t, hasTable(t, conn, "edit_history"))
	assert.True(t, hasTable(t, conn, "kv_store"))

	var n int
	require.NoError(t, conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM kv_store").Scan(&n))
	assert.Equal(t, 1, n)

	require.NoError(t, migrateUp(ctx, conn))
	assert.True(t, hasTable(t, conn, "edit_history"))
}

func TestMigrateDown_Bounds(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	migrations, err := loadMigrations()
	require.NoError(t, err)

	for _, n := range []int{0, -1, len(migrations) + 1} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			assert.Error(t, MigrateDown(ctx, database.Conn(), n))
		})
	}
	assert.Len(t, recordedVersions(t, database.Conn()), len(migrations))
}

func TestLoadMigrations(t *testing.T) {
	migrations, err := loadMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	for i, m := range migrations {
		if i > 0 {
			assert.Greater(t, m.Version, migrations[i-1].Version)
		}
		assert.NotEmpty(t, m.Name)
		assert.NotEmpty(t, m.UpSQL, "version %d", m.Version)
		assert.NotEmpty(t, m.DownSQL, "version %d", m.Version)
	}
}

func TestParseFilename(t *testing.T) {
	tests := []struct {
		filename  string
		version   int
		name      string
		direction string
		wantErr   bool
	}{
		{filename: "0001_kv_store.up.sql", version: 1, name: "kv_store", direction: "up"},
		{filename: "0002_edit_history.down.sql", version: 2, name: "edit_history", direction: "down"},
		{filename: "0100_big_version.up.sql", version: 100, name: "big_version", direction: "up"},
		{filename: "bad.sql", wantErr: true},
		{filename: "0001_kv_store.sql", wantErr: true},
		{filename: "0000_zero.up.sql", wantErr: true},
		{filename: "-1_negative.up.sql", wantErr: true},
		{filename: "abc_notnumber.up.sql", wantErr: true},
		{filename: "0001_.up.sql", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			version, name, direction, err := parseFilename(tt.filename)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.version, version)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.direction, direction)
		})
	}
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := database.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO edit_history (file, lang, key, op, created_at) VALUES ('Strings', 'en-US', 'Title', 'add', 1)")
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, database.Conn().QueryRowContext(ctx, "SELECT COUNT(*) FROM edit_history").Scan(&n))
	assert.Zero(t, n)
}

func TestOpen_Path(t *testing.T) {
	dir := t.TempDir()
	database, err := Open(dir, DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	assert.Equal(t, filepath.Join(dir, FileName), database.Path())
}
