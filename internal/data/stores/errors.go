package stores

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/colonyops/reswed/internal/data/db"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var corruptMessages = []string{
	"database disk image is malformed",
	"file is not a database",
	"database corruption",
}

// IsCorruptionError reports whether err means the database file is
// unreadable and should be recreated.
func IsCorruptionError(err error) bool {
	if err == nil {
		return false
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CORRUPT, sqlite3.SQLITE_NOTADB, sqlite3.SQLITE_CANTOPEN:
			return true
		}
	}

	msg := err.Error()
	for _, m := range corruptMessages {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

// IsNotFoundError reports whether err wraps sql.ErrNoRows.
func IsNotFoundError(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// RecoverFromCorruption moves the database and its WAL/SHM companions
// aside as "<name>.corrupt.<timestamp>[-wal|-shm]" so the next Open starts
// fresh. Missing files are skipped. A companion that cannot be renamed is
// removed, since a stale WAL would be replayed into the new database.
func RecoverFromCorruption(dataDir string) error {
	dbPath := filepath.Join(dataDir, db.FileName)
	backup := fmt.Sprintf("%s.corrupt.%s", dbPath, time.Now().Format("20060102-150405"))

	for _, suffix := range []string{"", "-wal", "-shm"} {
		src := dbPath + suffix
		err := os.Rename(src, backup+suffix)
		switch {
		case err == nil, errors.Is(err, os.ErrNotExist):
			continue
		case suffix == "":
			return fmt.Errorf("back up corrupt database: %w", err)
		}

		if rmErr := os.Remove(src); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			return fmt.Errorf("back up %s: %w", filepath.Base(src), err)
		}
	}

	return nil
}
