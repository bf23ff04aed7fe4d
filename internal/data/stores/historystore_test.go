package stores

import (
	"context"
	"testing"
	"time"

	"github.com/colonyops/reswed/internal/core/history"
	"github.com/colonyops/reswed/internal/data/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHistoryStore(t *testing.T) *HistoryStore {
	t.Helper()
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return NewHistoryStore(database)
}

func TestHistoryStore_RecordAndList(t *testing.T) {
	ctx := context.Background()
	store := newTestHistoryStore(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	entries := []history.Entry{
		{File: "Resources.resw", Lang: "en-US", Key: "Title", Op: history.OpUpdate, Old: "Hello", New: "Hi", At: base},
		{File: "Resources.resw", Lang: "fr-FR", Key: "Title", Op: history.OpUpdate, Old: "Bonjour", New: "Salut", At: base.Add(time.Minute)},
		{File: "Errors.resw", Lang: "en-US", Key: "NotFound", Op: history.OpAdd, New: "Not found", At: base.Add(2 * time.Minute)},
	}
	for _, e := range entries {
		require.NoError(t, store.Record(ctx, e))
	}

	got, err := store.List(ctx, history.Filter{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "NotFound", got[0].Key, "newest first")
	assert.Equal(t, history.OpAdd, got[0].Op)
	assert.True(t, got[2].At.Equal(base))
	assert.NotZero(t, got[0].ID)

	got, err = store.List(ctx, history.Filter{File: "Resources.resw", Key: "Title"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "fr-FR", got[0].Lang)
	assert.Equal(t, "Salut", got[0].New)

	got, err = store.List(ctx, history.Filter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestHistoryStore_ListEmpty(t *testing.T) {
	store := newTestHistoryStore(t)

	got, err := store.List(context.Background(), history.Filter{Key: "Missing"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHistoryStore_DefaultsTimestamp(t *testing.T) {
	ctx := context.Background()
	store := newTestHistoryStore(t)

	require.NoError(t, store.Record(ctx, history.Entry{File: "f.resw", Lang: "en-US", Key: "K", Op: history.OpRemove}))

	got, err := store.List(ctx, history.Filter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.WithinDuration(t, time.Now(), got[0].At, time.Minute)
}
