package stores

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/colonyops/reswed/internal/data/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestKVStore returns a store whose clock is advanced through the
// returned pointer.
func newTestKVStore(t *testing.T) (*KVStore, *time.Time) {
	t.Helper()
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewKVStore(database)
	store.now = func() time.Time { return now }
	return store, &now
}

type cachedSuggestion struct {
	Lang string `json:"lang"`
	Text string `json:"text"`
}

func TestKVStore_PutAndGet(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestKVStore(t)

	want := cachedSuggestion{Lang: "fr-FR", Text: "Bonjour"}
	require.NoError(t, store.Put(ctx, "suggest:Greeting", want, 0))

	var got cachedSuggestion
	require.NoError(t, store.Get(ctx, "suggest:Greeting", &got))
	assert.Equal(t, want, got)
}

func TestKVStore_GetMissing(t *testing.T) {
	store, _ := newTestKVStore(t)

	var v string
	err := store.Get(context.Background(), "nonexistent", &v)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestKVStore_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestKVStore(t)

	require.NoError(t, store.Put(ctx, "key", "first", 0))
	require.NoError(t, store.Put(ctx, "key", "second", time.Hour))

	var got string
	require.NoError(t, store.Get(ctx, "key", &got))
	assert.Equal(t, "second", got)
}

func TestKVStore_DeleteAndHas(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestKVStore(t)

	has, err := store.Has(ctx, "key")
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, store.Put(ctx, "key", true, 0))
	has, err = store.Has(ctx, "key")
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, store.Delete(ctx, "key"))
	require.NoError(t, store.Delete(ctx, "key"), "deleting twice is fine")

	has, err = store.Has(ctx, "key")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestKVStore_KeysByPrefix(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestKVStore(t)

	for _, k := range []string{"suggest:b", "suggest:a", "other:a", "suggest%x"} {
		require.NoError(t, store.Put(ctx, k, 1, 0))
	}

	keys, err := store.Keys(ctx, "suggest:")
	require.NoError(t, err)
	assert.Equal(t, []string{"suggest:a", "suggest:b"}, keys)

	all, err := store.Keys(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestKVStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store, now := newTestKVStore(t)

	require.NoError(t, store.Put(ctx, "brief", "gone", time.Minute))
	require.NoError(t, store.Put(ctx, "forever", "stays", 0))

	var v string
	require.NoError(t, store.Get(ctx, "brief", &v))

	*now = now.Add(2 * time.Minute)

	err := store.Get(ctx, "brief", &v)
	require.ErrorIs(t, err, sql.ErrNoRows)

	has, err := store.Has(ctx, "brief")
	require.NoError(t, err)
	assert.False(t, has)

	keys, err := store.Keys(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"forever"}, keys)
}

func TestKVStore_SweepExpired(t *testing.T) {
	ctx := context.Background()
	store, now := newTestKVStore(t)

	require.NoError(t, store.Put(ctx, "permanent", "stays", 0))
	require.NoError(t, store.Put(ctx, "expired", "goes", time.Second))
	require.NoError(t, store.Put(ctx, "later", "stays", time.Hour))

	*now = now.Add(time.Minute)

	n, err := store.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	keys, err := store.Keys(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"later", "permanent"}, keys)
}

func TestKVStore_DeletePrefix(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestKVStore(t)

	require.NoError(t, store.Put(ctx, "suggest:a", 1, 0))
	require.NoError(t, store.Put(ctx, "suggest:b", 2, time.Hour))
	require.NoError(t, store.Put(ctx, "keep", 3, 0))

	n, err := store.DeletePrefix(ctx, "suggest:")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	keys, err := store.Keys(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"keep"}, keys)
}
