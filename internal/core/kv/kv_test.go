package kv_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/colonyops/reswed/internal/core/kv"
	"github.com/colonyops/reswed/internal/data/db"
	"github.com/colonyops/reswed/internal/data/stores"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKV(t *testing.T) kv.KV {
	t.Helper()
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return stores.NewKVStore(database)
}

type translation struct {
	Lang string `json:"lang"`
	Text string `json:"text"`
}

func TestTypedKV_RoundTrip(t *testing.T) {
	ctx := context.Background()
	typed := kv.Scoped[translation](newTestKV(t), "suggest")

	require.NoError(t, typed.Put(ctx, "Title", translation{Lang: "de-DE", Text: "Titel"}, 0))

	got, err := typed.Get(ctx, "Title")
	require.NoError(t, err)
	assert.Equal(t, translation{Lang: "de-DE", Text: "Titel"}, got)

	has, err := typed.Has(ctx, "Title")
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, typed.Delete(ctx, "Title"))
	_, err = typed.Get(ctx, "Title")
	assert.True(t, kv.IsMiss(err))
}

func TestTypedKV_NamespacesAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := newTestKV(t)
	alpha := kv.Scoped[int](store, "alpha")
	beta := kv.Scoped[int](store, "beta")

	require.NoError(t, alpha.Put(ctx, "n", 1, 0))
	require.NoError(t, alpha.Put(ctx, "m", 2, 0))
	require.NoError(t, beta.Put(ctx, "n", 3, 0))

	keys, err := alpha.Keys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"n", "m"}, keys)

	raw, err := store.Keys(ctx, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alpha:n", "alpha:m", "beta:n"}, raw)

	n, err := alpha.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	b, err := beta.Get(ctx, "n")
	require.NoError(t, err)
	assert.Equal(t, 3, b)
}

func TestTypedKV_Put(t *testing.T) {
	ctx := context.Background()
	typed := kv.Scoped[string](newTestKV(t), "ttl")

	require.NoError(t, typed.Put(ctx, "forever", "x", 0))
	require.NoError(t, typed.Put(ctx, "brief", "y", time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	got, err := typed.Get(ctx, "forever")
	require.NoError(t, err)
	assert.Equal(t, "x", got)

	_, err = typed.Get(ctx, "brief")
	assert.True(t, kv.IsMiss(err))
}

func TestIsMiss(t *testing.T) {
	assert.False(t, kv.IsMiss(nil))
	assert.False(t, kv.IsMiss(errors.New("disk I/O error")))
}
