package reswed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/colonyops/reswed/internal/core/clipboard"
	"github.com/colonyops/reswed/internal/core/config"
	"github.com/colonyops/reswed/internal/core/history"
	"github.com/colonyops/reswed/internal/core/resw"
	"github.com/colonyops/reswed/internal/core/suggest"
	"github.com/colonyops/reswed/internal/core/workspace"
	"github.com/colonyops/reswed/internal/data/db"
	"github.com/colonyops/reswed/internal/data/stores"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct{ key, value string }

func writeResw(t *testing.T, root, lang, file string, pairs ...pair) {
	t.Helper()
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n<root>\n")
	for _, p := range pairs {
		fmt.Fprintf(&b, "  <data name=%q xml:space=\"preserve\">\n    <value>%s</value>\n  </data>\n", p.key, p.value)
	}
	b.WriteString("</root>\n")

	dir := filepath.Join(root, lang)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(b.String()), 0o644))
}

// savesStore records the language of every save in order.
type savesStore struct {
	workspace.Store
	saves []string
}

func (s *savesStore) Save(ctx context.Context, lang, file string, doc *resw.Document) error {
	s.saves = append(s.saves, lang)
	return s.Store.Save(ctx, lang, file, doc)
}

type fixture struct {
	app   *App
	store *savesStore
	clip  *clipboard.Recorder
	root  string
}

func newFixture(t *testing.T, s suggest.Suggester) *fixture {
	t.Helper()
	root := t.TempDir()
	writeResw(t, root, "en", "Strings.resw", pair{"Greeting", "Hello"}, pair{"Title", "Editor"})
	writeResw(t, root, "fr", "Strings.resw", pair{"Greeting", "Salut"}, pair{"Title", ""})

	ws, err := workspace.Discover(root, "**/*.resw")
	require.NoError(t, err)

	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	hist := stores.NewHistoryStore(database)

	store := &savesStore{Store: workspace.NewFSStore(ws)}
	editor := workspace.NewEditor(store, workspace.WithBaseLanguage("en"), workspace.WithRecorder(hist))
	clip := &clipboard.Recorder{}

	cfg := config.DefaultConfig()
	app := NewApp(&cfg, ws, editor, NewSuggestService(editor, s, 0), hist, clip, database, zerolog.Nop())

	return &fixture{app: app, store: store, clip: clip, root: root}
}

func TestApp_CopyKey(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	_, err := f.app.CopyKey(ctx, "Title")
	require.ErrorIs(t, err, workspace.ErrNoFile)

	require.NoError(t, f.app.OpenFile(ctx, "Strings.resw"))

	full, err := f.app.CopyKey(ctx, "Title")
	require.NoError(t, err)
	assert.Equal(t, "/Strings/Title", full)
	assert.Equal(t, []string{"/Strings/Title"}, f.clip.Copied)
}

func TestApp_CopyKeyClipboardFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	require.NoError(t, f.app.OpenFile(ctx, "Strings.resw"))

	f.clip.Err = errors.New("no display")
	full, err := f.app.CopyKey(ctx, "Greeting")
	require.Error(t, err)
	assert.Equal(t, "/Strings/Greeting", full)
}

func TestApp_OpenFileRefreshesWorkspace(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	writeResw(t, f.root, "en", "Late.resw", pair{"A", "a"})
	require.NoError(t, f.app.OpenFile(ctx, "Late.resw"))
	assert.Equal(t, []string{"A"}, f.app.Editor.Keys())

	err := f.app.OpenFile(ctx, "Missing.resw")
	require.Error(t, err)
}

func TestApp_ListHistory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	require.NoError(t, f.app.OpenFile(ctx, "Strings.resw"))

	require.NoError(t, f.app.Editor.UpdateText(ctx, "fr", "Title", "Éditeur"))

	entries, err := f.app.ListHistory(ctx, history.Filter{File: "Strings.resw"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, history.OpUpdate, entries[0].Op)
	assert.Equal(t, "fr", entries[0].Lang)
	assert.Equal(t, "Éditeur", entries[0].New)
}
