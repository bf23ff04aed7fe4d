package table

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/reswed/internal/core/clipboard"
	"github.com/colonyops/reswed/internal/core/config"
	"github.com/colonyops/reswed/internal/core/notify"
	"github.com/colonyops/reswed/internal/core/suggest"
	"github.com/colonyops/reswed/internal/core/workspace"
	"github.com/colonyops/reswed/internal/reswed"
)

func writeResw(t *testing.T, root, lang string, pairs ...string) {
	t.Helper()
	writeReswFile(t, root, lang, "Strings.resw", pairs...)
}

func writeReswFile(t *testing.T, root, lang, name string, pairs ...string) {
	t.Helper()
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n<root>\n")
	for i := 0; i+1 < len(pairs); i += 2 {
		fmt.Fprintf(&b, "  <data name=%q xml:space=\"preserve\">\n    <value>%s</value>\n  </data>\n", pairs[i], pairs[i+1])
	}
	b.WriteString("</root>\n")

	dir := filepath.Join(root, lang)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(b.String()), 0o644))
}

type fixture struct {
	root string
	app  *reswed.App
	clip *clipboard.Recorder
}

// newFixture builds an app over en/fr Strings.resw with Greeting and an
// untranslated Title. open controls whether the file is loaded.
func newFixture(t *testing.T, s suggest.Suggester, open bool) *fixture {
	t.Helper()
	root := t.TempDir()
	writeResw(t, root, "en", "Greeting", "Hello", "Title", "Editor")
	writeResw(t, root, "fr", "Greeting", "Salut", "Title", "")

	ws, err := workspace.Discover(root, "")
	require.NoError(t, err)

	editor := workspace.NewEditor(workspace.NewFSStore(ws), workspace.WithBaseLanguage("en"))
	if open {
		require.NoError(t, editor.Open(context.Background(), "Strings.resw"))
	}

	clip := &clipboard.Recorder{}
	cfg := config.DefaultConfig()
	app := reswed.NewApp(&cfg, ws, editor, reswed.NewSuggestService(editor, s, 0), nil, clip, nil, zerolog.Nop())
	return &fixture{root: root, app: app, clip: clip}
}

func newView(t *testing.T, f *fixture) View {
	t.Helper()
	v := New(context.Background(), f.app)
	v.SetSize(120, 30)
	return v
}

// press feeds key messages to the view and returns the last command.
func press(v View, msgs ...tea.Msg) (View, tea.Cmd) {
	var cmd tea.Cmd
	for _, m := range msgs {
		v, cmd = v.Update(m)
	}
	return v, cmd
}

// run executes cmd and feeds its results back into the view until a
// notification is produced or no command is left.
func run(t *testing.T, v View, cmd tea.Cmd) (View, []notify.Notification) {
	t.Helper()
	var notes []notify.Notification
	for cmd != nil {
		msg := cmd()
		if n, ok := msg.(notify.Notification); ok {
			notes = append(notes, n)
			break
		}
		v, cmd = v.Update(msg)
	}
	return v, notes
}

func suggesterOf(entries ...suggest.Entry) suggest.Suggester {
	return suggest.SuggesterFunc(func(_ context.Context, req suggest.Request) (suggest.Suggestion, error) {
		return suggest.Suggestion{Key: req.Key, Entries: entries}, nil
	})
}
