package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/reswed/internal/core/clipboard"
	"github.com/colonyops/reswed/internal/core/config"
	"github.com/colonyops/reswed/internal/core/notify"
	"github.com/colonyops/reswed/internal/core/workspace"
	"github.com/colonyops/reswed/internal/reswed"
	"github.com/colonyops/reswed/pkg/tuitest"
)

func newApp(t *testing.T) *reswed.App {
	t.Helper()
	root := t.TempDir()
	for lang, text := range map[string]string{"en": "Hello", "fr": "Salut"} {
		dir := filepath.Join(root, lang)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		doc := fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<root>
  <data name="Greeting" xml:space="preserve">
    <value>%s</value>
  </data>
</root>
`, text)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "Strings.resw"), []byte(doc), 0o644))
	}

	ws, err := workspace.Discover(root, "")
	require.NoError(t, err)
	editor := workspace.NewEditor(workspace.NewFSStore(ws), workspace.WithBaseLanguage("en"))
	cfg := config.DefaultConfig()
	return reswed.NewApp(&cfg, ws, editor, reswed.NewSuggestService(editor, nil, 0), nil, &clipboard.Recorder{}, nil, zerolog.Nop())
}

func newModel(t *testing.T, opts Options) Model {
	t.Helper()
	m := New(context.Background(), newApp(t), opts)
	updated, _ := m.Update(tuitest.WindowSize(140, 30))
	return updated.(Model)
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func TestModel_InitialView(t *testing.T) {
	m := newModel(t, Options{})

	out := tuitest.StripANSI(m.View())
	assert.Contains(t, out, "Files")
	assert.Contains(t, out, "Strings.resw")
	assert.Contains(t, out, "Please select a file first.")
}

func TestModel_OpenFileFromPane(t *testing.T) {
	m := newModel(t, Options{})

	m, cmd := update(m, tuitest.KeyEnter())
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, fileOpenedMsg{}, msg)

	m, cmd = update(m, msg)
	assert.NotNil(t, cmd, "toast tick scheduled")
	assert.Equal(t, focusTable, m.focus)

	out := tuitest.StripANSI(m.View())
	assert.Contains(t, out, "Greeting")
	assert.Contains(t, out, "Salut")
	assert.Contains(t, out, "Opened Strings.resw")
}

func TestModel_InitOpensFileAndShowsWarnings(t *testing.T) {
	m := New(context.Background(), newApp(t), Options{
		File:     "Strings.resw",
		Warnings: []string{"unknown theme"},
	})
	require.NotNil(t, m.Init())

	m, _ = update(m, tuitest.WindowSize(140, 30))
	m, _ = update(m, openFile(m.ctx, m.app, "Strings.resw")())
	m, _ = update(m, notify.Warnf("unknown theme"))

	out := tuitest.StripANSI(m.View())
	assert.Contains(t, out, "Hello")
	assert.Contains(t, out, "unknown theme")
}

func TestModel_OpenUnknownFileShowsError(t *testing.T) {
	m := newModel(t, Options{})

	m, _ = update(m, openFile(m.ctx, m.app, "Missing.resw")())
	assert.Equal(t, 1, m.toasts.Len())
	assert.Equal(t, focusFiles, m.focus)
}

func TestModel_Quit(t *testing.T) {
	m := newModel(t, Options{})

	_, cmd := update(m, tuitest.KeyPress('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModel_TableInputSwallowsGlobalKeys(t *testing.T) {
	m := newModel(t, Options{})
	m, cmd := update(m, tuitest.KeyEnter())
	m, _ = update(m, cmd())

	m, _ = update(m, tuitest.KeyPress('a'))
	require.True(t, m.table.HasEditorFocus())

	m, _ = update(m, tuitest.KeyPress('q'))
	assert.True(t, m.table.HasEditorFocus(), "q is typed into the prompt")
	assert.Contains(t, tuitest.StripANSI(m.View()), "Please provide a key:")
}

func TestModel_TableDialogGetsKeysWhateverTheFocus(t *testing.T) {
	m := newModel(t, Options{})
	m, cmd := update(m, tuitest.KeyEnter())
	m, _ = update(m, cmd())

	m, _ = update(m, tuitest.KeyPress('a'))
	require.True(t, m.table.HasEditorFocus())
	m.focus = focusFiles

	m, _ = update(m, tuitest.KeyPress('q'))
	assert.True(t, m.table.HasEditorFocus(), "q is typed into the prompt")
	assert.Equal(t, focusTable, m.focus)

	m, _ = update(m, tuitest.KeyEsc())
	assert.False(t, m.table.HasEditorFocus())
}

func TestModel_OpeningAnotherFileClosesTableDialogs(t *testing.T) {
	m := newModel(t, Options{})
	m, cmd := update(m, tuitest.KeyEnter())
	m, _ = update(m, cmd())

	m, _ = update(m, tuitest.KeyPress('a'))
	require.True(t, m.table.HasEditorFocus())

	other := `<?xml version="1.0" encoding="utf-8"?>
<root>
  <data name="Farewell" xml:space="preserve">
    <value>Bye</value>
  </data>
</root>
`
	path := filepath.Join(m.app.Workspace.Root(), "en", "Other.resw")
	require.NoError(t, os.WriteFile(path, []byte(other), 0o644))

	m, _ = update(m, openFile(m.ctx, m.app, "Other.resw")())
	assert.False(t, m.table.HasEditorFocus())
	assert.Equal(t, focusTable, m.focus)
	assert.Contains(t, tuitest.StripANSI(m.View()), "Farewell")
}

func TestModel_Help(t *testing.T) {
	m := newModel(t, Options{})

	m, _ = update(m, tuitest.KeyPress('?'))
	out := tuitest.StripANSI(m.View())
	assert.Contains(t, out, "Keyboard shortcuts")
	assert.Contains(t, out, "add key")
	assert.Contains(t, out, "rescan files")

	m, _ = update(m, tuitest.KeyEsc())
	assert.False(t, m.showHelp)
}

func TestModel_FocusToggle(t *testing.T) {
	m := newModel(t, Options{})
	assert.Equal(t, focusFiles, m.focus)

	m, _ = update(m, tuitest.KeyTab())
	assert.Equal(t, focusTable, m.focus)
	m, _ = update(m, tuitest.KeyTab())
	assert.Equal(t, focusFiles, m.focus)
}

func TestModel_StatusBarShowsVersion(t *testing.T) {
	m := newModel(t, Options{Build: BuildInfo{Version: "1.2.0", Commit: "abc123"}})
	assert.Contains(t, tuitest.StripANSI(m.View()), "reswed 1.2.0 (abc123)")
}

func TestBuildInfo_String(t *testing.T) {
	assert.Equal(t, "reswed dev", BuildInfo{}.String())
	assert.Equal(t, "reswed 1.0.0", BuildInfo{Version: "1.0.0"}.String())
}
