package table

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/reswed/internal/core/notify"
	"github.com/colonyops/reswed/internal/core/suggest"
	"github.com/colonyops/reswed/internal/core/workspace"
	"github.com/colonyops/reswed/internal/reswed"
)

// Every result message carries the operation's error so the view can clear
// the matching busy flag whatever the outcome.

type textUpdatedMsg struct {
	lang string
	key  string
	err  error
}

type keyAddedMsg struct {
	key    string
	result workspace.BatchResult
	err    error
}

type keyRemovedMsg struct {
	key    string
	result workspace.BatchResult
	err    error
}

type keyRenamedMsg struct {
	oldKey string
	newKey string
	result workspace.BatchResult
	err    error
}

type suggestionMsg struct {
	file       string
	key        string
	suggestion suggest.Suggestion
	err        error
}

type suggestionsAppliedMsg struct {
	key string
	err error
}

type keyCopiedMsg struct {
	fullKey string
	err     error
}

func updateText(ctx context.Context, app *reswed.App, lang, key, text string) tea.Cmd {
	return func() tea.Msg {
		err := app.Editor.UpdateText(ctx, lang, key, text)
		return textUpdatedMsg{lang: lang, key: key, err: err}
	}
}

func addKey(ctx context.Context, app *reswed.App, key string) tea.Cmd {
	return func() tea.Msg {
		result, err := app.Editor.AddKey(ctx, key)
		return keyAddedMsg{key: key, result: result, err: err}
	}
}

func removeKey(ctx context.Context, app *reswed.App, key string) tea.Cmd {
	return func() tea.Msg {
		result, err := app.Editor.RemoveKey(ctx, key)
		return keyRemovedMsg{key: key, result: result, err: err}
	}
}

func renameKey(ctx context.Context, app *reswed.App, oldKey, newKey string) tea.Cmd {
	return func() tea.Msg {
		result, err := app.Editor.RenameKey(ctx, oldKey, newKey)
		return keyRenamedMsg{oldKey: oldKey, newKey: newKey, result: result, err: err}
	}
}

// fetchSuggestion tags the result with the file open when it was asked for,
// so a late answer can be matched against the file open when it arrives.
func fetchSuggestion(ctx context.Context, app *reswed.App, file, key string) tea.Cmd {
	return func() tea.Msg {
		s, err := app.Suggest.Fetch(ctx, key)
		return suggestionMsg{file: file, key: key, suggestion: s, err: err}
	}
}

func applySuggestion(ctx context.Context, app *reswed.App, file, key string, e suggest.Entry) tea.Cmd {
	return func() tea.Msg {
		err := app.Suggest.Apply(ctx, file, key, e)
		return textUpdatedMsg{lang: e.Lang, key: key, err: err}
	}
}

func applyAllSuggestions(ctx context.Context, app *reswed.App, s suggest.Suggestion) tea.Cmd {
	return func() tea.Msg {
		err := app.Suggest.ApplyAll(ctx, s)
		return suggestionsAppliedMsg{key: s.Key, err: err}
	}
}

func copyKey(ctx context.Context, app *reswed.App, key string) tea.Cmd {
	return func() tea.Msg {
		full, err := app.CopyKey(ctx, key)
		return keyCopiedMsg{fullKey: full, err: err}
	}
}

// notifyCmd emits n for the root model to show as a toast.
func notifyCmd(n notify.Notification) tea.Cmd {
	return func() tea.Msg { return n }
}
