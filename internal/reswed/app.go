// Package reswed wires the workspace, editor, suggestion and history
// services into the App consumed by commands and the TUI.
package reswed

import (
	"context"
	"fmt"

	"github.com/colonyops/reswed/internal/core/clipboard"
	"github.com/colonyops/reswed/internal/core/config"
	"github.com/colonyops/reswed/internal/core/history"
	"github.com/colonyops/reswed/internal/core/resw"
	"github.com/colonyops/reswed/internal/core/workspace"
	"github.com/colonyops/reswed/internal/data/db"
	"github.com/rs/zerolog"
)

// App is the central entry point for all reswed operations.
// Commands and TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Workspace *workspace.Workspace
	Editor    *workspace.Editor
	Suggest   *SuggestService
	History   history.Store
	Clipboard clipboard.Writer
	Config    *config.Config
	DB        *db.DB

	log zerolog.Logger
}

// NewApp constructs an App from explicit dependencies.
func NewApp(
	cfg *config.Config,
	ws *workspace.Workspace,
	editor *workspace.Editor,
	suggestions *SuggestService,
	hist history.Store,
	clip clipboard.Writer,
	database *db.DB,
	log zerolog.Logger,
) *App {
	return &App{
		Workspace: ws,
		Editor:    editor,
		Suggest:   suggestions,
		History:   hist,
		Clipboard: clip,
		Config:    cfg,
		DB:        database,
		log:       log,
	}
}

// OpenFile loads file into the editor, refreshing discovery first when the
// file is not yet known.
func (a *App) OpenFile(ctx context.Context, file string) error {
	if _, ok := a.Workspace.Resource(file); !ok {
		if err := a.Workspace.Refresh(); err != nil {
			return fmt.Errorf("refresh workspace: %w", err)
		}
	}
	return a.Editor.Open(ctx, file)
}

// CopyKey writes the full key of key in the open file to the clipboard and
// returns it. The full key is returned even when the clipboard write fails.
func (a *App) CopyKey(ctx context.Context, key string) (string, error) {
	file := a.Editor.Filename()
	if file == "" {
		return "", workspace.ErrNoFile
	}

	full := resw.FullKey(file, key)
	if err := a.Clipboard.Write(ctx, full); err != nil {
		a.log.Error().Err(err).Str("key", full).Msg("copy key to clipboard")
		return full, fmt.Errorf("copy %s: %w", full, err)
	}
	return full, nil
}

// ListHistory returns recorded edits of file, newest first.
func (a *App) ListHistory(ctx context.Context, f history.Filter) ([]history.Entry, error) {
	return a.History.List(ctx, f)
}
