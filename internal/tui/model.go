// Package tui implements the interactive resource editor.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/colonyops/reswed/internal/core/logging"
	"github.com/colonyops/reswed/internal/core/notify"
	"github.com/colonyops/reswed/internal/core/styles"
	"github.com/colonyops/reswed/internal/reswed"
	"github.com/colonyops/reswed/internal/tui/components"
	"github.com/colonyops/reswed/internal/tui/views/table"
)

const (
	filePaneWidth    = 32
	minFilePaneWidth = 20
)

type focus int

const (
	focusFiles focus = iota
	focusTable
)

// Options configures the TUI behavior.
type Options struct {
	File     string   // opened on start when set
	Warnings []string // startup warnings to display as toasts
	Build    BuildInfo
}

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	ctx    context.Context
	app    *reswed.App
	opts   Options
	keys   KeyMap
	files  FilePane
	table  table.View
	toasts *Toasts
	help   help.Model
	log    zerolog.Logger

	focus    focus
	showHelp bool
	width    int
	height   int
}

// New creates the TUI model.
func New(ctx context.Context, app *reswed.App, opts Options) Model {
	keys := DefaultKeyMap()
	return Model{
		ctx:    ctx,
		app:    app,
		opts:   opts,
		keys:   keys,
		files:  NewFilePane(ctx, app, keys),
		table:  table.New(ctx, app),
		toasts: NewToasts(),
		help:   help.New(),
		log:    logging.Component("tui"),
	}
}

// Init opens the initial file and shows startup warnings.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.opts.File != "" {
		cmds = append(cmds, openFile(m.ctx, m.app, m.opts.File))
	}
	for _, w := range m.opts.Warnings {
		n := notify.Warnf("%s", w)
		cmds = append(cmds, func() tea.Msg { return n })
	}
	return tea.Batch(cmds...)
}

// Update handles messages for the TUI.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil
	case notify.Notification:
		return m, m.toasts.Push(msg)
	case toastTickMsg:
		return m, m.toasts.Tick(toastTickInterval)
	case fileOpenedMsg:
		return m.handleFileOpened(msg)
	case filesRefreshedMsg:
		var cmd tea.Cmd
		m.files, cmd = m.files.Update(msg)
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("rescan files")
			return m, tea.Batch(cmd, m.toasts.Push(notify.Errorf("rescan: %v", msg.err)))
		}
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	if m.table.HasEditorFocus() {
		m.focus = focusTable
	}
	return m, cmd
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	bodyHeight := max(height-1, 1)
	filesWidth := min(filePaneWidth, max(width/4, minFilePaneWidth))
	m.files.SetSize(filesWidth, bodyHeight)
	// Pane border and padding take four columns and two rows.
	m.table.SetSize(max(width-filesWidth-4, 20), max(bodyHeight-2, 1))
}

func (m Model) handleFileOpened(msg fileOpenedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Error().Err(msg.err).Str("file", msg.file).Msg("open file")
		return m, m.toasts.Push(notify.Errorf("%v", msg.err))
	}
	m.table.Refresh()
	m.focus = focusTable
	return m, m.toasts.Push(notify.Infof("Opened %s", msg.file))
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		switch msg.String() {
		case "esc", "?", "q":
			m.showHelp = false
		}
		return m, nil
	}

	// Dialogs and inputs of the table get every key, whichever pane had
	// focus when they opened.
	if m.table.HasEditorFocus() {
		m.focus = focusTable
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Dismiss):
		m.toasts.Dismiss()
		return m, nil
	case key.Matches(msg, m.keys.Focus):
		if m.focus == focusFiles {
			m.focus = focusTable
		} else {
			m.focus = focusFiles
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == focusFiles {
		m.files, cmd = m.files.Update(msg)
	} else {
		m.table, cmd = m.table.Update(msg)
	}
	return m, cmd
}

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	tablePane := styles.PaneStyle
	if m.focus == focusTable {
		tablePane = styles.PaneFocusedStyle
	}
	right := tablePane.
		Width(max(m.width-m.files.width-2, 20)).
		Height(max(m.height-3, 1)).
		Render(m.table.View())

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.files.View(m.focus == focusFiles), right)
	helpView := m.help.View(m.keys)
	version := styles.MutedStyle.Render(m.opts.Build.String())
	gap := components.Pad(m.width - lipgloss.Width(helpView) - lipgloss.Width(version) - 1)
	status := styles.StatusBarStyle.UnsetMarginTop().Render(helpView + gap + version)
	screen := lipgloss.JoinVertical(lipgloss.Left, body, status)

	screen = m.table.Overlay(screen, m.width, m.height)
	if m.showHelp {
		screen = components.Center(m.helpDialog().View(), m.width, m.height)
	}
	return m.toasts.Overlay(screen, m.width, m.height)
}

func (m Model) helpDialog() components.HelpDialog {
	var sections []components.HelpDialogSection
	for i, group := range m.keys.FullHelp() {
		title := "General"
		if i == 1 {
			title = "Files"
		}
		sections = append(sections, components.HelpDialogSection{Title: title, Bindings: group})
	}
	tableKeys := m.table.KeyMap().FullHelp()
	sections = append(sections,
		components.HelpDialogSection{Title: "Table", Bindings: tableKeys[0]},
		components.HelpDialogSection{Title: "Keys", Bindings: tableKeys[1]},
	)
	return components.NewHelpDialog(sections...)
}
