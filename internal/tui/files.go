package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/reswed/internal/core/styles"
	"github.com/colonyops/reswed/internal/reswed"
	"github.com/colonyops/reswed/internal/tui/components"
)

type fileOpenedMsg struct {
	file string
	err  error
}

type filesRefreshedMsg struct {
	err error
}

// FilePane lists the discovered resource files and opens the selected one.
type FilePane struct {
	ctx    context.Context
	app    *reswed.App
	keys   KeyMap
	files  []string
	cursor int
	width  int
	height int
}

// NewFilePane creates a pane over the app's workspace.
func NewFilePane(ctx context.Context, app *reswed.App, keys KeyMap) FilePane {
	p := FilePane{ctx: ctx, app: app, keys: keys}
	p.reload()
	return p
}

func (p *FilePane) reload() {
	selected := p.Selected()
	p.files = p.app.Workspace.Files()
	p.cursor = 0
	for i, f := range p.files {
		if f == selected {
			p.cursor = i
		}
	}
}

// Selected returns the file under the cursor.
func (p FilePane) Selected() string {
	if p.cursor < 0 || p.cursor >= len(p.files) {
		return ""
	}
	return p.files[p.cursor]
}

// SetSize updates the pane dimensions.
func (p *FilePane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Update handles messages for the pane.
func (p FilePane) Update(msg tea.Msg) (FilePane, tea.Cmd) {
	switch msg := msg.(type) {
	case filesRefreshedMsg:
		p.reload()
		return p, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
		case key.Matches(msg, p.keys.Down):
			if p.cursor < len(p.files)-1 {
				p.cursor++
			}
		case key.Matches(msg, p.keys.Open):
			if file := p.Selected(); file != "" {
				return p, openFile(p.ctx, p.app, file)
			}
		case key.Matches(msg, p.keys.Rescan):
			return p, refreshFiles(p.app)
		}
	}
	return p, nil
}

// View renders the file list. The open file is highlighted.
func (p FilePane) View(focused bool) string {
	open := p.app.Editor.Filename()
	inner := max(p.width-4, 8)

	lines := []string{styles.CommandHeaderStyle.Render("Files")}
	if len(p.files) == 0 {
		lines = append(lines, styles.MutedStyle.Render("no .resw files"))
	}

	for i, f := range p.files {
		name := components.Fit(styles.IconFile+" "+f, inner-2)
		prefix := "  "
		style := styles.FileItemStyle
		switch {
		case i == p.cursor && focused:
			prefix = "> "
			style = styles.FileCursorStyle
		case f == open:
			style = styles.FileActiveStyle
		}
		lines = append(lines, prefix+style.Render(name))
	}

	pane := styles.PaneStyle
	if focused {
		pane = styles.PaneFocusedStyle
	}
	return pane.Width(max(p.width-2, 10)).Height(max(p.height-2, 1)).Render(strings.Join(lines, "\n"))
}

func openFile(ctx context.Context, app *reswed.App, file string) tea.Cmd {
	return func() tea.Msg {
		return fileOpenedMsg{file: file, err: app.OpenFile(ctx, file)}
	}
}

func refreshFiles(app *reswed.App) tea.Cmd {
	return func() tea.Msg {
		return filesRefreshedMsg{err: app.Workspace.Refresh()}
	}
}
