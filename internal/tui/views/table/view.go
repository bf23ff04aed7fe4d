package table

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/colonyops/reswed/internal/core/logging"
	"github.com/colonyops/reswed/internal/core/notify"
	"github.com/colonyops/reswed/internal/core/styles"
	"github.com/colonyops/reswed/internal/core/suggest"
	"github.com/colonyops/reswed/internal/core/workspace"
	"github.com/colonyops/reswed/internal/reswed"
	"github.com/colonyops/reswed/internal/tui/components"
)

const (
	addKeyPrompt    = "Please provide a key:"
	renameKeyPrompt = "Please provide a new key:"

	maxKeyWidth  = 32
	minLangWidth = 12
	statusWidth  = 2
	editorHeight = 4
)

type mode int

const (
	modeNormal mode = iota
	modeEditing
	modePrompt
	modeConfirm
	modeSuggest
)

type promptKind int

const (
	promptAdd promptKind = iota
	promptRename
)

type reloadedMsg struct {
	err error
}

// View is the Bubble Tea sub-model for the key table.
type View struct {
	ctx  context.Context
	app  *reswed.App
	ctrl *Controller
	keys KeyMap
	log  zerolog.Logger

	mode mode

	editor   textarea.Model
	editCell cell

	prompt     components.PromptModal
	promptKind promptKind
	promptKey  string

	confirm    components.ConfirmModal
	confirmKey string

	selector components.SuggestionSelector

	width  int
	height int
}

// New creates a table view over the app's editor.
func New(ctx context.Context, app *reswed.App) View {
	v := View{
		ctx:  ctx,
		app:  app,
		ctrl: NewController(),
		keys: DefaultKeyMap(),
		log:  logging.Component("tui.table"),
	}
	v.Refresh()
	return v
}

// Refresh re-reads the editor snapshot. Dialogs and the inline editor
// belong to the previous file and are closed when the open file changed.
func (v *View) Refresh() {
	snap := v.app.Editor.Snapshot()
	if snap.Filename != v.ctrl.Snapshot().Filename {
		v.closeDialogs()
	}
	v.ctrl.SetSnapshot(snap)
	v.ctrl.SetSize(v.visibleLines())
}

func (v *View) closeDialogs() {
	if v.mode == modeEditing {
		v.editor.Blur()
	}
	v.mode = modeNormal
	v.selector = components.SuggestionSelector{}
}

// Controller exposes the table state.
func (v View) Controller() *Controller {
	return v.ctrl
}

// KeyMap returns the table bindings for help rendering.
func (v View) KeyMap() KeyMap {
	return v.keys
}

// SetSize updates the view dimensions.
func (v *View) SetSize(width, height int) {
	v.width = width
	v.height = height
	if v.mode == modeEditing {
		v.editor.SetWidth(max(width-4, 10))
	}
	v.ctrl.SetSize(v.visibleLines())
}

// HasEditorFocus reports whether the view is consuming raw key input, so
// global bindings must not fire.
func (v View) HasEditorFocus() bool {
	return v.mode != modeNormal || v.ctrl.IsFiltering()
}

// Update handles messages for the table view.
func (v View) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case textUpdatedMsg:
		return v.handleTextUpdated(msg)
	case keyAddedMsg:
		return v.handleKeyAdded(msg)
	case keyRemovedMsg:
		return v.handleKeyRemoved(msg)
	case keyRenamedMsg:
		return v.handleKeyRenamed(msg)
	case suggestionMsg:
		return v.handleSuggestion(msg)
	case suggestionsAppliedMsg:
		return v.handleSuggestionsApplied(msg)
	case keyCopiedMsg:
		return v.handleKeyCopied(msg)
	case reloadedMsg:
		v.Refresh()
		if msg.err != nil {
			return v, notifyCmd(notify.Errorf("reload: %v", msg.err))
		}
		return v, nil
	case components.SuggestionSelectedMsg:
		v.ctrl.SetEditing(msg.Entry.Lang, msg.Key, true)
		return v, applySuggestion(v.ctx, v.app, msg.File, msg.Key, msg.Entry)
	case components.SuggestionsAllSelectedMsg:
		v.mode = modeNormal
		for _, e := range msg.Suggestion.Entries {
			v.ctrl.SetEditing(e.Lang, msg.Suggestion.Key, true)
		}
		return v, applyAllSuggestions(v.ctx, v.app, msg.Suggestion)
	case components.SuggestionsClosedMsg:
		v.mode = modeNormal
		return v, nil
	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	// Cursor blink and other internal messages of the focused input.
	var cmd tea.Cmd
	switch v.mode {
	case modeEditing:
		v.editor, cmd = v.editor.Update(msg)
	case modePrompt:
		v.prompt, cmd = v.prompt.Update(msg)
	}
	return v, cmd
}

func (v View) handleKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch v.mode {
	case modeEditing:
		return v.handleEditingKey(msg)
	case modePrompt:
		return v.handlePromptKey(msg)
	case modeConfirm:
		return v.handleConfirmKey(msg)
	case modeSuggest:
		var cmd tea.Cmd
		v.selector, cmd = v.selector.Update(msg)
		return v, cmd
	}

	if v.ctrl.IsFiltering() {
		return v.handleFilterKey(msg)
	}
	return v.handleNormalKey(msg)
}

func (v View) handleFilterKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.ctrl.CancelFilter()
	case "enter":
		v.ctrl.ConfirmFilter()
	case "backspace":
		v.ctrl.DeleteFilterRune()
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			for _, r := range msg.Runes {
				v.ctrl.AddFilterRune(r)
			}
		}
	}
	v.ctrl.SetSize(v.visibleLines())
	return v, nil
}

func (v View) handleNormalKey(msg tea.KeyMsg) (View, tea.Cmd) {
	if v.ctrl.Snapshot().Empty() {
		return v, nil
	}
	if key.Matches(msg, v.keys.Add) {
		v.openPrompt(promptAdd, addKeyPrompt, "")
		return v, nil
	}

	switch {
	case key.Matches(msg, v.keys.Up):
		v.ctrl.MoveUp(v.visibleLines())
		return v, nil
	case key.Matches(msg, v.keys.Down):
		v.ctrl.MoveDown(v.visibleLines())
		return v, nil
	case key.Matches(msg, v.keys.Left):
		v.ctrl.MoveLeft()
		return v, nil
	case key.Matches(msg, v.keys.Right):
		v.ctrl.MoveRight()
		return v, nil
	case key.Matches(msg, v.keys.Top):
		v.ctrl.Top(v.visibleLines())
		return v, nil
	case key.Matches(msg, v.keys.Bottom):
		v.ctrl.Bottom(v.visibleLines())
		return v, nil
	case key.Matches(msg, v.keys.Filter):
		v.ctrl.StartFilter()
		v.ctrl.SetSize(v.visibleLines())
		return v, nil
	case key.Matches(msg, v.keys.Reload):
		app, ctx := v.app, v.ctx
		return v, func() tea.Msg { return reloadedMsg{err: app.Editor.Reload(ctx)} }
	}

	k, ok := v.ctrl.SelectedKey()
	if !ok {
		return v, nil
	}

	switch {
	case key.Matches(msg, v.keys.Edit):
		lang, ok := v.ctrl.SelectedLang()
		if !ok || v.ctrl.Editing(lang, k) {
			return v, nil
		}
		return v.startEditing(lang, k)
	case key.Matches(msg, v.keys.Remove):
		if v.ctrl.Removing(k) {
			return v, nil
		}
		v.confirm = components.NewConfirmModal(fmt.Sprintf("You are going to remove %q", k))
		v.confirmKey = k
		v.mode = modeConfirm
		return v, nil
	case key.Matches(msg, v.keys.Suggest):
		if v.ctrl.Suggesting(k) {
			return v, nil
		}
		v.ctrl.SetSuggesting(k, true)
		return v, fetchSuggestion(v.ctx, v.app, v.ctrl.Snapshot().Filename, k)
	case key.Matches(msg, v.keys.Copy):
		return v, copyKey(v.ctx, v.app, k)
	case key.Matches(msg, v.keys.Rename):
		v.openPrompt(promptRename, renameKeyPrompt, "")
		v.promptKey = k
		return v, nil
	}

	return v, nil
}

func (v *View) openPrompt(kind promptKind, title, initial string) {
	v.prompt = components.NewPromptModal(title, initial, min(v.width-10, 60))
	v.promptKind = kind
	v.promptKey = ""
	v.mode = modePrompt
}

func (v View) startEditing(lang, k string) (View, tea.Cmd) {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(max(v.width-4, 10))
	ta.SetHeight(editorHeight)
	ta.SetValue(v.ctrl.Snapshot().Value(lang, k))

	v.editor = ta
	v.editCell = cell{lang: lang, key: k}
	v.mode = modeEditing
	v.ctrl.SetSize(v.visibleLines())
	cmd := v.editor.Focus()
	return v, cmd
}

// handleEditingKey leaves the textarea on esc, tab or ctrl+s. Leaving it
// always writes the trimmed value, the same as losing focus.
func (v View) handleEditingKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "esc", "tab", "ctrl+s":
		v.editor.Blur()
		v.mode = modeNormal
		v.ctrl.SetSize(v.visibleLines())

		c := v.editCell
		text := strings.TrimSpace(v.editor.Value())
		v.ctrl.SetEditing(c.lang, c.key, true)
		return v, updateText(v.ctx, v.app, c.lang, c.key, text)
	}

	var cmd tea.Cmd
	v.editor, cmd = v.editor.Update(msg)
	return v, cmd
}

func (v View) handlePromptKey(msg tea.KeyMsg) (View, tea.Cmd) {
	var cmd tea.Cmd
	v.prompt, cmd = v.prompt.Update(msg)

	switch {
	case v.prompt.Cancelled():
		v.mode = modeNormal
		return v, nil
	case v.prompt.Submitted():
		v.mode = modeNormal
		value := v.prompt.Value()
		if value == "" {
			return v, nil
		}
		if v.promptKind == promptRename {
			return v, renameKey(v.ctx, v.app, v.promptKey, value)
		}
		return v, addKey(v.ctx, v.app, value)
	}
	return v, cmd
}

func (v View) handleConfirmKey(msg tea.KeyMsg) (View, tea.Cmd) {
	v.confirm, _ = v.confirm.Update(msg)

	switch {
	case v.confirm.Cancelled():
		v.mode = modeNormal
	case v.confirm.Confirmed():
		v.mode = modeNormal
		v.ctrl.SetRemoving(v.confirmKey, true)
		return v, removeKey(v.ctx, v.app, v.confirmKey)
	}
	return v, nil
}

func (v View) handleTextUpdated(msg textUpdatedMsg) (View, tea.Cmd) {
	v.ctrl.SetEditing(msg.lang, msg.key, false)
	v.Refresh()
	if msg.err != nil {
		v.log.Error().Err(msg.err).Str("key", msg.key).Str("lang", msg.lang).Msg("update text")
		return v, notifyCmd(notify.Errorf("update %s (%s): %v", msg.key, msg.lang, msg.err))
	}
	return v, nil
}

func (v View) handleKeyAdded(msg keyAddedMsg) (View, tea.Cmd) {
	v.Refresh()
	if msg.err != nil {
		if errors.Is(msg.err, workspace.ErrKeyExists) || errors.Is(msg.err, workspace.ErrInvalidKey) {
			return v, notifyCmd(notify.Warnf("%v", msg.err))
		}
		return v, notifyCmd(notify.Errorf("%s: %v", msg.result.Summary(), msg.err))
	}
	v.selectKey(msg.key)
	return v, notifyCmd(notify.Infof("Added %s", msg.key))
}

func (v View) handleKeyRemoved(msg keyRemovedMsg) (View, tea.Cmd) {
	v.ctrl.SetRemoving(msg.key, false)
	v.Refresh()
	if msg.err != nil {
		v.log.Error().Err(msg.err).Str("key", msg.key).Msg("remove key")
		return v, notifyCmd(notify.Errorf("%s: %v", msg.result.Summary(), msg.err))
	}
	return v, notifyCmd(notify.Infof("Removed %s", msg.key))
}

func (v View) handleKeyRenamed(msg keyRenamedMsg) (View, tea.Cmd) {
	v.Refresh()
	switch {
	case errors.Is(msg.err, workspace.ErrKeyExists), errors.Is(msg.err, workspace.ErrInvalidKey):
		return v, notifyCmd(notify.Warnf("%v", msg.err))
	case msg.err != nil:
		return v, notifyCmd(notify.Errorf("%s: %v", msg.result.Summary(), msg.err))
	case len(msg.result.Applied()) == 0:
		return v, notifyCmd(notify.Warnf("%s was not found in any language", msg.oldKey))
	}
	v.selectKey(msg.newKey)
	return v, notifyCmd(notify.Infof("Renamed %s to %s", msg.oldKey, msg.newKey))
}

func (v View) handleSuggestion(msg suggestionMsg) (View, tea.Cmd) {
	v.ctrl.SetSuggesting(msg.key, false)

	switch {
	case errors.Is(msg.err, suggest.ErrDisabled):
		return v, notifyCmd(notify.Warnf("Suggestions are disabled, set suggest.provider in the config"))
	case errors.Is(msg.err, reswed.ErrNothingToTranslate):
		return v, notifyCmd(notify.Warnf("%s has no text to translate", msg.key))
	case msg.err != nil:
		v.log.Error().Err(msg.err).Str("key", msg.key).Msg("fetch suggestions")
		return v, notifyCmd(notify.Errorf("%v", msg.err))
	case msg.suggestion.Empty():
		return v, nil
	case msg.file != v.app.Editor.Filename():
		v.log.Debug().Str("file", msg.file).Str("key", msg.key).Msg("dropping suggestions for a closed file")
		return v, notifyCmd(notify.Infof("Suggestions for %s discarded, %s is no longer open", msg.key, msg.file))
	}

	if v.mode != modeNormal {
		return v, notifyCmd(notify.Infof("Suggestions for %s are ready, press g again", msg.key))
	}
	v.selector = components.NewSuggestionSelector(msg.suggestion, min(v.width-10, 80))
	v.mode = modeSuggest
	return v, nil
}

func (v View) handleSuggestionsApplied(msg suggestionsAppliedMsg) (View, tea.Cmd) {
	for _, lang := range v.ctrl.Snapshot().Languages {
		v.ctrl.SetEditing(lang, msg.key, false)
	}
	v.Refresh()
	if msg.err != nil {
		return v, notifyCmd(notify.Errorf("%v", msg.err))
	}
	return v, notifyCmd(notify.Infof("Applied suggestions for %s", msg.key))
}

func (v View) handleKeyCopied(msg keyCopiedMsg) (View, tea.Cmd) {
	if msg.err != nil {
		// Already logged by the app; clipboard failures are not surfaced.
		return v, nil
	}
	return v, notifyCmd(notify.Infof("Copied %s", msg.fullKey))
}

func (v *View) selectKey(k string) {
	for i, key := range v.ctrl.Keys() {
		if key == k {
			for v.ctrl.Row() < i {
				v.ctrl.MoveDown(v.visibleLines())
			}
			for v.ctrl.Row() > i {
				v.ctrl.MoveUp(v.visibleLines())
			}
			return
		}
	}
}

func (v View) visibleLines() int {
	reserved := 5 // title, action bar and header with margins
	if v.ctrl.IsFiltering() || v.ctrl.Filter() != "" {
		reserved++
	}
	if v.mode == modeEditing {
		reserved += editorHeight + 3
	}
	return max(v.height-reserved, 1)
}

// View renders the table.
func (v View) View() string {
	snap := v.ctrl.Snapshot()
	if snap.Empty() {
		return styles.PlaceholderStyle.Render(
			styles.TitleStyle.Render("F-word to Resw.") + "\n" + "Please select a file first.")
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(styles.IconFile + " " + snap.Filename))
	b.WriteString("\n")
	b.WriteString(v.renderActionBar())
	b.WriteString("\n")

	if v.ctrl.IsFiltering() {
		b.WriteString(styles.ActionKeyStyle.Render("Filter: ") + v.ctrl.Filter() + "▎\n")
	} else if v.ctrl.Filter() != "" {
		b.WriteString(styles.MutedStyle.Render("Filter: "+v.ctrl.Filter()) + "\n")
	}

	b.WriteString(v.renderTable())

	if v.mode == modeEditing {
		title := fmt.Sprintf("Editing %s [%s]  esc/tab/ctrl+s save", v.editCell.key, v.editCell.lang)
		b.WriteString("\n\n")
		b.WriteString(styles.MutedStyle.Render(title))
		b.WriteString("\n")
		b.WriteString(styles.TableEditingStyle.Render(v.editor.View()))
	}

	return b.String()
}

// Overlay renders the active dialog over background, if any.
func (v View) Overlay(background string, width, height int) string {
	switch v.mode {
	case modePrompt:
		return components.Center(v.prompt.View(), width, height)
	case modeConfirm:
		return components.Center(v.confirm.View(), width, height)
	case modeSuggest:
		return components.Center(v.selector.View(), width, height)
	}
	return background
}

func (v View) renderActionBar() string {
	var parts []string
	for _, b := range v.keys.ShortHelp() {
		parts = append(parts, styles.ActionKeyStyle.Render(b.Help().Key)+" "+b.Help().Desc)
	}
	return styles.ActionBarStyle.Render(strings.Join(parts, "  "))
}

func (v View) columnWidths() (int, int) {
	snap := v.ctrl.Snapshot()

	keyWidth := 3
	for _, k := range snap.Keys {
		keyWidth = max(keyWidth, lipgloss.Width(k))
	}
	keyWidth = min(keyWidth, maxKeyWidth)

	n := max(len(snap.Languages), 1)
	// Each styled cell adds two cells of padding.
	avail := v.width - statusWidth - keyWidth - 2 - 2*n
	return keyWidth, max(avail/n, minLangWidth)
}

func (v View) renderTable() string {
	snap := v.ctrl.Snapshot()
	keyWidth, langWidth := v.columnWidths()

	header := []string{
		components.Pad(statusWidth),
		styles.TableHeaderStyle.Render(components.Fit("Key", keyWidth)),
	}
	for _, lang := range snap.Languages {
		header = append(header, styles.TableHeaderStyle.Render(components.Fit(lang, langWidth)))
	}

	lines := []string{strings.Join(header, "")}

	keys := v.ctrl.Keys()
	if len(keys) == 0 {
		lines = append(lines, styles.MutedStyle.Render("  no keys"))
		return strings.Join(lines, "\n")
	}

	end := min(v.ctrl.Offset()+v.visibleLines(), len(keys))
	for i := v.ctrl.Offset(); i < end; i++ {
		lines = append(lines, v.renderRow(i, keys[i], keyWidth, langWidth))
	}
	return strings.Join(lines, "\n")
}

func (v View) renderRow(row int, k string, keyWidth, langWidth int) string {
	snap := v.ctrl.Snapshot()
	selected := row == v.ctrl.Row()

	status := components.Pad(statusWidth)
	switch {
	case v.ctrl.Removing(k):
		status = styles.ErrorStyle.Render(styles.IconCross) + " "
	case v.ctrl.Suggesting(k):
		status = styles.WarningStyle.Render(styles.IconBusy) + " "
	case selected:
		status = styles.ActionKeyStyle.Render(">") + " "
	}

	parts := []string{status, styles.TableKeyStyle.Render(components.Fit(k, keyWidth))}
	for col, lang := range snap.Languages {
		value := snap.Value(lang, k)
		text := components.Fit(components.FirstLine(value), langWidth)

		style := styles.TableCellStyle
		switch {
		case v.ctrl.Editing(lang, k):
			style = styles.TableBusyStyle
			text = components.Fit(styles.IconBusy+" "+components.FirstLine(value), langWidth)
		case selected && col == v.ctrl.Col():
			style = styles.TableCursorStyle
		case value == "":
			style = styles.TableEmptyStyle
			text = components.Fit("∅", langWidth)
		}
		parts = append(parts, style.Render(text))
	}
	return strings.Join(parts, "")
}
