package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/reswed/internal/core/styles"
	"github.com/colonyops/reswed/internal/core/suggest"
)

// SuggestionSelectedMsg asks the owner to apply one suggested entry to Key
// of File.
type SuggestionSelectedMsg struct {
	File  string
	Key   string
	Entry suggest.Entry
}

// SuggestionsAllSelectedMsg asks the owner to apply every entry in order and
// close the selector.
type SuggestionsAllSelectedMsg struct {
	Suggestion suggest.Suggestion
}

// SuggestionsClosedMsg reports that the selector was dismissed.
type SuggestionsClosedMsg struct{}

// SuggestionSelector lists the suggested translations for one key. Selecting
// an entry keeps the dialog open; taking all of them closes it.
type SuggestionSelector struct {
	suggestion suggest.Suggestion
	cursor     int
	width      int
}

// NewSuggestionSelector creates a selector scoped to s.Key.
func NewSuggestionSelector(s suggest.Suggestion, width int) SuggestionSelector {
	return SuggestionSelector{suggestion: s, width: width}
}

// Key returns the key the suggestions belong to.
func (m SuggestionSelector) Key() string {
	return m.suggestion.Key
}

// Suggestion returns the suggestion set being shown.
func (m SuggestionSelector) Suggestion() suggest.Suggestion {
	return m.suggestion
}

// Cursor returns the highlighted entry index.
func (m SuggestionSelector) Cursor() int {
	return m.cursor
}

// Update handles input for the selector.
func (m SuggestionSelector) Update(msg tea.Msg) (SuggestionSelector, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.suggestion.Entries)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.suggestion.Entries) == 0 {
			return m, nil
		}
		sel := SuggestionSelectedMsg{
			File:  m.suggestion.File,
			Key:   m.suggestion.Key,
			Entry: m.suggestion.Entries[m.cursor],
		}
		return m, func() tea.Msg { return sel }
	case "A":
		all := SuggestionsAllSelectedMsg{Suggestion: m.suggestion}
		return m, func() tea.Msg { return all }
	case "esc", "q":
		return m, func() tea.Msg { return SuggestionsClosedMsg{} }
	}

	return m, nil
}

// View renders the selector.
func (m SuggestionSelector) View() string {
	langWidth := 0
	for _, e := range m.suggestion.Entries {
		langWidth = max(langWidth, len(e.Lang))
	}
	textWidth := max(m.width-langWidth-10, 20)

	var b strings.Builder
	for i, e := range m.suggestion.Entries {
		if i > 0 {
			b.WriteString("\n")
		}
		line := Fit(e.Lang, langWidth) + "  " + Fit(FirstLine(e.Text), textWidth)
		if i == m.cursor {
			b.WriteString(styles.TableCursorStyle.Render("> " + line))
		} else {
			b.WriteString(styles.TableCellStyle.Render("  " + line))
		}
	}

	return Modal("Suggestions for "+m.suggestion.Key, b.String(),
		"↑/↓ move  enter apply  A apply all  esc close")
}
