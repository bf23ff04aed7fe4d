package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/reswed/internal/core/styles"
)

// HelpDialogSection groups related bindings under a title.
type HelpDialogSection struct {
	Title    string
	Bindings []key.Binding
}

// HelpDialog displays all available keyboard shortcuts.
type HelpDialog struct {
	sections []HelpDialogSection
}

// NewHelpDialog creates a new help dialog with the given sections.
func NewHelpDialog(sections ...HelpDialogSection) HelpDialog {
	return HelpDialog{sections: sections}
}

// View renders the help dialog.
func (h HelpDialog) View() string {
	var lines []string
	for i, section := range h.sections {
		if i > 0 {
			lines = append(lines, "")
		}
		if section.Title != "" {
			lines = append(lines, styles.CommandHeaderStyle.Render(section.Title))
		}
		for _, b := range section.Bindings {
			if !b.Enabled() {
				continue
			}
			lines = append(lines, formatKeyDesc(b.Help().Key, b.Help().Desc))
		}
	}

	return Modal("Keyboard shortcuts", strings.Join(lines, "\n"), "esc/? close")
}

func formatKeyDesc(k, desc string) string {
	const keyWidth = 12
	padded := k + Pad(keyWidth-lipgloss.Width(k))
	return styles.ActionKeyStyle.Render(padded) + desc
}
