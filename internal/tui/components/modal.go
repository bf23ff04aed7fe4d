// Package components provides the dialogs and layout helpers shared by the
// TUI views.
package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/reswed/internal/core/styles"
)

// Modal frames content as a titled dialog with a help line.
func Modal(title, body, help string) string {
	parts := []string{styles.ModalTitleStyle.Render(title)}
	if body != "" {
		parts = append(parts, "", body)
	}
	if help != "" {
		parts = append(parts, styles.ModalHelpStyle.Render(help))
	}
	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// Center places a rendered dialog in the middle of a width x height area.
// The background is replaced rather than composited.
func Center(dialog string, width, height int) string {
	if width <= 0 || height <= 0 {
		return dialog
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, dialog)
}
