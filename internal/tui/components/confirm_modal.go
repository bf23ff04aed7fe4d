package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/reswed/internal/core/styles"
)

// ConfirmModal is a yes/no confirmation dialog. Confirm is preselected;
// left/right or tab moves between the buttons.
type ConfirmModal struct {
	message   string
	selected  bool
	confirmed bool
	cancelled bool
}

// NewConfirmModal creates a new confirmation modal.
func NewConfirmModal(message string) ConfirmModal {
	return ConfirmModal{message: message, selected: true}
}

// Update handles input for the confirmation modal.
func (m ConfirmModal) Update(msg tea.Msg) (ConfirmModal, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		m.confirmed = true
	case "n", "N", "esc":
		m.cancelled = true
	case "left", "right", "h", "l", "tab":
		m.selected = !m.selected
	case "enter":
		if m.selected {
			m.confirmed = true
		} else {
			m.cancelled = true
		}
	}

	return m, nil
}

// View renders the confirmation modal.
func (m ConfirmModal) View() string {
	confirmBtn, cancelBtn := styles.ModalButtonStyle, styles.ModalButtonSelectedStyle
	if m.selected {
		confirmBtn, cancelBtn = styles.ModalButtonSelectedStyle, styles.ModalButtonStyle
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		confirmBtn.Render("Remove"), "  ", cancelBtn.Render("Cancel"))

	body := m.message + "\n\n" + buttons
	return Modal("Confirm", body, "←/→ select  enter confirm  y/n  esc cancel")
}

// Message returns the question being asked.
func (m ConfirmModal) Message() string {
	return m.message
}

// Confirmed returns true if user confirmed.
func (m ConfirmModal) Confirmed() bool {
	return m.confirmed
}

// Cancelled returns true if user cancelled.
func (m ConfirmModal) Cancelled() bool {
	return m.cancelled
}
