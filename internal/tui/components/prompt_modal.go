package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// PromptModal asks for one line of text. The submitted value is trimmed;
// callers treat a blank value like a cancel.
type PromptModal struct {
	title     string
	input     textinput.Model
	submitted bool
	cancelled bool
}

// NewPromptModal creates a focused prompt with an optional initial value.
func NewPromptModal(title, initial string, width int) PromptModal {
	in := textinput.New()
	in.Prompt = "> "
	in.CharLimit = 256
	in.Width = max(width, 20)
	in.SetValue(initial)
	in.Focus()

	return PromptModal{title: title, input: in}
}

// Update handles input for the prompt.
func (m PromptModal) Update(msg tea.Msg) (PromptModal, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			m.submitted = true
			m.input.Blur()
			return m, nil
		case "esc":
			m.cancelled = true
			m.input.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt.
func (m PromptModal) View() string {
	return Modal(m.title, m.input.View(), "enter submit  esc cancel")
}

// Title returns the prompt's question.
func (m PromptModal) Title() string {
	return m.title
}

// Value returns the trimmed input.
func (m PromptModal) Value() string {
	return strings.TrimSpace(m.input.Value())
}

// Submitted returns true once enter was pressed.
func (m PromptModal) Submitted() bool {
	return m.submitted
}

// Cancelled returns true once esc was pressed.
func (m PromptModal) Cancelled() bool {
	return m.cancelled
}
