package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/reswed/internal/core/suggest"
	"github.com/colonyops/reswed/pkg/tuitest"
)

func TestConfirmModal(t *testing.T) {
	tests := []struct {
		name      string
		keys      []tea.Msg
		confirmed bool
		cancelled bool
	}{
		{"y confirms", []tea.Msg{tuitest.KeyPress('y')}, true, false},
		{"n cancels", []tea.Msg{tuitest.KeyPress('n')}, false, true},
		{"esc cancels", []tea.Msg{tuitest.KeyEsc()}, false, true},
		{"enter confirms by default", []tea.Msg{tuitest.KeyEnter()}, true, false},
		{"tab then enter cancels", []tea.Msg{tuitest.KeyTab(), tuitest.KeyEnter()}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewConfirmModal(`You are going to remove "Title"`)
			for _, k := range tt.keys {
				m, _ = m.Update(k)
			}
			assert.Equal(t, tt.confirmed, m.Confirmed())
			assert.Equal(t, tt.cancelled, m.Cancelled())
		})
	}
}

func TestConfirmModal_View(t *testing.T) {
	view := tuitest.StripANSI(NewConfirmModal(`You are going to remove "Title"`).View())
	assert.Contains(t, view, `You are going to remove "Title"`)
	assert.Contains(t, view, "Remove")
	assert.Contains(t, view, "Cancel")
}

func TestPromptModal_SubmitTrims(t *testing.T) {
	m := NewPromptModal("Please provide a key:", "", 40)
	for _, k := range tuitest.Type("  Greeting ") {
		m, _ = m.Update(k)
	}
	m, _ = m.Update(tuitest.KeyEnter())

	assert.True(t, m.Submitted())
	assert.False(t, m.Cancelled())
	assert.Equal(t, "Greeting", m.Value())
	assert.Contains(t, tuitest.StripANSI(m.View()), "Please provide a key:")
}

func TestPromptModal_Cancel(t *testing.T) {
	m := NewPromptModal("Please provide a new key:", "Title", 40)
	m, _ = m.Update(tuitest.KeyEsc())

	assert.True(t, m.Cancelled())
	assert.False(t, m.Submitted())
	assert.Equal(t, "Title", m.Value())
}

func newSelector() SuggestionSelector {
	return NewSuggestionSelector(suggest.Suggestion{
		File: "Strings.resw",
		Key:  "Greeting",
		Entries: []suggest.Entry{
			{Lang: "en-US", Text: "Hello"},
			{Lang: "fr-FR", Text: "Bonjour"},
		},
	}, 60)
}

func TestSuggestionSelector_SelectOne(t *testing.T) {
	m := newSelector()
	m, _ = m.Update(tuitest.KeyDown())
	m, _ = m.Update(tuitest.KeyDown())
	assert.Equal(t, 1, m.Cursor(), "cursor stops at the last entry")

	_, cmd := m.Update(tuitest.KeyEnter())
	require.NotNil(t, cmd)
	assert.Equal(t, SuggestionSelectedMsg{
		File:  "Strings.resw",
		Key:   "Greeting",
		Entry: suggest.Entry{Lang: "fr-FR", Text: "Bonjour"},
	}, cmd())
}

func TestSuggestionSelector_SelectAll(t *testing.T) {
	m := newSelector()
	_, cmd := m.Update(tuitest.KeyPress('A'))
	require.NotNil(t, cmd)

	msg, ok := cmd().(SuggestionsAllSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, m.Suggestion(), msg.Suggestion)
}

func TestSuggestionSelector_Close(t *testing.T) {
	_, cmd := newSelector().Update(tuitest.KeyEsc())
	require.NotNil(t, cmd)
	assert.Equal(t, SuggestionsClosedMsg{}, cmd())
}

func TestSuggestionSelector_View(t *testing.T) {
	view := tuitest.StripANSI(newSelector().View())
	assert.Contains(t, view, "Suggestions for Greeting")
	assert.Contains(t, view, "> en-US  Hello")
	assert.Contains(t, view, "fr-FR  Bonjour")
}

func TestFit(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"abc", 5, "abc  "},
		{"abcdef", 4, "abc…"},
		{"abc", 0, ""},
		{"日本", 4, "日本"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Fit(tt.in, tt.width), tt.in)
	}
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "one", FirstLine("one"))
	assert.Equal(t, "one…", FirstLine("one\ntwo"))
}
