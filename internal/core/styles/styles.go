// Package styles holds the color themes and lipgloss styles shared by the
// TUI and the CLI.
package styles

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	DividerStyle       lipgloss.Style
	SuccessStyle       lipgloss.Style
	WarningStyle       lipgloss.Style
	ErrorStyle         lipgloss.Style
	MutedStyle         lipgloss.Style

	// TUI layout.
	TitleStyle       lipgloss.Style
	PlaceholderStyle lipgloss.Style
	ActionBarStyle   lipgloss.Style
	ActionKeyStyle   lipgloss.Style
	StatusBarStyle   lipgloss.Style

	// File pane.
	PaneStyle        lipgloss.Style
	PaneFocusedStyle lipgloss.Style
	FileItemStyle    lipgloss.Style
	FileActiveStyle  lipgloss.Style
	FileCursorStyle  lipgloss.Style

	// Table.
	TableHeaderStyle  lipgloss.Style
	TableKeyStyle     lipgloss.Style
	TableCellStyle    lipgloss.Style
	TableCursorStyle  lipgloss.Style
	TableEmptyStyle   lipgloss.Style
	TableBusyStyle    lipgloss.Style
	TableEditingStyle lipgloss.Style

	// Modals.
	ModalStyle               lipgloss.Style
	ModalTitleStyle          lipgloss.Style
	ModalHelpStyle           lipgloss.Style
	ModalButtonStyle         lipgloss.Style
	ModalButtonSelectedStyle lipgloss.Style

	// Toasts.
	ToastInfoStyle    lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	CommandHeaderStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	DividerStyle = lipgloss.NewStyle().Foreground(p.Muted)
	SuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	WarningStyle = lipgloss.NewStyle().Foreground(p.Warning)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.Error)
	MutedStyle = lipgloss.NewStyle().Foreground(p.Muted)

	TitleStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true).
		MarginBottom(1)
	PlaceholderStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Italic(true).
		Padding(1, 2)
	ActionBarStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		MarginBottom(1)
	ActionKeyStyle = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Bold(true)
	StatusBarStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		MarginTop(1)

	PaneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Surface).
		Padding(0, 1)
	PaneFocusedStyle = PaneStyle.BorderForeground(p.Primary)
	FileItemStyle = lipgloss.NewStyle().Foreground(p.Foreground)
	FileActiveStyle = lipgloss.NewStyle().Foreground(p.Success).Bold(true)
	FileCursorStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)

	TableHeaderStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true).
		Padding(0, 1)
	TableKeyStyle = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Padding(0, 1)
	TableCellStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Padding(0, 1)
	TableCursorStyle = lipgloss.NewStyle().
		Foreground(p.Background).
		Background(p.Primary).
		Padding(0, 1)
	TableEmptyStyle = lipgloss.NewStyle().
		Foreground(p.Warning).
		Padding(0, 1)
	TableBusyStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Faint(true).
		Padding(0, 1)
	TableEditingStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(p.Warning)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Foreground)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		MarginTop(1)
	ModalButtonStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(p.Surface).
		Foreground(p.Muted)
	ModalButtonSelectedStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(p.Primary).
		Foreground(p.Background).
		Bold(true)

	toast := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	ToastInfoStyle = toast.BorderForeground(p.Primary).Foreground(p.Foreground)
	ToastWarningStyle = toast.BorderForeground(p.Warning).Foreground(p.Warning)
	ToastErrorStyle = toast.BorderForeground(p.Error).Foreground(p.Error)
}

// UseTheme activates the named theme and reports whether it exists. Unknown
// names leave the default theme active.
func UseTheme(name string) bool {
	p, ok := GetPalette(name)
	if !ok {
		SetTheme(themes[DefaultTheme])
		return false
	}
	SetTheme(p)
	return true
}

// HuhTheme returns a huh form theme matching the active palette.
func HuhTheme() *huh.Theme {
	p := CurrentPalette
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.BorderForeground(p.Primary)
	t.Focused.Title = t.Focused.Title.Foreground(p.Primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(p.Muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(p.Error)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(p.Error)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(p.Secondary)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(p.Muted)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(p.Secondary)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(p.Background).Background(p.Primary)
	t.Focused.BlurredButton = t.Focused.BlurredButton.Foreground(p.Muted).Background(p.Surface)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())

	return t
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
