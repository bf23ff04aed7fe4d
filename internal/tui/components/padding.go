package components

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Pad returns a string of n spaces.
func Pad(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

// Fit truncates s to width display cells, marking the cut with an
// ellipsis, and pads it with spaces to exactly width cells.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) > width {
		s = ansi.Truncate(s, width, "…")
	}
	return s + Pad(width-ansi.StringWidth(s))
}

// FirstLine returns the first line of s, marking dropped lines with an
// ellipsis.
func FirstLine(s string) string {
	line, _, more := strings.Cut(s, "\n")
	if more {
		return line + "…"
	}
	return line
}
