package tui

import (
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/reswed/internal/core/notify"
	"github.com/colonyops/reswed/internal/core/styles"
)

const (
	defaultToastTTL   = 5 * time.Second
	errorToastTTL     = 8 * time.Second
	defaultMaxToasts  = 5
	toastTickInterval = 100 * time.Millisecond
	toastWidth        = 50
)

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

type toast struct {
	notification notify.Notification
	remaining    time.Duration
	count        int
}

// Toasts manages the stack of active toast notifications: push, eviction,
// TTL countdown and dismissal. A notification equal to the newest toast
// refreshes it instead of stacking a duplicate.
type Toasts struct {
	toasts  []toast
	ticking bool
}

func NewToasts() *Toasts {
	return &Toasts{}
}

func ttlFor(level notify.Level) time.Duration {
	if level == notify.LevelError {
		return errorToastTTL
	}
	return defaultToastTTL
}

// Push adds n to the stack and returns the tick command when the countdown
// is not already running.
func (t *Toasts) Push(n notify.Notification) tea.Cmd {
	if last := len(t.toasts) - 1; last >= 0 &&
		t.toasts[last].notification.Level == n.Level &&
		t.toasts[last].notification.Message == n.Message {
		t.toasts[last].remaining = ttlFor(n.Level)
		t.toasts[last].count++
	} else {
		t.toasts = append(t.toasts, toast{notification: n, remaining: ttlFor(n.Level), count: 1})
		if len(t.toasts) > defaultMaxToasts {
			t.toasts = t.toasts[len(t.toasts)-defaultMaxToasts:]
		}
	}

	if t.ticking {
		return nil
	}
	t.ticking = true
	return scheduleToastTick()
}

// Tick decrements the remaining TTL of every toast by d, drops expired ones
// and returns the next tick command while toasts remain.
func (t *Toasts) Tick(d time.Duration) tea.Cmd {
	alive := t.toasts[:0]
	for _, ts := range t.toasts {
		ts.remaining -= d
		if ts.remaining > 0 {
			alive = append(alive, ts)
		}
	}
	t.toasts = alive

	if len(t.toasts) == 0 {
		t.ticking = false
		return nil
	}
	return scheduleToastTick()
}

// Dismiss removes the newest (bottom-most) toast.
func (t *Toasts) Dismiss() {
	if len(t.toasts) > 0 {
		t.toasts = t.toasts[:len(t.toasts)-1]
	}
}

// Len returns the number of active toasts.
func (t *Toasts) Len() int {
	return len(t.toasts)
}

// View renders the toast stack, oldest at top.
func (t *Toasts) View() string {
	if len(t.toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(t.toasts))
	for _, ts := range t.toasts {
		rendered = append(rendered, renderToast(ts))
	}
	return strings.Join(rendered, "\n")
}

func renderToast(t toast) string {
	var icon string
	var style lipgloss.Style

	switch t.notification.Level {
	case notify.LevelError:
		icon = styles.IconNotifyError
		style = styles.ToastErrorStyle
	case notify.LevelWarning:
		icon = styles.IconNotifyWarning
		style = styles.ToastWarningStyle
	default:
		icon = styles.IconNotifyInfo
		style = styles.ToastInfoStyle
	}

	content := icon + " " + t.notification.Message
	if t.count > 1 {
		content += styles.MutedStyle.Render(" x" + strconv.Itoa(t.count))
	}
	return style.Width(toastWidth).Render(content)
}

// Overlay draws the toast stack over the lower-right corner of background.
func (t *Toasts) Overlay(background string, width, height int) string {
	content := t.View()
	if content == "" {
		return background
	}

	bg := strings.Split(background, "\n")
	for len(bg) < height {
		bg = append(bg, "")
	}

	lines := strings.Split(content, "\n")
	x := max(width-lipgloss.Width(content)-1, 0)
	top := max(height-len(lines), 0)

	for i, line := range lines {
		row := top + i
		if row >= len(bg) {
			break
		}
		left := ansi.Truncate(bg[row], x, "")
		bg[row] = left + strings.Repeat(" ", max(x-ansi.StringWidth(left), 0)) + line
	}
	return strings.Join(bg, "\n")
}
