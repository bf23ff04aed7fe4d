package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/reswed/internal/core/notify"
	"github.com/colonyops/reswed/internal/core/styles"
	"github.com/colonyops/reswed/pkg/tuitest"
)

func TestToasts_PushStartsTickingOnce(t *testing.T) {
	ts := NewToasts()

	assert.NotNil(t, ts.Push(notify.Infof("first")))
	assert.Nil(t, ts.Push(notify.Infof("second")), "tick already scheduled")
	assert.Equal(t, 2, ts.Len())
}

func TestToasts_EvictsOldestAtMax(t *testing.T) {
	ts := NewToasts()
	for i := range defaultMaxToasts + 2 {
		ts.Push(notify.Infof("toast %d", i))
	}

	assert.Equal(t, defaultMaxToasts, ts.Len())
	assert.Equal(t, "toast 2", ts.toasts[0].notification.Message)
}

func TestToasts_CollapsesDuplicates(t *testing.T) {
	ts := NewToasts()
	ts.Push(notify.Warnf("Suggestions are disabled"))
	ts.Tick(time.Second)
	ts.Push(notify.Warnf("Suggestions are disabled"))

	require.Equal(t, 1, ts.Len())
	assert.Equal(t, defaultToastTTL, ts.toasts[0].remaining, "duplicate refreshes the TTL")
	assert.Contains(t, tuitest.StripANSI(ts.View()), "x2")
}

func TestToasts_TickExpires(t *testing.T) {
	ts := NewToasts()
	ts.Push(notify.Infof("info"))
	ts.Push(notify.Errorf("error"))

	cmd := ts.Tick(defaultToastTTL)
	require.NotNil(t, cmd, "error toasts live longer")
	require.Equal(t, 1, ts.Len())
	assert.Equal(t, "error", ts.toasts[0].notification.Message)

	assert.Nil(t, ts.Tick(errorToastTTL))
	assert.Equal(t, 0, ts.Len())
	assert.NotNil(t, ts.Push(notify.Infof("again")), "ticking restarts after the stack empties")
}

func TestToasts_Dismiss(t *testing.T) {
	ts := NewToasts()
	ts.Dismiss()

	ts.Push(notify.Infof("first"))
	ts.Push(notify.Infof("second"))
	ts.Dismiss()

	require.Equal(t, 1, ts.Len())
	assert.Equal(t, "first", ts.toasts[0].notification.Message)
}

func TestToasts_ViewLevels(t *testing.T) {
	tests := []struct {
		n    notify.Notification
		icon string
	}{
		{notify.Errorf("boom"), styles.IconNotifyError},
		{notify.Warnf("boom"), styles.IconNotifyWarning},
		{notify.Infof("boom"), styles.IconNotifyInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.n.Level), func(t *testing.T) {
			ts := NewToasts()
			ts.Push(tt.n)

			out := ts.View()
			assert.Contains(t, out, tt.icon)
			assert.Contains(t, out, "boom")
		})
	}
}

func TestToasts_Overlay(t *testing.T) {
	ts := NewToasts()
	bg := strings.Repeat(strings.Repeat(".", 80)+"\n", 9) + strings.Repeat(".", 80)
	assert.Equal(t, bg, ts.Overlay(bg, 80, 10))

	ts.Push(notify.Infof("saved"))
	out := tuitest.StripANSI(ts.Overlay(bg, 80, 10))
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 10)
	assert.Equal(t, strings.Repeat(".", 80), lines[0])
	assert.Contains(t, lines[8], "saved")
	assert.True(t, strings.HasPrefix(lines[8], "....."), "background stays left of the toast")
}
