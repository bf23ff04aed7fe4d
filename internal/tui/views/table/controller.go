// Package table implements the key x language table of the open resource
// file.
package table

import (
	"strings"

	"github.com/colonyops/reswed/internal/core/workspace"
)

type cell struct {
	lang string
	key  string
}

// Controller holds the table's snapshot, cursor, filter and busy state.
// It contains pure data logic with no Bubble Tea dependencies.
type Controller struct {
	snap   workspace.Snapshot
	rows   []int // indices into snap.Keys matching the filter
	row    int
	col    int
	offset int

	filtering bool
	filter    string

	editing    map[cell]bool
	removing   map[string]bool
	suggesting map[string]bool
}

// NewController creates an empty controller.
func NewController() *Controller {
	return &Controller{
		editing:    make(map[cell]bool),
		removing:   make(map[string]bool),
		suggesting: make(map[string]bool),
	}
}

// SetSnapshot replaces the table contents. The cursor stays on the same key
// when it still exists.
func (c *Controller) SetSnapshot(snap workspace.Snapshot) {
	current, hadKey := c.SelectedKey()
	fileChanged := snap.Filename != c.snap.Filename

	c.snap = snap
	if fileChanged {
		c.row, c.col, c.offset = 0, 0, 0
		c.filter = ""
		c.filtering = false
	}
	c.applyFilter()

	if hadKey && !fileChanged {
		for i, idx := range c.rows {
			if c.snap.Keys[idx] == current {
				c.row = i
				break
			}
		}
	}
	if c.col >= len(c.snap.Languages) {
		c.col = max(len(c.snap.Languages)-1, 0)
	}
}

// Snapshot returns the snapshot being displayed.
func (c *Controller) Snapshot() workspace.Snapshot {
	return c.snap
}

// Keys returns the keys matching the filter, in document order.
func (c *Controller) Keys() []string {
	keys := make([]string, len(c.rows))
	for i, idx := range c.rows {
		keys[i] = c.snap.Keys[idx]
	}
	return keys
}

// SelectedKey returns the key under the cursor.
func (c *Controller) SelectedKey() (string, bool) {
	if c.row < 0 || c.row >= len(c.rows) {
		return "", false
	}
	return c.snap.Keys[c.rows[c.row]], true
}

// SelectedLang returns the language column under the cursor.
func (c *Controller) SelectedLang() (string, bool) {
	if c.col < 0 || c.col >= len(c.snap.Languages) {
		return "", false
	}
	return c.snap.Languages[c.col], true
}

// Row returns the cursor row among the filtered keys.
func (c *Controller) Row() int {
	return c.row
}

// Col returns the cursor's language column.
func (c *Controller) Col() int {
	return c.col
}

// Offset returns the first visible row.
func (c *Controller) Offset() int {
	return c.offset
}

// MoveUp moves the cursor up one row.
func (c *Controller) MoveUp(visible int) {
	if c.row > 0 {
		c.row--
		c.clampOffset(visible)
	}
}

// MoveDown moves the cursor down one row.
func (c *Controller) MoveDown(visible int) {
	if c.row < len(c.rows)-1 {
		c.row++
		c.clampOffset(visible)
	}
}

// MoveLeft moves the cursor to the previous language.
func (c *Controller) MoveLeft() {
	if c.col > 0 {
		c.col--
	}
}

// MoveRight moves the cursor to the next language.
func (c *Controller) MoveRight() {
	if c.col < len(c.snap.Languages)-1 {
		c.col++
	}
}

// Top moves the cursor to the first row.
func (c *Controller) Top(visible int) {
	c.row = 0
	c.clampOffset(visible)
}

// Bottom moves the cursor to the last row.
func (c *Controller) Bottom(visible int) {
	c.row = max(len(c.rows)-1, 0)
	c.clampOffset(visible)
}

// SetSize clamps the offset after a size change.
func (c *Controller) SetSize(visible int) {
	c.clampOffset(visible)
}

// StartFilter begins filter input mode.
func (c *Controller) StartFilter() {
	c.filtering = true
}

// ConfirmFilter keeps the filter and exits filter mode.
func (c *Controller) ConfirmFilter() {
	c.filtering = false
}

// CancelFilter exits filter mode and clears the filter.
func (c *Controller) CancelFilter() {
	c.filtering = false
	c.filter = ""
	c.applyFilter()
}

// IsFiltering returns true if filter input is active.
func (c *Controller) IsFiltering() bool {
	return c.filtering
}

// Filter returns the current filter text.
func (c *Controller) Filter() string {
	return c.filter
}

// AddFilterRune appends r to the filter.
func (c *Controller) AddFilterRune(r rune) {
	c.filter += string(r)
	c.applyFilter()
}

// DeleteFilterRune removes the last rune of the filter.
func (c *Controller) DeleteFilterRune() {
	runes := []rune(c.filter)
	if len(runes) == 0 {
		return
	}
	c.filter = string(runes[:len(runes)-1])
	c.applyFilter()
}

// SetEditing marks the cell of lang and key as being written.
func (c *Controller) SetEditing(lang, key string, busy bool) {
	setBusy(c.editing, cell{lang: lang, key: key}, busy)
}

// Editing reports whether the cell of lang and key is being written.
func (c *Controller) Editing(lang, key string) bool {
	return c.editing[cell{lang: lang, key: key}]
}

// SetRemoving marks key's remove control as busy.
func (c *Controller) SetRemoving(key string, busy bool) {
	setBusy(c.removing, key, busy)
}

// Removing reports whether key is being removed.
func (c *Controller) Removing(key string) bool {
	return c.removing[key]
}

// SetSuggesting marks key's suggest control as busy.
func (c *Controller) SetSuggesting(key string, busy bool) {
	setBusy(c.suggesting, key, busy)
}

// Suggesting reports whether suggestions for key are being fetched.
func (c *Controller) Suggesting(key string) bool {
	return c.suggesting[key]
}

func setBusy[K comparable](m map[K]bool, k K, busy bool) {
	if busy {
		m[k] = true
		return
	}
	delete(m, k)
}

func (c *Controller) applyFilter() {
	c.rows = c.rows[:0]
	filter := strings.ToLower(c.filter)

	for i, key := range c.snap.Keys {
		if filter == "" || c.matches(key, filter) {
			c.rows = append(c.rows, i)
		}
	}

	if c.row >= len(c.rows) {
		c.row = max(len(c.rows)-1, 0)
	}
}

func (c *Controller) matches(key, filter string) bool {
	if strings.Contains(strings.ToLower(key), filter) {
		return true
	}
	for _, lang := range c.snap.Languages {
		if strings.Contains(strings.ToLower(c.snap.Value(lang, key)), filter) {
			return true
		}
	}
	return false
}

func (c *Controller) clampOffset(visible int) {
	visible = max(visible, 1)

	if c.row < c.offset {
		c.offset = c.row
	} else if c.row >= c.offset+visible {
		c.offset = c.row - visible + 1
	}

	maxOffset := max(len(c.rows)-visible, 0)
	c.offset = min(max(c.offset, 0), maxOffset)
}
