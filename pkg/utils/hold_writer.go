// Package utils holds small helpers shared by commands.
package utils

import (
	"bytes"
	"io"
	"sync"
)

// HoldWriter forwards writes to an underlying writer except while held.
// Held writes are buffered and written out, in order, on Release.
// Safe for concurrent use.
type HoldWriter struct {
	mu   sync.Mutex
	w    io.Writer
	held bool
	buf  bytes.Buffer
}

// NewHoldWriter returns a HoldWriter forwarding to w.
func NewHoldWriter(w io.Writer) *HoldWriter {
	return &HoldWriter{w: w}
}

func (h *HoldWriter) Write(p []byte) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.held {
		return h.buf.Write(p)
	}
	return h.w.Write(p)
}

// Hold starts buffering writes.
func (h *HoldWriter) Hold() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.held = true
}

// Release stops buffering and writes everything buffered so far.
func (h *HoldWriter) Release() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.held = false
	if h.buf.Len() == 0 {
		return nil
	}
	_, err := h.buf.WriteTo(h.w)
	return err
}
