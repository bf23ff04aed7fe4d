// Package executil runs short-lived shell commands for reswed helpers.
package executil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const maxStderrLen = 500

// limitedWriter caps writes to a bytes.Buffer at a maximum byte count.
// Bytes beyond the limit are silently discarded.
type limitedWriter struct {
	buf *bytes.Buffer
	n   int64
	max int64
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	if w.n >= w.max {
		return len(p), nil
	}
	remaining := w.max - w.n
	origLen := len(p)
	if int64(origLen) > remaining {
		p = p[:remaining]
	}
	n, err := w.buf.Write(p)
	w.n += int64(n)
	if err != nil {
		return n, err
	}
	return origLen, nil
}

// RunSh executes cmd with `sh -c` in dir (empty means inherit cwd), feeding
// stdin when it is non-nil. Stdout is discarded.
//
// On failure, stderr is returned as the error message, capped at 500 bytes so
// ANSI-heavy output cannot corrupt the TUI. The *exec.ExitError stays wrapped.
func RunSh(ctx context.Context, dir, cmd string, stdin io.Reader) error {
	if strings.TrimSpace(cmd) == "" {
		return fmt.Errorf("empty command")
	}

	c := exec.CommandContext(ctx, "sh", "-c", cmd)
	if dir != "" {
		c.Dir = dir
	}
	if stdin != nil {
		c.Stdin = stdin
	}

	var buf bytes.Buffer
	c.Stdout = io.Discard
	c.Stderr = &limitedWriter{buf: &buf, max: maxStderrLen}
	if err := c.Run(); err != nil {
		msg := strings.TrimSpace(buf.String())
		if msg != "" {
			return fmt.Errorf("%s: %w", msg, err)
		}
		return err
	}
	return nil
}

// Lookup reports the resolved path of the first word of cmd.
func Lookup(cmd string) (string, error) {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return "", fmt.Errorf("empty command")
	}
	return exec.LookPath(fields[0])
}
