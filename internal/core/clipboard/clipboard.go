// Package clipboard copies resource keys to the system clipboard.
package clipboard

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/colonyops/reswed/pkg/executil"
)

// Writer places text on a clipboard.
type Writer interface {
	Write(ctx context.Context, text string) error
}

// System writes through the platform clipboard utilities.
type System struct{}

func (System) Write(_ context.Context, text string) error {
	return clipboard.WriteAll(text)
}

// Command pipes text into a user-configured shell command, e.g. `pbcopy`.
type Command struct {
	Cmd string
}

func (c Command) Write(ctx context.Context, text string) error {
	return executil.RunSh(ctx, "", c.Cmd, strings.NewReader(text))
}

// New returns a Command writer when copyCommand is set, otherwise System.
func New(copyCommand string) Writer {
	if strings.TrimSpace(copyCommand) != "" {
		return Command{Cmd: copyCommand}
	}
	return System{}
}

// Recorder keeps every written value in memory.
type Recorder struct {
	Err    error
	Copied []string
}

func (r *Recorder) Write(_ context.Context, text string) error {
	if r.Err != nil {
		return r.Err
	}
	r.Copied = append(r.Copied, text)
	return nil
}

// Last returns the most recent copied value.
func (r *Recorder) Last() string {
	if len(r.Copied) == 0 {
		return ""
	}
	return r.Copied[len(r.Copied)-1]
}
