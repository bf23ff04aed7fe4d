package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/colonyops/reswed/internal/core/styles"
	"github.com/colonyops/reswed/internal/reswed"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// errCancelled is returned by prompts the user aborted.
var errCancelled = errors.New("cancelled")

// interactive reports whether stdin and stdout are both terminals.
func interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// requireArgs returns the first n positional arguments or a usage error.
func requireArgs(c *cli.Command, names ...string) ([]string, error) {
	args := c.Args().Slice()
	if len(args) < len(names) {
		return nil, fmt.Errorf("missing argument %s\n\nUsage: %s", strings.ToUpper(names[len(args)]), c.UsageText)
	}
	return args[:len(names)], nil
}

// openFile loads file into the app's editor.
func openFile(ctx context.Context, app *reswed.App, file string) error {
	if err := app.OpenFile(ctx, file); err != nil {
		return fmt.Errorf("open %s: %w", file, err)
	}
	return nil
}

// promptText asks for one line of text. A blank answer is returned as "".
func promptText(ctx context.Context, title string) (string, error) {
	var value string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Value(&value),
		),
	).WithTheme(styles.HuhTheme())

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", errCancelled
		}
		return "", err
	}
	return strings.TrimSpace(value), nil
}

// confirm asks a yes/no question, defaulting to no.
func confirm(ctx context.Context, title string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Remove").
				Negative("Cancel").
				Value(&ok),
		),
	).WithTheme(styles.HuhTheme())

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// RemovePrompt is the confirmation shown before removing key.
func RemovePrompt(key string) string {
	return fmt.Sprintf("You are going to remove %q", key)
}
