package commands

import (
	"context"
	"fmt"

	"github.com/colonyops/reswed/internal/printer"
	"github.com/colonyops/reswed/internal/reswed"
	"github.com/urfave/cli/v3"
)

type CopyKeyCmd struct {
	flags *Flags
	app   *reswed.App
}

// NewCopyKeyCmd creates a new copy-key command
func NewCopyKeyCmd(flags *Flags, app *reswed.App) *CopyKeyCmd {
	return &CopyKeyCmd{flags: flags, app: app}
}

// Register adds the copy-key command to the application
func (cmd *CopyKeyCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "copy-key",
		Aliases:   []string{"yank"},
		Usage:     "Print and copy the full resource path of a key",
		UsageText: "reswed copy-key FILE KEY",
		Description: `Prints /File/KEY, the path used by ResourceLoader lookups, and copies it
to the clipboard. A clipboard failure is reported but does not fail the
command.`,
		ShellComplete: ResourceCompleter(cmd.app, true),
		Action:        cmd.run,
	})

	return app
}

func (cmd *CopyKeyCmd) run(ctx context.Context, c *cli.Command) error {
	args, err := requireArgs(c, "file", "key")
	if err != nil {
		return err
	}
	if err := openFile(ctx, cmd.app, args[0]); err != nil {
		return err
	}

	full, err := cmd.app.CopyKey(ctx, args[1])
	if full == "" {
		return err
	}
	if err != nil {
		printer.Ctx(ctx).Warnf("clipboard: %v", err)
	}

	_, _ = fmt.Fprintln(c.Root().Writer, full)
	return nil
}
