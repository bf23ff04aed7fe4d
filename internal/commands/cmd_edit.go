package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/colonyops/reswed/internal/core/workspace"
	"github.com/colonyops/reswed/internal/printer"
	"github.com/colonyops/reswed/internal/reswed"
	"github.com/urfave/cli/v3"
)

// EditCmd registers the commands that change keys: set, add, rm and rename.
type EditCmd struct {
	flags *Flags
	app   *reswed.App

	// flags
	yes bool
}

// NewEditCmd creates the key editing commands
func NewEditCmd(flags *Flags, app *reswed.App) *EditCmd {
	return &EditCmd{flags: flags, app: app}
}

// Register adds set, add, rm and rename to the application
func (cmd *EditCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:          "set",
			Usage:         "Set the text of a key in one language",
			UsageText:     "reswed set FILE LANG KEY TEXT",
			Description:   "Writes TEXT as the value of KEY in LANG. An empty TEXT is allowed.",
			ShellComplete: ResourceCompleter(cmd.app, false),
			Action:        cmd.runSet,
		},
		&cli.Command{
			Name:      "add",
			Usage:     "Add a key to every language",
			UsageText: "reswed add FILE [KEY]",
			Description: `Appends KEY with the default text to every language of FILE, one language
at a time. When KEY is omitted on a terminal you are prompted for it; an
empty answer does nothing.`,
			ShellComplete: ResourceCompleter(cmd.app, false),
			Action:        cmd.runAdd,
		},
		&cli.Command{
			Name:      "rm",
			Aliases:   []string{"remove"},
			Usage:     "Remove a key from every language",
			UsageText: "reswed rm FILE KEY [--yes]",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:        "yes",
					Aliases:     []string{"y"},
					Usage:       "skip the confirmation prompt",
					Destination: &cmd.yes,
				},
			},
			ShellComplete: ResourceCompleter(cmd.app, true),
			Action:        cmd.runRemove,
		},
		&cli.Command{
			Name:      "rename",
			Aliases:   []string{"mv"},
			Usage:     "Rename a key in every language",
			UsageText: "reswed rename FILE OLD [NEW]",
			Description: `Renames OLD to NEW in every language that has it. Every language is
written whether or not it had the key; languages without it are reported as
skipped. When NEW is omitted on a terminal you are prompted for it.`,
			ShellComplete: ResourceCompleter(cmd.app, true),
			Action:        cmd.runRename,
		},
	)

	return app
}

func (cmd *EditCmd) runSet(ctx context.Context, c *cli.Command) error {
	args, err := requireArgs(c, "file", "lang", "key", "text")
	if err != nil {
		return err
	}
	file, lang, key, text := args[0], args[1], args[2], args[3]

	if err := openFile(ctx, cmd.app, file); err != nil {
		return err
	}
	if err := cmd.app.Editor.UpdateText(ctx, lang, key, text); err != nil {
		return err
	}

	printer.Ctx(ctx).Successf("%s updated in %s", key, lang)
	return nil
}

func (cmd *EditCmd) runAdd(ctx context.Context, c *cli.Command) error {
	args, err := requireArgs(c, "file")
	if err != nil {
		return err
	}
	if err := openFile(ctx, cmd.app, args[0]); err != nil {
		return err
	}

	key := c.Args().Get(1)
	if key == "" && interactive() {
		key, err = promptText(ctx, "Please provide a key:")
		if err != nil && !errors.Is(err, errCancelled) {
			return err
		}
	}

	p := printer.Ctx(ctx)
	if key == "" {
		p.Infof("No key given, nothing to do")
		return nil
	}

	result, err := cmd.app.Editor.AddKey(ctx, key)
	reportBatch(p, result)
	return err
}

func (cmd *EditCmd) runRemove(ctx context.Context, c *cli.Command) error {
	args, err := requireArgs(c, "file", "key")
	if err != nil {
		return err
	}
	if err := openFile(ctx, cmd.app, args[0]); err != nil {
		return err
	}
	key := args[1]

	p := printer.Ctx(ctx)
	if !cmd.yes {
		if !interactive() {
			return fmt.Errorf("refusing to remove %q without confirmation; pass --yes", key)
		}
		ok, err := confirm(ctx, RemovePrompt(key))
		if err != nil {
			return err
		}
		if !ok {
			p.Infof("Kept %s", key)
			return nil
		}
	}

	result, err := cmd.app.Editor.RemoveKey(ctx, key)
	reportBatch(p, result)
	return err
}

func (cmd *EditCmd) runRename(ctx context.Context, c *cli.Command) error {
	args, err := requireArgs(c, "file", "old")
	if err != nil {
		return err
	}
	if err := openFile(ctx, cmd.app, args[0]); err != nil {
		return err
	}
	oldKey := args[1]

	newKey := c.Args().Get(2)
	if newKey == "" && interactive() {
		newKey, err = promptText(ctx, "Please provide a new key:")
		if err != nil && !errors.Is(err, errCancelled) {
			return err
		}
	}

	p := printer.Ctx(ctx)
	if newKey == "" {
		p.Infof("No new key given, nothing to do")
		return nil
	}

	result, err := cmd.app.Editor.RenameKey(ctx, oldKey, newKey)
	reportBatch(p, result)
	if err == nil && len(result.Langs) > 0 && len(result.Applied()) == 0 {
		p.Warnf("%s was not found in any language", oldKey)
	}
	return err
}

// reportBatch prints one line per language of a multi-language command.
func reportBatch(p *printer.Printer, r workspace.BatchResult) {
	for _, l := range r.Langs {
		switch l.Status {
		case workspace.StatusApplied:
			p.Successf("%s %s: %s", r.Op, r.Key, l.Lang)
		case workspace.StatusSkipped:
			p.Warnf("%s %s: %s skipped (%v)", r.Op, r.Key, l.Lang, l.Err)
		case workspace.StatusFailed:
			p.Errorf("%s %s: %s failed: %v", r.Op, r.Key, l.Lang, l.Err)
		}
	}
}
