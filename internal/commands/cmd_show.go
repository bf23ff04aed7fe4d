package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/colonyops/reswed/internal/core/styles"
	"github.com/colonyops/reswed/internal/reswed"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

type ShowCmd struct {
	flags *Flags
	app   *reswed.App

	// flags
	raw     bool
	history int
}

// NewShowCmd creates a new show command
func NewShowCmd(flags *Flags, app *reswed.App) *ShowCmd {
	return &ShowCmd{flags: flags, app: app}
}

// Register adds the show command to the application
func (cmd *ShowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "show",
		Usage:       "Show one key in every language",
		UsageText:   "reswed show FILE KEY [--raw] [--history N]",
		Description: "Renders the key, its full resource path, its text per language and recent changes as markdown.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "raw",
				Usage:       "print markdown without rendering",
				Destination: &cmd.raw,
			},
			&cli.IntFlag{
				Name:        "history",
				Usage:       "number of recent changes to include",
				Value:       5,
				Destination: &cmd.history,
			},
		},
		ShellComplete: ResourceCompleter(cmd.app, true),
		Action:        cmd.run,
	})

	return app
}

func (cmd *ShowCmd) run(ctx context.Context, c *cli.Command) error {
	args, err := requireArgs(c, "file", "key")
	if err != nil {
		return err
	}
	if err := openFile(ctx, cmd.app, args[0]); err != nil {
		return err
	}

	md, err := cmd.app.KeyMarkdown(ctx, args[1], cmd.history)
	if err != nil {
		return err
	}

	out := c.Root().Writer
	if cmd.raw || !term.IsTerminal(int(os.Stdout.Fd())) {
		_, err := fmt.Fprint(out, md)
		return err
	}

	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("create markdown renderer: %w", err)
	}

	rendered, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}
