package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/colonyops/reswed/internal/core/history"
	"github.com/colonyops/reswed/internal/data/stores"
	"github.com/colonyops/reswed/internal/reswed"
	"github.com/colonyops/reswed/pkg/iojson"
	"github.com/urfave/cli/v3"
)

type HistoryCmd struct {
	flags *Flags
	app   *reswed.App

	// flags
	key        string
	limit      int
	jsonOutput bool
}

// NewHistoryCmd creates a new history command
func NewHistoryCmd(flags *Flags, app *reswed.App) *HistoryCmd {
	return &HistoryCmd{flags: flags, app: app}
}

// Register adds the history command to the application
func (cmd *HistoryCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "history",
		Usage:       "List recorded edits of a resource file",
		UsageText:   "reswed history FILE [--key KEY] [--limit N] [--json]",
		Description: "Lists changes made through reswed, newest first.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "key",
				Aliases:     []string{"k"},
				Usage:       "only show changes to this key",
				Destination: &cmd.key,
			},
			&cli.IntFlag{
				Name:        "limit",
				Aliases:     []string{"n"},
				Usage:       "maximum number of entries",
				Value:       stores.DefaultHistoryLimit,
				Destination: &cmd.limit,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		ShellComplete: ResourceCompleter(cmd.app, false),
		Action:        cmd.run,
	})

	return app
}

func (cmd *HistoryCmd) run(ctx context.Context, c *cli.Command) error {
	args, err := requireArgs(c, "file")
	if err != nil {
		return err
	}

	entries, err := cmd.app.ListHistory(ctx, history.Filter{File: args[0], Key: cmd.key, Limit: cmd.limit})
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}

	out := c.Root().Writer
	if len(entries) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No history for %s\n", args[0])
		}
		return nil
	}

	if cmd.jsonOutput {
		for _, e := range entries {
			if err := iojson.WriteLine(out, e); err != nil {
				return fmt.Errorf("encode entry: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "WHEN\tOP\tLANG\tKEY\tOLD\tNEW")
	for _, e := range entries {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.At.Local().Format("2006-01-02 15:04:05"), e.Op, e.Lang, e.Key, oneLine(e.Old), oneLine(e.New))
	}
	return w.Flush()
}
