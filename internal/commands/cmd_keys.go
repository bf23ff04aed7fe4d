package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/x/ansi"
	"github.com/colonyops/reswed/internal/reswed"
	"github.com/colonyops/reswed/pkg/iojson"
	"github.com/urfave/cli/v3"
)

const keysCellWidth = 40

type KeysCmd struct {
	flags *Flags
	app   *reswed.App

	// flags
	jsonOutput bool
}

// NewKeysCmd creates a new keys command
func NewKeysCmd(flags *Flags, app *reswed.App) *KeysCmd {
	return &KeysCmd{flags: flags, app: app}
}

// Register adds the keys command to the application
func (cmd *KeysCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "keys",
		Usage:     "Show the key x language table of a resource file",
		UsageText: "reswed keys FILE [--json]",
		Description: `Prints one row per key with its text in every language. Long values are
truncated in table mode; --json prints full values.`,
		Flags: []cli.Flag{
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

type keyRow struct {
	Key    string            `json:"key"`
	Values map[string]string `json:"values"`
}

func (cmd *KeysCmd) run(ctx context.Context, c *cli.Command) error {
	args, err := requireArgs(c, "file")
	if err != nil {
		return err
	}
	if err := openFile(ctx, cmd.app, args[0]); err != nil {
		return err
	}

	snap := cmd.app.Editor.Snapshot()
	out := c.Root().Writer

	if len(snap.Keys) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "%s has no keys\n", snap.Filename)
		}
		return nil
	}

	if cmd.jsonOutput {
		for _, k := range snap.Keys {
			row := keyRow{Key: k, Values: make(map[string]string, len(snap.Languages))}
			for _, l := range snap.Languages {
				row.Values[l] = snap.Value(l, k)
			}
			if err := iojson.WriteLine(out, row); err != nil {
				return fmt.Errorf("encode key: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "KEY\t"+strings.Join(snap.Languages, "\t"))
	for _, k := range snap.Keys {
		cells := make([]string, 0, len(snap.Languages))
		for _, l := range snap.Languages {
			cells = append(cells, oneLine(snap.Value(l, k)))
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\n", k, strings.Join(cells, "\t"))
	}
	return w.Flush()
}

// oneLine flattens v for a table cell.
func oneLine(v string) string {
	v = strings.Join(strings.Fields(v), " ")
	if v == "" {
		return "-"
	}
	return ansi.Truncate(v, keysCellWidth, "…")
}
