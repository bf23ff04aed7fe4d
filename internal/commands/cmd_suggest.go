package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/colonyops/reswed/internal/core/suggest"
	"github.com/colonyops/reswed/internal/printer"
	"github.com/colonyops/reswed/internal/reswed"
	"github.com/colonyops/reswed/pkg/iojson"
	"github.com/urfave/cli/v3"
)

type SuggestCmd struct {
	flags *Flags
	app   *reswed.App

	// flags
	apply      bool
	jsonOutput bool
	clearCache bool
}

// NewSuggestCmd creates a new suggest command
func NewSuggestCmd(flags *Flags, app *reswed.App) *SuggestCmd {
	return &SuggestCmd{flags: flags, app: app}
}

// Register adds the suggest command to the application
func (cmd *SuggestCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "suggest",
		Usage:     "Ask the configured provider to translate a key",
		UsageText: "reswed suggest FILE KEY [--apply] [--json]\n   reswed suggest --clear-cache",
		Description: `Translates KEY from the first language that has text into every other
language of FILE using suggest.provider from the config. Answers are cached
for suggest.cache_ttl.

--apply writes every suggestion, one language at a time, in the order the
provider returned them.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "apply",
				Usage:       "apply all suggestions",
				Destination: &cmd.apply,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output the suggestion as JSON",
				Destination: &cmd.jsonOutput,
			},
			&cli.BoolFlag{
				Name:        "clear-cache",
				Usage:       "drop all cached suggestions",
				Destination: &cmd.clearCache,
			},
		},
		ShellComplete: ResourceCompleter(cmd.app, true),
		Action:        cmd.run,
	})

	return app
}

func (cmd *SuggestCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	if cmd.clearCache {
		n, err := cmd.app.Suggest.ClearCache(ctx)
		if err != nil {
			return fmt.Errorf("clear suggestion cache: %w", err)
		}
		p.Successf("Removed %d cached suggestion(s)", n)
		if c.Args().Len() == 0 {
			return nil
		}
	}

	args, err := requireArgs(c, "file", "key")
	if err != nil {
		return err
	}
	if err := openFile(ctx, cmd.app, args[0]); err != nil {
		return err
	}

	sugg, err := cmd.app.Suggest.Fetch(ctx, args[1])
	if err != nil {
		return err
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		if err := iojson.WriteWith(out, c.Root().ErrWriter, sugg); err != nil {
			return err
		}
	} else {
		printSuggestion(out, sugg)
	}

	if !cmd.apply {
		return nil
	}
	if err := cmd.app.Suggest.ApplyAll(ctx, sugg); err != nil {
		return err
	}
	p.Successf("Applied %d suggestion(s) to %s", len(sugg.Entries), sugg.Key)
	return nil
}

func printSuggestion(out io.Writer, s suggest.Suggestion) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "LANG\tSUGGESTION")
	for _, e := range s.Entries {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", e.Lang, e.Text)
	}
	_ = w.Flush()
}
