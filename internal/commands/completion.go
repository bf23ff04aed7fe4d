package commands

import (
	"context"
	"fmt"

	"github.com/colonyops/reswed/internal/reswed"
	"github.com/urfave/cli/v3"
)

// ResourceCompleter returns a ShellCompleteFunc that suggests resource file
// names for the first positional argument and keys of that file for the
// next one when withKeys is set.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func ResourceCompleter(app *reswed.App, withKeys bool) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		args := cmd.Args()
		if args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		w := cmd.Root().Writer
		switch {
		case args.Len() == 0:
			for _, f := range app.Workspace.Files() {
				_, _ = fmt.Fprintln(w, f)
			}
		case args.Len() == 1 && withKeys:
			if err := app.OpenFile(ctx, args.First()); err != nil {
				return
			}
			for _, k := range app.Editor.Keys() {
				_, _ = fmt.Fprintln(w, k)
			}
		}
	}
}
