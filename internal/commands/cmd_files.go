package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/colonyops/reswed/internal/reswed"
	"github.com/colonyops/reswed/pkg/iojson"
	"github.com/urfave/cli/v3"
)

type FilesCmd struct {
	flags *Flags
	app   *reswed.App

	// flags
	jsonOutput bool
}

// NewFilesCmd creates a new files command
func NewFilesCmd(flags *Flags, app *reswed.App) *FilesCmd {
	return &FilesCmd{flags: flags, app: app}
}

// Register adds the files command to the application
func (cmd *FilesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "files",
		Aliases:   []string{"ls"},
		Usage:     "List resource files and their languages",
		UsageText: "reswed files [--json]",
		Description: `Lists every .resw file found under the resource root. Files with the same
name in different language directories are shown once with all languages.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

type fileInfo struct {
	File      string   `json:"file"`
	Languages []string `json:"languages"`
}

func (cmd *FilesCmd) run(_ context.Context, c *cli.Command) error {
	files := cmd.app.Workspace.Files()
	out := c.Root().Writer

	if len(files) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No resource files found under %s\n", cmd.app.Workspace.Root())
		}
		return nil
	}

	if cmd.jsonOutput {
		for _, f := range files {
			if err := iojson.WriteLine(out, fileInfo{File: f, Languages: cmd.app.Workspace.Languages(f)}); err != nil {
				return fmt.Errorf("encode file: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "FILE\tLANGUAGES")
	for _, f := range files {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", f, strings.Join(cmd.app.Workspace.Languages(f), ", "))
	}
	return w.Flush()
}
