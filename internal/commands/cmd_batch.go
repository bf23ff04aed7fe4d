package commands

import (
	"context"
	"fmt"
	"slices"

	"github.com/colonyops/reswed/internal/core/validate"
	"github.com/colonyops/reswed/internal/reswed"
	"github.com/colonyops/reswed/pkg/iojson"
	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

type BatchCmd struct {
	flags *Flags
	app   *reswed.App
	fr    *iojson.FileReader[BatchInput]
}

func NewBatchCmd(flags *Flags, app *reswed.App) *BatchCmd {
	return &BatchCmd{
		flags: flags,
		app:   app,
		fr:    &iojson.FileReader[BatchInput]{},
	}
}

func (cmd *BatchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "batch",
		Usage: "Apply many text edits to one resource file from JSON input",
		UsageText: `reswed batch FILE [options]

Read from stdin:
  echo '{"edits":[{"lang":"fr-FR","key":"Title","text":"Titre"}]}' | reswed batch Resources.resw

Read from file:
  reswed batch Resources.resw -f edits.json`,
		Description: `Sets the text of many keys in one run. Edits are applied in order, one at a
time, exactly like 'reswed set'.

Processing stops after 3 failures. Edits not attempted are marked as skipped.

Input JSON schema:
  {
    "edits": [
      { "lang": "fr-FR", "key": "Title", "text": "Titre" }
    ]
  }

Output is JSON with the file and one result per edit.`,
		Flags:         []cli.Flag{cmd.fr.Flag()},
		ShellComplete: ResourceCompleter(cmd.app, false),
		Action:        cmd.run,
	})

	return app
}

func (cmd *BatchCmd) run(ctx context.Context, c *cli.Command) error {
	args, err := requireArgs(c, "file")
	if err != nil {
		return iojson.WriteError(err.Error(), nil)
	}
	file := args[0]

	input, err := cmd.fr.Read()
	if err != nil {
		return iojson.WriteError(fmt.Sprintf("read input: %s", err), nil)
	}

	if err := openFile(ctx, cmd.app, file); err != nil {
		return iojson.WriteError(err.Error(), map[string]any{"file": file})
	}

	if err := input.Validate(cmd.app.Editor.Languages()); err != nil {
		return iojson.WriteError(fmt.Sprintf("invalid input: %s", err), nil)
	}

	logger := log.With().Str("cmp", "batch").Str("file", file).Logger()
	output := BatchOutput{File: file, Results: make([]BatchResult, 0, len(input.Edits))}

	failures := 0
	for i, e := range input.Edits {
		if failures >= maxFailures {
			for _, rest := range input.Edits[i:] {
				output.Results = append(output.Results, BatchResult{Lang: rest.Lang, Key: rest.Key, Status: StatusSkipped})
			}
			logger.Warn().Int("skipped", len(input.Edits)-i).Msg("stopping batch after failure threshold")
			break
		}

		res := BatchResult{Lang: e.Lang, Key: e.Key, Status: StatusApplied}
		if err := cmd.app.Editor.UpdateText(ctx, e.Lang, e.Key, e.Text); err != nil {
			failures++
			res.Status = StatusFailed
			res.Error = err.Error()
			logger.Error().Err(err).Str("lang", e.Lang).Str("key", e.Key).Msg("edit failed")
		}
		output.Results = append(output.Results, res)
	}

	logger.Info().
		Int("total", len(input.Edits)).
		Int("applied", countByStatus(output.Results, StatusApplied)).
		Int("failed", countByStatus(output.Results, StatusFailed)).
		Int("skipped", countByStatus(output.Results, StatusSkipped)).
		Msg("batch complete")

	return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, output)
}

const (
	StatusApplied = "applied" // StatusApplied indicates the edit was written.
	StatusFailed  = "failed"  // StatusFailed indicates the edit failed.
	StatusSkipped = "skipped" // StatusSkipped indicates the edit was not attempted due to failure threshold.
	maxFailures   = 3         // maxFailures is the number of failures before stopping batch processing.
)

// BatchInput is the JSON input schema for batch edits.
type BatchInput struct {
	Edits []BatchEdit `json:"edits"`
}

// BatchEdit sets the text of one key in one language.
type BatchEdit struct {
	Lang string `json:"lang"`
	Key  string `json:"key"`
	Text string `json:"text"`
}

// Validate checks the input against the languages of the target file.
func (b BatchInput) Validate(langs []string) error {
	if len(b.Edits) == 0 {
		return criterio.NewFieldErrors("edits", fmt.Errorf("array is empty"))
	}

	var errs criterio.FieldErrorsBuilder
	seen := make(map[[2]string]bool)

	for i, e := range b.Edits {
		field := fmt.Sprintf("edits[%d]", i)

		if err := validate.Key(e.Key); err != nil {
			errs = errs.Append(field+".key", err)
			continue
		}

		if !slices.Contains(langs, e.Lang) {
			errs = errs.Append(field+".lang", fmt.Errorf("unknown language %q", e.Lang))
			continue
		}

		id := [2]string{e.Lang, e.Key}
		if seen[id] {
			errs = errs.Append(field, fmt.Errorf("duplicate edit of %s in %s", e.Key, e.Lang))
			continue
		}
		seen[id] = true
	}

	return errs.ToError()
}

// BatchOutput is the JSON output of the batch command.
type BatchOutput struct {
	File    string        `json:"file"`
	Results []BatchResult `json:"results"`
}

// BatchResult is the output for a single edit.
type BatchResult struct {
	Lang   string `json:"lang"`
	Key    string `json:"key"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func countByStatus(results []BatchResult, status string) int {
	n := 0
	for _, r := range results {
		if r.Status == status {
			n++
		}
	}
	return n
}
