package commands

import (
	"context"
	"errors"

	"github.com/colonyops/reswed/internal/core/config"
	"github.com/colonyops/reswed/internal/printer"
	"github.com/colonyops/reswed/pkg/iojson"
	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "reswed config validate [options]",
				Description: "Validates the configuration file, checking paths, the copy command, the base language and suggestion provider credentials.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

type validationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validationReport struct {
	Valid    bool                       `json:"valid"`
	Errors   []validationIssue          `json:"errors,omitempty"`
	Warnings []config.ValidationWarning `json:"warnings,omitempty"`
}

func buildReport(cfg *config.Config, configPath string) validationReport {
	report := validationReport{Valid: true, Warnings: cfg.Warnings()}

	err := cfg.ValidateDeep(configPath)
	if err == nil {
		return report
	}

	report.Valid = false
	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			report.Errors = append(report.Errors, validationIssue{Field: fe.Field, Message: fe.Err.Error()})
		}
		return report
	}

	report.Errors = append(report.Errors, validationIssue{Field: "config", Message: err.Error()})
	return report
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	report := buildReport(cmd.flags.Config, cmd.flags.ConfigPath)

	if cmd.format == "json" {
		if err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, report); err != nil {
			return err
		}
		if !report.Valid {
			return cli.Exit("", 1)
		}
		return nil
	}

	p := printer.Ctx(ctx)
	for _, w := range report.Warnings {
		p.Warnf("%s: %s", w.Category, w.Message)
		if w.Item != "" {
			p.Printf("  Item: %s", w.Item)
		}
	}
	for _, e := range report.Errors {
		p.Errorf("%s: %s", e.Field, e.Message)
	}

	p.Printf("")
	if report.Valid {
		p.Successf("Configuration is valid")
		return nil
	}

	p.Errorf("%d error(s) found", len(report.Errors))
	return cli.Exit("", 1)
}
