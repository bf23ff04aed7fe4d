package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/reswed/internal/reswed"
	"github.com/colonyops/reswed/internal/tui"
	"github.com/colonyops/reswed/pkg/profiler"
	"github.com/colonyops/reswed/pkg/utils"
)

type TuiCmd struct {
	flags  *Flags
	app    *reswed.App
	output *utils.HoldWriter
	build  tui.BuildInfo
}

// NewTuiCmd creates a new tui command. Writes to output are held while the
// TUI owns the terminal.
func NewTuiCmd(flags *Flags, app *reswed.App, output *utils.HoldWriter, build tui.BuildInfo) *TuiCmd {
	return &TuiCmd{
		flags:  flags,
		app:    app,
		output: output,
		build:  build,
	}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof HTTP endpoint on specified port (e.g., 6060)",
			Sources:     cli.EnvVars("RESWED_PROFILER_PORT"),
			Destination: &cmd.flags.ProfilerPort,
		},
	}
}

// Run executes the TUI, opening file first when it is not empty. Exported
// for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, file string) error {
	if cmd.flags.ProfilerPort > 0 {
		profServer := profiler.New(cmd.flags.ProfilerPort)
		if err := profServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := profServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
		log.Info().
			Str("url", fmt.Sprintf("http://%s/debug/pprof/", profServer.Addr())).
			Msg("profiler endpoint available")
	}

	opts := tui.Options{
		File:     file,
		Warnings: cmd.warnings(),
		Build:    cmd.build,
	}

	if cmd.output != nil {
		cmd.output.Hold()
		defer func() {
			if err := cmd.output.Release(); err != nil {
				log.Error().Err(err).Msg("failed to flush held output")
			}
		}()
	}

	p := tea.NewProgram(tui.New(ctx, cmd.app, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func (cmd *TuiCmd) warnings() []string {
	var warnings []string
	for _, w := range cmd.app.Config.Warnings() {
		warnings = append(warnings, w.Message)
	}
	if len(cmd.app.Workspace.Files()) == 0 {
		warnings = append(warnings, fmt.Sprintf("No .resw files found under %s", cmd.app.Workspace.Root()))
	}
	return warnings
}
