package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/reswed/internal/commands"
	"github.com/colonyops/reswed/internal/core/clipboard"
	"github.com/colonyops/reswed/internal/core/config"
	"github.com/colonyops/reswed/internal/core/logging"
	"github.com/colonyops/reswed/internal/core/styles"
	"github.com/colonyops/reswed/internal/core/suggest"
	"github.com/colonyops/reswed/internal/core/workspace"
	"github.com/colonyops/reswed/internal/data/db"
	"github.com/colonyops/reswed/internal/data/stores"
	"github.com/colonyops/reswed/internal/printer"
	"github.com/colonyops/reswed/internal/reswed"
	"github.com/colonyops/reswed/internal/reswed/sweep"
	"github.com/colonyops/reswed/internal/tui"
	"github.com/colonyops/reswed/pkg/logutils"
	"github.com/colonyops/reswed/pkg/utils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() falls back
	// to runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() tui.BuildInfo {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	if len(c) > 7 {
		c = c[:7]
	}
	return tui.BuildInfo{Version: v, Commit: c, Date: d}
}

// openDatabase opens the sqlite database, moving a corrupt file aside and
// starting fresh once.
func openDatabase(dataDir string, opts db.OpenOptions) (*db.DB, error) {
	database, err := db.Open(dataDir, opts)
	if err == nil || !stores.IsCorruptionError(err) {
		return database, err
	}

	log.Warn().Err(err).Str("dir", dataDir).Msg("database corrupted, recreating")
	if err := stores.RecoverFromCorruption(dataDir); err != nil {
		return nil, fmt.Errorf("recover database: %w", err)
	}
	return db.Open(dataDir, opts)
}

func main() {
	ctx := context.Background()

	var (
		logCloser   func()
		reswedApp   = &reswed.App{}
		database    *db.DB
		sweepCancel context.CancelFunc
		output      = utils.NewHoldWriter(os.Stderr)
		info        = build()
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "reswed",
		Usage:     "Edit Windows .resw localization resources",
		UsageText: "reswed [global options] [FILE] | command [command options]",
		Description: `reswed shows every key of a .resw resource file against every language it
is translated into, and edits them in place.

Run 'reswed' with no arguments to open the interactive editor, or
'reswed FILE' to open it on one resource file.
Run 'reswed keys FILE' to print the table instead.`,
		Version:               fmt.Sprintf("%s (%s) %s", info.Version, info.Commit, info.Date),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("RESWED_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/reswed.log)",
				Sources:     cli.EnvVars("RESWED_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("RESWED_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("RESWED_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "root",
				Aliases:     []string{"r"},
				Usage:       "directory holding the language folders (overrides config root)",
				Sources:     cli.EnvVars("RESWED_ROOT"),
				Destination: &flags.Root,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Always log to a file; the TUI owns the terminal.
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "reswed.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			projectDir := flags.Root
			if projectDir == "" {
				projectDir = "."
			}
			cfg, err := config.Load(flags.ConfigPath, flags.DataDir, filepath.Join(projectDir, config.ProjectFile))
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			if flags.Root != "" {
				cfg.Root = flags.Root
			}
			flags.Config = cfg

			// Unknown themes fall back to the default; reported as a warning.
			styles.UseTheme(cfg.TUI.Theme)

			opts := db.DefaultOpenOptions()
			opts.BusyTimeout = cfg.Database.BusyTimeout
			database, err = openDatabase(cfg.DataDir, opts)
			if err != nil {
				return ctx, fmt.Errorf("open database: %w", err)
			}

			kvStore := stores.NewKVStore(database)
			historyStore := stores.NewHistoryStore(database)

			sweepCtx, cancel := context.WithCancel(context.Background())
			sweepCancel = cancel
			go sweep.Start(sweepCtx, kvStore, 5*time.Minute)

			ws, err := workspace.Discover(cfg.Root, cfg.Pattern)
			if err != nil {
				return ctx, fmt.Errorf("discover resources: %w", err)
			}

			provider, err := suggest.New(ctx, cfg.Suggest.Options())
			if err != nil {
				return ctx, fmt.Errorf("create suggestion provider: %w", err)
			}
			suggester := provider
			if p := cfg.Suggest.Provider; p != "" && p != suggest.ProviderNone {
				suggester = suggest.NewCached(provider, kvStore, cfg.Suggest.CacheTTL)
			}

			editor := workspace.NewEditor(
				workspace.NewFSStore(ws),
				workspace.WithBaseLanguage(cfg.BaseLanguage),
				workspace.WithDefaultText(cfg.DefaultText),
				workspace.WithRecorder(historyStore),
			)

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*reswedApp = *reswed.NewApp(
				cfg,
				ws,
				editor,
				reswed.NewSuggestService(editor, suggester, cfg.Suggest.Timeout),
				historyStore,
				clipboard.New(cfg.CopyCommand),
				database,
				logging.Component("app"),
			)

			return printer.NewContext(ctx, printer.New(output)), nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if sweepCancel != nil {
				sweepCancel()
			}

			if database != nil {
				if err := database.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
					return err
				}
			}

			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, reswedApp, output, info)

	app = commands.NewFilesCmd(flags, reswedApp).Register(app)
	app = commands.NewKeysCmd(flags, reswedApp).Register(app)
	app = commands.NewEditCmd(flags, reswedApp).Register(app)
	app = commands.NewCopyKeyCmd(flags, reswedApp).Register(app)
	app = commands.NewSuggestCmd(flags, reswedApp).Register(app)
	app = commands.NewShowCmd(flags, reswedApp).Register(app)
	app = commands.NewHistoryCmd(flags, reswedApp).Register(app)
	app = commands.NewBatchCmd(flags, reswedApp).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)

	// Register TUI flags on root command
	app.Flags = append(app.Flags, tuiCmd.Flags()...)

	// The TUI is the default action; an optional argument names the file to open.
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 1 {
			return fmt.Errorf("unexpected arguments %v. Run 'reswed --help' for usage", c.Args().Tail())
		}
		return tuiCmd.Run(ctx, c.Args().First())
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
