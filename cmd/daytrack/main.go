package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/julianstephens/daytrack/internal/cli"
	"github.com/julianstephens/daytrack/internal/cli/backups"
	"github.com/julianstephens/daytrack/internal/cli/system"
	"github.com/julianstephens/daytrack/internal/cli/tasks"
	"github.com/julianstephens/daytrack/internal/cli/views"
	"github.com/julianstephens/daytrack/internal/constants"
	"github.com/julianstephens/daytrack/internal/errors"
	"github.com/julianstephens/daytrack/internal/lock"
	"github.com/julianstephens/daytrack/internal/logger"
	"github.com/julianstephens/daytrack/internal/storage"
	"github.com/julianstephens/daytrack/internal/tracker"
	"github.com/julianstephens/daytrack/internal/utils"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Store location: a SQLite path, a .json path, :memory:, 'keyring', a PostgreSQL connection string without a password, or a neo4j:// URI." type:"string" default:"${default_config}" env:"DAYTRACK_CONFIG"`
	Timezone string `help:"IANA timezone that decides where a day starts. Defaults to the local zone." env:"DAYTRACK_TIMEZONE"`
	Debug    bool   `help:"Enable debug logging to stderr." env:"DAYTRACK_DEBUG"`

	Init    system.InitCmd    `cmd:"" help:"Initialize daytrack storage."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Today   views.TodayCmd    `cmd:"" help:"Show today's tasks."`
	Day     views.DayCmd      `cmd:"" help:"Show one-time tasks for a day."`
	History views.HistoryCmd  `cmd:"" help:"Show completion history grouped by day."`
	Serve   system.ServeCmd   `cmd:"" help:"Serve the HTTP API."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Export  system.ExportCmd  `cmd:"" help:"Export all data as JSON or YAML."`
	Import  system.ImportCmd  `cmd:"" help:"Replace all data with a JSON or YAML export."`
	Task    struct {
		Add    tasks.TaskAddCmd    `cmd:"" help:"Add a new task."`
		Toggle tasks.TaskToggleCmd `cmd:"" help:"Toggle a task's completion."`
		Show   tasks.TaskShowCmd   `cmd:"" help:"Show a task and its description."`
	} `cmd:"" help:"Manage tasks."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage backups of file-based stores."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
	} `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

func parserOptions() []kong.Option {
	return []kong.Option{
		kong.Name(constants.AppName),
		kong.Description("Daily task tracker with recurring tasks and completion history"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
			"api_addr":       constants.DefaultAPIAddr,
		},
	}
}

func main() {
	os.Exit(run())
}

// run returns the exit code so deferred cleanup, like releasing the lock,
// happens before the process exits.
func run() int {
	ctx := kong.Parse(&CLI, parserOptions()...)

	command := ctx.Command()

	// Keyring commands never touch the store
	if strings.HasPrefix(command, "keyring") {
		logger.UseWriter(os.Stderr, logLevel())
		return report(command, ctx.Run(&cli.Context{}))
	}

	store, err := cli.OpenStore(CLI.Config)
	if err != nil {
		logger.UseWriter(os.Stderr, logLevel())
		return report(command, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("Failed to close store", "error", err)
		}
	}()

	dir, err := configDir(store)
	if err != nil {
		return report(command, err)
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: dir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize file logging: %v\n", err)
		logger.UseWriter(os.Stderr, logLevel())
	}
	defer logger.Close()

	loc, err := utils.LoadLocation(CLI.Timezone)
	if err != nil {
		return report(command, fmt.Errorf("unknown timezone %q: %w", CLI.Timezone, err))
	}

	// One process at a time per file store; doctor only reads
	if cli.IsFileStore(store) && command != "doctor" {
		l, err := lock.Acquire(dir)
		if err != nil {
			return report(command, err)
		}
		defer func() {
			if err := l.Release(); err != nil {
				logger.Warn("Failed to release lock", "error", err)
			}
		}()
	}

	appCtx := &cli.Context{
		Store:    store,
		Tracker:  tracker.New(store, tracker.WithLocation(loc)),
		Location: loc,
	}
	return report(command, ctx.Run(appCtx))
}

func report(command string, err error) int {
	return errors.Report(os.Stderr, command, err)
}

func logLevel() log.Level {
	if CLI.Debug {
		return log.DebugLevel
	}
	return log.WarnLevel
}

// configDir is where logs, locks and backups live: next to a file store,
// or the default config directory otherwise.
func configDir(store storage.Provider) (string, error) {
	if cli.IsFileStore(store) {
		return filepath.Dir(store.GetConfigPath()), nil
	}
	path, err := cli.ExpandPath(constants.DefaultConfigPath)
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}
