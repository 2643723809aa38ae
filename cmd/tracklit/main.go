package main

import (
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/tracklit/internal/cli"
	"github.com/julianstephens/tracklit/internal/config"
	"github.com/julianstephens/tracklit/internal/constants"
	apperr "github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/logger"
	"github.com/julianstephens/tracklit/internal/notifier"
	"github.com/julianstephens/tracklit/internal/storage"
	"github.com/julianstephens/tracklit/internal/tracker"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Config file path." type:"path" default:"~/.config/tracklit/config.yaml"`
	Store    string `help:"Store location: a .db (SQLite) or .json path, a PostgreSQL URI without password, or 'keyring'. Overrides the config file."`
	Timezone string `help:"IANA timezone used for day boundaries, or 'Local'. Overrides the config file."`
	Debug    bool   `help:"Enable debug logging."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize tracklit storage."`
	Migrate  cli.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Activity cli.ActivityCmd `cmd:"" help:"Manage activities, timers and checks."`
	Entry    cli.EntryCmd    `cmd:"" help:"Manage time entries."`
	Goal     cli.GoalCmd     `cmd:"" help:"Manage goals."`
	Progress cli.ProgressCmd `cmd:"" help:"Show progress for a day, week, month or year."`
	Export   cli.ExportCmd   `cmd:"" help:"Export activities, goals and goal progress."`
	Backup   cli.BackupCmd   `cmd:"" help:"Manage store backups."`
	Keyring  cli.KeyringCmd  `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal activity tracker: timers, daily checks, streaks and goals"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)
	command := ctx.Command()

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		apperr.Fatal(err)
	}
	overrides := config.Overrides{Store: CLI.Store, Timezone: CLI.Timezone}
	if CLI.Debug {
		debug := true
		overrides.Debug = &debug
	}
	if cfg, err = cfg.Apply(overrides); err != nil {
		apperr.Fatal(err)
	}

	if err := logger.Init(logger.Config{
		Debug:     cfg.Debug,
		ConfigDir: cfg.Dir(),
		Quiet:     command == "tui",
	}); err != nil {
		apperr.Fatalf("failed to initialize logger: %v", err)
	}
	logger.Debug("Starting", "command", command, "config", cfg.Path, "version", constants.Version)

	var opts []tracker.Option
	if cfg.Notifications {
		opts = append(opts, tracker.WithNotifier(notifier.New()))
	}

	// keyring commands manage the credentials the store would need
	var store storage.Provider
	if !strings.HasPrefix(command, "keyring") {
		if store, err = cli.OpenStore(cfg.Store); err != nil {
			apperr.Fatal(err)
		}
	}

	appCtx, err := cli.NewContext(cfg, store, opts...)
	if err != nil {
		apperr.Fatal(err)
	}

	if store != nil && command != "init" {
		if err := store.Load(); err != nil {
			apperr.Fatal(err)
		}
	}

	err = ctx.Run(appCtx)
	if store != nil {
		if cerr := store.Close(); cerr != nil {
			logger.Warn("Failed to close store", "error", cerr)
		}
	}
	apperr.Fatal(err)
}
