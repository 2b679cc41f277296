package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/admin"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/backend"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/commands"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/config"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/credentials"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/logging"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/styles"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/printer"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func buildInfo() admin.BuildInfo {
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

	return admin.BuildInfo{Version: v, Commit: c, Date: d}
}

func main() {
	// A .env next to the working directory may provide FFADMIN_* variables.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: load .env: %v\n", err)
	}

	ctx := printer.NewContext(context.Background(), printer.New(os.Stderr))

	var (
		logCloser func()
		build     = buildInfo()
		app       = &admin.App{}
	)

	flags := &commands.Flags{}

	root := &cli.Command{
		Name:      "ffadmin",
		Usage:     "Manage storefront notifications from the terminal",
		UsageText: "ffadmin [global options] command [command options]",
		Description: `ffadmin is the admin client for the storefront notification API.

It lists order and admin-sent notifications, groups broadcasts back into a
single row, and deletes or marks them in bulk.

Run 'ffadmin' with no arguments to open the interactive board.
Run 'ffadmin login' first to store an admin token.`,
		Version: fmt.Sprintf("%s (%s) %s", build.Version, build.Commit, build.Date),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("FFADMIN_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/ffadmin.log)",
				Sources:     cli.EnvVars("FFADMIN_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("FFADMIN_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("FFADMIN_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "base-url",
				Usage:       "backend base URL (overrides backend.base_url)",
				Sources:     cli.EnvVars("FFADMIN_BASE_URL"),
				Destination: &flags.BaseURL,
			},
			&cli.StringFlag{
				Name:        "token",
				Usage:       "admin token (overrides the stored session)",
				Sources:     cli.EnvVars("FFADMIN_TOKEN"),
				Destination: &flags.Token,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Always log to a file; use explicit path or default to <datadir>/ffadmin.log
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "ffadmin.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			if flags.BaseURL != "" {
				cfg.Backend.BaseURL = flags.BaseURL
				if err := cfg.Validate(); err != nil {
					return ctx, fmt.Errorf("invalid --base-url: %w", err)
				}
			}
			flags.Config = cfg

			// Apply configured theme (validation ensures name is valid)
			if palette, ok := styles.GetPalette(cfg.TUI.Theme); ok {
				styles.SetTheme(palette)
			}

			session := credentials.NewFileStore(commands.SessionPath(cfg.DataDir))

			// Populate the pre-allocated App (commands already hold a pointer to it)
			*app = *admin.NewApp(cfg, session, flags.Token, build)

			// The board shows alerts as toasts; CLI commands print them.
			if c.Args().Len() > 0 {
				app.Alerts.Subscribe(printer.Ctx(ctx).Alert)
			}

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, app)
	root.Flags = append(root.Flags, tuiCmd.Flags()...)

	root = commands.NewNotifyCmd(flags, app).Register(root)
	root = commands.NewUsersCmd(flags, app).Register(root)
	root = commands.NewLoginCmd(flags, app).Register(root)
	root = commands.NewConfigValidateCmd(flags).Register(root)

	// Set TUI as default action when no subcommand is provided
	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'ffadmin --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := root.Run(ctx, os.Args)
	if runErr != nil {
		if backend.IsAuthError(runErr) && app.Session != nil {
			if err := app.Session.Clear(); err != nil {
				log.Error().Err(err).Msg("failed to clear session")
			}
		}
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
