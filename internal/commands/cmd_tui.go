package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/admin"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/logging"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/printer"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/tui"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/pkg/profiler"
)

type TuiCmd struct {
	flags *Flags
	app   *admin.App
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *admin.App) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   app,
	}
}

// Flags returns the board flags for registration on the root command.
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "serve pprof on 127.0.0.1 at the given port while the board runs",
			Sources:     cli.EnvVars("FFADMIN_PROFILER_PORT"),
			Destination: &cmd.flags.ProfilerPort,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cmd.flags.ProfilerPort > 0 {
		prof := profiler.New(cmd.flags.ProfilerPort, logging.Component("profiler"))
		if err := prof.Start(ctx); err != nil {
			return fmt.Errorf("start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := prof.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to stop profiler")
			}
		}()
		log.Info().
			Str("url", fmt.Sprintf("http://%s/debug/pprof/", prof.Addr())).
			Msg("profiler endpoint available")
	}

	deps := tui.Deps{
		Config:     cmd.app.Config,
		Dispatcher: cmd.app.Dispatcher,
		Alerts:     cmd.app.Alerts,
		BuildInfo:  cmd.app.Build,
	}

	m := tui.New(ctx, deps)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	if model, ok := finalModel.(tui.Model); ok && model.AuthExpired() {
		if err := cmd.app.Session.Clear(); err != nil {
			log.Error().Err(err).Msg("failed to clear expired session")
		}
		printer.Ctx(ctx).Errorf("Session expired. Please log in again with 'ffadmin login'.")
	}

	return nil
}
