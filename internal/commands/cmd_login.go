package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/admin"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/backend"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/credentials"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/logging"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/styles"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/printer"
)

type LoginCmd struct {
	flags *Flags
	app   *admin.App

	token    string
	user     string
	noVerify bool
}

// NewLoginCmd creates the login and logout commands
func NewLoginCmd(flags *Flags, app *admin.App) *LoginCmd {
	return &LoginCmd{flags: flags, app: app}
}

// Register adds the login and logout commands to the application
func (cmd *LoginCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:      "login",
			Usage:     "Store an admin token for later commands",
			UsageText: "ffadmin login [--token TOKEN] [--user NAME]",
			Description: `Stores the admin token issued by the backend in the data directory. The
token is checked against the backend unless --no-verify is given.`,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:        "token",
					Usage:       "admin token (prompted when omitted on a terminal)",
					Destination: &cmd.token,
				},
				&cli.StringFlag{
					Name:        "user",
					Usage:       "label stored with the session",
					Destination: &cmd.user,
				},
				&cli.BoolFlag{
					Name:        "no-verify",
					Usage:       "store the token without contacting the backend",
					Destination: &cmd.noVerify,
				},
			},
			Action: cmd.runLogin,
		},
		&cli.Command{
			Name:      "logout",
			Usage:     "Remove the stored admin token",
			UsageText: "ffadmin logout",
			Action:    cmd.runLogout,
		},
	)

	return app
}

func (cmd *LoginCmd) runLogin(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	if cmd.token == "" && isTerminal(os.Stdin) {
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Admin token").
					EchoMode(huh.EchoModePassword).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("token is required")
						}
						return nil
					}).
					Value(&cmd.token),
			),
		).WithTheme(styles.FormTheme()).Run()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	token := strings.TrimSpace(cmd.token)
	if token == "" {
		return fmt.Errorf("token is required")
	}

	if !cmd.noVerify {
		client := backend.New(
			cmd.app.Config.Backend.BaseURL,
			credentials.Static(token),
			backend.WithTimeout(cmd.app.Config.Backend.Timeout),
			backend.WithLogger(logging.Component("backend")),
		)
		if _, err := client.ListNotifications(ctx); err != nil {
			return fmt.Errorf("verify token: %s", backend.UserMessage(err))
		}
	}

	sess := credentials.Session{Token: token, User: cmd.user}
	if err := cmd.app.Session.Save(sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	p.Success("Logged in", cmd.app.Session.Path())
	return nil
}

func (cmd *LoginCmd) runLogout(ctx context.Context, _ *cli.Command) error {
	if err := cmd.app.Session.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	printer.Ctx(ctx).Successf("Logged out")
	return nil
}
