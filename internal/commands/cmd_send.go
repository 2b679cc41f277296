package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/admin"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/notification"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/styles"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/pkg/iojson"
)

type SendCmd struct {
	flags *Flags
	app   *admin.App

	msg         notification.Compose
	msgType     string
	interactive bool
	file        iojson.FileReader[notification.Compose]
}

// NewSendCmd creates a new send command
func NewSendCmd(flags *Flags, app *admin.App) *SendCmd {
	return &SendCmd{flags: flags, app: app}
}

// Command returns the send subcommand.
func (cmd *SendCmd) Command() *cli.Command {
	return &cli.Command{
		Name:      "send",
		Usage:     "Send a notification to one user or to everyone",
		UsageText: "ffadmin notify send --title T --message M [--type info|warning|success] [--target USER_ID|all] [-i]",
		Description: `Sends a notification through the backend. A target of "all" broadcasts to every
user; the backend stores one record per recipient and the board groups them
back into a single row.

Without --title and --message on a terminal, or with -i, an interactive form
is shown. Use -f to read the payload as JSON.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "title",
				Aliases:     []string{"t"},
				Usage:       "notification title",
				Destination: &cmd.msg.Title,
			},
			&cli.StringFlag{
				Name:        "message",
				Aliases:     []string{"m"},
				Usage:       "notification body",
				Destination: &cmd.msg.Message,
			},
			&cli.StringFlag{
				Name:        "type",
				Usage:       "notification type (info, warning, success)",
				Value:       string(notification.TypeInfo),
				Destination: &cmd.msgType,
			},
			&cli.StringFlag{
				Name:        "target",
				Usage:       "recipient user id, or \"all\" to broadcast",
				Value:       notification.Broadcast,
				Destination: &cmd.msg.TargetUser,
			},
			&cli.BoolFlag{
				Name:        "interactive",
				Aliases:     []string{"i"},
				Usage:       "compose the notification with a form",
				Destination: &cmd.interactive,
			},
			cmd.file.Flag(),
		},
		Action: cmd.run,
	}
}

func (cmd *SendCmd) run(ctx context.Context, _ *cli.Command) error {
	cmd.msg.Type = notification.Type(cmd.msgType)

	switch {
	case cmd.file.Provided():
		msg, err := cmd.file.Read()
		if err != nil {
			return err
		}
		cmd.msg = msg
	case cmd.interactive || (cmd.missingFields() && isTerminal(os.Stdin)):
		if err := cmd.runForm(ctx); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	return cmd.app.Dispatcher.Send(ctx, cmd.msg)
}

func (cmd *SendCmd) missingFields() bool {
	return strings.TrimSpace(cmd.msg.Title) == "" || strings.TrimSpace(cmd.msg.Message) == ""
}

func (cmd *SendCmd) runForm(ctx context.Context) error {
	fmt.Println(styles.HeaderStyle.Render("New notification"))
	fmt.Println()

	msgType := string(cmd.msg.Type)
	if msgType == "" || msgType == string(notification.TypeOrder) {
		msgType = string(notification.TypeInfo)
	}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Validate(fieldValidator(func(c *notification.Compose, v string) { c.Title = v }, "title")).
				Value(&cmd.msg.Title),
			huh.NewText().
				Title("Message").
				Validate(fieldValidator(func(c *notification.Compose, v string) { c.Message = v }, "message")).
				Value(&cmd.msg.Message),
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("Info", string(notification.TypeInfo)),
					huh.NewOption("Warning", string(notification.TypeWarning)),
					huh.NewOption("Success", string(notification.TypeSuccess)),
				).
				Value(&msgType),
			huh.NewSelect[string]().
				Title("Recipient").
				Options(cmd.targetOptions(ctx)...).
				Value(&cmd.msg.TargetUser),
		),
	).WithTheme(styles.FormTheme()).Run()
	if err != nil {
		return err
	}

	cmd.msg.Type = notification.Type(msgType)
	return nil
}

// targetOptions lists the broadcast option followed by every known user.
// A failed user lookup only leaves the broadcast option.
func (cmd *SendCmd) targetOptions(ctx context.Context) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("All users", notification.Broadcast)}

	users, err := cmd.app.Client.ListUsers(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to list users for recipient picker")
		return opts
	}

	for _, u := range users {
		label := u.Name
		if u.Email != "" {
			label += " <" + u.Email + ">"
		}
		opts = append(opts, huh.NewOption(label, u.ID))
	}
	return opts
}

// fieldValidator validates a single form field using the same rules as
// Compose.Validate, so the form rejects what the dispatcher would.
func fieldValidator(set func(*notification.Compose, string), field string) func(string) error {
	return func(v string) error {
		c := notification.Compose{Title: "x", Message: "x", TargetUser: notification.Broadcast, Type: notification.TypeInfo}
		set(&c, v)

		err := c.Validate()
		var verr *notification.ValidationError
		if errors.As(err, &verr) && verr.Field == field {
			return errors.New(verr.Message)
		}
		return nil
	}
}
