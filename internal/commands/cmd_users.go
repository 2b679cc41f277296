package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/admin"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/pkg/iojson"
)

type UsersCmd struct {
	flags *Flags
	app   *admin.App

	jsonOutput bool
}

// NewUsersCmd creates a new users command
func NewUsersCmd(flags *Flags, app *admin.App) *UsersCmd {
	return &UsersCmd{flags: flags, app: app}
}

// Register adds the users command to the application
func (cmd *UsersCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "users",
		Usage:     "List users that can receive notifications",
		UsageText: "ffadmin users [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *UsersCmd) run(ctx context.Context, c *cli.Command) error {
	users, err := cmd.app.Client.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		return iojson.WriteWith(out, os.Stderr, users)
	}

	if len(users) == 0 {
		fmt.Fprintf(os.Stderr, "No users found\n")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tEMAIL")
	for _, u := range users {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", u.ID, u.Name, u.Email)
	}
	return w.Flush()
}
