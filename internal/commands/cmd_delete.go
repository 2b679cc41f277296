package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/admin"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/notification"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/styles"
)

type DeleteCmd struct {
	flags *Flags
	app   *admin.App

	lane string
	yes  bool
}

// NewDeleteCmd creates the delete family of commands
func NewDeleteCmd(flags *Flags, app *admin.App) *DeleteCmd {
	return &DeleteCmd{flags: flags, app: app}
}

// DeleteCommand deletes individual records by id.
func (cmd *DeleteCmd) DeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete notifications by record id",
		UsageText: "ffadmin notify delete <id>...",
		Action:    cmd.runDelete,
	}
}

// DeleteGroupCommand deletes every record of the broadcast an id belongs to.
func (cmd *DeleteCmd) DeleteGroupCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete-group",
		Usage:     "Delete a broadcast for every recipient",
		UsageText: "ffadmin notify delete-group <id>",
		Description: `Looks up the broadcast that record <id> belongs to and deletes all of its
records, one per recipient.`,
		Action: cmd.runDeleteGroup,
	}
}

// DeleteAllCommand deletes every record of a lane.
func (cmd *DeleteCmd) DeleteAllCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete-all",
		Usage:     "Delete every notification of a lane",
		UsageText: "ffadmin notify delete-all --lane orders|created [--yes]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "lane",
				Aliases:     []string{"l"},
				Usage:       "lane to clear (orders, created)",
				Required:    true,
				Destination: &cmd.lane,
			},
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip the confirmation prompt",
				Destination: &cmd.yes,
			},
		},
		Action: cmd.runDeleteAll,
	}
}

func (cmd *DeleteCmd) runDelete(ctx context.Context, c *cli.Command) error {
	ids := c.Args().Slice()
	if len(ids) == 0 {
		return fmt.Errorf("at least one notification id is required")
	}

	if err := cmd.app.Dispatcher.Refresh(ctx); err != nil {
		return err
	}

	board := cmd.app.Board
	for _, id := range ids {
		if _, ok := board.Find(id); !ok {
			return fmt.Errorf("notification %q not found", id)
		}
		if !slices.Contains(board.Selected(), id) {
			board.Toggle(id)
		}
	}

	_, err := cmd.app.Dispatcher.DeleteSelected(ctx)
	return err
}

func (cmd *DeleteCmd) runDeleteGroup(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("notification id is required")
	}

	if err := cmd.app.Dispatcher.Refresh(ctx); err != nil {
		return err
	}

	g, ok := cmd.app.Board.GroupOf(id)
	if !ok {
		return fmt.Errorf("notification %q not found", id)
	}

	if g.RecipientCount > 1 && !cmd.confirm(fmt.Sprintf("Delete %q for all %d recipients?", g.Representative.Title, g.RecipientCount)) {
		return nil
	}

	_, err := cmd.app.Dispatcher.DeleteGroup(ctx, g)
	return err
}

func (cmd *DeleteCmd) runDeleteAll(ctx context.Context, _ *cli.Command) error {
	lane, err := notification.ParseLane(cmd.lane)
	if err != nil {
		return err
	}

	if !cmd.yes {
		if !isTerminal(os.Stdin) {
			return fmt.Errorf("refusing to delete every %s notification without --yes", lane)
		}
		if !cmd.confirm(fmt.Sprintf("Delete ALL %s?", lane.Label())) {
			return nil
		}
	}

	_, err = cmd.app.Dispatcher.DeleteAll(ctx, lane)
	return err
}

// confirm asks a yes/no question. --yes and non-interactive stdin answer yes.
func (cmd *DeleteCmd) confirm(title string) bool {
	if cmd.yes || !isTerminal(os.Stdin) {
		return true
	}

	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&ok),
		),
	).WithTheme(styles.FormTheme()).Run()
	if err != nil {
		if !errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintf(os.Stderr, "confirm: %v\n", err)
		}
		return false
	}
	return ok
}
