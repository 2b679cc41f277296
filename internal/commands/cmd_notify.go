package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/admin"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/notification"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/styles"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/pkg/iojson"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/pkg/paginate"
)

type NotifyCmd struct {
	flags *Flags
	app   *admin.App

	// list flags
	lane       string
	page       int
	match      string
	jsonOutput bool

	// read flags
	unread bool
}

// NewNotifyCmd creates a new notify command
func NewNotifyCmd(flags *Flags, app *admin.App) *NotifyCmd {
	return &NotifyCmd{flags: flags, app: app}
}

// Register adds the notify command and its subcommands to the application
func (cmd *NotifyCmd) Register(app *cli.Command) *cli.Command {
	send := NewSendCmd(cmd.flags, cmd.app)
	del := NewDeleteCmd(cmd.flags, cmd.app)
	watch := NewWatchCmd(cmd.flags, cmd.app)

	app.Commands = append(app.Commands, &cli.Command{
		Name:    "notify",
		Aliases: []string{"n"},
		Usage:   "List, send and clean up admin notifications",
		Description: `Notifications are split into two lanes:

  orders   notifications triggered by new orders, one row per record
  created  notifications sent by admins, broadcasts grouped into one row

Use 'ffadmin' without arguments for the interactive board.`,
		Commands: []*cli.Command{
			{
				Name:      "list",
				Aliases:   []string{"ls"},
				Usage:     "List notifications of one lane",
				UsageText: "ffadmin notify list [--lane orders|created] [--page N] [--match GLOB] [--json]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "lane",
						Aliases:     []string{"l"},
						Usage:       "lane to list (orders, created)",
						Value:       string(notification.LaneOrders),
						Destination: &cmd.lane,
					},
					&cli.IntFlag{
						Name:        "page",
						Aliases:     []string{"p"},
						Usage:       "page to show, clamped to the available pages",
						Value:       1,
						Destination: &cmd.page,
					},
					&cli.StringFlag{
						Name:        "match",
						Aliases:     []string{"m"},
						Usage:       "only show entries whose title matches the glob pattern",
						Destination: &cmd.match,
					},
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output as JSON lines",
						Destination: &cmd.jsonOutput,
					},
				},
				Action: cmd.runList,
			},
			{
				Name:      "show",
				Usage:     "Show a single notification",
				UsageText: "ffadmin notify show <id>",
				Action:    cmd.runShow,
			},
			{
				Name:      "read",
				Usage:     "Mark a notification as read",
				UsageText: "ffadmin notify read <id> [--unread]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "unread",
						Usage:       "mark as unread instead",
						Destination: &cmd.unread,
					},
				},
				Action: cmd.runRead,
			},
			send.Command(),
			del.DeleteCommand(),
			del.DeleteGroupCommand(),
			del.DeleteAllCommand(),
			watch.Command(),
		},
	})

	return app
}

// entryInfo is the JSON output format for notify list --json.
type entryInfo struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Type       string    `json:"type"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"createdAt"`
	Recipients int       `json:"recipients"`
	MemberIDs  []string  `json:"memberIds,omitempty"`
}

func newEntryInfo(g notification.Group) entryInfo {
	r := g.Representative
	info := entryInfo{
		ID:         r.ID,
		Title:      r.Title,
		Message:    r.Message,
		Type:       string(r.Type),
		Read:       r.Read,
		CreatedAt:  r.CreatedAt,
		Recipients: g.RecipientCount,
	}
	if g.RecipientCount > 1 {
		info.MemberIDs = g.MemberIDs
	}
	return info
}

func (cmd *NotifyCmd) runList(ctx context.Context, c *cli.Command) error {
	lane, err := notification.ParseLane(cmd.lane)
	if err != nil {
		return err
	}

	if err := cmd.app.Dispatcher.Refresh(ctx); err != nil {
		if cmd.jsonOutput {
			_ = iojson.WriteError("list notifications failed", map[string]any{"error": err.Error()})
		}
		return err
	}

	entries, err := filterEntries(cmd.app.Board.Entries(lane), cmd.match)
	if err != nil {
		return err
	}

	size := cmd.app.Config.Board.PageSize
	window := paginate.NewWindow(cmd.page, size, len(entries))
	visible := paginate.Page(entries, window.Page, size)

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, g := range visible {
			if err := iojson.WriteLine(out, newEntryInfo(g)); err != nil {
				return fmt.Errorf("encode notification: %w", err)
			}
		}
		return nil
	}

	if len(visible) == 0 {
		fmt.Fprintf(os.Stderr, "No notifications in %s\n", strings.ToLower(lane.Label()))
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTITLE\tRECIPIENTS\tREAD\tCREATED")
	for _, g := range visible {
		r := g.Representative
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%t\t%s\n",
			r.ID, r.Title, g.RecipientCount, r.Read, r.CreatedAt.Local().Format(time.DateTime))
	}
	_ = w.Flush()

	fmt.Fprintf(os.Stderr, "\npage %d/%d (%d entries)\n", window.Page, window.Pages, window.Total)
	return nil
}

// filterEntries keeps the entries whose title matches the glob pattern.
func filterEntries(entries []notification.Group, pattern string) ([]notification.Group, error) {
	if pattern == "" {
		return entries, nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid --match pattern %q", pattern)
	}

	out := make([]notification.Group, 0, len(entries))
	for _, g := range entries {
		ok, err := doublestar.Match(pattern, g.Representative.Title)
		if err != nil {
			return nil, fmt.Errorf("match %q: %w", pattern, err)
		}
		if ok {
			out = append(out, g)
		}
	}
	return out, nil
}

func (cmd *NotifyCmd) runShow(ctx context.Context, c *cli.Command) error {
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

	doc := renderMarkdown(g)
	out := c.Root().Writer

	if !isTerminal(os.Stdout) {
		_, _ = fmt.Fprint(out, doc)
		return nil
	}

	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(min(width, 100)),
	)
	if err != nil {
		log.Debug().Err(err).Msg("failed to create markdown renderer, showing raw content")
		_, _ = fmt.Fprint(out, doc)
		return nil
	}

	rendered, err := renderer.Render(doc)
	if err != nil {
		log.Debug().Err(err).Msg("failed to render markdown, showing raw content")
		_, _ = fmt.Fprint(out, doc)
		return nil
	}

	_, _ = fmt.Fprint(out, rendered)
	return nil
}

// renderMarkdown formats a lane entry as a markdown document.
func renderMarkdown(g notification.Group) string {
	r := g.Representative

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.Title)
	fmt.Fprintf(&b, "%s\n\n", r.Message)
	fmt.Fprintf(&b, "- **ID:** `%s`\n", r.ID)
	fmt.Fprintf(&b, "- **Type:** %s\n", r.Type)
	fmt.Fprintf(&b, "- **Lane:** %s\n", notification.LaneOf(r).Label())
	fmt.Fprintf(&b, "- **Created:** %s\n", r.CreatedAt.Local().Format(time.DateTime))
	fmt.Fprintf(&b, "- **Read:** %t\n", r.Read)

	if g.RecipientCount > 1 {
		fmt.Fprintf(&b, "- **Recipients:** %d\n\n", g.RecipientCount)
		b.WriteString("| Record | Recipient |\n|---|---|\n")
		for i, id := range g.MemberIDs {
			fmt.Fprintf(&b, "| `%s` | %s |\n", id, g.TargetUsers[i])
		}
	} else {
		fmt.Fprintf(&b, "- **Recipient:** %s\n", r.TargetUser)
	}

	return b.String()
}

func (cmd *NotifyCmd) runRead(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("notification id is required")
	}

	if err := cmd.app.Dispatcher.MarkRead(ctx, id, !cmd.unread); err != nil {
		return err
	}

	state := "read"
	if cmd.unread {
		state = "unread"
	}
	fmt.Fprintf(os.Stderr, "Marked %s as %s\n", id, state)
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
