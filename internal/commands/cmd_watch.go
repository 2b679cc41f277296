package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/admin"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/logging"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/notification"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/poll"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/pkg/iojson"
)

const defaultWatchInterval = 30 * time.Second

type WatchCmd struct {
	flags *Flags
	app   *admin.App

	interval   time.Duration
	lane       string
	jsonOutput bool
}

// NewWatchCmd creates a new watch command
func NewWatchCmd(flags *Flags, app *admin.App) *WatchCmd {
	return &WatchCmd{flags: flags, app: app}
}

// Command returns the watch subcommand.
func (cmd *WatchCmd) Command() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Poll the backend and print notifications as they arrive",
		UsageText: "ffadmin notify watch [--interval 30s] [--lane orders|created] [--json]",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:        "interval",
				Usage:       "poll interval (defaults to board.poll_interval)",
				Destination: &cmd.interval,
			},
			&cli.StringFlag{
				Name:        "lane",
				Aliases:     []string{"l"},
				Usage:       "only watch one lane (orders, created)",
				Destination: &cmd.lane,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	}
}

func (cmd *WatchCmd) run(ctx context.Context, c *cli.Command) error {
	lanes := notification.Lanes
	if cmd.lane != "" {
		l, err := notification.ParseLane(cmd.lane)
		if err != nil {
			return err
		}
		lanes = []notification.Lane{l}
	}

	interval := cmd.interval
	if interval <= 0 {
		interval = cmd.app.Config.Board.PollInterval
	}
	if interval <= 0 {
		interval = defaultWatchInterval
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := &watcher{
		dispatcher: cmd.app.Dispatcher,
		lanes:      lanes,
		out:        c.Root().Writer,
		json:       cmd.jsonOutput,
	}

	poller := poll.New(interval, w.tick,
		poll.WithImmediate(),
		poll.WithLogger(logging.Component("watch")),
	)
	if err := poller.Start(ctx); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Watching notifications every %s (ctrl+c to stop)\n", interval)

	<-ctx.Done()
	poller.Stop()
	return nil
}

// watcher prints lane entries it has not printed before.
type watcher struct {
	dispatcher *admin.Dispatcher
	lanes      []notification.Lane
	out        io.Writer
	json       bool

	seen   map[string]struct{}
	primed bool
}

func (w *watcher) tick(ctx context.Context) error {
	if err := w.dispatcher.Refresh(ctx); err != nil {
		return err
	}

	if w.seen == nil {
		w.seen = make(map[string]struct{})
	}

	board := w.dispatcher.Board()
	for _, l := range w.lanes {
		entries := board.Entries(l)
		// Entries are newest first; print oldest first.
		for i := len(entries) - 1; i >= 0; i-- {
			g := entries[i]
			id := g.Representative.ID
			if _, ok := w.seen[id]; ok {
				continue
			}
			w.seen[id] = struct{}{}
			if !w.primed {
				continue
			}
			if err := w.print(l, g); err != nil {
				return err
			}
		}
	}

	if !w.primed {
		w.primed = true
		fmt.Fprintf(os.Stderr, "%d existing notification(s)\n", len(w.seen))
	}
	return nil
}

func (w *watcher) print(l notification.Lane, g notification.Group) error {
	if w.json {
		return iojson.WriteLine(w.out, newEntryInfo(g))
	}

	r := g.Representative
	recipients := ""
	if g.RecipientCount > 1 {
		recipients = fmt.Sprintf(" (%d recipients)", g.RecipientCount)
	}
	_, err := fmt.Fprintf(w.out, "%s [%s] %s: %s%s\n",
		r.CreatedAt.Local().Format(time.TimeOnly), l, r.Title, r.Message, recipients)
	return err
}
