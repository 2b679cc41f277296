package admin

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/backend"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/alert"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/logging"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/notification"
)

// ErrBusy is returned when a destructive or send action is issued while
// another one is still in flight.
var ErrBusy = errors.New("another action is still running")

// ErrNothingSelected is returned by DeleteSelected on an empty selection.
var ErrNothingSelected = &notification.ValidationError{Message: "no notifications selected"}

// Backend is the subset of the REST API the dispatcher mutates through.
type Backend interface {
	Lister
	CreateNotification(ctx context.Context, msg notification.Compose) error
	MarkRead(ctx context.Context, id string, read bool) error
	DeleteMany(ctx context.Context, ids []string) (int, error)
	DeleteAll(ctx context.Context, lane notification.Lane) (int, error)
}

var _ Backend = (*backend.Client)(nil)

// Dispatcher turns admin actions into backend calls and reconciles the
// board afterwards. The read toggle is patched locally; every destructive or
// create action is followed by a full refetch. Failures are published on the
// alert bus and leave the board as it was.
type Dispatcher struct {
	backend Backend
	board   *Board
	alerts  *alert.Bus
	logger  zerolog.Logger

	inflight atomic.Bool
}

// NewDispatcher creates a dispatcher for board.
func NewDispatcher(b Backend, board *Board, alerts *alert.Bus, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		backend: b,
		board:   board,
		alerts:  alerts,
		logger:  logger,
	}
}

// Board returns the board the dispatcher reconciles.
func (d *Dispatcher) Board() *Board {
	return d.board
}

// Refresh reloads the board. A stale result is not an error.
func (d *Dispatcher) Refresh(ctx context.Context) error {
	err := d.board.Reload(ctx, d.backend)
	if errors.Is(err, ErrStale) {
		d.logger.Debug().Msg("dropped stale notification list")
		return nil
	}
	if err != nil {
		return d.fail("load notifications", err)
	}
	return nil
}

// MarkRead sets the read state of one record and patches it locally.
func (d *Dispatcher) MarkRead(ctx context.Context, id string, read bool) error {
	if err := d.backend.MarkRead(ctx, id, read); err != nil {
		return d.fail("update read state", err)
	}
	d.patchLocal(id, read)
	return nil
}

// DeleteSingle deletes one record.
func (d *Dispatcher) DeleteSingle(ctx context.Context, id string) (int, error) {
	return d.deleteIDs(ctx, []string{id})
}

// DeleteGroup deletes every physical record of a broadcast.
func (d *Dispatcher) DeleteGroup(ctx context.Context, g notification.Group) (int, error) {
	return d.deleteIDs(ctx, g.MemberIDs)
}

// DeleteSelected deletes the records in the board's selection.
func (d *Dispatcher) DeleteSelected(ctx context.Context) (int, error) {
	ids := d.board.Selected()
	if len(ids) == 0 {
		return 0, d.fail("delete selected", ErrNothingSelected)
	}
	return d.deleteIDs(ctx, ids)
}

// DeleteAll deletes every record of lane.
func (d *Dispatcher) DeleteAll(ctx context.Context, lane notification.Lane) (int, error) {
	ctx = logging.WithLane(ctx, string(lane))

	var deleted int
	err := d.exclusive(func() error {
		n, err := d.backend.DeleteAll(ctx, lane)
		if err != nil {
			return err
		}
		deleted = n
		return nil
	})
	if err != nil {
		return 0, d.fail("delete all "+lane.Label(), err)
	}

	d.alerts.Successf("Deleted %d notification(s)", deleted)
	d.logger.Info().Ctx(ctx).Int("deleted", deleted).Msg("deleted lane")
	return deleted, d.refetchAll(ctx)
}

// Send validates and creates a notification, then refetches so a broadcast
// shows up regrouped exactly as the backend stored it.
func (d *Dispatcher) Send(ctx context.Context, msg notification.Compose) error {
	if err := msg.Validate(); err != nil {
		return d.fail("send notification", err)
	}
	msg = msg.Normalize()

	err := d.exclusive(func() error {
		return d.backend.CreateNotification(ctx, msg)
	})
	if err != nil {
		return d.fail("send notification", err)
	}

	d.alerts.Successf("Notification %q sent", msg.Title)
	d.logger.Info().Str("title", msg.Title).Str("target", msg.TargetUser).Msg("sent notification")
	return d.refetchAll(ctx)
}

// Busy reports whether a destructive or send action is in flight.
func (d *Dispatcher) Busy() bool {
	return d.inflight.Load()
}

func (d *Dispatcher) deleteIDs(ctx context.Context, ids []string) (int, error) {
	var deleted int
	err := d.exclusive(func() error {
		n, err := d.backend.DeleteMany(ctx, ids)
		if err != nil {
			return err
		}
		deleted = n
		return nil
	})
	if err != nil {
		return 0, d.fail("delete notifications", err)
	}

	d.alerts.Successf("Deleted %d notification(s)", deleted)
	d.logger.Info().Int("requested", len(ids)).Int("deleted", deleted).Msg("deleted notifications")
	return deleted, d.refetchAll(ctx)
}

// exclusive runs fn unless another guarded action is running.
func (d *Dispatcher) exclusive(fn func() error) error {
	if !d.inflight.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer d.inflight.Store(false)
	return fn()
}

// patchLocal applies a reversible change to the cached list without a
// round trip.
func (d *Dispatcher) patchLocal(id string, read bool) {
	if !d.board.PatchRead(id, read) {
		d.logger.Debug().Str("id", id).Msg("read state patched for record not in cache")
	}
}

// refetchAll clears the selection and reloads the board from the backend.
func (d *Dispatcher) refetchAll(ctx context.Context) error {
	d.board.ClearSelection()
	return d.Refresh(ctx)
}

func (d *Dispatcher) fail(op string, err error) error {
	msg := backend.UserMessage(err)
	if errors.Is(err, ErrBusy) {
		msg = ErrBusy.Error()
	}

	d.alerts.Errorf("%s", msg)
	d.logger.Warn().Err(err).Str("op", op).Msg("admin action failed")
	return fmt.Errorf("%s: %w", op, err)
}
