package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/admin"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/backend"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/alert"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/config"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/notification"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/pkg/tuitest"
)

type fakeBackend struct {
	mu      sync.Mutex
	records []notification.Record
	listErr error
	deleted [][]string
	read    map[string]bool
}

func (f *fakeBackend) ListNotifications(context.Context) ([]notification.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]notification.Record, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeBackend) CreateNotification(context.Context, notification.Compose) error {
	return nil
}

func (f *fakeBackend) MarkRead(_ context.Context, id string, read bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.read == nil {
		f.read = map[string]bool{}
	}
	f.read[id] = read
	return nil
}

func (f *fakeBackend) DeleteMany(_ context.Context, ids []string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, ids)

	drop := map[string]bool{}
	for _, id := range ids {
		drop[id] = true
	}
	kept := f.records[:0]
	for _, r := range f.records {
		if !drop[r.ID] {
			kept = append(kept, r)
		}
	}
	f.records = kept
	return len(ids), nil
}

func (f *fakeBackend) DeleteAll(_ context.Context, lane notification.Lane) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := notification.Classify(f.records)
	n := len(p.Lane(lane))
	f.records = p.Lane(lane.Other())
	return n, nil
}

func testRecords() []notification.Record {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return []notification.Record{
		{ID: "o1", Title: "Đơn hàng mới", Message: "Bạn có đơn hàng mới", Type: notification.TypeOrder, TargetUser: "admin", CreatedAt: base.Add(2 * time.Minute)},
		{ID: "o2", Title: "New Order", Message: "order #2", Type: notification.TypeOrder, TargetUser: "admin", CreatedAt: base.Add(time.Minute), Read: true},
		{ID: "b1", Title: "Sale", Message: "50% off", Type: notification.TypeInfo, TargetUser: "u1", CreatedAt: base},
		{ID: "b2", Title: "Sale", Message: "50% off", Type: notification.TypeInfo, TargetUser: "u2", CreatedAt: base.Add(10 * time.Second)},
	}
}

func newTestModel(t *testing.T, fb *fakeBackend) Model {
	t.Helper()

	cfg, err := config.Load("", t.TempDir())
	require.NoError(t, err)
	cfg.Board.PollInterval = 0

	board := admin.NewBoard(cfg.Board.PageSize)
	bus := alert.NewBus()
	d := admin.NewDispatcher(fb, board, bus, zerolog.Nop())

	m := New(context.Background(), Deps{Config: cfg, Dispatcher: d, Alerts: bus})
	return update(t, m, m.refresh()())
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// press sends a key and runs the resulting command, if any, feeding its
// message back into the model. Batched and tick commands are not followed.
func press(t *testing.T, m Model, k tea.KeyMsg) Model {
	t.Helper()
	next, cmd := m.Update(k)
	m = next.(Model)
	if cmd == nil {
		return m
	}
	msg := cmd()
	switch msg.(type) {
	case refreshedMsg, actionDoneMsg:
		return update(t, m, msg)
	}
	return m
}

func TestModel_LoadsOrdersLaneFirst(t *testing.T) {
	m := newTestModel(t, &fakeBackend{records: testRecords()})

	visible := m.board.Visible()
	require.Len(t, visible, 2)
	assert.Equal(t, "o1", visible[0].Representative.ID)
	assert.False(t, m.loading)
	assert.Contains(t, tuitest.StripANSI(m.View()), "Đơn hàng mới")
}

func TestModel_SwitchLaneShowsGroupedBroadcast(t *testing.T) {
	m := newTestModel(t, &fakeBackend{records: testRecords()})
	gen := m.pollGen

	next, cmd := m.Update(tuitest.Key(tea.KeyTab))
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.Equal(t, notification.LaneCreated, m.board.Lane())
	assert.Equal(t, gen+1, m.pollGen)

	m = update(t, m, m.refresh()())
	visible := m.board.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, 2, visible[0].RecipientCount)
	assert.Contains(t, tuitest.StripANSI(m.View()), "2 recipients")
}

func TestModel_StalePollTickIgnored(t *testing.T) {
	m := newTestModel(t, &fakeBackend{records: testRecords()})
	m.pollGen = 3

	_, cmd := m.Update(pollTickMsg{gen: 2})
	assert.Nil(t, cmd)
}

func TestModel_SpaceTogglesGroupSelection(t *testing.T) {
	m := newTestModel(t, &fakeBackend{records: testRecords()})
	m.board.SetLane(notification.LaneCreated)
	m = update(t, m, m.refresh()())

	m = press(t, m, tuitest.Space())
	assert.Equal(t, []string{"b1", "b2"}, m.board.Selected())
	assert.Contains(t, tuitest.StripANSI(m.View()), "2 selected")

	m = press(t, m, tuitest.Space())
	assert.Empty(t, m.board.Selected())
}

func TestModel_DeleteSelectedRequiresConfirm(t *testing.T) {
	fb := &fakeBackend{records: testRecords()}
	m := newTestModel(t, fb)

	m = press(t, m, tuitest.Space())
	m = press(t, m, tuitest.Runes("x"))
	require.NotNil(t, m.pending)
	assert.Empty(t, fb.deleted)
	assert.Contains(t, tuitest.StripANSI(m.View()), "Delete the selected notifications?")

	m = press(t, m, tuitest.Runes("y"))
	assert.Nil(t, m.pending)
	assert.False(t, m.busy)
	assert.Equal(t, [][]string{{"o1"}}, fb.deleted)
	assert.Len(t, m.board.Visible(), 1)
	assert.Empty(t, m.board.Selected())
}

func TestModel_ConfirmCancelled(t *testing.T) {
	fb := &fakeBackend{records: testRecords()}
	m := newTestModel(t, fb)

	m = press(t, m, tuitest.Runes("d"))
	require.NotNil(t, m.pending)

	m = press(t, m, tuitest.Runes("n"))
	assert.Nil(t, m.pending)
	assert.Empty(t, fb.deleted)
}

func TestModel_DeleteSelectedWithEmptySelectionDoesNotPrompt(t *testing.T) {
	m := newTestModel(t, &fakeBackend{records: testRecords()})

	m = press(t, m, tuitest.Runes("x"))
	assert.Nil(t, m.pending)
}

func TestModel_ToggleReadPatchesLocally(t *testing.T) {
	fb := &fakeBackend{records: testRecords()}
	m := newTestModel(t, fb)

	m = press(t, m, tuitest.Runes("r"))
	assert.Equal(t, map[string]bool{"o1": true}, fb.read)

	r, ok := m.board.Find("o1")
	require.True(t, ok)
	assert.True(t, r.Read)
}

func TestModel_ReadToggleDoesNotReleaseBusy(t *testing.T) {
	m := newTestModel(t, &fakeBackend{records: testRecords()})
	m.busy = true

	m = update(t, m, actionDoneMsg{action: Action{Type: ActionTypeToggleRead}})
	assert.True(t, m.busy)

	m = update(t, m, actionDoneMsg{action: Action{Type: ActionTypeDeleteSelected}})
	assert.False(t, m.busy)
}

func TestModel_AuthErrorQuits(t *testing.T) {
	m := newTestModel(t, &fakeBackend{records: testRecords()})

	next, cmd := m.Update(refreshedMsg{err: backend.ErrUnauthorized})
	m = next.(Model)
	assert.True(t, m.AuthExpired())
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestModel_AlertsBecomeToasts(t *testing.T) {
	fb := &fakeBackend{records: testRecords()}
	m := newTestModel(t, fb)

	fb.listErr = backend.ErrTransport
	m = press(t, m, tuitest.Runes("R"))

	m = update(t, m, drainAlertsMsg{})
	require.True(t, m.toasts.HasToasts())
	assert.Contains(t, tuitest.StripANSI(m.View()), "Cannot reach server")
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "just now", relativeTime(now.Add(-10*time.Second), now))
	assert.Equal(t, "5m ago", relativeTime(now.Add(-5*time.Minute), now))
	assert.Equal(t, "3h ago", relativeTime(now.Add(-3*time.Hour), now))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", truncate("hello", 5))
	assert.Equal(t, "hel…", truncate("hello", 4))
	assert.Equal(t, "Đơn…", truncate("Đơn hàng", 4))
}
