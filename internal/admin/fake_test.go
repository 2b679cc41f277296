package admin

import (
	"context"
	"sync"
	"time"

	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/notification"
)

// fakeBackend is an in-memory Backend. Errors set on it are returned once per
// call until cleared.
type fakeBackend struct {
	mu      sync.Mutex
	records []notification.Record

	listErr   error
	createErr error
	readErr   error
	deleteErr error

	// block, when set, is waited on by DeleteMany before it returns.
	block chan struct{}

	lists   int
	created []notification.Compose
	deleted [][]string
	cleared []notification.Lane
}

func (f *fakeBackend) ListNotifications(context.Context) ([]notification.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]notification.Record, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeBackend) CreateNotification(_ context.Context, msg notification.Compose) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, msg)
	f.records = append(f.records, notification.Record{
		ID:         "new-" + msg.Title,
		Title:      msg.Title,
		Message:    msg.Message,
		Type:       msg.Type,
		TargetUser: msg.TargetUser,
		CreatedAt:  time.Now(),
	})
	return nil
}

func (f *fakeBackend) MarkRead(_ context.Context, id string, read bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return f.readErr
	}
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i].Read = read
		}
	}
	return nil
}

func (f *fakeBackend) DeleteMany(_ context.Context, ids []string) (int, error) {
	if f.block != nil {
		<-f.block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	f.deleted = append(f.deleted, ids)

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := make([]notification.Record, 0, len(f.records))
	n := 0
	for _, r := range f.records {
		if drop[r.ID] {
			n++
			continue
		}
		kept = append(kept, r)
	}
	f.records = kept
	return n, nil
}

func (f *fakeBackend) DeleteAll(_ context.Context, lane notification.Lane) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	f.cleared = append(f.cleared, lane)

	p := notification.Classify(f.records)
	n := len(p.Lane(lane))
	f.records = append([]notification.Record(nil), p.Lane(lane.Other())...)
	return n, nil
}

var base = time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

// sampleRecords returns two order notifications and a three-recipient
// broadcast plus one direct message.
func sampleRecords() []notification.Record {
	return []notification.Record{
		{ID: "o1", Title: "Đơn hàng mới", Message: "Đơn hàng #1", Type: notification.TypeOrder, TargetUser: "admin", CreatedAt: base.Add(5 * time.Minute)},
		{ID: "o2", Title: "New Order", Message: "order #2", Type: notification.TypeOrder, TargetUser: "admin", CreatedAt: base.Add(6 * time.Minute)},
		{ID: "b1", Title: "Sale", Message: "50% off", Type: notification.TypeInfo, TargetUser: "u1", CreatedAt: base},
		{ID: "b2", Title: "Sale", Message: "50% off", Type: notification.TypeInfo, TargetUser: "u2", CreatedAt: base.Add(time.Second)},
		{ID: "b3", Title: "Sale", Message: "50% off", Type: notification.TypeInfo, TargetUser: "u3", CreatedAt: base.Add(2 * time.Second)},
		{ID: "d1", Title: "Hello", Message: "welcome", Type: notification.TypeSuccess, TargetUser: "u4", CreatedAt: base.Add(time.Hour)},
	}
}

// manyOrders returns n order notifications, newest last.
func manyOrders(n int) []notification.Record {
	out := make([]notification.Record, n)
	for i := range out {
		out[i] = notification.Record{
			ID:         "o" + time.Duration(i).String(),
			Title:      "New Order",
			Type:       notification.TypeOrder,
			TargetUser: "admin",
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}
	}
	return out
}
