// Package admin wires the notification derivations, the selection set and
// the backend into the state behind the admin notification screen.
package admin

import (
	"context"
	"errors"
	"sync"

	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/notification"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/selection"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/pkg/paginate"
)

// ErrStale is returned by Apply when a newer fetch was started after the one
// being applied. The response is dropped.
var ErrStale = errors.New("stale fetch result dropped")

// Lister fetches the flat notification list.
type Lister interface {
	ListNotifications(ctx context.Context) ([]notification.Record, error)
}

// Board owns the last fetched notification list and everything derived from
// it for one admin view: the active lane and page, the lane entries and the
// selection. It is safe for concurrent use.
type Board struct {
	mu sync.Mutex

	records   []notification.Record
	partition notification.Partition
	entries   map[notification.Lane][]notification.Group
	loaded    bool

	lane     notification.Lane
	page     int
	pageSize int
	sel      *selection.Set

	// seq numbers fetches; only the newest started fetch may apply.
	seq uint64
}

// NewBoard creates an empty board showing the order lane.
func NewBoard(pageSize int) *Board {
	if pageSize < 1 {
		pageSize = paginate.DefaultSize
	}
	b := &Board{
		lane:     notification.LaneOrders,
		page:     1,
		pageSize: pageSize,
		sel:      selection.New(),
	}
	b.rebuild(nil)
	return b
}

// Begin starts a fetch and returns its sequence number.
func (b *Board) Begin() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	return b.seq
}

// Apply installs the result of fetch seq. Results of a fetch that has been
// superseded are dropped with ErrStale. Applying clears the selection and
// clamps the page to the new listing.
func (b *Board) Apply(seq uint64, records []notification.Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if seq != b.seq {
		return ErrStale
	}

	b.rebuild(records)
	b.loaded = true
	b.sel.Clear()
	b.page = paginate.Clamp(b.page, len(b.entries[b.lane]), b.pageSize)
	return nil
}

// Reload fetches from src and applies the result unless a newer fetch or a
// lane switch happened meanwhile. A failed fetch leaves the board untouched.
func (b *Board) Reload(ctx context.Context, src Lister) error {
	seq := b.Begin()

	records, err := src.ListNotifications(ctx)
	if err != nil {
		return err
	}
	return b.Apply(seq, records)
}

func (b *Board) rebuild(records []notification.Record) {
	b.records = records
	b.partition = notification.Classify(records)
	b.entries = map[notification.Lane][]notification.Group{
		notification.LaneOrders:  b.partition.Entries(notification.LaneOrders),
		notification.LaneCreated: b.partition.Entries(notification.LaneCreated),
	}
}

// Loaded reports whether at least one fetch has been applied.
func (b *Board) Loaded() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loaded
}

// Lane returns the active lane.
func (b *Board) Lane() notification.Lane {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lane
}

// SetLane switches the active lane. Switching resets to page 1, clears the
// selection and abandons any fetch in flight.
func (b *Board) SetLane(l notification.Lane) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if l == b.lane {
		return
	}
	b.lane = l
	b.page = 1
	b.sel.Clear()
	b.seq++
}

// Window returns the active page window.
func (b *Board) Window() paginate.Window {
	b.mu.Lock()
	defer b.mu.Unlock()
	return paginate.NewWindow(b.page, b.pageSize, len(b.entries[b.lane]))
}

// SetPage moves to page p, clamped to the listing. Changing page clears the
// selection.
func (b *Board) SetPage(p int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p = paginate.Clamp(p, len(b.entries[b.lane]), b.pageSize)
	if p == b.page {
		return
	}
	b.page = p
	b.sel.Clear()
}

// NextPage moves one page forward if possible.
func (b *Board) NextPage() {
	b.SetPage(b.Window().Page + 1)
}

// PrevPage moves one page back if possible.
func (b *Board) PrevPage() {
	b.SetPage(b.Window().Page - 1)
}

// Entries returns every entry of lane l.
func (b *Board) Entries(l notification.Lane) []notification.Group {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.entries[l]
}

// Visible returns the entries of the active lane on the active page.
func (b *Board) Visible() []notification.Group {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.visibleLocked()
}

func (b *Board) visibleLocked() []notification.Group {
	return paginate.Page(b.entries[b.lane], b.page, b.pageSize)
}

// Counts returns the number of records and unread records per lane.
func (b *Board) Counts() map[notification.Lane]LaneCount {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make(map[notification.Lane]LaneCount, len(notification.Lanes))
	for _, l := range notification.Lanes {
		recs := b.partition.Lane(l)
		c := LaneCount{Records: len(recs), Entries: len(b.entries[l])}
		for _, r := range recs {
			if !r.Read {
				c.Unread++
			}
		}
		out[l] = c
	}
	return out
}

// LaneCount summarizes one lane.
type LaneCount struct {
	Records int
	Entries int
	Unread  int
}

// Find returns the record with the given id.
func (b *Board) Find(id string) (notification.Record, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, r := range b.records {
		if r.ID == id {
			return r, true
		}
	}
	return notification.Record{}, false
}

// GroupOf returns the lane entry containing record id.
func (b *Board) GroupOf(id string) (notification.Group, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, l := range notification.Lanes {
		for _, g := range b.entries[l] {
			if g.Contains(id) {
				return g, true
			}
		}
	}
	return notification.Group{}, false
}

// PatchRead updates the read flag of one record in place without a refetch.
// It reports whether the record was found.
func (b *Board) PatchRead(id string, read bool) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	patched := make([]notification.Record, len(b.records))
	copy(patched, b.records)

	found := false
	for i := range patched {
		if patched[i].ID == id {
			patched[i].Read = read
			found = true
			break
		}
	}
	if !found {
		return false
	}

	b.rebuild(patched)
	return true
}

// Toggle flips the selection of a single record id. Ids not in the last
// fetch are ignored.
func (b *Board) Toggle(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.knownLocked([]string{id})) == 0 {
		return
	}
	b.sel.Toggle(id)
}

// ToggleGroup selects the rest of g, or deselects it when fully selected.
// Members not in the last fetch are ignored.
func (b *Board) ToggleGroup(g notification.Group) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ids := b.knownLocked(g.MemberIDs)
	if len(ids) == 0 {
		return
	}
	b.sel.ToggleGroup(ids)
}

// knownLocked keeps the ids present in the last fetch, in order.
func (b *Board) knownLocked(ids []string) []string {
	known := make(map[string]struct{}, len(b.records))
	for _, r := range b.records {
		known[r.ID] = struct{}{}
	}

	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := known[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// SelectAllVisible toggles selection of every record on the active page.
func (b *Board) SelectAllVisible() {
	b.mu.Lock()
	defer b.mu.Unlock()

	var ids []string
	for _, g := range b.visibleLocked() {
		ids = append(ids, g.MemberIDs...)
	}
	b.sel.SelectAllVisible(ids)
}

// IsGroupFullySelected reports whether every member of g is selected.
func (b *Board) IsGroupFullySelected(g notification.Group) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sel.IsFullySelected(g.MemberIDs)
}

// IsGroupPartiallySelected reports whether some but not all members of g are
// selected.
func (b *Board) IsGroupPartiallySelected(g notification.Group) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sel.IsPartiallySelected(g.MemberIDs)
}

// Selected returns the selected record ids in sorted order.
func (b *Board) Selected() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sel.IDs()
}

// ClearSelection empties the selection.
func (b *Board) ClearSelection() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sel.Clear()
}
