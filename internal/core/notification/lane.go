package notification

import (
	"fmt"
	"slices"
	"strings"
)

// Lane is one of the two mutually exclusive listings. The string values are
// also the discriminators the backend expects on delete-all.
type Lane string

const (
	LaneOrders  Lane = "orders"
	LaneCreated Lane = "created"
)

// Lanes lists every lane in display order.
var Lanes = []Lane{LaneOrders, LaneCreated}

// ParseLane converts s into a Lane.
func ParseLane(s string) (Lane, error) {
	switch Lane(strings.ToLower(strings.TrimSpace(s))) {
	case LaneOrders, "order":
		return LaneOrders, nil
	case LaneCreated:
		return LaneCreated, nil
	default:
		return "", fmt.Errorf("unknown lane %q (want %q or %q)", s, LaneOrders, LaneCreated)
	}
}

// Label is the human readable lane name.
func (l Lane) Label() string {
	switch l {
	case LaneOrders:
		return "Order notifications"
	case LaneCreated:
		return "Sent notifications"
	default:
		return string(l)
	}
}

// Other returns the opposite lane.
func (l Lane) Other() Lane {
	if l == LaneOrders {
		return LaneCreated
	}
	return LaneOrders
}

// Partition is the result of Classify. Every input record lands in exactly
// one of the two slices.
type Partition struct {
	Orders  []Record
	Created []Record
}

// Lane returns the records of lane l.
func (p Partition) Lane(l Lane) []Record {
	if l == LaneOrders {
		return p.Orders
	}
	return p.Created
}

var (
	orderTitleMarkers   = []string{"Đơn hàng mới", "New Order"}
	// "Đơn hàng" covers messages that open with the phrase.
	orderMessageMarkers = []string{"đơn hàng", "Đơn hàng", "order"}
)

// IsOrderTriggered reports whether r was produced by an order placement on
// the backend rather than authored by an admin. Matching is case-sensitive
// substring matching on free text; an admin message that happens to say
// "order" is classified as an order notification.
func IsOrderTriggered(r Record) bool {
	for _, m := range orderTitleMarkers {
		if strings.Contains(r.Title, m) {
			return true
		}
	}
	for _, m := range orderMessageMarkers {
		if strings.Contains(r.Message, m) {
			return true
		}
	}
	return r.Type == TypeOrder
}

// LaneOf returns the lane r is classified into.
func LaneOf(r Record) Lane {
	if IsOrderTriggered(r) {
		return LaneOrders
	}
	return LaneCreated
}

// Classify partitions records into the order and created lanes. The order
// lane is sorted newest first; the created lane keeps input order since it is
// grouped afterwards.
func Classify(records []Record) Partition {
	p := Partition{
		Orders:  make([]Record, 0),
		Created: make([]Record, 0),
	}

	for _, r := range records {
		if IsOrderTriggered(r) {
			p.Orders = append(p.Orders, r)
		} else {
			p.Created = append(p.Created, r)
		}
	}

	slices.SortStableFunc(p.Orders, func(a, b Record) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return p
}

// Entries builds the listing for lane l: order records one per entry, created
// records grouped into broadcasts.
func (p Partition) Entries(l Lane) []Group {
	if l == LaneOrders {
		return Singles(p.Orders)
	}
	return GroupBroadcasts(p.Created)
}
