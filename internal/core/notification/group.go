package notification

import (
	"slices"
	"time"
)

// GroupKey identifies one logical send. Records sharing a key are treated as
// the per-recipient copies of the same broadcast.
//
// Two separate sends with identical title, message and type inside the same
// minute collapse into one group. The backend does not return a batch id, so
// there is nothing better to key on.
type GroupKey struct {
	Title   string
	Message string
	Type    Type
	Minute  time.Time
}

// KeyOf builds the grouping key for r. CreatedAt is truncated to the whole
// minute so per-recipient writes spread over a few seconds still match.
func KeyOf(r Record) GroupKey {
	return GroupKey{
		Title:   r.Title,
		Message: r.Message,
		Type:    r.Type,
		Minute:  r.CreatedAt.UTC().Truncate(time.Minute),
	}
}

// Group is one logical send reconstructed from its physical records.
type Group struct {
	Key            GroupKey
	Representative Record
	RecipientCount int
	MemberIDs      []string
	TargetUsers    []string
}

// Single wraps r as a group of one. Order notifications are listed this way
// so every lane entry exposes the same member-id surface.
func Single(r Record) Group {
	return Group{
		Key:            KeyOf(r),
		Representative: r,
		RecipientCount: 1,
		MemberIDs:      []string{r.ID},
		TargetUsers:    []string{r.TargetUser},
	}
}

// Contains reports whether id is one of the group's members.
func (g Group) Contains(id string) bool {
	return slices.Contains(g.MemberIDs, id)
}

// GroupBroadcasts folds records into groups keyed by KeyOf. Member ids keep
// encounter order. Groups are returned newest first; ties keep encounter
// order.
func GroupBroadcasts(records []Record) []Group {
	groups := make([]Group, 0)
	index := make(map[GroupKey]int)

	for _, r := range records {
		key := KeyOf(r)
		if i, ok := index[key]; ok {
			g := &groups[i]
			g.RecipientCount++
			g.MemberIDs = append(g.MemberIDs, r.ID)
			g.TargetUsers = append(g.TargetUsers, r.TargetUser)
			continue
		}

		index[key] = len(groups)
		groups = append(groups, Group{
			Key:            key,
			Representative: r,
			RecipientCount: 1,
			MemberIDs:      []string{r.ID},
			TargetUsers:    []string{r.TargetUser},
		})
	}

	slices.SortStableFunc(groups, func(a, b Group) int {
		return b.Representative.CreatedAt.Compare(a.Representative.CreatedAt)
	})

	return groups
}

// Singles wraps every record as a group of one, preserving order.
func Singles(records []Record) []Group {
	out := make([]Group, len(records))
	for i, r := range records {
		out[i] = Single(r)
	}
	return out
}
