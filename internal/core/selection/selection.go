// Package selection tracks the record ids marked for a pending bulk action.
package selection

import (
	"maps"
	"slices"
)

// Set is a set of selected record ids. It has no knowledge of pages or
// lanes; the owner clears it whenever the visible listing changes.
type Set struct {
	ids map[string]struct{}
}

// New returns an empty set.
func New() *Set {
	return &Set{ids: make(map[string]struct{})}
}

// Has reports whether id is selected.
func (s *Set) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected ids.
func (s *Set) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids in sorted order.
func (s *Set) IDs() []string {
	return slices.Sorted(maps.Keys(s.ids))
}

// Toggle adds id if absent, removes it otherwise.
func (s *Set) Toggle(id string) {
	if s.Has(id) {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// IsFullySelected reports whether every id in ids is selected. An empty
// group is never fully selected.
func (s *Set) IsFullySelected(ids []string) bool {
	if len(ids) == 0 {
		return false
	}
	for _, id := range ids {
		if !s.Has(id) {
			return false
		}
	}
	return true
}

// IsPartiallySelected reports whether some, but not all, of ids are selected.
func (s *Set) IsPartiallySelected(ids []string) bool {
	n := 0
	for _, id := range ids {
		if s.Has(id) {
			n++
		}
	}
	return n > 0 && n < len(ids)
}

// ToggleGroup deselects all of ids when they are all selected and selects the
// rest otherwise. A partially selected group becomes fully selected.
func (s *Set) ToggleGroup(ids []string) {
	if s.IsFullySelected(ids) {
		for _, id := range ids {
			delete(s.ids, id)
		}
		return
	}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
}

// SelectAllVisible clears the set when every visible id is already selected,
// otherwise replaces the set with exactly the visible ids.
func (s *Set) SelectAllVisible(visible []string) {
	if s.IsFullySelected(visible) {
		s.Clear()
		return
	}
	s.Clear()
	for _, id := range visible {
		s.ids[id] = struct{}{}
	}
}

// Clear empties the set.
func (s *Set) Clear() {
	clear(s.ids)
}
