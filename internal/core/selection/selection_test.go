package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_Toggle(t *testing.T) {
	s := New()

	s.Toggle("a")
	assert.True(t, s.Has("a"))
	assert.Equal(t, 1, s.Len())

	s.Toggle("a")
	assert.False(t, s.Has("a"))
	assert.Equal(t, 0, s.Len())
}

func TestSet_IsFullySelected(t *testing.T) {
	s := New()
	s.Toggle("a")
	s.Toggle("b")

	assert.True(t, s.IsFullySelected([]string{"a", "b"}))
	assert.False(t, s.IsFullySelected([]string{"a", "b", "c"}))
	assert.False(t, s.IsFullySelected(nil), "empty group is never fully selected")
}

func TestSet_ToggleGroup(t *testing.T) {
	group := []string{"a", "b", "c"}

	t.Run("selects the rest of a partial group", func(t *testing.T) {
		s := New()
		s.Toggle("b")
		assert.True(t, s.IsPartiallySelected(group))

		s.ToggleGroup(group)
		assert.True(t, s.IsFullySelected(group))
		assert.False(t, s.IsPartiallySelected(group))
	})

	t.Run("deselects a full group", func(t *testing.T) {
		s := New()
		s.ToggleGroup(group)
		s.ToggleGroup(group)
		assert.Equal(t, 0, s.Len())
	})

	t.Run("leaves unrelated ids alone", func(t *testing.T) {
		s := New()
		s.Toggle("z")
		s.ToggleGroup(group)
		s.ToggleGroup(group)
		assert.Equal(t, []string{"z"}, s.IDs())
	})
}

func TestSet_SelectAllVisible(t *testing.T) {
	visible := []string{"p1", "p2"}

	s := New()
	s.Toggle("other")
	s.SelectAllVisible(visible)
	assert.Equal(t, []string{"p1", "p2"}, s.IDs(), "select-all replaces the set with the page")

	s.SelectAllVisible(visible)
	assert.Equal(t, 0, s.Len(), "select-all on a fully selected page clears it")

	s.SelectAllVisible(nil)
	assert.Equal(t, 0, s.Len())
}

func TestSet_IDsSorted(t *testing.T) {
	s := New()
	for _, id := range []string{"c", "a", "b"} {
		s.Toggle(id)
	}
	assert.Equal(t, []string{"a", "b", "c"}, s.IDs())

	s.Clear()
	assert.Empty(t, s.IDs())
}
