package paginate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageCount(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{5, 0, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PageCount(tt.total, tt.size), "PageCount(%d, %d)", tt.total, tt.size)
	}
}

func TestPage_CoversEveryItemOnce(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 11, 25, 100} {
		items := make([]int, n)
		for i := range items {
			items[i] = i
		}

		var got []int
		for p := 1; p <= PageCount(n, DefaultSize); p++ {
			page := Page(items, p, DefaultSize)
			assert.LessOrEqual(t, len(page), DefaultSize)
			got = append(got, page...)
		}

		if n == 0 {
			assert.Empty(t, got)
			continue
		}
		assert.Equal(t, items, got, "n=%d", n)
	}
}

func TestPage_OutOfRange(t *testing.T) {
	items := []string{"a", "b", "c"}

	assert.Empty(t, Page(items, 2, 3))
	assert.Empty(t, Page(items, 99, 3))
	assert.Equal(t, []string{"a", "b"}, Page(items, 0, 2), "page below 1 is treated as 1")
	assert.Equal(t, []string{"a", "b"}, Page(items, -4, 2))
	assert.Empty(t, Page(items, 1, 0))
}

func TestPage_DoesNotLeakCapacity(t *testing.T) {
	items := []int{1, 2, 3, 4}
	page := Page(items, 1, 2)
	page = append(page, 99)

	assert.Equal(t, []int{1, 2, 3, 4}, items)
	assert.Equal(t, []int{1, 2, 99}, page)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, Clamp(0, 25, 10))
	assert.Equal(t, 2, Clamp(2, 25, 10))
	assert.Equal(t, 3, Clamp(7, 25, 10))
	assert.Equal(t, 1, Clamp(3, 0, 10))
}

func TestWindow(t *testing.T) {
	w := NewWindow(5, 10, 25)

	assert.Equal(t, Window{Page: 3, Size: 10, Total: 25, Pages: 3}, w)
	assert.False(t, w.HasNext())
	assert.True(t, w.HasPrev())
	assert.Equal(t, 20, w.Offset())

	w = NewWindow(1, 0, 0)
	assert.Equal(t, DefaultSize, w.Size)
	assert.Equal(t, 1, w.Pages)
	assert.False(t, w.HasPrev())
	assert.False(t, w.HasNext())
}
