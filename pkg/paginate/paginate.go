// Package paginate slices ordered collections into fixed-size, 1-based pages.
// Out of range requests never fail: Page returns an empty slice and Clamp
// pulls the index back into range.
package paginate

// DefaultSize is the page size used by every listing unless configured.
const DefaultSize = 10

// PageCount returns ceil(total/size), never less than 1.
func PageCount(total, size int) int {
	if size < 1 || total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// Clamp returns page constrained to [1, PageCount(total, size)].
func Clamp(page, total, size int) int {
	return min(max(page, 1), PageCount(total, size))
}

// Page returns items[(page-1)*size : page*size]. The result aliases items.
// A page past the end yields an empty slice; a page below 1 is treated as 1.
func Page[T any](items []T, page, size int) []T {
	if size < 1 {
		return items[:0:0]
	}
	page = max(page, 1)

	start := (page - 1) * size
	if start >= len(items) {
		return items[:0:0]
	}
	end := min(start+size, len(items))
	return items[start:end:end]
}

// Window describes the page currently shown for a listing.
type Window struct {
	Page  int `json:"page"`
	Size  int `json:"size"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// NewWindow builds a clamped Window for a listing of total items.
func NewWindow(page, size, total int) Window {
	if size < 1 {
		size = DefaultSize
	}
	return Window{
		Page:  Clamp(page, total, size),
		Size:  size,
		Total: total,
		Pages: PageCount(total, size),
	}
}

// HasNext reports whether a later page exists.
func (w Window) HasNext() bool { return w.Page < w.Pages }

// HasPrev reports whether an earlier page exists.
func (w Window) HasPrev() bool { return w.Page > 1 }

// Offset is the index of the first item of the window.
func (w Window) Offset() int { return (w.Page - 1) * w.Size }
