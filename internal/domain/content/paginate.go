package content

// Window describes one page of a list paginated in memory.
type Window struct {
	Page       int // 1-based, clamped to [1, TotalPages]
	PageSize   int
	TotalItems int
	TotalPages int // ceil(TotalItems / PageSize); 0 for an empty list
	Start      int // inclusive index into the full list
	End        int // exclusive index into the full list
}

// HasPrev reports whether a previous page exists.
func (w Window) HasPrev() bool { return w.Page > 1 }

// HasNext reports whether a following page exists.
func (w Window) HasNext() bool { return w.Page < w.TotalPages }

// Pages lists page numbers 1..TotalPages for rendering page links.
func (w Window) Pages() []int {
	out := make([]int, w.TotalPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// Paginate returns the slice of items for the requested page. The whole list
// is already in memory; no range outside [0, len(items)) is ever produced.
func Paginate[T any](items []T, page, size int) ([]T, Window) {
	if size <= 0 {
		size = 1
	}
	total := len(items)
	totalPages := (total + size - 1) / size

	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := min(start+size, total)

	return items[start:end], Window{
		Page:       page,
		PageSize:   size,
		TotalItems: total,
		TotalPages: totalPages,
		Start:      start,
		End:        end,
	}
}
