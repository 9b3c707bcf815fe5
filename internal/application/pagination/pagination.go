package pagination

// DefaultPageSize matches the admin table's rows per page.
const DefaultPageSize = 5

// Page is one slice of a larger result set.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// HasPrevious reports whether a page exists before p.
func (p Page[T]) HasPrevious() bool {
	return p.Page > 1
}

// HasNext reports whether a page exists after p.
func (p Page[T]) HasNext() bool {
	return p.Page < p.TotalPages
}

// TotalPages is ceil(count/pageSize), 0 for an empty set.
func TotalPages(count, pageSize int) int {
	if count <= 0 {
		return 0
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return (count + pageSize - 1) / pageSize
}

// Clamp keeps page inside [1, totalPages]; with no pages it returns 1.
func Clamp(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Paginate returns the requested page of items. Out-of-range pages are
// clamped and a non-positive page size falls back to DefaultPageSize.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total := TotalPages(len(items), pageSize)
	page = Clamp(page, total)

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	visible := make([]T, end-start)
	copy(visible, items[start:end])

	return Page[T]{
		Items:      visible,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: len(items),
		TotalPages: total,
	}
}
