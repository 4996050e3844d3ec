package browse

// DefaultPageSize is the fixed page size of all list views.
const DefaultPageSize = 10

// Page is one window into a filtered, sorted collection. Pages are
// 1-indexed. HasNext and HasPrev drive the navigation controls: moving past
// the bounds is prevented by disabling the control, never by silently
// clamping a requested page.
type Page[T any] struct {
	Items      []T  `json:"items"`
	PageNumber int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// Paginate slices the collection into the requested 1-indexed page of the
// given size. A size below 1 falls back to DefaultPageSize. Pages outside
// the valid range yield an empty item list with the bookkeeping fields
// still filled in, so the caller can render "page X of Y" and disabled
// controls rather than an error.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size < 1 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	total := len(items)
	totalPages := (total + size - 1) / size

	p := Page[T]{
		Items:      []T{},
		PageNumber: page,
		PageSize:   size,
		TotalItems: total,
		TotalPages: totalPages,
	}

	start := (page - 1) * size
	if start < total {
		end := start + size
		if end > total {
			end = total
		}
		p.Items = items[start:end]
	}

	p.HasPrev = page > 1
	p.HasNext = page < totalPages
	return p
}
