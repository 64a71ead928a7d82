package utils

// PerPage is the fixed listing page size.
const PerPage = 10

// Pagination describes one window over an ordered result sequence.
type Pagination struct {
	Page       int
	TotalPages int
	Total      int64
}

// NewPagination clamps the requested page into the valid range. A
// page below 1 becomes 1 and a page past the end becomes the last
// page, so stale links still render something sensible.
func NewPagination(page int, total int64) Pagination {
	totalPages := int((total + PerPage - 1) / PerPage)
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return Pagination{Page: page, TotalPages: totalPages, Total: total}
}

// Offset returns the query offset for the current page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * PerPage
}

// Slice cuts the current page's window out of an in-memory sequence.
func Slice[T any](items []T, p Pagination) []T {
	start := p.Offset()
	if start > len(items) {
		return nil
	}
	end := start + PerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func (p Pagination) HasPrev() bool { return p.Page > 1 }
func (p Pagination) HasNext() bool { return p.Page < p.TotalPages }
func (p Pagination) PrevPage() int { return p.Page - 1 }
func (p Pagination) NextPage() int { return p.Page + 1 }
