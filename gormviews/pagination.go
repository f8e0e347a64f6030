package gormviews

// Pagination describes one page of a paginated object list.
type Pagination[T any] struct {
	Page    int
	PerPage int
	Total   int64
	Items   []T
}

// Pages returns the total number of pages.
func (p *Pagination[T]) Pages() int {
	if p.PerPage < 1 {
		return 0
	}
	return int((p.Total + int64(p.PerPage) - 1) / int64(p.PerPage))
}

// HasPrev reports whether a previous page exists.
func (p *Pagination[T]) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether a next page exists.
func (p *Pagination[T]) HasNext() bool {
	return p.Page < p.Pages()
}

// PrevNum returns the previous page number.
func (p *Pagination[T]) PrevNum() int {
	return p.Page - 1
}

// NextNum returns the next page number.
func (p *Pagination[T]) NextNum() int {
	return p.Page + 1
}
