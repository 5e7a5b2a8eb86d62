package listing

// Page is one slice of a paginated collection.
type Page[T any] struct {
	Items      []T
	Number     int
	TotalPages int
	PerPage    int
	Total      int
}

// Paginate returns page number page of items. perPage below 1 is treated as
// 1 and page is clamped into [1, max(1, totalPages)].
func Paginate[T any](items []T, perPage, page int) Page[T] {
	perPage = max(perPage, 1)
	total := totalPages(len(items), perPage)
	page = clamp(page, total)

	start := min((page-1)*perPage, len(items))
	end := min(start+perPage, len(items))
	out := make([]T, end-start)
	copy(out, items[start:end])

	return Page[T]{
		Items:      out,
		Number:     page,
		TotalPages: total,
		PerPage:    perPage,
		Total:      len(items),
	}
}

// Paginator tracks the current page of a collection that may change size.
// It is not safe for concurrent use.
type Paginator[T any] struct {
	items   []T
	perPage int
	page    int
}

// NewPaginator starts at initialPage, clamped into range.
func NewPaginator[T any](items []T, perPage, initialPage int) *Paginator[T] {
	p := &Paginator[T]{items: items, perPage: max(perPage, 1), page: initialPage}
	p.page = clamp(p.page, p.TotalPages())
	return p
}

// SetItems replaces the collection and re-clamps the current page.
func (p *Paginator[T]) SetItems(items []T) {
	p.items = items
	p.page = clamp(p.page, p.TotalPages())
}

// Page returns the current page number, starting at 1.
func (p *Paginator[T]) Page() int { return p.page }

// TotalPages returns ceil(len/perPage); 0 for an empty collection.
func (p *Paginator[T]) TotalPages() int { return totalPages(len(p.items), p.perPage) }

// Items returns a copy of the current page's items.
func (p *Paginator[T]) Items() []T {
	return Paginate(p.items, p.perPage, p.page).Items
}

// Next advances one page; it does nothing on the last page.
func (p *Paginator[T]) Next() {
	if p.page < p.TotalPages() {
		p.page++
	}
}

// Prev goes back one page; it does nothing on the first page.
func (p *Paginator[T]) Prev() {
	if p.page > 1 {
		p.page--
	}
}

// GoTo jumps to page, clamped into range.
func (p *Paginator[T]) GoTo(page int) {
	p.page = clamp(page, p.TotalPages())
}

func totalPages(count, perPage int) int {
	if count == 0 {
		return 0
	}
	return (count-1)/perPage + 1
}

func clamp(page, total int) int {
	return min(max(page, 1), max(total, 1))
}
