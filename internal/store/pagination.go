package store

// Page limits for listings.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is an offset page request.
type Page struct {
	Limit  int
	Offset int
}

// DefaultPage returns the first page with the default size.
func DefaultPage() Page {
	return Page{Limit: DefaultLimit}
}

// Validate clamps the page to accepted bounds.
func (p *Page) Validate() {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// Paginated is one page of results with the total match count.
type Paginated[T any] struct {
	Items  []T
	Total  int
	Limit  int
	Offset int
}
