package repo

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxPage      = 1_000_000
	MaxLimit     = 100
)

// PageOptions selects one page of a listing. Zero values fall back to
// DefaultPage and DefaultLimit. The binding bounds mirror MaxPage and
// MaxLimit so Offset cannot overflow.
type PageOptions struct {
	Page  int `json:"page" form:"page" binding:"omitempty,min=1,max=1000000"`
	Limit int `json:"limit" form:"limit" binding:"omitempty,min=1,max=100"`
}

// Normalize fills in defaults and clamps out-of-range values.
func (o PageOptions) Normalize() PageOptions {
	switch {
	case o.Page < 1:
		o.Page = DefaultPage
	case o.Page > MaxPage:
		o.Page = MaxPage
	}
	switch {
	case o.Limit < 1:
		o.Limit = DefaultLimit
	case o.Limit > MaxLimit:
		o.Limit = MaxLimit
	}
	return o
}

// Offset is the number of documents skipped before this page.
func (o PageOptions) Offset() int {
	o = o.Normalize()
	return (o.Page - 1) * o.Limit
}

// Page is the pagination envelope returned by every listing. Field names
// match what mongoose-paginate-v2 clients expect.
type Page[T any] struct {
	Docs          []T   `json:"docs"`
	TotalDocs     int64 `json:"totalDocs"`
	Limit         int   `json:"limit"`
	Page          int   `json:"page"`
	TotalPages    int   `json:"totalPages"`
	PagingCounter int   `json:"pagingCounter"`
	HasPrevPage   bool  `json:"hasPrevPage"`
	HasNextPage   bool  `json:"hasNextPage"`
	PrevPage      *int  `json:"prevPage"`
	NextPage      *int  `json:"nextPage"`
}

// NewPage builds the envelope for docs, the slice of matches at opts,
// out of total matching documents.
func NewPage[T any](docs []T, total int64, opts PageOptions) *Page[T] {
	opts = opts.Normalize()
	if docs == nil {
		docs = []T{}
	}
	pages := int((total + int64(opts.Limit) - 1) / int64(opts.Limit))
	if pages < 1 {
		pages = 1
	}
	p := &Page[T]{
		Docs:          docs,
		TotalDocs:     total,
		Limit:         opts.Limit,
		Page:          opts.Page,
		TotalPages:    pages,
		PagingCounter: opts.Offset() + 1,
		HasPrevPage:   opts.Page > 1,
		HasNextPage:   opts.Page < pages,
	}
	if p.HasPrevPage {
		prev := opts.Page - 1
		p.PrevPage = &prev
	}
	if p.HasNextPage {
		next := opts.Page + 1
		p.NextPage = &next
	}
	return p
}
