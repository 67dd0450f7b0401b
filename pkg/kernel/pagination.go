package kernel

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PaginationOptions describes a page request
type PaginationOptions struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Normalized returns options with defaults applied and the size capped
func (p PaginationOptions) Normalized() PaginationOptions {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

func (p PaginationOptions) Limit() int  { return p.PageSize }
func (p PaginationOptions) Offset() int { return (p.Page - 1) * p.PageSize }

// Paginated wraps a page of items with totals
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated builds a Paginated result from a page of items
func NewPaginated[T any](items []T, total int64, opts PaginationOptions) *Paginated[T] {
	totalPages := 0
	if opts.PageSize > 0 {
		totalPages = int((total + int64(opts.PageSize) - 1) / int64(opts.PageSize))
	}
	return &Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       opts.Page,
		PageSize:   opts.PageSize,
		TotalPages: totalPages,
	}
}
