package shared

// Sort directions accepted by Filter.OrderDir
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Filter represents query filter options. Limit/Skip follow the store
// vocabulary; Page/PageSize are derived from them for API responses.
type Filter struct {
	Limit    int
	Skip     int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]any
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Limit:    20,
		Skip:     0,
		OrderBy:  "created_at",
		OrderDir: OrderDesc,
		Filters:  make(map[string]any),
	}
}

// MaxPageSize is the largest page a list request may ask for
const MaxPageSize = 500

// WithPage converts a 1-based page and page size into Limit/Skip. Sizes
// above MaxPageSize are clamped before Skip is derived.
func (f Filter) WithPage(page, pageSize int) Filter {
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if page <= 0 {
		page = 1
	}
	f.Limit = pageSize
	f.Skip = (page - 1) * pageSize
	return f
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	if pageSize <= 0 {
		pageSize = 1
	}
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
