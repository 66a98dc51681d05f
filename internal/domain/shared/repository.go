package shared

import (
	"context"

	"github.com/google/uuid"
)

// TenantRepository is the data-access contract every tenant-scoped collection
// offers. Implementations always restrict to the given tenant and to records
// that are not soft-deleted.
type TenantRepository[T any] interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*T, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter Filter) ([]T, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter Filter) (int64, error)
	Save(ctx context.Context, entity *T) error
}

// Pagination defaults
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Filter is the criteria struct handed to repositories. Filters holds only the
// optional predicates the caller actually supplied; an absent key is a no-op.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: DefaultPageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
}

// Set records an optional predicate
func (f *Filter) Set(key string, value interface{}) {
	if f.Filters == nil {
		f.Filters = make(map[string]interface{})
	}
	f.Filters[key] = value
}

// Normalize clamps page bounds: page below 1 becomes 1, a non-positive size
// becomes defaultSize and sizes above maxSize are capped.
func (f Filter) Normalize(defaultSize, maxSize int) Filter {
	if defaultSize < 1 {
		defaultSize = DefaultPageSize
	}
	if maxSize < defaultSize {
		maxSize = defaultSize
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = defaultSize
	}
	if f.PageSize > maxSize {
		f.PageSize = maxSize
	}
	return f
}

// Offset returns the number of rows to skip
func (f Filter) Offset() int {
	if f.Page < 1 || f.PageSize < 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	PageNumber int   `json:"pageNumber"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(total) / pageSize
		if int(total)%pageSize > 0 {
			totalPages++
		}
	}
	return Paginated[T]{
		Items:      items,
		TotalCount: total,
		PageNumber: page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
