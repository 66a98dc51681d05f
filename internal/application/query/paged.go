// Package query implements the tenant-scoped paged query shared by every
// list endpoint: resolve the tenant, count, page, project and wrap.
package query

import (
	"context"
	"fmt"

	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TenantContextNotFound is the message of the failed result returned when the
// caller carries no tenant
const TenantContextNotFound = "Tenant context not found"

// PagedSource is the slice of a tenant repository the paged query needs
type PagedSource[T any] interface {
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]T, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}

// Limits is the pagination clamping policy
type Limits struct {
	DefaultPageSize int
	MaxPageSize     int
}

// DefaultLimits returns page size 20 capped at 100
func DefaultLimits() Limits {
	return Limits{
		DefaultPageSize: shared.DefaultPageSize,
		MaxPageSize:     shared.MaxPageSize,
	}
}

// ListPaged runs the paged query against source for the tenant carried on ctx.
//
// A missing tenant yields a failed Result and a nil error. Store failures are
// returned as errors. Page bounds are clamped by limits before the store is
// queried and the effective values are echoed in the result.
func ListPaged[T any, R any](
	ctx context.Context,
	source PagedSource[T],
	filter shared.Filter,
	limits Limits,
	project func(*T) R,
) (Result[shared.Paginated[R]], error) {
	tenantID, ok := shared.TenantIDFromContext(ctx)
	if !ok {
		return Fail[shared.Paginated[R]](TenantContextNotFound), nil
	}

	filter = filter.Normalize(limits.DefaultPageSize, limits.MaxPageSize)

	total, err := source.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return Result[shared.Paginated[R]]{}, fmt.Errorf("count: %w", err)
	}

	items := make([]R, 0, min(filter.PageSize, int(total)))
	if int64(filter.Offset()) < total {
		records, err := source.FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return Result[shared.Paginated[R]]{}, fmt.Errorf("find: %w", err)
		}
		for i := range records {
			items = append(items, project(&records[i]))
		}
	}

	return Ok(shared.NewPaginated(items, total, filter.Page, filter.PageSize)), nil
}

// RequireTenant returns the tenant on ctx or shared.ErrTenantContextMissing
func RequireTenant(ctx context.Context) (uuid.UUID, error) {
	tenantID, ok := shared.TenantIDFromContext(ctx)
	if !ok {
		return uuid.Nil, shared.ErrTenantContextMissing
	}
	return tenantID, nil
}
