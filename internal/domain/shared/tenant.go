package shared

import (
	"context"

	"github.com/google/uuid"
)

type tenantContextKey struct{}

// WithTenantID returns a child context carrying the caller's tenant
func WithTenantID(ctx context.Context, tenantID uuid.UUID) context.Context {
	return context.WithValue(ctx, tenantContextKey{}, tenantID)
}

// TenantIDFromContext returns the tenant carried on ctx. The second result is
// false when the caller has no tenant (unauthenticated or claim-less).
func TenantIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	if ctx == nil {
		return uuid.Nil, false
	}
	id, ok := ctx.Value(tenantContextKey{}).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
