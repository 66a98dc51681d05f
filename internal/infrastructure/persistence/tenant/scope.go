// Package tenant provides multi-tenant database scoping for GORM.
//
// Every tenant-owned table carries tenant_id and is_deleted columns. Live
// restricts a query to one tenant's rows that are not soft-deleted; it is the
// single place that predicate is written.
//
// Usage:
//
//	db.WithContext(ctx).Model(&models.CustomerModel{}).Scopes(tenant.Live(tenantID))
//	tenant.NewTenantDB(gormDB).Transaction(ctx, func(tx *gorm.DB, tenantID uuid.UUID) error { ... })
package tenant

import (
	"context"
	"errors"

	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrTenantIDRequired is returned when tenant_id is required but not found
var ErrTenantIDRequired = errors.New("tenant_id is required but not found in context")

// TenantScope applies tenant filtering to GORM queries
func TenantScope(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}

// NotDeleted excludes soft-deleted rows
func NotDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}

// Live restricts a query to the tenant's rows that are not soft-deleted
func Live(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if tenantID == uuid.Nil {
			_ = db.AddError(ErrTenantIDRequired)
			return db
		}
		return db.Scopes(TenantScope(tenantID), NotDeleted)
	}
}

// TenantDB runs transactions on behalf of the tenant carried on the request context
type TenantDB struct {
	db *gorm.DB
}

// NewTenantDB creates a new TenantDB
func NewTenantDB(db *gorm.DB) *TenantDB {
	return &TenantDB{db: db}
}

// Transaction executes fn in a transaction for the tenant on ctx. fn receives
// that tenant so every statement can be scoped with Live. Without a tenant fn
// never runs.
func (t *TenantDB) Transaction(ctx context.Context, fn func(tx *gorm.DB, tenantID uuid.UUID) error) error {
	tenantID, ok := shared.TenantIDFromContext(ctx)
	if !ok || tenantID == uuid.Nil {
		return ErrTenantIDRequired
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(tx, tenantID)
	})
}
