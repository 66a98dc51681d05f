package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/domain/workorder"
	"github.com/fieldops/backend/internal/infrastructure/persistence/models"
	"github.com/fieldops/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWorkOrderRepository implements WorkOrderRepository using GORM
type GormWorkOrderRepository struct {
	db *gorm.DB
}

// NewGormWorkOrderRepository creates a new GormWorkOrderRepository
func NewGormWorkOrderRepository(db *gorm.DB) *GormWorkOrderRepository {
	return &GormWorkOrderRepository{db: db}
}

// FindByIDForTenant finds a live work order by ID within a tenant, with its items
func (r *GormWorkOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*workorder.WorkOrder, error) {
	var model models.WorkOrderModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Live(tenantID)).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds one page of a tenant's work orders. Items are not
// loaded; totals come from the stored total_amount.
func (r *GormWorkOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]workorder.WorkOrder, error) {
	var orderModels []models.WorkOrderModel
	query := r.db.WithContext(ctx).Model(&models.WorkOrderModel{}).Scopes(tenant.Live(tenantID))
	query = applyPaging(r.applyFilterWithoutPagination(query, filter), filter, WorkOrderSortFields, "created_at")

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}
	orders := make([]workorder.WorkOrder, len(orderModels))
	for i, model := range orderModels {
		orders[i] = *model.ToDomain()
	}
	return orders, nil
}

// CountForTenant counts a tenant's work orders matching the filter
func (r *GormWorkOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.WorkOrderModel{}).Scopes(tenant.Live(tenantID))
	if err := r.applyFilterWithoutPagination(query, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a work order and replaces its items in one
// transaction. A number already taken within the tenant is a conflict.
func (r *GormWorkOrderRepository) Save(ctx context.Context, w *workorder.WorkOrder) error {
	model := models.WorkOrderModelFromDomain(w)
	items := model.Items
	model.Items = nil

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			return fmt.Errorf("failed to save work order: %w", err)
		}
		if err := tx.Where("work_order_id = ?", model.ID).Delete(&models.WorkOrderItemModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear work order items: %w", err)
		}
		if len(items) == 0 {
			return nil
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("failed to save work order items: %w", err)
		}
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrWorkOrderNumberTaken
	}
	return err
}

// ErrWorkOrderNumberTaken reports a collision on uq_work_orders_tenant_number
var ErrWorkOrderNumberTaken = shared.NewDomainError("CONFLICT", "Work order number is already in use, please retry")

// nextSequenceSQL bumps the tenant's counter for the day and returns the new
// value. The row lock taken by the upsert serializes concurrent callers.
const nextSequenceSQL = `INSERT INTO work_order_sequences (tenant_id, day, last_value) VALUES (?, ?, 1)
ON CONFLICT (tenant_id, day) DO UPDATE SET last_value = work_order_sequences.last_value + 1
RETURNING last_value`

// NextNumber allocates the next WO-YYYYMMDD-NNNN number for the tenant and
// day from the work_order_sequences counter. Numbers are never handed out
// twice, even when the work order that took one is never saved.
func (r *GormWorkOrderRepository) NextNumber(ctx context.Context, tenantID uuid.UUID, day time.Time) (string, error) {
	if tenantID == uuid.Nil {
		return "", tenant.ErrTenantIDRequired
	}
	dayKey := day.UTC().Format("20060102")

	var next int64
	if err := r.db.WithContext(ctx).Raw(nextSequenceSQL, tenantID, dayKey).Scan(&next).Error; err != nil {
		return "", fmt.Errorf("failed to allocate work order number: %w", err)
	}
	return fmt.Sprintf("WO-%s-%04d", dayKey, next), nil
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormWorkOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "number", "description")

	for key, value := range filter.Filters {
		switch key {
		case workorder.FilterCustomerID:
			if id, ok := uuidValue(value); ok {
				query = query.Where("customer_id = ?", id)
			}
		case workorder.FilterLocationID:
			if id, ok := uuidValue(value); ok {
				query = query.Where("location_id = ?", id)
			}
		case workorder.FilterAppointmentID:
			if id, ok := uuidValue(value); ok {
				query = query.Where("appointment_id = ?", id)
			}
		case workorder.FilterStatus:
			if status, ok := stringValue(value); ok {
				query = query.Where("status = ?", status)
			}
		}
	}
	return query
}

// Ensure GormWorkOrderRepository implements WorkOrderRepository
var _ workorder.WorkOrderRepository = (*GormWorkOrderRepository)(nil)
