package persistence

import (
	"context"
	"errors"

	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/domain/workorder"
	"github.com/fieldops/backend/internal/infrastructure/persistence/models"
	"github.com/fieldops/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAttachmentRepository implements AttachmentRepository using GORM
type GormAttachmentRepository struct {
	db *gorm.DB
}

// NewGormAttachmentRepository creates a new GormAttachmentRepository
func NewGormAttachmentRepository(db *gorm.DB) *GormAttachmentRepository {
	return &GormAttachmentRepository{db: db}
}

// FindByIDForTenant finds a live attachment by ID within a tenant
func (r *GormAttachmentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*workorder.Attachment, error) {
	var model models.AttachmentModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Live(tenantID)).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds one page of a tenant's attachments
func (r *GormAttachmentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]workorder.Attachment, error) {
	var attachmentModels []models.AttachmentModel
	query := r.db.WithContext(ctx).Model(&models.AttachmentModel{}).Scopes(tenant.Live(tenantID))
	query = applyPaging(r.applyFilterWithoutPagination(query, filter), filter, AttachmentSortFields, "created_at")

	if err := query.Find(&attachmentModels).Error; err != nil {
		return nil, err
	}
	attachments := make([]workorder.Attachment, len(attachmentModels))
	for i, model := range attachmentModels {
		attachments[i] = *model.ToDomain()
	}
	return attachments, nil
}

// CountForTenant counts a tenant's attachments matching the filter
func (r *GormAttachmentRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.AttachmentModel{}).Scopes(tenant.Live(tenantID))
	if err := r.applyFilterWithoutPagination(query, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an attachment
func (r *GormAttachmentRepository) Save(ctx context.Context, a *workorder.Attachment) error {
	return r.db.WithContext(ctx).Save(models.AttachmentModelFromDomain(a)).Error
}

func (r *GormAttachmentRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "file_name")

	for key, value := range filter.Filters {
		switch key {
		case workorder.FilterWorkOrderID:
			if id, ok := uuidValue(value); ok {
				query = query.Where("work_order_id = ?", id)
			}
		case workorder.FilterStatus:
			if status, ok := stringValue(value); ok {
				query = query.Where("status = ?", status)
			}
		}
	}
	return query
}

// Ensure GormAttachmentRepository implements AttachmentRepository
var _ workorder.AttachmentRepository = (*GormAttachmentRepository)(nil)
