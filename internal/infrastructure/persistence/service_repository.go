package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/fieldops/backend/internal/domain/catalog"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/infrastructure/persistence/models"
	"github.com/fieldops/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormServiceRepository implements ServiceRepository using GORM
type GormServiceRepository struct {
	db *gorm.DB
}

// NewGormServiceRepository creates a new GormServiceRepository
func NewGormServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{db: db}
}

// FindByIDForTenant finds a live service by ID within a tenant
func (r *GormServiceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Service, error) {
	var model models.ServiceModel
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

// FindAllForTenant finds one page of a tenant's services
func (r *GormServiceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Service, error) {
	var serviceModels []models.ServiceModel
	query := r.db.WithContext(ctx).Model(&models.ServiceModel{}).Scopes(tenant.Live(tenantID))
	query = applyPaging(r.applyFilterWithoutPagination(query, filter), filter, ServiceSortFields, "name")

	if err := query.Find(&serviceModels).Error; err != nil {
		return nil, err
	}
	services := make([]catalog.Service, len(serviceModels))
	for i, model := range serviceModels {
		services[i] = *model.ToDomain()
	}
	return services, nil
}

// CountForTenant counts a tenant's services matching the filter
func (r *GormServiceRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ServiceModel{}).Scopes(tenant.Live(tenantID))
	if err := r.applyFilterWithoutPagination(query, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a service
func (r *GormServiceRepository) Save(ctx context.Context, s *catalog.Service) error {
	return r.db.WithContext(ctx).Save(models.ServiceModelFromDomain(s)).Error
}

// ExistsByCode checks if a live service with the given code exists in the tenant
func (r *GormServiceRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ServiceModel{}).
		Scopes(tenant.Live(tenantID)).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormServiceRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "code", "name")

	for key, value := range filter.Filters {
		switch key {
		case catalog.FilterIsActive:
			if active, ok := boolValue(value); ok {
				query = query.Where("is_active = ?", active)
			}
		}
	}
	return query
}

// Ensure GormServiceRepository implements ServiceRepository
var _ catalog.ServiceRepository = (*GormServiceRepository)(nil)
