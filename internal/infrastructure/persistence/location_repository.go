package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fieldops/backend/internal/domain/customer"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/infrastructure/persistence/models"
	"github.com/fieldops/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLocationRepository implements LocationRepository using GORM
type GormLocationRepository struct {
	db  *gorm.DB
	tdb *tenant.TenantDB
}

// NewGormLocationRepository creates a new GormLocationRepository
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db, tdb: tenant.NewTenantDB(db)}
}

// FindByIDForTenant finds a live location by ID within a tenant
func (r *GormLocationRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*customer.Location, error) {
	var model models.LocationModel
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

// FindAllForTenant finds one page of a tenant's locations
func (r *GormLocationRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]customer.Location, error) {
	var locationModels []models.LocationModel
	query := r.db.WithContext(ctx).Model(&models.LocationModel{}).Scopes(tenant.Live(tenantID))
	query = applyPaging(r.applyFilterWithoutPagination(query, filter), filter, LocationSortFields, "name")

	if err := query.Find(&locationModels).Error; err != nil {
		return nil, err
	}
	locations := make([]customer.Location, len(locationModels))
	for i, model := range locationModels {
		locations[i] = *model.ToDomain()
	}
	return locations, nil
}

// CountForTenant counts a tenant's locations matching the filter
func (r *GormLocationRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.LocationModel{}).Scopes(tenant.Live(tenantID))
	if err := r.applyFilterWithoutPagination(query, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a location
func (r *GormLocationRepository) Save(ctx context.Context, l *customer.Location) error {
	return r.db.WithContext(ctx).Save(models.LocationModelFromDomain(l)).Error
}

// SaveAsPrimary saves l as the only primary location of its customer. The
// customer row is locked first so concurrent swaps for one customer run one
// after the other; a failed save leaves the previous primary in place.
func (r *GormLocationRepository) SaveAsPrimary(ctx context.Context, l *customer.Location) error {
	return r.tdb.Transaction(ctx, func(tx *gorm.DB, tenantID uuid.UUID) error {
		if l.TenantID != tenantID {
			return shared.ErrNotFound
		}
		var owner models.CustomerModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Scopes(tenant.Live(tenantID)).
			Select("id").
			Where("id = ?", l.CustomerID).
			First(&owner).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return fmt.Errorf("failed to lock customer: %w", err)
		}

		if err := tx.Model(&models.LocationModel{}).
			Scopes(tenant.Live(tenantID)).
			Where("customer_id = ? AND is_primary = ? AND id <> ?", l.CustomerID, true, l.ID).
			Updates(map[string]interface{}{
				"is_primary": false,
				"updated_at": time.Now(),
			}).Error; err != nil {
			return fmt.Errorf("failed to clear primary location: %w", err)
		}

		l.SetPrimary(true)
		if err := tx.Save(models.LocationModelFromDomain(l)).Error; err != nil {
			return fmt.Errorf("failed to save location: %w", err)
		}
		return nil
	})
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormLocationRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "name", "address_line1", "city", "postal_code")

	for key, value := range filter.Filters {
		switch key {
		case customer.FilterCustomerID:
			if id, ok := uuidValue(value); ok {
				query = query.Where("customer_id = ?", id)
			}
		case customer.FilterCity:
			if city, ok := stringValue(value); ok {
				query = query.Where("city = ?", city)
			}
		case customer.FilterIsActive:
			if active, ok := boolValue(value); ok {
				query = query.Where("is_active = ?", active)
			}
		case customer.FilterIsPrimary:
			if primary, ok := boolValue(value); ok {
				query = query.Where("is_primary = ?", primary)
			}
		}
	}
	return query
}

// Ensure GormLocationRepository implements LocationRepository
var _ customer.LocationRepository = (*GormLocationRepository)(nil)
