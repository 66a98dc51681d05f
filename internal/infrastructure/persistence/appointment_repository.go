package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/fieldops/backend/internal/domain/scheduling"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/infrastructure/persistence/models"
	"github.com/fieldops/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAppointmentRepository implements AppointmentRepository using GORM
type GormAppointmentRepository struct {
	db *gorm.DB
}

// NewGormAppointmentRepository creates a new GormAppointmentRepository
func NewGormAppointmentRepository(db *gorm.DB) *GormAppointmentRepository {
	return &GormAppointmentRepository{db: db}
}

// FindByIDForTenant finds a live appointment by ID within a tenant
func (r *GormAppointmentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*scheduling.Appointment, error) {
	var model models.AppointmentModel
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

// FindAllForTenant finds one page of a tenant's appointments
func (r *GormAppointmentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]scheduling.Appointment, error) {
	var appointmentModels []models.AppointmentModel
	query := r.db.WithContext(ctx).Model(&models.AppointmentModel{}).Scopes(tenant.Live(tenantID))
	query = applyPaging(r.applyFilterWithoutPagination(query, filter), filter, AppointmentSortFields, "scheduled_start")

	if err := query.Find(&appointmentModels).Error; err != nil {
		return nil, err
	}
	appointments := make([]scheduling.Appointment, len(appointmentModels))
	for i, model := range appointmentModels {
		appointments[i] = *model.ToDomain()
	}
	return appointments, nil
}

// CountForTenant counts a tenant's appointments matching the filter
func (r *GormAppointmentRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.AppointmentModel{}).Scopes(tenant.Live(tenantID))
	if err := r.applyFilterWithoutPagination(query, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an appointment
func (r *GormAppointmentRepository) Save(ctx context.Context, a *scheduling.Appointment) error {
	return r.db.WithContext(ctx).Save(models.AppointmentModelFromDomain(a)).Error
}

// FindDueReminders lists scheduled or confirmed appointments of every tenant
// that start within lead of now and have not been reminded yet
func (r *GormAppointmentRepository) FindDueReminders(ctx context.Context, now time.Time, lead time.Duration, limit int) ([]scheduling.ReminderCandidate, error) {
	var rows []struct {
		TenantID uuid.UUID
		ID       uuid.UUID
	}
	err := r.db.WithContext(ctx).
		Model(&models.AppointmentModel{}).
		Select("tenant_id", "id").
		Where("is_deleted = ?", false).
		Where("reminder_sent_at IS NULL").
		Where("status IN ?", []scheduling.AppointmentStatus{
			scheduling.AppointmentStatusScheduled,
			scheduling.AppointmentStatusConfirmed,
		}).
		Where("scheduled_start > ? AND scheduled_start <= ?", now, now.Add(lead)).
		Order("scheduled_start ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	candidates := make([]scheduling.ReminderCandidate, len(rows))
	for i, row := range rows {
		candidates[i] = scheduling.ReminderCandidate{TenantID: row.TenantID, AppointmentID: row.ID}
	}
	return candidates, nil
}

// applyFilterWithoutPagination applies filter options without pagination.
// from/to select appointments starting inside the window.
func (r *GormAppointmentRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "technician", "notes")

	for key, value := range filter.Filters {
		switch key {
		case scheduling.FilterCustomerID:
			if id, ok := uuidValue(value); ok {
				query = query.Where("customer_id = ?", id)
			}
		case scheduling.FilterLocationID:
			if id, ok := uuidValue(value); ok {
				query = query.Where("location_id = ?", id)
			}
		case scheduling.FilterStatus:
			if status, ok := stringValue(value); ok {
				query = query.Where("status = ?", status)
			}
		case scheduling.FilterTechnician:
			if technician, ok := stringValue(value); ok {
				query = query.Where("technician = ?", technician)
			}
		case scheduling.FilterFrom:
			if from, ok := timeValue(value); ok {
				query = query.Where("scheduled_start >= ?", from.UTC())
			}
		case scheduling.FilterTo:
			if to, ok := timeValue(value); ok {
				query = query.Where("scheduled_start < ?", to.UTC())
			}
		}
	}
	return query
}

// Ensure GormAppointmentRepository implements AppointmentRepository
var _ scheduling.AppointmentRepository = (*GormAppointmentRepository)(nil)
