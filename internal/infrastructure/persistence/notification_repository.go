package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/fieldops/backend/internal/domain/notification"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/infrastructure/persistence/models"
	"github.com/fieldops/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormNotificationRepository implements NotificationRepository using GORM
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// FindByIDForTenant finds a live notification by ID within a tenant
func (r *GormNotificationRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*notification.Notification, error) {
	var model models.NotificationModel
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

// FindAllForTenant finds one page of a tenant's notifications
func (r *GormNotificationRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]notification.Notification, error) {
	var notificationModels []models.NotificationModel
	query := r.db.WithContext(ctx).Model(&models.NotificationModel{}).Scopes(tenant.Live(tenantID))
	query = applyPaging(r.applyFilterWithoutPagination(query, filter), filter, NotificationSortFields, "created_at")

	if err := query.Find(&notificationModels).Error; err != nil {
		return nil, err
	}
	notifications := make([]notification.Notification, len(notificationModels))
	for i, model := range notificationModels {
		notifications[i] = *model.ToDomain()
	}
	return notifications, nil
}

// CountForTenant counts a tenant's notifications matching the filter
func (r *GormNotificationRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.NotificationModel{}).Scopes(tenant.Live(tenantID))
	if err := r.applyFilterWithoutPagination(query, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a notification
func (r *GormNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	return r.db.WithContext(ctx).Save(models.NotificationModelFromDomain(n)).Error
}

// MarkAllRead marks every unread notification of the recipient as read
func (r *GormNotificationRepository) MarkAllRead(ctx context.Context, tenantID uuid.UUID, recipient string) (int64, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.NotificationModel{}).
		Scopes(tenant.Live(tenantID)).
		Where("recipient = ? AND is_read = ?", recipient, false).
		Updates(map[string]interface{}{
			"is_read":    true,
			"read_at":    now,
			"updated_at": now,
			"version":    gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *GormNotificationRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "subject", "body")

	for key, value := range filter.Filters {
		switch key {
		case notification.FilterIsRead:
			if read, ok := boolValue(value); ok {
				query = query.Where("is_read = ?", read)
			}
		case notification.FilterChannel:
			if channel, ok := stringValue(value); ok {
				query = query.Where("channel = ?", channel)
			}
		case notification.FilterRecipient:
			if recipient, ok := stringValue(value); ok {
				query = query.Where("recipient = ?", recipient)
			}
		}
	}
	return query
}

// Ensure GormNotificationRepository implements NotificationRepository
var _ notification.NotificationRepository = (*GormNotificationRepository)(nil)
