package models

import (
	"time"

	"github.com/fieldops/backend/internal/domain/notification"
	"github.com/google/uuid"
)

// NotificationModel is the persistence model for the Notification domain entity.
type NotificationModel struct {
	TenantAggregateModel
	Recipient     string               `gorm:"type:varchar(254);not null;index"`
	Channel       notification.Channel `gorm:"type:varchar(20);not null"`
	Subject       string               `gorm:"type:varchar(200);not null"`
	Body          string               `gorm:"type:text"`
	ReferenceType string               `gorm:"type:varchar(50)"`
	ReferenceID   *uuid.UUID           `gorm:"type:uuid"`
	IsRead        bool                 `gorm:"not null;default:false;index"`
	ReadAt        *time.Time
}

// TableName returns the table name for GORM
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToDomain converts the persistence model to a domain Notification entity.
func (m *NotificationModel) ToDomain() *notification.Notification {
	return &notification.Notification{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Recipient:           m.Recipient,
		Channel:             m.Channel,
		Subject:             m.Subject,
		Body:                m.Body,
		ReferenceType:       m.ReferenceType,
		ReferenceID:         m.ReferenceID,
		IsRead:              m.IsRead,
		ReadAt:              m.ReadAt,
	}
}

// FromDomain populates the persistence model from a domain Notification entity.
func (m *NotificationModel) FromDomain(n *notification.Notification) {
	m.FromDomainTenantAggregateRoot(n.TenantAggregateRoot)
	m.Recipient = n.Recipient
	m.Channel = n.Channel
	m.Subject = n.Subject
	m.Body = n.Body
	m.ReferenceType = n.ReferenceType
	m.ReferenceID = n.ReferenceID
	m.IsRead = n.IsRead
	m.ReadAt = n.ReadAt
}

// NotificationModelFromDomain creates a new persistence model from a domain Notification entity.
func NotificationModelFromDomain(n *notification.Notification) *NotificationModel {
	m := &NotificationModel{}
	m.FromDomain(n)
	return m
}

// AllModels lists every persistence model, in dependency order, for AutoMigrate
// in tests and development databases.
func AllModels() []interface{} {
	return []interface{}{
		&CustomerModel{},
		&LocationModel{},
		&ServiceModel{},
		&AppointmentModel{},
		&WorkOrderModel{},
		&WorkOrderItemModel{},
		&WorkOrderSequenceModel{},
		&AttachmentModel{},
		&PaymentModel{},
		&NotificationModel{},
	}
}
