package models

import (
	"time"

	"github.com/fieldops/backend/internal/domain/workorder"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WorkOrderModel is the persistence model for the WorkOrder aggregate root.
type WorkOrderModel struct {
	TenantAggregateModel
	Number        string           `gorm:"type:varchar(30);not null;index"`
	CustomerID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	LocationID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	AppointmentID *uuid.UUID       `gorm:"type:uuid;index"`
	Status        workorder.Status `gorm:"type:varchar(20);not null;default:'open'"`
	Description   string           `gorm:"type:text"`
	TotalAmount   decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	CompletedAt   *time.Time
	Items         []WorkOrderItemModel `gorm:"foreignKey:WorkOrderID;references:ID"`
}

// TableName returns the table name for GORM
func (WorkOrderModel) TableName() string {
	return "work_orders"
}

// ToDomain converts the persistence model to a domain WorkOrder entity.
// Items are copied only when they were preloaded.
func (m *WorkOrderModel) ToDomain() *workorder.WorkOrder {
	items := make([]workorder.Item, len(m.Items))
	for i := range m.Items {
		items[i] = m.Items[i].ToDomain()
	}
	return &workorder.WorkOrder{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Number:              m.Number,
		CustomerID:          m.CustomerID,
		LocationID:          m.LocationID,
		AppointmentID:       m.AppointmentID,
		Status:              m.Status,
		Description:         m.Description,
		Items:               items,
		TotalAmount:         m.TotalAmount,
		CompletedAt:         m.CompletedAt,
	}
}

// FromDomain populates the persistence model from a domain WorkOrder entity.
func (m *WorkOrderModel) FromDomain(w *workorder.WorkOrder) {
	m.FromDomainTenantAggregateRoot(w.TenantAggregateRoot)
	m.Number = w.Number
	m.CustomerID = w.CustomerID
	m.LocationID = w.LocationID
	m.AppointmentID = w.AppointmentID
	m.Status = w.Status
	m.Description = w.Description
	m.TotalAmount = w.TotalAmount
	m.CompletedAt = w.CompletedAt
	m.Items = make([]WorkOrderItemModel, len(w.Items))
	for i := range w.Items {
		m.Items[i] = WorkOrderItemModelFromDomain(w.Items[i])
	}
}

// WorkOrderModelFromDomain creates a new persistence model from a domain WorkOrder entity.
func WorkOrderModelFromDomain(w *workorder.WorkOrder) *WorkOrderModel {
	m := &WorkOrderModel{}
	m.FromDomain(w)
	return m
}

// WorkOrderItemModel is the persistence model for a work order line.
type WorkOrderItemModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key"`
	WorkOrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ServiceID      *uuid.UUID      `gorm:"type:uuid"`
	Description    string          `gorm:"type:varchar(500);not null"`
	Quantity       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TaxRatePercent decimal.Decimal `gorm:"type:decimal(9,4);not null;default:0"`
	Position       int             `gorm:"not null;default:0"`
	CreatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (WorkOrderItemModel) TableName() string {
	return "work_order_items"
}

// ToDomain converts the persistence model to a domain Item.
func (m *WorkOrderItemModel) ToDomain() workorder.Item {
	return workorder.Item{
		ID:             m.ID,
		WorkOrderID:    m.WorkOrderID,
		ServiceID:      m.ServiceID,
		Description:    m.Description,
		Quantity:       m.Quantity,
		UnitPrice:      m.UnitPrice,
		TaxRatePercent: m.TaxRatePercent,
		Position:       m.Position,
		CreatedAt:      m.CreatedAt,
	}
}

// WorkOrderItemModelFromDomain creates a persistence model from a domain Item.
func WorkOrderItemModelFromDomain(i workorder.Item) WorkOrderItemModel {
	return WorkOrderItemModel{
		ID:             i.ID,
		WorkOrderID:    i.WorkOrderID,
		ServiceID:      i.ServiceID,
		Description:    i.Description,
		Quantity:       i.Quantity,
		UnitPrice:      i.UnitPrice,
		TaxRatePercent: i.TaxRatePercent,
		Position:       i.Position,
		CreatedAt:      i.CreatedAt,
	}
}

// AttachmentModel is the persistence model for a work-order attachment.
type AttachmentModel struct {
	TenantAggregateModel
	WorkOrderID uuid.UUID                  `gorm:"type:uuid;not null;index"`
	FileName    string                     `gorm:"type:varchar(255);not null"`
	ContentType string                     `gorm:"type:varchar(100);not null"`
	FileSize    int64                      `gorm:"not null"`
	StorageKey  string                     `gorm:"type:varchar(500);not null"`
	Status      workorder.AttachmentStatus `gorm:"type:varchar(20);not null;default:'pending'"`
}

// TableName returns the table name for GORM
func (AttachmentModel) TableName() string {
	return "work_order_attachments"
}

// ToDomain converts the persistence model to a domain Attachment entity.
func (m *AttachmentModel) ToDomain() *workorder.Attachment {
	return &workorder.Attachment{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		WorkOrderID:         m.WorkOrderID,
		FileName:            m.FileName,
		ContentType:         m.ContentType,
		FileSize:            m.FileSize,
		StorageKey:          m.StorageKey,
		Status:              m.Status,
	}
}

// FromDomain populates the persistence model from a domain Attachment entity.
func (m *AttachmentModel) FromDomain(a *workorder.Attachment) {
	m.FromDomainTenantAggregateRoot(a.TenantAggregateRoot)
	m.WorkOrderID = a.WorkOrderID
	m.FileName = a.FileName
	m.ContentType = a.ContentType
	m.FileSize = a.FileSize
	m.StorageKey = a.StorageKey
	m.Status = a.Status
}

// AttachmentModelFromDomain creates a new persistence model from a domain Attachment entity.
func AttachmentModelFromDomain(a *workorder.Attachment) *AttachmentModel {
	m := &AttachmentModel{}
	m.FromDomain(a)
	return m
}

// WorkOrderSequenceModel is the per-tenant, per-day work order number counter
type WorkOrderSequenceModel struct {
	TenantID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Day       string    `gorm:"type:varchar(8);primaryKey"`
	LastValue int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (WorkOrderSequenceModel) TableName() string {
	return "work_order_sequences"
}
