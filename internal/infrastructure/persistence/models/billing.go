package models

import (
	"time"

	"github.com/fieldops/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentModel is the persistence model for the Payment domain entity.
type PaymentModel struct {
	TenantAggregateModel
	WorkOrderID  uuid.UUID             `gorm:"type:uuid;not null;index"`
	Amount       decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Method       billing.PaymentMethod `gorm:"type:varchar(20);not null"`
	Status       billing.PaymentStatus `gorm:"type:varchar(20);not null;default:'completed'"`
	Reference    string                `gorm:"type:varchar(100)"`
	PaidAt       time.Time             `gorm:"not null;index"`
	RefundedAt   *time.Time
	RefundReason string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *billing.Payment {
	return &billing.Payment{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		WorkOrderID:         m.WorkOrderID,
		Amount:              m.Amount,
		Method:              m.Method,
		Status:              m.Status,
		Reference:           m.Reference,
		PaidAt:              m.PaidAt,
		RefundedAt:          m.RefundedAt,
		RefundReason:        m.RefundReason,
	}
}

// FromDomain populates the persistence model from a domain Payment entity.
func (m *PaymentModel) FromDomain(p *billing.Payment) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.WorkOrderID = p.WorkOrderID
	m.Amount = p.Amount
	m.Method = p.Method
	m.Status = p.Status
	m.Reference = p.Reference
	m.PaidAt = p.PaidAt
	m.RefundedAt = p.RefundedAt
	m.RefundReason = p.RefundReason
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment entity.
func PaymentModelFromDomain(p *billing.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}
