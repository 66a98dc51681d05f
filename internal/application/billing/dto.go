package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fieldops/backend/internal/domain/billing"
	"github.com/fieldops/backend/internal/domain/shared"
)

// RecordPaymentCommand records money received against a work order
type RecordPaymentCommand struct {
	WorkOrderID uuid.UUID       `json:"workOrderId" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method" binding:"required,oneof=cash card bank_transfer check"`
	Reference   string          `json:"reference" binding:"max=100"`
	PaidAt      *time.Time      `json:"paidAt"`
}

// Validate checks the command fields
func (c RecordPaymentCommand) Validate() []shared.FieldError {
	var v shared.Validator
	v.Check(c.WorkOrderID != uuid.Nil, "workOrderId", "is required")
	v.Check(c.Amount.IsPositive(), "amount", "must be positive")
	v.Check(billing.PaymentMethod(c.Method).IsValid(), "method", "must be one of cash, card, bank_transfer, check")
	v.MaxLength(c.Reference, 100, "reference")
	return v.Errors()
}

// RefundPaymentCommand reverses a completed payment
type RefundPaymentCommand struct {
	Reason string `json:"reason" binding:"max=500"`
}

// Validate checks the command fields
func (c RefundPaymentCommand) Validate() []shared.FieldError {
	var v shared.Validator
	v.MaxLength(c.Reason, 500, "reason")
	return v.Errors()
}

// PaymentListQuery holds the optional criteria of the payment list
type PaymentListQuery struct {
	Page        int        `form:"page"`
	PageSize    int        `form:"page_size"`
	OrderBy     string     `form:"order_by"`
	OrderDir    string     `form:"order_dir"`
	Search      string     `form:"search"`
	WorkOrderID *uuid.UUID `form:"work_order_id"`
	Method      *string    `form:"method" binding:"omitempty,oneof=cash card bank_transfer check"`
	Status      *string    `form:"status" binding:"omitempty,oneof=completed refunded"`
}

// ToFilter converts the query into repository criteria
func (q PaymentListQuery) ToFilter() shared.Filter {
	f := shared.Filter{
		Page:     q.Page,
		PageSize: q.PageSize,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
		Search:   q.Search,
	}
	if q.WorkOrderID != nil {
		f.Set(billing.FilterWorkOrderID, *q.WorkOrderID)
	}
	if q.Method != nil {
		f.Set(billing.FilterMethod, billing.PaymentMethod(*q.Method))
	}
	if q.Status != nil {
		f.Set(billing.FilterStatus, billing.PaymentStatus(*q.Status))
	}
	return f
}

// PaymentResponse is the public projection of a payment
type PaymentResponse struct {
	ID           uuid.UUID       `json:"id"`
	WorkOrderID  uuid.UUID       `json:"workOrderId"`
	Amount       decimal.Decimal `json:"amount"`
	Method       string          `json:"method"`
	Status       string          `json:"status"`
	Reference    string          `json:"reference,omitempty"`
	PaidAt       time.Time       `json:"paidAt"`
	RefundedAt   *time.Time      `json:"refundedAt,omitempty"`
	RefundReason string          `json:"refundReason,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ToPaymentResponse projects a payment
func ToPaymentResponse(p *billing.Payment) PaymentResponse {
	return PaymentResponse{
		ID:           p.ID,
		WorkOrderID:  p.WorkOrderID,
		Amount:       p.Amount,
		Method:       string(p.Method),
		Status:       string(p.Status),
		Reference:    p.Reference,
		PaidAt:       p.PaidAt,
		RefundedAt:   p.RefundedAt,
		RefundReason: p.RefundReason,
		CreatedAt:    p.CreatedAt,
	}
}

// PaymentResult is returned by Record and Refund together with the work
// order's balance after the change
type PaymentResult struct {
	Payment        PaymentResponse `json:"payment"`
	WorkOrderTotal decimal.Decimal `json:"workOrderTotal"`
	PaidAmount     decimal.Decimal `json:"paidAmount"`
	Balance        decimal.Decimal `json:"balance"`
	// Replayed is set when an Idempotency-Key matched an earlier request
	Replayed bool `json:"replayed"`
}
