package billing

import (
	"strings"
	"time"

	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how the customer paid
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCheck        PaymentMethod = "check"
)

// IsValid checks if the method is a known value
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodBankTransfer, PaymentMethodCheck:
		return true
	}
	return false
}

// PaymentStatus is the settlement state of a payment
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Payment is money received against a work order
type Payment struct {
	shared.TenantAggregateRoot
	WorkOrderID  uuid.UUID
	Amount       decimal.Decimal
	Method       PaymentMethod
	Status       PaymentStatus
	Reference    string
	PaidAt       time.Time
	RefundedAt   *time.Time
	RefundReason string
}

// RecordPayment creates a completed payment
func RecordPayment(tenantID, workOrderID uuid.UUID, amount decimal.Decimal, method PaymentMethod, reference string, paidAt time.Time) (*Payment, error) {
	if workOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WORK_ORDER", "Work order ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Payment method is not supported")
	}
	if paidAt.IsZero() {
		paidAt = time.Now()
	}
	p := &Payment{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		WorkOrderID:         workOrderID,
		Amount:              amount.Round(2),
		Method:              method,
		Status:              PaymentStatusCompleted,
		Reference:           strings.TrimSpace(reference),
		PaidAt:              paidAt.UTC(),
	}
	p.AddDomainEvent(NewPaymentReceivedEvent(p))
	return p, nil
}

// Refund reverses a completed payment
func (p *Payment) Refund(reason string) error {
	if p.Status != PaymentStatusCompleted {
		return shared.NewInvalidStateError("Only completed payments can be refunded")
	}
	now := time.Now()
	p.Status = PaymentStatusRefunded
	p.RefundedAt = &now
	p.RefundReason = strings.TrimSpace(reason)
	p.Touch()
	p.IncrementVersion()
	return nil
}

// SettledAmount returns the amount that counts toward the work order balance
func (p *Payment) SettledAmount() decimal.Decimal {
	if p.Status != PaymentStatusCompleted {
		return decimal.Zero
	}
	return p.Amount
}

// SumSettled adds up settled amounts across payments
func SumSettled(payments []Payment) decimal.Decimal {
	total := decimal.Zero
	for i := range payments {
		total = total.Add(payments[i].SettledAmount())
	}
	return total
}
