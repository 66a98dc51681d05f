package billing

import (
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AggregateTypePayment is the aggregate type name for payments
const AggregateTypePayment = "Payment"

// EventTypePaymentReceived is raised when a payment is recorded
const EventTypePaymentReceived = "PaymentReceived"

// PaymentReceivedEvent carries the recorded amount
type PaymentReceivedEvent struct {
	shared.BaseDomainEvent
	WorkOrderID uuid.UUID       `json:"workOrderId"`
	Amount      decimal.Decimal `json:"amount"`
	Method      PaymentMethod   `json:"method"`
}

// NewPaymentReceivedEvent creates a PaymentReceived event
func NewPaymentReceivedEvent(p *Payment) *PaymentReceivedEvent {
	return &PaymentReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentReceived, AggregateTypePayment, p.ID, p.TenantID),
		WorkOrderID:     p.WorkOrderID,
		Amount:          p.Amount,
		Method:          p.Method,
	}
}
