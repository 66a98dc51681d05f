package workorder

import (
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AggregateTypeWorkOrder is the aggregate type name for work orders
const AggregateTypeWorkOrder = "WorkOrder"

// EventTypeWorkOrderCompleted is raised when a work order is closed for billing
const EventTypeWorkOrderCompleted = "WorkOrderCompleted"

// WorkOrderCompletedEvent carries the billable total of a completed work order
type WorkOrderCompletedEvent struct {
	shared.BaseDomainEvent
	Number      string          `json:"number"`
	CustomerID  uuid.UUID       `json:"customerId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// NewWorkOrderCompletedEvent creates a WorkOrderCompleted event
func NewWorkOrderCompletedEvent(w *WorkOrder) *WorkOrderCompletedEvent {
	return &WorkOrderCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeWorkOrderCompleted, AggregateTypeWorkOrder, w.ID, w.TenantID),
		Number:          w.Number,
		CustomerID:      w.CustomerID,
		TotalAmount:     w.Total(),
	}
}
