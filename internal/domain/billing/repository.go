package billing

import (
	"context"

	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Filter keys understood by PaymentRepository
const (
	FilterWorkOrderID = "work_order_id"
	FilterMethod      = "method"
	FilterStatus      = "status"
)

// PaymentRepository defines persistence for payments
type PaymentRepository interface {
	shared.TenantRepository[Payment]

	// SumSettledForWorkOrder returns the total of completed payments on a work order
	SumSettledForWorkOrder(ctx context.Context, tenantID, workOrderID uuid.UUID) (decimal.Decimal, error)
}
