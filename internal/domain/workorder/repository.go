package workorder

import (
	"context"
	"time"

	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Filter keys understood by WorkOrderRepository
const (
	FilterCustomerID    = "customer_id"
	FilterLocationID    = "location_id"
	FilterStatus        = "status"
	FilterAppointmentID = "appointment_id"
)

// WorkOrderRepository defines persistence for work orders and their items.
// FindByIDForTenant loads items; list queries do not.
type WorkOrderRepository interface {
	shared.TenantRepository[WorkOrder]

	// NextNumber generates the next WO-YYYYMMDD-NNNN number for the tenant and day
	NextNumber(ctx context.Context, tenantID uuid.UUID, day time.Time) (string, error)
}

// Filter keys understood by AttachmentRepository
const (
	FilterWorkOrderID = "work_order_id"
)

// AttachmentRepository defines persistence for work-order attachments
type AttachmentRepository interface {
	shared.TenantRepository[Attachment]
}
