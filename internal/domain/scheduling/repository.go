package scheduling

import (
	"context"
	"time"

	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Filter keys understood by AppointmentRepository
const (
	FilterCustomerID = "customer_id"
	FilterLocationID = "location_id"
	FilterStatus     = "status"
	FilterTechnician = "technician"
	FilterFrom       = "from"
	FilterTo         = "to"
)

// AppointmentRepository defines persistence for appointments
type AppointmentRepository interface {
	shared.TenantRepository[Appointment]
}

// ReminderCandidate identifies an appointment whose reminder is due
type ReminderCandidate struct {
	TenantID      uuid.UUID
	AppointmentID uuid.UUID
}

// ReminderFinder lists due reminders across all tenants, oldest start first.
// It is used by the background sweep only; request paths stay tenant scoped.
type ReminderFinder interface {
	FindDueReminders(ctx context.Context, now time.Time, lead time.Duration, limit int) ([]ReminderCandidate, error)
}
