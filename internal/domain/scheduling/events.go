package scheduling

import (
	"time"

	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AggregateTypeAppointment is the aggregate type name for appointments
const AggregateTypeAppointment = "Appointment"

const (
	EventTypeAppointmentScheduled = "AppointmentScheduled"
	EventTypeAppointmentCancelled = "AppointmentCancelled"
	EventTypeAppointmentReminder  = "AppointmentReminder"
)

// AppointmentScheduledEvent is raised when an appointment is booked or moved
type AppointmentScheduledEvent struct {
	shared.BaseDomainEvent
	CustomerID     uuid.UUID `json:"customerId"`
	Technician     string    `json:"technician"`
	ScheduledStart time.Time `json:"scheduledStart"`
	ScheduledEnd   time.Time `json:"scheduledEnd"`
}

// NewAppointmentScheduledEvent creates an AppointmentScheduled event
func NewAppointmentScheduledEvent(a *Appointment) *AppointmentScheduledEvent {
	return &AppointmentScheduledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAppointmentScheduled, AggregateTypeAppointment, a.ID, a.TenantID),
		CustomerID:      a.CustomerID,
		Technician:      a.Technician,
		ScheduledStart:  a.ScheduledStart,
		ScheduledEnd:    a.ScheduledEnd,
	}
}

// AppointmentCancelledEvent is raised when an appointment is cancelled
type AppointmentCancelledEvent struct {
	shared.BaseDomainEvent
	CustomerID     uuid.UUID `json:"customerId"`
	ScheduledStart time.Time `json:"scheduledStart"`
	Reason         string    `json:"reason"`
}

// NewAppointmentCancelledEvent creates an AppointmentCancelled event
func NewAppointmentCancelledEvent(a *Appointment) *AppointmentCancelledEvent {
	return &AppointmentCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAppointmentCancelled, AggregateTypeAppointment, a.ID, a.TenantID),
		CustomerID:      a.CustomerID,
		ScheduledStart:  a.ScheduledStart,
		Reason:          a.CancellationReason,
	}
}

// AppointmentReminderEvent is raised once per booking shortly before the visit
type AppointmentReminderEvent struct {
	shared.BaseDomainEvent
	CustomerID     uuid.UUID `json:"customerId"`
	Technician     string    `json:"technician"`
	ScheduledStart time.Time `json:"scheduledStart"`
}

// NewAppointmentReminderEvent creates an AppointmentReminder event
func NewAppointmentReminderEvent(a *Appointment) *AppointmentReminderEvent {
	return &AppointmentReminderEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAppointmentReminder, AggregateTypeAppointment, a.ID, a.TenantID),
		CustomerID:      a.CustomerID,
		Technician:      a.Technician,
		ScheduledStart:  a.ScheduledStart,
	}
}
