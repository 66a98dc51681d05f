package scheduling

import (
	"strings"
	"time"

	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled  AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed  AppointmentStatus = "confirmed"
	AppointmentStatusInProgress AppointmentStatus = "in_progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
)

// IsValid checks if the status is a known value
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusConfirmed, AppointmentStatusInProgress,
		AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

// Appointment is a booked visit of a technician to a customer location
type Appointment struct {
	shared.TenantAggregateRoot
	CustomerID         uuid.UUID
	LocationID         uuid.UUID
	ServiceID          uuid.UUID
	Technician         string
	ScheduledStart     time.Time
	ScheduledEnd       time.Time
	Status             AppointmentStatus
	Notes              string
	CancellationReason string
	StartedAt          *time.Time
	CompletedAt        *time.Time
	ReminderSentAt     *time.Time
}

// Booking holds the inputs for scheduling an appointment
type Booking struct {
	CustomerID     uuid.UUID
	LocationID     uuid.UUID
	ServiceID      uuid.UUID
	Technician     string
	ScheduledStart time.Time
	ScheduledEnd   time.Time
	Notes          string
}

// Schedule creates an appointment in scheduled status
func Schedule(tenantID uuid.UUID, b Booking) (*Appointment, error) {
	if b.CustomerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if b.LocationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location ID cannot be empty")
	}
	if b.ServiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SERVICE", "Service ID cannot be empty")
	}
	if err := validateWindow(b.ScheduledStart, b.ScheduledEnd); err != nil {
		return nil, err
	}

	a := &Appointment{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CustomerID:          b.CustomerID,
		LocationID:          b.LocationID,
		ServiceID:           b.ServiceID,
		Technician:          strings.TrimSpace(b.Technician),
		ScheduledStart:      b.ScheduledStart.UTC(),
		ScheduledEnd:        b.ScheduledEnd.UTC(),
		Status:              AppointmentStatusScheduled,
		Notes:               b.Notes,
	}
	a.AddDomainEvent(NewAppointmentScheduledEvent(a))
	return a, nil
}

// Reschedule moves the appointment to a new window
func (a *Appointment) Reschedule(start, end time.Time) error {
	if a.Status != AppointmentStatusScheduled && a.Status != AppointmentStatusConfirmed {
		return shared.NewInvalidStateError("Only scheduled or confirmed appointments can be rescheduled")
	}
	if err := validateWindow(start, end); err != nil {
		return err
	}
	a.ScheduledStart = start.UTC()
	a.ScheduledEnd = end.UTC()
	a.Status = AppointmentStatusScheduled
	a.ReminderSentAt = nil
	a.Touch()
	a.IncrementVersion()
	a.AddDomainEvent(NewAppointmentScheduledEvent(a))
	return nil
}

// AssignTechnician sets the technician responsible for the visit
func (a *Appointment) AssignTechnician(technician string) error {
	if a.Status.IsTerminal() {
		return shared.NewInvalidStateError("Cannot assign a technician to a closed appointment")
	}
	a.Technician = strings.TrimSpace(technician)
	a.Touch()
	a.IncrementVersion()
	return nil
}

// Confirm records that the customer confirmed the visit
func (a *Appointment) Confirm() error {
	if a.Status != AppointmentStatusScheduled {
		return shared.NewInvalidStateError("Only scheduled appointments can be confirmed")
	}
	return a.transition(AppointmentStatusConfirmed)
}

// Start marks the technician as on site
func (a *Appointment) Start() error {
	if a.Status != AppointmentStatusScheduled && a.Status != AppointmentStatusConfirmed {
		return shared.NewInvalidStateError("Only scheduled or confirmed appointments can be started")
	}
	now := time.Now()
	a.StartedAt = &now
	return a.transition(AppointmentStatusInProgress)
}

// Complete closes the visit
func (a *Appointment) Complete() error {
	if a.Status != AppointmentStatusInProgress {
		return shared.NewInvalidStateError("Only in-progress appointments can be completed")
	}
	now := time.Now()
	a.CompletedAt = &now
	return a.transition(AppointmentStatusCompleted)
}

// Cancel cancels an open appointment
func (a *Appointment) Cancel(reason string) error {
	if a.Status.IsTerminal() || a.Status == AppointmentStatusInProgress {
		return shared.NewInvalidStateError("Appointment can no longer be cancelled")
	}
	a.CancellationReason = strings.TrimSpace(reason)
	if err := a.transition(AppointmentStatusCancelled); err != nil {
		return err
	}
	a.AddDomainEvent(NewAppointmentCancelledEvent(a))
	return nil
}

// ReminderDue reports whether an upcoming visit starting within lead of now
// still needs its reminder
func (a *Appointment) ReminderDue(now time.Time, lead time.Duration) bool {
	if a.ReminderSentAt != nil || a.IsDeleted {
		return false
	}
	if a.Status != AppointmentStatusScheduled && a.Status != AppointmentStatusConfirmed {
		return false
	}
	return a.ScheduledStart.After(now) && !a.ScheduledStart.After(now.Add(lead))
}

// MarkReminded records that the reminder went out and raises AppointmentReminder
func (a *Appointment) MarkReminded(now time.Time, lead time.Duration) error {
	if !a.ReminderDue(now, lead) {
		return shared.NewInvalidStateError("Appointment has no reminder due")
	}
	sent := now.UTC()
	a.ReminderSentAt = &sent
	a.Touch()
	a.IncrementVersion()
	a.AddDomainEvent(NewAppointmentReminderEvent(a))
	return nil
}

// Duration returns the length of the booked window
func (a *Appointment) Duration() time.Duration {
	return a.ScheduledEnd.Sub(a.ScheduledStart)
}

func (a *Appointment) transition(to AppointmentStatus) error {
	a.Status = to
	a.Touch()
	a.IncrementVersion()
	return nil
}

func validateWindow(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return shared.NewDomainError("INVALID_SCHEDULE", "Scheduled start and end are required")
	}
	if !end.After(start) {
		return shared.NewDomainError("INVALID_SCHEDULE", "Scheduled end must be after start")
	}
	return nil
}
