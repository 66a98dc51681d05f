package scheduling

import (
	"time"

	"github.com/google/uuid"

	"github.com/fieldops/backend/internal/domain/scheduling"
	"github.com/fieldops/backend/internal/domain/shared"
)

// ScheduleAppointmentCommand books a visit
type ScheduleAppointmentCommand struct {
	CustomerID     uuid.UUID `json:"customerId" binding:"required"`
	LocationID     uuid.UUID `json:"locationId" binding:"required"`
	ServiceID      uuid.UUID `json:"serviceId" binding:"required"`
	Technician     string    `json:"technician" binding:"max=100"`
	ScheduledStart time.Time `json:"scheduledStart" binding:"required"`
	ScheduledEnd   time.Time `json:"scheduledEnd" binding:"required"`
	Notes          string    `json:"notes"`
}

// Validate checks the command fields
func (c ScheduleAppointmentCommand) Validate() []shared.FieldError {
	var v shared.Validator
	v.Check(c.CustomerID != uuid.Nil, "customerId", "is required")
	v.Check(c.LocationID != uuid.Nil, "locationId", "is required")
	v.Check(c.ServiceID != uuid.Nil, "serviceId", "is required")
	v.MaxLength(c.Technician, 100, "technician")
	validateWindow(&v, c.ScheduledStart, c.ScheduledEnd)
	return v.Errors()
}

// RescheduleAppointmentCommand moves a visit to a new window
type RescheduleAppointmentCommand struct {
	ScheduledStart time.Time `json:"scheduledStart" binding:"required"`
	ScheduledEnd   time.Time `json:"scheduledEnd" binding:"required"`
}

// Validate checks the command fields
func (c RescheduleAppointmentCommand) Validate() []shared.FieldError {
	var v shared.Validator
	validateWindow(&v, c.ScheduledStart, c.ScheduledEnd)
	return v.Errors()
}

// UpdateAppointmentCommand changes the technician and notes of an open visit
type UpdateAppointmentCommand struct {
	Technician string `json:"technician" binding:"max=100"`
	Notes      string `json:"notes"`
}

// Validate checks the command fields
func (c UpdateAppointmentCommand) Validate() []shared.FieldError {
	var v shared.Validator
	v.MaxLength(c.Technician, 100, "technician")
	return v.Errors()
}

// CancelAppointmentCommand cancels a visit
type CancelAppointmentCommand struct {
	Reason string `json:"reason" binding:"max=500"`
}

// Validate checks the command fields
func (c CancelAppointmentCommand) Validate() []shared.FieldError {
	var v shared.Validator
	v.MaxLength(c.Reason, 500, "reason")
	return v.Errors()
}

func validateWindow(v *shared.Validator, start, end time.Time) {
	v.Check(!start.IsZero(), "scheduledStart", "is required")
	v.Check(!end.IsZero(), "scheduledEnd", "is required")
	if !start.IsZero() && !end.IsZero() {
		v.Check(end.After(start), "scheduledEnd", "must be after scheduledStart")
	}
}

// AppointmentListQuery holds the optional criteria of the appointment list
type AppointmentListQuery struct {
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir"`
	CustomerID *uuid.UUID `form:"customer_id"`
	LocationID *uuid.UUID `form:"location_id"`
	Status     *string    `form:"status" binding:"omitempty,oneof=scheduled confirmed in_progress completed cancelled"`
	Technician *string    `form:"technician"`
	From       *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To         *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}

// ToFilter converts the query into repository criteria
func (q AppointmentListQuery) ToFilter() shared.Filter {
	f := shared.Filter{
		Page:     q.Page,
		PageSize: q.PageSize,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
	}
	if q.CustomerID != nil {
		f.Set(scheduling.FilterCustomerID, *q.CustomerID)
	}
	if q.LocationID != nil {
		f.Set(scheduling.FilterLocationID, *q.LocationID)
	}
	if q.Status != nil {
		f.Set(scheduling.FilterStatus, scheduling.AppointmentStatus(*q.Status))
	}
	if q.Technician != nil {
		f.Set(scheduling.FilterTechnician, *q.Technician)
	}
	if q.From != nil {
		f.Set(scheduling.FilterFrom, *q.From)
	}
	if q.To != nil {
		f.Set(scheduling.FilterTo, *q.To)
	}
	return f
}

// AppointmentResponse is the public projection of an appointment
type AppointmentResponse struct {
	ID                 uuid.UUID  `json:"id"`
	CustomerID         uuid.UUID  `json:"customerId"`
	LocationID         uuid.UUID  `json:"locationId"`
	ServiceID          uuid.UUID  `json:"serviceId"`
	Technician         string     `json:"technician"`
	ScheduledStart     time.Time  `json:"scheduledStart"`
	ScheduledEnd       time.Time  `json:"scheduledEnd"`
	DurationMinutes    int        `json:"durationMinutes"`
	Status             string     `json:"status"`
	Notes              string     `json:"notes"`
	CancellationReason string     `json:"cancellationReason,omitempty"`
	StartedAt          *time.Time `json:"startedAt,omitempty"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
	ReminderSentAt     *time.Time `json:"reminderSentAt,omitempty"`
	Version            int        `json:"version"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// ToAppointmentResponse projects a domain appointment
func ToAppointmentResponse(a *scheduling.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:                 a.ID,
		CustomerID:         a.CustomerID,
		LocationID:         a.LocationID,
		ServiceID:          a.ServiceID,
		Technician:         a.Technician,
		ScheduledStart:     a.ScheduledStart,
		ScheduledEnd:       a.ScheduledEnd,
		DurationMinutes:    int(a.Duration().Minutes()),
		Status:             string(a.Status),
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		StartedAt:          a.StartedAt,
		CompletedAt:        a.CompletedAt,
		ReminderSentAt:     a.ReminderSentAt,
		Version:            a.Version,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}
