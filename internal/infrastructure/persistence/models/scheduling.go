package models

import (
	"time"

	"github.com/fieldops/backend/internal/domain/scheduling"
	"github.com/google/uuid"
)

// AppointmentModel is the persistence model for the Appointment domain entity.
type AppointmentModel struct {
	TenantAggregateModel
	CustomerID         uuid.UUID                    `gorm:"type:uuid;not null;index"`
	LocationID         uuid.UUID                    `gorm:"type:uuid;not null;index"`
	ServiceID          uuid.UUID                    `gorm:"type:uuid;not null"`
	Technician         string                       `gorm:"type:varchar(100);index"`
	ScheduledStart     time.Time                    `gorm:"not null;index"`
	ScheduledEnd       time.Time                    `gorm:"not null"`
	Status             scheduling.AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled'"`
	Notes              string                       `gorm:"type:text"`
	CancellationReason string                       `gorm:"type:varchar(500)"`
	StartedAt          *time.Time
	CompletedAt        *time.Time
	ReminderSentAt     *time.Time
}

// TableName returns the table name for GORM
func (AppointmentModel) TableName() string {
	return "appointments"
}

// ToDomain converts the persistence model to a domain Appointment entity.
func (m *AppointmentModel) ToDomain() *scheduling.Appointment {
	return &scheduling.Appointment{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		CustomerID:          m.CustomerID,
		LocationID:          m.LocationID,
		ServiceID:           m.ServiceID,
		Technician:          m.Technician,
		ScheduledStart:      m.ScheduledStart,
		ScheduledEnd:        m.ScheduledEnd,
		Status:              m.Status,
		Notes:               m.Notes,
		CancellationReason:  m.CancellationReason,
		StartedAt:           m.StartedAt,
		CompletedAt:         m.CompletedAt,
		ReminderSentAt:      m.ReminderSentAt,
	}
}

// FromDomain populates the persistence model from a domain Appointment entity.
func (m *AppointmentModel) FromDomain(a *scheduling.Appointment) {
	m.FromDomainTenantAggregateRoot(a.TenantAggregateRoot)
	m.CustomerID = a.CustomerID
	m.LocationID = a.LocationID
	m.ServiceID = a.ServiceID
	m.Technician = a.Technician
	m.ScheduledStart = a.ScheduledStart
	m.ScheduledEnd = a.ScheduledEnd
	m.Status = a.Status
	m.Notes = a.Notes
	m.CancellationReason = a.CancellationReason
	m.StartedAt = a.StartedAt
	m.CompletedAt = a.CompletedAt
	m.ReminderSentAt = a.ReminderSentAt
}

// AppointmentModelFromDomain creates a new persistence model from a domain Appointment entity.
func AppointmentModelFromDomain(a *scheduling.Appointment) *AppointmentModel {
	m := &AppointmentModel{}
	m.FromDomain(a)
	return m
}
