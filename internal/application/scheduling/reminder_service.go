package scheduling

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fieldops/backend/internal/application/common"
	"github.com/fieldops/backend/internal/domain/scheduling"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/infrastructure/logger"
)

// DefaultReminderLead is how far ahead of the visit reminders go out
const DefaultReminderLead = 24 * time.Hour

// ReminderService finds upcoming appointments and marks their reminder as
// sent. The AppointmentReminder event it publishes is turned into
// notifications by the notification event handler.
type ReminderService struct {
	appointmentRepo scheduling.AppointmentRepository
	finder          scheduling.ReminderFinder
	eventPublisher  shared.EventPublisher
	lead            time.Duration
	now             func() time.Time
}

// NewReminderService creates a new ReminderService
func NewReminderService(appointmentRepo scheduling.AppointmentRepository, finder scheduling.ReminderFinder, lead time.Duration) *ReminderService {
	if lead <= 0 {
		lead = DefaultReminderLead
	}
	return &ReminderService{
		appointmentRepo: appointmentRepo,
		finder:          finder,
		lead:            lead,
		now:             time.Now,
	}
}

// SetEventPublisher sets the publisher of AppointmentReminder events
func (s *ReminderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Lead returns the reminder lead time
func (s *ReminderService) Lead() time.Duration {
	return s.lead
}

// DueReminders lists at most limit appointments whose reminder is due now
func (s *ReminderService) DueReminders(ctx context.Context, limit int) ([]scheduling.ReminderCandidate, error) {
	return s.finder.FindDueReminders(ctx, s.now(), s.lead, limit)
}

// Send marks one reminder as sent. It reloads the appointment inside the
// candidate's tenant and returns false when the reminder is no longer due,
// e.g. because the visit was cancelled or another sweep got there first.
func (s *ReminderService) Send(ctx context.Context, candidate scheduling.ReminderCandidate) (bool, error) {
	ctx = shared.WithTenantID(ctx, candidate.TenantID)

	appt, err := s.appointmentRepo.FindByIDForTenant(ctx, candidate.TenantID, candidate.AppointmentID)
	if err != nil {
		return false, common.NotFound(err, "Appointment")
	}

	now := s.now()
	if !appt.ReminderDue(now, s.lead) {
		return false, nil
	}
	if err := appt.MarkReminded(now, s.lead); err != nil {
		return false, err
	}
	if err := s.appointmentRepo.Save(ctx, appt); err != nil {
		return false, err
	}
	common.PublishEvents(ctx, s.eventPublisher, appt)

	logger.L(ctx).Info("Appointment reminder sent",
		zap.String("appointment_id", appt.ID.String()),
		zap.Time("scheduled_start", appt.ScheduledStart),
	)
	return true, nil
}
