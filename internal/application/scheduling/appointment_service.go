// Package scheduling implements the appointment use cases.
package scheduling

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fieldops/backend/internal/application/common"
	"github.com/fieldops/backend/internal/application/query"
	"github.com/fieldops/backend/internal/domain/catalog"
	"github.com/fieldops/backend/internal/domain/customer"
	"github.com/fieldops/backend/internal/domain/scheduling"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/infrastructure/logger"
	"github.com/fieldops/backend/internal/infrastructure/telemetry"
)

// AppointmentService handles appointment booking and its status machine
type AppointmentService struct {
	appointmentRepo scheduling.AppointmentRepository
	customerRepo    customer.CustomerRepository
	locationRepo    customer.LocationRepository
	serviceRepo     catalog.ServiceRepository
	eventPublisher  shared.EventPublisher
	limits          query.Limits
}

// NewAppointmentService creates a new AppointmentService
func NewAppointmentService(
	appointmentRepo scheduling.AppointmentRepository,
	customerRepo customer.CustomerRepository,
	locationRepo customer.LocationRepository,
	serviceRepo catalog.ServiceRepository,
) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		customerRepo:    customerRepo,
		locationRepo:    locationRepo,
		serviceRepo:     serviceRepo,
		limits:          query.DefaultLimits(),
	}
}

// SetEventPublisher sets the publisher of AppointmentScheduled/Cancelled events
func (s *AppointmentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetLimits overrides the pagination policy
func (s *AppointmentService) SetLimits(limits query.Limits) {
	s.limits = limits
}

// Schedule books an appointment. The customer and location must be active,
// the location must belong to the customer and the service must be bookable.
func (s *AppointmentService) Schedule(ctx context.Context, cmd ScheduleAppointmentCommand) (*AppointmentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "appointment", "schedule",
		"customer_id", cmd.CustomerID.String(),
		"service_id", cmd.ServiceID.String(),
	)
	defer span.End()

	if err := common.Validate(cmd); err != nil {
		return nil, err
	}
	tenantID, err := query.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.checkBookable(ctx, tenantID, cmd); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	appt, err := scheduling.Schedule(tenantID, scheduling.Booking{
		CustomerID:     cmd.CustomerID,
		LocationID:     cmd.LocationID,
		ServiceID:      cmd.ServiceID,
		Technician:     cmd.Technician,
		ScheduledStart: cmd.ScheduledStart,
		ScheduledEnd:   cmd.ScheduledEnd,
		Notes:          cmd.Notes,
	})
	if err != nil {
		return nil, err
	}

	if err := s.appointmentRepo.Save(ctx, appt); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	common.PublishEvents(ctx, s.eventPublisher, appt)

	logger.L(ctx).Info("Appointment scheduled",
		zap.String("appointment_id", appt.ID.String()),
		zap.Time("scheduled_start", appt.ScheduledStart),
	)
	response := ToAppointmentResponse(appt)
	return &response, nil
}

func (s *AppointmentService) checkBookable(ctx context.Context, tenantID uuid.UUID, cmd ScheduleAppointmentCommand) error {
	cust, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, cmd.CustomerID)
	if err != nil {
		return common.NotFound(err, "Customer")
	}
	if !cust.IsActive {
		return shared.NewDomainError("CUSTOMER_INACTIVE", "Customer is inactive")
	}

	loc, err := s.locationRepo.FindByIDForTenant(ctx, tenantID, cmd.LocationID)
	if err != nil {
		return common.NotFound(err, "Location")
	}
	if loc.CustomerID != cust.ID {
		return shared.NewDomainError("LOCATION_MISMATCH", "Location does not belong to the customer")
	}
	if !loc.IsActive {
		return shared.NewDomainError("LOCATION_INACTIVE", "Location is inactive")
	}

	svc, err := s.serviceRepo.FindByIDForTenant(ctx, tenantID, cmd.ServiceID)
	if err != nil {
		return common.NotFound(err, "Service")
	}
	if !svc.IsActive {
		return shared.NewDomainError("SERVICE_INACTIVE", "Service is not bookable")
	}
	return nil
}

// GetByID retrieves an appointment of the caller's tenant
func (s *AppointmentService) GetByID(ctx context.Context, id uuid.UUID) (*AppointmentResponse, error) {
	appt, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToAppointmentResponse(appt)
	return &response, nil
}

// List returns one page of the caller's appointments
func (s *AppointmentService) List(ctx context.Context, q AppointmentListQuery) (query.Result[shared.Paginated[AppointmentResponse]], error) {
	return query.ListPaged[scheduling.Appointment, AppointmentResponse](ctx, s.appointmentRepo, q.ToFilter(), s.limits, ToAppointmentResponse)
}

// Update changes the technician and notes
func (s *AppointmentService) Update(ctx context.Context, id uuid.UUID, cmd UpdateAppointmentCommand) (*AppointmentResponse, error) {
	if err := common.Validate(cmd); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(a *scheduling.Appointment) error {
		if err := a.AssignTechnician(cmd.Technician); err != nil {
			return err
		}
		a.Notes = cmd.Notes
		return nil
	})
}

// Reschedule moves the appointment to a new window
func (s *AppointmentService) Reschedule(ctx context.Context, id uuid.UUID, cmd RescheduleAppointmentCommand) (*AppointmentResponse, error) {
	if err := common.Validate(cmd); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(a *scheduling.Appointment) error {
		return a.Reschedule(cmd.ScheduledStart, cmd.ScheduledEnd)
	})
}

// Confirm records customer confirmation
func (s *AppointmentService) Confirm(ctx context.Context, id uuid.UUID) (*AppointmentResponse, error) {
	return s.mutate(ctx, id, (*scheduling.Appointment).Confirm)
}

// Start marks the technician as on site
func (s *AppointmentService) Start(ctx context.Context, id uuid.UUID) (*AppointmentResponse, error) {
	return s.mutate(ctx, id, (*scheduling.Appointment).Start)
}

// Complete closes the visit
func (s *AppointmentService) Complete(ctx context.Context, id uuid.UUID) (*AppointmentResponse, error) {
	return s.mutate(ctx, id, (*scheduling.Appointment).Complete)
}

// Cancel cancels an appointment that has not started
func (s *AppointmentService) Cancel(ctx context.Context, id uuid.UUID, cmd CancelAppointmentCommand) (*AppointmentResponse, error) {
	if err := common.Validate(cmd); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(a *scheduling.Appointment) error {
		return a.Cancel(cmd.Reason)
	})
}

// Delete soft-deletes an appointment
func (s *AppointmentService) Delete(ctx context.Context, id uuid.UUID) error {
	appt, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := appt.SoftDelete(); err != nil {
		return err
	}
	return s.appointmentRepo.Save(ctx, appt)
}

// mutate loads, applies change, saves and publishes whatever events change raised
func (s *AppointmentService) mutate(ctx context.Context, id uuid.UUID, change func(*scheduling.Appointment) error) (*AppointmentResponse, error) {
	appt, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	from := appt.Status
	if err := change(appt); err != nil {
		return nil, err
	}
	if err := s.appointmentRepo.Save(ctx, appt); err != nil {
		return nil, err
	}
	common.PublishEvents(ctx, s.eventPublisher, appt)

	if from != appt.Status {
		logger.L(ctx).Info("Appointment status changed",
			zap.String("appointment_id", appt.ID.String()),
			zap.String("from", string(from)),
			zap.String("to", string(appt.Status)),
		)
	}
	response := ToAppointmentResponse(appt)
	return &response, nil
}

func (s *AppointmentService) load(ctx context.Context, id uuid.UUID) (*scheduling.Appointment, error) {
	tenantID, err := query.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	appt, err := s.appointmentRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, common.NotFound(err, "Appointment")
	}
	return appt, nil
}
