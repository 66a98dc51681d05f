package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fieldops/backend/internal/domain/billing"
	"github.com/fieldops/backend/internal/domain/customer"
	"github.com/fieldops/backend/internal/domain/notification"
	"github.com/fieldops/backend/internal/domain/scheduling"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/domain/workorder"
)

// DefaultStaffRecipient receives the in-app notifications raised by events
const DefaultStaffRecipient = "dispatch"

const timeLayout = "Mon 02 Jan 2006 15:04 MST"

// EventHandler turns appointment, work-order and payment events into
// notifications: always one in-app message for office staff and, when the
// customer has an email address, one email-channel message for the customer.
type EventHandler struct {
	repo           notification.NotificationRepository
	customerRepo   customer.CustomerRepository
	staffRecipient string
	logger         *zap.Logger
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(
	repo notification.NotificationRepository,
	customerRepo customer.CustomerRepository,
	staffRecipient string,
	logger *zap.Logger,
) *EventHandler {
	if staffRecipient == "" {
		staffRecipient = DefaultStaffRecipient
	}
	return &EventHandler{
		repo:           repo,
		customerRepo:   customerRepo,
		staffRecipient: staffRecipient,
		logger:         logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *EventHandler) EventTypes() []string {
	return []string{
		scheduling.EventTypeAppointmentScheduled,
		scheduling.EventTypeAppointmentCancelled,
		scheduling.EventTypeAppointmentReminder,
		workorder.EventTypeWorkOrderCompleted,
		billing.EventTypePaymentReceived,
	}
}

type message struct {
	subject       string
	body          string
	referenceType string
	customerID    uuid.UUID
	notifyClient  bool
}

// Handle creates the notifications for one event
func (h *EventHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	msg, err := h.compose(event)
	if err != nil {
		h.logger.Error("unexpected event type", zap.String("actual", event.EventType()), zap.Error(err))
		return err
	}

	tenantID := event.TenantID()
	staff, err := notification.NewNotification(tenantID, h.staffRecipient, notification.ChannelInApp, msg.subject, msg.body)
	if err != nil {
		return err
	}
	staff.About(msg.referenceType, event.AggregateID())
	if err := h.repo.Save(ctx, staff); err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}

	if msg.notifyClient && msg.customerID != uuid.Nil {
		if err := h.notifyCustomer(ctx, tenantID, event.AggregateID(), msg); err != nil {
			return err
		}
	}

	h.logger.Debug("notifications created for event",
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_id", event.AggregateID().String()),
	)
	return nil
}

func (h *EventHandler) notifyCustomer(ctx context.Context, tenantID, aggregateID uuid.UUID, msg message) error {
	cust, err := h.customerRepo.FindByIDForTenant(ctx, tenantID, msg.customerID)
	if err != nil {
		// The customer may have been deleted since the event was raised
		h.logger.Warn("customer not found for notification",
			zap.String("customer_id", msg.customerID.String()),
			zap.Error(err),
		)
		return nil
	}
	if cust.Email == "" {
		return nil
	}
	n, err := notification.NewNotification(tenantID, cust.Email, notification.ChannelEmail, msg.subject, msg.body)
	if err != nil {
		return err
	}
	n.About(msg.referenceType, aggregateID)
	if err := h.repo.Save(ctx, n); err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}
	return nil
}

func (h *EventHandler) compose(event shared.DomainEvent) (message, error) {
	switch e := event.(type) {
	case *scheduling.AppointmentScheduledEvent:
		body := "Appointment booked for " + e.ScheduledStart.Format(timeLayout)
		if e.Technician != "" {
			body += " with " + e.Technician
		}
		return message{
			subject:       "Appointment scheduled",
			body:          body,
			referenceType: scheduling.AggregateTypeAppointment,
			customerID:    e.CustomerID,
			notifyClient:  true,
		}, nil
	case *scheduling.AppointmentCancelledEvent:
		body := "Appointment on " + e.ScheduledStart.Format(timeLayout) + " was cancelled"
		if e.Reason != "" {
			body += ": " + e.Reason
		}
		return message{
			subject:       "Appointment cancelled",
			body:          body,
			referenceType: scheduling.AggregateTypeAppointment,
			customerID:    e.CustomerID,
			notifyClient:  true,
		}, nil
	case *scheduling.AppointmentReminderEvent:
		body := "Reminder: visit on " + e.ScheduledStart.Format(timeLayout)
		if e.Technician != "" {
			body += " with " + e.Technician
		}
		return message{
			subject:       "Upcoming appointment",
			body:          body,
			referenceType: scheduling.AggregateTypeAppointment,
			customerID:    e.CustomerID,
			notifyClient:  true,
		}, nil
	case *workorder.WorkOrderCompletedEvent:
		return message{
			subject:       "Work order " + e.Number + " completed",
			body:          "Total due " + e.TotalAmount.StringFixed(2),
			referenceType: workorder.AggregateTypeWorkOrder,
			customerID:    e.CustomerID,
			notifyClient:  true,
		}, nil
	case *billing.PaymentReceivedEvent:
		return message{
			subject:       "Payment received",
			body:          fmt.Sprintf("%s received by %s", e.Amount.StringFixed(2), e.Method),
			referenceType: billing.AggregateTypePayment,
		}, nil
	}
	return message{}, fmt.Errorf("unexpected event type: %s", event.EventType())
}

var _ shared.EventHandler = (*EventHandler)(nil)
