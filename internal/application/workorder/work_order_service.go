// Package workorder implements the work-order and attachment use cases.
package workorder

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fieldops/backend/internal/application/common"
	"github.com/fieldops/backend/internal/application/query"
	"github.com/fieldops/backend/internal/domain/billing"
	"github.com/fieldops/backend/internal/domain/catalog"
	"github.com/fieldops/backend/internal/domain/customer"
	"github.com/fieldops/backend/internal/domain/scheduling"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/domain/workorder"
	"github.com/fieldops/backend/internal/infrastructure/logger"
	"github.com/fieldops/backend/internal/infrastructure/telemetry"
)

// Repositories groups the stores WorkOrderService reads from
type Repositories struct {
	WorkOrders   workorder.WorkOrderRepository
	Customers    customer.CustomerRepository
	Locations    customer.LocationRepository
	Appointments scheduling.AppointmentRepository
	Services     catalog.ServiceRepository
	// Payments is optional; without it the paid amount is reported as zero
	Payments billing.PaymentRepository
}

// WorkOrderService handles work orders, their items and their lifecycle
type WorkOrderService struct {
	repos          Repositories
	eventPublisher shared.EventPublisher
	limits         query.Limits
	now            func() time.Time
}

// NewWorkOrderService creates a new WorkOrderService
func NewWorkOrderService(repos Repositories) *WorkOrderService {
	return &WorkOrderService{
		repos:  repos,
		limits: query.DefaultLimits(),
		now:    time.Now,
	}
}

// SetEventPublisher sets the publisher of WorkOrderCompleted events
func (s *WorkOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetLimits overrides the pagination policy
func (s *WorkOrderService) SetLimits(limits query.Limits) {
	s.limits = limits
}

// Create opens a work order. When an appointment is given, customer and
// location default to the appointment's and must match it when set.
func (s *WorkOrderService) Create(ctx context.Context, cmd CreateWorkOrderCommand) (*WorkOrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "work_order", "create",
		"customer_id", cmd.CustomerID.String(),
	)
	defer span.End()

	if err := common.Validate(cmd); err != nil {
		return nil, err
	}
	tenantID, err := query.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}

	customerID, locationID := cmd.CustomerID, cmd.LocationID
	if cmd.AppointmentID != nil {
		appt, err := s.repos.Appointments.FindByIDForTenant(ctx, tenantID, *cmd.AppointmentID)
		if err != nil {
			return nil, common.NotFound(err, "Appointment")
		}
		if appt.Status == scheduling.AppointmentStatusCancelled {
			return nil, shared.NewInvalidStateError("Cannot open a work order for a cancelled appointment")
		}
		if customerID == uuid.Nil {
			customerID = appt.CustomerID
		}
		if locationID == uuid.Nil {
			locationID = appt.LocationID
		}
		if customerID != appt.CustomerID || locationID != appt.LocationID {
			return nil, shared.NewDomainError("APPOINTMENT_MISMATCH", "Customer and location must match the appointment")
		}
	}

	if _, err := s.repos.Customers.FindByIDForTenant(ctx, tenantID, customerID); err != nil {
		return nil, common.NotFound(err, "Customer")
	}
	loc, err := s.repos.Locations.FindByIDForTenant(ctx, tenantID, locationID)
	if err != nil {
		return nil, common.NotFound(err, "Location")
	}
	if loc.CustomerID != customerID {
		return nil, shared.NewDomainError("LOCATION_MISMATCH", "Location does not belong to the customer")
	}

	number, err := s.repos.WorkOrders.NextNumber(ctx, tenantID, s.now())
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	wo, err := workorder.NewWorkOrder(tenantID, number, customerID, locationID, cmd.Description)
	if err != nil {
		return nil, err
	}
	if cmd.AppointmentID != nil {
		wo.LinkAppointment(*cmd.AppointmentID)
	}
	for _, input := range cmd.Items {
		if err := s.addItem(ctx, tenantID, wo, input); err != nil {
			return nil, err
		}
	}

	if err := s.repos.WorkOrders.Save(ctx, wo); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	logger.L(ctx).Info("Work order created",
		zap.String("work_order_id", wo.ID.String()),
		zap.String("number", wo.Number),
		zap.Int("items", len(wo.Items)),
	)
	response := ToWorkOrderResponse(wo, decimal.Zero)
	return &response, nil
}

// addItem resolves catalog defaults and appends the line
func (s *WorkOrderService) addItem(ctx context.Context, tenantID uuid.UUID, wo *workorder.WorkOrder, input ItemInput) error {
	description := input.Description
	var unitPrice, taxRate decimal.Decimal
	if input.UnitPrice != nil {
		unitPrice = *input.UnitPrice
	}
	if input.TaxRatePercent != nil {
		taxRate = *input.TaxRatePercent
	}

	if input.ServiceID != nil {
		svc, err := s.repos.Services.FindByIDForTenant(ctx, tenantID, *input.ServiceID)
		if err != nil {
			return common.NotFound(err, "Service")
		}
		if description == "" {
			description = svc.Name
		}
		if input.UnitPrice == nil {
			unitPrice = svc.UnitPrice
		}
		if input.TaxRatePercent == nil {
			taxRate = svc.TaxRatePercent
		}
	}

	_, err := wo.AddItem(description, input.Quantity, unitPrice, taxRate, input.ServiceID)
	return err
}

// GetByID retrieves a work order with items, totals and balance
func (s *WorkOrderService) GetByID(ctx context.Context, id uuid.UUID) (*WorkOrderResponse, error) {
	wo, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, wo)
}

// List returns one page of the caller's work orders without items
func (s *WorkOrderService) List(ctx context.Context, q WorkOrderListQuery) (query.Result[shared.Paginated[WorkOrderListItem]], error) {
	return query.ListPaged[workorder.WorkOrder, WorkOrderListItem](ctx, s.repos.WorkOrders, q.ToFilter(), s.limits, ToWorkOrderListItem)
}

// Update replaces the description
func (s *WorkOrderService) Update(ctx context.Context, id uuid.UUID, cmd UpdateWorkOrderCommand) (*WorkOrderResponse, error) {
	if err := common.Validate(cmd); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, "update", func(wo *workorder.WorkOrder) error {
		return wo.UpdateDescription(cmd.Description)
	})
}

// AddItem appends a line to an open or in-progress work order
func (s *WorkOrderService) AddItem(ctx context.Context, id uuid.UUID, cmd AddItemCommand) (*WorkOrderResponse, error) {
	if err := common.Validate(cmd); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, "add_item", func(wo *workorder.WorkOrder) error {
		return s.addItem(ctx, wo.TenantID, wo, cmd.ItemInput)
	})
}

// RemoveItem drops a line from an open or in-progress work order
func (s *WorkOrderService) RemoveItem(ctx context.Context, id, itemID uuid.UUID) (*WorkOrderResponse, error) {
	return s.mutate(ctx, id, "remove_item", func(wo *workorder.WorkOrder) error {
		return wo.RemoveItem(itemID)
	})
}

// Start moves the work order into progress
func (s *WorkOrderService) Start(ctx context.Context, id uuid.UUID) (*WorkOrderResponse, error) {
	return s.mutate(ctx, id, "start", (*workorder.WorkOrder).Start)
}

// Complete closes the work order for billing and publishes WorkOrderCompleted
func (s *WorkOrderService) Complete(ctx context.Context, id uuid.UUID) (*WorkOrderResponse, error) {
	return s.mutate(ctx, id, "complete", (*workorder.WorkOrder).Complete)
}

// Cancel abandons the work order
func (s *WorkOrderService) Cancel(ctx context.Context, id uuid.UUID) (*WorkOrderResponse, error) {
	return s.mutate(ctx, id, "cancel", (*workorder.WorkOrder).Cancel)
}

// Delete soft-deletes a work order. Completed work orders are kept.
func (s *WorkOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	wo, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if wo.Status == workorder.StatusCompleted {
		return shared.NewInvalidStateError("Completed work orders cannot be deleted")
	}
	if err := wo.SoftDelete(); err != nil {
		return err
	}
	if err := s.repos.WorkOrders.Save(ctx, wo); err != nil {
		return err
	}
	logger.L(ctx).Info("Work order deleted", zap.String("work_order_id", id.String()))
	return nil
}

func (s *WorkOrderService) mutate(ctx context.Context, id uuid.UUID, op string, apply func(*workorder.WorkOrder) error) (*WorkOrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "work_order", op, "work_order_id", id.String())
	defer span.End()

	wo, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := wo.Status
	if err := apply(wo); err != nil {
		return nil, err
	}
	if err := s.repos.WorkOrders.Save(ctx, wo); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	common.PublishEvents(ctx, s.eventPublisher, wo)

	if previous != wo.Status {
		logger.L(ctx).Info("Work order status changed",
			zap.String("work_order_id", wo.ID.String()),
			zap.String("from", string(previous)),
			zap.String("to", string(wo.Status)),
		)
	}
	return s.respond(ctx, wo)
}

func (s *WorkOrderService) respond(ctx context.Context, wo *workorder.WorkOrder) (*WorkOrderResponse, error) {
	paid := decimal.Zero
	if s.repos.Payments != nil {
		sum, err := s.repos.Payments.SumSettledForWorkOrder(ctx, wo.TenantID, wo.ID)
		if err != nil {
			return nil, err
		}
		paid = sum
	}
	response := ToWorkOrderResponse(wo, paid)
	return &response, nil
}

func (s *WorkOrderService) load(ctx context.Context, id uuid.UUID) (*workorder.WorkOrder, error) {
	tenantID, err := query.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	wo, err := s.repos.WorkOrders.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, common.NotFound(err, "Work order")
	}
	return wo, nil
}
