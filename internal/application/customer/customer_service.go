// Package customer implements the customer and location use cases.
package customer

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fieldops/backend/internal/application/common"
	"github.com/fieldops/backend/internal/application/query"
	"github.com/fieldops/backend/internal/domain/customer"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/infrastructure/logger"
	"github.com/fieldops/backend/internal/infrastructure/telemetry"
)

// CustomerService handles customer-related use cases
type CustomerService struct {
	customerRepo   customer.CustomerRepository
	eventPublisher shared.EventPublisher
	limits         query.Limits
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo customer.CustomerRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		limits:       query.DefaultLimits(),
	}
}

// SetEventPublisher sets the publisher that receives CustomerCreated events
func (s *CustomerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetLimits overrides the pagination policy
func (s *CustomerService) SetLimits(limits query.Limits) {
	s.limits = limits
}

// Create registers a new customer for the caller's tenant
func (s *CustomerService) Create(ctx context.Context, cmd CreateCustomerCommand) (*CustomerResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "customer", "create")
	defer span.End()

	if err := common.Validate(cmd); err != nil {
		return nil, err
	}
	tenantID, err := query.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.ensureEmailFree(ctx, tenantID, cmd.Email, nil); err != nil {
		return nil, err
	}

	c, err := customer.NewCustomer(tenantID, cmd.Name, cmd.Email, cmd.Phone)
	if err != nil {
		return nil, err
	}
	c.Notes = cmd.Notes

	if err := s.customerRepo.Save(ctx, c); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	common.PublishEvents(ctx, s.eventPublisher, c)

	logger.L(ctx).Info("Customer created", zap.String("customer_id", c.ID.String()))
	response := ToCustomerResponse(c)
	return &response, nil
}

// GetByID retrieves a customer of the caller's tenant
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(c)
	return &response, nil
}

// List returns one page of the caller's customers
func (s *CustomerService) List(ctx context.Context, q CustomerListQuery) (query.Result[shared.Paginated[CustomerResponse]], error) {
	return query.ListPaged[customer.Customer, CustomerResponse](ctx, s.customerRepo, q.ToFilter(), s.limits, ToCustomerResponse)
}

// Update replaces a customer's contact details
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, cmd UpdateCustomerCommand) (*CustomerResponse, error) {
	if err := common.Validate(cmd); err != nil {
		return nil, err
	}
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, c.TenantID, cmd.Email, &c.ID); err != nil {
		return nil, err
	}
	if err := c.Update(cmd.Name, cmd.Email, cmd.Phone, cmd.Notes); err != nil {
		return nil, err
	}
	return s.save(ctx, c)
}

// Activate makes the customer available for scheduling again
func (s *CustomerService) Activate(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Activate(); err != nil {
		return nil, err
	}
	return s.save(ctx, c)
}

// Deactivate hides the customer from scheduling
func (s *CustomerService) Deactivate(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Deactivate(); err != nil {
		return nil, err
	}
	return s.save(ctx, c)
}

// Delete soft-deletes a customer
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	c, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := c.SoftDelete(); err != nil {
		return err
	}
	if err := s.customerRepo.Save(ctx, c); err != nil {
		return err
	}
	logger.L(ctx).Info("Customer deleted", zap.String("customer_id", id.String()))
	return nil
}

func (s *CustomerService) load(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	tenantID, err := query.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, common.NotFound(err, "Customer")
	}
	return c, nil
}

func (s *CustomerService) save(ctx context.Context, c *customer.Customer) (*CustomerResponse, error) {
	if err := s.customerRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	response := ToCustomerResponse(c)
	return &response, nil
}

func (s *CustomerService) ensureEmailFree(ctx context.Context, tenantID uuid.UUID, email string, excludeID *uuid.UUID) error {
	if email == "" {
		return nil
	}
	exists, err := s.customerRepo.ExistsByEmail(ctx, tenantID, normalizeEmail(email), excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewConflictError("Customer with this email already exists")
	}
	return nil
}
