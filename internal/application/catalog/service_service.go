// Package catalog implements the use cases of the tenant's service catalog.
package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fieldops/backend/internal/application/common"
	"github.com/fieldops/backend/internal/application/query"
	"github.com/fieldops/backend/internal/domain/catalog"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/infrastructure/logger"
)

// ServiceService handles catalog service use cases
type ServiceService struct {
	serviceRepo catalog.ServiceRepository
	limits      query.Limits
}

// NewServiceService creates a new ServiceService
func NewServiceService(serviceRepo catalog.ServiceRepository) *ServiceService {
	return &ServiceService{
		serviceRepo: serviceRepo,
		limits:      query.DefaultLimits(),
	}
}

// SetLimits overrides the pagination policy
func (s *ServiceService) SetLimits(limits query.Limits) {
	s.limits = limits
}

// Create adds a service; codes are unique per tenant
func (s *ServiceService) Create(ctx context.Context, cmd CreateServiceCommand) (*ServiceResponse, error) {
	if err := common.Validate(cmd); err != nil {
		return nil, err
	}
	tenantID, err := query.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}

	exists, err := s.serviceRepo.ExistsByCode(ctx, tenantID, cmd.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewConflictError("Service with this code already exists")
	}

	svc, err := catalog.NewService(tenantID, cmd.Code, cmd.Name, cmd.UnitPrice, cmd.TaxRatePercent, cmd.DurationMinutes)
	if err != nil {
		return nil, err
	}
	svc.Description = cmd.Description

	if err := s.serviceRepo.Save(ctx, svc); err != nil {
		return nil, err
	}
	logger.L(ctx).Info("Service created",
		zap.String("service_id", svc.ID.String()),
		zap.String("code", svc.Code),
	)
	response := ToServiceResponse(svc)
	return &response, nil
}

// GetByID retrieves a service of the caller's tenant
func (s *ServiceService) GetByID(ctx context.Context, id uuid.UUID) (*ServiceResponse, error) {
	svc, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToServiceResponse(svc)
	return &response, nil
}

// List returns one page of the caller's catalog
func (s *ServiceService) List(ctx context.Context, q ServiceListQuery) (query.Result[shared.Paginated[ServiceResponse]], error) {
	return query.ListPaged[catalog.Service, ServiceResponse](ctx, s.serviceRepo, q.ToFilter(), s.limits, ToServiceResponse)
}

// Update replaces the description and pricing of a service.
// Existing work-order items keep the price they were added with.
func (s *ServiceService) Update(ctx context.Context, id uuid.UUID, cmd UpdateServiceCommand) (*ServiceResponse, error) {
	if err := common.Validate(cmd); err != nil {
		return nil, err
	}
	svc, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := svc.Update(cmd.Name, cmd.Description); err != nil {
		return nil, err
	}
	if !svc.UnitPrice.Equal(cmd.UnitPrice) || !svc.TaxRatePercent.Equal(cmd.TaxRatePercent) || svc.DurationMinutes != cmd.DurationMinutes {
		if err := svc.Reprice(cmd.UnitPrice, cmd.TaxRatePercent, cmd.DurationMinutes); err != nil {
			return nil, err
		}
	}
	return s.save(ctx, svc)
}

// Activate makes a service bookable again
func (s *ServiceService) Activate(ctx context.Context, id uuid.UUID) (*ServiceResponse, error) {
	svc, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := svc.Activate(); err != nil {
		return nil, err
	}
	return s.save(ctx, svc)
}

// Deactivate stops new bookings of a service
func (s *ServiceService) Deactivate(ctx context.Context, id uuid.UUID) (*ServiceResponse, error) {
	svc, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := svc.Deactivate(); err != nil {
		return nil, err
	}
	return s.save(ctx, svc)
}

// Delete soft-deletes a service
func (s *ServiceService) Delete(ctx context.Context, id uuid.UUID) error {
	svc, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := svc.SoftDelete(); err != nil {
		return err
	}
	return s.serviceRepo.Save(ctx, svc)
}

func (s *ServiceService) load(ctx context.Context, id uuid.UUID) (*catalog.Service, error) {
	tenantID, err := query.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	svc, err := s.serviceRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, common.NotFound(err, "Service")
	}
	return svc, nil
}

func (s *ServiceService) save(ctx context.Context, svc *catalog.Service) (*ServiceResponse, error) {
	if err := s.serviceRepo.Save(ctx, svc); err != nil {
		return nil, err
	}
	response := ToServiceResponse(svc)
	return &response, nil
}
