package customer

import (
	"context"

	"github.com/google/uuid"

	"github.com/fieldops/backend/internal/application/common"
	"github.com/fieldops/backend/internal/application/query"
	"github.com/fieldops/backend/internal/domain/customer"
	"github.com/fieldops/backend/internal/domain/shared"
)

// LocationService handles the service sites of customers
type LocationService struct {
	locationRepo customer.LocationRepository
	customerRepo customer.CustomerRepository
	limits       query.Limits
}

// NewLocationService creates a new LocationService
func NewLocationService(locationRepo customer.LocationRepository, customerRepo customer.CustomerRepository) *LocationService {
	return &LocationService{
		locationRepo: locationRepo,
		customerRepo: customerRepo,
		limits:       query.DefaultLimits(),
	}
}

// SetLimits overrides the pagination policy
func (s *LocationService) SetLimits(limits query.Limits) {
	s.limits = limits
}

// Create adds a location to a customer of the caller's tenant.
// A primary location replaces the customer's previous primary.
func (s *LocationService) Create(ctx context.Context, cmd CreateLocationCommand) (*LocationResponse, error) {
	if err := common.Validate(cmd); err != nil {
		return nil, err
	}
	tenantID, err := query.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, cmd.CustomerID); err != nil {
		return nil, common.NotFound(err, "Customer")
	}

	loc, err := customer.NewLocation(tenantID, cmd.CustomerID, cmd.Name, cmd.AddressInput.toValueObject())
	if err != nil {
		return nil, err
	}
	loc.AccessNotes = cmd.AccessNotes

	if err := s.persist(ctx, loc, cmd.IsPrimary); err != nil {
		return nil, err
	}
	response := ToLocationResponse(loc)
	return &response, nil
}

// GetByID retrieves a location of the caller's tenant
func (s *LocationService) GetByID(ctx context.Context, id uuid.UUID) (*LocationResponse, error) {
	loc, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToLocationResponse(loc)
	return &response, nil
}

// List returns one page of the caller's locations
func (s *LocationService) List(ctx context.Context, q LocationListQuery) (query.Result[shared.Paginated[LocationResponse]], error) {
	return query.ListPaged[customer.Location, LocationResponse](ctx, s.locationRepo, q.ToFilter(), s.limits, ToLocationResponse)
}

// Update replaces a location's details
func (s *LocationService) Update(ctx context.Context, id uuid.UUID, cmd UpdateLocationCommand) (*LocationResponse, error) {
	if err := common.Validate(cmd); err != nil {
		return nil, err
	}
	loc, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := loc.Update(cmd.Name, cmd.AddressInput.toValueObject(), cmd.AccessNotes); err != nil {
		return nil, err
	}
	makePrimary := cmd.IsPrimary != nil && *cmd.IsPrimary && !loc.IsPrimary
	if cmd.IsPrimary != nil && !*cmd.IsPrimary {
		loc.SetPrimary(false)
	}
	if cmd.IsActive != nil && *cmd.IsActive != loc.IsActive {
		loc.SetActive(*cmd.IsActive)
	}

	if err := s.persist(ctx, loc, makePrimary); err != nil {
		return nil, err
	}
	response := ToLocationResponse(loc)
	return &response, nil
}

// Delete soft-deletes a location
func (s *LocationService) Delete(ctx context.Context, id uuid.UUID) error {
	loc, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := loc.SoftDelete(); err != nil {
		return err
	}
	return s.locationRepo.Save(ctx, loc)
}

// persist saves loc, promoting it to the customer's primary location when asked
func (s *LocationService) persist(ctx context.Context, loc *customer.Location, primary bool) error {
	if primary {
		return s.locationRepo.SaveAsPrimary(ctx, loc)
	}
	return s.locationRepo.Save(ctx, loc)
}

func (s *LocationService) load(ctx context.Context, id uuid.UUID) (*customer.Location, error) {
	tenantID, err := query.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	loc, err := s.locationRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, common.NotFound(err, "Location")
	}
	return loc, nil
}
