package customer

import (
	"strings"

	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Location is a service site belonging to a customer
type Location struct {
	shared.TenantAggregateRoot
	CustomerID  uuid.UUID
	Name        string
	Address     valueobject.Address
	AccessNotes string
	IsPrimary   bool
	IsActive    bool
}

// NewLocation creates a new active location for the customer
func NewLocation(tenantID, customerID uuid.UUID, name string, address valueobject.Address) (*Location, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	name = strings.TrimSpace(name)
	if err := validateLocation(name, address); err != nil {
		return nil, err
	}
	return &Location{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CustomerID:          customerID,
		Name:                name,
		Address:             address,
		IsActive:            true,
	}, nil
}

// Update replaces the location's name, address and access notes
func (l *Location) Update(name string, address valueobject.Address, accessNotes string) error {
	name = strings.TrimSpace(name)
	if err := validateLocation(name, address); err != nil {
		return err
	}
	l.Name = name
	l.Address = address
	l.AccessNotes = accessNotes
	l.Touch()
	l.IncrementVersion()
	return nil
}

// SetPrimary flags the location as the customer's primary site
func (l *Location) SetPrimary(primary bool) {
	l.IsPrimary = primary
	l.Touch()
	l.IncrementVersion()
}

// SetActive toggles whether appointments may be booked at the location
func (l *Location) SetActive(active bool) {
	l.IsActive = active
	l.Touch()
	l.IncrementVersion()
}

func validateLocation(name string, address valueobject.Address) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Location name cannot be empty")
	}
	if len([]rune(name)) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Location name cannot exceed 200 characters")
	}
	if missing := address.Missing(); len(missing) > 0 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address requires "+strings.Join(missing, " and "))
	}
	return nil
}
