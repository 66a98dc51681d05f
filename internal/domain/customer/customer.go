package customer

import (
	"net/mail"
	"strings"

	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Customer is a person or business that receives field service.
// It is the aggregate root for customer-related operations.
type Customer struct {
	shared.TenantAggregateRoot
	Name     string
	Email    string
	Phone    string
	Notes    string
	IsActive bool
}

// NewCustomer creates a new active customer
func NewCustomer(tenantID uuid.UUID, name, email, phone string) (*Customer, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePhone(phone); err != nil {
		return nil, err
	}

	c := &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Email:               email,
		Phone:               strings.TrimSpace(phone),
		IsActive:            true,
	}
	c.AddDomainEvent(NewCustomerCreatedEvent(c))
	return c, nil
}

// Update replaces the customer's contact details
func (c *Customer) Update(name, email, phone, notes string) error {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateName(name); err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := validatePhone(phone); err != nil {
		return err
	}

	c.Name = name
	c.Email = email
	c.Phone = strings.TrimSpace(phone)
	c.Notes = notes
	c.Touch()
	c.IncrementVersion()
	return nil
}

// Activate makes the customer available for scheduling
func (c *Customer) Activate() error {
	if c.IsActive {
		return shared.NewInvalidStateError("Customer is already active")
	}
	c.IsActive = true
	c.Touch()
	c.IncrementVersion()
	return nil
}

// Deactivate hides the customer from scheduling without deleting history
func (c *Customer) Deactivate() error {
	if !c.IsActive {
		return shared.NewInvalidStateError("Customer is already inactive")
	}
	c.IsActive = false
	c.Touch()
	c.IncrementVersion()
	return nil
}

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len([]rune(name)) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return shared.NewDomainError("INVALID_EMAIL", "Email address is not valid")
	}
	return nil
}

func validatePhone(phone string) error {
	if len(strings.TrimSpace(phone)) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	return nil
}
