package customer

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fieldops/backend/internal/domain/customer"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/domain/shared/valueobject"
)

// =============================================================================
// Customer DTOs
// =============================================================================

// CreateCustomerCommand registers a new customer
type CreateCustomerCommand struct {
	Name  string `json:"name" binding:"required,max=200"`
	Email string `json:"email" binding:"omitempty,email,max=254"`
	Phone string `json:"phone" binding:"max=50"`
	Notes string `json:"notes"`
}

// Validate checks the command fields
func (c CreateCustomerCommand) Validate() []shared.FieldError {
	var v shared.Validator
	v.Required(c.Name, "name")
	v.MaxLength(c.Name, 200, "name")
	v.MaxLength(c.Email, 254, "email")
	v.MaxLength(c.Phone, 50, "phone")
	return v.Errors()
}

// UpdateCustomerCommand replaces a customer's contact details
type UpdateCustomerCommand struct {
	Name  string `json:"name" binding:"required,max=200"`
	Email string `json:"email" binding:"omitempty,email,max=254"`
	Phone string `json:"phone" binding:"max=50"`
	Notes string `json:"notes"`
}

// Validate checks the command fields
func (c UpdateCustomerCommand) Validate() []shared.FieldError {
	return CreateCustomerCommand(c).Validate()
}

// CustomerListQuery holds the optional criteria of the customer list
type CustomerListQuery struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
	IsActive *bool  `form:"is_active"`
}

// ToFilter converts the query into repository criteria
func (q CustomerListQuery) ToFilter() shared.Filter {
	f := shared.Filter{
		Page:     q.Page,
		PageSize: q.PageSize,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
		Search:   q.Search,
	}
	if q.IsActive != nil {
		f.Set(customer.FilterIsActive, *q.IsActive)
	}
	return f
}

// CustomerResponse is the public projection of a customer
type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Notes     string    `json:"notes"`
	IsActive  bool      `json:"isActive"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToCustomerResponse projects a domain customer
func ToCustomerResponse(c *customer.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Notes:     c.Notes,
		IsActive:  c.IsActive,
		Version:   c.Version,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// =============================================================================
// Location DTOs
// =============================================================================

// AddressInput is the postal address of a location
type AddressInput struct {
	Line1      string `json:"addressLine1" binding:"required,max=200"`
	Line2      string `json:"addressLine2" binding:"max=200"`
	City       string `json:"city" binding:"required,max=100"`
	Region     string `json:"region" binding:"max=100"`
	PostalCode string `json:"postalCode" binding:"max=20"`
	Country    string `json:"country" binding:"max=100"`
}

func (a AddressInput) toValueObject() valueobject.Address {
	return valueobject.NewAddress(a.Line1, a.Line2, a.City, a.Region, a.PostalCode, a.Country)
}

func (a AddressInput) validate(v *shared.Validator) {
	v.Required(a.Line1, "addressLine1")
	v.MaxLength(a.Line1, 200, "addressLine1")
	v.MaxLength(a.Line2, 200, "addressLine2")
	v.Required(a.City, "city")
	v.MaxLength(a.City, 100, "city")
	v.MaxLength(a.Region, 100, "region")
	v.MaxLength(a.PostalCode, 20, "postalCode")
	v.MaxLength(a.Country, 100, "country")
}

// CreateLocationCommand adds a service site to a customer
type CreateLocationCommand struct {
	CustomerID uuid.UUID `json:"customerId" binding:"required"`
	Name       string    `json:"name" binding:"required,max=200"`
	AddressInput
	AccessNotes string `json:"accessNotes"`
	IsPrimary   bool   `json:"isPrimary"`
}

// Validate checks the command fields
func (c CreateLocationCommand) Validate() []shared.FieldError {
	var v shared.Validator
	v.Check(c.CustomerID != uuid.Nil, "customerId", "is required")
	v.Required(c.Name, "name")
	v.MaxLength(c.Name, 200, "name")
	c.AddressInput.validate(&v)
	return v.Errors()
}

// UpdateLocationCommand replaces a location's details. Nil flags are left unchanged.
type UpdateLocationCommand struct {
	Name string `json:"name" binding:"required,max=200"`
	AddressInput
	AccessNotes string `json:"accessNotes"`
	IsPrimary   *bool  `json:"isPrimary"`
	IsActive    *bool  `json:"isActive"`
}

// Validate checks the command fields
func (c UpdateLocationCommand) Validate() []shared.FieldError {
	var v shared.Validator
	v.Required(c.Name, "name")
	v.MaxLength(c.Name, 200, "name")
	c.AddressInput.validate(&v)
	return v.Errors()
}

// LocationListQuery holds the optional criteria of the location list
type LocationListQuery struct {
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir"`
	Search     string     `form:"search"`
	CustomerID *uuid.UUID `form:"customer_id"`
	City       *string    `form:"city"`
	IsActive   *bool      `form:"is_active"`
	IsPrimary  *bool      `form:"is_primary"`
}

// ToFilter converts the query into repository criteria
func (q LocationListQuery) ToFilter() shared.Filter {
	f := shared.Filter{
		Page:     q.Page,
		PageSize: q.PageSize,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
		Search:   q.Search,
	}
	if q.CustomerID != nil {
		f.Set(customer.FilterCustomerID, *q.CustomerID)
	}
	if q.City != nil {
		f.Set(customer.FilterCity, *q.City)
	}
	if q.IsActive != nil {
		f.Set(customer.FilterIsActive, *q.IsActive)
	}
	if q.IsPrimary != nil {
		f.Set(customer.FilterIsPrimary, *q.IsPrimary)
	}
	return f
}

// LocationResponse is the public projection of a location
type LocationResponse struct {
	ID           uuid.UUID `json:"id"`
	CustomerID   uuid.UUID `json:"customerId"`
	Name         string    `json:"name"`
	AddressLine1 string    `json:"addressLine1"`
	AddressLine2 string    `json:"addressLine2"`
	City         string    `json:"city"`
	Region       string    `json:"region"`
	PostalCode   string    `json:"postalCode"`
	Country      string    `json:"country"`
	FullAddress  string    `json:"fullAddress"`
	AccessNotes  string    `json:"accessNotes"`
	IsPrimary    bool      `json:"isPrimary"`
	IsActive     bool      `json:"isActive"`
	Version      int       `json:"version"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ToLocationResponse projects a domain location
func ToLocationResponse(l *customer.Location) LocationResponse {
	return LocationResponse{
		ID:           l.ID,
		CustomerID:   l.CustomerID,
		Name:         l.Name,
		AddressLine1: l.Address.Line1(),
		AddressLine2: l.Address.Line2(),
		City:         l.Address.City(),
		Region:       l.Address.Region(),
		PostalCode:   l.Address.PostalCode(),
		Country:      l.Address.Country(),
		FullAddress:  l.Address.FullAddress(),
		AccessNotes:  l.AccessNotes,
		IsPrimary:    l.IsPrimary,
		IsActive:     l.IsActive,
		Version:      l.Version,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
