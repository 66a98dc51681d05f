package catalog

import (
	"strings"

	"github.com/fieldops/backend/internal/domain/pricing"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service is an offering a technician can perform (e.g. "Boiler inspection").
// Work-order items copy its price and tax rate at the time they are added.
type Service struct {
	shared.TenantAggregateRoot
	Code            string
	Name            string
	Description     string
	UnitPrice       decimal.Decimal
	TaxRatePercent  decimal.Decimal
	DurationMinutes int
	IsActive        bool
}

// NewService creates a new active service
func NewService(tenantID uuid.UUID, code, name string, unitPrice, taxRatePercent decimal.Decimal, durationMinutes int) (*Service, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	name = strings.TrimSpace(name)
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validatePricing(unitPrice, taxRatePercent, durationMinutes); err != nil {
		return nil, err
	}

	return &Service{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		UnitPrice:           unitPrice,
		TaxRatePercent:      taxRatePercent,
		DurationMinutes:     durationMinutes,
		IsActive:            true,
	}, nil
}

// Update replaces the service's descriptive fields
func (s *Service) Update(name, description string) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	s.Name = name
	s.Description = description
	s.Touch()
	s.IncrementVersion()
	return nil
}

// Reprice changes price, tax rate and expected duration
func (s *Service) Reprice(unitPrice, taxRatePercent decimal.Decimal, durationMinutes int) error {
	if err := validatePricing(unitPrice, taxRatePercent, durationMinutes); err != nil {
		return err
	}
	s.UnitPrice = unitPrice
	s.TaxRatePercent = taxRatePercent
	s.DurationMinutes = durationMinutes
	s.Touch()
	s.IncrementVersion()
	return nil
}

// Activate makes the service bookable
func (s *Service) Activate() error {
	if s.IsActive {
		return shared.NewInvalidStateError("Service is already active")
	}
	s.IsActive = true
	s.Touch()
	s.IncrementVersion()
	return nil
}

// Deactivate stops new bookings of the service
func (s *Service) Deactivate() error {
	if !s.IsActive {
		return shared.NewInvalidStateError("Service is already inactive")
	}
	s.IsActive = false
	s.Touch()
	s.IncrementVersion()
	return nil
}

// PriceWithTax returns the tax-inclusive price of a single unit
func (s *Service) PriceWithTax() decimal.Decimal {
	return pricing.ItemTotal(decimal.NewFromInt(1), s.UnitPrice, s.TaxRatePercent)
}

func validateCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Service code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Service code cannot exceed 50 characters")
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Service name cannot be empty")
	}
	if len([]rune(name)) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Service name cannot exceed 200 characters")
	}
	return nil
}

func validatePricing(unitPrice, taxRatePercent decimal.Decimal, durationMinutes int) error {
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if taxRatePercent.IsNegative() {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate cannot be negative")
	}
	if durationMinutes < 0 {
		return shared.NewDomainError("INVALID_DURATION", "Duration cannot be negative")
	}
	return nil
}
