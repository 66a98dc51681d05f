package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fieldops/backend/internal/domain/catalog"
	"github.com/fieldops/backend/internal/domain/shared"
)

// CreateServiceCommand adds an offering to the tenant's catalog
type CreateServiceCommand struct {
	Code            string          `json:"code" binding:"required,max=50"`
	Name            string          `json:"name" binding:"required,max=200"`
	Description     string          `json:"description"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	TaxRatePercent  decimal.Decimal `json:"taxRatePercent"`
	DurationMinutes int             `json:"durationMinutes" binding:"min=0"`
}

// Validate checks the command fields
func (c CreateServiceCommand) Validate() []shared.FieldError {
	var v shared.Validator
	v.Required(c.Code, "code")
	v.MaxLength(c.Code, 50, "code")
	v.Required(c.Name, "name")
	v.MaxLength(c.Name, 200, "name")
	validatePricing(&v, c.UnitPrice, c.TaxRatePercent, c.DurationMinutes)
	return v.Errors()
}

// UpdateServiceCommand replaces a service's description and pricing
type UpdateServiceCommand struct {
	Name            string          `json:"name" binding:"required,max=200"`
	Description     string          `json:"description"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	TaxRatePercent  decimal.Decimal `json:"taxRatePercent"`
	DurationMinutes int             `json:"durationMinutes" binding:"min=0"`
}

// Validate checks the command fields
func (c UpdateServiceCommand) Validate() []shared.FieldError {
	var v shared.Validator
	v.Required(c.Name, "name")
	v.MaxLength(c.Name, 200, "name")
	validatePricing(&v, c.UnitPrice, c.TaxRatePercent, c.DurationMinutes)
	return v.Errors()
}

func validatePricing(v *shared.Validator, unitPrice, taxRatePercent decimal.Decimal, durationMinutes int) {
	v.Check(!unitPrice.IsNegative(), "unitPrice", "must not be negative")
	v.Check(!taxRatePercent.IsNegative(), "taxRatePercent", "must not be negative")
	v.Check(durationMinutes >= 0, "durationMinutes", "must not be negative")
}

// ServiceListQuery holds the optional criteria of the catalog list
type ServiceListQuery struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
	IsActive *bool  `form:"is_active"`
}

// ToFilter converts the query into repository criteria
func (q ServiceListQuery) ToFilter() shared.Filter {
	f := shared.Filter{
		Page:     q.Page,
		PageSize: q.PageSize,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
		Search:   q.Search,
	}
	if q.IsActive != nil {
		f.Set(catalog.FilterIsActive, *q.IsActive)
	}
	return f
}

// ServiceResponse is the public projection of a catalog service
type ServiceResponse struct {
	ID              uuid.UUID       `json:"id"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	TaxRatePercent  decimal.Decimal `json:"taxRatePercent"`
	PriceWithTax    decimal.Decimal `json:"priceWithTax"`
	DurationMinutes int             `json:"durationMinutes"`
	IsActive        bool            `json:"isActive"`
	Version         int             `json:"version"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ToServiceResponse projects a domain service
func ToServiceResponse(s *catalog.Service) ServiceResponse {
	return ServiceResponse{
		ID:              s.ID,
		Code:            s.Code,
		Name:            s.Name,
		Description:     s.Description,
		UnitPrice:       s.UnitPrice,
		TaxRatePercent:  s.TaxRatePercent,
		PriceWithTax:    s.PriceWithTax(),
		DurationMinutes: s.DurationMinutes,
		IsActive:        s.IsActive,
		Version:         s.Version,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
