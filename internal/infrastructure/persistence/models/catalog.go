package models

import (
	"github.com/fieldops/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ServiceModel is the persistence model for the catalog Service entity.
type ServiceModel struct {
	TenantAggregateModel
	Code            string          `gorm:"type:varchar(50);not null;index"`
	Name            string          `gorm:"type:varchar(200);not null"`
	Description     string          `gorm:"type:text"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TaxRatePercent  decimal.Decimal `gorm:"type:decimal(9,4);not null;default:0"`
	DurationMinutes int             `gorm:"not null;default:0"`
	IsActive        bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ServiceModel) TableName() string {
	return "services"
}

// ToDomain converts the persistence model to a domain Service entity.
func (m *ServiceModel) ToDomain() *catalog.Service {
	return &catalog.Service{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Code:                m.Code,
		Name:                m.Name,
		Description:         m.Description,
		UnitPrice:           m.UnitPrice,
		TaxRatePercent:      m.TaxRatePercent,
		DurationMinutes:     m.DurationMinutes,
		IsActive:            m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Service entity.
func (m *ServiceModel) FromDomain(s *catalog.Service) {
	m.FromDomainTenantAggregateRoot(s.TenantAggregateRoot)
	m.Code = s.Code
	m.Name = s.Name
	m.Description = s.Description
	m.UnitPrice = s.UnitPrice
	m.TaxRatePercent = s.TaxRatePercent
	m.DurationMinutes = s.DurationMinutes
	m.IsActive = s.IsActive
}

// ServiceModelFromDomain creates a new persistence model from a domain Service entity.
func ServiceModelFromDomain(s *catalog.Service) *ServiceModel {
	m := &ServiceModel{}
	m.FromDomain(s)
	return m
}
