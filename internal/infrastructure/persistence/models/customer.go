package models

import (
	"github.com/fieldops/backend/internal/domain/customer"
	"github.com/fieldops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	TenantAggregateModel
	Name     string `gorm:"type:varchar(200);not null;index"`
	Email    string `gorm:"type:varchar(254);index"`
	Phone    string `gorm:"type:varchar(50)"`
	Notes    string `gorm:"type:text"`
	IsActive bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *customer.Customer {
	return &customer.Customer{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Name:                m.Name,
		Email:               m.Email,
		Phone:               m.Phone,
		Notes:               m.Notes,
		IsActive:            m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *customer.Customer) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.Name = c.Name
	m.Email = c.Email
	m.Phone = c.Phone
	m.Notes = c.Notes
	m.IsActive = c.IsActive
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *customer.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

// LocationModel is the persistence model for the Location domain entity.
type LocationModel struct {
	TenantAggregateModel
	CustomerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"type:varchar(200);not null"`
	AddressLine1 string    `gorm:"type:varchar(200);not null"`
	AddressLine2 string    `gorm:"type:varchar(200)"`
	City         string    `gorm:"type:varchar(100);not null;index"`
	Region       string    `gorm:"type:varchar(100)"`
	PostalCode   string    `gorm:"type:varchar(20)"`
	Country      string    `gorm:"type:varchar(100)"`
	AccessNotes  string    `gorm:"type:text"`
	IsPrimary    bool      `gorm:"not null;default:false"`
	IsActive     bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (LocationModel) TableName() string {
	return "locations"
}

// ToDomain converts the persistence model to a domain Location entity.
func (m *LocationModel) ToDomain() *customer.Location {
	return &customer.Location{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		CustomerID:          m.CustomerID,
		Name:                m.Name,
		Address: valueobject.NewAddress(
			m.AddressLine1, m.AddressLine2, m.City, m.Region, m.PostalCode, m.Country,
		),
		AccessNotes: m.AccessNotes,
		IsPrimary:   m.IsPrimary,
		IsActive:    m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Location entity.
func (m *LocationModel) FromDomain(l *customer.Location) {
	m.FromDomainTenantAggregateRoot(l.TenantAggregateRoot)
	m.CustomerID = l.CustomerID
	m.Name = l.Name
	m.AddressLine1 = l.Address.Line1()
	m.AddressLine2 = l.Address.Line2()
	m.City = l.Address.City()
	m.Region = l.Address.Region()
	m.PostalCode = l.Address.PostalCode()
	m.Country = l.Address.Country()
	m.AccessNotes = l.AccessNotes
	m.IsPrimary = l.IsPrimary
	m.IsActive = l.IsActive
}

// LocationModelFromDomain creates a new persistence model from a domain Location entity.
func LocationModelFromDomain(l *customer.Location) *LocationModel {
	m := &LocationModel{}
	m.FromDomain(l)
	return m
}
