package customer

import (
	"github.com/fieldops/backend/internal/domain/shared"
)

// AggregateTypeCustomer is the aggregate type name for customers
const AggregateTypeCustomer = "Customer"

// EventTypeCustomerCreated is raised when a customer is registered
const EventTypeCustomerCreated = "CustomerCreated"

// CustomerCreatedEvent carries the new customer's contact details
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewCustomerCreatedEvent creates a CustomerCreated event
func NewCustomerCreatedEvent(c *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerCreated, AggregateTypeCustomer, c.ID, c.TenantID),
		Name:            c.Name,
		Email:           c.Email,
	}
}
