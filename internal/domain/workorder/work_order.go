package workorder

import (
	"strings"
	"time"

	"github.com/fieldops/backend/internal/domain/pricing"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of a work order
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// IsValid checks if the status is a known value
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsEditable reports whether items may still be changed
func (s Status) IsEditable() bool {
	return s == StatusOpen || s == StatusInProgress
}

// Item is a billable line on a work order
type Item struct {
	ID             uuid.UUID
	WorkOrderID    uuid.UUID
	ServiceID      *uuid.UUID
	Description    string
	Quantity       decimal.Decimal
	UnitPrice      decimal.Decimal
	TaxRatePercent decimal.Decimal
	Position       int
	CreatedAt      time.Time
}

// LineItem converts the item to its pricing triple
func (i Item) LineItem() pricing.LineItem {
	return pricing.NewLineItem(i.Quantity, i.UnitPrice, i.TaxRatePercent)
}

// Total returns the tax-inclusive line total
func (i Item) Total() decimal.Decimal {
	return i.LineItem().Total()
}

// Tax returns the tax portion of the line
func (i Item) Tax() decimal.Decimal {
	return i.LineItem().Tax()
}

// WorkOrder is the record of work performed for a customer and the basis for billing
type WorkOrder struct {
	shared.TenantAggregateRoot
	Number        string
	CustomerID    uuid.UUID
	LocationID    uuid.UUID
	AppointmentID *uuid.UUID
	Status        Status
	Description   string
	Items         []Item
	TotalAmount   decimal.Decimal
	CompletedAt   *time.Time
}

// NewWorkOrder creates an open work order with no items
func NewWorkOrder(tenantID uuid.UUID, number string, customerID, locationID uuid.UUID, description string) (*WorkOrder, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Work order number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location ID cannot be empty")
	}
	return &WorkOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		CustomerID:          customerID,
		LocationID:          locationID,
		Status:              StatusOpen,
		Description:         strings.TrimSpace(description),
		Items:               make([]Item, 0),
		TotalAmount:         decimal.Zero,
	}, nil
}

// LinkAppointment records the appointment the work originated from
func (w *WorkOrder) LinkAppointment(appointmentID uuid.UUID) {
	w.AppointmentID = &appointmentID
}

// AddItem appends a line and recomputes the stored total
func (w *WorkOrder) AddItem(description string, quantity, unitPrice, taxRatePercent decimal.Decimal, serviceID *uuid.UUID) (*Item, error) {
	if !w.Status.IsEditable() {
		return nil, shared.NewInvalidStateError("Items can only be changed on open or in-progress work orders")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item description cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if taxRatePercent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TAX_RATE", "Tax rate cannot be negative")
	}

	item := Item{
		ID:             uuid.New(),
		WorkOrderID:    w.ID,
		ServiceID:      serviceID,
		Description:    description,
		Quantity:       quantity,
		UnitPrice:      unitPrice,
		TaxRatePercent: taxRatePercent,
		Position:       len(w.Items),
		CreatedAt:      time.Now(),
	}
	w.Items = append(w.Items, item)
	w.recalculateTotal()
	return &w.Items[len(w.Items)-1], nil
}

// RemoveItem drops a line and recomputes the stored total
func (w *WorkOrder) RemoveItem(itemID uuid.UUID) error {
	if !w.Status.IsEditable() {
		return shared.NewInvalidStateError("Items can only be changed on open or in-progress work orders")
	}
	for i := range w.Items {
		if w.Items[i].ID == itemID {
			w.Items = append(w.Items[:i], w.Items[i+1:]...)
			for j := range w.Items {
				w.Items[j].Position = j
			}
			w.recalculateTotal()
			return nil
		}
	}
	return shared.NewNotFoundError("Work order item")
}

// Start moves an open work order into progress
func (w *WorkOrder) Start() error {
	if w.Status != StatusOpen {
		return shared.NewInvalidStateError("Only open work orders can be started")
	}
	w.Status = StatusInProgress
	w.Touch()
	w.IncrementVersion()
	return nil
}

// Complete closes the work order for billing
func (w *WorkOrder) Complete() error {
	if w.Status != StatusInProgress && w.Status != StatusOpen {
		return shared.NewInvalidStateError("Only open or in-progress work orders can be completed")
	}
	if len(w.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot complete a work order without items")
	}
	now := time.Now()
	w.Status = StatusCompleted
	w.CompletedAt = &now
	w.Touch()
	w.IncrementVersion()
	w.AddDomainEvent(NewWorkOrderCompletedEvent(w))
	return nil
}

// Cancel abandons a work order that has not been completed
func (w *WorkOrder) Cancel() error {
	if !w.Status.IsEditable() {
		return shared.NewInvalidStateError("Only open or in-progress work orders can be cancelled")
	}
	w.Status = StatusCancelled
	w.Touch()
	w.IncrementVersion()
	return nil
}

// UpdateDescription replaces the free-text description
func (w *WorkOrder) UpdateDescription(description string) error {
	if w.Status == StatusCancelled {
		return shared.NewInvalidStateError("Cancelled work orders cannot be edited")
	}
	w.Description = strings.TrimSpace(description)
	w.Touch()
	w.IncrementVersion()
	return nil
}

// LineItems returns the pricing view of the items
func (w *WorkOrder) LineItems() []pricing.LineItem {
	out := make([]pricing.LineItem, 0, len(w.Items))
	for _, item := range w.Items {
		out = append(out, item.LineItem())
	}
	return out
}

// Total returns the tax-inclusive total. When items were not loaded the
// stored total is used.
func (w *WorkOrder) Total() decimal.Decimal {
	return pricing.AggregateTotal(w.LineItems(), w.TotalAmount)
}

// Summary returns subtotal, tax and total for the work order
func (w *WorkOrder) Summary() pricing.Summary {
	return pricing.Summarize(w.LineItems(), w.TotalAmount)
}

// Balance returns the total less the given paid amount
func (w *WorkOrder) Balance(paid decimal.Decimal) decimal.Decimal {
	return w.Total().Sub(paid)
}

// IsBillable reports whether payments may be recorded against the work order
func (w *WorkOrder) IsBillable() bool {
	return w.Status == StatusInProgress || w.Status == StatusCompleted
}

func (w *WorkOrder) recalculateTotal() {
	w.TotalAmount = pricing.AggregateTotal(w.LineItems(), decimal.Zero)
	w.Touch()
	w.IncrementVersion()
}
