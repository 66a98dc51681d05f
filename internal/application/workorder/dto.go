package workorder

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/domain/workorder"
)

// ItemInput describes a line to add. When ServiceID is set, blank description,
// price and tax rate are copied from the catalog service.
type ItemInput struct {
	ServiceID      *uuid.UUID       `json:"serviceId"`
	Description    string           `json:"description" binding:"max=500"`
	Quantity       decimal.Decimal  `json:"quantity"`
	UnitPrice      *decimal.Decimal `json:"unitPrice"`
	TaxRatePercent *decimal.Decimal `json:"taxRatePercent"`
}

func (i ItemInput) validate(v *shared.Validator, prefix string) {
	if i.ServiceID == nil {
		v.Required(i.Description, prefix+"description")
		v.Check(i.UnitPrice != nil, prefix+"unitPrice", "is required without serviceId")
	}
	v.MaxLength(i.Description, 500, prefix+"description")
	v.Check(i.Quantity.IsPositive(), prefix+"quantity", "must be positive")
	if i.UnitPrice != nil {
		v.Check(!i.UnitPrice.IsNegative(), prefix+"unitPrice", "must not be negative")
	}
	if i.TaxRatePercent != nil {
		v.Check(!i.TaxRatePercent.IsNegative(), prefix+"taxRatePercent", "must not be negative")
	}
}

// AddItemCommand adds a single line to a work order
type AddItemCommand struct {
	ItemInput
}

// Validate checks the command fields
func (c AddItemCommand) Validate() []shared.FieldError {
	var v shared.Validator
	c.ItemInput.validate(&v, "")
	return v.Errors()
}

// CreateWorkOrderCommand opens a work order, optionally from an appointment
type CreateWorkOrderCommand struct {
	CustomerID    uuid.UUID   `json:"customerId"`
	LocationID    uuid.UUID   `json:"locationId"`
	AppointmentID *uuid.UUID  `json:"appointmentId"`
	Description   string      `json:"description" binding:"max=4000"`
	Items         []ItemInput `json:"items" binding:"dive"`
}

// Validate checks the command fields. Customer and location may be omitted
// when an appointment is given; they are then taken from the appointment.
func (c CreateWorkOrderCommand) Validate() []shared.FieldError {
	var v shared.Validator
	if c.AppointmentID == nil {
		v.Check(c.CustomerID != uuid.Nil, "customerId", "is required")
		v.Check(c.LocationID != uuid.Nil, "locationId", "is required")
	}
	v.MaxLength(c.Description, 4000, "description")
	for i, item := range c.Items {
		item.validate(&v, itemPrefix(i))
	}
	return v.Errors()
}

// UpdateWorkOrderCommand replaces the free-text description
type UpdateWorkOrderCommand struct {
	Description string `json:"description" binding:"max=4000"`
}

// Validate checks the command fields
func (c UpdateWorkOrderCommand) Validate() []shared.FieldError {
	var v shared.Validator
	v.MaxLength(c.Description, 4000, "description")
	return v.Errors()
}

func itemPrefix(i int) string {
	return "items[" + strconv.Itoa(i) + "]."
}

// WorkOrderListQuery holds the optional criteria of the work-order list
type WorkOrderListQuery struct {
	Page          int        `form:"page"`
	PageSize      int        `form:"page_size"`
	OrderBy       string     `form:"order_by"`
	OrderDir      string     `form:"order_dir"`
	Search        string     `form:"search"`
	CustomerID    *uuid.UUID `form:"customer_id"`
	LocationID    *uuid.UUID `form:"location_id"`
	AppointmentID *uuid.UUID `form:"appointment_id"`
	Status        *string    `form:"status" binding:"omitempty,oneof=open in_progress completed cancelled"`
}

// ToFilter converts the query into repository criteria
func (q WorkOrderListQuery) ToFilter() shared.Filter {
	f := shared.Filter{
		Page:     q.Page,
		PageSize: q.PageSize,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
		Search:   q.Search,
	}
	if q.CustomerID != nil {
		f.Set(workorder.FilterCustomerID, *q.CustomerID)
	}
	if q.LocationID != nil {
		f.Set(workorder.FilterLocationID, *q.LocationID)
	}
	if q.AppointmentID != nil {
		f.Set(workorder.FilterAppointmentID, *q.AppointmentID)
	}
	if q.Status != nil {
		f.Set(workorder.FilterStatus, workorder.Status(*q.Status))
	}
	return f
}

// ItemResponse is the public projection of a work-order line
type ItemResponse struct {
	ID             uuid.UUID       `json:"id"`
	ServiceID      *uuid.UUID      `json:"serviceId,omitempty"`
	Description    string          `json:"description"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	TaxRatePercent decimal.Decimal `json:"taxRatePercent"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	Total          decimal.Decimal `json:"total"`
	Position       int             `json:"position"`
}

// WorkOrderListItem is the list projection of a work order; items are not loaded
type WorkOrderListItem struct {
	ID            uuid.UUID       `json:"id"`
	Number        string          `json:"number"`
	CustomerID    uuid.UUID       `json:"customerId"`
	LocationID    uuid.UUID       `json:"locationId"`
	AppointmentID *uuid.UUID      `json:"appointmentId,omitempty"`
	Status        string          `json:"status"`
	Description   string          `json:"description"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	CompletedAt   *time.Time      `json:"completedAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// WorkOrderResponse is the detail projection including items and money summary
type WorkOrderResponse struct {
	WorkOrderListItem
	Items      []ItemResponse  `json:"items"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	TaxAmount  decimal.Decimal `json:"taxAmount"`
	PaidAmount decimal.Decimal `json:"paidAmount"`
	Balance    decimal.Decimal `json:"balance"`
	Version    int             `json:"version"`
}

// ToWorkOrderListItem projects a work order for list responses
func ToWorkOrderListItem(w *workorder.WorkOrder) WorkOrderListItem {
	return WorkOrderListItem{
		ID:            w.ID,
		Number:        w.Number,
		CustomerID:    w.CustomerID,
		LocationID:    w.LocationID,
		AppointmentID: w.AppointmentID,
		Status:        string(w.Status),
		Description:   w.Description,
		TotalAmount:   w.Total(),
		CompletedAt:   w.CompletedAt,
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
	}
}

// ToWorkOrderResponse projects a fully loaded work order. paid is the settled
// payment total used for the balance.
func ToWorkOrderResponse(w *workorder.WorkOrder, paid decimal.Decimal) WorkOrderResponse {
	summary := w.Summary()
	items := make([]ItemResponse, 0, len(w.Items))
	for _, item := range w.Items {
		items = append(items, ItemResponse{
			ID:             item.ID,
			ServiceID:      item.ServiceID,
			Description:    item.Description,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			TaxRatePercent: item.TaxRatePercent,
			TaxAmount:      item.Tax(),
			Total:          item.Total(),
			Position:       item.Position,
		})
	}
	return WorkOrderResponse{
		WorkOrderListItem: ToWorkOrderListItem(w),
		Items:             items,
		Subtotal:          summary.Subtotal,
		TaxAmount:         summary.Tax,
		PaidAmount:        paid,
		Balance:           w.Balance(paid),
		Version:           w.Version,
	}
}

// =============================================================================
// Attachment DTOs
// =============================================================================

// InitiateUploadCommand requests a presigned URL for a new attachment
type InitiateUploadCommand struct {
	FileName    string `json:"fileName" binding:"required,max=255"`
	ContentType string `json:"contentType" binding:"required,max=100"`
	FileSize    int64  `json:"fileSize" binding:"required,min=1"`
}

// Validate checks the command fields
func (c InitiateUploadCommand) Validate() []shared.FieldError {
	var v shared.Validator
	v.Required(c.FileName, "fileName")
	v.MaxLength(c.FileName, 255, "fileName")
	v.Required(c.ContentType, "contentType")
	v.Check(c.ContentType == "" || IsAllowedContentType(c.ContentType), "contentType", "is not an allowed file type")
	v.Check(c.FileSize > 0 && c.FileSize <= workorder.MaxAttachmentFileSize, "fileSize", "must be between 1 byte and 50MB")
	return v.Errors()
}

// AttachmentListQuery pages the attachments of one work order
type AttachmentListQuery struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// AttachmentResponse is the public projection of an attachment
type AttachmentResponse struct {
	ID          uuid.UUID  `json:"id"`
	WorkOrderID uuid.UUID  `json:"workOrderId"`
	FileName    string     `json:"fileName"`
	ContentType string     `json:"contentType"`
	FileSize    int64      `json:"fileSize"`
	Status      string     `json:"status"`
	IsImage     bool       `json:"isImage"`
	DownloadURL string     `json:"downloadUrl,omitempty"`
	URLExpires  *time.Time `json:"urlExpiresAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// ToAttachmentResponse projects an attachment without URLs
func ToAttachmentResponse(a *workorder.Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:          a.ID,
		WorkOrderID: a.WorkOrderID,
		FileName:    a.FileName,
		ContentType: a.ContentType,
		FileSize:    a.FileSize,
		Status:      string(a.Status),
		IsImage:     a.IsImage(),
		CreatedAt:   a.CreatedAt,
	}
}

// InitiateUploadResponse carries the pending attachment and where to PUT the file
type InitiateUploadResponse struct {
	Attachment AttachmentResponse `json:"attachment"`
	UploadURL  string             `json:"uploadUrl"`
	ExpiresAt  time.Time          `json:"expiresAt"`
}
