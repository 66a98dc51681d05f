package handler

import (
	"context"

	"github.com/fieldops/backend/internal/application/query"
	workorderapp "github.com/fieldops/backend/internal/application/workorder"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WorkOrderUseCases is the work-order service as seen by the HTTP layer
type WorkOrderUseCases interface {
	Create(ctx context.Context, cmd workorderapp.CreateWorkOrderCommand) (*workorderapp.WorkOrderResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*workorderapp.WorkOrderResponse, error)
	List(ctx context.Context, q workorderapp.WorkOrderListQuery) (query.Result[shared.Paginated[workorderapp.WorkOrderListItem]], error)
	Update(ctx context.Context, id uuid.UUID, cmd workorderapp.UpdateWorkOrderCommand) (*workorderapp.WorkOrderResponse, error)
	AddItem(ctx context.Context, id uuid.UUID, cmd workorderapp.AddItemCommand) (*workorderapp.WorkOrderResponse, error)
	RemoveItem(ctx context.Context, id, itemID uuid.UUID) (*workorderapp.WorkOrderResponse, error)
	Start(ctx context.Context, id uuid.UUID) (*workorderapp.WorkOrderResponse, error)
	Complete(ctx context.Context, id uuid.UUID) (*workorderapp.WorkOrderResponse, error)
	Cancel(ctx context.Context, id uuid.UUID) (*workorderapp.WorkOrderResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// WorkOrderHandler handles work-order endpoints
type WorkOrderHandler struct {
	BaseHandler
	service WorkOrderUseCases
}

// NewWorkOrderHandler creates a WorkOrderHandler
func NewWorkOrderHandler(service WorkOrderUseCases) *WorkOrderHandler {
	return &WorkOrderHandler{service: service}
}

// Create godoc
// @ID           createWorkOrder
// @Summary      Open a work order
// @Description  Items are priced from the catalog unless a unit price is given. Totals are computed server side.
// @Tags         work-orders
// @Accept       json
// @Produce      json
// @Param        request body workorder.CreateWorkOrderCommand true "Work order"
// @Success      201 {object} APIResponse[workorder.WorkOrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /work-orders [post]
func (h *WorkOrderHandler) Create(c *gin.Context) {
	var cmd workorderapp.CreateWorkOrderCommand
	if !h.bindJSON(c, &cmd) {
		return
	}
	resp, err := h.service.Create(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetByID godoc
// @ID           getWorkOrderById
// @Summary      Get a work order with its items and totals
// @Tags         work-orders
// @Produce      json
// @Param        id path string true "Work order ID" format(uuid)
// @Success      200 {object} APIResponse[workorder.WorkOrderResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /work-orders/{id} [get]
func (h *WorkOrderHandler) GetByID(c *gin.Context) {
	h.byID(c, h.service.GetByID)
}

// List godoc
// @ID           listWorkOrders
// @Summary      List work orders
// @Description  Paged list. Sort keys: number, created_at, status, total
// @Tags         work-orders
// @Produce      json
// @Param        page           query int    false "Page number" default(1)
// @Param        page_size      query int    false "Page size" default(20)
// @Param        order_by       query string false "Sort key"
// @Param        order_dir      query string false "asc or desc"
// @Param        search         query string false "Matches number or summary"
// @Param        customer_id    query string false "Customer filter" format(uuid)
// @Param        location_id    query string false "Location filter" format(uuid)
// @Param        appointment_id query string false "Appointment filter" format(uuid)
// @Param        status         query string false "Status filter"
// @Success      200 {object} PagedResponse[workorder.WorkOrderListItem]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /work-orders [get]
func (h *WorkOrderHandler) List(c *gin.Context) {
	var q workorderapp.WorkOrderListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	result, err := h.service.List(c.Request.Context(), q)
	respondResult(&h.BaseHandler, c, result, err)
}

// Update godoc
// @ID           updateWorkOrder
// @Summary      Update work-order header fields
// @Tags         work-orders
// @Accept       json
// @Produce      json
// @Param        id      path string true "Work order ID" format(uuid)
// @Param        request body workorder.UpdateWorkOrderCommand true "Changes"
// @Success      200 {object} APIResponse[workorder.WorkOrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /work-orders/{id} [put]
func (h *WorkOrderHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var cmd workorderapp.UpdateWorkOrderCommand
	if !h.bindJSON(c, &cmd) {
		return
	}
	resp, err := h.service.Update(c.Request.Context(), id, cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddItem godoc
// @ID           addWorkOrderItem
// @Summary      Add a line to an open work order
// @Tags         work-orders
// @Accept       json
// @Produce      json
// @Param        id      path string true "Work order ID" format(uuid)
// @Param        request body workorder.AddItemCommand true "Line"
// @Success      201 {object} APIResponse[workorder.WorkOrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /work-orders/{id}/items [post]
func (h *WorkOrderHandler) AddItem(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var cmd workorderapp.AddItemCommand
	if !h.bindJSON(c, &cmd) {
		return
	}
	resp, err := h.service.AddItem(c.Request.Context(), id, cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// RemoveItem godoc
// @ID           removeWorkOrderItem
// @Summary      Remove a line from an open work order
// @Tags         work-orders
// @Produce      json
// @Param        id     path string true "Work order ID" format(uuid)
// @Param        itemId path string true "Item ID" format(uuid)
// @Success      200 {object} APIResponse[workorder.WorkOrderResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /work-orders/{id}/items/{itemId} [delete]
func (h *WorkOrderHandler) RemoveItem(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.pathID(c, "itemId")
	if !ok {
		return
	}
	resp, err := h.service.RemoveItem(c.Request.Context(), id, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Start godoc
// @ID           startWorkOrder
// @Summary      Start work
// @Tags         work-orders
// @Produce      json
// @Param        id path string true "Work order ID" format(uuid)
// @Success      200 {object} APIResponse[workorder.WorkOrderResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /work-orders/{id}/start [post]
func (h *WorkOrderHandler) Start(c *gin.Context) {
	h.byID(c, h.service.Start)
}

// Complete godoc
// @ID           completeWorkOrder
// @Summary      Complete a work order
// @Description  Requires at least one item. Totals are frozen afterwards.
// @Tags         work-orders
// @Produce      json
// @Param        id path string true "Work order ID" format(uuid)
// @Success      200 {object} APIResponse[workorder.WorkOrderResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /work-orders/{id}/complete [post]
func (h *WorkOrderHandler) Complete(c *gin.Context) {
	h.byID(c, h.service.Complete)
}

// Cancel godoc
// @ID           cancelWorkOrder
// @Summary      Cancel a work order
// @Tags         work-orders
// @Produce      json
// @Param        id path string true "Work order ID" format(uuid)
// @Success      200 {object} APIResponse[workorder.WorkOrderResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /work-orders/{id}/cancel [post]
func (h *WorkOrderHandler) Cancel(c *gin.Context) {
	h.byID(c, h.service.Cancel)
}

// Delete godoc
// @ID           deleteWorkOrder
// @Summary      Delete a work order
// @Description  Completed work orders cannot be deleted
// @Tags         work-orders
// @Param        id path string true "Work order ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /work-orders/{id} [delete]
func (h *WorkOrderHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *WorkOrderHandler) byID(c *gin.Context, op func(context.Context, uuid.UUID) (*workorderapp.WorkOrderResponse, error)) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	resp, err := op(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
