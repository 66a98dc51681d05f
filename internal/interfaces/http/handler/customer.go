package handler

import (
	"context"

	customerapp "github.com/fieldops/backend/internal/application/customer"
	"github.com/fieldops/backend/internal/application/query"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CustomerUseCases is the customer service as seen by the HTTP layer
type CustomerUseCases interface {
	Create(ctx context.Context, cmd customerapp.CreateCustomerCommand) (*customerapp.CustomerResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*customerapp.CustomerResponse, error)
	List(ctx context.Context, q customerapp.CustomerListQuery) (query.Result[shared.Paginated[customerapp.CustomerResponse]], error)
	Update(ctx context.Context, id uuid.UUID, cmd customerapp.UpdateCustomerCommand) (*customerapp.CustomerResponse, error)
	Activate(ctx context.Context, id uuid.UUID) (*customerapp.CustomerResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*customerapp.CustomerResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CustomerHandler handles customer endpoints
type CustomerHandler struct {
	BaseHandler
	service CustomerUseCases
}

// NewCustomerHandler creates a CustomerHandler
func NewCustomerHandler(service CustomerUseCases) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// Create godoc
// @ID           createCustomer
// @Summary      Create a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        request body customer.CreateCustomerCommand true "Customer"
// @Success      201 {object} APIResponse[customer.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var cmd customerapp.CreateCustomerCommand
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
// @ID           getCustomerById
// @Summary      Get a customer
// @Tags         customers
// @Produce      json
// @Param        id path string true "Customer ID" format(uuid)
// @Success      200 {object} APIResponse[customer.CustomerResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customers/{id} [get]
func (h *CustomerHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
// @ID           listCustomers
// @Summary      List customers
// @Description  Paged list. Sort keys: name, created_at, updated_at
// @Tags         customers
// @Produce      json
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        order_by  query string false "Sort key"
// @Param        order_dir query string false "asc or desc"
// @Param        search    query string false "Matches name, email or phone"
// @Param        is_active query bool   false "Active filter"
// @Success      200 {object} PagedResponse[customer.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	var q customerapp.CustomerListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	result, err := h.service.List(c.Request.Context(), q)
	respondResult(&h.BaseHandler, c, result, err)
}

// Update godoc
// @ID           updateCustomer
// @Summary      Update a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id      path string true "Customer ID" format(uuid)
// @Param        request body customer.UpdateCustomerCommand true "Customer"
// @Success      200 {object} APIResponse[customer.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var cmd customerapp.UpdateCustomerCommand
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

// Activate godoc
// @ID           activateCustomer
// @Summary      Activate a customer
// @Tags         customers
// @Produce      json
// @Param        id path string true "Customer ID" format(uuid)
// @Success      200 {object} APIResponse[customer.CustomerResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customers/{id}/activate [post]
func (h *CustomerHandler) Activate(c *gin.Context) {
	h.transition(c, h.service.Activate)
}

// Deactivate godoc
// @ID           deactivateCustomer
// @Summary      Deactivate a customer
// @Tags         customers
// @Produce      json
// @Param        id path string true "Customer ID" format(uuid)
// @Success      200 {object} APIResponse[customer.CustomerResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customers/{id}/deactivate [post]
func (h *CustomerHandler) Deactivate(c *gin.Context) {
	h.transition(c, h.service.Deactivate)
}

func (h *CustomerHandler) transition(c *gin.Context, op func(context.Context, uuid.UUID) (*customerapp.CustomerResponse, error)) {
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

// Delete godoc
// @ID           deleteCustomer
// @Summary      Delete a customer
// @Description  Soft delete; the record stays in storage with isDeleted set
// @Tags         customers
// @Param        id path string true "Customer ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
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
