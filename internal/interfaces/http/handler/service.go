package handler

import (
	"context"

	catalogapp "github.com/fieldops/backend/internal/application/catalog"
	"github.com/fieldops/backend/internal/application/query"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ServiceUseCases is the service catalog as seen by the HTTP layer
type ServiceUseCases interface {
	Create(ctx context.Context, cmd catalogapp.CreateServiceCommand) (*catalogapp.ServiceResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*catalogapp.ServiceResponse, error)
	List(ctx context.Context, q catalogapp.ServiceListQuery) (query.Result[shared.Paginated[catalogapp.ServiceResponse]], error)
	Update(ctx context.Context, id uuid.UUID, cmd catalogapp.UpdateServiceCommand) (*catalogapp.ServiceResponse, error)
	Activate(ctx context.Context, id uuid.UUID) (*catalogapp.ServiceResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*catalogapp.ServiceResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ServiceHandler handles service catalog endpoints
type ServiceHandler struct {
	BaseHandler
	service ServiceUseCases
}

// NewServiceHandler creates a ServiceHandler
func NewServiceHandler(service ServiceUseCases) *ServiceHandler {
	return &ServiceHandler{service: service}
}

// Create godoc
// @ID           createService
// @Summary      Add a service to the catalog
// @Tags         services
// @Accept       json
// @Produce      json
// @Param        request body catalog.CreateServiceCommand true "Service"
// @Success      201 {object} APIResponse[catalog.ServiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /services [post]
func (h *ServiceHandler) Create(c *gin.Context) {
	var cmd catalogapp.CreateServiceCommand
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
// @ID           getServiceById
// @Summary      Get a catalog service
// @Tags         services
// @Produce      json
// @Param        id path string true "Service ID" format(uuid)
// @Success      200 {object} APIResponse[catalog.ServiceResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /services/{id} [get]
func (h *ServiceHandler) GetByID(c *gin.Context) {
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
// @ID           listServices
// @Summary      List catalog services
// @Description  Paged list. Sort keys: name, code, unit_price, created_at
// @Tags         services
// @Produce      json
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        order_by  query string false "Sort key"
// @Param        order_dir query string false "asc or desc"
// @Param        search    query string false "Matches code or name"
// @Param        is_active query bool   false "Active filter"
// @Success      200 {object} PagedResponse[catalog.ServiceResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /services [get]
func (h *ServiceHandler) List(c *gin.Context) {
	var q catalogapp.ServiceListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	result, err := h.service.List(c.Request.Context(), q)
	respondResult(&h.BaseHandler, c, result, err)
}

// Update godoc
// @ID           updateService
// @Summary      Update a catalog service
// @Tags         services
// @Accept       json
// @Produce      json
// @Param        id      path string true "Service ID" format(uuid)
// @Param        request body catalog.UpdateServiceCommand true "Service"
// @Success      200 {object} APIResponse[catalog.ServiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /services/{id} [put]
func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var cmd catalogapp.UpdateServiceCommand
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
// @ID           activateService
// @Summary      Activate a catalog service
// @Tags         services
// @Produce      json
// @Param        id path string true "Service ID" format(uuid)
// @Success      200 {object} APIResponse[catalog.ServiceResponse]
// @Security     BearerAuth
// @Router       /services/{id}/activate [post]
func (h *ServiceHandler) Activate(c *gin.Context) {
	h.transition(c, h.service.Activate)
}

// Deactivate godoc
// @ID           deactivateService
// @Summary      Deactivate a catalog service
// @Description  Inactive services cannot be booked
// @Tags         services
// @Produce      json
// @Param        id path string true "Service ID" format(uuid)
// @Success      200 {object} APIResponse[catalog.ServiceResponse]
// @Security     BearerAuth
// @Router       /services/{id}/deactivate [post]
func (h *ServiceHandler) Deactivate(c *gin.Context) {
	h.transition(c, h.service.Deactivate)
}

func (h *ServiceHandler) transition(c *gin.Context, op func(context.Context, uuid.UUID) (*catalogapp.ServiceResponse, error)) {
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
// @ID           deleteService
// @Summary      Delete a catalog service
// @Tags         services
// @Param        id path string true "Service ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /services/{id} [delete]
func (h *ServiceHandler) Delete(c *gin.Context) {
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
