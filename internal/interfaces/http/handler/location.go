package handler

import (
	"context"

	customerapp "github.com/fieldops/backend/internal/application/customer"
	"github.com/fieldops/backend/internal/application/query"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LocationUseCases is the location service as seen by the HTTP layer
type LocationUseCases interface {
	Create(ctx context.Context, cmd customerapp.CreateLocationCommand) (*customerapp.LocationResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*customerapp.LocationResponse, error)
	List(ctx context.Context, q customerapp.LocationListQuery) (query.Result[shared.Paginated[customerapp.LocationResponse]], error)
	Update(ctx context.Context, id uuid.UUID, cmd customerapp.UpdateLocationCommand) (*customerapp.LocationResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// LocationHandler handles service-location endpoints
type LocationHandler struct {
	BaseHandler
	service LocationUseCases
}

// NewLocationHandler creates a LocationHandler
func NewLocationHandler(service LocationUseCases) *LocationHandler {
	return &LocationHandler{service: service}
}

// Create godoc
// @ID           createLocation
// @Summary      Create a service location for a customer
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        request body customer.CreateLocationCommand true "Location"
// @Success      201 {object} APIResponse[customer.LocationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /locations [post]
func (h *LocationHandler) Create(c *gin.Context) {
	var cmd customerapp.CreateLocationCommand
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
// @ID           getLocationById
// @Summary      Get a location
// @Tags         locations
// @Produce      json
// @Param        id path string true "Location ID" format(uuid)
// @Success      200 {object} APIResponse[customer.LocationResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /locations/{id} [get]
func (h *LocationHandler) GetByID(c *gin.Context) {
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
// @ID           listLocations
// @Summary      List locations
// @Description  Paged list. Sort keys: name, city, created_at
// @Tags         locations
// @Produce      json
// @Param        page        query int    false "Page number" default(1)
// @Param        page_size   query int    false "Page size" default(20)
// @Param        order_by    query string false "Sort key"
// @Param        order_dir   query string false "asc or desc"
// @Param        customer_id query string false "Customer filter" format(uuid)
// @Param        city        query string false "City filter"
// @Param        is_active   query bool   false "Active filter"
// @Param        is_primary  query bool   false "Primary filter"
// @Success      200 {object} PagedResponse[customer.LocationResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /locations [get]
func (h *LocationHandler) List(c *gin.Context) {
	var q customerapp.LocationListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	result, err := h.service.List(c.Request.Context(), q)
	respondResult(&h.BaseHandler, c, result, err)
}

// Update godoc
// @ID           updateLocation
// @Summary      Update a location
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        id      path string true "Location ID" format(uuid)
// @Param        request body customer.UpdateLocationCommand true "Location"
// @Success      200 {object} APIResponse[customer.LocationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /locations/{id} [put]
func (h *LocationHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var cmd customerapp.UpdateLocationCommand
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

// Delete godoc
// @ID           deleteLocation
// @Summary      Delete a location
// @Tags         locations
// @Param        id path string true "Location ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /locations/{id} [delete]
func (h *LocationHandler) Delete(c *gin.Context) {
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
