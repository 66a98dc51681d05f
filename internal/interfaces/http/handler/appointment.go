package handler

import (
	"context"

	"github.com/fieldops/backend/internal/application/query"
	schedulingapp "github.com/fieldops/backend/internal/application/scheduling"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AppointmentUseCases is the scheduling service as seen by the HTTP layer
type AppointmentUseCases interface {
	Schedule(ctx context.Context, cmd schedulingapp.ScheduleAppointmentCommand) (*schedulingapp.AppointmentResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*schedulingapp.AppointmentResponse, error)
	List(ctx context.Context, q schedulingapp.AppointmentListQuery) (query.Result[shared.Paginated[schedulingapp.AppointmentResponse]], error)
	Update(ctx context.Context, id uuid.UUID, cmd schedulingapp.UpdateAppointmentCommand) (*schedulingapp.AppointmentResponse, error)
	Reschedule(ctx context.Context, id uuid.UUID, cmd schedulingapp.RescheduleAppointmentCommand) (*schedulingapp.AppointmentResponse, error)
	Confirm(ctx context.Context, id uuid.UUID) (*schedulingapp.AppointmentResponse, error)
	Start(ctx context.Context, id uuid.UUID) (*schedulingapp.AppointmentResponse, error)
	Complete(ctx context.Context, id uuid.UUID) (*schedulingapp.AppointmentResponse, error)
	Cancel(ctx context.Context, id uuid.UUID, cmd schedulingapp.CancelAppointmentCommand) (*schedulingapp.AppointmentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AppointmentHandler handles appointment endpoints
type AppointmentHandler struct {
	BaseHandler
	service AppointmentUseCases
}

// NewAppointmentHandler creates an AppointmentHandler
func NewAppointmentHandler(service AppointmentUseCases) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

// Schedule godoc
// @ID           scheduleAppointment
// @Summary      Book an appointment
// @Description  The location must belong to the customer and the service must be active
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        request body scheduling.ScheduleAppointmentCommand true "Booking"
// @Success      201 {object} APIResponse[scheduling.AppointmentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /appointments [post]
func (h *AppointmentHandler) Schedule(c *gin.Context) {
	var cmd schedulingapp.ScheduleAppointmentCommand
	if !h.bindJSON(c, &cmd) {
		return
	}
	resp, err := h.service.Schedule(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetByID godoc
// @ID           getAppointmentById
// @Summary      Get an appointment
// @Tags         appointments
// @Produce      json
// @Param        id path string true "Appointment ID" format(uuid)
// @Success      200 {object} APIResponse[scheduling.AppointmentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /appointments/{id} [get]
func (h *AppointmentHandler) GetByID(c *gin.Context) {
	h.byID(c, h.service.GetByID)
}

// List godoc
// @ID           listAppointments
// @Summary      List appointments
// @Description  Paged list. Sort keys: scheduled_start, created_at, status
// @Tags         appointments
// @Produce      json
// @Param        page        query int    false "Page number" default(1)
// @Param        page_size   query int    false "Page size" default(20)
// @Param        order_by    query string false "Sort key"
// @Param        order_dir   query string false "asc or desc"
// @Param        customer_id query string false "Customer filter" format(uuid)
// @Param        location_id query string false "Location filter" format(uuid)
// @Param        status      query string false "Status filter"
// @Param        from        query string false "Starts at or after (RFC 3339)"
// @Param        to          query string false "Starts before (RFC 3339)"
// @Success      200 {object} PagedResponse[scheduling.AppointmentResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /appointments [get]
func (h *AppointmentHandler) List(c *gin.Context) {
	var q schedulingapp.AppointmentListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	result, err := h.service.List(c.Request.Context(), q)
	respondResult(&h.BaseHandler, c, result, err)
}

// Update godoc
// @ID           updateAppointment
// @Summary      Update technician and notes
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        id      path string true "Appointment ID" format(uuid)
// @Param        request body scheduling.UpdateAppointmentCommand true "Changes"
// @Success      200 {object} APIResponse[scheduling.AppointmentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /appointments/{id} [put]
func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var cmd schedulingapp.UpdateAppointmentCommand
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

// Reschedule godoc
// @ID           rescheduleAppointment
// @Summary      Move an appointment to a new window
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        id      path string true "Appointment ID" format(uuid)
// @Param        request body scheduling.RescheduleAppointmentCommand true "New window"
// @Success      200 {object} APIResponse[scheduling.AppointmentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /appointments/{id}/reschedule [post]
func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var cmd schedulingapp.RescheduleAppointmentCommand
	if !h.bindJSON(c, &cmd) {
		return
	}
	resp, err := h.service.Reschedule(c.Request.Context(), id, cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Confirm godoc
// @ID           confirmAppointment
// @Summary      Confirm a scheduled appointment
// @Tags         appointments
// @Produce      json
// @Param        id path string true "Appointment ID" format(uuid)
// @Success      200 {object} APIResponse[scheduling.AppointmentResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /appointments/{id}/confirm [post]
func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.byID(c, h.service.Confirm)
}

// Start godoc
// @ID           startAppointment
// @Summary      Mark the technician on site
// @Tags         appointments
// @Produce      json
// @Param        id path string true "Appointment ID" format(uuid)
// @Success      200 {object} APIResponse[scheduling.AppointmentResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /appointments/{id}/start [post]
func (h *AppointmentHandler) Start(c *gin.Context) {
	h.byID(c, h.service.Start)
}

// Complete godoc
// @ID           completeAppointment
// @Summary      Complete an appointment
// @Tags         appointments
// @Produce      json
// @Param        id path string true "Appointment ID" format(uuid)
// @Success      200 {object} APIResponse[scheduling.AppointmentResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /appointments/{id}/complete [post]
func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.byID(c, h.service.Complete)
}

// Cancel godoc
// @ID           cancelAppointment
// @Summary      Cancel an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        id      path string true "Appointment ID" format(uuid)
// @Param        request body scheduling.CancelAppointmentCommand false "Reason"
// @Success      200 {object} APIResponse[scheduling.AppointmentResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /appointments/{id}/cancel [post]
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var cmd schedulingapp.CancelAppointmentCommand
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &cmd) {
		return
	}
	resp, err := h.service.Cancel(c.Request.Context(), id, cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete godoc
// @ID           deleteAppointment
// @Summary      Delete an appointment
// @Tags         appointments
// @Param        id path string true "Appointment ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /appointments/{id} [delete]
func (h *AppointmentHandler) Delete(c *gin.Context) {
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

func (h *AppointmentHandler) byID(c *gin.Context, op func(context.Context, uuid.UUID) (*schedulingapp.AppointmentResponse, error)) {
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
