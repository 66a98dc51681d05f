package handler

import (
	"context"
	"net/http"

	notificationapp "github.com/fieldops/backend/internal/application/notification"
	"github.com/fieldops/backend/internal/application/query"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NotificationUseCases is the notification service as seen by the HTTP layer
type NotificationUseCases interface {
	Create(ctx context.Context, cmd notificationapp.CreateNotificationCommand) (*notificationapp.NotificationResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*notificationapp.NotificationResponse, error)
	List(ctx context.Context, q notificationapp.NotificationListQuery) (query.Result[shared.Paginated[notificationapp.NotificationResponse]], error)
	MarkRead(ctx context.Context, id uuid.UUID) (*notificationapp.NotificationResponse, error)
	MarkAllRead(ctx context.Context, recipient string) (*notificationapp.MarkAllReadResponse, error)
	UnreadCount(ctx context.Context, recipient string) (*notificationapp.UnreadCountResponse, error)
}

// NotificationHandler handles notification endpoints
type NotificationHandler struct {
	BaseHandler
	service NotificationUseCases
}

// NewNotificationHandler creates a NotificationHandler
func NewNotificationHandler(service NotificationUseCases) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// Create godoc
// @ID           createNotification
// @Summary      Send a notification
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        request body notification.CreateNotificationCommand true "Notification"
// @Success      201 {object} APIResponse[notification.NotificationResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /notifications [post]
func (h *NotificationHandler) Create(c *gin.Context) {
	var cmd notificationapp.CreateNotificationCommand
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
// @ID           getNotificationById
// @Summary      Get a notification
// @Tags         notifications
// @Produce      json
// @Param        id path string true "Notification ID" format(uuid)
// @Success      200 {object} APIResponse[notification.NotificationResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /notifications/{id} [get]
func (h *NotificationHandler) GetByID(c *gin.Context) {
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
// @ID           listNotifications
// @Summary      List notifications
// @Tags         notifications
// @Produce      json
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        recipient query string false "Recipient filter"
// @Param        channel   query string false "in_app, email or sms"
// @Param        is_read   query bool   false "Read filter"
// @Success      200 {object} PagedResponse[notification.NotificationResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	var q notificationapp.NotificationListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	result, err := h.service.List(c.Request.Context(), q)
	respondResult(&h.BaseHandler, c, result, err)
}

// MarkRead godoc
// @ID           markNotificationRead
// @Summary      Mark a notification as read
// @Tags         notifications
// @Produce      json
// @Param        id path string true "Notification ID" format(uuid)
// @Success      200 {object} APIResponse[notification.NotificationResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.service.MarkRead(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// MarkAllRead godoc
// @ID           markAllNotificationsRead
// @Summary      Mark every notification of a recipient as read
// @Description  The recipient defaults to the caller
// @Tags         notifications
// @Produce      json
// @Param        recipient query string false "Recipient"
// @Success      200 {object} APIResponse[notification.MarkAllReadResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	who, ok := h.requireRecipient(c)
	if !ok {
		return
	}
	resp, err := h.service.MarkAllRead(c.Request.Context(), who)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UnreadCount godoc
// @ID           countUnreadNotifications
// @Summary      Count unread notifications of a recipient
// @Description  The recipient defaults to the caller
// @Tags         notifications
// @Produce      json
// @Param        recipient query string false "Recipient"
// @Success      200 {object} APIResponse[notification.UnreadCountResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	who, ok := h.requireRecipient(c)
	if !ok {
		return
	}
	resp, err := h.service.UnreadCount(c.Request.Context(), who)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *NotificationHandler) requireRecipient(c *gin.Context) (string, bool) {
	who := recipient(c)
	if who == "" {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "recipient is required")
		return "", false
	}
	return who, true
}
