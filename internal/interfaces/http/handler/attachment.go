package handler

import (
	"context"

	"github.com/fieldops/backend/internal/application/query"
	workorderapp "github.com/fieldops/backend/internal/application/workorder"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AttachmentUseCases is the attachment service as seen by the HTTP layer
type AttachmentUseCases interface {
	InitiateUpload(ctx context.Context, workOrderID uuid.UUID, cmd workorderapp.InitiateUploadCommand) (*workorderapp.InitiateUploadResponse, error)
	ConfirmUpload(ctx context.Context, workOrderID, attachmentID uuid.UUID) (*workorderapp.AttachmentResponse, error)
	GetByID(ctx context.Context, workOrderID, attachmentID uuid.UUID) (*workorderapp.AttachmentResponse, error)
	List(ctx context.Context, workOrderID uuid.UUID, q workorderapp.AttachmentListQuery) (query.Result[shared.Paginated[workorderapp.AttachmentResponse]], error)
	Delete(ctx context.Context, workOrderID, attachmentID uuid.UUID) error
}

// AttachmentHandler handles the attachments of a work order.
// Files go straight to object storage through presigned URLs.
type AttachmentHandler struct {
	BaseHandler
	service AttachmentUseCases
}

// NewAttachmentHandler creates an AttachmentHandler
func NewAttachmentHandler(service AttachmentUseCases) *AttachmentHandler {
	return &AttachmentHandler{service: service}
}

// InitiateUpload godoc
// @ID           initiateAttachmentUpload
// @Summary      Start an attachment upload
// @Description  Returns a pending attachment and a presigned PUT URL. Call confirm once the file is uploaded.
// @Tags         attachments
// @Accept       json
// @Produce      json
// @Param        id      path string true "Work order ID" format(uuid)
// @Param        request body workorder.InitiateUploadCommand true "File metadata"
// @Success      201 {object} APIResponse[workorder.InitiateUploadResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /work-orders/{id}/attachments [post]
func (h *AttachmentHandler) InitiateUpload(c *gin.Context) {
	workOrderID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var cmd workorderapp.InitiateUploadCommand
	if !h.bindJSON(c, &cmd) {
		return
	}
	resp, err := h.service.InitiateUpload(c.Request.Context(), workOrderID, cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ConfirmUpload godoc
// @ID           confirmAttachmentUpload
// @Summary      Confirm an uploaded attachment
// @Tags         attachments
// @Produce      json
// @Param        id           path string true "Work order ID" format(uuid)
// @Param        attachmentId path string true "Attachment ID" format(uuid)
// @Success      200 {object} APIResponse[workorder.AttachmentResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /work-orders/{id}/attachments/{attachmentId}/confirm [post]
func (h *AttachmentHandler) ConfirmUpload(c *gin.Context) {
	h.byIDs(c, h.service.ConfirmUpload)
}

// GetByID godoc
// @ID           getAttachmentById
// @Summary      Get an attachment with a download URL
// @Tags         attachments
// @Produce      json
// @Param        id           path string true "Work order ID" format(uuid)
// @Param        attachmentId path string true "Attachment ID" format(uuid)
// @Success      200 {object} APIResponse[workorder.AttachmentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /work-orders/{id}/attachments/{attachmentId} [get]
func (h *AttachmentHandler) GetByID(c *gin.Context) {
	h.byIDs(c, h.service.GetByID)
}

// List godoc
// @ID           listAttachments
// @Summary      List the attachments of a work order
// @Tags         attachments
// @Produce      json
// @Param        id        path  string true  "Work order ID" format(uuid)
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Success      200 {object} PagedResponse[workorder.AttachmentResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /work-orders/{id}/attachments [get]
func (h *AttachmentHandler) List(c *gin.Context) {
	workOrderID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var q workorderapp.AttachmentListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	result, err := h.service.List(c.Request.Context(), workOrderID, q)
	respondResult(&h.BaseHandler, c, result, err)
}

// Delete godoc
// @ID           deleteAttachment
// @Summary      Delete an attachment
// @Tags         attachments
// @Param        id           path string true "Work order ID" format(uuid)
// @Param        attachmentId path string true "Attachment ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /work-orders/{id}/attachments/{attachmentId} [delete]
func (h *AttachmentHandler) Delete(c *gin.Context) {
	workOrderID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	attachmentID, ok := h.pathID(c, "attachmentId")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), workOrderID, attachmentID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *AttachmentHandler) byIDs(c *gin.Context, op func(context.Context, uuid.UUID, uuid.UUID) (*workorderapp.AttachmentResponse, error)) {
	workOrderID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	attachmentID, ok := h.pathID(c, "attachmentId")
	if !ok {
		return
	}
	resp, err := op(c.Request.Context(), workOrderID, attachmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
