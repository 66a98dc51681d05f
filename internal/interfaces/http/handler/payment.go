package handler

import (
	"context"
	"net/http"
	"strings"

	billingapp "github.com/fieldops/backend/internal/application/billing"
	"github.com/fieldops/backend/internal/application/query"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IdempotencyKeyHeader carries the client's retry key for payment writes
const IdempotencyKeyHeader = "Idempotency-Key"

const maxIdempotencyKeyLength = 128

// PaymentUseCases is the payment service as seen by the HTTP layer
type PaymentUseCases interface {
	Record(ctx context.Context, cmd billingapp.RecordPaymentCommand, idempotencyKey string) (*billingapp.PaymentResult, error)
	Refund(ctx context.Context, id uuid.UUID, cmd billingapp.RefundPaymentCommand) (*billingapp.PaymentResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*billingapp.PaymentResponse, error)
	List(ctx context.Context, q billingapp.PaymentListQuery) (query.Result[shared.Paginated[billingapp.PaymentResponse]], error)
}

// PaymentHandler handles payment endpoints
type PaymentHandler struct {
	BaseHandler
	service    PaymentUseCases
	requireKey bool
}

// NewPaymentHandler creates a PaymentHandler
func NewPaymentHandler(service PaymentUseCases) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// RequireIdempotencyKey makes Record reject requests without Idempotency-Key
func (h *PaymentHandler) RequireIdempotencyKey(required bool) *PaymentHandler {
	h.requireKey = required
	return h
}

// Record godoc
// @ID           recordPayment
// @Summary      Record a payment against a completed work order
// @Description  With an Idempotency-Key header a retried request returns the first result with status 200.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Client retry key"
// @Param        request body billing.RecordPaymentCommand true "Payment"
// @Success      201 {object} APIResponse[billing.PaymentResult]
// @Success      200 {object} APIResponse[billing.PaymentResult] "Replayed"
// @Failure      400 {object} ErrorResponse "Invalid body, or missing key when keys are required"
// @Failure      409 {object} ErrorResponse "Same key still in progress"
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments [post]
func (h *PaymentHandler) Record(c *gin.Context) {
	key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
	if key == "" && h.requireKey {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "Idempotency-Key header is required")
		return
	}
	if len(key) > maxIdempotencyKeyLength {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "Idempotency-Key is too long")
		return
	}
	var cmd billingapp.RecordPaymentCommand
	if !h.bindJSON(c, &cmd) {
		return
	}
	result, err := h.service.Record(c.Request.Context(), cmd, key)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if result.Replayed {
		c.Header("Idempotent-Replayed", "true")
		h.Success(c, result)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(result))
}

// Refund godoc
// @ID           refundPayment
// @Summary      Refund a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id      path string true "Payment ID" format(uuid)
// @Param        request body billing.RefundPaymentCommand false "Reason"
// @Success      200 {object} APIResponse[billing.PaymentResult]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/{id}/refund [post]
func (h *PaymentHandler) Refund(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var cmd billingapp.RefundPaymentCommand
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &cmd) {
		return
	}
	result, err := h.service.Refund(c.Request.Context(), id, cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GetByID godoc
// @ID           getPaymentById
// @Summary      Get a payment
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Success      200 {object} APIResponse[billing.PaymentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/{id} [get]
func (h *PaymentHandler) GetByID(c *gin.Context) {
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
// @ID           listPayments
// @Summary      List payments
// @Description  Paged list. Sort keys: paid_at, amount, created_at
// @Tags         payments
// @Produce      json
// @Param        page          query int    false "Page number" default(1)
// @Param        page_size     query int    false "Page size" default(20)
// @Param        order_by      query string false "Sort key"
// @Param        order_dir     query string false "asc or desc"
// @Param        work_order_id query string false "Work order filter" format(uuid)
// @Param        method        query string false "cash, card, bank_transfer or check"
// @Param        status        query string false "completed or refunded"
// @Success      200 {object} PagedResponse[billing.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	var q billingapp.PaymentListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	result, err := h.service.List(c.Request.Context(), q)
	respondResult(&h.BaseHandler, c, result, err)
}
