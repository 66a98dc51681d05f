package handler

import (
	"errors"
	"net/http"

	"github.com/fieldops/backend/internal/application/query"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/infrastructure/logger"
	"github.com/fieldops/backend/internal/interfaces/http/dto"
	"github.com/fieldops/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends a failed envelope with an explicit status
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponse(code, message))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// HandleError converts a use-case error into a response.
// Field errors become 400, domain errors use their mapped status and
// anything else is logged and answered with a generic 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var validationErrs shared.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(validationErrs.Messages()))
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponse(code, domainErr.Message))
		return
	}

	logger.L(c.Request.Context()).Error("Unhandled request error",
		zap.String("method", c.Request.Method),
		zap.String("route", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponse(dto.ErrCodeInternal, "An unexpected error occurred"))
}

// respondResult writes a soft-failing use-case result. A failed result is a
// client problem: 400 with the result's message and detail lines.
func respondResult[T any](h *BaseHandler, c *gin.Context, result query.Result[T], err error) {
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !result.Success {
		code := dto.ErrCodeBadRequest
		if result.Message == query.TenantContextNotFound {
			code = dto.ErrCodeTenantMissing
		}
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(code, result.Message, result.Errors...))
		return
	}
	h.Success(c, result.Data)
}

// pathID parses a UUID path parameter, answering 400 when it is malformed
func (h *BaseHandler) pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON binds the request body, answering 400 on failure
func (h *BaseHandler) bindJSON(c *gin.Context, target any) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// bindQuery binds the query string, answering 400 on failure
func (h *BaseHandler) bindQuery(c *gin.Context, target any) bool {
	if err := c.ShouldBindQuery(target); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// recipient names the inbox of notification endpoints: the recipient query
// parameter, else the token's username, else its subject.
func recipient(c *gin.Context) string {
	if r := c.Query("recipient"); r != "" {
		return r
	}
	if name := middleware.GetJWTUsername(c); name != "" {
		return name
	}
	return middleware.GetJWTUserID(c)
}
