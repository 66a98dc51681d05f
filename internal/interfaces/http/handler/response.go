package handler

import "github.com/fieldops/backend/internal/domain/shared"

// APIResponse documents the success envelope with a typed data field
// @Description Standard API response wrapper
type APIResponse[T any] struct {
	Success bool     `json:"success" example:"true"`
	Data    T        `json:"data"`
	Message string   `json:"message" example:""`
	Errors  []string `json:"errors"`
}

// PagedResponse documents the envelope of list endpoints
// @Description Paged list response
type PagedResponse[T any] struct {
	Success bool                `json:"success" example:"true"`
	Data    shared.Paginated[T] `json:"data"`
	Message string              `json:"message" example:""`
	Errors  []string            `json:"errors"`
}

// ErrorResponse documents the failed envelope
// @Description Standard error response
type ErrorResponse struct {
	Success bool     `json:"success" example:"false"`
	Data    any      `json:"data"`
	Message string   `json:"message" example:"Customer not found"`
	Code    string   `json:"code,omitempty" example:"ERR_NOT_FOUND"`
	Errors  []string `json:"errors"`
}
