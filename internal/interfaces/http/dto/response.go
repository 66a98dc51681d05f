package dto

// Response is the envelope of every API response. success, data, message and
// errors are always present; code is added on failures only.
type Response struct {
	Success bool     `json:"success"`
	Data    any      `json:"data"`
	Message string   `json:"message"`
	Code    string   `json:"code,omitempty"`
	Errors  []string `json:"errors"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data any) Response {
	return Response{
		Success: true,
		Data:    data,
		Errors:  []string{},
	}
}

// NewErrorResponse creates a failed response with optional detail lines
func NewErrorResponse(code, message string, errs ...string) Response {
	if errs == nil {
		errs = []string{}
	}
	return Response{
		Success: false,
		Code:    code,
		Message: message,
		Errors:  errs,
	}
}

// NewValidationErrorResponse creates a failed response listing field errors
func NewValidationErrorResponse(errs []string) Response {
	return NewErrorResponse(ErrCodeValidation, "Request validation failed", errs...)
}

// IDRequest binds an :id path parameter
type IDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}
