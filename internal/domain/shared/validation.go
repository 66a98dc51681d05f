package shared

import (
	"fmt"
	"strings"
)

// FieldError is a single field-level validation message
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// String renders the error as "field: message"
func (f FieldError) String() string {
	if f.Field == "" {
		return f.Message
	}
	return fmt.Sprintf("%s: %s", f.Field, f.Message)
}

// ValidationErrors aggregates field errors produced by a command's Validate method
type ValidationErrors []FieldError

// Error implements the error interface
func (v ValidationErrors) Error() string {
	return strings.Join(v.Messages(), "; ")
}

// Messages returns the errors rendered as strings
func (v ValidationErrors) Messages() []string {
	out := make([]string, 0, len(v))
	for _, fe := range v {
		out = append(out, fe.String())
	}
	return out
}

// Validator collects field errors in order of discovery
type Validator struct {
	errs ValidationErrors
}

// Check appends message for field when ok is false
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.errs = append(v.errs, FieldError{Field: field, Message: message})
	}
}

// Required checks that a trimmed string value is non-empty
func (v *Validator) Required(value, field string) {
	v.Check(strings.TrimSpace(value) != "", field, "is required")
}

// MaxLength checks that a string value does not exceed n characters
func (v *Validator) MaxLength(value string, n int, field string) {
	v.Check(len([]rune(value)) <= n, field, fmt.Sprintf("must be at most %d characters", n))
}

// Errors returns the collected errors, nil if none
func (v *Validator) Errors() []FieldError {
	if len(v.errs) == 0 {
		return nil
	}
	return v.errs
}

// AsValidationError returns errs as a ValidationErrors error, or nil when empty
func AsValidationError(errs []FieldError) error {
	if len(errs) == 0 {
		return nil
	}
	return ValidationErrors(errs)
}
