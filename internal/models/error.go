package models

import (
	"errors"
	"fmt"
)

// Domain errors returned by constructors and services. Callers match them with errors.Is.
var (
	ErrValidation          = errors.New("validation error")
	ErrUniquenessViolation = errors.New("uniqueness violation")
	ErrReference           = errors.New("reference error")
	ErrNotFound            = errors.New("record not found")
)

// FieldError describes a rejected field value. It matches ErrValidation.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}

// APIError represents a standardized error response for the API
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error code constants
const (
	// General errors
	ErrBadRequest       = "BAD_REQUEST"
	ErrUnauthorized     = "UNAUTHORIZED"
	ErrForbidden        = "FORBIDDEN"
	ErrConflict         = "CONFLICT"
	ErrInternalServer   = "INTERNAL_SERVER_ERROR"
	ErrValidationFailed = "VALIDATION_FAILED"
	ErrReferenceInvalid = "REFERENCE_ERROR"

	// Resource-specific errors
	ErrPizzaNotFound           = "PIZZA_NOT_FOUND"
	ErrRestaurantNotFound      = "RESTAURANT_NOT_FOUND"
	ErrRestaurantPizzaNotFound = "RESTAURANT_PIZZA_NOT_FOUND"

	// OAuth/Auth errors (maintain RFC 6749 compatibility)
	ErrInvalidRequest = "invalid_request"
	ErrInvalidClient  = "invalid_client"
	ErrInvalidToken   = "invalid_token"
)

// NewAPIError creates a new API error with the given code and message
func NewAPIError(code, message string, details ...map[string]interface{}) APIError {
	err := APIError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

// OAuth2Error represents an OAuth2 error response (RFC 6749)
type OAuth2Error struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
	ErrorURI         string `json:"error_uri,omitempty"`
}

// NewOAuth2Error creates a new OAuth2 error response
func NewOAuth2Error(error, description string) OAuth2Error {
	return OAuth2Error{
		Error:            error,
		ErrorDescription: description,
	}
}
