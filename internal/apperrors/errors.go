package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ValidationError collects every violated rule so the caller can fix all
// problems in one round-trip. Reference checks never stop at the first
// failure.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return "validation failed"
	}
	return strings.Join(e.Details, "; ")
}

func NewValidation(details ...string) *ValidationError {
	return &ValidationError{Details: details}
}

// AuthenticationError means the request carries no valid identity.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	if e.Message == "" {
		return "authentication required"
	}
	return e.Message
}

func NewAuthentication(message string) *AuthenticationError {
	return &AuthenticationError{Message: message}
}

// AuthorizationError means the identity is valid but lacks tenant or role
// permission for the target aggregate.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	if e.Message == "" {
		return "access denied"
	}
	return e.Message
}

func NewAuthorization(message string) *AuthorizationError {
	return &AuthorizationError{Message: message}
}

// NotFoundError means the aggregate root does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func NewNotFound(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// ConflictError means a uniqueness invariant was violated (duplicate
// lookup code or email).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflict(message string) *ConflictError {
	return &ConflictError{Message: message}
}

// StatusFor maps an error to the HTTP status the handlers should return.
func StatusFor(err error) int {
	var (
		validation *ValidationError
		authn      *AuthenticationError
		authz      *AuthorizationError
		notFound   *NotFoundError
		conflict   *ConflictError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &authn):
		return http.StatusUnauthorized
	case errors.As(err, &authz):
		return http.StatusForbidden
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// DetailsFor returns the per-rule messages for validation errors, nil
// otherwise.
func DetailsFor(err error) []string {
	var validation *ValidationError
	if errors.As(err, &validation) {
		return validation.Details
	}
	return nil
}
