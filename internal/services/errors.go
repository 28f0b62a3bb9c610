package services

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType int

const (
	ErrTypeBadRequest ErrorType = iota
	ErrTypeUnauthorized
	ErrTypeForbidden
	ErrTypeNotFound
	ErrTypeConflict
	ErrTypeInternal
)

// ServiceError is a standardized error for all services
type ServiceError struct {
	Type    ErrorType
	Message string
	// Duplicate marks a conflict caused by an identical existing record,
	// surfaced as "duplicate": true in the response body.
	Duplicate bool
	Err       error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(message string) *ServiceError {
	return &ServiceError{Type: ErrTypeBadRequest, Message: message}
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string) *ServiceError {
	return &ServiceError{Type: ErrTypeUnauthorized, Message: message}
}

// NewForbiddenError creates a new forbidden error
func NewForbiddenError(message string) *ServiceError {
	return &ServiceError{Type: ErrTypeForbidden, Message: message}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *ServiceError {
	return &ServiceError{Type: ErrTypeNotFound, Message: message}
}

// NewConflictError creates a new conflict error
func NewConflictError(message string) *ServiceError {
	return &ServiceError{Type: ErrTypeConflict, Message: message}
}

// NewDuplicateError creates a conflict error flagged as a duplicate record
func NewDuplicateError(message string) *ServiceError {
	return &ServiceError{Type: ErrTypeConflict, Message: message, Duplicate: true}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *ServiceError {
	return &ServiceError{Type: ErrTypeInternal, Message: message, Err: err}
}

// AsServiceError extracts a *ServiceError from err, if present
func AsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}
