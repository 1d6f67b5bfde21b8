package services

import (
	"errors"
	"fmt"
)

// ErrorCode classifies service failures for transport-layer mapping.
type ErrorCode string

const (
	ErrCodeValidation   ErrorCode = "validation"
	ErrCodeNotFound     ErrorCode = "not_found"
	ErrCodeConflict     ErrorCode = "conflict"
	ErrCodeUnauthorized ErrorCode = "unauthorized"
	ErrCodeForbidden    ErrorCode = "forbidden"
	// ErrCodeMissingCredentials maps to the nonstandard 490 status the
	// admin login contract uses for empty credentials.
	ErrCodeMissingCredentials ErrorCode = "missing_credentials"
	ErrCodeBadRequest         ErrorCode = "bad_request"
	ErrCodeInternal           ErrorCode = "internal"
)

// ServiceError carries a classification code alongside the user-facing
// message. Handlers map codes to HTTP statuses.
type ServiceError struct {
	Code    ErrorCode
	Message string
	Err     error
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

func NewValidationError(message string) *ServiceError {
	return &ServiceError{Code: ErrCodeValidation, Message: message}
}

func NewNotFoundError(message string) *ServiceError {
	return &ServiceError{Code: ErrCodeNotFound, Message: message}
}

func NewConflictError(message string) *ServiceError {
	return &ServiceError{Code: ErrCodeConflict, Message: message}
}

func NewUnauthorizedError(message string) *ServiceError {
	return &ServiceError{Code: ErrCodeUnauthorized, Message: message}
}

func NewForbiddenError(message string) *ServiceError {
	return &ServiceError{Code: ErrCodeForbidden, Message: message}
}

func NewMissingCredentialsError(message string) *ServiceError {
	return &ServiceError{Code: ErrCodeMissingCredentials, Message: message}
}

func NewBadRequestError(message string) *ServiceError {
	return &ServiceError{Code: ErrCodeBadRequest, Message: message}
}

func NewInternalError(message string, err error) *ServiceError {
	return &ServiceError{Code: ErrCodeInternal, Message: message, Err: err}
}

// CodeOf extracts the classification code, defaulting to internal for
// errors raised below the service layer.
func CodeOf(err error) ErrorCode {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Code
	}
	return ErrCodeInternal
}

func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

func IsConflict(err error) bool {
	return CodeOf(err) == ErrCodeConflict
}
