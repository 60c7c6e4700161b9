package errors

import (
	"fmt"
	"net/http"
)

// ErrorKind represents different types of API errors
type ErrorKind string

const (
	KindValidation  ErrorKind = "validation"
	KindNotFound    ErrorKind = "not_found"
	KindUnauthorized ErrorKind = "unauthorized"
	KindConflict    ErrorKind = "conflict"
	KindGateway     ErrorKind = "gateway"
	KindPersistence ErrorKind = "persistence"
	KindInternal    ErrorKind = "internal"
	KindBadRequest  ErrorKind = "bad_request"
)

// APIError represents a structured API error response
type APIError struct {
	Kind      ErrorKind         `json:"kind"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`

	// RemoteStatus carries the status code observed from the remote
	// transcription service for KindGateway errors; zero means the failure
	// happened before a status was received (transport error, timeout).
	RemoteStatus int `json:"remote_status,omitempty"`

	// RemoteBody is the raw remote error payload, forwarded unmodified so
	// callers see the same substance the remote service reported.
	RemoteBody []byte `json:"-"`

	// Err is the underlying cause, kept for logging and never serialized.
	Err error `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *APIError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the appropriate HTTP status code for the error kind.
// Gateway errors preserve the remote status when one was observed.
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindConflict:
		return http.StatusConflict
	case KindGateway:
		if e.RemoteStatus > 0 {
			return e.RemoteStatus
		}
		return http.StatusBadGateway
	case KindPersistence:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError creates a validation error with field details
func NewValidationError(message string, fields map[string]string) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: message,
		Details: fields,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError(message string) *APIError {
	return &APIError{
		Kind:    KindUnauthorized,
		Message: message,
	}
}

// NewConflictError creates a conflict error
func NewConflictError(message string) *APIError {
	return &APIError{
		Kind:    KindConflict,
		Message: message,
	}
}

// NewGatewayError creates an error for a failed remote transcription call.
// remoteStatus is zero for transport failures.
func NewGatewayError(message string, remoteStatus int, remoteBody []byte) *APIError {
	return &APIError{
		Kind:         KindGateway,
		Message:      message,
		RemoteStatus: remoteStatus,
		RemoteBody:   remoteBody,
	}
}

// NewPersistenceError creates an error for a failed local store operation
func NewPersistenceError(message string, err error) *APIError {
	return &APIError{
		Kind:    KindPersistence,
		Message: message,
		Err:     err,
	}
}

// NewInternalError creates an internal server error
func NewInternalError(message string, err error) *APIError {
	return &APIError{
		Kind:    KindInternal,
		Message: message,
		Err:     err,
	}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *APIError {
	return &APIError{
		Kind:    KindBadRequest,
		Message: message,
	}
}
