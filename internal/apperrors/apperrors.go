// Package apperrors defines the structured error taxonomy used across the
// service. The split matters for propagation policy: configuration errors
// are fatal to a provider path and raised before any network call, transport
// and shape errors on the weather path propagate to the caller, while the
// hazard and media paths absorb them into empty/placeholder results.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Type string

const (
	ConfigurationError Type = "CONFIGURATION_ERROR"
	TransportError     Type = "TRANSPORT_ERROR"
	ShapeError         Type = "SHAPE_ERROR"
	NotFoundError      Type = "NOT_FOUND"
	ValidationError    Type = "VALIDATION_ERROR"
	MediaLoadError     Type = "MEDIA_LOAD_ERROR"
	ServerError        Type = "SERVER_ERROR"
)

// Error is a structured application error carrying its taxonomy type and the
// HTTP status the API layer should respond with.
type Error struct {
	Type       Type   `json:"type"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	HTTPStatus int    `json:"-"`
	Raw        error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Raw
}

// New creates an Error of the given type.
func New(errType Type, message string, detail string) *Error {
	return &Error{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: httpStatus(errType),
	}
}

// Wrap attaches taxonomy context to a raw error. Returns nil for a nil error.
func Wrap(err error, errType Type, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: httpStatus(errType),
		Raw:        err,
	}
}

// IsType reports whether err is (or wraps) an *Error of the given type.
func IsType(err error, errType Type) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// MissingCredential builds the configuration error raised when a provider's
// API key is absent. Never retried; the provider path is unusable.
func MissingCredential(provider string) *Error {
	return &Error{
		Type:       ConfigurationError,
		Message:    fmt.Sprintf("%s api key is not configured", provider),
		HTTPStatus: http.StatusInternalServerError,
	}
}

// Transport builds a transport error for a non-success status or network
// failure on the weather path.
func Transport(provider string, err error) *Error {
	return Wrap(err, TransportError, fmt.Sprintf("%s request failed", provider))
}

// Shape builds a shape error for an upstream payload that does not match any
// recognized structure.
func Shape(provider string, detail string) *Error {
	return New(ShapeError, fmt.Sprintf("cannot parse %s response", provider), detail)
}

func httpStatus(errType Type) int {
	switch errType {
	case ValidationError:
		return http.StatusBadRequest
	case NotFoundError:
		return http.StatusNotFound
	case TransportError, ShapeError:
		return http.StatusBadGateway
	case ConfigurationError, MediaLoadError, ServerError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
