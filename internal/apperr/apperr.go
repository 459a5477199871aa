// Package apperr defines the closed set of error kinds the services report.
// Every error leaving a service is one of these kinds, carrying a message and
// an optional cause, so the HTTP layer can map it to a response status
// without inspecting backing-store details.
package apperr

import (
	"errors"
)

// Kind classifies a service error.
type Kind int

const (
	// KindUnknown is the zero value, used for errors that are not an *Error.
	KindUnknown Kind = iota
	// KindNotFound signals an entity is absent for a by-id operation.
	KindNotFound
	// KindValidation signals the input violated the validation contract.
	KindValidation
	// KindAuth signals bad credentials or a missing/invalid/expired session.
	KindAuth
	// KindConfiguration signals a missing or broken server-side setting.
	KindConfiguration
	// KindStore signals an opaque backing-store failure.
	KindStore
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindConfiguration:
		return "configuration"
	case KindStore:
		return "store"
	default:
		return "unknown"
	}
}

// Error is a classified service error.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}

	return e.Message
}

// Unwrap returns the cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an error of the given kind with a cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// NotFound creates a KindNotFound error.
func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// Validation creates a KindValidation error.
func Validation(message string) *Error {
	return New(KindValidation, message)
}

// Auth creates a KindAuth error.
func Auth(message string) *Error {
	return New(KindAuth, message)
}

// Configuration creates a KindConfiguration error.
func Configuration(message string) *Error {
	return New(KindConfiguration, message)
}

// Store wraps a backing-store failure.
func Store(message string, cause error) *Error {
	return Wrap(KindStore, message, cause)
}

// KindOf extracts the kind from err, or KindUnknown when err is not an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}

	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
