package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrInvalidRequest indicates the request failed validation
	ErrInvalidRequest = errors.New("invalid request")

	// ErrAllSourcesFailed indicates no offer source returned results
	ErrAllSourcesFailed = errors.New("all offer sources failed")

	// ErrSourceTimeout indicates an offer source did not answer in time
	ErrSourceTimeout = errors.New("offer source timeout")

	// ErrSourceUnavailable indicates an offer source could not be reached
	ErrSourceUnavailable = errors.New("offer source unavailable")
)

// SourceError wraps an error returned by a named offer source.
type SourceError struct {
	Source    string
	Err       error
	Retryable bool
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewSourceError creates a non-retryable source error.
func NewSourceError(source string, err error) *SourceError {
	return &SourceError{Source: source, Err: err}
}

// NewRetryableSourceError creates a source error that may succeed on retry.
func NewRetryableSourceError(source string, err error) *SourceError {
	return &SourceError{Source: source, Err: err, Retryable: true}
}

// NewSourceTimeoutError creates a retryable error wrapping ErrSourceTimeout.
func NewSourceTimeoutError(source string) *SourceError {
	return NewRetryableSourceError(source, ErrSourceTimeout)
}

// NewSourceUnavailableError creates a retryable error wrapping ErrSourceUnavailable.
func NewSourceUnavailableError(source string) *SourceError {
	return NewRetryableSourceError(source, ErrSourceUnavailable)
}

// ValidationError is a field-level validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Unwrap makes every ValidationError match ErrInvalidRequest.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}

// NewValidationError creates a validation error for a field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// WrapInvalidRequest formats a message and wraps ErrInvalidRequest.
func WrapInvalidRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// IsInvalidRequest checks if err is or wraps ErrInvalidRequest.
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

// IsAllSourcesFailed checks if err is or wraps ErrAllSourcesFailed.
func IsAllSourcesFailed(err error) bool {
	return errors.Is(err, ErrAllSourcesFailed)
}

// IsSourceTimeout checks if err is or wraps ErrSourceTimeout.
func IsSourceTimeout(err error) bool {
	return errors.Is(err, ErrSourceTimeout)
}

// IsRetryable reports whether err carries a retryable SourceError.
func IsRetryable(err error) bool {
	var srcErr *SourceError
	return errors.As(err, &srcErr) && srcErr.Retryable
}
