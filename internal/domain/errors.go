// Package domain contains the console's entities, the Result envelope and errors.
// Domain errors describe where a call failed, NOT how it is rendered.
// They are transport-agnostic and are folded into a Result by the normalizer.
package domain

import (
	"errors"
	"fmt"
)

// Failure-domain sentinels for use with errors.Is().
// Every failed Result maps to exactly one of these.
var (
	// ErrTransport indicates no HTTP response was obtained (DNS, timeout, reset).
	ErrTransport = errors.New("transport failure")

	// ErrHTTPStatus indicates a response was obtained with a non-2xx status.
	ErrHTTPStatus = errors.New("http status failure")

	// ErrBusinessStatus indicates a 2xx response whose embedded code reports failure.
	ErrBusinessStatus = errors.New("business status failure")

	// ErrLocalInput indicates a caller-supplied body could not be prepared for sending.
	ErrLocalInput = errors.New("local input failure")
)

// Store sentinels, used by the console backend repositories.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a duplicate entry or a state conflict.
	ErrConflict = errors.New("conflict")

	// ErrValidation indicates input validation failed.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")
)

// StatusError is returned by transports that surface non-2xx responses as errors.
// It carries the response so the normalizer can still read its envelope.
type StatusError struct {
	Response *RawResponse
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Response == nil {
		return "request failed without response"
	}

	return fmt.Sprintf("request failed with status %d", e.Response.Status)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *StatusError) Unwrap() error {
	return ErrHTTPStatus
}

// NewStatusError wraps a raw response in a StatusError.
func NewStatusError(resp *RawResponse) error {
	return &StatusError{Response: resp}
}

// LocalInputError provides context for a body that failed local preparation.
type LocalInputError struct {
	Operation string
	Cause     error
}

// Error implements the error interface.
func (e *LocalInputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: malformed request body: %v", e.Operation, e.Cause)
	}

	return e.Operation + ": malformed request body"
}

// Unwrap returns both the sentinel and the underlying cause.
func (e *LocalInputError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrLocalInput}
	}

	return []error{ErrLocalInput, e.Cause}
}

// NewLocalInputError creates a local input error with context.
func NewLocalInputError(operation string, cause error) error {
	return &LocalInputError{Operation: operation, Cause: cause}
}

// ResultError is the error view of a failed Result.
type ResultError struct {
	Code    int
	Message string
	Domain  FailureDomain
}

// Error implements the error interface.
func (e *ResultError) Error() string {
	return fmt.Sprintf("%s failure (code %d): %s", e.Domain, e.Code, e.Message)
}

// Unwrap returns the failure-domain sentinel for errors.Is() support.
func (e *ResultError) Unwrap() error {
	return e.Domain.Sentinel()
}

// NotFoundError provides context for not found errors.
type NotFoundError struct {
	Entity string
	ID     string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
	}

	return e.Entity + " not found"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConflictError provides context for conflict errors.
type ConflictError struct {
	Entity string
	Reason string
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Entity, e.Reason)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// NewConflictError creates a conflict error with context.
func NewConflictError(entity, reason string) error {
	return &ConflictError{Entity: entity, Reason: reason}
}

// ValidationError provides context for validation errors.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error with context.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsTransport checks if an error belongs to the transport failure domain.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsHTTPStatus checks if an error belongs to the HTTP status failure domain.
func IsHTTPStatus(err error) bool {
	return errors.Is(err, ErrHTTPStatus)
}

// IsBusinessStatus checks if an error belongs to the business status failure domain.
func IsBusinessStatus(err error) bool {
	return errors.Is(err, ErrBusinessStatus)
}

// IsLocalInput checks if an error belongs to the local input failure domain.
func IsLocalInput(err error) bool {
	return errors.Is(err, ErrLocalInput)
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if an error is a conflict error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsUnauthorized checks if an error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
