package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}

	// ForbiddenError indicates authorization failure
	ForbiddenError struct {
		Message string
	}

	// CycleDetectedError indicates a parent-chain walk revisited a node.
	// Trees are acyclic by construction; hitting this means the backing
	// store was corrupted, so the walk fails instead of looping forever.
	CycleDetectedError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string      { return e.Message }
func (e *ValidationError) Error() string    { return e.Message }
func (e *UnauthorizedError) Error() string  { return e.Message }
func (e *ForbiddenError) Error() string     { return e.Message }
func (e *CycleDetectedError) Error() string { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int      { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int    { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int  { return http.StatusUnauthorized }
func (e *ForbiddenError) StatusCode() int     { return http.StatusForbidden }
func (e *CycleDetectedError) StatusCode() int { return http.StatusInternalServerError }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("already exists")
	ErrValidation    = errors.New("validation failed")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrCycleDetected = errors.New("cycle detected")
)

// Is allows errors.Is() to match against the sentinels.
func (e *NotFoundError) Is(target error) bool      { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool    { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool  { return target == ErrUnauthorized }
func (e *ForbiddenError) Is(target error) bool     { return target == ErrForbidden }
func (e *CycleDetectedError) Is(target error) bool { return target == ErrCycleDetected }

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (folder, unit, item)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
