package shared

import (
	"errors"
	"fmt"
)

// Error codes shared by every aggregate and surfaced unchanged to API callers
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"
	CodePersistence  = "PERSISTENCE_ERROR"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches any DomainError carrying the same code, so sentinel comparisons work
// with errors.Is regardless of message.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError reports malformed or business-invalid input
func NewValidationError(format string, args ...any) *DomainError {
	return NewDomainError(CodeValidation, fmt.Sprintf(format, args...))
}

// NewNotFoundError reports a missing resource by kind and id
func NewNotFoundError(resource string, id any) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s %v not found", resource, id))
}

// NewConflictError reports that a uniqueness or state invariant would be violated
func NewConflictError(format string, args ...any) *DomainError {
	return NewDomainError(CodeConflict, fmt.Sprintf(format, args...))
}

// NewInvalidStateError reports an operation attempted from a forbidden state
func NewInvalidStateError(format string, args ...any) *DomainError {
	return NewDomainError(CodeInvalidState, fmt.Sprintf(format, args...))
}

// NewPersistenceError reports a failed or aborted atomic unit. Callers may rely on
// nothing from that unit having been committed.
func NewPersistenceError(message string, cause error) *DomainError {
	return &DomainError{
		Code:    CodePersistence,
		Message: message,
		Cause:   cause,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError(CodeNotFound, "Resource not found")
	ErrConflict            = NewDomainError(CodeConflict, "Resource conflicts with existing state")
	ErrValidation          = NewDomainError(CodeValidation, "Invalid input provided")
	ErrInvalidState        = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrPersistence         = NewDomainError(CodePersistence, "Persistence operation failed")
	ErrConcurrencyConflict = NewDomainError(CodeConflict, "Resource was modified by another process")
)

// CodeOf returns the DomainError code found in err's chain, or "" if none
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// IsValidation reports whether err carries VALIDATION_ERROR
func IsValidation(err error) bool { return CodeOf(err) == CodeValidation }

// IsNotFound reports whether err carries NOT_FOUND
func IsNotFound(err error) bool { return CodeOf(err) == CodeNotFound }

// IsConflict reports whether err carries CONFLICT
func IsConflict(err error) bool { return CodeOf(err) == CodeConflict }

// IsInvalidState reports whether err carries INVALID_STATE
func IsInvalidState(err error) bool { return CodeOf(err) == CodeInvalidState }

// IsPersistence reports whether err carries PERSISTENCE_ERROR
func IsPersistence(err error) bool { return CodeOf(err) == CodePersistence }
