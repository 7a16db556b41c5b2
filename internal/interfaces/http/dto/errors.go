package dto

import (
	"net/http"

	"github.com/gym/backend/internal/domain/shared"
)

// Domain error codes, surfaced on the wire unchanged
const (
	ErrCodeValidation   = shared.CodeValidation
	ErrCodeNotFound     = shared.CodeNotFound
	ErrCodeConflict     = shared.CodeConflict
	ErrCodeInvalidState = shared.CodeInvalidState
	ErrCodePersistence  = shared.CodePersistence
)

// Transport-level error codes
const (
	// ErrCodeBadRequest is used for malformed requests (bad JSON, bad path id)
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeInternal is used for errors outside the domain taxonomy
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeDuplicateRequest is used when an Idempotency-Key is replayed
	ErrCodeDuplicateRequest = "DUPLICATE_REQUEST"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeConflict:     http.StatusConflict,
	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodePersistence:  http.StatusInternalServerError,

	ErrCodeBadRequest:       http.StatusBadRequest,
	ErrCodeInternal:         http.StatusInternalServerError,
	ErrCodeDuplicateRequest: http.StatusConflict,
	ErrCodeRequestTooLarge:  http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
