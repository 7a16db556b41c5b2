package persistence

import (
	"errors"
	"strings"

	"github.com/gym/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps store errors onto the domain taxonomy.
// resource names the aggregate for NOT_FOUND and CONFLICT messages.
func translateError(err error, resource string) error {
	if err == nil {
		return nil
	}
	var de *shared.DomainError
	if errors.As(err, &de) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.NewDomainError(shared.CodeNotFound, resource+" not found")
	case isDuplicateKey(err):
		return &shared.DomainError{
			Code:    shared.CodeConflict,
			Message: resource + " conflicts with an existing record",
			Cause:   err,
		}
	default:
		return shared.NewPersistenceError(resource+" store operation failed", err)
	}
}

// isDuplicateKey recognises unique violations from both drivers. TranslateError
// covers the common path; the message checks catch drivers or wrappers that
// bypass gorm's translator.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "SQLSTATE 23505")
}
