package tracking

import (
	"time"

	"github.com/google/uuid"
	"github.com/gym/backend/internal/domain/shared"
)

// Record is a progress ("seguimiento") entry for a client, optionally tied to
// a contract. Measurements are kept as an opaque key/value payload.
type Record struct {
	shared.BaseEntity
	ClientID     uuid.UUID
	ContractID   *uuid.UUID
	Date         time.Time
	Measurements map[string]any
	Notes        string
}

// NewRecord creates a tracking record
func NewRecord(clientID uuid.UUID, contractID *uuid.UUID, date time.Time, measurements map[string]any, notes string) (*Record, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewValidationError("client id is required")
	}
	if date.IsZero() {
		return nil, shared.NewValidationError("tracking date is required")
	}
	if contractID != nil && *contractID == uuid.Nil {
		contractID = nil
	}
	if measurements == nil {
		measurements = make(map[string]any)
	}
	return &Record{
		BaseEntity:   shared.NewBaseEntity(),
		ClientID:     clientID,
		ContractID:   contractID,
		Date:         date,
		Measurements: measurements,
		Notes:        notes,
	}, nil
}
