package tracking

import (
	"context"

	"github.com/google/uuid"
	"github.com/gym/backend/internal/domain/shared"
)

// RecordRepository defines persistence for tracking records
type RecordRepository interface {
	// Create inserts a record
	Create(ctx context.Context, record *Record) error

	// FindAll finds records matching the filter ("client_id", "contract_id")
	FindAll(ctx context.Context, filter shared.Filter) ([]Record, error)

	// Count counts records matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByContract counts records tied to a contract
	CountByContract(ctx context.Context, contractID uuid.UUID) (int64, error)

	// CountByClient counts records belonging to a client
	CountByClient(ctx context.Context, clientID uuid.UUID) (int64, error)

	// DeleteByContract bulk-deletes records tied to a contract, returning rows removed
	DeleteByContract(ctx context.Context, contractID uuid.UUID) (int64, error)

	// DeleteByClient bulk-deletes records belonging to a client, returning rows removed
	DeleteByClient(ctx context.Context, clientID uuid.UUID) (int64, error)
}
