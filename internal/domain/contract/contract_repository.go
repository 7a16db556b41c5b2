package contract

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/gym/backend/internal/domain/shared"
)

// ContractRepository defines the interface for contract persistence
type ContractRepository interface {
	// FindByID returns NOT_FOUND when the contract does not exist
	FindByID(ctx context.Context, id uuid.UUID) (*Contract, error)

	// FindAll finds contracts matching the filter ("client_id", "plan_id", "state")
	FindAll(ctx context.Context, filter shared.Filter) ([]Contract, error)

	// Count counts contracts matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsVigenteForPair checks for a vigente contract on (clientID, planID),
	// ignoring excludeID when it is not uuid.Nil
	ExistsVigenteForPair(ctx context.Context, clientID, planID, excludeID uuid.UUID) (bool, error)

	// CountOpenByClient counts the client's vigente and vencido contracts
	CountOpenByClient(ctx context.Context, clientID uuid.UUID) (int64, error)

	// FindExpirable returns up to limit vigente contracts whose end date is before now
	FindExpirable(ctx context.Context, now time.Time, limit int) ([]Contract, error)

	// Create inserts a contract. A second vigente contract for the same pair
	// is rejected by the store with CONFLICT.
	Create(ctx context.Context, contract *Contract) error

	// SaveWithLock updates a contract only if its stored version is Version-1
	SaveWithLock(ctx context.Context, contract *Contract) error
}
