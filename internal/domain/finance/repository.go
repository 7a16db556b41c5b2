package finance

import (
	"context"

	"github.com/gym/backend/internal/domain/shared"
)

// FinancialMovementRepository appends and reads ledger entries.
// There is deliberately no update or delete.
type FinancialMovementRepository interface {
	// Create appends a movement
	Create(ctx context.Context, movement *FinancialMovement) error

	// FindAll finds movements matching the filter ("client_id", "contract_id",
	// "type", "from", "to")
	FindAll(ctx context.Context, filter shared.Filter) ([]FinancialMovement, error)

	// Count counts movements matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
