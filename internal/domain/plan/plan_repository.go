package plan

import (
	"context"

	"github.com/google/uuid"
	"github.com/gym/backend/internal/domain/shared"
)

// PlanRepository defines the interface for plan persistence
type PlanRepository interface {
	// FindByID returns NOT_FOUND when the plan does not exist
	FindByID(ctx context.Context, id uuid.UUID) (*Plan, error)

	// FindByIDForUpdate is FindByID holding a row lock until the surrounding
	// transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Plan, error)

	// FindAll finds plans matching the filter ("state", "search")
	FindAll(ctx context.Context, filter shared.Filter) ([]Plan, error)

	// Count counts plans matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Create inserts a new plan
	Create(ctx context.Context, plan *Plan) error

	// SaveWithLock updates a plan only if its stored version is Version-1
	SaveWithLock(ctx context.Context, plan *Plan) error
}
