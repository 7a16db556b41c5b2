package contract

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/gym/backend/internal/domain/tracking"
	"go.uber.org/zap"
)

// Compensation scopes
const (
	CompensationScopeContract = "contract"
	CompensationScopeClient   = "client"
)

// CompensationResult reports how many tracking records a compensation removed
type CompensationResult struct {
	DeletedCount int64 `json:"deleted_count"`
}

// CompensationWarning is attached to a successful result when cleanup failed.
// It is never returned as an error.
type CompensationWarning struct {
	Scope    string    `json:"scope"`
	TargetID uuid.UUID `json:"target_id"`
	Reason   string    `json:"reason,omitempty"`
	Message  string    `json:"message"`
	Err      error     `json:"-"`
}

// NewCompensationWarning creates a warning for a failed compensation
func NewCompensationWarning(scope string, targetID uuid.UUID, reason string, err error) *CompensationWarning {
	w := &CompensationWarning{
		Scope:    scope,
		TargetID: targetID,
		Reason:   reason,
		Err:      err,
	}
	w.Message = w.String()
	return w
}

func (w *CompensationWarning) String() string {
	if w.Err == nil {
		return fmt.Sprintf("tracking cleanup for %s %s did not complete", w.Scope, w.TargetID)
	}
	return fmt.Sprintf("tracking cleanup for %s %s failed: %v", w.Scope, w.TargetID, w.Err)
}

// Compensator removes tracking records once the relationship that owned them has ended
type Compensator interface {
	DeleteByContract(ctx context.Context, contractID uuid.UUID, reason string) (*CompensationResult, error)
	DeleteByClient(ctx context.Context, clientID uuid.UUID, reason string) (*CompensationResult, error)
}

// CompensationEngine deletes tracking records in an atomic unit of its own,
// separate from the operation that triggered it.
type CompensationEngine struct {
	scope        TransactionScope
	trackingRepo tracking.RecordRepository
	logger       *zap.Logger
}

// NewCompensationEngine creates a new CompensationEngine
func NewCompensationEngine(scope TransactionScope, trackingRepo tracking.RecordRepository, logger *zap.Logger) *CompensationEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompensationEngine{
		scope:        scope,
		trackingRepo: trackingRepo,
		logger:       logger,
	}
}

// DeleteByContract removes every tracking record tied to contractID.
// Returns DeletedCount 0 without opening a transaction when there is nothing to remove.
func (e *CompensationEngine) DeleteByContract(ctx context.Context, contractID uuid.UUID, reason string) (*CompensationResult, error) {
	pending, err := e.trackingRepo.CountByContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	return e.bulkDelete(ctx, CompensationScopeContract, contractID, reason, pending,
		func(repo tracking.RecordRepository) (int64, error) {
			return repo.DeleteByContract(ctx, contractID)
		})
}

// DeleteByClient removes every tracking record belonging to clientID
func (e *CompensationEngine) DeleteByClient(ctx context.Context, clientID uuid.UUID, reason string) (*CompensationResult, error) {
	pending, err := e.trackingRepo.CountByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return e.bulkDelete(ctx, CompensationScopeClient, clientID, reason, pending,
		func(repo tracking.RecordRepository) (int64, error) {
			return repo.DeleteByClient(ctx, clientID)
		})
}

func (e *CompensationEngine) bulkDelete(
	ctx context.Context,
	scope string,
	targetID uuid.UUID,
	reason string,
	pending int64,
	del func(repo tracking.RecordRepository) (int64, error),
) (*CompensationResult, error) {
	if pending == 0 {
		return &CompensationResult{DeletedCount: 0}, nil
	}

	result := &CompensationResult{}
	err := e.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		deleted, err := del(repos.TrackingRepo())
		if err != nil {
			return err
		}
		result.DeletedCount = deleted
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("Tracking records compensated",
		zap.String("scope", scope),
		zap.String("target_id", targetID.String()),
		zap.String("reason", reason),
		zap.Int64("deleted_count", result.DeletedCount),
	)
	return result, nil
}

// Ensure CompensationEngine implements Compensator
var _ Compensator = (*CompensationEngine)(nil)
