package contract

import (
	"context"

	"github.com/gym/backend/internal/domain/client"
	"github.com/gym/backend/internal/domain/contract"
	"github.com/gym/backend/internal/domain/finance"
	"github.com/gym/backend/internal/domain/plan"
	"github.com/gym/backend/internal/domain/tracking"
)

// TransactionScope runs a function as one atomic unit.
// Every repository handed to fn shares the same store transaction: all writes
// commit together when fn returns nil and all roll back otherwise.
type TransactionScope interface {
	// Execute runs fn within a transaction. Errors that are not domain errors
	// are surfaced as PERSISTENCE_ERROR.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories bound to one atomic unit
type TransactionalRepositories interface {
	ContractRepo() contract.ContractRepository
	ClientRepo() client.ClientRepository
	PlanRepo() plan.PlanRepository
	MovementRepo() finance.FinancialMovementRepository
	TrackingRepo() tracking.RecordRepository
}
