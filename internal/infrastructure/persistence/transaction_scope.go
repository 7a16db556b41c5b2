package persistence

import (
	"context"
	"errors"

	appcontract "github.com/gym/backend/internal/application/contract"
	"github.com/gym/backend/internal/domain/client"
	"github.com/gym/backend/internal/domain/contract"
	"github.com/gym/backend/internal/domain/finance"
	"github.com/gym/backend/internal/domain/plan"
	"github.com/gym/backend/internal/domain/shared"
	"github.com/gym/backend/internal/domain/tracking"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
// If fn returns an error, or the commit fails, every write issued through the
// provided repositories is rolled back. Domain errors pass through unchanged;
// anything else becomes PERSISTENCE_ERROR.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appcontract.TransactionalRepositories) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
	if err == nil {
		return nil
	}
	var de *shared.DomainError
	if errors.As(err, &de) {
		return err
	}
	return shared.NewPersistenceError("atomic unit aborted", err)
}

// gormTransactionalRepositories provides access to all repositories within a transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// ContractRepo returns the contract repository scoped to the current transaction
func (r *gormTransactionalRepositories) ContractRepo() contract.ContractRepository {
	return NewGormContractRepository(r.tx)
}

// ClientRepo returns the client repository scoped to the current transaction
func (r *gormTransactionalRepositories) ClientRepo() client.ClientRepository {
	return NewGormClientRepository(r.tx)
}

// PlanRepo returns the plan repository scoped to the current transaction
func (r *gormTransactionalRepositories) PlanRepo() plan.PlanRepository {
	return NewGormPlanRepository(r.tx)
}

// MovementRepo returns the financial movement repository scoped to the current transaction
func (r *gormTransactionalRepositories) MovementRepo() finance.FinancialMovementRepository {
	return NewGormFinancialMovementRepository(r.tx)
}

// TrackingRepo returns the tracking record repository scoped to the current transaction
func (r *gormTransactionalRepositories) TrackingRepo() tracking.RecordRepository {
	return NewGormTrackingRecordRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appcontract.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appcontract.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
