package contract

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/gym/backend/internal/domain/finance"
	"github.com/gym/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LedgerEntry describes a movement to append
type LedgerEntry struct {
	ClientID    uuid.UUID
	ContractID  uuid.UUID
	Amount      decimal.Decimal
	Date        time.Time
	Category    string
	Description string
	Method      string
}

// LedgerPoster appends financial movements for contract cash events
type LedgerPoster struct{}

// NewLedgerPoster creates a new LedgerPoster
func NewLedgerPoster() *LedgerPoster {
	return &LedgerPoster{}
}

// PostIncome appends one income movement through the repository of the current atomic unit
func (p *LedgerPoster) PostIncome(ctx context.Context, repo finance.FinancialMovementRepository, entry LedgerEntry) (*finance.FinancialMovement, error) {
	return p.post(ctx, repo, finance.MovementTypeIncome, entry)
}

// PostExpense appends one expense movement
func (p *LedgerPoster) PostExpense(ctx context.Context, repo finance.FinancialMovementRepository, entry LedgerEntry) (*finance.FinancialMovement, error) {
	return p.post(ctx, repo, finance.MovementTypeExpense, entry)
}

func (p *LedgerPoster) post(ctx context.Context, repo finance.FinancialMovementRepository, movementType finance.MovementType, entry LedgerEntry) (*finance.FinancialMovement, error) {
	if repo == nil {
		return nil, shared.NewPersistenceError("ledger repository is not configured", nil)
	}
	m, err := finance.NewMovement(movementType, entry.Amount, entry.Date.UTC(), entry.Category, entry.Description)
	if err != nil {
		return nil, err
	}
	m.ForClient(entry.ClientID).ForContract(entry.ContractID)
	m.Method = entry.Method

	if err := repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
