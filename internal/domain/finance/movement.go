package finance

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gym/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MovementType distinguishes money coming in from money going out
type MovementType string

const (
	MovementTypeIncome  MovementType = "income"
	MovementTypeExpense MovementType = "expense"
)

// IsValid checks if the type is a known value
func (t MovementType) IsValid() bool {
	return t == MovementTypeIncome || t == MovementTypeExpense
}

// Default categories used by contract cash events
const (
	CategoryMembership = "membership"
	CategoryRenewal    = "renewal"
)

// FinancialMovement is an append-only ledger entry
type FinancialMovement struct {
	shared.BaseEntity
	Type        MovementType
	Amount      decimal.Decimal
	Date        time.Time
	ClientID    *uuid.UUID
	ContractID  *uuid.UUID
	Category    string
	Description string
	Method      string
}

// NewMovement creates a ledger entry. Amount must be positive; the sign is
// carried by Type.
func NewMovement(movementType MovementType, amount decimal.Decimal, date time.Time, category, description string) (*FinancialMovement, error) {
	if !movementType.IsValid() {
		return nil, shared.NewValidationError("invalid movement type %q", movementType)
	}
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("movement amount must be greater than zero")
	}
	if date.IsZero() {
		return nil, shared.NewValidationError("movement date is required")
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, shared.NewValidationError("movement category is required")
	}
	if len(description) > 500 {
		return nil, shared.NewValidationError("description cannot exceed 500 characters")
	}

	return &FinancialMovement{
		BaseEntity:  shared.NewBaseEntity(),
		Type:        movementType,
		Amount:      amount,
		Date:        date,
		Category:    category,
		Description: description,
	}, nil
}

// ForClient scopes the movement to a client
func (m *FinancialMovement) ForClient(clientID uuid.UUID) *FinancialMovement {
	if clientID != uuid.Nil {
		m.ClientID = &clientID
	}
	return m
}

// ForContract scopes the movement to a contract
func (m *FinancialMovement) ForContract(contractID uuid.UUID) *FinancialMovement {
	if contractID != uuid.Nil {
		m.ContractID = &contractID
	}
	return m
}

// SignedAmount returns the amount negated for expenses
func (m *FinancialMovement) SignedAmount() decimal.Decimal {
	if m.Type == MovementTypeExpense {
		return m.Amount.Neg()
	}
	return m.Amount
}
