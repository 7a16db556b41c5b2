package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/gym/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// FinancialMovementModel is the persistence model for ledger entries
type FinancialMovementModel struct {
	BaseModel
	Type        finance.MovementType `gorm:"type:varchar(20);not null;index"`
	Amount      decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Date        time.Time            `gorm:"not null;index"`
	ClientID    *uuid.UUID           `gorm:"type:uuid;index"`
	ContractID  *uuid.UUID           `gorm:"type:uuid;index"`
	Category    string               `gorm:"type:varchar(100);not null"`
	Description string               `gorm:"type:varchar(500)"`
	Method      string               `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (FinancialMovementModel) TableName() string {
	return "financial_movements"
}

// ToDomain converts the model to a domain FinancialMovement
func (m *FinancialMovementModel) ToDomain() *finance.FinancialMovement {
	return &finance.FinancialMovement{
		BaseEntity:  m.BaseModel.ToDomain(),
		Type:        m.Type,
		Amount:      m.Amount,
		Date:        m.Date,
		ClientID:    m.ClientID,
		ContractID:  m.ContractID,
		Category:    m.Category,
		Description: m.Description,
		Method:      m.Method,
	}
}

// FinancialMovementModelFromDomain creates a new persistence model from a domain movement
func FinancialMovementModelFromDomain(f *finance.FinancialMovement) *FinancialMovementModel {
	m := &FinancialMovementModel{
		Type:        f.Type,
		Amount:      f.Amount,
		Date:        f.Date.UTC(),
		ClientID:    f.ClientID,
		ContractID:  f.ContractID,
		Category:    f.Category,
		Description: f.Description,
		Method:      f.Method,
	}
	m.FromDomainBaseEntity(f.BaseEntity)
	return m
}
