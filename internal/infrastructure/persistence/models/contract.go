package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/gym/backend/internal/domain/contract"
	"github.com/shopspring/decimal"
)

// ContractModel is the persistence model for the Contract aggregate.
// idx_contracts_vigente_pair is a partial unique index: at most one row per
// (client_id, plan_id) may have state 'vigente'.
type ContractModel struct {
	AggregateModel
	ClientID           uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_contracts_vigente_pair,where:state = 'vigente'"`
	PlanID             uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_contracts_vigente_pair,where:state = 'vigente'"`
	Price              decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	StartDate          time.Time       `gorm:"not null"`
	EndDate            time.Time       `gorm:"not null;index"`
	State              contract.State  `gorm:"type:varchar(20);not null;default:'vigente';index"`
	Conditions         string          `gorm:"type:text"`
	Notes              string          `gorm:"type:text"`
	PreviousContractID *uuid.UUID      `gorm:"type:uuid;index"`
	CancellationReason string          `gorm:"type:text"`
	CancelledAt        *time.Time
	RenewedAt          *time.Time
	ExpiredAt          *time.Time
}

// TableName returns the table name for GORM
func (ContractModel) TableName() string {
	return "contracts"
}

// ToDomain converts the model to a domain Contract
func (m *ContractModel) ToDomain() *contract.Contract {
	return &contract.Contract{
		BaseAggregateRoot:  m.ToDomainAggregateRoot(),
		ClientID:           m.ClientID,
		PlanID:             m.PlanID,
		Price:              m.Price,
		StartDate:          m.StartDate,
		EndDate:            m.EndDate,
		State:              m.State,
		Conditions:         m.Conditions,
		Notes:              m.Notes,
		PreviousContractID: m.PreviousContractID,
		CancellationReason: m.CancellationReason,
		CancelledAt:        m.CancelledAt,
		RenewedAt:          m.RenewedAt,
		ExpiredAt:          m.ExpiredAt,
	}
}

// FromDomain populates the model from a domain Contract
func (m *ContractModel) FromDomain(c *contract.Contract) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.ClientID = c.ClientID
	m.PlanID = c.PlanID
	m.Price = c.Price
	m.StartDate = c.StartDate.UTC()
	m.EndDate = c.EndDate.UTC()
	m.State = c.State
	m.Conditions = c.Conditions
	m.Notes = c.Notes
	m.PreviousContractID = c.PreviousContractID
	m.CancellationReason = c.CancellationReason
	m.CancelledAt = optionalUTC(c.CancelledAt)
	m.RenewedAt = optionalUTC(c.RenewedAt)
	m.ExpiredAt = optionalUTC(c.ExpiredAt)
}

// ContractModelFromDomain creates a new persistence model from domain Contract
func ContractModelFromDomain(c *contract.Contract) *ContractModel {
	m := &ContractModel{}
	m.FromDomain(c)
	return m
}
