package models

import (
	"github.com/gym/backend/internal/domain/plan"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// PlanModel is the persistence model for the Plan aggregate
type PlanModel struct {
	AggregateModel
	Name         string          `gorm:"type:varchar(200);not null"`
	Description  string          `gorm:"type:text"`
	DurationDays int             `gorm:"not null;default:0"`
	BasePrice    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	State        plan.State      `gorm:"type:varchar(20);not null;default:'active';index"`
	ClientIDs    datatypes.JSON  `gorm:"column:client_ids;not null"`
}

// TableName returns the table name for GORM
func (PlanModel) TableName() string {
	return "plans"
}

// ToDomain converts the model to a domain Plan
func (m *PlanModel) ToDomain() (*plan.Plan, error) {
	clientIDs, err := DecodeUUIDList(m.ClientIDs)
	if err != nil {
		return nil, err
	}
	return &plan.Plan{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Description:       m.Description,
		DurationDays:      m.DurationDays,
		BasePrice:         m.BasePrice,
		State:             m.State,
		ClientIDs:         clientIDs,
	}, nil
}

// FromDomain populates the model from a domain Plan
func (m *PlanModel) FromDomain(p *plan.Plan) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Description = p.Description
	m.DurationDays = p.DurationDays
	m.BasePrice = p.BasePrice
	m.State = p.State
	m.ClientIDs = EncodeUUIDList(p.ClientIDs)
}

// PlanModelFromDomain creates a new persistence model from domain Plan
func PlanModelFromDomain(p *plan.Plan) *PlanModel {
	m := &PlanModel{}
	m.FromDomain(p)
	return m
}
