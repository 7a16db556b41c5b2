// Package models holds the GORM persistence models. Domain aggregates never
// carry gorm tags; every repository converts through ToDomain/FromDomain.
package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gym/backend/internal/domain/shared"
	"gorm.io/datatypes"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt.UTC()
	m.UpdatedAt = e.UpdatedAt.UTC()
}

// AggregateModel extends BaseModel with version for optimistic locking
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

// FromDomainAggregateRoot populates AggregateModel from domain BaseAggregateRoot
func (m *AggregateModel) FromDomainAggregateRoot(a shared.BaseAggregateRoot) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.Version = a.Version
}

// ToDomainAggregateRoot converts AggregateModel to a BaseAggregateRoot with no pending events
func (m *AggregateModel) ToDomainAggregateRoot() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{
		BaseEntity: m.BaseModel.ToDomain(),
		Version:    m.Version,
	}
}

// EncodeUUIDList stores an ordered id set as a JSON array of strings
func EncodeUUIDList(ids []uuid.UUID) datatypes.JSON {
	if len(ids) == 0 {
		return datatypes.JSON("[]")
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		// uuid.UUID always marshals
		panic(fmt.Sprintf("encode uuid list: %v", err))
	}
	return datatypes.JSON(raw)
}

// DecodeUUIDList reads a JSON array of ids. Null or empty input yields an empty list.
func DecodeUUIDList(raw datatypes.JSON) ([]uuid.UUID, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return make([]uuid.UUID, 0), nil
	}
	ids := make([]uuid.UUID, 0)
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("invalid uuid list %q: %w", string(raw), err)
	}
	return ids, nil
}

func optionalUTC(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
