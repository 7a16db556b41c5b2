package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gym/backend/internal/domain/tracking"
	"gorm.io/datatypes"
)

// TrackingRecordModel is the persistence model for tracking records
type TrackingRecordModel struct {
	BaseModel
	ClientID     uuid.UUID         `gorm:"type:uuid;not null;index"`
	ContractID   *uuid.UUID        `gorm:"type:uuid;index"`
	Date         time.Time         `gorm:"not null"`
	Measurements datatypes.JSONMap `gorm:"not null"`
	Notes        string            `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (TrackingRecordModel) TableName() string {
	return "tracking_records"
}

// ToDomain converts the model to a domain Record
func (m *TrackingRecordModel) ToDomain() *tracking.Record {
	measurements := make(map[string]any, len(m.Measurements))
	for k, v := range m.Measurements {
		measurements[k] = decodedNumber(v)
	}
	return &tracking.Record{
		BaseEntity:   m.BaseModel.ToDomain(),
		ClientID:     m.ClientID,
		ContractID:   m.ContractID,
		Date:         m.Date,
		Measurements: measurements,
		Notes:        m.Notes,
	}
}

// decodedNumber turns the json.Number values JSONMap scans into float64,
// matching what the HTTP binding produced when the record was created.
func decodedNumber(v any) any {
	switch t := v.(type) {
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = decodedNumber(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = decodedNumber(e)
		}
		return out
	default:
		return v
	}
}

// TrackingRecordModelFromDomain creates a new persistence model from a domain Record
func TrackingRecordModelFromDomain(r *tracking.Record) *TrackingRecordModel {
	m := &TrackingRecordModel{
		ClientID:     r.ClientID,
		ContractID:   r.ContractID,
		Date:         r.Date.UTC(),
		Measurements: datatypes.JSONMap(r.Measurements),
		Notes:        r.Notes,
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}

// AllModels lists every model in migration order
func AllModels() []any {
	return []any{
		&ClientModel{},
		&PlanModel{},
		&ContractModel{},
		&FinancialMovementModel{},
		&TrackingRecordModel{},
	}
}
