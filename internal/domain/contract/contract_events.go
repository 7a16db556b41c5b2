package contract

import (
	"time"

	"github.com/google/uuid"
	"github.com/gym/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant for contract events
const AggregateTypeContract = "Contract"

// Event type constants for contract events
const (
	EventTypeContractCreated   = "ContractCreated"
	EventTypeContractCancelled = "ContractCancelled"
	EventTypeContractRenewed   = "ContractRenewed"
	EventTypeContractExpired   = "ContractExpired"
)

// ContractCreatedEvent is raised when a new vigente contract is created
type ContractCreatedEvent struct {
	shared.BaseDomainEvent
	ContractID         uuid.UUID       `json:"contract_id"`
	ClientID           uuid.UUID       `json:"client_id"`
	PlanID             uuid.UUID       `json:"plan_id"`
	Price              decimal.Decimal `json:"price"`
	StartDate          time.Time       `json:"start_date"`
	EndDate            time.Time       `json:"end_date"`
	PreviousContractID *uuid.UUID      `json:"previous_contract_id,omitempty"`
}

// NewContractCreatedEvent creates a new ContractCreatedEvent
func NewContractCreatedEvent(c *Contract) *ContractCreatedEvent {
	return &ContractCreatedEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent(EventTypeContractCreated, AggregateTypeContract, c.ID),
		ContractID:         c.ID,
		ClientID:           c.ClientID,
		PlanID:             c.PlanID,
		Price:              c.Price,
		StartDate:          c.StartDate,
		EndDate:            c.EndDate,
		PreviousContractID: c.PreviousContractID,
	}
}

// ContractCancelledEvent is raised when a contract is cancelled
type ContractCancelledEvent struct {
	shared.BaseDomainEvent
	ContractID uuid.UUID `json:"contract_id"`
	ClientID   uuid.UUID `json:"client_id"`
	PlanID     uuid.UUID `json:"plan_id"`
	Reason     string    `json:"reason"`
}

// NewContractCancelledEvent creates a new ContractCancelledEvent
func NewContractCancelledEvent(c *Contract) *ContractCancelledEvent {
	return &ContractCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContractCancelled, AggregateTypeContract, c.ID),
		ContractID:      c.ID,
		ClientID:        c.ClientID,
		PlanID:          c.PlanID,
		Reason:          c.CancellationReason,
	}
}

// ContractRenewedEvent is raised on the superseded contract
type ContractRenewedEvent struct {
	shared.BaseDomainEvent
	ContractID    uuid.UUID `json:"contract_id"`
	NewContractID uuid.UUID `json:"new_contract_id"`
	ClientID      uuid.UUID `json:"client_id"`
	PlanID        uuid.UUID `json:"plan_id"`
}

// NewContractRenewedEvent creates a new ContractRenewedEvent
func NewContractRenewedEvent(c *Contract, newContractID uuid.UUID) *ContractRenewedEvent {
	return &ContractRenewedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContractRenewed, AggregateTypeContract, c.ID),
		ContractID:      c.ID,
		NewContractID:   newContractID,
		ClientID:        c.ClientID,
		PlanID:          c.PlanID,
	}
}

// ContractExpiredEvent is raised when the expiry sweep moves a contract to vencido
type ContractExpiredEvent struct {
	shared.BaseDomainEvent
	ContractID uuid.UUID `json:"contract_id"`
	ClientID   uuid.UUID `json:"client_id"`
	PlanID     uuid.UUID `json:"plan_id"`
	EndDate    time.Time `json:"end_date"`
}

// NewContractExpiredEvent creates a new ContractExpiredEvent
func NewContractExpiredEvent(c *Contract) *ContractExpiredEvent {
	return &ContractExpiredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContractExpired, AggregateTypeContract, c.ID),
		ContractID:      c.ID,
		ClientID:        c.ClientID,
		PlanID:          c.PlanID,
		EndDate:         c.EndDate,
	}
}
