package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gym/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// State represents the lifecycle state of a contract
type State string

const (
	StateVigente   State = "vigente"   // active
	StateVencido   State = "vencido"   // expired
	StateCancelado State = "cancelado" // cancelled, terminal
	StateRenovado  State = "renovado"  // superseded by a renewal, terminal
)

// String returns the string representation of State
func (s State) String() string {
	return string(s)
}

// IsValid checks if the state is a known value
func (s State) IsValid() bool {
	switch s {
	case StateVigente, StateVencido, StateCancelado, StateRenovado:
		return true
	}
	return false
}

// IsTerminal reports whether no transition leaves this state
func (s State) IsTerminal() bool {
	return s == StateCancelado || s == StateRenovado
}

// CanTransitionTo checks if the state can transition to the target state
func (s State) CanTransitionTo(target State) bool {
	switch s {
	case StateVigente:
		return target == StateVencido || target == StateCancelado || target == StateRenovado
	case StateVencido:
		return target == StateCancelado || target == StateRenovado
	default:
		return false
	}
}

// ParseState parses a state string, rejecting unknown values
func ParseState(s string) (State, error) {
	state := State(strings.ToLower(strings.TrimSpace(s)))
	if !state.IsValid() {
		return "", shared.NewValidationError("invalid contract state %q", s)
	}
	return state, nil
}

const maxTextLength = 2000

// Terms are the priced, time-bounded conditions of a contract
type Terms struct {
	StartDate  time.Time
	EndDate    time.Time
	Price      decimal.Decimal
	Conditions string
}

// Validate checks price and date bounds against now
func (t Terms) Validate(now time.Time) error {
	if !t.Price.IsPositive() {
		return shared.NewValidationError("price must be greater than zero")
	}
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return shared.NewValidationError("start date and end date are required")
	}
	if !t.StartDate.Before(t.EndDate) {
		return shared.NewValidationError("start date must be before end date")
	}
	if !t.EndDate.After(now) {
		return shared.NewValidationError("end date must be in the future")
	}
	if len(t.Conditions) > maxTextLength {
		return shared.NewValidationError("conditions cannot exceed %d characters", maxTextLength)
	}
	return nil
}

// Contract binds a client to a plan for a priced, time-bounded period.
// Price and dates never change after creation; renewal creates a new contract.
type Contract struct {
	shared.BaseAggregateRoot
	ClientID           uuid.UUID
	PlanID             uuid.UUID
	Price              decimal.Decimal
	StartDate          time.Time
	EndDate            time.Time
	State              State
	Conditions         string
	Notes              string
	PreviousContractID *uuid.UUID
	CancellationReason string
	CancelledAt        *time.Time
	RenewedAt          *time.Time
	ExpiredAt          *time.Time
}

// NewContract creates a vigente contract after validating terms against now
func NewContract(clientID, planID uuid.UUID, terms Terms, now time.Time) (*Contract, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewValidationError("client id is required")
	}
	if planID == uuid.Nil {
		return nil, shared.NewValidationError("plan id is required")
	}
	if err := terms.Validate(now); err != nil {
		return nil, err
	}

	c := &Contract{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientID:          clientID,
		PlanID:            planID,
		Price:             terms.Price,
		StartDate:         terms.StartDate,
		EndDate:           terms.EndDate,
		State:             StateVigente,
		Conditions:        terms.Conditions,
	}
	c.AddDomainEvent(NewContractCreatedEvent(c))
	return c, nil
}

// IsVigente reports whether the contract is in the active state
func (c *Contract) IsVigente() bool {
	return c.State == StateVigente
}

// IsExpired reports whether a vigente contract has run past its end date.
// Contracts already moved out of vigente are never reported as expired.
func (c *Contract) IsExpired(now time.Time) bool {
	return c.State == StateVigente && c.EndDate.Before(now)
}

// EffectiveState is the state a reader should observe at now, treating an
// overdue vigente contract as vencido before the sweep persists it.
func (c *Contract) EffectiveState(now time.Time) State {
	if c.IsExpired(now) {
		return StateVencido
	}
	return c.State
}

// UpdateDetails changes the administrative text of a vigente contract
func (c *Contract) UpdateDetails(conditions, notes *string) error {
	if c.State != StateVigente {
		return shared.NewInvalidStateError("cannot update contract in %s state", c.State)
	}
	if conditions == nil && notes == nil {
		return shared.NewValidationError("nothing to update")
	}
	if conditions != nil {
		if len(*conditions) > maxTextLength {
			return shared.NewValidationError("conditions cannot exceed %d characters", maxTextLength)
		}
		c.Conditions = *conditions
	}
	if notes != nil {
		if len(*notes) > maxTextLength {
			return shared.NewValidationError("notes cannot exceed %d characters", maxTextLength)
		}
		c.Notes = *notes
	}
	c.IncrementVersion()
	return nil
}

// Cancel moves the contract to cancelado, recording the reason
func (c *Contract) Cancel(reason string, now time.Time) error {
	if !c.State.CanTransitionTo(StateCancelado) {
		return shared.NewInvalidStateError("cannot cancel contract in %s state", c.State)
	}
	reason = strings.TrimSpace(reason)
	if len(reason) > maxTextLength {
		return shared.NewValidationError("cancellation reason cannot exceed %d characters", maxTextLength)
	}

	c.State = StateCancelado
	c.CancellationReason = reason
	c.CancelledAt = &now
	c.IncrementVersion()
	c.AddDomainEvent(NewContractCancelledEvent(c))
	return nil
}

// Expire moves an overdue vigente contract to vencido
func (c *Contract) Expire(now time.Time) error {
	if !c.State.CanTransitionTo(StateVencido) {
		return shared.NewInvalidStateError("cannot expire contract in %s state", c.State)
	}
	if !c.EndDate.Before(now) {
		return shared.NewInvalidStateError("contract %s ends at %s and has not expired", c.ID, c.EndDate.Format(time.RFC3339))
	}

	c.State = StateVencido
	c.ExpiredAt = &now
	c.IncrementVersion()
	c.AddDomainEvent(NewContractExpiredEvent(c))
	return nil
}

// Renew marks this contract renovado and returns its vigente successor.
// On error the receiver is left unchanged.
func (c *Contract) Renew(terms Terms, now time.Time) (*Contract, error) {
	if !c.State.CanTransitionTo(StateRenovado) {
		return nil, shared.NewInvalidStateError("cannot renew contract in %s state", c.State)
	}
	next, err := NewContract(c.ClientID, c.PlanID, terms, now)
	if err != nil {
		return nil, err
	}
	prev := c.ID
	next.PreviousContractID = &prev
	next.ClearDomainEvents()
	next.AddDomainEvent(NewContractCreatedEvent(next))

	c.State = StateRenovado
	c.RenewedAt = &now
	c.IncrementVersion()
	c.AddDomainEvent(NewContractRenewedEvent(c, next.ID))
	return next, nil
}

// Describe returns a one-line summary used in ledger descriptions and logs
func (c *Contract) Describe() string {
	return fmt.Sprintf("contract %s (%s to %s)", c.ID, c.StartDate.Format(time.DateOnly), c.EndDate.Format(time.DateOnly))
}
