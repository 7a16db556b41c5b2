package plan

import (
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/gym/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// State represents whether a plan accepts new contracts
type State string

const (
	StateActive   State = "active"
	StateInactive State = "inactive"
)

// IsValid checks if the state is a known value
func (s State) IsValid() bool {
	return s == StateActive || s == StateInactive
}

// Plan is a training plan offered by the gym. It holds the plan-side half of
// the client/plan association.
type Plan struct {
	shared.BaseAggregateRoot
	Name         string
	Description  string
	DurationDays int
	BasePrice    decimal.Decimal
	State        State
	ClientIDs    []uuid.UUID // ordered set, maintained by the association manager
}

// NewPlan creates an active plan
func NewPlan(name, description string, durationDays int, basePrice decimal.Decimal) (*Plan, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("plan name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewValidationError("plan name cannot exceed 200 characters")
	}
	if durationDays < 0 {
		return nil, shared.NewValidationError("duration days cannot be negative")
	}
	if basePrice.IsNegative() {
		return nil, shared.NewValidationError("base price cannot be negative")
	}

	return &Plan{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		DurationDays:      durationDays,
		BasePrice:         basePrice,
		State:             StateActive,
		ClientIDs:         make([]uuid.UUID, 0),
	}, nil
}

// IsActive reports whether contracts may be created against this plan
func (p *Plan) IsActive() bool {
	return p.State == StateActive
}

// SetState moves the plan to the given state. Existing contracts are unaffected.
func (p *Plan) SetState(state State) error {
	if !state.IsValid() {
		return shared.NewValidationError("invalid plan state %q", state)
	}
	if p.State == state {
		return nil
	}
	p.State = state
	p.IncrementVersion()
	return nil
}

// HasClient reports whether clientID is in the reference set
func (p *Plan) HasClient(clientID uuid.UUID) bool {
	return slices.Contains(p.ClientIDs, clientID)
}

// AddClient appends clientID if absent. Returns false when nothing changed.
func (p *Plan) AddClient(clientID uuid.UUID) bool {
	if p.HasClient(clientID) {
		return false
	}
	p.ClientIDs = append(p.ClientIDs, clientID)
	p.IncrementVersion()
	return true
}

// RemoveClient drops clientID if present. Returns false when nothing changed.
func (p *Plan) RemoveClient(clientID uuid.UUID) bool {
	idx := slices.Index(p.ClientIDs, clientID)
	if idx < 0 {
		return false
	}
	p.ClientIDs = slices.Delete(p.ClientIDs, idx, idx+1)
	p.IncrementVersion()
	return true
}
