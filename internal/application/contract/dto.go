package contract

import (
	"time"

	"github.com/google/uuid"
	"github.com/gym/backend/internal/domain/contract"
	"github.com/gym/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CreateContractRequest represents a request to create a contract
type CreateContractRequest struct {
	ClientID      uuid.UUID       `json:"client_id" binding:"required"`
	PlanID        uuid.UUID       `json:"plan_id" binding:"required"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	StartDate     time.Time       `json:"start_date" binding:"required"`
	EndDate       time.Time       `json:"end_date" binding:"required"`
	Conditions    string          `json:"conditions" binding:"max=2000"`
	Notes         string          `json:"notes" binding:"max=2000"`
	RecordPayment bool            `json:"record_payment"`
	PaymentMethod string          `json:"payment_method" binding:"max=50"`
}

// RenewContractRequest represents a request to renew a contract
type RenewContractRequest struct {
	Price         decimal.Decimal `json:"price" binding:"required"`
	StartDate     time.Time       `json:"start_date" binding:"required"`
	EndDate       time.Time       `json:"end_date" binding:"required"`
	Conditions    string          `json:"conditions" binding:"max=2000"`
	RecordPayment bool            `json:"record_payment"`
	PaymentMethod string          `json:"payment_method" binding:"max=50"`
}

// UpdateContractRequest represents a partial contract update.
// Price and dates are accepted only so they can be rejected explicitly.
type UpdateContractRequest struct {
	Conditions *string          `json:"conditions"`
	Notes      *string          `json:"notes"`
	Price      *decimal.Decimal `json:"price"`
	StartDate  *time.Time       `json:"start_date"`
	EndDate    *time.Time       `json:"end_date"`
}

// CancelContractRequest represents a request to cancel a contract
type CancelContractRequest struct {
	Reason string `json:"reason" binding:"max=2000"`
}

// ContractListFilter defines filtering options for contract list queries
type ContractListFilter struct {
	ClientID *uuid.UUID `form:"-"`
	PlanID   *uuid.UUID `form:"-"`
	State    string     `form:"state"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
}

// ContractResponse represents a contract in API responses
type ContractResponse struct {
	ID                 uuid.UUID       `json:"id"`
	ClientID           uuid.UUID       `json:"client_id"`
	PlanID             uuid.UUID       `json:"plan_id"`
	Price              decimal.Decimal `json:"price"`
	StartDate          time.Time       `json:"start_date"`
	EndDate            time.Time       `json:"end_date"`
	State              string          `json:"state"`
	EffectiveState     string          `json:"effective_state"`
	IsExpired          bool            `json:"is_expired"`
	Conditions         string          `json:"conditions,omitempty"`
	Notes              string          `json:"notes,omitempty"`
	PreviousContractID *uuid.UUID      `json:"previous_contract_id,omitempty"`
	CancellationReason string          `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time      `json:"cancelled_at,omitempty"`
	RenewedAt          *time.Time      `json:"renewed_at,omitempty"`
	ExpiredAt          *time.Time      `json:"expired_at,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	Version            int             `json:"version"`
}

// CreateContractResult is returned by a successful create
type CreateContractResult struct {
	ContractID uuid.UUID  `json:"contract_id"`
	MovementID *uuid.UUID `json:"movement_id,omitempty"`
}

// RenewContractResult is returned by a successful renewal
type RenewContractResult struct {
	ContractID         uuid.UUID  `json:"contract_id"`
	PreviousContractID uuid.UUID  `json:"previous_contract_id"`
	MovementID         *uuid.UUID `json:"movement_id,omitempty"`
}

// CancelContractResult acknowledges a cancellation. Compensated is nil and
// Warning is set when tracking cleanup failed.
type CancelContractResult struct {
	Success     bool                 `json:"success"`
	ContractID  uuid.UUID            `json:"contract_id"`
	Compensated *CompensationResult  `json:"compensated,omitempty"`
	Warning     *CompensationWarning `json:"warning,omitempty"`
}

// ToContractResponse converts a domain Contract, evaluating expiry at now
func ToContractResponse(c *contract.Contract, now time.Time) ContractResponse {
	return ContractResponse{
		ID:                 c.ID,
		ClientID:           c.ClientID,
		PlanID:             c.PlanID,
		Price:              c.Price,
		StartDate:          c.StartDate,
		EndDate:            c.EndDate,
		State:              c.State.String(),
		EffectiveState:     c.EffectiveState(now).String(),
		IsExpired:          c.IsExpired(now),
		Conditions:         c.Conditions,
		Notes:              c.Notes,
		PreviousContractID: c.PreviousContractID,
		CancellationReason: c.CancellationReason,
		CancelledAt:        c.CancelledAt,
		RenewedAt:          c.RenewedAt,
		ExpiredAt:          c.ExpiredAt,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
		Version:            c.Version,
	}
}

func (f ContractListFilter) toShared() (shared.Filter, error) {
	filter := shared.DefaultFilter().WithPage(f.Page, f.PageSize)
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	if f.ClientID != nil {
		filter.Filters["client_id"] = *f.ClientID
	}
	if f.PlanID != nil {
		filter.Filters["plan_id"] = *f.PlanID
	}
	if f.State != "" {
		state, err := contract.ParseState(f.State)
		if err != nil {
			return filter, err
		}
		filter.Filters["state"] = state
	}
	return filter, nil
}
