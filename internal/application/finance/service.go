package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	appcontract "github.com/gym/backend/internal/application/contract"
	"github.com/gym/backend/internal/domain/finance"
	"github.com/gym/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PostMovementRequest represents a manually entered ledger movement
type PostMovementRequest struct {
	Type        string          `json:"type" binding:"required,oneof=income expense"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Date        time.Time       `json:"date"`
	Category    string          `json:"category" binding:"required,max=100"`
	Description string          `json:"description" binding:"max=500"`
	Method      string          `json:"method" binding:"max=50"`
	ClientID    *uuid.UUID      `json:"client_id"`
}

// MovementListFilter defines filtering options for movement list queries
type MovementListFilter struct {
	ClientID   *uuid.UUID `form:"-"`
	ContractID *uuid.UUID `form:"-"`
	Type       string     `form:"type" binding:"omitempty,oneof=income expense"`
	Category   string     `form:"category"`
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
}

// MovementResponse represents a financial movement in API responses
type MovementResponse struct {
	ID          uuid.UUID       `json:"id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	ClientID    *uuid.UUID      `json:"client_id,omitempty"`
	ContractID  *uuid.UUID      `json:"contract_id,omitempty"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Method      string          `json:"method,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// MovementPage is a page of movements plus the signed total of that page
type MovementPage struct {
	shared.Paginated[MovementResponse]
	PageBalance decimal.Decimal `json:"page_balance"`
}

// Service lists ledger movements and records manual ones
type Service struct {
	movementRepo finance.FinancialMovementRepository
	ledger       *appcontract.LedgerPoster
	logger       *zap.Logger
	now          func() time.Time
}

// NewService creates a new finance Service
func NewService(movementRepo finance.FinancialMovementRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		movementRepo: movementRepo,
		ledger:       appcontract.NewLedgerPoster(),
		logger:       logger,
		now:          time.Now,
	}
}

// Post appends a manual income or expense movement. A zero date means now.
func (s *Service) Post(ctx context.Context, req PostMovementRequest) (*MovementResponse, error) {
	date := req.Date
	if date.IsZero() {
		date = s.now()
	}
	entry := appcontract.LedgerEntry{
		Amount:      req.Amount,
		Date:        date,
		Category:    req.Category,
		Description: req.Description,
		Method:      req.Method,
	}
	if req.ClientID != nil {
		entry.ClientID = *req.ClientID
	}

	var (
		m   *finance.FinancialMovement
		err error
	)
	switch finance.MovementType(req.Type) {
	case finance.MovementTypeIncome:
		m, err = s.ledger.PostIncome(ctx, s.movementRepo, entry)
	case finance.MovementTypeExpense:
		m, err = s.ledger.PostExpense(ctx, s.movementRepo, entry)
	default:
		return nil, shared.NewValidationError("invalid movement type %q", req.Type)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("Financial movement posted",
		zap.String("movement_id", m.ID.String()),
		zap.String("type", string(m.Type)),
		zap.String("amount", m.Amount.String()),
	)
	resp := toMovementResponse(m)
	return &resp, nil
}

// List returns a page of movements, newest first
func (s *Service) List(ctx context.Context, f MovementListFilter) (*MovementPage, error) {
	filter := shared.DefaultFilter().WithPage(f.Page, f.PageSize)
	filter.OrderBy = "date"
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	if f.ClientID != nil {
		filter.Filters["client_id"] = *f.ClientID
	}
	if f.ContractID != nil {
		filter.Filters["contract_id"] = *f.ContractID
	}
	if f.Type != "" {
		t := finance.MovementType(f.Type)
		if !t.IsValid() {
			return nil, shared.NewValidationError("invalid movement type %q", f.Type)
		}
		filter.Filters["type"] = t
	}
	if f.Category != "" {
		filter.Filters["category"] = f.Category
	}
	if f.From != nil {
		filter.Filters["from"] = f.From.UTC()
	}
	if f.To != nil {
		filter.Filters["to"] = f.To.UTC()
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return nil, shared.NewValidationError("to date must not be before from date")
	}

	movements, err := s.movementRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.movementRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	balance := decimal.Zero
	items := make([]MovementResponse, len(movements))
	for i := range movements {
		items[i] = toMovementResponse(&movements[i])
		balance = balance.Add(movements[i].SignedAmount())
	}
	return &MovementPage{
		Paginated:   shared.NewPaginated(items, total, filter.Skip/filter.Limit+1, filter.Limit),
		PageBalance: balance,
	}, nil
}

func toMovementResponse(m *finance.FinancialMovement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		Type:        string(m.Type),
		Amount:      m.Amount,
		Date:        m.Date,
		ClientID:    m.ClientID,
		ContractID:  m.ContractID,
		Category:    m.Category,
		Description: m.Description,
		Method:      m.Method,
		CreatedAt:   m.CreatedAt,
	}
}
