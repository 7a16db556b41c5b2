package tracking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/gym/backend/internal/domain/client"
	"github.com/gym/backend/internal/domain/contract"
	"github.com/gym/backend/internal/domain/shared"
	"github.com/gym/backend/internal/domain/tracking"
	"go.uber.org/zap"
)

// CreateRecordRequest represents a request to add a tracking record
type CreateRecordRequest struct {
	ClientID     uuid.UUID      `json:"client_id" binding:"required"`
	ContractID   *uuid.UUID     `json:"contract_id"`
	Date         time.Time      `json:"date" binding:"required"`
	Measurements map[string]any `json:"measurements"`
	Notes        string         `json:"notes" binding:"max=2000"`
}

// RecordListFilter defines filtering options for tracking record queries
type RecordListFilter struct {
	ClientID   *uuid.UUID `form:"-"`
	ContractID *uuid.UUID `form:"-"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
}

// RecordResponse represents a tracking record in API responses
type RecordResponse struct {
	ID           uuid.UUID      `json:"id"`
	ClientID     uuid.UUID      `json:"client_id"`
	ContractID   *uuid.UUID     `json:"contract_id,omitempty"`
	Date         time.Time      `json:"date"`
	Measurements map[string]any `json:"measurements"`
	Notes        string         `json:"notes,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// Service manages client progress records
type Service struct {
	recordRepo   tracking.RecordRepository
	clientRepo   client.ClientRepository
	contractRepo contract.ContractRepository
	logger       *zap.Logger
}

// NewService creates a new tracking Service
func NewService(
	recordRepo tracking.RecordRepository,
	clientRepo client.ClientRepository,
	contractRepo contract.ContractRepository,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		recordRepo:   recordRepo,
		clientRepo:   clientRepo,
		contractRepo: contractRepo,
		logger:       logger,
	}
}

// Create adds a record for an existing client. When a contract is given it
// must belong to that client.
func (s *Service) Create(ctx context.Context, req CreateRecordRequest) (*RecordResponse, error) {
	if _, err := s.clientRepo.FindByID(ctx, req.ClientID); err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewValidationError("client %s does not exist", req.ClientID)
		}
		return nil, err
	}

	if req.ContractID != nil && *req.ContractID != uuid.Nil {
		c, err := s.contractRepo.FindByID(ctx, *req.ContractID)
		if err != nil {
			if shared.IsNotFound(err) {
				return nil, shared.NewValidationError("contract %s does not exist", *req.ContractID)
			}
			return nil, err
		}
		if c.ClientID != req.ClientID {
			return nil, shared.NewValidationError("contract %s does not belong to client %s", c.ID, req.ClientID)
		}
	}

	rec, err := tracking.NewRecord(req.ClientID, req.ContractID, req.Date.UTC(), req.Measurements, req.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.recordRepo.Create(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.Debug("Tracking record created",
		zap.String("record_id", rec.ID.String()),
		zap.String("client_id", rec.ClientID.String()),
	)
	resp := toRecordResponse(rec)
	return &resp, nil
}

// List returns a page of tracking records, newest first
func (s *Service) List(ctx context.Context, f RecordListFilter) (*shared.Paginated[RecordResponse], error) {
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

	records, err := s.recordRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.recordRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]RecordResponse, len(records))
	for i := range records {
		items[i] = toRecordResponse(&records[i])
	}
	page := shared.NewPaginated(items, total, filter.Skip/filter.Limit+1, filter.Limit)
	return &page, nil
}

func toRecordResponse(r *tracking.Record) RecordResponse {
	return RecordResponse{
		ID:           r.ID,
		ClientID:     r.ClientID,
		ContractID:   r.ContractID,
		Date:         r.Date,
		Measurements: r.Measurements,
		Notes:        r.Notes,
		CreatedAt:    r.CreatedAt,
	}
}
