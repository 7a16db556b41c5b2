package contract

import (
	"context"
	"time"

	"github.com/gym/backend/internal/domain/contract"
	"github.com/gym/backend/internal/domain/shared"
	"github.com/gym/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// DefaultExpiryBatchSize caps how many contracts one sweep moves to vencido
const DefaultExpiryBatchSize = 200

// ExpirationService moves overdue vigente contracts to vencido.
// Each contract is expired in its own atomic unit; the client/plan association is kept.
type ExpirationService struct {
	scope          TransactionScope
	contractRepo   contract.ContractRepository
	eventPublisher shared.EventPublisher
	batchSize      int
	logger         *zap.Logger
}

// NewExpirationService creates a new ExpirationService
func NewExpirationService(
	scope TransactionScope,
	contractRepo contract.ContractRepository,
	batchSize int,
	logger *zap.Logger,
) *ExpirationService {
	if batchSize <= 0 {
		batchSize = DefaultExpiryBatchSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExpirationService{
		scope:        scope,
		contractRepo: contractRepo,
		batchSize:    batchSize,
		logger:       logger,
	}
}

func (s *ExpirationService) log(ctx context.Context) *zap.Logger {
	return logger.WithTraceContext(ctx, s.logger)
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ExpirationService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// ExpirationStats contains statistics about one expiry sweep
type ExpirationStats struct {
	Found       int       `json:"found"`
	Expired     int       `json:"expired"`
	Failed      int       `json:"failed"`
	ProcessedAt time.Time `json:"processed_at"`
}

// ExpireDue expires up to one batch of contracts whose end date is before now.
// Per-contract failures are logged and counted; only the lookup failing returns an error.
func (s *ExpirationService) ExpireDue(ctx context.Context, now time.Time) (*ExpirationStats, error) {
	now = now.UTC()
	stats := &ExpirationStats{ProcessedAt: now}

	due, err := s.contractRepo.FindExpirable(ctx, now, s.batchSize)
	if err != nil {
		s.log(ctx).Error("Failed to find expirable contracts", zap.Error(err))
		return nil, err
	}
	stats.Found = len(due)
	if stats.Found == 0 {
		s.log(ctx).Debug("No expirable contracts found")
		return stats, nil
	}

	for i := range due {
		c := &due[i]
		if err := s.expire(ctx, c, now); err != nil {
			stats.Failed++
			s.log(ctx).Warn("Failed to expire contract",
				zap.String("contract_id", c.ID.String()),
				zap.Time("end_date", c.EndDate),
				zap.Error(err),
			)
			continue
		}
		stats.Expired++
		publishContractEvents(ctx, s.eventPublisher, s.logger, c)
	}

	s.log(ctx).Info("Contract expiry sweep completed",
		zap.Int("found", stats.Found),
		zap.Int("expired", stats.Expired),
		zap.Int("failed", stats.Failed),
	)
	return stats, nil
}

func (s *ExpirationService) expire(ctx context.Context, c *contract.Contract, now time.Time) error {
	if err := c.Expire(now); err != nil {
		return err
	}
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		return repos.ContractRepo().SaveWithLock(ctx, c)
	})
}
