package contract

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/gym/backend/internal/domain/client"
	"github.com/gym/backend/internal/domain/contract"
	"github.com/gym/backend/internal/domain/finance"
	"github.com/gym/backend/internal/domain/plan"
	"github.com/gym/backend/internal/domain/shared"
	"github.com/gym/backend/internal/infrastructure/logger"
	"github.com/gym/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// DefaultCompensationTimeout bounds the best-effort cleanup after cancellation
const DefaultCompensationTimeout = 10 * time.Second

// ServiceConfig holds tunables for ContractService
type ServiceConfig struct {
	CompensationTimeout time.Duration
	IncomeCategory      string
	RenewalCategory     string
}

// DefaultServiceConfig returns the default service configuration
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		CompensationTimeout: DefaultCompensationTimeout,
		IncomeCategory:      finance.CategoryMembership,
		RenewalCategory:     finance.CategoryRenewal,
	}
}

// ContractService is the contract lifecycle orchestrator. It validates
// preconditions against the store, runs the contract write together with the
// association and ledger writes as one atomic unit, and runs tracking
// compensation afterwards as a separate best-effort step.
type ContractService struct {
	scope          TransactionScope
	contractRepo   contract.ContractRepository
	clientRepo     client.ClientRepository
	planRepo       plan.PlanRepository
	associations   *AssociationManager
	ledger         *LedgerPoster
	compensator    Compensator
	eventPublisher shared.EventPublisher
	config         ServiceConfig
	logger         *zap.Logger
	now            func() time.Time
}

// NewContractService creates a new ContractService
func NewContractService(
	scope TransactionScope,
	contractRepo contract.ContractRepository,
	clientRepo client.ClientRepository,
	planRepo plan.PlanRepository,
	compensator Compensator,
	config ServiceConfig,
	logger *zap.Logger,
) *ContractService {
	if logger == nil {
		logger = zap.NewNop()
	}
	defaults := DefaultServiceConfig()
	if config.CompensationTimeout <= 0 {
		config.CompensationTimeout = defaults.CompensationTimeout
	}
	if config.IncomeCategory == "" {
		config.IncomeCategory = defaults.IncomeCategory
	}
	if config.RenewalCategory == "" {
		config.RenewalCategory = defaults.RenewalCategory
	}
	return &ContractService{
		scope:        scope,
		contractRepo: contractRepo,
		clientRepo:   clientRepo,
		planRepo:     planRepo,
		associations: NewAssociationManager(logger),
		ledger:       NewLedgerPoster(),
		compensator:  compensator,
		config:       config,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *ContractService) log(ctx context.Context) *zap.Logger {
	return logger.WithTraceContext(ctx, s.logger)
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ContractService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetClock overrides the time source
func (s *ContractService) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Create creates a vigente contract and links the client and plan.
// With RecordPayment an income movement for the price is appended in the same unit.
func (s *ContractService) Create(ctx context.Context, req CreateContractRequest) (*CreateContractResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "contract", "create",
		"client_id", req.ClientID,
		"plan_id", req.PlanID,
	)
	defer span.End()

	now := s.now().UTC()
	c, err := contract.NewContract(req.ClientID, req.PlanID, contract.Terms{
		StartDate:  req.StartDate.UTC(),
		EndDate:    req.EndDate.UTC(),
		Price:      req.Price,
		Conditions: req.Conditions,
	}, now)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	c.Notes = req.Notes

	if err := s.checkCreatePreconditions(ctx, c.ClientID, c.PlanID); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var movementID *uuid.UUID
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.ContractRepo().Create(ctx, c); err != nil {
			return err
		}
		if err := s.associations.Link(ctx, repos, c.ClientID, c.PlanID); err != nil {
			return err
		}
		if req.RecordPayment {
			m, err := s.ledger.PostIncome(ctx, repos.MovementRepo(), LedgerEntry{
				ClientID:    c.ClientID,
				ContractID:  c.ID,
				Amount:      c.Price,
				Date:        now,
				Category:    s.config.IncomeCategory,
				Description: "Payment for " + c.Describe(),
				Method:      req.PaymentMethod,
			})
			if err != nil {
				return err
			}
			movementID = &m.ID
		}
		return nil
	})
	if err != nil {
		s.log(ctx).Error("Failed to create contract",
			zap.String("client_id", c.ClientID.String()),
			zap.String("plan_id", c.PlanID.String()),
			zap.Error(err),
		)
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.publishDomainEvents(ctx, c)
	telemetry.SetAttributes(span, "contract_id", c.ID)
	s.log(ctx).Info("Contract created",
		zap.String("contract_id", c.ID.String()),
		zap.String("client_id", c.ClientID.String()),
		zap.String("plan_id", c.PlanID.String()),
		zap.String("price", c.Price.String()),
		zap.Bool("payment_recorded", movementID != nil),
	)

	return &CreateContractResult{ContractID: c.ID, MovementID: movementID}, nil
}

// checkCreatePreconditions verifies that the client exists, the plan exists
// and is active, and that no vigente contract already binds the pair.
func (s *ContractService) checkCreatePreconditions(ctx context.Context, clientID, planID uuid.UUID) error {
	if _, err := s.clientRepo.FindByID(ctx, clientID); err != nil {
		if shared.IsNotFound(err) {
			return shared.NewValidationError("client %s does not exist", clientID)
		}
		return err
	}

	p, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		if shared.IsNotFound(err) {
			return shared.NewValidationError("plan %s does not exist", planID)
		}
		return err
	}
	if !p.IsActive() {
		return shared.NewValidationError("plan %s is not active", planID)
	}

	exists, err := s.contractRepo.ExistsVigenteForPair(ctx, clientID, planID, uuid.Nil)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewConflictError("a vigente contract already exists for client %s and plan %s", clientID, planID)
	}
	return nil
}

// Get returns a contract by ID
func (s *ContractService) Get(ctx context.Context, id uuid.UUID) (*ContractResponse, error) {
	c, err := s.contractRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToContractResponse(c, s.now())
	return &resp, nil
}

// List returns a page of contracts matching the filter
func (s *ContractService) List(ctx context.Context, f ContractListFilter) (*shared.Paginated[ContractResponse], error) {
	filter, err := f.toShared()
	if err != nil {
		return nil, err
	}

	contracts, err := s.contractRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.contractRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := s.now()
	items := make([]ContractResponse, len(contracts))
	for i := range contracts {
		items[i] = ToContractResponse(&contracts[i], now)
	}
	page := shared.NewPaginated(items, total, filter.Skip/filter.Limit+1, filter.Limit)
	return &page, nil
}

// Update changes the conditions or notes of a vigente contract.
// Price and dates are fixed once persisted; changing them requires a renewal.
func (s *ContractService) Update(ctx context.Context, id uuid.UUID, req UpdateContractRequest) (*ContractResponse, error) {
	if req.Price != nil || req.StartDate != nil || req.EndDate != nil {
		return nil, shared.NewValidationError("price and dates cannot be changed; renew the contract instead")
	}

	c, err := s.contractRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.UpdateDetails(req.Conditions, req.Notes); err != nil {
		return nil, err
	}
	if err := s.contractRepo.SaveWithLock(ctx, c); err != nil {
		return nil, err
	}

	s.log(ctx).Info("Contract updated", zap.String("contract_id", c.ID.String()))
	resp := ToContractResponse(c, s.now())
	return &resp, nil
}

// Cancel moves a vigente or vencido contract to cancelado and unlinks the pair,
// then removes the contract's tracking records as best-effort compensation.
func (s *ContractService) Cancel(ctx context.Context, id uuid.UUID, reason string) (*CancelContractResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "contract", "cancel", "contract_id", id)
	defer span.End()

	c, err := s.contractRepo.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := c.Cancel(reason, s.now().UTC()); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.ContractRepo().SaveWithLock(ctx, c); err != nil {
			return err
		}
		// a vencido contract can be cancelled while a newer vigente one holds the pair
		stillBound, err := repos.ContractRepo().ExistsVigenteForPair(ctx, c.ClientID, c.PlanID, c.ID)
		if err != nil {
			return err
		}
		if stillBound {
			return nil
		}
		return s.associations.Unlink(ctx, repos, c.ClientID, c.PlanID)
	})
	if err != nil {
		s.log(ctx).Error("Failed to cancel contract",
			zap.String("contract_id", id.String()),
			zap.Error(err),
		)
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.publishDomainEvents(ctx, c)
	s.log(ctx).Info("Contract cancelled",
		zap.String("contract_id", c.ID.String()),
		zap.String("client_id", c.ClientID.String()),
		zap.String("plan_id", c.PlanID.String()),
		zap.String("reason", c.CancellationReason),
	)

	result := &CancelContractResult{Success: true, ContractID: c.ID}
	result.Compensated, result.Warning = s.compensateContract(ctx, c.ID, c.CancellationReason)
	if result.Compensated != nil {
		telemetry.SetAttributes(span, "deleted_count", result.Compensated.DeletedCount)
	}
	return result, nil
}

// compensateContract runs tracking cleanup detached from the caller's
// cancellation so a client disconnect cannot abort it halfway.
func (s *ContractService) compensateContract(ctx context.Context, contractID uuid.UUID, reason string) (*CompensationResult, *CompensationWarning) {
	if s.compensator == nil {
		return nil, nil
	}

	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.CompensationTimeout)
	defer cancel()

	res, err := s.compensator.DeleteByContract(cctx, contractID, reason)
	if err != nil {
		warning := NewCompensationWarning(CompensationScopeContract, contractID, reason, err)
		s.log(ctx).Warn("Tracking record compensation failed",
			zap.String("contract_id", contractID.String()),
			zap.Error(err),
		)
		return nil, warning
	}
	return res, nil
}

// Renew marks a vigente or vencido contract renovado and creates its vigente
// successor with the new terms, all in one atomic unit.
func (s *ContractService) Renew(ctx context.Context, id uuid.UUID, req RenewContractRequest) (*RenewContractResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "contract", "renew", "contract_id", id)
	defer span.End()

	now := s.now().UTC()
	old, err := s.contractRepo.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	next, err := old.Renew(contract.Terms{
		StartDate:  req.StartDate.UTC(),
		EndDate:    req.EndDate.UTC(),
		Price:      req.Price,
		Conditions: req.Conditions,
	}, now)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	exists, err := s.contractRepo.ExistsVigenteForPair(ctx, old.ClientID, old.PlanID, old.ID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if exists {
		err := shared.NewConflictError("another vigente contract already exists for client %s and plan %s", old.ClientID, old.PlanID)
		telemetry.RecordError(span, err)
		return nil, err
	}

	var movementID *uuid.UUID
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		// the old row must leave vigente before the successor takes the pair
		if err := repos.ContractRepo().SaveWithLock(ctx, old); err != nil {
			return err
		}
		if err := repos.ContractRepo().Create(ctx, next); err != nil {
			return err
		}
		if err := s.associations.Link(ctx, repos, next.ClientID, next.PlanID); err != nil {
			return err
		}
		if req.RecordPayment {
			m, err := s.ledger.PostIncome(ctx, repos.MovementRepo(), LedgerEntry{
				ClientID:    next.ClientID,
				ContractID:  next.ID,
				Amount:      next.Price,
				Date:        now,
				Category:    s.config.RenewalCategory,
				Description: "Renewal payment for " + next.Describe(),
				Method:      req.PaymentMethod,
			})
			if err != nil {
				return err
			}
			movementID = &m.ID
		}
		return nil
	})
	if err != nil {
		s.log(ctx).Error("Failed to renew contract",
			zap.String("contract_id", id.String()),
			zap.Error(err),
		)
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.publishDomainEvents(ctx, old, next)
	telemetry.SetAttributes(span, "new_contract_id", next.ID)
	s.log(ctx).Info("Contract renewed",
		zap.String("contract_id", old.ID.String()),
		zap.String("new_contract_id", next.ID.String()),
		zap.String("price", next.Price.String()),
		zap.Bool("payment_recorded", movementID != nil),
	)

	return &RenewContractResult{
		ContractID:         next.ID,
		PreviousContractID: old.ID,
		MovementID:         movementID,
	}, nil
}

// publishDomainEvents publishes and clears the pending events of each contract
func (s *ContractService) publishDomainEvents(ctx context.Context, contracts ...*contract.Contract) {
	publishContractEvents(ctx, s.eventPublisher, s.logger, contracts...)
}

func publishContractEvents(ctx context.Context, publisher shared.EventPublisher, logger *zap.Logger, contracts ...*contract.Contract) {
	for _, c := range contracts {
		events := c.PullDomainEvents()
		if publisher == nil || len(events) == 0 {
			continue
		}
		if err := publisher.Publish(ctx, events...); err != nil {
			logger.Warn("Failed to publish contract events",
				zap.String("contract_id", c.ID.String()),
				zap.Error(err),
			)
		}
	}
}
