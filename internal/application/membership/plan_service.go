package membership

import (
	"context"

	"github.com/google/uuid"
	"github.com/gym/backend/internal/domain/plan"
	"github.com/gym/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PlanService handles training plan management
type PlanService struct {
	planRepo plan.PlanRepository
	logger   *zap.Logger
}

// NewPlanService creates a new PlanService
func NewPlanService(planRepo plan.PlanRepository, logger *zap.Logger) *PlanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanService{planRepo: planRepo, logger: logger}
}

// Create creates an active plan
func (s *PlanService) Create(ctx context.Context, req CreatePlanRequest) (*PlanResponse, error) {
	p, err := plan.NewPlan(req.Name, req.Description, req.DurationDays, req.BasePrice)
	if err != nil {
		return nil, err
	}
	if err := s.planRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("Plan created", zap.String("plan_id", p.ID.String()), zap.String("name", p.Name))
	resp := ToPlanResponse(p)
	return &resp, nil
}

// Get returns a plan by ID
func (s *PlanService) Get(ctx context.Context, id uuid.UUID) (*PlanResponse, error) {
	p, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToPlanResponse(p)
	return &resp, nil
}

// List returns a page of plans
func (s *PlanService) List(ctx context.Context, f PlanListFilter) (*shared.Paginated[PlanResponse], error) {
	filter := shared.DefaultFilter().WithPage(f.Page, f.PageSize)
	filter.Search = f.Search
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	if f.State != "" {
		state := plan.State(f.State)
		if !state.IsValid() {
			return nil, shared.NewValidationError("invalid plan state %q", f.State)
		}
		filter.Filters["state"] = state
	}

	plans, err := s.planRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.planRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]PlanResponse, len(plans))
	for i := range plans {
		items[i] = ToPlanResponse(&plans[i])
	}
	page := shared.NewPaginated(items, total, filter.Skip/filter.Limit+1, filter.Limit)
	return &page, nil
}

// SetState activates or deactivates a plan. Deactivation blocks new contracts
// but leaves existing ones and their associations untouched.
func (s *PlanService) SetState(ctx context.Context, id uuid.UUID, req UpdatePlanStateRequest) (*PlanResponse, error) {
	p, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := p.Version
	if err := p.SetState(plan.State(req.State)); err != nil {
		return nil, err
	}
	if p.Version != before {
		if err := s.planRepo.SaveWithLock(ctx, p); err != nil {
			return nil, err
		}
		s.logger.Info("Plan state changed",
			zap.String("plan_id", p.ID.String()),
			zap.String("state", string(p.State)),
		)
	}

	resp := ToPlanResponse(p)
	return &resp, nil
}
