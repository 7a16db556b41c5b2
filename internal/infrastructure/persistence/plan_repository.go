package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/gym/backend/internal/domain/plan"
	"github.com/gym/backend/internal/domain/shared"
	"github.com/gym/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var planSortable = map[string]bool{
	"name":       true,
	"base_price": true,
	"created_at": true,
}

// GormPlanRepository implements PlanRepository using GORM
type GormPlanRepository struct {
	db *gorm.DB
}

// NewGormPlanRepository creates a new GormPlanRepository
func NewGormPlanRepository(db *gorm.DB) *GormPlanRepository {
	return &GormPlanRepository{db: db}
}

// FindByID finds a plan by its ID
func (r *GormPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*plan.Plan, error) {
	return r.findByID(r.db.WithContext(ctx), id)
}

// FindByIDForUpdate reads the row with SELECT ... FOR UPDATE. SQLite ignores
// the locking clause; its single writer already serializes transactions.
func (r *GormPlanRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*plan.Plan, error) {
	return r.findByID(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormPlanRepository) findByID(query *gorm.DB, id uuid.UUID) (*plan.Plan, error) {
	var model models.PlanModel
	if err := query.First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "plan")
	}
	p, err := model.ToDomain()
	if err != nil {
		return nil, shared.NewPersistenceError("decode plan", err)
	}
	return p, nil
}

// FindAll finds all plans matching the filter
func (r *GormPlanRepository) FindAll(ctx context.Context, filter shared.Filter) ([]plan.Plan, error) {
	var planModels []models.PlanModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PlanModel{}), filter)
	query = applyPaging(query, filter, planSortable, "name ASC")
	if err := query.Find(&planModels).Error; err != nil {
		return nil, translateError(err, "plan")
	}

	plans := make([]plan.Plan, 0, len(planModels))
	for i := range planModels {
		p, err := planModels[i].ToDomain()
		if err != nil {
			return nil, shared.NewPersistenceError("decode plan", err)
		}
		plans = append(plans, *p)
	}
	return plans, nil
}

// Count counts plans matching the filter
func (r *GormPlanRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PlanModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, translateError(err, "plan")
	}
	return count, nil
}

// Create inserts a new plan
func (r *GormPlanRepository) Create(ctx context.Context, p *plan.Plan) error {
	return translateError(r.db.WithContext(ctx).Create(models.PlanModelFromDomain(p)).Error, "plan")
}

// SaveWithLock updates every column of the plan if the stored version is Version-1
func (r *GormPlanRepository) SaveWithLock(ctx context.Context, p *plan.Plan) error {
	model := models.PlanModelFromDomain(p)
	result := r.db.WithContext(ctx).
		Model(&models.PlanModel{}).
		Where("id = ? AND version = ?", p.ID, p.Version-1).
		Select("*").Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return translateError(result.Error, "plan")
	}
	if result.RowsAffected == 0 {
		return shared.NewConflictError("plan %s was modified by another transaction", p.ID)
	}
	return nil
}

func (r *GormPlanRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", likePattern(filter.Search))
	}
	for key, value := range filter.Filters {
		switch key {
		case "state":
			query = query.Where("state = ?", value)
		}
	}
	return query
}

// Ensure GormPlanRepository implements PlanRepository
var _ plan.PlanRepository = (*GormPlanRepository)(nil)
