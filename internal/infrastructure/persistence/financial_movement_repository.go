package persistence

import (
	"context"

	"github.com/gym/backend/internal/domain/finance"
	"github.com/gym/backend/internal/domain/shared"
	"github.com/gym/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

var movementSortable = map[string]bool{
	"date":       true,
	"amount":     true,
	"created_at": true,
}

// GormFinancialMovementRepository implements FinancialMovementRepository using GORM
type GormFinancialMovementRepository struct {
	db *gorm.DB
}

// NewGormFinancialMovementRepository creates a new GormFinancialMovementRepository
func NewGormFinancialMovementRepository(db *gorm.DB) *GormFinancialMovementRepository {
	return &GormFinancialMovementRepository{db: db}
}

// Create appends a movement
func (r *GormFinancialMovementRepository) Create(ctx context.Context, m *finance.FinancialMovement) error {
	return translateError(r.db.WithContext(ctx).Create(models.FinancialMovementModelFromDomain(m)).Error, "financial movement")
}

// FindAll finds movements matching the filter, newest first by default
func (r *GormFinancialMovementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.FinancialMovement, error) {
	var movementModels []models.FinancialMovementModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.FinancialMovementModel{}), filter)
	query = applyPaging(query, filter, movementSortable, "date DESC, id ASC")
	if err := query.Find(&movementModels).Error; err != nil {
		return nil, translateError(err, "financial movement")
	}

	movements := make([]finance.FinancialMovement, len(movementModels))
	for i := range movementModels {
		movements[i] = *movementModels[i].ToDomain()
	}
	return movements, nil
}

// Count counts movements matching the filter
func (r *GormFinancialMovementRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.FinancialMovementModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, translateError(err, "financial movement")
	}
	return count, nil
}

func (r *GormFinancialMovementRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "client_id":
			query = query.Where("client_id = ?", value)
		case "contract_id":
			query = query.Where("contract_id = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		case "category":
			query = query.Where("category = ?", value)
		case "from":
			query = query.Where("date >= ?", value)
		case "to":
			query = query.Where("date <= ?", value)
		}
	}
	return query
}

// Ensure GormFinancialMovementRepository implements FinancialMovementRepository
var _ finance.FinancialMovementRepository = (*GormFinancialMovementRepository)(nil)
