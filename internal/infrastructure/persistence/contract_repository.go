package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/gym/backend/internal/domain/contract"
	"github.com/gym/backend/internal/domain/shared"
	"github.com/gym/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

var contractSortable = map[string]bool{
	"start_date": true,
	"end_date":   true,
	"created_at": true,
	"price":      true,
}

// GormContractRepository implements ContractRepository using GORM
type GormContractRepository struct {
	db *gorm.DB
}

// NewGormContractRepository creates a new GormContractRepository
func NewGormContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{db: db}
}

// FindByID finds a contract by its ID
func (r *GormContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*contract.Contract, error) {
	var model models.ContractModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "contract")
	}
	return model.ToDomain(), nil
}

// FindAll finds all contracts matching the filter
func (r *GormContractRepository) FindAll(ctx context.Context, filter shared.Filter) ([]contract.Contract, error) {
	var contractModels []models.ContractModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ContractModel{}), filter)
	query = applyPaging(query, filter, contractSortable, "created_at DESC, id ASC")
	if err := query.Find(&contractModels).Error; err != nil {
		return nil, translateError(err, "contract")
	}
	return toContracts(contractModels), nil
}

// Count counts contracts matching the filter
func (r *GormContractRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ContractModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, translateError(err, "contract")
	}
	return count, nil
}

// ExistsVigenteForPair checks for a vigente contract on the pair
func (r *GormContractRepository) ExistsVigenteForPair(ctx context.Context, clientID, planID, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.ContractModel{}).
		Where("client_id = ? AND plan_id = ? AND state = ?", clientID, planID, contract.StateVigente)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, translateError(err, "contract")
	}
	return count > 0, nil
}

// CountOpenByClient counts the client's vigente and vencido contracts
func (r *GormContractRepository) CountOpenByClient(ctx context.Context, clientID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ContractModel{}).
		Where("client_id = ? AND state IN ?", clientID, []contract.State{contract.StateVigente, contract.StateVencido}).
		Count(&count).Error; err != nil {
		return 0, translateError(err, "contract")
	}
	return count, nil
}

// FindExpirable returns vigente contracts whose end date is before now, oldest first
func (r *GormContractRepository) FindExpirable(ctx context.Context, now time.Time, limit int) ([]contract.Contract, error) {
	var contractModels []models.ContractModel
	query := r.db.WithContext(ctx).
		Where("state = ? AND end_date < ?", contract.StateVigente, now.UTC()).
		Order("end_date ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&contractModels).Error; err != nil {
		return nil, translateError(err, "contract")
	}
	return toContracts(contractModels), nil
}

// Create inserts a contract. The partial unique index rejects a second
// vigente contract for the same pair, surfaced as CONFLICT.
func (r *GormContractRepository) Create(ctx context.Context, c *contract.Contract) error {
	err := r.db.WithContext(ctx).Create(models.ContractModelFromDomain(c)).Error
	if err != nil && isDuplicateKey(err) {
		return &shared.DomainError{
			Code:    shared.CodeConflict,
			Message: "a vigente contract already exists for this client and plan",
			Cause:   err,
		}
	}
	return translateError(err, "contract")
}

// SaveWithLock updates every column of the contract if the stored version is Version-1
func (r *GormContractRepository) SaveWithLock(ctx context.Context, c *contract.Contract) error {
	model := models.ContractModelFromDomain(c)
	result := r.db.WithContext(ctx).
		Model(&models.ContractModel{}).
		Where("id = ? AND version = ?", c.ID, c.Version-1).
		Select("*").Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return translateError(result.Error, "contract")
	}
	if result.RowsAffected == 0 {
		return shared.NewConflictError("contract %s was modified by another transaction", c.ID)
	}
	return nil
}

func (r *GormContractRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "client_id":
			query = query.Where("client_id = ?", value)
		case "plan_id":
			query = query.Where("plan_id = ?", value)
		case "state":
			query = query.Where("state = ?", value)
		case "previous_contract_id":
			query = query.Where("previous_contract_id = ?", value)
		}
	}
	return query
}

func toContracts(contractModels []models.ContractModel) []contract.Contract {
	contracts := make([]contract.Contract, len(contractModels))
	for i := range contractModels {
		contracts[i] = *contractModels[i].ToDomain()
	}
	return contracts
}

// Ensure GormContractRepository implements ContractRepository
var _ contract.ContractRepository = (*GormContractRepository)(nil)
