package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/gym/backend/internal/domain/shared"
	"github.com/gym/backend/internal/domain/tracking"
	"github.com/gym/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

var trackingSortable = map[string]bool{
	"date":       true,
	"created_at": true,
}

// GormTrackingRecordRepository implements RecordRepository using GORM
type GormTrackingRecordRepository struct {
	db *gorm.DB
}

// NewGormTrackingRecordRepository creates a new GormTrackingRecordRepository
func NewGormTrackingRecordRepository(db *gorm.DB) *GormTrackingRecordRepository {
	return &GormTrackingRecordRepository{db: db}
}

// Create inserts a record
func (r *GormTrackingRecordRepository) Create(ctx context.Context, rec *tracking.Record) error {
	return translateError(r.db.WithContext(ctx).Create(models.TrackingRecordModelFromDomain(rec)).Error, "tracking record")
}

// FindAll finds records matching the filter, newest first by default
func (r *GormTrackingRecordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tracking.Record, error) {
	var recordModels []models.TrackingRecordModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.TrackingRecordModel{}), filter)
	query = applyPaging(query, filter, trackingSortable, "date DESC, id ASC")
	if err := query.Find(&recordModels).Error; err != nil {
		return nil, translateError(err, "tracking record")
	}

	records := make([]tracking.Record, len(recordModels))
	for i := range recordModels {
		records[i] = *recordModels[i].ToDomain()
	}
	return records, nil
}

// Count counts records matching the filter
func (r *GormTrackingRecordRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.TrackingRecordModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, translateError(err, "tracking record")
	}
	return count, nil
}

// CountByContract counts records tied to a contract
func (r *GormTrackingRecordRepository) CountByContract(ctx context.Context, contractID uuid.UUID) (int64, error) {
	return r.countWhere(ctx, "contract_id = ?", contractID)
}

// CountByClient counts records belonging to a client
func (r *GormTrackingRecordRepository) CountByClient(ctx context.Context, clientID uuid.UUID) (int64, error) {
	return r.countWhere(ctx, "client_id = ?", clientID)
}

// DeleteByContract removes every record tied to a contract in one statement
func (r *GormTrackingRecordRepository) DeleteByContract(ctx context.Context, contractID uuid.UUID) (int64, error) {
	return r.deleteWhere(ctx, "contract_id = ?", contractID)
}

// DeleteByClient removes every record belonging to a client in one statement
func (r *GormTrackingRecordRepository) DeleteByClient(ctx context.Context, clientID uuid.UUID) (int64, error) {
	return r.deleteWhere(ctx, "client_id = ?", clientID)
}

func (r *GormTrackingRecordRepository) countWhere(ctx context.Context, cond string, arg any) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.TrackingRecordModel{}).
		Where(cond, arg).
		Count(&count).Error; err != nil {
		return 0, translateError(err, "tracking record")
	}
	return count, nil
}

func (r *GormTrackingRecordRepository) deleteWhere(ctx context.Context, cond string, arg any) (int64, error) {
	result := r.db.WithContext(ctx).Where(cond, arg).Delete(&models.TrackingRecordModel{})
	if result.Error != nil {
		return 0, translateError(result.Error, "tracking record")
	}
	return result.RowsAffected, nil
}

func (r *GormTrackingRecordRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "client_id":
			query = query.Where("client_id = ?", value)
		case "contract_id":
			query = query.Where("contract_id = ?", value)
		}
	}
	return query
}

// Ensure GormTrackingRecordRepository implements RecordRepository
var _ tracking.RecordRepository = (*GormTrackingRecordRepository)(nil)
