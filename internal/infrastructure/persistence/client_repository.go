package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/gym/backend/internal/domain/client"
	"github.com/gym/backend/internal/domain/shared"
	"github.com/gym/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var clientSortable = map[string]bool{
	"first_name": true,
	"last_name":  true,
	"email":      true,
	"created_at": true,
}

// GormClientRepository implements ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByID finds a client by its ID
func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	return r.findByID(r.db.WithContext(ctx), id)
}

// FindByIDForUpdate reads the row with SELECT ... FOR UPDATE. SQLite ignores
// the locking clause; its single writer already serializes transactions.
func (r *GormClientRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	return r.findByID(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormClientRepository) findByID(query *gorm.DB, id uuid.UUID) (*client.Client, error) {
	var model models.ClientModel
	if err := query.First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "client")
	}
	c, err := model.ToDomain()
	if err != nil {
		return nil, shared.NewPersistenceError("decode client", err)
	}
	return c, nil
}

// FindAll finds all clients matching the filter
func (r *GormClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]client.Client, error) {
	var clientModels []models.ClientModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ClientModel{}), filter)
	query = applyPaging(query, filter, clientSortable, "last_name ASC, first_name ASC")
	if err := query.Find(&clientModels).Error; err != nil {
		return nil, translateError(err, "client")
	}

	clients := make([]client.Client, 0, len(clientModels))
	for i := range clientModels {
		c, err := clientModels[i].ToDomain()
		if err != nil {
			return nil, shared.NewPersistenceError("decode client", err)
		}
		clients = append(clients, *c)
	}
	return clients, nil
}

// Count counts clients matching the filter
func (r *GormClientRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ClientModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, translateError(err, "client")
	}
	return count, nil
}

// ExistsByEmail checks if any client uses the email
func (r *GormClientRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ClientModel{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, translateError(err, "client")
	}
	return count > 0, nil
}

// Create inserts a new client
func (r *GormClientRepository) Create(ctx context.Context, c *client.Client) error {
	model := models.ClientModelFromDomain(c)
	return translateError(r.db.WithContext(ctx).Create(model).Error, "client")
}

// SaveWithLock updates every column of the client if the stored version is
// Version-1. A stale version yields CONFLICT.
func (r *GormClientRepository) SaveWithLock(ctx context.Context, c *client.Client) error {
	model := models.ClientModelFromDomain(c)
	result := r.db.WithContext(ctx).
		Model(&models.ClientModel{}).
		Where("id = ? AND version = ?", c.ID, c.Version-1).
		Select("*").Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return translateError(result.Error, "client")
	}
	if result.RowsAffected == 0 {
		return shared.NewConflictError("client %s was modified by another transaction", c.ID)
	}
	return nil
}

// Delete deletes a client
func (r *GormClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ClientModel{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error, "client")
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("client", id)
	}
	return nil
}

func (r *GormClientRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?",
			pattern, pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "active":
			query = query.Where("active = ?", value)
		}
	}
	return query
}

// Ensure GormClientRepository implements ClientRepository
var _ client.ClientRepository = (*GormClientRepository)(nil)
