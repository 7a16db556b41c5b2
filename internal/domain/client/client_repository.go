package client

import (
	"context"

	"github.com/google/uuid"
	"github.com/gym/backend/internal/domain/shared"
)

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	// FindByID returns NOT_FOUND when the client does not exist
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)

	// FindByIDForUpdate is FindByID holding a row lock until the surrounding
	// transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Client, error)

	// FindAll finds clients matching the filter ("active", "search")
	FindAll(ctx context.Context, filter shared.Filter) ([]Client, error)

	// Count counts clients matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByEmail checks for another client using the same email
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Create inserts a new client
	Create(ctx context.Context, client *Client) error

	// SaveWithLock updates a client only if its stored version is Version-1
	SaveWithLock(ctx context.Context, client *Client) error

	// Delete removes a client
	Delete(ctx context.Context, id uuid.UUID) error
}
