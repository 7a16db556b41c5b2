package membership

import (
	"time"

	"github.com/google/uuid"
	appcontract "github.com/gym/backend/internal/application/contract"
	"github.com/gym/backend/internal/domain/client"
	"github.com/gym/backend/internal/domain/plan"
	"github.com/shopspring/decimal"
)

// CreateClientRequest represents a request to register a client
type CreateClientRequest struct {
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Email     string `json:"email" binding:"omitempty,email,max=200"`
	Phone     string `json:"phone" binding:"max=50"`
	Document  string `json:"document" binding:"max=50"`
	Notes     string `json:"notes" binding:"max=2000"`
}

// UpdateClientRequest replaces a client's profile fields
type UpdateClientRequest struct {
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Email     string `json:"email" binding:"omitempty,email,max=200"`
	Phone     string `json:"phone" binding:"max=50"`
	Document  string `json:"document" binding:"max=50"`
	Notes     string `json:"notes" binding:"max=2000"`
}

// ClientListFilter defines filtering options for client list queries
type ClientListFilter struct {
	Search   string `form:"search"`
	Active   *bool  `form:"active"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID        uuid.UUID   `json:"id"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	FullName  string      `json:"full_name"`
	Email     string      `json:"email,omitempty"`
	Phone     string      `json:"phone,omitempty"`
	Document  string      `json:"document,omitempty"`
	Notes     string      `json:"notes,omitempty"`
	Active    bool        `json:"active"`
	PlanIDs   []uuid.UUID `json:"plan_ids"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Version   int         `json:"version"`
}

// DeleteClientResult acknowledges a client deletion and its tracking cleanup
type DeleteClientResult struct {
	Success     bool                             `json:"success"`
	ClientID    uuid.UUID                        `json:"client_id"`
	Compensated *appcontract.CompensationResult  `json:"compensated,omitempty"`
	Warning     *appcontract.CompensationWarning `json:"warning,omitempty"`
}

// CreatePlanRequest represents a request to create a plan
type CreatePlanRequest struct {
	Name         string          `json:"name" binding:"required,max=200"`
	Description  string          `json:"description" binding:"max=2000"`
	DurationDays int             `json:"duration_days" binding:"min=0"`
	BasePrice    decimal.Decimal `json:"base_price"`
}

// UpdatePlanStateRequest switches a plan between active and inactive
type UpdatePlanStateRequest struct {
	State string `json:"state" binding:"required,oneof=active inactive"`
}

// PlanListFilter defines filtering options for plan list queries
type PlanListFilter struct {
	Search   string `form:"search"`
	State    string `form:"state" binding:"omitempty,oneof=active inactive"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// PlanResponse represents a plan in API responses
type PlanResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	DurationDays int             `json:"duration_days"`
	BasePrice    decimal.Decimal `json:"base_price"`
	State        string          `json:"state"`
	ClientIDs    []uuid.UUID     `json:"client_ids"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Version      int             `json:"version"`
}

// ToClientResponse converts a domain Client to a response
func ToClientResponse(c *client.Client) ClientResponse {
	planIDs := c.PlanIDs
	if planIDs == nil {
		planIDs = []uuid.UUID{}
	}
	return ClientResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		FullName:  c.FullName(),
		Email:     c.Email,
		Phone:     c.Phone,
		Document:  c.Document,
		Notes:     c.Notes,
		Active:    c.Active,
		PlanIDs:   planIDs,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Version:   c.Version,
	}
}

// ToPlanResponse converts a domain Plan to a response
func ToPlanResponse(p *plan.Plan) PlanResponse {
	clientIDs := p.ClientIDs
	if clientIDs == nil {
		clientIDs = []uuid.UUID{}
	}
	return PlanResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		DurationDays: p.DurationDays,
		BasePrice:    p.BasePrice,
		State:        string(p.State),
		ClientIDs:    clientIDs,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		Version:      p.Version,
	}
}
