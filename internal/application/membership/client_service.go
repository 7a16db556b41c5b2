package membership

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	appcontract "github.com/gym/backend/internal/application/contract"
	"github.com/gym/backend/internal/domain/client"
	"github.com/gym/backend/internal/domain/contract"
	"github.com/gym/backend/internal/domain/shared"
	"github.com/gym/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

const clientCompensationTimeout = 10 * time.Second

// ClientService handles client registration, profile edits and deletion
type ClientService struct {
	clientRepo   client.ClientRepository
	contractRepo contract.ContractRepository
	compensator  appcontract.Compensator
	logger       *zap.Logger
}

// NewClientService creates a new ClientService
func NewClientService(
	clientRepo client.ClientRepository,
	contractRepo contract.ContractRepository,
	compensator appcontract.Compensator,
	logger *zap.Logger,
) *ClientService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClientService{
		clientRepo:   clientRepo,
		contractRepo: contractRepo,
		compensator:  compensator,
		logger:       logger,
	}
}

// Create registers a new client. Emails are unique when present.
func (s *ClientService) Create(ctx context.Context, req CreateClientRequest) (*ClientResponse, error) {
	c, err := client.NewClient(req.FirstName, req.LastName, req.Email, req.Phone)
	if err != nil {
		return nil, err
	}
	c.Document = strings.TrimSpace(req.Document)
	c.Notes = req.Notes

	if err := s.ensureEmailFree(ctx, c.Email); err != nil {
		return nil, err
	}
	if err := s.clientRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("Client created", zap.String("client_id", c.ID.String()))
	resp := ToClientResponse(c)
	return &resp, nil
}

// Get returns a client by ID
func (s *ClientService) Get(ctx context.Context, id uuid.UUID) (*ClientResponse, error) {
	c, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToClientResponse(c)
	return &resp, nil
}

// List returns a page of clients
func (s *ClientService) List(ctx context.Context, f ClientListFilter) (*shared.Paginated[ClientResponse], error) {
	filter := shared.DefaultFilter().WithPage(f.Page, f.PageSize)
	filter.Search = f.Search
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	if f.Active != nil {
		filter.Filters["active"] = *f.Active
	}

	clients, err := s.clientRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.clientRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ClientResponse, len(clients))
	for i := range clients {
		items[i] = ToClientResponse(&clients[i])
	}
	page := shared.NewPaginated(items, total, filter.Skip/filter.Limit+1, filter.Limit)
	return &page, nil
}

// Update replaces the client's profile fields
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	c, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email != c.Email {
		if err := s.ensureEmailFree(ctx, email); err != nil {
			return nil, err
		}
	}
	if err := c.UpdateProfile(req.FirstName, req.LastName, email, req.Phone, req.Document, req.Notes); err != nil {
		return nil, err
	}
	if err := s.clientRepo.SaveWithLock(ctx, c); err != nil {
		return nil, err
	}

	resp := ToClientResponse(c)
	return &resp, nil
}

// SetActive activates or deactivates a client
func (s *ClientService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*ClientResponse, error) {
	c, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Active == active {
		resp := ToClientResponse(c)
		return &resp, nil
	}

	if active {
		c.Activate()
	} else {
		c.Deactivate()
	}
	if err := s.clientRepo.SaveWithLock(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("Client activation changed",
		zap.String("client_id", c.ID.String()),
		zap.Bool("active", c.Active),
	)
	resp := ToClientResponse(c)
	return &resp, nil
}

// Delete removes a client that no longer owns plan references or open
// contracts, then removes the client's tracking records as best-effort cleanup.
func (s *ClientService) Delete(ctx context.Context, id uuid.UUID, reason string) (*DeleteClientResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "client", "delete", "client_id", id)
	defer span.End()

	c, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if c.OwnsPlans() {
		err := shared.NewConflictError("client %s still holds %d plan association(s)", id, len(c.PlanIDs))
		telemetry.RecordError(span, err)
		return nil, err
	}
	open, err := s.contractRepo.CountOpenByClient(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if open > 0 {
		err := shared.NewConflictError("client %s has %d vigente or vencido contract(s)", id, open)
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.clientRepo.Delete(ctx, id); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.logger.Info("Client deleted", zap.String("client_id", id.String()))

	result := &DeleteClientResult{Success: true, ClientID: id}
	if s.compensator == nil {
		return result, nil
	}

	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), clientCompensationTimeout)
	defer cancel()
	res, err := s.compensator.DeleteByClient(cctx, id, reason)
	if err != nil {
		result.Warning = appcontract.NewCompensationWarning(appcontract.CompensationScopeClient, id, reason, err)
		s.logger.Warn("Tracking record compensation failed",
			zap.String("client_id", id.String()),
			zap.Error(err),
		)
		return result, nil
	}
	result.Compensated = res
	return result, nil
}

func (s *ClientService) ensureEmailFree(ctx context.Context, email string) error {
	if email == "" {
		return nil
	}
	exists, err := s.clientRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewConflictError("a client with email %s already exists", email)
	}
	return nil
}
