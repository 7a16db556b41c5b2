package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appcontract "github.com/gym/backend/internal/application/contract"
	"github.com/gym/backend/internal/application/membership"
	"github.com/gym/backend/internal/domain/shared"
	"github.com/gym/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) Create(ctx context.Context, req membership.CreateClientRequest) (*membership.ClientResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*membership.ClientResponse), args.Error(1)
}

func (m *MockClientService) Get(ctx context.Context, id uuid.UUID) (*membership.ClientResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*membership.ClientResponse), args.Error(1)
}

func (m *MockClientService) List(ctx context.Context, f membership.ClientListFilter) (*shared.Paginated[membership.ClientResponse], error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[membership.ClientResponse]), args.Error(1)
}

func (m *MockClientService) Update(ctx context.Context, id uuid.UUID, req membership.UpdateClientRequest) (*membership.ClientResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*membership.ClientResponse), args.Error(1)
}

func (m *MockClientService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*membership.ClientResponse, error) {
	args := m.Called(ctx, id, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*membership.ClientResponse), args.Error(1)
}

func (m *MockClientService) Delete(ctx context.Context, id uuid.UUID, reason string) (*membership.DeleteClientResult, error) {
	args := m.Called(ctx, id, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*membership.DeleteClientResult), args.Error(1)
}

type MockPlanService struct {
	mock.Mock
}

func (m *MockPlanService) Create(ctx context.Context, req membership.CreatePlanRequest) (*membership.PlanResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*membership.PlanResponse), args.Error(1)
}

func (m *MockPlanService) Get(ctx context.Context, id uuid.UUID) (*membership.PlanResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*membership.PlanResponse), args.Error(1)
}

func (m *MockPlanService) List(ctx context.Context, f membership.PlanListFilter) (*shared.Paginated[membership.PlanResponse], error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[membership.PlanResponse]), args.Error(1)
}

func (m *MockPlanService) SetState(ctx context.Context, id uuid.UUID, req membership.UpdatePlanStateRequest) (*membership.PlanResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*membership.PlanResponse), args.Error(1)
}

func clientRoutes(h *ClientHandler) func(r *gin.Engine) {
	return func(r *gin.Engine) {
		r.POST("/clients", h.Create)
		r.GET("/clients", h.List)
		r.GET("/clients/:id", h.Get)
		r.PUT("/clients/:id", h.Update)
		r.DELETE("/clients/:id", h.Delete)
		r.POST("/clients/:id/activate", h.Activate)
		r.POST("/clients/:id/deactivate", h.Deactivate)
	}
}

func planRoutes(h *PlanHandler) func(r *gin.Engine) {
	return func(r *gin.Engine) {
		r.POST("/plans", h.Create)
		r.GET("/plans", h.List)
		r.GET("/plans/:id", h.Get)
		r.PUT("/plans/:id/state", h.SetState)
	}
}

func TestClientHandler_Create(t *testing.T) {
	svc := new(MockClientService)
	h := NewClientHandler(svc)
	id := uuid.New()

	svc.On("Create", mock.Anything, membership.CreateClientRequest{
		FirstName: "Ana",
		LastName:  "Gomez",
		Email:     "ana@example.com",
	}).Return(&membership.ClientResponse{ID: id, FullName: "Ana Gomez", Active: true}, nil)

	w := performRequest(clientRoutes(h), http.MethodPost, "/clients", map[string]any{
		"first_name": "Ana",
		"last_name":  "Gomez",
		"email":      "ana@example.com",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, id.String(), data["id"])
	svc.AssertExpectations(t)
}

func TestClientHandler_CreateInvalidEmail(t *testing.T) {
	svc := new(MockClientService)
	h := NewClientHandler(svc)

	w := performRequest(clientRoutes(h), http.MethodPost, "/clients", map[string]any{
		"first_name": "Ana",
		"last_name":  "Gomez",
		"email":      "not-an-email",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	require.NotEmpty(t, resp.Error.Details)
	assert.Equal(t, "email", resp.Error.Details[0].Field)
}

func TestClientHandler_ListActiveFilter(t *testing.T) {
	svc := new(MockClientService)
	h := NewClientHandler(svc)

	page := shared.NewPaginated([]membership.ClientResponse{}, 0, 1, 20)
	svc.On("List", mock.Anything, mock.MatchedBy(func(f membership.ClientListFilter) bool {
		return f.Active != nil && !*f.Active && f.Search == "go"
	})).Return(&page, nil)

	w := performRequest(clientRoutes(h), http.MethodGet, "/clients?active=false&search=go", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestClientHandler_ActivateDeactivate(t *testing.T) {
	svc := new(MockClientService)
	h := NewClientHandler(svc)
	id := uuid.New()

	svc.On("SetActive", mock.Anything, id, true).Return(&membership.ClientResponse{ID: id, Active: true}, nil)
	svc.On("SetActive", mock.Anything, id, false).Return(&membership.ClientResponse{ID: id, Active: false}, nil)

	w := performRequest(clientRoutes(h), http.MethodPost, "/clients/"+id.String()+"/activate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeResponse(t, w).Data.(map[string]any)["active"])

	w = performRequest(clientRoutes(h), http.MethodPost, "/clients/"+id.String()+"/deactivate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeResponse(t, w).Data.(map[string]any)["active"])
	svc.AssertExpectations(t)
}

func TestClientHandler_Update(t *testing.T) {
	svc := new(MockClientService)
	h := NewClientHandler(svc)
	id := uuid.New()

	svc.On("Update", mock.Anything, id, mock.Anything).Return(nil, shared.NewConflictError("email already in use"))

	w := performRequest(clientRoutes(h), http.MethodPut, "/clients/"+id.String(), map[string]any{
		"first_name": "Ana",
		"last_name":  "Gomez",
		"email":      "taken@example.com",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestClientHandler_Delete(t *testing.T) {
	svc := new(MockClientService)
	h := NewClientHandler(svc)
	id := uuid.New()

	svc.On("Delete", mock.Anything, id, "gdpr").Return(&membership.DeleteClientResult{
		Success:     true,
		ClientID:    id,
		Compensated: &appcontract.CompensationResult{DeletedCount: 2},
	}, nil)

	w := performRequest(clientRoutes(h), http.MethodDelete, "/clients/"+id.String()+"?reason=gdpr", nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, true, data["success"])
	svc.AssertExpectations(t)
}

func TestClientHandler_DeleteWithOpenContract(t *testing.T) {
	svc := new(MockClientService)
	h := NewClientHandler(svc)
	id := uuid.New()

	svc.On("Delete", mock.Anything, id, "").Return(nil, shared.NewConflictError("client has open contracts"))

	w := performRequest(clientRoutes(h), http.MethodDelete, "/clients/"+id.String(), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPlanHandler_Create(t *testing.T) {
	svc := new(MockPlanService)
	h := NewPlanHandler(svc)
	id := uuid.New()

	svc.On("Create", mock.Anything, mock.MatchedBy(func(req membership.CreatePlanRequest) bool {
		return req.Name == "Monthly" && req.DurationDays == 30
	})).Return(&membership.PlanResponse{ID: id, Name: "Monthly", State: "active"}, nil)

	w := performRequest(planRoutes(h), http.MethodPost, "/plans", map[string]any{
		"name":          "Monthly",
		"duration_days": 30,
		"base_price":    "50",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestPlanHandler_CreateMissingName(t *testing.T) {
	svc := new(MockPlanService)
	h := NewPlanHandler(svc)

	w := performRequest(planRoutes(h), http.MethodPost, "/plans", map[string]any{"duration_days": 30})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPlanHandler_SetState(t *testing.T) {
	svc := new(MockPlanService)
	h := NewPlanHandler(svc)
	id := uuid.New()

	svc.On("SetState", mock.Anything, id, membership.UpdatePlanStateRequest{State: "inactive"}).
		Return(&membership.PlanResponse{ID: id, State: "inactive"}, nil)

	w := performRequest(planRoutes(h), http.MethodPut, "/plans/"+id.String()+"/state", map[string]any{"state": "inactive"})
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(planRoutes(h), http.MethodPut, "/plans/"+id.String()+"/state", map[string]any{"state": "archived"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNumberOfCalls(t, "SetState", 1)
}

func TestPlanHandler_GetAndList(t *testing.T) {
	svc := new(MockPlanService)
	h := NewPlanHandler(svc)
	id := uuid.New()

	svc.On("Get", mock.Anything, id).Return(&membership.PlanResponse{ID: id, Name: "Yearly"}, nil)
	page := shared.NewPaginated([]membership.PlanResponse{{ID: id}}, 1, 1, 20)
	svc.On("List", mock.Anything, mock.MatchedBy(func(f membership.PlanListFilter) bool {
		return f.State == "active"
	})).Return(&page, nil)

	w := performRequest(planRoutes(h), http.MethodGet, "/plans/"+id.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(planRoutes(h), http.MethodGet, "/plans?state=active", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), decodeResponse(t, w).Meta.Total)

	w = performRequest(planRoutes(h), http.MethodGet, "/plans?state=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
