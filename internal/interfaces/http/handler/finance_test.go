package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appfinance "github.com/gym/backend/internal/application/finance"
	"github.com/gym/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFinanceService struct {
	mock.Mock
}

func (m *MockFinanceService) Post(ctx context.Context, req appfinance.PostMovementRequest) (*appfinance.MovementResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appfinance.MovementResponse), args.Error(1)
}

func (m *MockFinanceService) List(ctx context.Context, f appfinance.MovementListFilter) (*appfinance.MovementPage, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appfinance.MovementPage), args.Error(1)
}

func financeRoutes(h *FinanceHandler) func(r *gin.Engine) {
	return func(r *gin.Engine) {
		r.GET("/finance/movements", h.ListMovements)
		r.POST("/finance/movements", h.PostMovement)
	}
}

func TestFinanceHandler_ListMovements(t *testing.T) {
	svc := new(MockFinanceService)
	h := NewFinanceHandler(svc)
	clientID := uuid.New()

	svc.On("List", mock.Anything, mock.MatchedBy(func(f appfinance.MovementListFilter) bool {
		return f.ClientID != nil && *f.ClientID == clientID && f.Type == "income" &&
			f.From != nil && f.From.Day() == 1 && f.To != nil && f.To.Day() == 31
	})).Return(&appfinance.MovementPage{
		Paginated: shared.NewPaginated([]appfinance.MovementResponse{
			{ID: uuid.New(), Type: "income", Amount: decimal.NewFromInt(100)},
		}, 1, 1, 20),
		PageBalance: decimal.NewFromInt(100),
	}, nil)

	w := performRequest(financeRoutes(h), http.MethodGet,
		"/finance/movements?type=income&from=2026-01-01&to=2026-01-31&client_id="+clientID.String(), nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "100", data["page_balance"])
	assert.Len(t, data["items"], 1)
	assert.Equal(t, int64(1), resp.Meta.Total)
	svc.AssertExpectations(t)
}

func TestFinanceHandler_ListMovementsBadType(t *testing.T) {
	svc := new(MockFinanceService)
	h := NewFinanceHandler(svc)

	w := performRequest(financeRoutes(h), http.MethodGet, "/finance/movements?type=refund", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestFinanceHandler_PostMovement(t *testing.T) {
	svc := new(MockFinanceService)
	h := NewFinanceHandler(svc)
	id := uuid.New()

	svc.On("Post", mock.Anything, mock.MatchedBy(func(req appfinance.PostMovementRequest) bool {
		return req.Type == "expense" && req.Amount.Equal(decimal.NewFromInt(45)) && req.Category == "maintenance"
	})).Return(&appfinance.MovementResponse{ID: id, Type: "expense", Amount: decimal.NewFromInt(45)}, nil)

	w := performRequest(financeRoutes(h), http.MethodPost, "/finance/movements", map[string]any{
		"type":     "expense",
		"amount":   "45",
		"category": "maintenance",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, id.String(), decodeResponse(t, w).Data.(map[string]any)["id"])
}

func TestFinanceHandler_PostMovementMissingCategory(t *testing.T) {
	svc := new(MockFinanceService)
	h := NewFinanceHandler(svc)

	w := performRequest(financeRoutes(h), http.MethodPost, "/finance/movements", map[string]any{
		"type":   "expense",
		"amount": "45",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
