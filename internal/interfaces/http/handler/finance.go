package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	appfinance "github.com/gym/backend/internal/application/finance"
	"github.com/shopspring/decimal"
)

// FinanceService is the ledger surface used by FinanceHandler
type FinanceService interface {
	Post(ctx context.Context, req appfinance.PostMovementRequest) (*appfinance.MovementResponse, error)
	List(ctx context.Context, f appfinance.MovementListFilter) (*appfinance.MovementPage, error)
}

// MovementListResponse is a page of movements with its signed balance
type MovementListResponse struct {
	Items       []appfinance.MovementResponse `json:"items"`
	PageBalance decimal.Decimal               `json:"page_balance"`
}

// FinanceHandler handles financial movement endpoints
type FinanceHandler struct {
	BaseHandler
	financeService FinanceService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(financeService FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

// ListMovements godoc
// @Summary      List financial movements
// @Tags         finance
// @Produce      json
// @Param        client_id query string false "Client ID"
// @Param        contract_id query string false "Contract ID"
// @Param        type query string false "income or expense"
// @Param        category query string false "Category"
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to query string false "End date (YYYY-MM-DD)"
// @Success      200 {object} dto.Response
// @Router       /finance/movements [get]
func (h *FinanceHandler) ListMovements(c *gin.Context) {
	var filter appfinance.MovementListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	var ok bool
	if filter.ClientID, ok = h.parseUUIDQuery(c, "client_id"); !ok {
		return
	}
	if filter.ContractID, ok = h.parseUUIDQuery(c, "contract_id"); !ok {
		return
	}

	page, err := h.financeService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, MovementListResponse{
		Items:       page.Items,
		PageBalance: page.PageBalance,
	}, page.Total, page.Page, page.PageSize)
}

// PostMovement godoc
// @Summary      Record a manual movement
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        request body finance.PostMovementRequest true "Movement"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Router       /finance/movements [post]
func (h *FinanceHandler) PostMovement(c *gin.Context) {
	var req appfinance.PostMovementRequest
	if !h.bindJSON(c, &req) {
		return
	}

	movement, err := h.financeService.Post(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, movement)
}
