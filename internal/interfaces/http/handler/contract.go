package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appcontract "github.com/gym/backend/internal/application/contract"
	"github.com/gym/backend/internal/domain/shared"
)

// ContractService is the orchestrator surface used by ContractHandler
type ContractService interface {
	Create(ctx context.Context, req appcontract.CreateContractRequest) (*appcontract.CreateContractResult, error)
	Get(ctx context.Context, id uuid.UUID) (*appcontract.ContractResponse, error)
	List(ctx context.Context, f appcontract.ContractListFilter) (*shared.Paginated[appcontract.ContractResponse], error)
	Update(ctx context.Context, id uuid.UUID, req appcontract.UpdateContractRequest) (*appcontract.ContractResponse, error)
	Cancel(ctx context.Context, id uuid.UUID, reason string) (*appcontract.CancelContractResult, error)
	Renew(ctx context.Context, id uuid.UUID, req appcontract.RenewContractRequest) (*appcontract.RenewContractResult, error)
}

// ContractHandler handles contract lifecycle endpoints
type ContractHandler struct {
	BaseHandler
	contractService ContractService
}

// NewContractHandler creates a new ContractHandler
func NewContractHandler(contractService ContractService) *ContractHandler {
	return &ContractHandler{contractService: contractService}
}

// Create godoc
// @Summary      Create a contract
// @Description  Creates a vigente contract, links client and plan, and optionally records the payment
// @Tags         contracts
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Retry-safe request key"
// @Param        request body contract.CreateContractRequest true "Contract creation request"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Router       /contracts [post]
func (h *ContractHandler) Create(c *gin.Context) {
	var req appcontract.CreateContractRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.contractService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// List godoc
// @Summary      List contracts
// @Tags         contracts
// @Produce      json
// @Param        client_id query string false "Client ID"
// @Param        plan_id query string false "Plan ID"
// @Param        state query string false "vigente, vencido, cancelado or renovado"
// @Param        order_by query string false "start_date, end_date or created_at"
// @Param        order_dir query string false "asc or desc"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size, at most 500"
// @Success      200 {object} dto.Response
// @Router       /contracts [get]
func (h *ContractHandler) List(c *gin.Context) {
	var filter appcontract.ContractListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	var ok bool
	if filter.ClientID, ok = h.parseUUIDQuery(c, "client_id"); !ok {
		return
	}
	if filter.PlanID, ok = h.parseUUIDQuery(c, "plan_id"); !ok {
		return
	}

	page, err := h.contractService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get godoc
// @Summary      Get a contract
// @Tags         contracts
// @Produce      json
// @Param        id path string true "Contract ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /contracts/{id} [get]
func (h *ContractHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	contract, err := h.contractService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contract)
}

// Update godoc
// @Summary      Update contract conditions or notes
// @Description  Only conditions and notes of a vigente contract may change
// @Tags         contracts
// @Accept       json
// @Produce      json
// @Param        id path string true "Contract ID"
// @Param        request body contract.UpdateContractRequest true "Contract patch"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /contracts/{id} [patch]
func (h *ContractHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req appcontract.UpdateContractRequest
	if !h.bindJSON(c, &req) {
		return
	}

	contract, err := h.contractService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contract)
}

// Cancel godoc
// @Summary      Cancel a contract
// @Description  Cancels the contract, unlinks client and plan, then removes its tracking records best-effort
// @Tags         contracts
// @Accept       json
// @Produce      json
// @Param        id path string true "Contract ID"
// @Param        request body contract.CancelContractRequest false "Cancellation reason"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /contracts/{id}/cancel [post]
func (h *ContractHandler) Cancel(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req appcontract.CancelContractRequest
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}

	result, err := h.contractService.Cancel(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Renew godoc
// @Summary      Renew a contract
// @Description  Marks the contract renovado and creates its vigente successor
// @Tags         contracts
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Retry-safe request key"
// @Param        id path string true "Contract ID"
// @Param        request body contract.RenewContractRequest true "Renewal terms"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /contracts/{id}/renew [post]
func (h *ContractHandler) Renew(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req appcontract.RenewContractRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.contractService.Renew(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}
