package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gym/backend/internal/application/membership"
	"github.com/gym/backend/internal/domain/shared"
)

// ClientService is the client management surface used by ClientHandler
type ClientService interface {
	Create(ctx context.Context, req membership.CreateClientRequest) (*membership.ClientResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*membership.ClientResponse, error)
	List(ctx context.Context, f membership.ClientListFilter) (*shared.Paginated[membership.ClientResponse], error)
	Update(ctx context.Context, id uuid.UUID, req membership.UpdateClientRequest) (*membership.ClientResponse, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*membership.ClientResponse, error)
	Delete(ctx context.Context, id uuid.UUID, reason string) (*membership.DeleteClientResult, error)
}

// PlanService is the plan catalogue surface used by PlanHandler
type PlanService interface {
	Create(ctx context.Context, req membership.CreatePlanRequest) (*membership.PlanResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*membership.PlanResponse, error)
	List(ctx context.Context, f membership.PlanListFilter) (*shared.Paginated[membership.PlanResponse], error)
	SetState(ctx context.Context, id uuid.UUID, req membership.UpdatePlanStateRequest) (*membership.PlanResponse, error)
}

// ClientHandler handles client endpoints
type ClientHandler struct {
	BaseHandler
	clientService ClientService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// Create godoc
// @Summary      Register a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        request body membership.CreateClientRequest true "Client"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Router       /clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var req membership.CreateClientRequest
	if !h.bindJSON(c, &req) {
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, client)
}

// List godoc
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Param        search query string false "Name, email or document fragment"
// @Param        active query bool false "Active flag"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size, at most 500"
// @Success      200 {object} dto.Response
// @Router       /clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	var filter membership.ClientListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	page, err := h.clientService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get godoc
// @Summary      Get a client
// @Tags         clients
// @Produce      json
// @Param        id path string true "Client ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /clients/{id} [get]
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	client, err := h.clientService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

// Update godoc
// @Summary      Replace a client's profile
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id path string true "Client ID"
// @Param        request body membership.UpdateClientRequest true "Client profile"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Router       /clients/{id} [put]
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req membership.UpdateClientRequest
	if !h.bindJSON(c, &req) {
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

// Activate godoc
// @Summary      Activate a client
// @Tags         clients
// @Produce      json
// @Param        id path string true "Client ID"
// @Success      200 {object} dto.Response
// @Router       /clients/{id}/activate [post]
func (h *ClientHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

// Deactivate godoc
// @Summary      Deactivate a client
// @Tags         clients
// @Produce      json
// @Param        id path string true "Client ID"
// @Success      200 {object} dto.Response
// @Router       /clients/{id}/deactivate [post]
func (h *ClientHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *ClientHandler) setActive(c *gin.Context, active bool) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	client, err := h.clientService.SetActive(c.Request.Context(), id, active)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

// Delete godoc
// @Summary      Delete a client
// @Description  Refused while the client holds plan references or open contracts
// @Tags         clients
// @Produce      json
// @Param        id path string true "Client ID"
// @Param        reason query string false "Reason recorded with the tracking cleanup"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Router       /clients/{id} [delete]
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.clientService.Delete(c.Request.Context(), id, c.Query("reason"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// PlanHandler handles plan endpoints
type PlanHandler struct {
	BaseHandler
	planService PlanService
}

// NewPlanHandler creates a new PlanHandler
func NewPlanHandler(planService PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// Create godoc
// @Summary      Create a plan
// @Tags         plans
// @Accept       json
// @Produce      json
// @Param        request body membership.CreatePlanRequest true "Plan"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Router       /plans [post]
func (h *PlanHandler) Create(c *gin.Context) {
	var req membership.CreatePlanRequest
	if !h.bindJSON(c, &req) {
		return
	}

	plan, err := h.planService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, plan)
}

// List godoc
// @Summary      List plans
// @Tags         plans
// @Produce      json
// @Param        search query string false "Name fragment"
// @Param        state query string false "active or inactive"
// @Success      200 {object} dto.Response
// @Router       /plans [get]
func (h *PlanHandler) List(c *gin.Context) {
	var filter membership.PlanListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	page, err := h.planService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get godoc
// @Summary      Get a plan
// @Tags         plans
// @Produce      json
// @Param        id path string true "Plan ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /plans/{id} [get]
func (h *PlanHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	plan, err := h.planService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plan)
}

// SetState godoc
// @Summary      Activate or deactivate a plan
// @Tags         plans
// @Accept       json
// @Produce      json
// @Param        id path string true "Plan ID"
// @Param        request body membership.UpdatePlanStateRequest true "Target state"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /plans/{id}/state [put]
func (h *PlanHandler) SetState(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req membership.UpdatePlanStateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	plan, err := h.planService.SetState(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plan)
}
