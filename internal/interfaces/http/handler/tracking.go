package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	apptracking "github.com/gym/backend/internal/application/tracking"
	"github.com/gym/backend/internal/domain/shared"
)

// TrackingService is the progress record surface used by TrackingHandler
type TrackingService interface {
	Create(ctx context.Context, req apptracking.CreateRecordRequest) (*apptracking.RecordResponse, error)
	List(ctx context.Context, f apptracking.RecordListFilter) (*shared.Paginated[apptracking.RecordResponse], error)
}

// TrackingHandler handles tracking record endpoints
type TrackingHandler struct {
	BaseHandler
	trackingService TrackingService
}

// NewTrackingHandler creates a new TrackingHandler
func NewTrackingHandler(trackingService TrackingService) *TrackingHandler {
	return &TrackingHandler{trackingService: trackingService}
}

// Create godoc
// @Summary      Add a tracking record
// @Description  The client must exist; a given contract must belong to that client
// @Tags         tracking
// @Accept       json
// @Produce      json
// @Param        request body tracking.CreateRecordRequest true "Tracking record"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /tracking-records [post]
func (h *TrackingHandler) Create(c *gin.Context) {
	var req apptracking.CreateRecordRequest
	if !h.bindJSON(c, &req) {
		return
	}

	record, err := h.trackingService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, record)
}

// List godoc
// @Summary      List tracking records
// @Tags         tracking
// @Produce      json
// @Param        client_id query string false "Client ID"
// @Param        contract_id query string false "Contract ID"
// @Success      200 {object} dto.Response
// @Router       /tracking-records [get]
func (h *TrackingHandler) List(c *gin.Context) {
	var filter apptracking.RecordListFilter
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

	page, err := h.trackingService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}
