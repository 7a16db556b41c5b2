package router

import (
	"github.com/gin-gonic/gin"
	"github.com/gym/backend/internal/interfaces/http/handler"
)

// Handlers groups the HTTP handlers mounted by APIGroups
type Handlers struct {
	Contract *handler.ContractHandler
	Client   *handler.ClientHandler
	Plan     *handler.PlanHandler
	Tracking *handler.TrackingHandler
	Finance  *handler.FinanceHandler
	System   *handler.SystemHandler
}

// APIGroups builds the route groups of the public API. idempotency guards
// the contract create and renew routes; pass nil to disable it.
func APIGroups(h Handlers, idempotency gin.HandlerFunc) []RouteRegistrar {
	guarded := func(next gin.HandlerFunc) []gin.HandlerFunc {
		if idempotency == nil {
			return []gin.HandlerFunc{next}
		}
		return []gin.HandlerFunc{idempotency, next}
	}

	contracts := NewDomainGroup("contracts", "/contracts").
		POST("", guarded(h.Contract.Create)...).
		GET("", h.Contract.List).
		GET("/:id", h.Contract.Get).
		PATCH("/:id", h.Contract.Update).
		POST("/:id/cancel", h.Contract.Cancel).
		POST("/:id/renew", guarded(h.Contract.Renew)...)

	clients := NewDomainGroup("clients", "/clients").
		POST("", h.Client.Create).
		GET("", h.Client.List).
		GET("/:id", h.Client.Get).
		PUT("/:id", h.Client.Update).
		DELETE("/:id", h.Client.Delete).
		POST("/:id/activate", h.Client.Activate).
		POST("/:id/deactivate", h.Client.Deactivate)

	plans := NewDomainGroup("plans", "/plans").
		POST("", h.Plan.Create).
		GET("", h.Plan.List).
		GET("/:id", h.Plan.Get).
		PUT("/:id/state", h.Plan.SetState)

	tracking := NewDomainGroup("tracking", "/tracking-records").
		POST("", h.Tracking.Create).
		GET("", h.Tracking.List)

	finance := NewDomainGroup("finance", "/finance")
	finance.Group("movements", "/movements").
		GET("", h.Finance.ListMovements).
		POST("", h.Finance.PostMovement)

	system := NewDomainGroup("system", "").
		GET("/health", h.System.Health)

	return []RouteRegistrar{contracts, clients, plans, tracking, finance, system}
}
