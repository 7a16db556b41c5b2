package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gym/backend/internal/domain/shared"
	"github.com/gym/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

const (
	// HeaderIdempotencyKey carries the client-chosen key for retry-safe POSTs
	HeaderIdempotencyKey = "Idempotency-Key"
	// MaxIdempotencyKeyLength bounds the stored key size
	MaxIdempotencyKeyLength = 255
)

// IdempotencyConfig configures the Idempotency middleware
type IdempotencyConfig struct {
	Store  shared.IdempotencyStore
	TTL    time.Duration
	Logger *zap.Logger
}

// Idempotency rejects a request whose Idempotency-Key was already accepted for
// the same route. Keys of requests that end with status >= 400 are released
// so the client can retry. Requests without the header pass through.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if cfg.Store == nil {
		return passThrough
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = shared.DefaultIdempotencyTTL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > MaxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.ErrCodeBadRequest,
				"Idempotency-Key is too long",
				GetRequestID(c),
			))
			return
		}

		ctx := c.Request.Context()
		scoped := idempotencyScope(c) + ":" + key

		fresh, err := cfg.Store.MarkProcessed(ctx, scoped, ttl)
		if err != nil {
			logger.Warn("Idempotency store unavailable, processing request without key check",
				zap.String("request_id", GetRequestID(c)),
				zap.Error(err),
			)
			c.Next()
			return
		}
		if !fresh {
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponse(
				dto.ErrCodeDuplicateRequest,
				"A request with this Idempotency-Key was already processed",
				GetRequestID(c),
			))
			return
		}

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			if err := cfg.Store.Release(ctx, scoped); err != nil {
				logger.Warn("Failed to release idempotency key",
					zap.String("request_id", GetRequestID(c)),
					zap.Error(err),
				)
			}
		}
	}
}

func idempotencyScope(c *gin.Context) string {
	route := c.FullPath()
	if route == "" {
		route = c.Request.URL.Path
	}
	// resource ids are part of the scope for routes like /contracts/:id/renew
	if id := c.Param("id"); id != "" {
		route += "#" + id
	}
	return c.Request.Method + " " + route
}
