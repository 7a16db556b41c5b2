package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gym/backend/internal/interfaces/http/dto"
)

// BodyLimit caps request bodies at maxBytes. A declared Content-Length over
// the cap is refused before the handler runs; bodies without one are wrapped
// in http.MaxBytesReader and the overflow surfaces when the handler binds.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			respondTooLarge(c, maxBytes)
			c.Abort()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func respondTooLarge(c *gin.Context, limit int64) {
	c.JSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponse(
		dto.ErrCodeRequestTooLarge,
		fmt.Sprintf("Request body exceeds the %d byte limit", limit),
		GetRequestID(c),
	))
}
