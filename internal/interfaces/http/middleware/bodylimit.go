package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sis/backend/internal/interfaces/http/dto"
)

// BodyLimit returns a middleware that caps request body size. Batch saves
// are the largest payloads the console sends and stay well under a
// megabyte; anything bigger is malformed or hostile.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeBadRequest, "Request body exceeds maximum allowed size", GetRequestID(c)))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
