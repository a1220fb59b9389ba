package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestID keeps a caller-supplied X-Request-ID or generates one, echoes it
// back and stores it under "requestID".
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)
		c.Set("requestID", id)
		c.Next()
	}
}
