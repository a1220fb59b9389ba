// Package respond holds the JSON error conventions shared by all handlers.
package respond

import (
	"net/http"
	"strconv"

	"agency-site/internal/errs"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Error writes {"error": ...} with the status errs.Status picks for err.
// Server-side failures are logged and reported with the generic message only.
func Error(c *gin.Context, err error, generic string) {
	status := errs.Status(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		log.Error().
			Err(err).
			Str("request_id", c.GetString("requestID")).
			Str("path", c.FullPath()).
			Msg(generic)
		c.AbortWithStatusJSON(status, gin.H{"error": generic})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func MalformedJSON(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON"})
}

// ID parses a positive numeric path parameter, answering 400 otherwise.
func ID(c *gin.Context, param string) (uint, bool) {
	raw := c.Param(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid " + param})
		return 0, false
	}
	return uint(id), true
}
