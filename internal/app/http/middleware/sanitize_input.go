package middleware

import (
	"bytes"
	"encoding/json"
	"html"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeAndCleanInputMiddleware strips markup from every string in a JSON
// body, nested values included. Entities produced by the policy are decoded
// again so stored text stays plain ("Tom & Jerry", not "Tom &amp; Jerry").
func SanitizeAndCleanInputMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
			return
		}
		var body any
		if err := json.Unmarshal(buf, &body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON"})
			return
		}

		newBody, err := json.Marshal(sanitizeValue(body))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(newBody))
		c.Request.ContentLength = int64(len(newBody))

		c.Next()
	}
}

func sanitizeValue(v any) any {
	switch t := v.(type) {
	case string:
		return html.UnescapeString(strictPolicy.Sanitize(t))
	case map[string]any:
		for k, inner := range t {
			t[k] = sanitizeValue(inner)
		}
		return t
	case []any:
		for i, inner := range t {
			t[i] = sanitizeValue(inner)
		}
		return t
	default:
		return v
	}
}
