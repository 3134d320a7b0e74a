package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsMethods = "GET, POST, OPTIONS"
	corsHeaders = "Content-Type"
	corsMaxAge  = "600"
)

// corsMiddleware lets the wardrobe frontend call the API and load /uploads
// images from another origin. An empty allow-list admits any origin.
func corsMiddleware(allowed []string) gin.HandlerFunc {
	wildcard := len(allowed) == 0
	origins := make(map[string]bool, len(allowed))
	for _, origin := range allowed {
		if origin == "*" {
			wildcard = true
			continue
		}
		origins[strings.ToLower(strings.TrimRight(origin, "/"))] = true
	}

	return func(c *gin.Context) {
		headers := c.Writer.Header()
		origin := c.GetHeader("Origin")
		switch {
		case wildcard:
			headers.Set("Access-Control-Allow-Origin", "*")
		case origin != "" && origins[strings.ToLower(origin)]:
			headers.Set("Access-Control-Allow-Origin", origin)
			headers.Add("Vary", "Origin")
		}

		if c.Request.Method != http.MethodOptions {
			c.Next()
			return
		}
		headers.Set("Access-Control-Allow-Methods", corsMethods)
		headers.Set("Access-Control-Allow-Headers", corsHeaders)
		headers.Set("Access-Control-Max-Age", corsMaxAge)
		c.AbortWithStatus(http.StatusNoContent)
	}
}
