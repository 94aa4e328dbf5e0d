package middleware

import "github.com/gin-gonic/gin"

// NoCache marks every response as uncacheable.
func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
		h.Set("Expires", "0")
		h.Set("Pragma", "no-cache")
		c.Next()
	}
}
