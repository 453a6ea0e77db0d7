package server

import (
	"time"

	"github.com/aseell-s/E-auctionCompletedVersion-sub000/utils"

	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs incoming requests with timing and the acting
// user when one is identified
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	fields := map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	}
	if actor := c.GetHeader("X-User-ID"); actor != "" {
		fields["actor_id"] = actor
	}
	utils.Info("HTTP Request", fields)
}
