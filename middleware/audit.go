package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ariebrainware/cosec-marketplace/util"
	"github.com/gin-gonic/gin"
)

// AuditTrail records every state-changing request of the wrapped group.
func AuditTrail(audit *util.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			return
		}

		status := c.Writer.Status()
		email, _ := GetEmail(c)
		details := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.FullPath(),
			"status":      status,
			"duration_ms": time.Since(start).Milliseconds(),
		}
		for _, p := range c.Params {
			details[p.Key] = p.Value
		}

		audit.Log(util.AuditEvent{
			EventType:  util.EventAdminAction,
			ActorEmail: email,
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
			Message:    fmt.Sprintf("%s %s -> %d", c.Request.Method, c.Request.URL.Path, status),
			Details:    details,
		})
	}
}
