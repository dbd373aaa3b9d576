package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-room-console/internal/models"
)

const auditResourceIDKey = "audit_resource_id"

// AuditRecorder receives audit entries.
type AuditRecorder interface {
	Record(entry models.AuditLog)
}

// SetAuditResourceID names the affected record when the route has no :id, e.g. on create.
func SetAuditResourceID(c *gin.Context, id string) {
	c.Set(auditResourceIDKey, id)
}

// Audit records the outcome of successful requests.
func Audit(recorder AuditRecorder, action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if recorder == nil || c.Writer.Status() >= 400 {
			return
		}

		entry := models.AuditLog{
			Action:    action,
			Resource:  resource,
			Status:    c.Writer.Status(),
			IPAddress: c.ClientIP(),
			UserAgent: c.GetHeader("User-Agent"),
		}
		if claims := CurrentUser(c); claims != nil {
			uid := claims.UserID
			entry.UserID = &uid
		}
		if id := c.Param("id"); id != "" {
			entry.ResourceID = &id
		} else if id := c.GetString(auditResourceIDKey); id != "" {
			entry.ResourceID = &id
		}
		recorder.Record(entry)
	}
}
