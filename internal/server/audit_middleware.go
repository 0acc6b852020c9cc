package server

import (
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	auditdomain "github.com/mietwerklabs/mietwerk/internal/audit/domain"
)

// AuditTrail records every successful mutating request. Reads are not
// audited; neither are rejected requests.
func (s *Server) AuditTrail() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		default:
			return
		}
		if c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		entry := auditdomain.Entry{
			ActorType:  auditdomain.ActorTypeAPIKey,
			Action:     c.Request.Method + " " + c.FullPath(),
			TargetType: "http_route",
		}
		if accountID, ok := c.Get(contextAccountIDKey); ok {
			if id, ok := accountID.(snowflake.ID); ok {
				entry.AccountID = &id
			}
		}
		if keyID, ok := c.Get(contextAPIKeyIDKey); ok {
			if id, ok := keyID.(snowflake.ID); ok {
				actor := id.String()
				entry.ActorID = &actor
			}
		}
		if target := c.Param("id"); target != "" {
			entry.TargetID = &target
		}
		ip := c.ClientIP()
		entry.IPAddress = &ip
		if ua := c.Request.UserAgent(); ua != "" {
			entry.UserAgent = &ua
		}

		s.auditSvc.Record(c.Request.Context(), entry)
	}
}
