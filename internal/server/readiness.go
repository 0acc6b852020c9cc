package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type ReadinessIssue struct {
	Component string `json:"component"`
	Message   string `json:"message"`
}

type ReadinessResponse struct {
	Status string           `json:"status"`
	Issues []ReadinessIssue `json:"issues,omitempty"`
}

func (s *Server) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readyz verifies the dependencies a request actually needs: postgres and
// redis reachable, payment credentials present.
func (s *Server) Readyz(c *gin.Context) {
	ctx := c.Request.Context()

	var issues []ReadinessIssue

	sqlDB, err := s.db.DB()
	if err != nil {
		issues = append(issues, ReadinessIssue{Component: "database", Message: err.Error()})
	} else if err := sqlDB.PingContext(ctx); err != nil {
		issues = append(issues, ReadinessIssue{Component: "database", Message: err.Error()})
	}

	if err := s.redis.Ping(ctx).Err(); err != nil {
		issues = append(issues, ReadinessIssue{Component: "redis", Message: err.Error()})
	}

	if s.cfg.Payment.APIKey == "" || s.cfg.Payment.WebhookSecret == "" {
		issues = append(issues, ReadinessIssue{Component: "payment", Message: "provider credentials not configured"})
	}

	resp := ReadinessResponse{Status: "ready", Issues: issues}
	status := http.StatusOK
	if len(issues) > 0 {
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	c.Header("Cache-Control", "no-store")
	c.Header("X-Readiness-Checked-At", time.Now().UTC().Format(time.RFC3339))
	c.JSON(status, resp)
}
