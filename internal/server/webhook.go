package server

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

const maxWebhookBody = 1 << 20

// IngestWebhook accepts provider callbacks. The raw body is passed through
// untouched so signature verification sees exactly what was signed.
func (s *Server) IngestWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		invalidRequestError(c)
		return
	}

	if err := s.webhookSvc.IngestWebhook(c.Request.Context(), c.Param("provider"), payload, c.Request.Header); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
