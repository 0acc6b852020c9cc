package server

import (
	"github.com/gin-gonic/gin"
	apikeydomain "github.com/mietwerklabs/mietwerk/internal/apikey/domain"
)

func (s *Server) CreateAPIKey(c *gin.Context) {
	var req apikeydomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequestError(c)
		return
	}

	resp, err := s.apiKeySvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondCreated(c, resp)
}

func (s *Server) ListAPIKeys(c *gin.Context) {
	resp, err := s.apiKeySvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, resp, nil)
}

func (s *Server) RevokeAPIKey(c *gin.Context) {
	if err := s.apiKeySvc.Revoke(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	respondNoContent(c)
}
