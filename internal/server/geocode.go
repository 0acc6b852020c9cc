package server

import (
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) ForwardGeocode(c *gin.Context) {
	address := strings.TrimSpace(c.Query("address"))
	if address == "" {
		invalidRequestError(c)
		return
	}

	location, err := s.geocodeSvc.Forward(c.Request.Context(), address)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, location)
}
