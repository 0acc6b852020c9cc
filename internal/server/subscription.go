package server

import (
	"github.com/gin-gonic/gin"
	paymentdomain "github.com/mietwerklabs/mietwerk/internal/payment/domain"
)

func (s *Server) GetSubscription(c *gin.Context) {
	resp, err := s.subscriptionSvc.Current(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

func (s *Server) CreateCheckoutSession(c *gin.Context) {
	var req paymentdomain.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequestError(c)
		return
	}

	session, err := s.checkoutSvc.CreateSession(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondCreated(c, session)
}

func (s *Server) GetCheckoutSession(c *gin.Context) {
	session, err := s.checkoutSvc.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, session)
}
