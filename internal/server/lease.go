package server

import (
	"github.com/gin-gonic/gin"
	leasedomain "github.com/mietwerklabs/mietwerk/internal/lease/domain"
)

func (s *Server) CreateLease(c *gin.Context) {
	var req leasedomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequestError(c)
		return
	}

	resp, err := s.leaseSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondCreated(c, resp)
}

func (s *Server) ListLeases(c *gin.Context) {
	resp, err := s.leaseSvc.ListByBuilding(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, resp, nil)
}

func (s *Server) GetLease(c *gin.Context) {
	resp, err := s.leaseSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

func (s *Server) UpdateLease(c *gin.Context) {
	var req leasedomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequestError(c)
		return
	}
	req.ID = c.Param("id")

	resp, err := s.leaseSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

func (s *Server) DeleteLease(c *gin.Context) {
	if err := s.leaseSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	respondNoContent(c)
}
