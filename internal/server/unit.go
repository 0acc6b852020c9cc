package server

import (
	"github.com/gin-gonic/gin"
	unitdomain "github.com/mietwerklabs/mietwerk/internal/unit/domain"
)

func (s *Server) CreateUnit(c *gin.Context) {
	var req unitdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequestError(c)
		return
	}
	req.BuildingID = c.Param("id")

	resp, err := s.unitSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondCreated(c, resp)
}

func (s *Server) ListUnits(c *gin.Context) {
	resp, err := s.unitSvc.ListByBuilding(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, resp, nil)
}

func (s *Server) GetUnit(c *gin.Context) {
	resp, err := s.unitSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

func (s *Server) UpdateUnit(c *gin.Context) {
	var req unitdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequestError(c)
		return
	}
	req.ID = c.Param("id")

	resp, err := s.unitSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

func (s *Server) DeleteUnit(c *gin.Context) {
	if err := s.unitSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	respondNoContent(c)
}
