package server

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	buildingdomain "github.com/mietwerklabs/mietwerk/internal/building/domain"
)

func (s *Server) CreateBuilding(c *gin.Context) {
	var req buildingdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequestError(c)
		return
	}

	if err := s.subscriptionSvc.EnsureActive(c.Request.Context()); err != nil {
		AbortWithError(c, err)
		return
	}
	quota, err := s.subscriptionSvc.BuildingQuota(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if quota > 0 {
		count, err := s.buildingSvc.Count(c.Request.Context())
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if count >= int64(quota) {
			AbortWithError(c, ErrQuotaExceeded)
			return
		}
	}

	resp, err := s.buildingSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondCreated(c, resp)
}

func (s *Server) ListBuildings(c *gin.Context) {
	req := buildingdomain.ListRequest{
		City:      strings.TrimSpace(c.Query("city")),
		SortBy:    c.Query("sort_by"),
		OrderBy:   c.Query("order_by"),
		PageToken: c.Query("page_token"),
	}
	if raw := c.Query("page_size"); raw != "" {
		size, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || size < 0 {
			invalidRequestError(c)
			return
		}
		req.PageSize = int32(size)
	}

	resp, err := s.buildingSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, resp.Buildings, &resp.PageInfo)
}

func (s *Server) GetBuilding(c *gin.Context) {
	resp, err := s.buildingSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

func (s *Server) UpdateBuilding(c *gin.Context) {
	var req buildingdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequestError(c)
		return
	}
	req.ID = c.Param("id")

	resp, err := s.buildingSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

func (s *Server) DeleteBuilding(c *gin.Context) {
	if err := s.buildingSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	respondNoContent(c)
}

// GetBuildingLocation forward-geocodes the building's postal address.
func (s *Server) GetBuildingLocation(c *gin.Context) {
	building, err := s.buildingSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	address := strings.Join([]string{
		building.Street + " " + building.HouseNumber,
		building.PostalCode + " " + building.City,
		"Deutschland",
	}, ", ")

	location, err := s.geocodeSvc.Forward(c.Request.Context(), address)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, location)
}
