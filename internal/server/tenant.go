package server

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	tenantdomain "github.com/mietwerklabs/mietwerk/internal/tenant/domain"
)

func (s *Server) CreateTenant(c *gin.Context) {
	var req tenantdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequestError(c)
		return
	}

	resp, err := s.tenantSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondCreated(c, resp)
}

func (s *Server) ListTenants(c *gin.Context) {
	req := tenantdomain.ListRequest{
		Search:    strings.TrimSpace(c.Query("search")),
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

	resp, err := s.tenantSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, resp.Tenants, &resp.PageInfo)
}

func (s *Server) GetTenant(c *gin.Context) {
	resp, err := s.tenantSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

func (s *Server) UpdateTenant(c *gin.Context) {
	var req tenantdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequestError(c)
		return
	}
	req.ID = c.Param("id")

	resp, err := s.tenantSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

func (s *Server) DeleteTenant(c *gin.Context) {
	if err := s.tenantSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	respondNoContent(c)
}
