package server

import (
	"github.com/gin-gonic/gin"
	billingperioddomain "github.com/mietwerklabs/mietwerk/internal/billingperiod/domain"
)

func (s *Server) CreateBillingPeriod(c *gin.Context) {
	var req billingperioddomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequestError(c)
		return
	}
	req.BuildingID = c.Param("id")

	resp, err := s.periodSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondCreated(c, resp)
}

func (s *Server) ListBillingPeriods(c *gin.Context) {
	resp, err := s.periodSvc.ListByBuilding(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, resp, nil)
}

func (s *Server) GetBillingPeriod(c *gin.Context) {
	resp, err := s.periodSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

func (s *Server) DeleteBillingPeriod(c *gin.Context) {
	if err := s.periodSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	respondNoContent(c)
}

func (s *Server) SetHeating(c *gin.Context) {
	var req billingperioddomain.SetHeatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequestError(c)
		return
	}
	req.PeriodID = c.Param("id")

	resp, err := s.periodSvc.SetHeating(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

func (s *Server) AddCostItem(c *gin.Context) {
	var req billingperioddomain.AddCostItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequestError(c)
		return
	}
	req.PeriodID = c.Param("id")

	resp, err := s.periodSvc.AddCostItem(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondCreated(c, resp)
}

func (s *Server) UpdateCostItem(c *gin.Context) {
	var req billingperioddomain.UpdateCostItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequestError(c)
		return
	}
	req.PeriodID = c.Param("id")
	req.ItemID = c.Param("itemID")

	resp, err := s.periodSvc.UpdateCostItem(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

func (s *Server) DeleteCostItem(c *gin.Context) {
	if err := s.periodSvc.DeleteCostItem(c.Request.Context(), c.Param("id"), c.Param("itemID")); err != nil {
		AbortWithError(c, err)
		return
	}
	respondNoContent(c)
}

func (s *Server) AttachReceipt(c *gin.Context) {
	var req billingperioddomain.AttachReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequestError(c)
		return
	}
	req.PeriodID = c.Param("id")
	req.CostItemID = c.Param("itemID")

	resp, err := s.periodSvc.AttachReceipt(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondCreated(c, resp)
}

func (s *Server) DeleteReceipt(c *gin.Context) {
	if err := s.periodSvc.DeleteReceipt(c.Request.Context(), c.Param("id"), c.Param("receiptID")); err != nil {
		AbortWithError(c, err)
		return
	}
	respondNoContent(c)
}

func (s *Server) AddDirectCost(c *gin.Context) {
	var req billingperioddomain.AddDirectCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequestError(c)
		return
	}
	req.PeriodID = c.Param("id")

	resp, err := s.periodSvc.AddDirectCost(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondCreated(c, resp)
}

func (s *Server) DeleteDirectCost(c *gin.Context) {
	if err := s.periodSvc.DeleteDirectCost(c.Request.Context(), c.Param("id"), c.Param("directCostID")); err != nil {
		AbortWithError(c, err)
		return
	}
	respondNoContent(c)
}

func (s *Server) UpsertMeterReading(c *gin.Context) {
	var req billingperioddomain.UpsertMeterReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequestError(c)
		return
	}
	req.PeriodID = c.Param("id")

	resp, err := s.periodSvc.UpsertMeterReading(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

func (s *Server) DeleteMeterReading(c *gin.Context) {
	if err := s.periodSvc.DeleteMeterReading(c.Request.Context(), c.Param("id"), c.Param("readingID")); err != nil {
		AbortWithError(c, err)
		return
	}
	respondNoContent(c)
}
