package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mietwerklabs/mietwerk/internal/orgcontext"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const idempotencyTTL = 24 * time.Hour

func idempotencyKeyFromHeader(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader("Idempotency-Key"))
}

// RunSettlement calculates the apportionment for a billing period. With an
// Idempotency-Key header, retries within 24h replay the first response
// instead of producing another result version.
func (s *Server) RunSettlement(c *gin.Context) {
	periodID := c.Param("id")

	cacheKey := ""
	if key := idempotencyKeyFromHeader(c); key != "" {
		accountID, _ := orgcontext.AccountIDFromContext(c.Request.Context())
		cacheKey = "idempotency:settlement:" + accountID.String() + ":" + periodID + ":" + key

		cached, err := s.redis.Get(c.Request.Context(), cacheKey).Bytes()
		if err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			return
		}
		if !errors.Is(err, goredis.Nil) {
			s.log.Warn("idempotency lookup failed", zap.Error(err))
		}
	}

	resp, err := s.settlementSvc.Run(c.Request.Context(), periodID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if cacheKey != "" {
		if body, err := json.Marshal(gin.H{"data": resp}); err == nil {
			if err := s.redis.Set(c.Request.Context(), cacheKey, body, idempotencyTTL).Err(); err != nil {
				s.log.Warn("idempotency store failed", zap.Error(err))
			}
		}
	}

	respondData(c, resp)
}

func (s *Server) GetSettlementResults(c *gin.Context) {
	resp, err := s.settlementSvc.Results(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

func (s *Server) ListSettlementVersions(c *gin.Context) {
	resp, err := s.settlementSvc.Versions(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, resp, nil)
}

func (s *Server) SendSettlement(c *gin.Context) {
	if err := s.settlementSvc.MarkSent(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, gin.H{"status": "sent"})
}

func (s *Server) CompleteSettlement(c *gin.Context) {
	if err := s.settlementSvc.MarkCompleted(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, gin.H{"status": "completed"})
}

func (s *Server) ExportSettlementCSV(c *gin.Context) {
	data, err := s.settlementSvc.ExportCSV(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="abrechnung.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

func (s *Server) ExportSettlementXLSX(c *gin.Context) {
	data, err := s.settlementSvc.ExportXLSX(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="abrechnung.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
