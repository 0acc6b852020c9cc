package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/mietwerklabs/mietwerk/internal/audit/domain"
	"github.com/mietwerklabs/mietwerk/internal/orgcontext"
)

const maxAuditExportWindow = 90 * 24 * time.Hour

// ExportAuditLogs handles GET /api/v1/audit/export. The export is always
// scoped to the authenticated account; date bounds are inclusive on the
// query string and capped at 90 days.
func (s *Server) ExportAuditLogs(c *gin.Context) {
	accountID, ok := orgcontext.AccountIDFromContext(c.Request.Context())
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	from, to, ok := parseExportWindow(c.Query("start_date"), c.Query("end_date"))
	if !ok {
		invalidRequestError(c)
		return
	}

	var format auditdomain.ExportFormat
	switch strings.ToLower(strings.TrimSpace(c.DefaultQuery("format", "csv"))) {
	case "csv":
		format = auditdomain.ExportFormatCSV
	case "json":
		format = auditdomain.ExportFormatJSON
	default:
		invalidRequestError(c)
		return
	}

	var actions []string
	if raw := strings.TrimSpace(c.Query("actions")); raw != "" {
		for _, action := range strings.Split(raw, ",") {
			actions = append(actions, strings.TrimSpace(action))
		}
	}

	result, err := s.auditExportSvc.Export(c.Request.Context(), auditdomain.ExportRequest{
		AccountID: accountID,
		From:      from,
		To:        to,
		Format:    format,
		Actions:   actions,
	})
	if err != nil {
		AbortWithError(c, ErrInternal)
		return
	}

	filename := "audit_export_" + from.Format("2006-01-02") + "_" + to.Add(-24*time.Hour).Format("2006-01-02") + "." + string(format)
	contentType := "text/csv"
	if format == auditdomain.ExportFormatJSON {
		contentType = "application/json"
	}

	c.Header("X-Audit-Export-Checksum", result.Checksum)
	c.Header("X-Audit-Export-Count", strconv.Itoa(result.Count))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, result.Data)
}

// parseExportWindow turns inclusive start/end dates into a half-open [from,
// to) range and enforces the window cap.
func parseExportWindow(startRaw, endRaw string) (time.Time, time.Time, bool) {
	from, err := time.Parse("2006-01-02", strings.TrimSpace(startRaw))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse("2006-01-02", strings.TrimSpace(endRaw))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	to := end.Add(24 * time.Hour)
	if to.Before(from) || to.Sub(from) > maxAuditExportWindow {
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
