package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mietwerklabs/mietwerk/internal/apportionment"
	subscriptiondomain "github.com/mietwerklabs/mietwerk/internal/subscription/domain"
)

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidRequest = errors.New("invalid_request")
	ErrRateLimited    = errors.New("rate_limited")
	ErrQuotaExceeded  = errors.New("building_quota_exceeded")
	ErrInternal       = errors.New("internal_error")
)

// AbortWithError maps a domain error onto an HTTP status and a stable
// machine-readable code. Unknown errors are masked as internal_error so
// database details never leak to clients.
func AbortWithError(c *gin.Context, err error) {
	status, code := statusForError(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		code = ErrInternal.Error()
	}
	c.AbortWithStatusJSON(status, gin.H{"error": code})
}

func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrQuotaExceeded):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, err.Error()
	case errors.Is(err, subscriptiondomain.ErrSubscriptionLapsed):
		return http.StatusPaymentRequired, err.Error()
	case errors.Is(err, apportionment.ErrInvalidPeriod),
		errors.Is(err, apportionment.ErrInvalidReading),
		errors.Is(err, apportionment.ErrInvalidAmount),
		errors.Is(err, apportionment.ErrUnknownAllocationKey),
		errors.Is(err, apportionment.ErrDirectKeyedCostItem),
		errors.Is(err, apportionment.ErrIncompleteSnapshot):
		return http.StatusUnprocessableEntity, err.Error()
	}

	code := err.Error()
	switch {
	case code == "not_found":
		return http.StatusNotFound, code
	case code == "no_results":
		return http.StatusNotFound, code
	case code == "period_locked", code == "invalid_transition", code == "duplicate":
		return http.StatusConflict, code
	case code == "no_leases":
		return http.StatusUnprocessableEntity, code
	case strings.HasPrefix(code, "invalid_") || code == "unknown_plan" || code == "event_ignored":
		return http.StatusBadRequest, code
	}
	return http.StatusInternalServerError, code
}

func invalidRequestError(c *gin.Context) {
	AbortWithError(c, ErrInvalidRequest)
}
