package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/mietwerklabs/mietwerk/internal/apportionment"
	settlementdomain "github.com/mietwerklabs/mietwerk/internal/settlement/domain"
	subscriptiondomain "github.com/mietwerklabs/mietwerk/internal/subscription/domain"
	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{ErrQuotaExceeded, http.StatusForbidden, "building_quota_exceeded"},
		{ErrRateLimited, http.StatusTooManyRequests, "rate_limited"},
		{subscriptiondomain.ErrSubscriptionLapsed, http.StatusPaymentRequired, "subscription_lapsed"},
		{settlementdomain.ErrNotFound, http.StatusNotFound, "not_found"},
		{settlementdomain.ErrNoResults, http.StatusNotFound, "no_results"},
		{settlementdomain.ErrPeriodLocked, http.StatusConflict, "period_locked"},
		{settlementdomain.ErrInvalidTransition, http.StatusConflict, "invalid_transition"},
		{settlementdomain.ErrNoLeases, http.StatusUnprocessableEntity, "no_leases"},
		{settlementdomain.ErrInvalidID, http.StatusBadRequest, "invalid_id"},
		{subscriptiondomain.ErrUnknownPlan, http.StatusBadRequest, "unknown_plan"},
		{fmt.Errorf("%w: cost item", apportionment.ErrDirectKeyedCostItem), http.StatusUnprocessableEntity, "direct_keyed_cost_item: cost item"},
		{errors.New("pq: connection refused"), http.StatusInternalServerError, "pq: connection refused"},
	}

	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			status, code := statusForError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, code)
		})
	}
}
