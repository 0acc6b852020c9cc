package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// Current returns the account's subscription, creating the free-plan
	// row on first access.
	Current(ctx context.Context) (*Response, error)

	// EnsureActive gates paid operations: it fails when the subscription
	// is expired or canceled.
	EnsureActive(ctx context.Context) error

	// BuildingQuota returns the plan's building limit, 0 for unlimited.
	BuildingQuota(ctx context.Context) (int, error)

	// Activate switches the account to planCode after a completed
	// checkout. Called from payment processing, not from handlers.
	Activate(ctx context.Context, accountID snowflake.ID, planCode string, periodEnd time.Time) error

	// MarkPastDue flags the account after a failed renewal payment.
	MarkPastDue(ctx context.Context, accountID snowflake.ID) error

	// ExpireLapsed downgrades subscriptions whose paid period ended
	// before now. Returns the number of rows changed.
	ExpireLapsed(ctx context.Context, now time.Time) (int64, error)
}

type Response struct {
	PlanCode           string     `json:"plan_code"`
	PlanName           string     `json:"plan_name"`
	Status             Status     `json:"status"`
	MonthlyPriceCents  int64      `json:"monthly_price_cents"`
	MaxBuildings       int        `json:"max_buildings"`
	CurrentPeriodStart time.Time  `json:"current_period_start"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end,omitempty"`
}

var (
	ErrInvalidAccount     = errors.New("invalid_account")
	ErrUnknownPlan        = errors.New("unknown_plan")
	ErrSubscriptionLapsed = errors.New("subscription_lapsed")
)
