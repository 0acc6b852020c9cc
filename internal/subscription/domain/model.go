package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusPastDue  Status = "past_due"
	StatusExpired  Status = "expired"
	StatusCanceled Status = "canceled"
)

// Subscription is the account's current plan. Every account has exactly
// one row; new accounts start on the free plan.
type Subscription struct {
	ID                 snowflake.ID `gorm:"primaryKey;autoIncrement:false"`
	AccountID          snowflake.ID `gorm:"not null;uniqueIndex"`
	PlanCode           string       `gorm:"not null"`
	Status             Status       `gorm:"not null"`
	CurrentPeriodStart time.Time    `gorm:"not null"`
	CurrentPeriodEnd   *time.Time
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

func (Subscription) TableName() string { return "subscriptions" }

// Plan is a static catalog entry. MaxBuildings 0 means unlimited.
type Plan struct {
	Code              string `json:"code"`
	Name              string `json:"name"`
	MonthlyPriceCents int64  `json:"monthly_price_cents"`
	MaxBuildings      int    `json:"max_buildings"`
}

const (
	PlanFree    = "free"
	PlanStarter = "starter"
	PlanPro     = "pro"
)

var Plans = map[string]Plan{
	PlanFree:    {Code: PlanFree, Name: "Free", MonthlyPriceCents: 0, MaxBuildings: 1},
	PlanStarter: {Code: PlanStarter, Name: "Starter", MonthlyPriceCents: 1900, MaxBuildings: 5},
	PlanPro:     {Code: PlanPro, Name: "Pro", MonthlyPriceCents: 4900, MaxBuildings: 0},
}
