package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Status tracks a billing period through its settlement lifecycle.
// Draft periods are freely editable. Once results exist the period is
// calculated; sending the statements and closing the books move it
// forward. Editing a calculated period drops it back to draft so stale
// results can never be sent.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusCalculated Status = "calculated"
	StatusSent       Status = "sent"
	StatusCompleted  Status = "completed"
)

var transitions = map[Status][]Status{
	StatusDraft:      {StatusCalculated},
	StatusCalculated: {StatusDraft, StatusSent},
	StatusSent:       {StatusCompleted},
	StatusCompleted:  {},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Editable reports whether period inputs may still be mutated.
func (s Status) Editable() bool {
	return s == StatusDraft || s == StatusCalculated
}

type BillingPeriod struct {
	ID          snowflake.ID `gorm:"primaryKey;autoIncrement:false"`
	AccountID   snowflake.ID `gorm:"not null;index"`
	BuildingID  snowflake.ID `gorm:"not null;index"`
	PeriodStart time.Time    `gorm:"not null"`
	PeriodEnd   time.Time    `gorm:"not null"`
	Status      Status       `gorm:"not null;default:draft"`

	HeatingTotalCents     *int64
	HeatingAreaPercentage *float64

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (BillingPeriod) TableName() string { return "billing_periods" }

type CostItem struct {
	ID            snowflake.ID `gorm:"primaryKey;autoIncrement:false"`
	AccountID     snowflake.ID `gorm:"not null;index"`
	PeriodID      snowflake.ID `gorm:"not null;index"`
	CostType      string       `gorm:"not null"`
	Label         string       `gorm:"not null"`
	AmountCents   int64        `gorm:"not null"`
	AllocationKey string       `gorm:"not null"`
	CreatedAt     time.Time    `gorm:"not null"`
	UpdatedAt     time.Time    `gorm:"not null"`
}

func (CostItem) TableName() string { return "cost_items" }

// Receipt stores metadata about an uploaded document backing a cost
// item. The bytes themselves live in object storage under StorageKey.
type Receipt struct {
	ID         snowflake.ID `gorm:"primaryKey;autoIncrement:false"`
	AccountID  snowflake.ID `gorm:"not null;index"`
	CostItemID snowflake.ID `gorm:"not null;index"`
	FileName   string       `gorm:"not null"`
	MimeType   string       `gorm:"not null"`
	SizeBytes  int64        `gorm:"not null"`
	StorageKey string       `gorm:"not null"`
	CreatedAt  time.Time    `gorm:"not null"`
}

func (Receipt) TableName() string { return "receipts" }

type DirectCost struct {
	ID          snowflake.ID `gorm:"primaryKey;autoIncrement:false"`
	AccountID   snowflake.ID `gorm:"not null;index"`
	PeriodID    snowflake.ID `gorm:"not null;index"`
	LeaseID     snowflake.ID `gorm:"not null;index"`
	Label       string       `gorm:"not null"`
	AmountCents int64        `gorm:"not null"`
	CreatedAt   time.Time    `gorm:"not null"`
}

func (DirectCost) TableName() string { return "direct_costs" }

type MeterReading struct {
	ID           snowflake.ID `gorm:"primaryKey;autoIncrement:false"`
	AccountID    snowflake.ID `gorm:"not null;index"`
	PeriodID     snowflake.ID `gorm:"not null;index:idx_meter_readings_period_unit,unique"`
	UnitID       snowflake.ID `gorm:"not null;index:idx_meter_readings_period_unit,unique"`
	ReadingStart float64      `gorm:"not null"`
	ReadingEnd   float64      `gorm:"not null"`
	CreatedAt    time.Time    `gorm:"not null"`
	UpdatedAt    time.Time    `gorm:"not null"`
}

func (MeterReading) TableName() string { return "meter_readings" }
