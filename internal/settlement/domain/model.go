package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Result is one persisted per-lease settlement row. Rows are immutable;
// a recalculation writes a fresh set under the next version number.
type Result struct {
	ID            snowflake.ID `gorm:"primaryKey;autoIncrement:false"`
	AccountID     snowflake.ID `gorm:"not null;index"`
	PeriodID      snowflake.ID `gorm:"not null;index"`
	LeaseID       snowflake.ID `gorm:"not null;index"`
	VersionNumber int          `gorm:"not null"`

	PrepaymentTotalCents    int64 `gorm:"not null"`
	OperatingCostShareCents int64 `gorm:"not null"`
	HeatingCostShareCents   int64 `gorm:"not null"`
	DirectCostsTotalCents   int64 `gorm:"not null"`
	TotalCostShareCents     int64 `gorm:"not null"`
	BalanceCents            int64 `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

func (Result) TableName() string { return "settlement_results" }

// Version records one settlement run over a period with its aggregate
// totals and a short human-readable summary of what changed.
type Version struct {
	ID            snowflake.ID `gorm:"primaryKey;autoIncrement:false"`
	AccountID     snowflake.ID `gorm:"not null;index"`
	PeriodID      snowflake.ID `gorm:"not null;index:idx_settlement_versions_period_number,unique"`
	VersionNumber int          `gorm:"not null;index:idx_settlement_versions_period_number,unique"`

	ChangeSummary         string `gorm:"not null"`
	TotalCostsCents       int64  `gorm:"not null"`
	TotalPrepaymentsCents int64  `gorm:"not null"`
	Months                int    `gorm:"not null"`
	OrphanedDirectCosts   int    `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

func (Version) TableName() string { return "settlement_versions" }
