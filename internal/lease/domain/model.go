package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Lease links one tenant to one unit over a date range. EndDate nil means
// open-ended. The caller keeps at most one active lease per unit and date;
// overlapping leases are not rejected here.
type Lease struct {
	ID                     snowflake.ID `gorm:"primaryKey;autoIncrement:false"`
	AccountID              snowflake.ID `gorm:"not null;index"`
	UnitID                 snowflake.ID `gorm:"not null;index"`
	TenantID               snowflake.ID `gorm:"not null;index"`
	StartDate              time.Time    `gorm:"not null"`
	EndDate                *time.Time
	MonthlyPrepaymentCents int64     `gorm:"not null"`
	PersonsCount           int       `gorm:"not null"`
	CreatedAt              time.Time `gorm:"not null"`
	UpdatedAt              time.Time `gorm:"not null"`
}

func (Lease) TableName() string { return "leases" }

// OverlapsPeriod reports whether the lease is active at any point inside
// [start, end).
func (l Lease) OverlapsPeriod(start, end time.Time) bool {
	if !l.StartDate.Before(end) {
		return false
	}
	if l.EndDate != nil && !l.EndDate.After(start) {
		return false
	}
	return true
}
