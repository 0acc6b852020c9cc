package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Tenant is a person record. Banking details are kept for refund transfers
// on settlement credits.
type Tenant struct {
	ID        snowflake.ID `gorm:"primaryKey;autoIncrement:false"`
	AccountID snowflake.ID `gorm:"not null;index"`
	FirstName string       `gorm:"type:text;not null"`
	LastName  string       `gorm:"type:text;not null"`
	Email     *string      `gorm:"type:text"`
	Phone     *string      `gorm:"type:text"`
	IBAN      *string      `gorm:"type:text"`
	BIC       *string      `gorm:"type:text"`
	CreatedAt time.Time    `gorm:"not null"`
	UpdatedAt time.Time    `gorm:"not null"`
}

func (Tenant) TableName() string { return "tenants" }
