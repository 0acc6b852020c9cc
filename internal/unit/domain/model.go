package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Unit is one rentable unit inside a building. HasHeatingMeter marks units
// whose consumption participates in the consumption-keyed allocation.
type Unit struct {
	ID              snowflake.ID `gorm:"primaryKey;autoIncrement:false"`
	AccountID       snowflake.ID `gorm:"not null;index"`
	BuildingID      snowflake.ID `gorm:"not null;index"`
	Name            string       `gorm:"type:text;not null"`
	Area            float64      `gorm:"not null"`
	Floor           *int
	Rooms           *float64
	HasHeatingMeter bool      `gorm:"not null;default:false"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

func (Unit) TableName() string { return "units" }
