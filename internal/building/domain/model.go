package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Building is a property owned by one landlord account. TotalArea is the
// building's full floor area in m²; unit areas are tracked per unit and may
// legitimately sum below it (common areas).
type Building struct {
	ID          snowflake.ID `gorm:"primaryKey;autoIncrement:false"`
	AccountID   snowflake.ID `gorm:"not null;index"`
	Slug        string       `gorm:"type:text;not null"`
	Name        string       `gorm:"type:text;not null"`
	Street      string       `gorm:"type:text;not null"`
	HouseNumber string       `gorm:"type:text;not null"`
	PostalCode  string       `gorm:"type:text;not null"`
	City        string       `gorm:"type:text;not null"`
	TotalArea   float64      `gorm:"not null"`
	CreatedAt   time.Time    `gorm:"not null"`
	UpdatedAt   time.Time    `gorm:"not null"`
}

func (Building) TableName() string { return "buildings" }
