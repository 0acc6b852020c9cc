package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, unit *Unit) error
	FindByID(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*Unit, error)
	FindByBuilding(ctx context.Context, db *gorm.DB, accountID, buildingID snowflake.ID) ([]Unit, error)
	FindByIDs(ctx context.Context, db *gorm.DB, accountID snowflake.ID, ids []snowflake.ID) ([]Unit, error)
	Update(ctx context.Context, db *gorm.DB, unit *Unit) error
	Delete(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) error
}
