package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, lease *Lease) error
	FindByID(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*Lease, error)
	FindByIDs(ctx context.Context, db *gorm.DB, accountID snowflake.ID, ids []snowflake.ID) ([]Lease, error)
	FindByBuilding(ctx context.Context, db *gorm.DB, accountID, buildingID snowflake.ID) ([]Lease, error)
	Update(ctx context.Context, db *gorm.DB, lease *Lease) error
	Delete(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) error
}
