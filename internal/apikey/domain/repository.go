package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, key *APIKey) error
	FindByAccount(ctx context.Context, db *gorm.DB, accountID snowflake.ID) ([]APIKey, error)
	FindByID(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*APIKey, error)
	Deactivate(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) error
}
