package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/mietwerklabs/mietwerk/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, building *Building) error
	FindByID(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*Building, error)
	List(ctx context.Context, db *gorm.DB, accountID snowflake.ID, filter ListRequest, page pagination.Pagination) ([]*Building, error)
	Update(ctx context.Context, db *gorm.DB, building *Building) error
	Delete(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) error
	Count(ctx context.Context, db *gorm.DB, accountID snowflake.ID) (int64, error)
}
