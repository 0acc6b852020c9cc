package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/mietwerklabs/mietwerk/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, tenant *Tenant) error
	FindByID(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*Tenant, error)
	FindByIDs(ctx context.Context, db *gorm.DB, accountID snowflake.ID, ids []snowflake.ID) ([]Tenant, error)
	List(ctx context.Context, db *gorm.DB, accountID snowflake.ID, filter ListRequest, page pagination.Pagination) ([]*Tenant, error)
	Update(ctx context.Context, db *gorm.DB, tenant *Tenant) error
	Delete(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) error
}
