package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, sub *Subscription) error
	FindByAccount(ctx context.Context, db *gorm.DB, accountID snowflake.ID) (*Subscription, error)
	Update(ctx context.Context, db *gorm.DB, sub *Subscription) error

	// ExpireLapsed moves active and past_due rows whose period ended
	// before now to expired, in one statement.
	ExpireLapsed(ctx context.Context, db *gorm.DB, now time.Time) (int64, error)
}
