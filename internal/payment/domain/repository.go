package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type CheckoutSessionRepository interface {
	Insert(ctx context.Context, db *gorm.DB, session *CheckoutSession) error
	Update(ctx context.Context, db *gorm.DB, session *CheckoutSession) error
	FindByID(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*CheckoutSession, error)
	FindByProviderSessionID(ctx context.Context, db *gorm.DB, provider, providerSessionID string) (*CheckoutSession, error)
	ExpireOpen(ctx context.Context, db *gorm.DB, olderThan time.Time) (int64, error)
}

type EventRepository interface {
	Insert(ctx context.Context, db *gorm.DB, record *EventRecord) error
	Exists(ctx context.Context, db *gorm.DB, provider, providerEventID string) (bool, error)
	MarkProcessed(ctx context.Context, db *gorm.DB, id snowflake.ID, at time.Time) error
}
