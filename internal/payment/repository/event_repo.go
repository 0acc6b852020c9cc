package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/mietwerklabs/mietwerk/internal/payment/domain"
	"gorm.io/gorm"
)

type eventRepo struct{}

func ProvideEventRepo() domain.EventRepository {
	return &eventRepo{}
}

func (r *eventRepo) Insert(ctx context.Context, db *gorm.DB, record *domain.EventRecord) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *eventRepo) Exists(ctx context.Context, db *gorm.DB, provider, providerEventID string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.EventRecord{}).
		Where("provider = ? AND provider_event_id = ?", provider, providerEventID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *eventRepo) MarkProcessed(ctx context.Context, db *gorm.DB, id snowflake.ID, at time.Time) error {
	return db.WithContext(ctx).
		Model(&domain.EventRecord{}).
		Where("id = ?", id).
		Update("processed_at", at).Error
}
