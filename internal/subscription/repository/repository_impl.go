package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/mietwerklabs/mietwerk/internal/subscription/domain"
	"gorm.io/gorm"
)

type repository struct{}

func Provide() domain.Repository {
	return &repository{}
}

func (r *repository) Insert(ctx context.Context, db *gorm.DB, sub *domain.Subscription) error {
	return db.WithContext(ctx).Create(sub).Error
}

func (r *repository) FindByAccount(ctx context.Context, db *gorm.DB, accountID snowflake.ID) (*domain.Subscription, error) {
	var sub domain.Subscription
	err := db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *repository) Update(ctx context.Context, db *gorm.DB, sub *domain.Subscription) error {
	return db.WithContext(ctx).
		Where("account_id = ?", sub.AccountID).
		Save(sub).Error
}

func (r *repository) ExpireLapsed(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Model(&domain.Subscription{}).
		Where("status IN ?", []domain.Status{domain.StatusActive, domain.StatusPastDue}).
		Where("current_period_end IS NOT NULL AND current_period_end < ?", now).
		Updates(map[string]any{
			"status":     domain.StatusExpired,
			"updated_at": now,
		})
	return res.RowsAffected, res.Error
}
