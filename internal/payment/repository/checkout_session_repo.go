package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/mietwerklabs/mietwerk/internal/payment/domain"
	"gorm.io/gorm"
)

type checkoutSessionRepo struct{}

func Provide() domain.CheckoutSessionRepository {
	return &checkoutSessionRepo{}
}

func (r *checkoutSessionRepo) Insert(ctx context.Context, db *gorm.DB, session *domain.CheckoutSession) error {
	return db.WithContext(ctx).Create(session).Error
}

func (r *checkoutSessionRepo) Update(ctx context.Context, db *gorm.DB, session *domain.CheckoutSession) error {
	return db.WithContext(ctx).
		Where("id = ?", session.ID).
		Save(session).Error
}

func (r *checkoutSessionRepo) FindByID(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*domain.CheckoutSession, error) {
	var session domain.CheckoutSession
	err := db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *checkoutSessionRepo) FindByProviderSessionID(ctx context.Context, db *gorm.DB, provider, providerSessionID string) (*domain.CheckoutSession, error) {
	var session domain.CheckoutSession
	err := db.WithContext(ctx).
		Where("provider = ? AND provider_session_id = ?", provider, providerSessionID).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *checkoutSessionRepo) ExpireOpen(ctx context.Context, db *gorm.DB, olderThan time.Time) (int64, error) {
	now := time.Now().UTC()
	res := db.WithContext(ctx).
		Model(&domain.CheckoutSession{}).
		Where("status = ?", domain.CheckoutSessionStatusOpen).
		Where("created_at < ?", olderThan).
		Updates(map[string]any{
			"status":     domain.CheckoutSessionStatusExpired,
			"expires_at": now,
			"updated_at": now,
		})
	return res.RowsAffected, res.Error
}
