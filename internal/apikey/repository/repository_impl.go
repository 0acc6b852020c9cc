package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/mietwerklabs/mietwerk/internal/apikey/domain"
	"gorm.io/gorm"
)

type repository struct{}

func Provide() domain.Repository {
	return &repository{}
}

func (r *repository) Insert(ctx context.Context, db *gorm.DB, key *domain.APIKey) error {
	return db.WithContext(ctx).Create(key).Error
}

func (r *repository) FindByAccount(ctx context.Context, db *gorm.DB, accountID snowflake.ID) ([]domain.APIKey, error) {
	var keys []domain.APIKey
	err := db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&keys).Error
	return keys, err
}

func (r *repository) FindByID(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*domain.APIKey, error) {
	var key domain.APIKey
	err := db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		First(&key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &key, nil
}

func (r *repository) Deactivate(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) error {
	res := db.WithContext(ctx).
		Model(&domain.APIKey{}).
		Where("account_id = ? AND id = ?", accountID, id).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
