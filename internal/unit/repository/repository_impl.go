package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/mietwerklabs/mietwerk/internal/unit/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, unit *domain.Unit) error {
	return db.WithContext(ctx).Create(unit).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*domain.Unit, error) {
	var u domain.Unit
	err := db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *repo) FindByBuilding(ctx context.Context, db *gorm.DB, accountID, buildingID snowflake.ID) ([]domain.Unit, error) {
	var units []domain.Unit
	err := db.WithContext(ctx).
		Where("account_id = ? AND building_id = ?", accountID, buildingID).
		Order("name ASC").
		Find(&units).Error
	return units, err
}

func (r *repo) FindByIDs(ctx context.Context, db *gorm.DB, accountID snowflake.ID, ids []snowflake.ID) ([]domain.Unit, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var units []domain.Unit
	err := db.WithContext(ctx).
		Where("account_id = ? AND id IN ?", accountID, ids).
		Find(&units).Error
	return units, err
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, unit *domain.Unit) error {
	if unit == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).
		Model(&domain.Unit{}).
		Where("account_id = ? AND id = ?", unit.AccountID, unit.ID).
		Updates(map[string]any{
			"name":              unit.Name,
			"area":              unit.Area,
			"floor":             unit.Floor,
			"rooms":             unit.Rooms,
			"has_heating_meter": unit.HasHeatingMeter,
			"updated_at":        unit.UpdatedAt,
		}).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		Delete(&domain.Unit{}).Error
}
