package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/mietwerklabs/mietwerk/internal/lease/domain"
	"gorm.io/gorm"
)

type repository struct{}

func Provide() domain.Repository {
	return &repository{}
}

func (r *repository) Insert(ctx context.Context, db *gorm.DB, lease *domain.Lease) error {
	return db.WithContext(ctx).Create(lease).Error
}

func (r *repository) FindByID(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*domain.Lease, error) {
	var lease domain.Lease
	err := db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		First(&lease).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lease, nil
}

func (r *repository) FindByIDs(ctx context.Context, db *gorm.DB, accountID snowflake.ID, ids []snowflake.ID) ([]domain.Lease, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var leases []domain.Lease
	err := db.WithContext(ctx).
		Where("account_id = ? AND id IN ?", accountID, ids).
		Find(&leases).Error
	if err != nil {
		return nil, err
	}
	return leases, nil
}

func (r *repository) FindByBuilding(ctx context.Context, db *gorm.DB, accountID, buildingID snowflake.ID) ([]domain.Lease, error) {
	var leases []domain.Lease
	err := db.WithContext(ctx).
		Joins("JOIN units ON units.id = leases.unit_id").
		Where("leases.account_id = ? AND units.building_id = ?", accountID, buildingID).
		Order("leases.created_at ASC, leases.id ASC").
		Find(&leases).Error
	if err != nil {
		return nil, err
	}
	return leases, nil
}

func (r *repository) Update(ctx context.Context, db *gorm.DB, lease *domain.Lease) error {
	return db.WithContext(ctx).
		Where("account_id = ? AND id = ?", lease.AccountID, lease.ID).
		Save(lease).Error
}

func (r *repository) Delete(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		Delete(&domain.Lease{}).Error
}
