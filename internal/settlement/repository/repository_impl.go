package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/mietwerklabs/mietwerk/internal/settlement/domain"
	"gorm.io/gorm"
)

type repository struct{}

func Provide() domain.Repository {
	return &repository{}
}

func (r *repository) InsertResults(ctx context.Context, db *gorm.DB, results []domain.Result) error {
	if len(results) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&results).Error
}

func (r *repository) ListResults(ctx context.Context, db *gorm.DB, accountID, periodID snowflake.ID, versionNumber int) ([]domain.Result, error) {
	var results []domain.Result
	err := db.WithContext(ctx).
		Where("account_id = ? AND period_id = ? AND version_number = ?", accountID, periodID, versionNumber).
		Order("lease_id ASC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *repository) InsertVersion(ctx context.Context, db *gorm.DB, version *domain.Version) error {
	return db.WithContext(ctx).Create(version).Error
}

func (r *repository) LatestVersion(ctx context.Context, db *gorm.DB, accountID, periodID snowflake.ID) (*domain.Version, error) {
	var version domain.Version
	err := db.WithContext(ctx).
		Where("account_id = ? AND period_id = ?", accountID, periodID).
		Order("version_number DESC").
		First(&version).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &version, nil
}

func (r *repository) ListVersions(ctx context.Context, db *gorm.DB, accountID, periodID snowflake.ID) ([]domain.Version, error) {
	var versions []domain.Version
	err := db.WithContext(ctx).
		Where("account_id = ? AND period_id = ?", accountID, periodID).
		Order("version_number DESC").
		Find(&versions).Error
	if err != nil {
		return nil, err
	}
	return versions, nil
}

func (r *repository) PruneVersionsBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	var pruned int64
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stale []domain.Version
		// The newest version per period survives regardless of age.
		err := tx.
			Where("created_at < ?", cutoff).
			Where(`version_number < (
				SELECT MAX(v2.version_number) FROM settlement_versions v2
				WHERE v2.period_id = settlement_versions.period_id
			)`).
			Find(&stale).Error
		if err != nil {
			return err
		}
		for _, v := range stale {
			err := tx.
				Where("period_id = ? AND version_number = ?", v.PeriodID, v.VersionNumber).
				Delete(&domain.Result{}).Error
			if err != nil {
				return err
			}
			if err := tx.Delete(&domain.Version{}, "id = ?", v.ID).Error; err != nil {
				return err
			}
		}
		pruned = int64(len(stale))
		return nil
	})
	if err != nil {
		return 0, err
	}
	return pruned, nil
}
