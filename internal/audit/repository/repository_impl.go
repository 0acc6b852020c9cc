package repository

import (
	"context"
	"time"

	"github.com/mietwerklabs/mietwerk/internal/audit/domain"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, log *domain.AuditLog) error
	DeleteBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error)
}

type repository struct{}

func Provide() Repository {
	return &repository{}
}

func (r *repository) Insert(ctx context.Context, db *gorm.DB, log *domain.AuditLog) error {
	return db.WithContext(ctx).Create(log).Error
}

func (r *repository) DeleteBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&domain.AuditLog{})
	return res.RowsAffected, res.Error
}
