package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/mietwerklabs/mietwerk/internal/building/domain"
	"github.com/mietwerklabs/mietwerk/pkg/db/option"
	"github.com/mietwerklabs/mietwerk/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, building *domain.Building) error {
	return db.WithContext(ctx).Create(building).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*domain.Building, error) {
	var b domain.Building
	err := db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		First(&b).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, accountID snowflake.ID, filter domain.ListRequest, page pagination.Pagination) ([]*domain.Building, error) {
	var items []*domain.Building
	stmt := db.WithContext(ctx).
		Model(&domain.Building{}).
		Where("account_id = ?", accountID)

	if filter.City != "" {
		stmt = stmt.Where("city = ?", filter.City)
	}

	if page.PageToken == "" {
		stmt = option.WithSortBy(option.WithQuerySortBy(filter.SortBy, filter.OrderBy, map[string]bool{
			"created_at": true,
			"updated_at": true,
			"name":       true,
			"city":       true,
		})).Apply(stmt)
	}

	stmt = option.ApplyPagination(page).Apply(stmt)
	if page.PageToken != "" || page.PageSize > 0 {
		stmt = stmt.Order("created_at desc, id desc")
	}

	if err := stmt.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, building *domain.Building) error {
	if building == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).
		Model(&domain.Building{}).
		Where("account_id = ? AND id = ?", building.AccountID, building.ID).
		Updates(map[string]any{
			"slug":         building.Slug,
			"name":         building.Name,
			"street":       building.Street,
			"house_number": building.HouseNumber,
			"postal_code":  building.PostalCode,
			"city":         building.City,
			"total_area":   building.TotalArea,
			"updated_at":   building.UpdatedAt,
		}).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		Delete(&domain.Building{}).Error
}

func (r *repo) Count(ctx context.Context, db *gorm.DB, accountID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Building{}).
		Where("account_id = ?", accountID).
		Count(&count).Error
	return count, err
}
