package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/mietwerklabs/mietwerk/internal/tenant/domain"
	"github.com/mietwerklabs/mietwerk/pkg/db/option"
	"github.com/mietwerklabs/mietwerk/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, tenant *domain.Tenant) error {
	return db.WithContext(ctx).Create(tenant).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*domain.Tenant, error) {
	var t domain.Tenant
	err := db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		First(&t).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *repo) FindByIDs(ctx context.Context, db *gorm.DB, accountID snowflake.ID, ids []snowflake.ID) ([]domain.Tenant, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tenants []domain.Tenant
	err := db.WithContext(ctx).
		Where("account_id = ? AND id IN ?", accountID, ids).
		Find(&tenants).Error
	return tenants, err
}

func (r *repo) List(ctx context.Context, db *gorm.DB, accountID snowflake.ID, filter domain.ListRequest, page pagination.Pagination) ([]*domain.Tenant, error) {
	var items []*domain.Tenant
	stmt := db.WithContext(ctx).
		Model(&domain.Tenant{}).
		Where("account_id = ?", accountID)

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		stmt = stmt.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", pattern, pattern)
	}

	if page.PageToken == "" {
		stmt = option.WithSortBy(option.WithQuerySortBy(filter.SortBy, filter.OrderBy, map[string]bool{
			"created_at": true,
			"updated_at": true,
			"last_name":  true,
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

func (r *repo) Update(ctx context.Context, db *gorm.DB, tenant *domain.Tenant) error {
	if tenant == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).
		Model(&domain.Tenant{}).
		Where("account_id = ? AND id = ?", tenant.AccountID, tenant.ID).
		Updates(map[string]any{
			"first_name": tenant.FirstName,
			"last_name":  tenant.LastName,
			"email":      tenant.Email,
			"phone":      tenant.Phone,
			"iban":       tenant.IBAN,
			"bic":        tenant.BIC,
			"updated_at": tenant.UpdatedAt,
		}).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		Delete(&domain.Tenant{}).Error
}
