package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/mietwerklabs/mietwerk/internal/billingperiod/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct{}

func Provide() domain.Repository {
	return &repository{}
}

func (r *repository) Insert(ctx context.Context, db *gorm.DB, period *domain.BillingPeriod) error {
	return db.WithContext(ctx).Create(period).Error
}

func (r *repository) FindByID(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*domain.BillingPeriod, error) {
	var period domain.BillingPeriod
	err := db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		First(&period).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &period, nil
}

func (r *repository) FindByBuilding(ctx context.Context, db *gorm.DB, accountID, buildingID snowflake.ID) ([]domain.BillingPeriod, error) {
	var periods []domain.BillingPeriod
	err := db.WithContext(ctx).
		Where("account_id = ? AND building_id = ?", accountID, buildingID).
		Order("period_start DESC, id DESC").
		Find(&periods).Error
	if err != nil {
		return nil, err
	}
	return periods, nil
}

func (r *repository) Update(ctx context.Context, db *gorm.DB, period *domain.BillingPeriod) error {
	return db.WithContext(ctx).
		Where("account_id = ? AND id = ?", period.AccountID, period.ID).
		Save(period).Error
}

func (r *repository) Delete(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		Delete(&domain.BillingPeriod{}).Error
}

func (r *repository) InsertCostItem(ctx context.Context, db *gorm.DB, item *domain.CostItem) error {
	return db.WithContext(ctx).Create(item).Error
}

func (r *repository) FindCostItem(ctx context.Context, db *gorm.DB, accountID, periodID, itemID snowflake.ID) (*domain.CostItem, error) {
	var item domain.CostItem
	err := db.WithContext(ctx).
		Where("account_id = ? AND period_id = ? AND id = ?", accountID, periodID, itemID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) ListCostItems(ctx context.Context, db *gorm.DB, accountID, periodID snowflake.ID) ([]domain.CostItem, error) {
	var items []domain.CostItem
	err := db.WithContext(ctx).
		Where("account_id = ? AND period_id = ?", accountID, periodID).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) UpdateCostItem(ctx context.Context, db *gorm.DB, item *domain.CostItem) error {
	return db.WithContext(ctx).
		Where("account_id = ? AND id = ?", item.AccountID, item.ID).
		Save(item).Error
}

func (r *repository) DeleteCostItem(ctx context.Context, db *gorm.DB, accountID, periodID, itemID snowflake.ID) error {
	return db.WithContext(ctx).
		Where("account_id = ? AND period_id = ? AND id = ?", accountID, periodID, itemID).
		Delete(&domain.CostItem{}).Error
}

func (r *repository) InsertReceipt(ctx context.Context, db *gorm.DB, receipt *domain.Receipt) error {
	return db.WithContext(ctx).Create(receipt).Error
}

func (r *repository) FindReceipt(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*domain.Receipt, error) {
	var receipt domain.Receipt
	err := db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		First(&receipt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *repository) ListReceiptsByCostItems(ctx context.Context, db *gorm.DB, accountID snowflake.ID, costItemIDs []snowflake.ID) ([]domain.Receipt, error) {
	if len(costItemIDs) == 0 {
		return nil, nil
	}
	var receipts []domain.Receipt
	err := db.WithContext(ctx).
		Where("account_id = ? AND cost_item_id IN ?", accountID, costItemIDs).
		Order("created_at ASC, id ASC").
		Find(&receipts).Error
	if err != nil {
		return nil, err
	}
	return receipts, nil
}

func (r *repository) DeleteReceipt(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		Delete(&domain.Receipt{}).Error
}

func (r *repository) InsertDirectCost(ctx context.Context, db *gorm.DB, cost *domain.DirectCost) error {
	return db.WithContext(ctx).Create(cost).Error
}

func (r *repository) ListDirectCosts(ctx context.Context, db *gorm.DB, accountID, periodID snowflake.ID) ([]domain.DirectCost, error) {
	var costs []domain.DirectCost
	err := db.WithContext(ctx).
		Where("account_id = ? AND period_id = ?", accountID, periodID).
		Order("created_at ASC, id ASC").
		Find(&costs).Error
	if err != nil {
		return nil, err
	}
	return costs, nil
}

func (r *repository) DeleteDirectCost(ctx context.Context, db *gorm.DB, accountID, periodID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("account_id = ? AND period_id = ? AND id = ?", accountID, periodID, id).
		Delete(&domain.DirectCost{}).Error
}

func (r *repository) UpsertMeterReading(ctx context.Context, db *gorm.DB, reading *domain.MeterReading) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "period_id"}, {Name: "unit_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"reading_start", "reading_end", "updated_at",
			}),
		}).
		Create(reading).Error
}

func (r *repository) ListMeterReadings(ctx context.Context, db *gorm.DB, accountID, periodID snowflake.ID) ([]domain.MeterReading, error) {
	var readings []domain.MeterReading
	err := db.WithContext(ctx).
		Where("account_id = ? AND period_id = ?", accountID, periodID).
		Order("created_at ASC, id ASC").
		Find(&readings).Error
	if err != nil {
		return nil, err
	}
	return readings, nil
}

func (r *repository) DeleteMeterReading(ctx context.Context, db *gorm.DB, accountID, periodID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("account_id = ? AND period_id = ? AND id = ?", accountID, periodID, id).
		Delete(&domain.MeterReading{}).Error
}
