package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, period *BillingPeriod) error
	FindByID(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*BillingPeriod, error)
	FindByBuilding(ctx context.Context, db *gorm.DB, accountID, buildingID snowflake.ID) ([]BillingPeriod, error)
	Update(ctx context.Context, db *gorm.DB, period *BillingPeriod) error
	Delete(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) error

	InsertCostItem(ctx context.Context, db *gorm.DB, item *CostItem) error
	FindCostItem(ctx context.Context, db *gorm.DB, accountID, periodID, itemID snowflake.ID) (*CostItem, error)
	ListCostItems(ctx context.Context, db *gorm.DB, accountID, periodID snowflake.ID) ([]CostItem, error)
	UpdateCostItem(ctx context.Context, db *gorm.DB, item *CostItem) error
	DeleteCostItem(ctx context.Context, db *gorm.DB, accountID, periodID, itemID snowflake.ID) error

	InsertReceipt(ctx context.Context, db *gorm.DB, receipt *Receipt) error
	FindReceipt(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*Receipt, error)
	ListReceiptsByCostItems(ctx context.Context, db *gorm.DB, accountID snowflake.ID, costItemIDs []snowflake.ID) ([]Receipt, error)
	DeleteReceipt(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) error

	InsertDirectCost(ctx context.Context, db *gorm.DB, cost *DirectCost) error
	ListDirectCosts(ctx context.Context, db *gorm.DB, accountID, periodID snowflake.ID) ([]DirectCost, error)
	DeleteDirectCost(ctx context.Context, db *gorm.DB, accountID, periodID, id snowflake.ID) error

	UpsertMeterReading(ctx context.Context, db *gorm.DB, reading *MeterReading) error
	ListMeterReadings(ctx context.Context, db *gorm.DB, accountID, periodID snowflake.ID) ([]MeterReading, error)
	DeleteMeterReading(ctx context.Context, db *gorm.DB, accountID, periodID, id snowflake.ID) error
}
