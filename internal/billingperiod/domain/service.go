package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Get(ctx context.Context, id string) (*DetailResponse, error)
	ListByBuilding(ctx context.Context, buildingID string) ([]Response, error)
	Delete(ctx context.Context, id string) error

	SetHeating(ctx context.Context, req SetHeatingRequest) (*Response, error)

	AddCostItem(ctx context.Context, req AddCostItemRequest) (*CostItemResponse, error)
	UpdateCostItem(ctx context.Context, req UpdateCostItemRequest) (*CostItemResponse, error)
	DeleteCostItem(ctx context.Context, periodID, itemID string) error

	AttachReceipt(ctx context.Context, req AttachReceiptRequest) (*ReceiptResponse, error)
	DeleteReceipt(ctx context.Context, periodID, receiptID string) error

	AddDirectCost(ctx context.Context, req AddDirectCostRequest) (*DirectCostResponse, error)
	DeleteDirectCost(ctx context.Context, periodID, directCostID string) error

	UpsertMeterReading(ctx context.Context, req UpsertMeterReadingRequest) (*MeterReadingResponse, error)
	DeleteMeterReading(ctx context.Context, periodID, readingID string) error
}

type CreateRequest struct {
	BuildingID  string    `json:"building_id"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
}

type SetHeatingRequest struct {
	PeriodID       string   `json:"period_id"`
	TotalCents     *int64   `json:"total_cents"`
	AreaPercentage *float64 `json:"area_percentage"`
}

type AddCostItemRequest struct {
	PeriodID      string `json:"period_id"`
	CostType      string `json:"cost_type"`
	Label         string `json:"label,omitempty"`
	AmountCents   int64  `json:"amount_cents"`
	AllocationKey string `json:"allocation_key"`
}

type UpdateCostItemRequest struct {
	PeriodID      string  `json:"period_id"`
	ItemID        string  `json:"item_id"`
	CostType      *string `json:"cost_type,omitempty"`
	Label         *string `json:"label,omitempty"`
	AmountCents   *int64  `json:"amount_cents,omitempty"`
	AllocationKey *string `json:"allocation_key,omitempty"`
}

type AttachReceiptRequest struct {
	PeriodID   string `json:"period_id"`
	CostItemID string `json:"cost_item_id"`
	FileName   string `json:"file_name"`
	MimeType   string `json:"mime_type"`
	SizeBytes  int64  `json:"size_bytes"`
	StorageKey string `json:"storage_key"`
}

type AddDirectCostRequest struct {
	PeriodID    string `json:"period_id"`
	LeaseID     string `json:"lease_id"`
	Label       string `json:"label"`
	AmountCents int64  `json:"amount_cents"`
}

type UpsertMeterReadingRequest struct {
	PeriodID     string  `json:"period_id"`
	UnitID       string  `json:"unit_id"`
	ReadingStart float64 `json:"reading_start"`
	ReadingEnd   float64 `json:"reading_end"`
}

type Response struct {
	ID                    string    `json:"id"`
	BuildingID            string    `json:"building_id"`
	PeriodStart           time.Time `json:"period_start"`
	PeriodEnd             time.Time `json:"period_end"`
	Status                Status    `json:"status"`
	HeatingTotalCents     *int64    `json:"heating_total_cents,omitempty"`
	HeatingAreaPercentage *float64  `json:"heating_area_percentage,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

type DetailResponse struct {
	Response
	CostItems     []CostItemResponse     `json:"cost_items"`
	DirectCosts   []DirectCostResponse   `json:"direct_costs"`
	MeterReadings []MeterReadingResponse `json:"meter_readings"`
}

type CostItemResponse struct {
	ID            string            `json:"id"`
	CostType      string            `json:"cost_type"`
	Label         string            `json:"label"`
	AmountCents   int64             `json:"amount_cents"`
	AllocationKey string            `json:"allocation_key"`
	Receipts      []ReceiptResponse `json:"receipts,omitempty"`
}

type ReceiptResponse struct {
	ID         string    `json:"id"`
	CostItemID string    `json:"cost_item_id"`
	FileName   string    `json:"file_name"`
	MimeType   string    `json:"mime_type"`
	SizeBytes  int64     `json:"size_bytes"`
	StorageKey string    `json:"storage_key"`
	CreatedAt  time.Time `json:"created_at"`
}

type DirectCostResponse struct {
	ID          string `json:"id"`
	LeaseID     string `json:"lease_id"`
	Label       string `json:"label"`
	AmountCents int64  `json:"amount_cents"`
}

type MeterReadingResponse struct {
	ID           string  `json:"id"`
	UnitID       string  `json:"unit_id"`
	ReadingStart float64 `json:"reading_start"`
	ReadingEnd   float64 `json:"reading_end"`
}

var (
	ErrInvalidAccount       = errors.New("invalid_account")
	ErrInvalidID            = errors.New("invalid_id")
	ErrInvalidBuilding      = errors.New("invalid_building")
	ErrInvalidPeriod        = errors.New("invalid_period")
	ErrInvalidCostType      = errors.New("invalid_cost_type")
	ErrInvalidAmount        = errors.New("invalid_amount")
	ErrInvalidAllocationKey = errors.New("invalid_allocation_key")
	ErrInvalidLease         = errors.New("invalid_lease")
	ErrInvalidUnit          = errors.New("invalid_unit")
	ErrInvalidReading       = errors.New("invalid_reading")
	ErrInvalidHeating       = errors.New("invalid_heating")
	ErrInvalidReceipt       = errors.New("invalid_receipt")
	ErrPeriodLocked         = errors.New("period_locked")
	ErrInvalidTransition    = errors.New("invalid_transition")
	ErrNotFound             = errors.New("not_found")
)
