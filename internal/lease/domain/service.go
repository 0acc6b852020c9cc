package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	ListByBuilding(ctx context.Context, buildingID string) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	UnitID                 string     `json:"unit_id"`
	TenantID               string     `json:"tenant_id"`
	StartDate              time.Time  `json:"start_date"`
	EndDate                *time.Time `json:"end_date,omitempty"`
	MonthlyPrepaymentCents int64      `json:"monthly_prepayment_cents"`
	PersonsCount           int        `json:"persons_count"`
}

type UpdateRequest struct {
	ID                     string     `json:"id"`
	StartDate              *time.Time `json:"start_date,omitempty"`
	EndDate                *time.Time `json:"end_date,omitempty"`
	ClearEndDate           bool       `json:"clear_end_date,omitempty"`
	MonthlyPrepaymentCents *int64     `json:"monthly_prepayment_cents,omitempty"`
	PersonsCount           *int       `json:"persons_count,omitempty"`
}

type Response struct {
	ID                     string     `json:"id"`
	UnitID                 string     `json:"unit_id"`
	TenantID               string     `json:"tenant_id"`
	StartDate              time.Time  `json:"start_date"`
	EndDate                *time.Time `json:"end_date,omitempty"`
	MonthlyPrepaymentCents int64      `json:"monthly_prepayment_cents"`
	PersonsCount           int        `json:"persons_count"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

var (
	ErrInvalidAccount    = errors.New("invalid_account")
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidUnit       = errors.New("invalid_unit")
	ErrInvalidTenant     = errors.New("invalid_tenant")
	ErrInvalidDates      = errors.New("invalid_dates")
	ErrInvalidPrepayment = errors.New("invalid_prepayment")
	ErrInvalidPersons    = errors.New("invalid_persons")
	ErrNotFound          = errors.New("not_found")
)
