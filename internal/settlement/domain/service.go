package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	// Run assembles the period snapshot, calculates the apportionment and
	// persists a new result version inside one transaction. The period
	// moves to calculated.
	Run(ctx context.Context, periodID string) (*RunResponse, error)

	// Results returns the latest version's per-lease rows.
	Results(ctx context.Context, periodID string) (*ResultsResponse, error)

	Versions(ctx context.Context, periodID string) ([]VersionResponse, error)

	// MarkSent renders and dispatches the settlement statements, then
	// moves the period from calculated to sent.
	MarkSent(ctx context.Context, periodID string) error

	// MarkCompleted closes a sent period.
	MarkCompleted(ctx context.Context, periodID string) error

	ExportCSV(ctx context.Context, periodID string) ([]byte, error)
	ExportXLSX(ctx context.Context, periodID string) ([]byte, error)
}

// Statement is one tenant-facing settlement letter handed to the sender.
type Statement struct {
	TenantName  string
	TenantEmail string
	UnitName    string
	BuildingID  string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Result      ResultRow
}

// Sender dispatches rendered settlement statements to tenants.
type Sender interface {
	SendStatements(ctx context.Context, statements []Statement) error
}

type RunResponse struct {
	PeriodID            string    `json:"period_id"`
	VersionNumber       int       `json:"version_number"`
	ChangeSummary       string    `json:"change_summary"`
	Months              int       `json:"months"`
	OrphanedDirectCosts int       `json:"orphaned_direct_costs"`
	TotalCostsCents     int64     `json:"total_costs_cents"`
	TotalPrepaymentsCents int64   `json:"total_prepayments_cents"`
	Results             []ResultRow `json:"results"`
	CreatedAt           time.Time `json:"created_at"`
}

type ResultsResponse struct {
	PeriodID      string      `json:"period_id"`
	VersionNumber int         `json:"version_number"`
	Results       []ResultRow `json:"results"`
}

type ResultRow struct {
	LeaseID                 string `json:"lease_id"`
	TenantName              string `json:"tenant_name"`
	UnitName                string `json:"unit_name"`
	PrepaymentTotalCents    int64  `json:"prepayment_total_cents"`
	OperatingCostShareCents int64  `json:"operating_cost_share_cents"`
	HeatingCostShareCents   int64  `json:"heating_cost_share_cents"`
	DirectCostsTotalCents   int64  `json:"direct_costs_total_cents"`
	TotalCostShareCents     int64  `json:"total_cost_share_cents"`
	BalanceCents            int64  `json:"balance_cents"`
}

type VersionResponse struct {
	VersionNumber         int       `json:"version_number"`
	ChangeSummary         string    `json:"change_summary"`
	TotalCostsCents       int64     `json:"total_costs_cents"`
	TotalPrepaymentsCents int64     `json:"total_prepayments_cents"`
	Months                int       `json:"months"`
	OrphanedDirectCosts   int       `json:"orphaned_direct_costs"`
	CreatedAt             time.Time `json:"created_at"`
}

var (
	ErrInvalidAccount    = errors.New("invalid_account")
	ErrInvalidID         = errors.New("invalid_id")
	ErrNotFound          = errors.New("not_found")
	ErrNoResults         = errors.New("no_results")
	ErrNoLeases          = errors.New("no_leases")
	ErrPeriodLocked      = errors.New("period_locked")
	ErrInvalidTransition = errors.New("invalid_transition")
)
