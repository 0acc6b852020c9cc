// Package apportionment implements the BetrKV operating-cost apportionment
// for a billing period: pooled costs are distributed across the selected
// leases by allocation key, heating costs are split into an area-based and a
// consumption-based portion, directly attributed costs are added per lease,
// and the result is reconciled against the tenant's prepayments.
//
// The package is pure. It performs no I/O, never mutates its inputs and is
// safe to invoke concurrently. Monetary amounts are euro cents (int64);
// weights (area, persons, consumption) are float64.
package apportionment

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// AllocationKey is the weighting basis used to distribute a pooled cost.
type AllocationKey string

const (
	AllocationArea        AllocationKey = "area"
	AllocationPersons     AllocationKey = "persons"
	AllocationUnits       AllocationKey = "units"
	AllocationConsumption AllocationKey = "consumption"

	// AllocationDirect marks a cost that is attributed to exactly one lease.
	// It is valid for DirectCost only; a CostItem carrying this key is
	// rejected during validation instead of being pooled.
	AllocationDirect AllocationKey = "direct"
)

// Period is the billing window. End must be after Start.
type Period struct {
	Start time.Time
	End   time.Time
}

// Unit is the rentable unit a lease occupies.
type Unit struct {
	ID   snowflake.ID
	Area float64
}

// Lease is one tenancy selected for the billing run. The caller guarantees
// at most one active lease per unit and date; the engine does not check.
type Lease struct {
	ID                     snowflake.ID
	UnitID                 snowflake.ID
	PersonsCount           int
	MonthlyPrepaymentCents int64
}

// CostItem is one recorded operating cost, already flattened: standard
// BetrKV categories and custom categories participate identically, the type
// and label are display metadata only.
type CostItem struct {
	Type        string
	Label       string
	AmountCents int64
	Key         AllocationKey
}

// DirectCost is attributed 1:1 to a lease, never pooled.
type DirectCost struct {
	LeaseID     snowflake.ID
	Description string
	AmountCents int64
}

// MeterReading holds the start and end heat-meter values for one unit over
// the billing period. Consumption is End - Start.
type MeterReading struct {
	UnitID       snowflake.ID
	ReadingStart float64
	ReadingEnd   float64
}

// HeatingConfig controls the heating-cost bifurcation. AreaPercentage is the
// share of TotalCents allocated by area; the remainder is allocated by
// consumption.
type HeatingConfig struct {
	TotalCents     int64
	AreaPercentage float64
}

// Snapshot is the immutable input assembled by the caller. Every lease must
// reference a unit present in Units; partially joined input is rejected.
type Snapshot struct {
	Period        Period
	Units         []Unit
	Leases        []Lease
	CostItems     []CostItem
	DirectCosts   []DirectCost
	MeterReadings []MeterReading
	Heating       HeatingConfig
}

// Result is the per-lease settlement. BalanceCents >= 0 means the tenant is
// owed a credit; negative means the tenant owes the difference.
type Result struct {
	LeaseID                 snowflake.ID
	PrepaymentTotalCents    int64
	OperatingCostShareCents int64
	HeatingCostShareCents   int64
	DirectCostsTotalCents   int64
	TotalCostShareCents     int64
	BalanceCents            int64
}

// Outcome carries the per-lease results, in the order of Snapshot.Leases,
// plus run metadata.
type Outcome struct {
	Results []Result

	// Months is the whole-month approximation of the billing period used
	// for prepayment totals: max(1, round(days/30)).
	Months int

	// OrphanedDirectCosts counts direct costs whose lease is not part of
	// the run. Their amounts appear in no result.
	OrphanedDirectCosts int
}
