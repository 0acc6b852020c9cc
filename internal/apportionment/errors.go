package apportionment

import "errors"

var (
	// ErrInvalidPeriod is returned when period_end is not after period_start.
	ErrInvalidPeriod = errors.New("invalid_period")

	// ErrInvalidReading is returned when a meter reading ends below its start.
	ErrInvalidReading = errors.New("invalid_reading")

	// ErrInvalidAmount covers negative cost or heating amounts and a heating
	// area percentage outside [0,100].
	ErrInvalidAmount = errors.New("invalid_amount")

	// ErrUnknownAllocationKey is returned for a key outside the closed set.
	ErrUnknownAllocationKey = errors.New("unknown_allocation_key")

	// ErrDirectKeyedCostItem is returned when a cost item carries the
	// "direct" key. Directly attributed amounts must be entered as
	// DirectCosts; pooling them would silently drop the amount.
	ErrDirectKeyedCostItem = errors.New("direct_keyed_cost_item")

	// ErrIncompleteSnapshot is returned when a lease references a unit that
	// is missing from the snapshot.
	ErrIncompleteSnapshot = errors.New("incomplete_snapshot")
)
