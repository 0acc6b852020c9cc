package apportionment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateRejectsInvertedPeriod(t *testing.T) {
	s := Snapshot{Period: Period{
		Start: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}}
	_, err := Calculate(s)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestValidateRejectsInvertedReading(t *testing.T) {
	s := yearSnapshot()
	s.Units = []Unit{{ID: 1, Area: 50}}
	s.Leases = []Lease{{ID: 10, UnitID: 1, PersonsCount: 1}}
	s.MeterReadings = []MeterReading{{UnitID: 1, ReadingStart: 500, ReadingEnd: 400}}

	_, err := Calculate(s)
	assert.ErrorIs(t, err, ErrInvalidReading)
}

func TestValidateRejectsNegativeAmounts(t *testing.T) {
	s := yearSnapshot()
	s.CostItems = []CostItem{{Type: CostTypeInsurance, AmountCents: -1, Key: AllocationArea}}
	_, err := Calculate(s)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	s = yearSnapshot()
	s.DirectCosts = []DirectCost{{LeaseID: 10, AmountCents: -500}}
	_, err = Calculate(s)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	s = yearSnapshot()
	s.Heating = HeatingConfig{TotalCents: -100, AreaPercentage: 30}
	_, err = Calculate(s)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestValidateRejectsPercentageOutOfRange(t *testing.T) {
	s := yearSnapshot()
	s.Heating = HeatingConfig{TotalCents: 1000, AreaPercentage: 100.5}
	_, err := Calculate(s)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestValidateRejectsUnknownKey(t *testing.T) {
	s := yearSnapshot()
	s.CostItems = []CostItem{{Type: CostTypeInsurance, AmountCents: 100, Key: "square_roots"}}
	_, err := Calculate(s)
	assert.ErrorIs(t, err, ErrUnknownAllocationKey)
}

func TestValidateRejectsDirectKeyedCostItem(t *testing.T) {
	s := yearSnapshot()
	s.CostItems = []CostItem{{Type: CostTypeOtherOperating, AmountCents: 100, Key: AllocationDirect}}
	_, err := Calculate(s)
	assert.ErrorIs(t, err, ErrDirectKeyedCostItem)
}

func TestValidateRejectsLeaseWithMissingUnit(t *testing.T) {
	s := yearSnapshot()
	s.Leases = []Lease{{ID: 10, UnitID: 77, PersonsCount: 1}}
	_, err := Calculate(s)
	assert.ErrorIs(t, err, ErrIncompleteSnapshot)
}
