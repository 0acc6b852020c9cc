package apportionment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func yearSnapshot() Snapshot {
	return Snapshot{
		Period: Period{
			Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestAllocateByArea(t *testing.T) {
	s := yearSnapshot()
	s.Units = []Unit{{ID: 1, Area: 50}, {ID: 2, Area: 50}}
	s.Leases = []Lease{
		{ID: 10, UnitID: 1, PersonsCount: 1},
		{ID: 11, UnitID: 2, PersonsCount: 1},
	}
	s.CostItems = []CostItem{{Type: CostTypeInsurance, AmountCents: 100000, Key: AllocationArea}}

	out, err := Calculate(s)
	require.NoError(t, err)
	require.Len(t, out.Results, 2)
	assert.Equal(t, int64(50000), out.Results[0].OperatingCostShareCents)
	assert.Equal(t, int64(50000), out.Results[1].OperatingCostShareCents)
}

func TestAllocateByPersons(t *testing.T) {
	s := yearSnapshot()
	s.Units = []Unit{{ID: 1, Area: 40}, {ID: 2, Area: 60}}
	s.Leases = []Lease{
		{ID: 10, UnitID: 1, PersonsCount: 1},
		{ID: 11, UnitID: 2, PersonsCount: 2},
	}
	s.CostItems = []CostItem{{Type: CostTypeWaterSupply, AmountCents: 60000, Key: AllocationPersons}}

	out, err := Calculate(s)
	require.NoError(t, err)
	assert.Equal(t, int64(20000), out.Results[0].OperatingCostShareCents)
	assert.Equal(t, int64(40000), out.Results[1].OperatingCostShareCents)
}

func TestAllocateByUnitsEqualSplit(t *testing.T) {
	s := yearSnapshot()
	s.Units = []Unit{{ID: 1, Area: 30}, {ID: 2, Area: 50}, {ID: 3, Area: 70}}
	s.Leases = []Lease{
		{ID: 10, UnitID: 1, PersonsCount: 1},
		{ID: 11, UnitID: 2, PersonsCount: 1},
		{ID: 12, UnitID: 3, PersonsCount: 1},
	}
	s.CostItems = []CostItem{{Type: CostTypeElevator, AmountCents: 90000, Key: AllocationUnits}}

	out, err := Calculate(s)
	require.NoError(t, err)
	for _, r := range out.Results {
		assert.Equal(t, int64(30000), r.OperatingCostShareCents)
	}
}

func TestAllocateByConsumption(t *testing.T) {
	s := yearSnapshot()
	s.Units = []Unit{{ID: 1, Area: 50}, {ID: 2, Area: 50}}
	s.Leases = []Lease{
		{ID: 10, UnitID: 1, PersonsCount: 1},
		{ID: 11, UnitID: 2, PersonsCount: 1},
	}
	s.MeterReadings = []MeterReading{
		{UnitID: 1, ReadingStart: 100, ReadingEnd: 400},
		{UnitID: 2, ReadingStart: 200, ReadingEnd: 300},
	}
	s.CostItems = []CostItem{{Type: CostTypeHotWaterCentral, AmountCents: 40000, Key: AllocationConsumption}}

	out, err := Calculate(s)
	require.NoError(t, err)
	assert.Equal(t, int64(30000), out.Results[0].OperatingCostShareCents)
	assert.Equal(t, int64(10000), out.Results[1].OperatingCostShareCents)
}

func TestConservationAcrossKeys(t *testing.T) {
	s := yearSnapshot()
	s.Units = []Unit{{ID: 1, Area: 37.5}, {ID: 2, Area: 62.5}, {ID: 3, Area: 50}}
	s.Leases = []Lease{
		{ID: 10, UnitID: 1, PersonsCount: 2},
		{ID: 11, UnitID: 2, PersonsCount: 3},
		{ID: 12, UnitID: 3, PersonsCount: 1},
	}
	s.MeterReadings = []MeterReading{
		{UnitID: 1, ReadingStart: 0, ReadingEnd: 123.4},
		{UnitID: 3, ReadingStart: 10, ReadingEnd: 87.6},
	}
	s.CostItems = []CostItem{
		{Type: CostTypeInsurance, AmountCents: 123457, Key: AllocationArea},
		{Type: CostTypeWaterSupply, AmountCents: 99999, Key: AllocationPersons},
		{Type: CostTypeSewage, AmountCents: 50001, Key: AllocationConsumption},
	}

	out, err := Calculate(s)
	require.NoError(t, err)

	var sum int64
	for _, r := range out.Results {
		sum += r.OperatingCostShareCents
	}
	pool := int64(123457 + 99999 + 50001)
	assert.InDelta(t, float64(pool), float64(sum), 5, "rounded shares stay within rounding tolerance of the pooled total")
}

func TestZeroWeightGuards(t *testing.T) {
	s := yearSnapshot()
	s.Units = []Unit{{ID: 1, Area: 0}, {ID: 2, Area: 0}}
	s.Leases = []Lease{
		{ID: 10, UnitID: 1, PersonsCount: 1},
		{ID: 11, UnitID: 2, PersonsCount: 1},
	}
	// No readings at all: the consumption pool evaporates instead of being
	// redistributed, and zero total area yields zero area shares.
	s.CostItems = []CostItem{
		{Type: CostTypeInsurance, AmountCents: 100000, Key: AllocationArea},
		{Type: CostTypeHotWaterCentral, AmountCents: 50000, Key: AllocationConsumption},
	}

	out, err := Calculate(s)
	require.NoError(t, err)
	for _, r := range out.Results {
		assert.Equal(t, int64(0), r.OperatingCostShareCents)
	}
}

func TestNoLeasesYieldsEmptyResults(t *testing.T) {
	s := yearSnapshot()
	s.CostItems = []CostItem{{Type: CostTypeElevator, AmountCents: 90000, Key: AllocationUnits}}

	out, err := Calculate(s)
	require.NoError(t, err)
	assert.Empty(t, out.Results)
}

func TestZeroAmountItemsContributeNothing(t *testing.T) {
	s := yearSnapshot()
	s.Units = []Unit{{ID: 1, Area: 50}}
	s.Leases = []Lease{{ID: 10, UnitID: 1, PersonsCount: 1}}
	s.CostItems = []CostItem{
		{Type: CostTypeGardenMaintenance, AmountCents: 0, Key: AllocationArea},
		{Type: CostTypeLighting, AmountCents: 12300, Key: AllocationArea},
	}

	out, err := Calculate(s)
	require.NoError(t, err)
	assert.Equal(t, int64(12300), out.Results[0].OperatingCostShareCents)
}

func TestUnitWithoutReadingGetsZeroConsumptionShare(t *testing.T) {
	s := yearSnapshot()
	s.Units = []Unit{{ID: 1, Area: 50}, {ID: 2, Area: 50}}
	s.Leases = []Lease{
		{ID: 10, UnitID: 1, PersonsCount: 1},
		{ID: 11, UnitID: 2, PersonsCount: 1},
	}
	s.MeterReadings = []MeterReading{{UnitID: 1, ReadingStart: 0, ReadingEnd: 500}}
	s.CostItems = []CostItem{
		{Type: CostTypeHotWaterCentral, AmountCents: 80000, Key: AllocationConsumption},
		{Type: CostTypeInsurance, AmountCents: 20000, Key: AllocationArea},
	}

	out, err := Calculate(s)
	require.NoError(t, err)
	// Unit 2 has no reading: full consumption pool goes to unit 1, but the
	// area-keyed item still reaches both.
	assert.Equal(t, int64(80000+10000), out.Results[0].OperatingCostShareCents)
	assert.Equal(t, int64(10000), out.Results[1].OperatingCostShareCents)
}

func TestCalculateDoesNotMutateSnapshot(t *testing.T) {
	s := yearSnapshot()
	s.Units = []Unit{{ID: 1, Area: 50}}
	s.Leases = []Lease{{ID: 10, UnitID: 1, PersonsCount: 2, MonthlyPrepaymentCents: 10000}}
	s.CostItems = []CostItem{{Type: CostTypeInsurance, AmountCents: 100000, Key: AllocationArea}}

	before := s.CostItems[0]
	leaseBefore := s.Leases[0]

	_, err := Calculate(s)
	require.NoError(t, err)
	assert.Equal(t, before, s.CostItems[0])
	assert.Equal(t, leaseBefore, s.Leases[0])
}
