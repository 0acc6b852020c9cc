package apportionment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillingMonths(t *testing.T) {
	cases := []struct {
		name   string
		start  string
		end    string
		months int
	}{
		{"full year", "2024-01-01", "2024-12-31", 12},
		{"half year", "2024-01-01", "2024-07-01", 6},
		{"single month", "2024-03-01", "2024-03-31", 1},
		{"sub 30 days floors at one", "2024-03-01", "2024-03-10", 1},
		{"45 days rounds to two", "2024-03-01", "2024-04-15", 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, err := time.Parse("2006-01-02", tc.start)
			require.NoError(t, err)
			end, err := time.Parse("2006-01-02", tc.end)
			require.NoError(t, err)
			assert.Equal(t, tc.months, billingMonths(Period{Start: start, End: end}))
		})
	}
}

func TestPrepaymentOverFullYear(t *testing.T) {
	s := yearSnapshot()
	s.Units = []Unit{{ID: 1, Area: 50}}
	s.Leases = []Lease{{ID: 10, UnitID: 1, PersonsCount: 1, MonthlyPrepaymentCents: 10000}}

	out, err := Calculate(s)
	require.NoError(t, err)
	assert.Equal(t, 12, out.Months)
	assert.Equal(t, int64(120000), out.Results[0].PrepaymentTotalCents)
}

func TestHeatingComplementSplit(t *testing.T) {
	s := yearSnapshot()
	s.Units = []Unit{{ID: 1, Area: 50}, {ID: 2, Area: 50}}
	s.Leases = []Lease{
		{ID: 10, UnitID: 1, PersonsCount: 1},
		{ID: 11, UnitID: 2, PersonsCount: 1},
	}
	s.MeterReadings = []MeterReading{
		{UnitID: 1, ReadingStart: 0, ReadingEnd: 70},
		{UnitID: 2, ReadingStart: 0, ReadingEnd: 30},
	}
	s.Heating = HeatingConfig{TotalCents: 100000, AreaPercentage: 30}

	pools := splitHeating(s.Heating)
	assert.Equal(t, float64(30000), pools.area)
	assert.Equal(t, float64(70000), pools.consumption)
	assert.Equal(t, float64(100000), pools.area+pools.consumption)

	out, err := Calculate(s)
	require.NoError(t, err)
	// area: 15000 each; consumption: 49000 / 21000
	assert.Equal(t, int64(64000), out.Results[0].HeatingCostShareCents)
	assert.Equal(t, int64(36000), out.Results[1].HeatingCostShareCents)
	assert.Equal(t, int64(100000), out.Results[0].HeatingCostShareCents+out.Results[1].HeatingCostShareCents)
}

func TestHeatingTotalZeroMeansZeroShares(t *testing.T) {
	s := yearSnapshot()
	s.Units = []Unit{{ID: 1, Area: 50}, {ID: 2, Area: 70}}
	s.Leases = []Lease{
		{ID: 10, UnitID: 1, PersonsCount: 1},
		{ID: 11, UnitID: 2, PersonsCount: 4},
	}
	s.MeterReadings = []MeterReading{{UnitID: 1, ReadingStart: 0, ReadingEnd: 900}}
	s.Heating = HeatingConfig{TotalCents: 0, AreaPercentage: 70}

	out, err := Calculate(s)
	require.NoError(t, err)
	for _, r := range out.Results {
		assert.Equal(t, int64(0), r.HeatingCostShareCents)
	}
}

func TestDirectCostIsolation(t *testing.T) {
	s := yearSnapshot()
	s.Units = []Unit{{ID: 1, Area: 50}, {ID: 2, Area: 50}}
	s.Leases = []Lease{
		{ID: 10, UnitID: 1, PersonsCount: 1},
		{ID: 11, UnitID: 2, PersonsCount: 1},
	}
	s.DirectCosts = []DirectCost{
		{LeaseID: 10, Description: "Kabelanschluss", AmountCents: 4500},
		{LeaseID: 10, Description: "Stellplatz", AmountCents: 1500},
	}

	out, err := Calculate(s)
	require.NoError(t, err)
	assert.Equal(t, int64(6000), out.Results[0].DirectCostsTotalCents)
	assert.Equal(t, int64(6000), out.Results[0].TotalCostShareCents)
	assert.Equal(t, int64(0), out.Results[1].DirectCostsTotalCents)
	assert.Equal(t, int64(0), out.Results[1].TotalCostShareCents)
}

func TestOrphanedDirectCostsAreCountedNotAllocated(t *testing.T) {
	s := yearSnapshot()
	s.Units = []Unit{{ID: 1, Area: 50}}
	s.Leases = []Lease{{ID: 10, UnitID: 1, PersonsCount: 1}}
	s.DirectCosts = []DirectCost{
		{LeaseID: 99, AmountCents: 7700},
		{LeaseID: 10, AmountCents: 300},
	}

	out, err := Calculate(s)
	require.NoError(t, err)
	assert.Equal(t, 1, out.OrphanedDirectCosts)
	assert.Equal(t, int64(300), out.Results[0].DirectCostsTotalCents)
}

func TestBalanceSignConvention(t *testing.T) {
	s := yearSnapshot()
	s.Units = []Unit{{ID: 1, Area: 50}, {ID: 2, Area: 50}}
	s.Leases = []Lease{
		{ID: 10, UnitID: 1, PersonsCount: 1, MonthlyPrepaymentCents: 20000},
		{ID: 11, UnitID: 2, PersonsCount: 1, MonthlyPrepaymentCents: 1000},
	}
	s.CostItems = []CostItem{{Type: CostTypeInsurance, AmountCents: 240000, Key: AllocationArea}}

	out, err := Calculate(s)
	require.NoError(t, err)

	credit := out.Results[0]
	assert.Equal(t, int64(240000), credit.PrepaymentTotalCents)
	assert.Equal(t, int64(120000), credit.TotalCostShareCents)
	assert.Equal(t, int64(120000), credit.BalanceCents, "prepayments above cost share are a credit")

	owed := out.Results[1]
	assert.Equal(t, int64(12000), owed.PrepaymentTotalCents)
	assert.Equal(t, int64(-108000), owed.BalanceCents, "prepayments below cost share mean arrears")
}

func TestTotalIsSumOfRoundedParts(t *testing.T) {
	s := yearSnapshot()
	s.Units = []Unit{{ID: 1, Area: 33}, {ID: 2, Area: 67}}
	s.Leases = []Lease{
		{ID: 10, UnitID: 1, PersonsCount: 1, MonthlyPrepaymentCents: 5000},
		{ID: 11, UnitID: 2, PersonsCount: 2, MonthlyPrepaymentCents: 5000},
	}
	s.MeterReadings = []MeterReading{
		{UnitID: 1, ReadingStart: 0, ReadingEnd: 11},
		{UnitID: 2, ReadingStart: 0, ReadingEnd: 7},
	}
	s.CostItems = []CostItem{{Type: CostTypeInsurance, AmountCents: 10001, Key: AllocationArea}}
	s.DirectCosts = []DirectCost{{LeaseID: 10, AmountCents: 333}}
	s.Heating = HeatingConfig{TotalCents: 7777, AreaPercentage: 33}

	out, err := Calculate(s)
	require.NoError(t, err)
	for _, r := range out.Results {
		assert.Equal(t, r.OperatingCostShareCents+r.HeatingCostShareCents+r.DirectCostsTotalCents, r.TotalCostShareCents)
		assert.Equal(t, r.PrepaymentTotalCents-r.TotalCostShareCents, r.BalanceCents)
	}
}

func TestCalculateIsIdempotent(t *testing.T) {
	s := yearSnapshot()
	s.Units = []Unit{{ID: 1, Area: 48.5}, {ID: 2, Area: 61.2}}
	s.Leases = []Lease{
		{ID: 10, UnitID: 1, PersonsCount: 2, MonthlyPrepaymentCents: 18000},
		{ID: 11, UnitID: 2, PersonsCount: 3, MonthlyPrepaymentCents: 22000},
	}
	s.MeterReadings = []MeterReading{
		{UnitID: 1, ReadingStart: 1200.5, ReadingEnd: 1830.25},
		{UnitID: 2, ReadingStart: 800, ReadingEnd: 1410.75},
	}
	s.CostItems = []CostItem{
		{Type: CostTypePublicCharges, AmountCents: 84211, Key: AllocationArea},
		{Type: CostTypeStreetCleaningWaste, AmountCents: 36000, Key: AllocationPersons},
		{Type: CostTypeCustom, Label: "Dachrinnenreinigung", AmountCents: 9900, Key: AllocationUnits},
	}
	s.DirectCosts = []DirectCost{{LeaseID: 11, AmountCents: 2500}}
	s.Heating = HeatingConfig{TotalCents: 192344, AreaPercentage: 30}

	first, err := Calculate(s)
	require.NoError(t, err)
	second, err := Calculate(s)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
