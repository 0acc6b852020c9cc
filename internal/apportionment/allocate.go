package apportionment

import "github.com/bwmarrin/snowflake"

// weights holds the per-lease weighting bases and their totals, resolved
// once per run so every pool allocates over the same denominators.
type weights struct {
	areaByLease        map[snowflake.ID]float64
	personsByLease     map[snowflake.ID]float64
	consumptionByLease map[snowflake.ID]float64

	totalArea        float64
	totalPersons     float64
	totalConsumption float64
	leaseCount       int
}

// resolveWeights derives the weight tables from the snapshot. Consumption is
// reading_end - reading_start summed per unit; a unit without a reading
// weighs zero on the consumption key while keeping its other weights.
func resolveWeights(s Snapshot) weights {
	unitArea := make(map[snowflake.ID]float64, len(s.Units))
	for _, u := range s.Units {
		unitArea[u.ID] = u.Area
	}

	unitConsumption := make(map[snowflake.ID]float64, len(s.MeterReadings))
	for _, r := range s.MeterReadings {
		unitConsumption[r.UnitID] += r.ReadingEnd - r.ReadingStart
	}

	w := weights{
		areaByLease:        make(map[snowflake.ID]float64, len(s.Leases)),
		personsByLease:     make(map[snowflake.ID]float64, len(s.Leases)),
		consumptionByLease: make(map[snowflake.ID]float64, len(s.Leases)),
		leaseCount:         len(s.Leases),
	}

	for _, l := range s.Leases {
		area := unitArea[l.UnitID]
		persons := float64(l.PersonsCount)
		consumption := unitConsumption[l.UnitID]

		w.areaByLease[l.ID] = area
		w.personsByLease[l.ID] = persons
		w.consumptionByLease[l.ID] = consumption

		w.totalArea += area
		w.totalPersons += persons
		w.totalConsumption += consumption
	}

	return w
}

// share returns the lease's fraction of a pool under the given key. A zero
// total weight yields zero for every lease rather than a division error;
// the pool amount is deliberately not redistributed.
func (w weights) share(key AllocationKey, leaseID snowflake.ID) float64 {
	switch key {
	case AllocationArea:
		if w.totalArea <= 0 {
			return 0
		}
		return w.areaByLease[leaseID] / w.totalArea
	case AllocationPersons:
		if w.totalPersons <= 0 {
			return 0
		}
		return w.personsByLease[leaseID] / w.totalPersons
	case AllocationUnits:
		if w.leaseCount == 0 {
			return 0
		}
		return 1 / float64(w.leaseCount)
	case AllocationConsumption:
		if w.totalConsumption <= 0 {
			return 0
		}
		return w.consumptionByLease[leaseID] / w.totalConsumption
	}
	return 0
}

// operatingShare folds every pooled cost item into the lease's operating
// cost share, in fractional cents. Zero-amount items contribute nothing.
func operatingShare(items []CostItem, w weights, leaseID snowflake.ID) float64 {
	var sum float64
	for _, item := range items {
		if item.AmountCents == 0 {
			continue
		}
		sum += float64(item.AmountCents) * w.share(item.Key, leaseID)
	}
	return sum
}

// directTotal attributes direct costs 1:1. Amounts referencing leases
// outside the run are counted as orphaned and appear in no result.
func directTotal(costs []DirectCost, leaseID snowflake.ID) int64 {
	var sum int64
	for _, dc := range costs {
		if dc.LeaseID == leaseID {
			sum += dc.AmountCents
		}
	}
	return sum
}
