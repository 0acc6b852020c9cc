package apportionment

import (
	"math"
)

// daysPerMonth is the fixed divisor of the whole-month approximation. The
// policy has no calendar-month semantics on purpose; it matches how the
// prepayment schedule is communicated to tenants.
const daysPerMonth = 30

// billingMonths approximates the period length in months:
// max(1, round(days/30)). Sub-30-day periods still bill one month.
func billingMonths(p Period) int {
	days := p.End.Sub(p.Start).Hours() / 24
	months := int(math.Round(days / daysPerMonth))
	if months < 1 {
		return 1
	}
	return months
}

// Calculate validates the snapshot and produces the per-lease settlement.
// It is a pure function: identical snapshots yield identical outcomes, and
// the snapshot is never mutated.
//
// Fractional shares are kept in float64 cents through the fold and rounded
// half-up once per result field; the total is the sum of the rounded fields
// so that every result is internally consistent.
func Calculate(s Snapshot) (*Outcome, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	months := billingMonths(s.Period)
	w := resolveWeights(s)
	heating := splitHeating(s.Heating)

	known := make(map[int64]bool, len(s.Leases))
	for _, l := range s.Leases {
		known[int64(l.ID)] = true
	}
	orphaned := 0
	for _, dc := range s.DirectCosts {
		if !known[int64(dc.LeaseID)] {
			orphaned++
		}
	}

	results := make([]Result, 0, len(s.Leases))
	for _, lease := range s.Leases {
		operating := roundCents(operatingShare(s.CostItems, w, lease.ID))
		heatingShare := roundCents(heating.heatingShare(w, lease.ID))
		direct := directTotal(s.DirectCosts, lease.ID)
		prepayment := lease.MonthlyPrepaymentCents * int64(months)
		total := operating + heatingShare + direct

		results = append(results, Result{
			LeaseID:                 lease.ID,
			PrepaymentTotalCents:    prepayment,
			OperatingCostShareCents: operating,
			HeatingCostShareCents:   heatingShare,
			DirectCostsTotalCents:   direct,
			TotalCostShareCents:     total,
			BalanceCents:            prepayment - total,
		})
	}

	return &Outcome{
		Results:             results,
		Months:              months,
		OrphanedDirectCosts: orphaned,
	}, nil
}

func roundCents(raw float64) int64 {
	return int64(math.Floor(raw + 0.5))
}
