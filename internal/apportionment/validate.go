package apportionment

import "fmt"

// Validate checks the snapshot preconditions eagerly so that the calculation
// never runs over malformed monetary input. Zero-denominator situations
// (empty lease set, zero total area, zero total consumption) are NOT errors;
// those degrade to zero shares during allocation.
func (s Snapshot) Validate() error {
	if !s.Period.End.After(s.Period.Start) {
		return fmt.Errorf("%w: period end %s is not after start %s",
			ErrInvalidPeriod, s.Period.End.Format("2006-01-02"), s.Period.Start.Format("2006-01-02"))
	}

	units := make(map[int64]bool, len(s.Units))
	for _, u := range s.Units {
		units[int64(u.ID)] = true
	}
	for _, l := range s.Leases {
		if !units[int64(l.UnitID)] {
			return fmt.Errorf("%w: lease %s references unit %s not present in snapshot",
				ErrIncompleteSnapshot, l.ID, l.UnitID)
		}
	}

	for _, item := range s.CostItems {
		if item.AmountCents < 0 {
			return fmt.Errorf("%w: cost item %q has negative amount", ErrInvalidAmount, item.Type)
		}
		switch item.Key {
		case AllocationArea, AllocationPersons, AllocationUnits, AllocationConsumption:
		case AllocationDirect:
			return fmt.Errorf("%w: cost item %q", ErrDirectKeyedCostItem, item.Type)
		default:
			return fmt.Errorf("%w: %q", ErrUnknownAllocationKey, item.Key)
		}
	}

	for _, dc := range s.DirectCosts {
		if dc.AmountCents < 0 {
			return fmt.Errorf("%w: direct cost for lease %s has negative amount", ErrInvalidAmount, dc.LeaseID)
		}
	}

	for _, r := range s.MeterReadings {
		if r.ReadingEnd < r.ReadingStart {
			return fmt.Errorf("%w: unit %s reads %.3f -> %.3f",
				ErrInvalidReading, r.UnitID, r.ReadingStart, r.ReadingEnd)
		}
	}

	if s.Heating.TotalCents < 0 {
		return fmt.Errorf("%w: heating total is negative", ErrInvalidAmount)
	}
	if s.Heating.AreaPercentage < 0 || s.Heating.AreaPercentage > 100 {
		return fmt.Errorf("%w: heating area percentage %.2f outside [0,100]",
			ErrInvalidAmount, s.Heating.AreaPercentage)
	}

	return nil
}
