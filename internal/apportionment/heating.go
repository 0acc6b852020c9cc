package apportionment

import "github.com/bwmarrin/snowflake"

// heatingPools is the bifurcated heating cost: an area-weighted base portion
// and a consumption-weighted portion. The consumption pool is the exact
// complement of the area pool so the two always sum to the configured total;
// recomputing it from (100 - p) would drift under rounding.
type heatingPools struct {
	area        float64
	consumption float64
}

func splitHeating(cfg HeatingConfig) heatingPools {
	if cfg.TotalCents == 0 {
		return heatingPools{}
	}
	area := float64(cfg.TotalCents) * cfg.AreaPercentage / 100
	return heatingPools{
		area:        area,
		consumption: float64(cfg.TotalCents) - area,
	}
}

// heatingShare allocates both heating pools to one lease over the same lease
// set and sums them, in fractional cents.
func (p heatingPools) heatingShare(w weights, leaseID snowflake.ID) float64 {
	if p.area == 0 && p.consumption == 0 {
		return 0
	}
	return p.area*w.share(AllocationArea, leaseID) +
		p.consumption*w.share(AllocationConsumption, leaseID)
}
