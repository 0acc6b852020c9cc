package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlapsPeriod(t *testing.T) {
	periodStart := date(2024, 1, 1)
	periodEnd := date(2025, 1, 1)

	open := Lease{StartDate: date(2023, 6, 1)}
	assert.True(t, open.OverlapsPeriod(periodStart, periodEnd))

	endsBefore := date(2023, 12, 31)
	past := Lease{StartDate: date(2022, 1, 1), EndDate: &endsBefore}
	assert.False(t, past.OverlapsPeriod(periodStart, periodEnd))

	startsAfter := Lease{StartDate: date(2025, 1, 1)}
	assert.False(t, startsAfter.OverlapsPeriod(periodStart, periodEnd))

	midYearEnd := date(2024, 7, 1)
	partial := Lease{StartDate: date(2024, 3, 1), EndDate: &midYearEnd}
	assert.True(t, partial.OverlapsPeriod(periodStart, periodEnd))

	// Ending exactly on the period start means no overlap: the range is
	// half-open.
	boundary := Lease{StartDate: date(2023, 1, 1), EndDate: &periodStart}
	assert.False(t, boundary.OverlapsPeriod(periodStart, periodEnd))

	lastDay := Lease{StartDate: date(2024, 12, 31)}
	assert.True(t, lastDay.OverlapsPeriod(periodStart, periodEnd))
}
