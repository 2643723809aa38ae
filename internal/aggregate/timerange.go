// Package aggregate derives totals, completion counts and streaks from raw
// activity history. All functions are pure: they never mutate their input.
package aggregate

import (
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/period"
)

// SumOverlapMs returns the milliseconds of closed entries that fall within the
// closed range [startMs, endMs]. Open entries contribute nothing. Entries are
// clipped independently, so overlapping entries are each counted.
func SumOverlapMs(entries []models.TimeEntry, startMs, endMs int64) int64 {
	var total int64
	for _, e := range entries {
		if e.End == nil {
			continue
		}
		if *e.End < startMs || e.Start > endMs {
			continue
		}
		// inverted entries from manual edits can still produce a negative span
		if d := min(*e.End, endMs) - max(e.Start, startMs); d > 0 {
			total += d
		}
	}
	return total
}

// SumOverlap is SumOverlapMs over a calendar range
func SumOverlap(entries []models.TimeEntry, r period.Range) int64 {
	return SumOverlapMs(entries, r.StartMs(), r.EndMs())
}

// TimeInRange sums SumOverlap across the time activities selected by set
func TimeInRange(activities models.Activities, set models.ActivitySet, r period.Range) int64 {
	var total int64
	for _, a := range set.Select(activities, models.ActivityTypeTime) {
		total += SumOverlap(a.Entries, r)
	}
	return total
}
