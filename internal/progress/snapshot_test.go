package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/period"
)

var ref = time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC)

func entry(start time.Time, d time.Duration) models.TimeEntry {
	end := start.Add(d).UnixMilli()
	return models.TimeEntry{Start: start.UnixMilli(), End: &end}
}

func fixture() models.Activities {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	later := created.Add(time.Hour)
	return models.Activities{
		"read": {
			ID: "read", Name: "Read", Type: models.ActivityTypeTime, CreatedAt: &created,
			Entries: []models.TimeEntry{
				entry(time.Date(2026, 2, 27, 9, 0, 0, 0, time.UTC), 30*time.Minute),
				entry(time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC), time.Hour),
				entry(time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC), 15*time.Minute),
				{Start: time.Date(2026, 3, 11, 14, 0, 0, 0, time.UTC).UnixMilli()},
			},
		},
		"walk": {
			ID: "walk", Name: "Walk", Type: models.ActivityTypeCheck, CreatedAt: &later,
			Checks: map[string]bool{"2026-03-01": true, "2026-03-10": true, "2026-03-11": true, "2026-07-04": true},
		},
	}
}

func TestDay(t *testing.T) {
	snap := Day(fixture(), ref)

	assert.Equal(t, "2026-03-11", snap.Date)
	assert.Equal(t, int64(15*time.Minute/time.Millisecond), snap.TotalMs)
	assert.Equal(t, 1, snap.ChecksDone)
	assert.Equal(t, 1, snap.ChecksTotal)
	require.Len(t, snap.Activities, 2)
	assert.Equal(t, "read", snap.Activities[0].ID)
	assert.True(t, snap.Activities[0].Running)
	assert.True(t, snap.Activities[1].Checked)
	assert.Equal(t, models.PeriodDay, snap.Kind())
}

func TestWeek(t *testing.T) {
	snap := Week(fixture(), ref)

	require.Len(t, snap.Dates, 7)
	assert.Equal(t, "2026-03-09", snap.Dates[0])
	assert.Equal(t, "2026-03-15", snap.Dates[6])

	read := snap.Activities[0]
	require.Len(t, read.DailyTotals, 7)
	assert.Equal(t, int64(time.Hour/time.Millisecond), read.DailyTotals[0])
	assert.Equal(t, int64(15*time.Minute/time.Millisecond), read.DailyTotals[2])
	assert.Equal(t, int64(75*time.Minute/time.Millisecond), read.TotalMs)
	assert.Nil(t, read.DailyChecks)

	walk := snap.Activities[1]
	assert.Equal(t, []bool{false, true, true, false, false, false, false}, walk.DailyChecks)
	assert.Equal(t, 2, walk.CheckedDays)
	assert.Equal(t, 2, snap.ChecksDone)
	assert.Equal(t, []int{0, 1, 1, 0, 0, 0, 0}, snap.DailyChecks)
	assert.Equal(t, read.TotalMs, snap.TotalMs)
}

func TestMonth(t *testing.T) {
	snap := Month(fixture(), ref)

	assert.Equal(t, 31, snap.DaysInMonth)
	assert.Equal(t, time.Sunday, snap.FirstWeekday)
	assert.Len(t, snap.Dates, 31)
	assert.Len(t, snap.DailyTotals, 31)
	assert.Equal(t, int64(75*time.Minute/time.Millisecond), snap.TotalMs)
	assert.Equal(t, 3, snap.ChecksDone)
	assert.True(t, snap.Activities[1].DailyChecks[0])
	assert.Equal(t, models.PeriodMonth, snap.Kind())
}

func TestYear(t *testing.T) {
	snap := Year(fixture(), ref)

	assert.Equal(t, 2026, snap.Year)
	read := snap.Activities[0]
	assert.Equal(t, int64(30*time.Minute/time.Millisecond), read.MonthlyTotals[1])
	assert.Equal(t, int64(75*time.Minute/time.Millisecond), read.MonthlyTotals[2])
	assert.Equal(t, int64(105*time.Minute/time.Millisecond), read.TotalMs)

	walk := snap.Activities[1]
	assert.Equal(t, 3, walk.MonthlyChecks[2])
	assert.Equal(t, 1, walk.MonthlyChecks[6])
	assert.Equal(t, 4, walk.CheckedDays)
	assert.Equal(t, 4, snap.ChecksDone)
	assert.Equal(t, read.TotalMs, snap.TotalMs)
}

func TestBuildFallsBackToDay(t *testing.T) {
	snap := Build("decade", fixture(), ref)

	_, ok := snap.(DaySnapshot)
	assert.True(t, ok)
	assert.Equal(t, period.DayRange(ref), snap.Bounds())

	assert.Equal(t, models.PeriodYear, Build(models.PeriodYear, fixture(), ref).Kind())
}

func TestEmptySnapshot(t *testing.T) {
	snap := Week(models.Activities{}, ref)

	assert.Empty(t, snap.Activities)
	assert.Zero(t, snap.TotalMs)
	assert.Len(t, snap.DailyTotals, 7)
}
