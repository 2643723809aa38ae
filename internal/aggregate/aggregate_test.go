package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/period"
)

func ms(v int64) *int64 {
	return &v
}

func closed(start, end time.Time) models.TimeEntry {
	return models.TimeEntry{Start: start.UnixMilli(), End: ms(end.UnixMilli())}
}

func TestSumOverlapMs(t *testing.T) {
	entry := []models.TimeEntry{{Start: 10, End: ms(20)}}

	tests := []struct {
		name       string
		entries    []models.TimeEntry
		start, end int64
		want       int64
	}{
		{name: "partial overlap clips to range", entries: entry, start: 15, end: 25, want: 5},
		{name: "no overlap", entries: entry, start: 0, end: 5, want: 0},
		{name: "range contains entry", entries: entry, start: 0, end: 100, want: 10},
		{name: "entry contains range", entries: entry, start: 12, end: 14, want: 2},
		{name: "touching boundary contributes zero", entries: entry, start: 20, end: 30, want: 0},
		{name: "open entry excluded", entries: []models.TimeEntry{{Start: 0}}, start: 0, end: 1000, want: 0},
		{name: "inverted entry clamps to zero", entries: []models.TimeEntry{{Start: 50, End: ms(40)}}, start: 0, end: 100, want: 0},
		{
			name:    "overlapping entries counted independently",
			entries: []models.TimeEntry{{Start: 0, End: ms(10)}, {Start: 5, End: ms(15)}},
			start:   0, end: 100,
			want: 20,
		},
		{name: "nil entries", entries: nil, start: 0, end: 100, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SumOverlapMs(tt.entries, tt.start, tt.end))
		})
	}
}

func TestSumOverlapOpenEntryIgnoredForAnyRange(t *testing.T) {
	entries := []models.TimeEntry{{Start: time.Now().Add(-time.Hour).UnixMilli()}}
	for _, r := range []period.Range{
		period.DayRange(time.Now()),
		period.YearRange(time.Now()),
	} {
		assert.Zero(t, SumOverlap(entries, r))
	}
}

func TestTimeInRange(t *testing.T) {
	day := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	activities := models.Activities{
		"read": {ID: "read", Type: models.ActivityTypeTime, Entries: []models.TimeEntry{
			closed(day.Add(9*time.Hour), day.Add(10*time.Hour)),
		}},
		"code": {ID: "code", Type: models.ActivityTypeTime, Entries: []models.TimeEntry{
			closed(day.Add(23*time.Hour), day.Add(25*time.Hour)), // spills into the next day
		}},
		"walk": {ID: "walk", Type: models.ActivityTypeCheck, Checks: map[string]bool{"2026-03-11": true}},
	}
	r := period.DayRange(day)

	assert.Equal(t, int64(2*time.Hour/time.Millisecond)-1, TimeInRange(activities, models.AllActivities(), r))
	assert.Equal(t, int64(time.Hour/time.Millisecond), TimeInRange(activities, models.Subset("read"), r))
	assert.Zero(t, TimeInRange(activities, models.Subset("walk"), r), "check activities have no time")
	assert.Zero(t, TimeInRange(activities, models.Subset(), r))
}

func TestCountChecked(t *testing.T) {
	week := period.WeekRange(time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC))
	checks := map[string]bool{
		"2026-03-09": true,
		"2026-03-11": true,
		"2026-03-12": false,
		"2026-03-15": true,
		"2026-03-16": true, // next week
	}

	assert.Equal(t, CheckCount{Checked: 3, Total: 7}, CountChecked(checks, week))
	assert.Equal(t, CheckCount{Checked: 0, Total: 7}, CountChecked(nil, week))
}

func TestCountChecksInRange(t *testing.T) {
	r := period.MonthRange(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	activities := models.Activities{
		"a": {ID: "a", Type: models.ActivityTypeCheck, Checks: map[string]bool{"2026-03-01": true, "2026-03-02": true}},
		"b": {ID: "b", Type: models.ActivityTypeCheck, Checks: map[string]bool{"2026-03-01": true, "2026-04-01": true}},
		"t": {ID: "t", Type: models.ActivityTypeTime},
	}

	assert.Equal(t, 3, CountChecksInRange(activities, models.AllActivities(), r))
	assert.Equal(t, 2, CountChecksInRange(activities, models.Subset("a"), r))
	assert.Zero(t, CountChecksInRange(activities, models.Subset("t"), r))
}

func TestAggregatorsAreIdempotent(t *testing.T) {
	day := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	activities := models.Activities{
		"read": {ID: "read", Type: models.ActivityTypeTime, Entries: []models.TimeEntry{
			closed(day.Add(time.Hour), day.Add(2*time.Hour)),
			{Start: day.Add(3 * time.Hour).UnixMilli()},
		}},
		"walk": {ID: "walk", Type: models.ActivityTypeCheck, Checks: map[string]bool{"2026-03-10": true, "2026-03-11": true}},
	}
	r := period.WeekRange(day)

	assert.Equal(t, TimeInRange(activities, models.AllActivities(), r), TimeInRange(activities, models.AllActivities(), r))
	assert.Equal(t, CountChecksInRange(activities, models.AllActivities(), r), CountChecksInRange(activities, models.AllActivities(), r))
	assert.Equal(t,
		CurrentStreak(activities, models.AllActivities(), models.ActivityTypeCheck, day),
		CurrentStreak(activities, models.AllActivities(), models.ActivityTypeCheck, day))
	assert.Len(t, activities["read"].Entries, 2)
	assert.Len(t, activities["walk"].Checks, 2)
}
