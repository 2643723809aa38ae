package render

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/tracklit/internal/goals"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/progress"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		pct        int
		wantFilled int
	}{
		{pct: 0, wantFilled: 0},
		{pct: 50, wantFilled: BarWidth / 2},
		{pct: 100, wantFilled: BarWidth},
		{pct: 150, wantFilled: BarWidth},
		{pct: -10, wantFilled: 0},
	}
	for _, tt := range tests {
		bar := ProgressBar(tt.pct)
		if got := strings.Count(bar, "█"); got != tt.wantFilled {
			t.Errorf("ProgressBar(%d) filled = %d, want %d", tt.pct, got, tt.wantFilled)
		}
		if got := strings.Count(bar, "█") + strings.Count(bar, "░"); got != BarWidth {
			t.Errorf("ProgressBar(%d) width = %d, want %d", tt.pct, got, BarWidth)
		}
	}
}

func TestGoalLine(t *testing.T) {
	g := models.Goal{Name: "Walk streak", Type: models.GoalTypeStreak, Config: models.GoalConfig{TargetDays: 7}}
	line := GoalLine(g, goals.Result{Achieved: true, Current: 7, Target: 7, ProgressPercentage: 100, Unit: "days"})
	for _, want := range []string{"✓", "Walk streak", "100%", "7/7 days", "(streak)"} {
		if !strings.Contains(line, want) {
			t.Errorf("GoalLine() = %q, missing %q", line, want)
		}
	}
}

func TestSnapshot(t *testing.T) {
	ref := time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC)
	start := ref.Add(-2 * time.Hour).UnixMilli()
	end := ref.Add(-time.Hour).UnixMilli()
	activities := models.Activities{
		"read": {ID: "read", Name: "Reading", Type: models.ActivityTypeTime,
			Entries: []models.TimeEntry{{Start: start, End: &end}}},
		"walk": {ID: "walk", Name: "Walk", Type: models.ActivityTypeCheck,
			Checks: map[string]bool{"2026-03-11": true}},
	}

	tests := []struct {
		kind models.PeriodKind
		want []string
	}{
		{models.PeriodDay, []string{"Day 2026-03-11", "Reading", "1h 00m", "Checks: 1/1"}},
		{models.PeriodWeek, []string{"Week of 2026-03-09", "Walk", "1 days"}},
		{models.PeriodMonth, []string{"March 2026", "Reading"}},
		{models.PeriodYear, []string{"Year 2026", "Mar", "1h 00m"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			out := Snapshot(progress.Build(tt.kind, activities, ref))
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("Snapshot(%s) missing %q:\n%s", tt.kind, want, out)
				}
			}
		})
	}
}

func TestSnapshotEmpty(t *testing.T) {
	out := Snapshot(progress.Build(models.PeriodWeek, models.Activities{}, time.Now()))
	if !strings.Contains(out, "No activities yet.") {
		t.Errorf("empty week = %q", out)
	}
}
