// Package progress builds per-period reporting views across all activities.
// Snapshots are denormalized and not goal-aware.
package progress

import (
	"time"

	"github.com/julianstephens/tracklit/internal/aggregate"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/period"
)

// Snapshot is implemented by every period view
type Snapshot interface {
	Kind() models.PeriodKind
	Bounds() period.Range
}

// ActivityDay is one activity's row in a day view
type ActivityDay struct {
	ID      string              `json:"id" yaml:"id"`
	Name    string              `json:"name" yaml:"name"`
	Type    models.ActivityType `json:"type" yaml:"type"`
	TotalMs int64               `json:"total_ms" yaml:"total_ms"`
	Checked bool                `json:"checked" yaml:"checked"`
	Running bool                `json:"running" yaml:"running"`
}

type DaySnapshot struct {
	Range       period.Range  `json:"range" yaml:"range"`
	Date        string        `json:"date" yaml:"date"`
	Activities  []ActivityDay `json:"activities" yaml:"activities"`
	TotalMs     int64         `json:"total_ms" yaml:"total_ms"`
	ChecksDone  int           `json:"checks_done" yaml:"checks_done"`
	ChecksTotal int           `json:"checks_total" yaml:"checks_total"`
}

func (s DaySnapshot) Kind() models.PeriodKind { return models.PeriodDay }
func (s DaySnapshot) Bounds() period.Range    { return s.Range }

// ActivitySeries is one activity's row in a week or month view. DailyTotals
// and DailyChecks are indexed by day offset from the range start.
type ActivitySeries struct {
	ID          string              `json:"id" yaml:"id"`
	Name        string              `json:"name" yaml:"name"`
	Type        models.ActivityType `json:"type" yaml:"type"`
	TotalMs     int64               `json:"total_ms" yaml:"total_ms"`
	CheckedDays int                 `json:"checked_days" yaml:"checked_days"`
	DailyTotals []int64             `json:"daily_totals,omitempty" yaml:"daily_totals,omitempty"`
	DailyChecks []bool              `json:"daily_checks,omitempty" yaml:"daily_checks,omitempty"`
}

// SeriesView holds the parts shared by week and month views
type SeriesView struct {
	Range       period.Range     `json:"range" yaml:"range"`
	Dates       []string         `json:"dates" yaml:"dates"`
	Activities  []ActivitySeries `json:"activities" yaml:"activities"`
	DailyTotals []int64          `json:"daily_totals" yaml:"daily_totals"`
	DailyChecks []int            `json:"daily_checks" yaml:"daily_checks"`
	TotalMs     int64            `json:"total_ms" yaml:"total_ms"`
	ChecksDone  int              `json:"checks_done" yaml:"checks_done"`
}

type WeekSnapshot struct {
	SeriesView `yaml:",inline"`
}

func (s WeekSnapshot) Kind() models.PeriodKind { return models.PeriodWeek }
func (s WeekSnapshot) Bounds() period.Range    { return s.Range }

type MonthSnapshot struct {
	SeriesView `yaml:",inline"`
	// FirstWeekday is the weekday of the 1st, Sunday = 0
	FirstWeekday time.Weekday `json:"first_weekday" yaml:"first_weekday"`
	DaysInMonth  int          `json:"days_in_month" yaml:"days_in_month"`
}

func (s MonthSnapshot) Kind() models.PeriodKind { return models.PeriodMonth }
func (s MonthSnapshot) Bounds() period.Range    { return s.Range }

// ActivityYear is one activity's row in a year view, indexed by month (January = 0)
type ActivityYear struct {
	ID            string              `json:"id" yaml:"id"`
	Name          string              `json:"name" yaml:"name"`
	Type          models.ActivityType `json:"type" yaml:"type"`
	TotalMs       int64               `json:"total_ms" yaml:"total_ms"`
	CheckedDays   int                 `json:"checked_days" yaml:"checked_days"`
	MonthlyTotals [12]int64           `json:"monthly_totals" yaml:"monthly_totals"`
	MonthlyChecks [12]int             `json:"monthly_checks" yaml:"monthly_checks"`
}

type YearSnapshot struct {
	Range         period.Range   `json:"range" yaml:"range"`
	Year          int            `json:"year" yaml:"year"`
	Activities    []ActivityYear `json:"activities" yaml:"activities"`
	MonthlyTotals [12]int64      `json:"monthly_totals" yaml:"monthly_totals"`
	MonthlyChecks [12]int        `json:"monthly_checks" yaml:"monthly_checks"`
	TotalMs       int64          `json:"total_ms" yaml:"total_ms"`
	ChecksDone    int            `json:"checks_done" yaml:"checks_done"`
}

func (s YearSnapshot) Kind() models.PeriodKind { return models.PeriodYear }
func (s YearSnapshot) Bounds() period.Range    { return s.Range }

// Build dispatches to the builder for kind. Unknown kinds fall back to Day.
func Build(kind models.PeriodKind, activities models.Activities, ref time.Time) Snapshot {
	switch kind {
	case models.PeriodDay:
		return Day(activities, ref)
	case models.PeriodWeek:
		return Week(activities, ref)
	case models.PeriodMonth:
		return Month(activities, ref)
	case models.PeriodYear:
		return Year(activities, ref)
	default:
		return Day(activities, ref)
	}
}

func Day(activities models.Activities, ref time.Time) DaySnapshot {
	r := period.DayRange(ref)
	key := period.ISODate(ref)
	snap := DaySnapshot{Range: r, Date: key, Activities: []ActivityDay{}}

	for _, a := range activities.Sorted() {
		row := ActivityDay{ID: a.ID, Name: a.Name, Type: a.Type}
		switch a.Type {
		case models.ActivityTypeTime:
			row.TotalMs = aggregate.SumOverlap(a.Entries, r)
			row.Running = a.IsRunning()
			snap.TotalMs += row.TotalMs
		case models.ActivityTypeCheck:
			row.Checked = a.IsChecked(key)
			snap.ChecksTotal++
			if row.Checked {
				snap.ChecksDone++
			}
		}
		snap.Activities = append(snap.Activities, row)
	}
	return snap
}

func Week(activities models.Activities, ref time.Time) WeekSnapshot {
	return WeekSnapshot{SeriesView: buildSeries(activities, period.WeekRange(ref))}
}

func Month(activities models.Activities, ref time.Time) MonthSnapshot {
	r := period.MonthRange(ref)
	return MonthSnapshot{
		SeriesView:   buildSeries(activities, r),
		FirstWeekday: r.Start.Weekday(),
		DaysInMonth:  period.DaysInMonth(ref),
	}
}

func buildSeries(activities models.Activities, r period.Range) SeriesView {
	days := period.Days(r)
	view := SeriesView{
		Range:       r,
		Dates:       make([]string, len(days)),
		Activities:  []ActivitySeries{},
		DailyTotals: make([]int64, len(days)),
		DailyChecks: make([]int, len(days)),
	}
	for i, d := range days {
		view.Dates[i] = period.ISODate(d)
	}

	for _, a := range activities.Sorted() {
		row := ActivitySeries{ID: a.ID, Name: a.Name, Type: a.Type}
		switch a.Type {
		case models.ActivityTypeTime:
			row.DailyTotals = make([]int64, len(days))
			for i, d := range days {
				spent := aggregate.SumOverlap(a.Entries, period.DayRange(d))
				row.DailyTotals[i] = spent
				row.TotalMs += spent
				view.DailyTotals[i] += spent
			}
			view.TotalMs += row.TotalMs
		case models.ActivityTypeCheck:
			row.DailyChecks = make([]bool, len(days))
			for i := range days {
				if a.IsChecked(view.Dates[i]) {
					row.DailyChecks[i] = true
					row.CheckedDays++
					view.DailyChecks[i]++
				}
			}
			view.ChecksDone += row.CheckedDays
		}
		view.Activities = append(view.Activities, row)
	}
	return view
}

func Year(activities models.Activities, ref time.Time) YearSnapshot {
	r := period.YearRange(ref)
	snap := YearSnapshot{Range: r, Year: ref.Year(), Activities: []ActivityYear{}}

	var months [12]period.Range
	for m := range months {
		months[m] = period.MonthRange(time.Date(ref.Year(), time.Month(m+1), 1, 0, 0, 0, 0, ref.Location()))
	}

	for _, a := range activities.Sorted() {
		row := ActivityYear{ID: a.ID, Name: a.Name, Type: a.Type}
		for m, mr := range months {
			switch a.Type {
			case models.ActivityTypeTime:
				spent := aggregate.SumOverlap(a.Entries, mr)
				row.MonthlyTotals[m] = spent
				row.TotalMs += spent
				snap.MonthlyTotals[m] += spent
			case models.ActivityTypeCheck:
				n := aggregate.CountChecked(a.Checks, mr).Checked
				row.MonthlyChecks[m] = n
				row.CheckedDays += n
				snap.MonthlyChecks[m] += n
			}
		}
		snap.TotalMs += row.TotalMs
		snap.ChecksDone += row.CheckedDays
		snap.Activities = append(snap.Activities, row)
	}
	return snap
}
