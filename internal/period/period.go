// Package period computes calendar boundaries for day, week (Monday start),
// month and year ranges in the location of the reference instant.
package period

import (
	"time"

	"github.com/julianstephens/tracklit/internal/constants"
	"github.com/julianstephens/tracklit/internal/models"
)

// lastMilli is the offset of 23:59:59.999 within a day
const lastMilli = 999 * int(time.Millisecond)

// Range is a closed interval [Start, End] of calendar boundaries
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies within the closed range
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// StartMs returns Start as milliseconds since the epoch
func (r Range) StartMs() int64 {
	return r.Start.UnixMilli()
}

// EndMs returns End as milliseconds since the epoch
func (r Range) EndMs() int64 {
	return r.End.UnixMilli()
}

// StartOfDay returns 00:00:00.000 of t's calendar date
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 of t's calendar date
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, lastMilli, t.Location())
}

func DayRange(ref time.Time) Range {
	return Range{Start: StartOfDay(ref), End: EndOfDay(ref)}
}

// WeekStart returns Monday 00:00 of the week containing ref. Sunday belongs to
// the week that started on the preceding Monday.
func WeekStart(ref time.Time) time.Time {
	offset := 1 - int(ref.Weekday())
	if ref.Weekday() == time.Sunday {
		offset = -6
	}
	return time.Date(ref.Year(), ref.Month(), ref.Day()+offset, 0, 0, 0, 0, ref.Location())
}

func WeekRange(ref time.Time) Range {
	start := WeekStart(ref)
	sunday := time.Date(start.Year(), start.Month(), start.Day()+6, 0, 0, 0, 0, start.Location())
	return Range{Start: start, End: EndOfDay(sunday)}
}

func MonthRange(ref time.Time) Range {
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	// day 0 of next month is the last day of this one
	last := time.Date(ref.Year(), ref.Month()+1, 0, 0, 0, 0, 0, ref.Location())
	return Range{Start: start, End: EndOfDay(last)}
}

func YearRange(ref time.Time) Range {
	return Range{
		Start: time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, ref.Location()),
		End:   time.Date(ref.Year(), time.December, 31, 23, 59, 59, lastMilli, ref.Location()),
	}
}

// ForKind returns the range of the given kind around ref. Unrecognized kinds
// fall back to the day range.
func ForKind(kind models.PeriodKind, ref time.Time) Range {
	switch kind {
	case models.PeriodDay:
		return DayRange(ref)
	case models.PeriodWeek:
		return WeekRange(ref)
	case models.PeriodMonth:
		return MonthRange(ref)
	case models.PeriodYear:
		return YearRange(ref)
	default:
		return DayRange(ref)
	}
}

// DaysInMonth returns the number of calendar days in ref's month
func DaysInMonth(ref time.Time) int {
	return time.Date(ref.Year(), ref.Month()+1, 0, 0, 0, 0, 0, ref.Location()).Day()
}

// Days returns the start of every calendar day touched by r, in order.
// Stepping uses calendar arithmetic so DST transitions never skip or repeat a day.
func Days(r Range) []time.Time {
	if r.End.Before(r.Start) {
		return nil
	}
	var days []time.Time
	end := StartOfDay(r.End)
	for d := StartOfDay(r.Start); !d.After(end); d = AddDays(d, 1) {
		days = append(days, d)
	}
	return days
}

// AddDays shifts t by n calendar days, keeping midnight alignment
func AddDays(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+n, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// ISODate formats the local calendar date of t as YYYY-MM-DD. This is the key
// format of activity check maps.
func ISODate(t time.Time) string {
	return t.Format(constants.DateFormat)
}
