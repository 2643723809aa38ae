package aggregate

import (
	"time"

	"github.com/julianstephens/tracklit/internal/constants"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/period"
)

// HasActivityOn reports whether any of the given activities qualifies on the
// calendar day containing day. For time streaks a closed entry must overlap
// the day; for check streaks the day must be checked.
func HasActivityOn(selected []models.Activity, streakType models.ActivityType, day time.Time) bool {
	switch streakType {
	case models.ActivityTypeTime:
		r := period.DayRange(day)
		ds, de := r.StartMs(), r.EndMs()
		for _, a := range selected {
			for _, e := range a.Entries {
				if e.End == nil {
					continue
				}
				if *e.End >= ds && e.Start <= de {
					return true
				}
			}
		}
		return false
	default:
		key := period.ISODate(day)
		for _, a := range selected {
			if a.Checks[key] {
				return true
			}
		}
		return false
	}
}

// CurrentStreak counts consecutive qualifying days ending today. If today has
// no activity yet but yesterday does, the streak is counted from yesterday.
// The walk stops once it is more than StreakLookbackDays behind today.
func CurrentStreak(activities models.Activities, set models.ActivitySet, streakType models.ActivityType, now time.Time) int {
	selected := set.Select(activities, streakType)
	if len(selected) == 0 {
		return 0
	}

	today := period.StartOfDay(now)
	offset := 0
	if !HasActivityOn(selected, streakType, today) {
		if !HasActivityOn(selected, streakType, period.AddDays(today, -1)) {
			return 0
		}
		offset = 1
	}

	streak := 0
	for ; offset <= constants.StreakLookbackDays; offset++ {
		if !HasActivityOn(selected, streakType, period.AddDays(today, -offset)) {
			break
		}
		streak++
	}
	return streak
}

// LongestStreak returns the longest run of qualifying days within the lookback
// window ending today.
func LongestStreak(activities models.Activities, set models.ActivitySet, streakType models.ActivityType, now time.Time) int {
	selected := set.Select(activities, streakType)
	if len(selected) == 0 {
		return 0
	}

	today := period.StartOfDay(now)
	longest, run := 0, 0
	for offset := constants.StreakLookbackDays; offset >= 0; offset-- {
		if HasActivityOn(selected, streakType, period.AddDays(today, -offset)) {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return longest
}
