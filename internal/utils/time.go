package utils

import (
	"fmt"
	"math"
	"time"

	"github.com/julianstephens/tracklit/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) in the specified timezone.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	// Return the date at midnight in the specified timezone
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// ParseDateOrToday parses a YYYY-MM-DD date in loc, or returns now when empty.
func ParseDateOrToday(dateStr string, now time.Time) (time.Time, error) {
	if dateStr == "" {
		return now, nil
	}
	d, err := ParseDateInLocation(dateStr, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", dateStr)
	}
	// Keep the wall clock of now so "today"-relative logic sees a mid-day instant
	return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, now.Location()), nil
}

// CombineDateAndTime combines a date string (YYYY-MM-DD) and time string (HH:MM)
// into a single time.Time in the specified timezone.
func CombineDateAndTime(dateStr, timeStr string, loc *time.Location) (time.Time, error) {
	date, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %w", err)
	}

	timeOfDay, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format: %w", err)
	}

	return time.Date(
		date.Year(), date.Month(), date.Day(),
		timeOfDay.Hour(), timeOfDay.Minute(), 0, 0,
		loc,
	), nil
}

// ParseDateTimeInLocation accepts "YYYY-MM-DD HH:MM" or a bare "HH:MM" that is
// anchored to the date of ref.
func ParseDateTimeInLocation(s string, ref time.Time) (time.Time, error) {
	if t, err := time.ParseInLocation(constants.DateTimeFormat, s, ref.Location()); err == nil {
		return t, nil
	}
	return CombineDateAndTime(ref.Format(constants.DateFormat), s, ref.Location())
}

// FormatDuration renders milliseconds as "1h 05m" or "12m". Negative and
// non-finite inputs render as zero.
func FormatDuration(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	totalMin := ms / int64(time.Minute/time.Millisecond)
	h := totalMin / 60
	m := totalMin % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %02dm", h, m)
}

// FormatClock renders milliseconds as "HH:MM:SS" for live timers.
func FormatClock(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	d := time.Duration(ms) * time.Millisecond
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// MsToMinutes converts milliseconds to whole minutes, never below zero.
func MsToMinutes(ms int64) int {
	if ms <= 0 {
		return 0
	}
	return int(ms / int64(time.Minute/time.Millisecond))
}

// ClampFinite returns 0 for NaN, infinities and negative values.
func ClampFinite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
