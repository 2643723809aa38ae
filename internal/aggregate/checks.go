package aggregate

import (
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/period"
)

// CheckCount is the number of checked days out of the days in a range
type CheckCount struct {
	Checked int `json:"checked" yaml:"checked"`
	Total   int `json:"total" yaml:"total"`
}

// CountChecked walks the local calendar days of r inclusively and counts the
// days marked true in checks. A nil map counts as no checks.
func CountChecked(checks map[string]bool, r period.Range) CheckCount {
	var c CheckCount
	for _, d := range period.Days(r) {
		c.Total++
		if checks[period.ISODate(d)] {
			c.Checked++
		}
	}
	return c
}

// CountChecksInRange sums the checked days across the check activities in set
func CountChecksInRange(activities models.Activities, set models.ActivitySet, r period.Range) int {
	total := 0
	for _, a := range set.Select(activities, models.ActivityTypeCheck) {
		total += CountChecked(a.Checks, r).Checked
	}
	return total
}
