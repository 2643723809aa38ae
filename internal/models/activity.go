package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// ActivityType distinguishes duration-tracked activities from daily checks
type ActivityType string

const (
	ActivityTypeTime  ActivityType = "time"
	ActivityTypeCheck ActivityType = "check"
)

// ParseActivityType accepts the canonical names case-insensitively
func ParseActivityType(s string) (ActivityType, error) {
	switch ActivityType(strings.ToLower(strings.TrimSpace(s))) {
	case ActivityTypeTime:
		return ActivityTypeTime, nil
	case ActivityTypeCheck:
		return ActivityTypeCheck, nil
	default:
		return "", fmt.Errorf("invalid activity type %q (expected time or check)", s)
	}
}

// TimeEntry is one recorded start/stop interval in milliseconds since the epoch.
// A nil End means the timer is still running.
type TimeEntry struct {
	Start int64  `json:"start" yaml:"start"`
	End   *int64 `json:"end" yaml:"end"`
}

// IsOpen reports whether the entry has not been stopped yet
func (e TimeEntry) IsOpen() bool {
	return e.End == nil
}

// StartTime returns the entry start in the given location
func (e TimeEntry) StartTime(loc *time.Location) time.Time {
	return time.UnixMilli(e.Start).In(loc)
}

// EndTime returns the entry end in the given location, or the zero time for open entries
func (e TimeEntry) EndTime(loc *time.Location) time.Time {
	if e.End == nil {
		return time.Time{}
	}
	return time.UnixMilli(*e.End).In(loc)
}

// DurationMs returns end-start for closed entries, clamped at zero
func (e TimeEntry) DurationMs() int64 {
	if e.End == nil || *e.End < e.Start {
		return 0
	}
	return *e.End - e.Start
}

type Activity struct {
	ID        string          `json:"id" yaml:"id"`
	Name      string          `json:"name" yaml:"name"`
	Type      ActivityType    `json:"type" yaml:"type"`
	Entries   []TimeEntry     `json:"entries,omitempty" yaml:"entries,omitempty"`
	Checks    map[string]bool `json:"checks,omitempty" yaml:"checks,omitempty"`
	CreatedAt *time.Time      `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

// RunningEntry returns the open entry, which can only be the last one
func (a *Activity) RunningEntry() (TimeEntry, bool) {
	if len(a.Entries) == 0 {
		return TimeEntry{}, false
	}
	last := a.Entries[len(a.Entries)-1]
	if !last.IsOpen() {
		return TimeEntry{}, false
	}
	return last, true
}

// IsRunning reports whether a timer is active on this activity
func (a *Activity) IsRunning() bool {
	_, ok := a.RunningEntry()
	return ok
}

// IsChecked reports whether the given day key is marked done
func (a *Activity) IsChecked(day string) bool {
	return a.Checks[day]
}

func (a *Activity) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("activity id cannot be empty")
	}
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("activity name cannot be empty")
	}
	if _, err := ParseActivityType(string(a.Type)); err != nil {
		return err
	}

	for i, e := range a.Entries {
		if e.IsOpen() && i != len(a.Entries)-1 {
			return fmt.Errorf("entry %d is open but is not the last entry", i)
		}
		if e.End != nil && *e.End < e.Start {
			return fmt.Errorf("entry %d ends before it starts", i)
		}
	}

	return nil
}

// Clone returns a deep copy so callers can mutate without touching the snapshot
func (a Activity) Clone() Activity {
	c := a
	if a.Entries != nil {
		c.Entries = make([]TimeEntry, len(a.Entries))
		for i, e := range a.Entries {
			c.Entries[i] = TimeEntry{Start: e.Start}
			if e.End != nil {
				end := *e.End
				c.Entries[i].End = &end
			}
		}
	}
	if a.Checks != nil {
		c.Checks = make(map[string]bool, len(a.Checks))
		for k, v := range a.Checks {
			c.Checks[k] = v
		}
	}
	if a.CreatedAt != nil {
		t := *a.CreatedAt
		c.CreatedAt = &t
	}
	return c
}

// Activities is the in-memory snapshot keyed by activity id
type Activities map[string]Activity

// Sorted returns activities ordered by creation time, then name, then id.
// Records without a creation time sort first.
func (as Activities) Sorted() []Activity {
	out := make([]Activity, 0, len(as))
	for _, a := range as {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		ci, cj := out[i].CreatedAt, out[j].CreatedAt
		switch {
		case ci == nil && cj != nil:
			return true
		case ci != nil && cj == nil:
			return false
		case ci != nil && cj != nil && !ci.Equal(*cj):
			return ci.Before(*cj)
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// FindByName returns the activity with an exact (case-insensitive) name match
func (as Activities) FindByName(name string) (Activity, bool) {
	for _, a := range as {
		if strings.EqualFold(a.Name, name) {
			return a, true
		}
	}
	return Activity{}, false
}

// ActivitySet selects either every activity or an explicit subset of ids
type ActivitySet struct {
	all bool
	ids []string
}

// AllActivities selects every activity of the relevant type
func AllActivities() ActivitySet {
	return ActivitySet{all: true}
}

// Subset selects only the listed activity ids. An empty subset selects nothing.
func Subset(ids ...string) ActivitySet {
	return ActivitySet{ids: append([]string(nil), ids...)}
}

// Select resolves the set against a snapshot, keeping only activities of the
// given type. Ids that do not resolve are skipped. Output order is deterministic.
func (s ActivitySet) Select(as Activities, typ ActivityType) []Activity {
	var out []Activity
	if s.all {
		for _, a := range as.Sorted() {
			if a.Type == typ {
				out = append(out, a)
			}
		}
		return out
	}

	seen := make(map[string]bool, len(s.ids))
	for _, id := range s.ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		a, ok := as[id]
		if !ok || a.Type != typ {
			continue
		}
		out = append(out, a)
	}
	return out
}
