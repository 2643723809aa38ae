package models

import (
	"fmt"
	"strings"
	"time"
)

type GoalType string

const (
	GoalTypeTime   GoalType = "time"
	GoalTypeCount  GoalType = "count"
	GoalTypeStreak GoalType = "streak"
)

// ParseGoalType accepts the canonical names case-insensitively
func ParseGoalType(s string) (GoalType, error) {
	switch GoalType(strings.ToLower(strings.TrimSpace(s))) {
	case GoalTypeTime:
		return GoalTypeTime, nil
	case GoalTypeCount:
		return GoalTypeCount, nil
	case GoalTypeStreak:
		return GoalTypeStreak, nil
	default:
		return "", fmt.Errorf("invalid goal type %q (expected time, count or streak)", s)
	}
}

type PeriodKind string

const (
	PeriodDay   PeriodKind = "day"
	PeriodWeek  PeriodKind = "week"
	PeriodMonth PeriodKind = "month"
	PeriodYear  PeriodKind = "year"
)

// ParsePeriodKind accepts the canonical names case-insensitively
func ParsePeriodKind(s string) (PeriodKind, error) {
	switch PeriodKind(strings.ToLower(strings.TrimSpace(s))) {
	case PeriodDay:
		return PeriodDay, nil
	case PeriodWeek:
		return PeriodWeek, nil
	case PeriodMonth:
		return PeriodMonth, nil
	case PeriodYear:
		return PeriodYear, nil
	default:
		return "", fmt.Errorf("invalid period %q (expected day, week, month or year)", s)
	}
}

// GoalConfig holds the type-specific targets. Only the fields relevant to the
// goal's type are meaningful:
//   - time:   ActivityID, TargetMinutes, Period
//   - count:  ActivityID, TargetCount, Period
//   - streak: ActivityID, TargetDays
type GoalConfig struct {
	ActivityID    string     `json:"activity_id" yaml:"activity_id"`
	TargetMinutes int        `json:"target_minutes,omitempty" yaml:"target_minutes,omitempty"`
	TargetCount   int        `json:"target_count,omitempty" yaml:"target_count,omitempty"`
	TargetDays    int        `json:"target_days,omitempty" yaml:"target_days,omitempty"`
	Period        PeriodKind `json:"period,omitempty" yaml:"period,omitempty"`
}

type Goal struct {
	ID        string     `json:"id" yaml:"id"`
	Name      string     `json:"name" yaml:"name"`
	Type      GoalType   `json:"type" yaml:"type"`
	Config    GoalConfig `json:"config" yaml:"config"`
	CreatedAt time.Time  `json:"created_at" yaml:"created_at"`
}

// Target returns the configured target for the goal's type
func (g *Goal) Target() int {
	switch g.Type {
	case GoalTypeTime:
		return g.Config.TargetMinutes
	case GoalTypeCount:
		return g.Config.TargetCount
	case GoalTypeStreak:
		return g.Config.TargetDays
	default:
		return 0
	}
}

// Validate checks the goal definition on its own. Cross-checks against the
// referenced activity are done by the tracker.
func (g *Goal) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return fmt.Errorf("goal id cannot be empty")
	}
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("goal name cannot be empty")
	}
	if strings.TrimSpace(g.Config.ActivityID) == "" {
		return fmt.Errorf("goal must reference an activity")
	}
	if _, err := ParseGoalType(string(g.Type)); err != nil {
		return err
	}

	if g.Target() <= 0 {
		return fmt.Errorf("goal target must be greater than zero")
	}

	if g.Type != GoalTypeStreak {
		if _, err := ParsePeriodKind(string(g.Config.Period)); err != nil {
			return err
		}
	}

	return nil
}

// Goals is the goal snapshot keyed by goal id
type Goals map[string]Goal

// ForActivity returns the goals that reference the given activity
func (gs Goals) ForActivity(activityID string) []Goal {
	var out []Goal
	for _, g := range gs {
		if g.Config.ActivityID == activityID {
			out = append(out, g)
		}
	}
	return out
}
