// Package goals evaluates goal definitions against an activity snapshot.
// Evaluation is stateless and recomputed on every call.
package goals

import (
	"math"
	"time"

	"github.com/julianstephens/tracklit/internal/aggregate"
	"github.com/julianstephens/tracklit/internal/constants"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/period"
	"github.com/julianstephens/tracklit/internal/utils"
)

// Result is the derived progress of one goal. It is never persisted.
type Result struct {
	Achieved           bool   `json:"achieved" yaml:"achieved"`
	Current            int    `json:"current" yaml:"current"`
	Target             int    `json:"target" yaml:"target"`
	ProgressPercentage int    `json:"progress_percentage" yaml:"progress_percentage"`
	Unit               string `json:"unit" yaml:"unit"`
}

// Unknown is the neutral result for goal types this evaluator does not know.
func Unknown() Result {
	return Result{Unit: constants.UnitUnknown}
}

// Evaluate computes the progress of goal as of now. now's location defines
// the calendar used for period boundaries.
func Evaluate(goal models.Goal, activities models.Activities, now time.Time) Result {
	switch goal.Type {
	case models.GoalTypeTime:
		return evaluateTime(goal, activities, now)
	case models.GoalTypeCount:
		return evaluateCount(goal, activities, now)
	case models.GoalTypeStreak:
		return evaluateStreak(goal, activities, now)
	default:
		// legacy or corrupt definitions degrade to a neutral result
		return Unknown()
	}
}

// EvaluateAll evaluates every goal against the same snapshot
func EvaluateAll(goals models.Goals, activities models.Activities, now time.Time) map[string]Result {
	results := make(map[string]Result, len(goals))
	for id, g := range goals {
		results[id] = Evaluate(g, activities, now)
	}
	return results
}

// Percentage returns round(current/target*100) clamped to [0, 100]. A
// non-positive target yields 0.
func Percentage(current, target int) int {
	if target <= 0 {
		return 0
	}
	p := utils.ClampFinite(float64(current) / float64(target) * 100)
	return int(math.Min(100, math.Floor(p+0.5)))
}

func activitySet(goal models.Goal) models.ActivitySet {
	if goal.Config.ActivityID == "" {
		return models.AllActivities()
	}
	return models.Subset(goal.Config.ActivityID)
}

func newResult(current, target int, unit string) Result {
	if current < 0 {
		current = 0
	}
	return Result{
		Achieved:           current >= target,
		Current:            current,
		Target:             target,
		ProgressPercentage: Percentage(current, target),
		Unit:               unit,
	}
}

func evaluateTime(goal models.Goal, activities models.Activities, now time.Time) Result {
	r := period.ForKind(goal.Config.Period, now)
	spent := aggregate.TimeInRange(activities, activitySet(goal), r)
	return newResult(utils.MsToMinutes(spent), goal.Config.TargetMinutes, constants.UnitMinutes)
}

func evaluateCount(goal models.Goal, activities models.Activities, now time.Time) Result {
	r := period.ForKind(goal.Config.Period, now)
	count := aggregate.CountChecksInRange(activities, activitySet(goal), r)
	return newResult(count, goal.Config.TargetCount, constants.UnitCompletions)
}

// StreakType returns the streak mode for the goal's activity. Time activities
// count in "any time logged" mode; everything else, including a missing
// activity, uses check mode.
func StreakType(goal models.Goal, activities models.Activities) models.ActivityType {
	if a, ok := activities[goal.Config.ActivityID]; ok && a.Type == models.ActivityTypeTime {
		return models.ActivityTypeTime
	}
	return models.ActivityTypeCheck
}

func evaluateStreak(goal models.Goal, activities models.Activities, now time.Time) Result {
	streak := aggregate.CurrentStreak(activities, activitySet(goal), StreakType(goal, activities), now)
	return newResult(streak, goal.Config.TargetDays, constants.UnitDays)
}
