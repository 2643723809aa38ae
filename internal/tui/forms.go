package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tracklit/internal/models"
)

func NewActivityForm(fm *ActivityFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Activity Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("activity name cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("Time (start/stop timer)", string(models.ActivityTypeTime)),
					huh.NewOption("Check (done once a day)", string(models.ActivityTypeCheck)),
				).
				Value(&fm.Type),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewGoalForm offers goal types that fit the activity: time goals for time
// activities, count goals for check activities, streaks for both.
func NewGoalForm(fm *GoalFormModel, activity models.Activity) *huh.Form {
	typeOptions := []huh.Option[string]{}
	if activity.Type == models.ActivityTypeTime {
		typeOptions = append(typeOptions, huh.NewOption("Time (minutes per period)", string(models.GoalTypeTime)))
	} else {
		typeOptions = append(typeOptions, huh.NewOption("Count (days checked per period)", string(models.GoalTypeCount)))
	}
	typeOptions = append(typeOptions, huh.NewOption("Streak (consecutive days)", string(models.GoalTypeStreak)))
	if fm.Type == "" {
		fm.Type = typeOptions[0].Value
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Goal Name").
				Description("Leave empty to name it after "+activity.Name).
				Value(&fm.Name),
			huh.NewSelect[string]().
				Title("Type").
				Options(typeOptions...).
				Value(&fm.Type),
			huh.NewInput().
				Title("Target").
				Description("Minutes, completions or days depending on type").
				Value(&fm.Target).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n <= 0 {
						return fmt.Errorf("target must be a positive number")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Period").
				Options(
					huh.NewOption("Day", string(models.PeriodDay)),
					huh.NewOption("Week", string(models.PeriodWeek)),
					huh.NewOption("Month", string(models.PeriodMonth)),
					huh.NewOption("Year", string(models.PeriodYear)),
				).
				Value(&fm.Period),
		).WithHideFunc(func() bool { return fm.Type == string(models.GoalTypeStreak) }),
	).WithTheme(huh.ThemeDracula())
}
