package cli

import (
	"fmt"
	"sort"

	"github.com/julianstephens/tracklit/internal/aggregate"
	"github.com/julianstephens/tracklit/internal/constants"
	apperr "github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/goals"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/period"
	"github.com/julianstephens/tracklit/internal/render"
	"github.com/julianstephens/tracklit/internal/utils"
)

type ActivityCmd struct {
	Add    ActivityAddCmd    `cmd:"" help:"Add a new activity."`
	List   ActivityListCmd   `cmd:"" help:"List activities." default:"1"`
	Show   ActivityShowCmd   `cmd:"" help:"Show an activity with its streaks and goals."`
	Rename ActivityRenameCmd `cmd:"" help:"Rename an activity."`
	Delete ActivityDeleteCmd `cmd:"" help:"Delete an activity and its goals."`
	Start  ActivityStartCmd  `cmd:"" help:"Start the timer of a time activity."`
	Stop   ActivityStopCmd   `cmd:"" help:"Stop the running timer of a time activity."`
	Log    ActivityLogCmd    `cmd:"" help:"Show recent entries or checked days."`
	Check  ActivityCheckCmd  `cmd:"" help:"Toggle or set the check of a check activity for a day."`
}

type ActivityAddCmd struct {
	Name string `arg:"" help:"Activity name."`
	Type string `help:"Activity type (time or check)." enum:"time,check" default:"time" short:"t"`
}

func (c *ActivityAddCmd) Run(ctx *Context) error {
	typ, err := models.ParseActivityType(c.Type)
	if err != nil {
		return err
	}
	a, err := ctx.Tracker.CreateActivity(c.Name, typ)
	if err != nil {
		return err
	}
	ctx.printf("Added %s activity: %s\n", a.Type, a.Name)
	return nil
}

type ActivityListCmd struct{}

func (c *ActivityListCmd) Run(ctx *Context) error {
	all, err := ctx.Tracker.Activities()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		ctx.println("No activities found. Add one with 'tracklit activity add <name>'.")
		return nil
	}

	now := ctx.Tracker.Now()
	today := period.DayRange(now)
	for _, a := range all.Sorted() {
		switch a.Type {
		case models.ActivityTypeTime:
			status := utils.FormatDuration(aggregate.SumOverlap(a.Entries, today)) + " today"
			if e, ok := a.RunningEntry(); ok {
				status += " " + render.RunningStyle.Render("● "+utils.FormatClock(now.UnixMilli()-e.Start))
			}
			ctx.printf("  %-24s %-6s %s\n", a.Name, a.Type, status)
		case models.ActivityTypeCheck:
			ctx.printf("  %-24s %-6s %s\n", a.Name, a.Type, render.CheckMark(a.IsChecked(period.ISODate(now))))
		}
	}
	return nil
}

type ActivityShowCmd struct {
	Activity string `arg:"" help:"Activity name or ID."`
}

func (c *ActivityShowCmd) Run(ctx *Context) error {
	a, err := ctx.Tracker.Resolve(c.Activity)
	if err != nil {
		return err
	}
	all, err := ctx.Tracker.Activities()
	if err != nil {
		return err
	}
	gs, err := ctx.Tracker.Goals()
	if err != nil {
		return err
	}

	now := ctx.Tracker.Now()
	set := models.Subset(a.ID)
	ctx.println(render.HeaderStyle.Render(a.Name))
	ctx.printf("  ID:      %s\n", a.ID)
	ctx.printf("  Type:    %s\n", a.Type)
	if a.CreatedAt != nil {
		ctx.printf("  Created: %s\n", a.CreatedAt.In(now.Location()).Format(constants.DateTimeFormat))
	}
	if a.Type == models.ActivityTypeTime {
		ctx.printf("  Today:   %s\n", utils.FormatDuration(aggregate.TimeInRange(all, set, period.DayRange(now))))
		ctx.printf("  Week:    %s\n", utils.FormatDuration(aggregate.TimeInRange(all, set, period.WeekRange(now))))
		ctx.printf("  Month:   %s\n", utils.FormatDuration(aggregate.TimeInRange(all, set, period.MonthRange(now))))
	} else {
		ctx.printf("  Week:    %d checks\n", aggregate.CountChecksInRange(all, set, period.WeekRange(now)))
		ctx.printf("  Month:   %d checks\n", aggregate.CountChecksInRange(all, set, period.MonthRange(now)))
	}
	ctx.printf("  Streak:  %d days (longest %d)\n",
		aggregate.CurrentStreak(all, set, a.Type, now),
		aggregate.LongestStreak(all, set, a.Type, now))

	related := gs.ForActivity(a.ID)
	if len(related) == 0 {
		return nil
	}
	sort.Slice(related, func(i, j int) bool { return related[i].Name < related[j].Name })
	ctx.println("\n  Goals:")
	for _, g := range related {
		ctx.println("  " + render.GoalLine(g, goals.Evaluate(g, all, now)))
	}
	return nil
}

type ActivityRenameCmd struct {
	Activity string `arg:"" help:"Activity name or ID."`
	Name     string `arg:"" help:"New name."`
}

func (c *ActivityRenameCmd) Run(ctx *Context) error {
	a, err := ctx.Tracker.Resolve(c.Activity)
	if err != nil {
		return err
	}
	renamed, err := ctx.Tracker.RenameActivity(a.ID, c.Name)
	if err != nil {
		return err
	}
	ctx.printf("Renamed %s to %s\n", a.Name, renamed.Name)
	return nil
}

type ActivityDeleteCmd struct {
	Activity string `arg:"" help:"Activity name or ID."`
	Yes      bool   `help:"Do not ask for confirmation." short:"y"`
}

func (c *ActivityDeleteCmd) Run(ctx *Context) error {
	a, err := ctx.Tracker.Resolve(c.Activity)
	if err != nil {
		return err
	}
	if !c.Yes {
		ok, err := ctx.confirm(fmt.Sprintf("Delete %s and all of its entries and goals?", a.Name))
		if err != nil {
			return err
		}
		if !ok {
			ctx.println("Delete cancelled.")
			return nil
		}
	}
	if err := ctx.Tracker.DeleteActivity(a.ID); err != nil {
		return err
	}
	ctx.printf("Deleted activity: %s\n", a.Name)
	return nil
}

type ActivityStartCmd struct {
	Activity string `arg:"" help:"Activity name or ID."`
}

func (c *ActivityStartCmd) Run(ctx *Context) error {
	a, err := ctx.Tracker.Resolve(c.Activity)
	if err != nil {
		return err
	}
	e, err := ctx.Tracker.StartTimer(ctx.Ctx, a.ID)
	if err != nil {
		return err
	}
	ctx.printf("Started %s at %s\n", a.Name, e.StartTime(ctx.Tracker.Location()).Format(constants.TimeFormat))
	return nil
}

type ActivityStopCmd struct {
	Activity string `arg:"" help:"Activity name or ID."`
}

func (c *ActivityStopCmd) Run(ctx *Context) error {
	a, err := ctx.Tracker.Resolve(c.Activity)
	if err != nil {
		return err
	}
	e, err := ctx.Tracker.StopTimer(ctx.Ctx, a.ID)
	if err != nil {
		return err
	}
	ctx.printf("Stopped %s after %s\n", a.Name, utils.FormatDuration(e.DurationMs()))
	return nil
}

type ActivityLogCmd struct {
	Activity string `arg:"" help:"Activity name or ID."`
	Days     int    `help:"Number of days to show, ending today." default:"7"`
}

func (c *ActivityLogCmd) Run(ctx *Context) error {
	if c.Days <= 0 {
		return apperr.Invalid("--days must be positive")
	}
	a, err := ctx.Tracker.Resolve(c.Activity)
	if err != nil {
		return err
	}

	now := ctx.Tracker.Now()
	from := period.StartOfDay(period.AddDays(now, -(c.Days - 1)))
	r := period.Range{Start: from, End: period.EndOfDay(now)}
	loc := now.Location()

	ctx.println(render.HeaderStyle.Render(fmt.Sprintf("%s, last %d days", a.Name, c.Days)))
	if a.Type == models.ActivityTypeCheck {
		for _, day := range period.Days(r) {
			key := period.ISODate(day)
			ctx.printf("  %s %s %s\n", key, day.Format("Mon"), render.CheckMark(a.IsChecked(key)))
		}
		return nil
	}

	shown := 0
	for i, e := range a.Entries {
		if e.Start > r.End.UnixMilli() || (!e.IsOpen() && *e.End < r.Start.UnixMilli()) {
			continue
		}
		start := e.StartTime(loc)
		if e.IsOpen() {
			ctx.printf("  [%d] %s %s - %s\n", i, start.Format(constants.DateFormat), start.Format(constants.TimeFormat),
				render.RunningStyle.Render("running "+utils.FormatClock(now.UnixMilli()-e.Start)))
		} else {
			ctx.printf("  [%d] %s %s - %s  %s\n", i, start.Format(constants.DateFormat), start.Format(constants.TimeFormat),
				e.EndTime(loc).Format(constants.TimeFormat), utils.FormatDuration(e.DurationMs()))
		}
		shown++
	}
	if shown == 0 {
		ctx.println("  No entries in this range.")
		return nil
	}
	ctx.printf("\n  Total: %s\n", utils.FormatDuration(aggregate.SumOverlap(a.Entries, r)))
	return nil
}

type ActivityCheckCmd struct {
	Activity string `arg:"" help:"Activity name or ID."`
	Date     string `help:"Day to mark (YYYY-MM-DD), defaults to today."`
	On       bool   `help:"Mark the day done instead of toggling." xor:"state"`
	Off      bool   `help:"Clear the day instead of toggling." xor:"state"`
}

func (c *ActivityCheckCmd) Run(ctx *Context) error {
	a, err := ctx.Tracker.Resolve(c.Activity)
	if err != nil {
		return err
	}
	day, err := ctx.day(c.Date)
	if err != nil {
		return err
	}

	var done bool
	if c.On || c.Off {
		done = c.On
		err = ctx.Tracker.SetCheck(ctx.Ctx, a.ID, day, done)
	} else {
		done, err = ctx.Tracker.ToggleCheck(ctx.Ctx, a.ID, day)
	}
	if err != nil {
		return err
	}

	state := "unchecked"
	if done {
		state = "checked"
	}
	ctx.printf("%s %s for %s\n", a.Name, state, period.ISODate(day))
	return nil
}
