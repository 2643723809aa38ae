package cli

import (
	"fmt"

	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/render"
	"github.com/julianstephens/tracklit/internal/tracker"
)

type GoalCmd struct {
	Add    GoalAddCmd    `cmd:"" help:"Add a goal for an activity."`
	List   GoalListCmd   `cmd:"" help:"List goals."`
	Delete GoalDeleteCmd `cmd:"" help:"Delete a goal."`
	Status GoalStatusCmd `cmd:"" help:"Show progress toward every goal." default:"1"`
}

type GoalAddCmd struct {
	Activity string `arg:"" help:"Activity name or ID."`
	Type     string `help:"Goal type: time (minutes), count (checked days) or streak (consecutive days)." enum:"time,count,streak" required:"" short:"t"`
	Target   int    `help:"Target in minutes, completions or days depending on type." required:""`
	Period   string `help:"Period for time and count goals." enum:"day,week,month,year" default:"week"`
	Name     string `help:"Goal name. Defaults to the activity name and period."`
}

func (c *GoalAddCmd) Run(ctx *Context) error {
	a, err := ctx.Tracker.Resolve(c.Activity)
	if err != nil {
		return err
	}
	typ, err := models.ParseGoalType(c.Type)
	if err != nil {
		return err
	}
	in := tracker.GoalInput{
		Name:       c.Name,
		Type:       typ,
		ActivityID: a.ID,
		Target:     c.Target,
	}
	if typ != models.GoalTypeStreak {
		in.Period = models.PeriodKind(c.Period)
	}
	g, err := ctx.Tracker.CreateGoal(in)
	if err != nil {
		return err
	}
	ctx.printf("Added %s goal: %s\n", g.Type, g.Name)
	return nil
}

type GoalListCmd struct{}

func (c *GoalListCmd) Run(ctx *Context) error {
	status, err := ctx.Tracker.Status()
	if err != nil {
		return err
	}
	if len(status) == 0 {
		ctx.println("No goals found.")
		return nil
	}
	all, err := ctx.Tracker.Activities()
	if err != nil {
		return err
	}
	for _, s := range status {
		g := s.Goal
		activity := g.Config.ActivityID
		if a, ok := all[activity]; ok {
			activity = a.Name
		}
		scope := fmt.Sprintf("%d %s per %s", g.Target(), s.Result.Unit, g.Config.Period)
		if g.Type == models.GoalTypeStreak {
			scope = fmt.Sprintf("%d day streak", g.Target())
		}
		ctx.printf("  %-24s %-6s %-18s %s\n", g.Name, g.Type, activity, scope)
	}
	return nil
}

type GoalDeleteCmd struct {
	Goal string `arg:"" help:"Goal name or ID."`
}

func (c *GoalDeleteCmd) Run(ctx *Context) error {
	g, err := ctx.Tracker.ResolveGoal(c.Goal)
	if err != nil {
		return err
	}
	if err := ctx.Tracker.DeleteGoal(g.ID); err != nil {
		return err
	}
	ctx.printf("Deleted goal: %s\n", g.Name)
	return nil
}

type GoalStatusCmd struct{}

func (c *GoalStatusCmd) Run(ctx *Context) error {
	status, err := ctx.Tracker.Status()
	if err != nil {
		return err
	}
	if len(status) == 0 {
		ctx.println("No goals found. Add one with 'tracklit goal add'.")
		return nil
	}
	ctx.println(render.HeaderStyle.Render("Goals"))
	for _, s := range status {
		ctx.println(render.GoalLine(s.Goal, s.Result))
	}
	return nil
}
