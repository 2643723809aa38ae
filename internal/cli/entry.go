package cli

import (
	"time"

	"github.com/julianstephens/tracklit/internal/constants"
	apperr "github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/utils"
)

type EntryCmd struct {
	Add    EntryAddCmd    `cmd:"" help:"Log a finished time entry."`
	Delete EntryDeleteCmd `cmd:"" help:"Delete a time entry by its index from 'activity log'."`
}

type EntryAddCmd struct {
	Activity string        `arg:"" help:"Activity name or ID."`
	Start    string        `help:"Start as HH:MM (today) or 'YYYY-MM-DD HH:MM'." required:""`
	End      string        `help:"End as HH:MM (same day as start) or 'YYYY-MM-DD HH:MM'." xor:"end"`
	Duration time.Duration `help:"Length of the entry, e.g. 45m or 1h30m." xor:"end"`
}

func (c *EntryAddCmd) Run(ctx *Context) error {
	a, err := ctx.Tracker.Resolve(c.Activity)
	if err != nil {
		return err
	}

	start, err := utils.ParseDateTimeInLocation(c.Start, ctx.Tracker.Now())
	if err != nil {
		return apperr.Invalid("start %q: %v", c.Start, err)
	}
	var end time.Time
	switch {
	case c.End != "":
		end, err = utils.ParseDateTimeInLocation(c.End, start)
		if err != nil {
			return apperr.Invalid("end %q: %v", c.End, err)
		}
	case c.Duration > 0:
		end = start.Add(c.Duration)
	default:
		return apperr.Invalid("one of --end or a positive --duration is required")
	}

	e, err := ctx.Tracker.AddEntry(ctx.Ctx, a.ID, start, end)
	if err != nil {
		return err
	}
	ctx.printf("Logged %s for %s (%s - %s)\n", utils.FormatDuration(e.DurationMs()), a.Name,
		start.Format(constants.DateTimeFormat), end.Format(constants.TimeFormat))
	return nil
}

type EntryDeleteCmd struct {
	Activity string `arg:"" help:"Activity name or ID."`
	Index    int    `arg:"" help:"Entry index as shown by 'activity log'."`
}

func (c *EntryDeleteCmd) Run(ctx *Context) error {
	a, err := ctx.Tracker.Resolve(c.Activity)
	if err != nil {
		return err
	}
	if err := ctx.Tracker.DeleteEntry(ctx.Ctx, a.ID, c.Index); err != nil {
		return err
	}
	ctx.printf("Deleted entry %d of %s\n", c.Index, a.Name)
	return nil
}
