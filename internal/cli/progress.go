package cli

import (
	"github.com/julianstephens/tracklit/internal/export"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/render"
)

type ProgressCmd struct {
	Day   ProgressDayCmd   `cmd:"" help:"Show one day." default:"withargs"`
	Week  ProgressWeekCmd  `cmd:"" help:"Show the week (Monday to Sunday)."`
	Month ProgressMonthCmd `cmd:"" help:"Show the month."`
	Year  ProgressYearCmd  `cmd:"" help:"Show the year by month."`
}

// ProgressFlags are shared by every progress subcommand
type ProgressFlags struct {
	Date   string `help:"Any day inside the period (YYYY-MM-DD), defaults to today."`
	Format string `help:"Output format." enum:"text,json,yaml" default:"text" short:"f"`
}

func (f ProgressFlags) show(ctx *Context, kind models.PeriodKind) error {
	ref, err := ctx.day(f.Date)
	if err != nil {
		return err
	}
	snap, err := ctx.Tracker.Snapshot(kind, ref)
	if err != nil {
		return err
	}

	if f.Format == "text" {
		ctx.printf("%s", render.Snapshot(snap))
		return nil
	}
	format, err := export.ParseFormat(f.Format)
	if err != nil {
		return err
	}
	return export.Write(ctx.Out, format, snap)
}

type ProgressDayCmd struct {
	ProgressFlags `embed:""`
}

func (c *ProgressDayCmd) Run(ctx *Context) error { return c.show(ctx, models.PeriodDay) }

type ProgressWeekCmd struct {
	ProgressFlags `embed:""`
}

func (c *ProgressWeekCmd) Run(ctx *Context) error { return c.show(ctx, models.PeriodWeek) }

type ProgressMonthCmd struct {
	ProgressFlags `embed:""`
}

func (c *ProgressMonthCmd) Run(ctx *Context) error { return c.show(ctx, models.PeriodMonth) }

type ProgressYearCmd struct {
	ProgressFlags `embed:""`
}

func (c *ProgressYearCmd) Run(ctx *Context) error { return c.show(ctx, models.PeriodYear) }
