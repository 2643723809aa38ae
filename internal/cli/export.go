package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/julianstephens/tracklit/internal/export"
)

type ExportCmd struct {
	Format string `help:"Output format." enum:"json,yaml" default:"json" short:"f"`
	Output string `help:"Write to this file instead of stdout." short:"o" type:"path"`
}

func (c *ExportCmd) Run(ctx *Context) error {
	activities, err := ctx.Tracker.Activities()
	if err != nil {
		return err
	}
	gs, err := ctx.Tracker.Goals()
	if err != nil {
		return err
	}
	format, err := export.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	doc := export.Build(activities, gs, ctx.Tracker.Now())

	var w io.Writer = ctx.Out
	if c.Output != "" {
		if err := os.MkdirAll(filepath.Dir(c.Output), 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := export.Write(w, format, doc); err != nil {
		return err
	}
	if c.Output != "" {
		ctx.printf("Exported %d activities and %d goals to %s\n", len(doc.Activities), len(doc.Goals), c.Output)
	}
	return nil
}
