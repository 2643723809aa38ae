// Package render draws progress views, goal lines and bars with lipgloss for
// both the command line and the dashboard.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tracklit/internal/goals"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/progress"
	"github.com/julianstephens/tracklit/internal/utils"
)

// BarWidth is the number of cells in a progress bar
const BarWidth = 20

var (
	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	DimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	DoneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	RunningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	barFillStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	barEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// ProgressBar draws pct (0-100) as a fixed-width bar
func ProgressBar(pct int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct * BarWidth / 100
	style := barFillStyle
	if pct == 100 {
		style = DoneStyle
	}
	return style.Render(strings.Repeat("█", filled)) + barEmptyStyle.Render(strings.Repeat("░", BarWidth-filled))
}

func GoalLine(g models.Goal, res goals.Result) string {
	mark := " "
	if res.Achieved {
		mark = DoneStyle.Render("✓")
	}
	scope := string(g.Config.Period)
	if g.Type == models.GoalTypeStreak {
		scope = "streak"
	}
	return fmt.Sprintf("%s %-24s %s %3d%%  %d/%d %s %s",
		mark, g.Name, ProgressBar(res.ProgressPercentage), res.ProgressPercentage,
		res.Current, res.Target, res.Unit, DimStyle.Render("("+scope+")"))
}

func CheckMark(done bool) string {
	if done {
		return DoneStyle.Render("✓")
	}
	return DimStyle.Render("·")
}

func Day(s progress.DaySnapshot) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Day "+s.Date) + "\n\n")
	if len(s.Activities) == 0 {
		b.WriteString("No activities yet.\n")
		return b.String()
	}
	for _, a := range s.Activities {
		switch a.Type {
		case models.ActivityTypeTime:
			line := fmt.Sprintf("  %-24s %s", a.Name, utils.FormatDuration(a.TotalMs))
			if a.Running {
				line += " " + RunningStyle.Render("● running")
			}
			b.WriteString(line + "\n")
		case models.ActivityTypeCheck:
			fmt.Fprintf(&b, "  %-24s %s\n", a.Name, CheckMark(a.Checked))
		}
	}
	fmt.Fprintf(&b, "\nTotal time: %s   Checks: %d/%d\n", utils.FormatDuration(s.TotalMs), s.ChecksDone, s.ChecksTotal)
	return b.String()
}

// Series prints a week or month as one row per activity with a cell per day
func Series(title string, s progress.SeriesView) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(title) + "\n\n")
	if len(s.Activities) == 0 {
		b.WriteString("No activities yet.\n")
		return b.String()
	}
	for _, a := range s.Activities {
		var cells []string
		if a.Type == models.ActivityTypeCheck {
			for _, done := range a.DailyChecks {
				cells = append(cells, CheckMark(done))
			}
			fmt.Fprintf(&b, "  %-24s %s  %d days\n", a.Name, strings.Join(cells, ""), a.CheckedDays)
			continue
		}
		for _, ms := range a.DailyTotals {
			cells = append(cells, heatCell(ms))
		}
		fmt.Fprintf(&b, "  %-24s %s  %s\n", a.Name, strings.Join(cells, ""), utils.FormatDuration(a.TotalMs))
	}
	fmt.Fprintf(&b, "\nTotal time: %s\n", utils.FormatDuration(s.TotalMs))
	return b.String()
}

// heatCell shades a day by minutes logged
func heatCell(ms int64) string {
	switch minutes := utils.MsToMinutes(ms); {
	case minutes == 0:
		return DimStyle.Render("·")
	case minutes < 30:
		return barFillStyle.Render("░")
	case minutes < 60:
		return barFillStyle.Render("▒")
	case minutes < 120:
		return barFillStyle.Render("▓")
	default:
		return barFillStyle.Render("█")
	}
}

func Year(s progress.YearSnapshot) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("Year %d", s.Year)) + "\n\n")
	var maxMs int64
	for _, ms := range s.MonthlyTotals {
		if ms > maxMs {
			maxMs = ms
		}
	}
	for i, ms := range s.MonthlyTotals {
		pct := 0
		if maxMs > 0 {
			pct = int(ms * 100 / maxMs)
		}
		fmt.Fprintf(&b, "  %-4s %s %-9s %3d checks\n",
			monthAbbrev[i], ProgressBar(pct), utils.FormatDuration(ms), s.MonthlyChecks[i])
	}
	fmt.Fprintf(&b, "\nTotal time: %s\n", utils.FormatDuration(s.TotalMs))
	return b.String()
}

var monthAbbrev = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Snapshot formats any period view
func Snapshot(snap progress.Snapshot) string {
	switch s := snap.(type) {
	case progress.DaySnapshot:
		return Day(s)
	case progress.WeekSnapshot:
		return Series("Week of "+s.Dates[0], s.SeriesView)
	case progress.MonthSnapshot:
		return Series(fmt.Sprintf("%s %d", s.Range.Start.Month(), s.Range.Start.Year()), s.SeriesView)
	case progress.YearSnapshot:
		return Year(s)
	default:
		return ""
	}
}
