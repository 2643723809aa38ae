package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tracklit/internal/progress"
	"github.com/julianstephens/tracklit/internal/render"
	"github.com/julianstephens/tracklit/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = m.viewToday()
	case StateWeek, StateMonth, StateYear:
		content = m.viewPeriod()
	case StateGoals:
		content = m.viewGoals()
	case StateAddActivity, StateAddGoal:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	if active >= tabCount {
		active = m.previousState
	}
	var tabs []string
	for i, title := range tabTitles {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewToday() string {
	day := progress.Day(m.activities, m.svc.Now())
	summary := fmt.Sprintf("Total time: %s   Checks: %d/%d",
		utils.FormatDuration(day.TotalMs), day.ChecksDone, day.ChecksTotal)
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		render.HeaderStyle.Render("Today "+day.Date)+"  "+render.DimStyle.Render(summary),
		m.activityList.View(),
	))
}

func (m Model) viewPeriod() string {
	snap := progress.Build(m.periodKind(), m.activities, m.ref.In(m.svc.Location()))
	return docStyle.Render(render.Snapshot(snap))
}

func (m Model) viewGoals() string {
	if len(m.statuses) == 0 {
		return docStyle.Render("No goals yet.\nSelect an activity on the Today tab and press 'g' to add one.")
	}
	lines := []string{render.HeaderStyle.Render("Goals"), ""}
	for _, s := range m.statuses {
		lines = append(lines, render.GoalLine(s.Goal, s.Result))
	}
	return docStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) viewConfirmDelete() string {
	name := ""
	if m.toDelete != nil {
		name = m.toDelete.Name
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete %s with all of its entries and goals?", name)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewStatus() string {
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return ""
}
