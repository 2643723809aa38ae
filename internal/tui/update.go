package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tracklit/internal/logger"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/period"
	"github.com/julianstephens/tracklit/internal/tracker"
	"github.com/julianstephens/tracklit/internal/tui/components/activitylist"
	"github.com/julianstephens/tracklit/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		m.activityList.SetSize(msg.Width-h, msg.Height-v-4)
		return m, nil

	case tickMsg:
		if m.anyRunning() {
			m.activityList.SetActivities(m.activities.Sorted(), m.svc.Now())
		}
		return m, tick()

	case FileChangedMsg:
		if err := m.svc.Reload(); err != nil {
			logger.Warn("Failed to reload store", "error", err)
			m.err = err
			return m, nil
		}
		m.refresh()
		return m, nil

	case mutationDoneMsg:
		m.err = msg.err
		m.status = msg.note
		m.refresh()
		return m, nil
	}

	switch m.state {
	case StateAddActivity:
		return m.updateActivityForm(msg)
	case StateAddGoal:
		return m.updateGoalForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case activitylist.AddActivityMsg:
		m.activityForm = &ActivityFormModel{Type: string(models.ActivityTypeTime)}
		m.form = NewActivityForm(m.activityForm)
		m.previousState = m.state
		m.state = StateAddActivity
		return m, m.form.Init()

	case activitylist.AddGoalMsg:
		a, ok := m.activities[msg.ActivityID]
		if !ok {
			return m, nil
		}
		m.goalForm = &GoalFormModel{ActivityID: a.ID, Period: string(models.PeriodWeek)}
		m.form = NewGoalForm(m.goalForm, a)
		m.previousState = m.state
		m.state = StateAddGoal
		return m, m.form.Init()

	case activitylist.ToggleMsg:
		return m, m.toggle(msg.Activity)

	case activitylist.DeleteActivityMsg:
		a := msg.Activity
		m.toDelete = &a
		m.previousState = m.state
		m.state = StateConfirmDelete
		return m, nil

	case tea.KeyMsg:
		if m.state == StateToday && m.activityList.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.ref = m.shiftRef(-1)
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.ref = m.shiftRef(1)
			return m, nil
		case key.Matches(msg, m.keys.Today):
			m.ref = m.svc.Now()
			return m, nil
		}
	}

	if m.state == StateToday {
		var cmd tea.Cmd
		m.activityList, cmd = m.activityList.Update(msg)
		return m, cmd
	}
	return m, nil
}

// shiftRef moves the reference date by one unit of the current tab's period
func (m Model) shiftRef(n int) time.Time {
	switch m.state {
	case StateWeek:
		return period.AddDays(m.ref, 7*n)
	case StateMonth:
		start := period.MonthRange(m.ref).Start
		return start.AddDate(0, n, 0)
	case StateYear:
		start := period.YearRange(m.ref).Start
		return start.AddDate(n, 0, 0)
	default:
		return m.ref
	}
}

// toggle runs the tracker call in a command so notification delivery does
// not block the UI
func (m Model) toggle(a models.Activity) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx := context.Background()
		if a.Type == models.ActivityTypeCheck {
			done, err := svc.ToggleCheck(ctx, a.ID, svc.Now())
			if err != nil {
				return mutationDoneMsg{err: err}
			}
			if done {
				return mutationDoneMsg{note: a.Name + " checked"}
			}
			return mutationDoneMsg{note: a.Name + " unchecked"}
		}
		if a.IsRunning() {
			e, err := svc.StopTimer(ctx, a.ID)
			if err != nil {
				return mutationDoneMsg{err: err}
			}
			return mutationDoneMsg{note: fmt.Sprintf("Stopped %s after %s", a.Name, utils.FormatDuration(e.DurationMs()))}
		}
		if _, err := svc.StartTimer(ctx, a.ID); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{note: "Started " + a.Name}
	}
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd, bool) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil, false
	}
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		m.state = m.previousState
		return m, cmd, true
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, cmd, false
}

func (m Model) updateActivityForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd, completed := m.updateForm(msg)
	if !completed {
		return m, cmd
	}
	fm := *m.activityForm
	svc := m.svc
	return m, tea.Batch(cmd, func() tea.Msg {
		a, err := svc.CreateActivity(fm.Name, models.ActivityType(fm.Type))
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{note: "Added " + a.Name}
	})
}

func (m Model) updateGoalForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd, completed := m.updateForm(msg)
	if !completed {
		return m, cmd
	}
	fm := *m.goalForm
	svc := m.svc
	return m, tea.Batch(cmd, func() tea.Msg {
		target, err := strconv.Atoi(strings.TrimSpace(fm.Target))
		if err != nil {
			return mutationDoneMsg{err: fmt.Errorf("invalid target %q", fm.Target)}
		}
		in := tracker.GoalInput{
			Name:       fm.Name,
			Type:       models.GoalType(fm.Type),
			ActivityID: fm.ActivityID,
			Target:     target,
		}
		if in.Type != models.GoalTypeStreak {
			in.Period = models.PeriodKind(fm.Period)
		}
		g, err := svc.CreateGoal(in)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{note: "Added goal " + g.Name}
	})
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		a := *m.toDelete
		m.toDelete = nil
		m.state = m.previousState
		svc := m.svc
		return m, func() tea.Msg {
			if err := svc.DeleteActivity(a.ID); err != nil {
				return mutationDoneMsg{err: err}
			}
			return mutationDoneMsg{note: "Deleted " + a.Name}
		}
	case "n", "N", "esc", "q":
		m.toDelete = nil
		m.state = m.previousState
	}
	return m, nil
}
