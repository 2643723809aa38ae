package activitylist

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tracklit/internal/aggregate"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/period"
	"github.com/julianstephens/tracklit/internal/utils"
)

type AddActivityMsg struct{}

type AddGoalMsg struct {
	ActivityID string
}

// ToggleMsg starts or stops a timer, or flips today's check
type ToggleMsg struct {
	Activity models.Activity
}

type DeleteActivityMsg struct {
	Activity models.Activity
}

type Item struct {
	Activity models.Activity
	Now      time.Time
}

func (i Item) Title() string {
	if i.Activity.IsRunning() {
		return "● " + i.Activity.Name
	}
	return i.Activity.Name
}

func (i Item) Description() string {
	a := i.Activity
	if a.Type == models.ActivityTypeCheck {
		if a.IsChecked(period.ISODate(i.Now)) {
			return "check | ✓ done today"
		}
		return "check | not done today"
	}
	today := utils.FormatDuration(aggregate.SumOverlap(a.Entries, period.DayRange(i.Now)))
	if e, ok := a.RunningEntry(); ok {
		return fmt.Sprintf("time | %s today | running %s", today, utils.FormatClock(i.Now.UnixMilli()-e.Start))
	}
	return fmt.Sprintf("time | %s today", today)
}

func (i Item) FilterValue() string { return i.Activity.Name }

type KeyMap struct {
	Add     key.Binding
	AddGoal key.Binding
	Toggle  key.Binding
	Delete  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add activity"),
		),
		AddGoal: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "add goal"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "start/stop or check"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Activities"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Add, keys.AddGoal, keys.Delete}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	return Model{list: l, keys: keys}
}

// SetActivities replaces the items, keeping the cursor where it was
func (m *Model) SetActivities(activities []models.Activity, now time.Time) {
	items := make([]list.Item, len(activities))
	for i, a := range activities {
		items[i] = Item{Activity: a, Now: now}
	}
	m.list.SetItems(items)
}

// Selected returns the highlighted activity
func (m Model) Selected() (models.Activity, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Activity, ok
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddActivityMsg{} }
		case key.Matches(msg, m.keys.AddGoal):
			a, ok := m.Selected()
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg { return AddGoalMsg{ActivityID: a.ID} }
		case key.Matches(msg, m.keys.Toggle):
			if a, ok := m.Selected(); ok {
				return m, func() tea.Msg { return ToggleMsg{Activity: a} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if a, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteActivityMsg{Activity: a} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No activities yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Filtering reports whether the list is capturing keys for its filter input
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}
