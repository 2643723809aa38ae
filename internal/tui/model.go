package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/tracker"
	"github.com/julianstephens/tracklit/internal/tui/components/activitylist"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateWeek
	StateMonth
	StateYear
	StateGoals
	StateAddActivity
	StateAddGoal
	StateConfirmDelete
)

// tabCount is the number of states reachable with tab
const tabCount = 5

var tabTitles = [tabCount]string{"Today", "Week", "Month", "Year", "Goals"}

type ActivityFormModel struct {
	Name string
	Type string
}

type GoalFormModel struct {
	ActivityID string
	Name       string
	Type       string
	Target     string
	Period     string
}

// FileChangedMsg is sent by the watcher when the store file changes on disk
type FileChangedMsg struct{}

type tickMsg time.Time

// mutationDoneMsg reports the outcome of a tracker call run off the UI loop
type mutationDoneMsg struct {
	note string
	err  error
}

type Model struct {
	svc           *tracker.Service
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	activityList  activitylist.Model
	form          *huh.Form
	activityForm  *ActivityFormModel
	goalForm      *GoalFormModel

	activities models.Activities
	statuses   []tracker.GoalStatus
	ref        time.Time
	status     string
	err        error

	toDelete *models.Activity
	quitting bool
	width    int
	height   int
}

func NewModel(svc *tracker.Service) Model {
	m := Model{
		svc:          svc,
		state:        StateToday,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		activityList: activitylist.New(0, 0),
		ref:          svc.Now(),
	}
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateWeek, StateMonth, StateYear:
		keys = append(keys, m.keys.Prev, m.keys.Next, m.keys.Today)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Prev, m.keys.Next, m.keys.Today}
	return [][]key.Binding{global, navigation}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refresh reloads the snapshot from the tracker and rebuilds derived views
func (m *Model) refresh() {
	activities, err := m.svc.Activities()
	if err != nil {
		m.err = err
		return
	}
	statuses, err := m.svc.Status()
	if err != nil {
		m.err = err
		return
	}
	m.activities = activities
	m.statuses = statuses
	m.activityList.SetActivities(activities.Sorted(), m.svc.Now())
}

func (m Model) anyRunning() bool {
	for _, a := range m.activities {
		if a.IsRunning() {
			return true
		}
	}
	return false
}

// periodKind maps a tab to the period its view covers
func (m Model) periodKind() models.PeriodKind {
	switch m.state {
	case StateWeek:
		return models.PeriodWeek
	case StateMonth:
		return models.PeriodMonth
	case StateYear:
		return models.PeriodYear
	default:
		return models.PeriodDay
	}
}
