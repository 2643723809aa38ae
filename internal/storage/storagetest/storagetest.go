// Package storagetest runs the same behavioural checks against every
// storage.Provider implementation.
package storagetest

import (
	"errors"
	"reflect"
	"testing"
	"time"

	apperr "github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/storage"
)

func ptr(v int64) *int64 { return &v }

// Fixture returns one time activity with a running entry, one check activity
// and a goal on each
func Fixture() (models.Activities, models.Goals) {
	created := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	activities := models.Activities{
		"a-read": {
			ID: "a-read", Name: "Reading", Type: models.ActivityTypeTime, CreatedAt: &created,
			Entries: []models.TimeEntry{
				{Start: 1_000, End: ptr(61_000)},
				{Start: 120_000},
			},
		},
		"a-walk": {
			ID: "a-walk", Name: "Walk", Type: models.ActivityTypeCheck,
			Checks: map[string]bool{"2026-03-10": true, "2026-03-11": true},
		},
	}
	goals := models.Goals{
		"g-read": {
			ID: "g-read", Name: "Read daily", Type: models.GoalTypeTime, CreatedAt: created,
			Config: models.GoalConfig{ActivityID: "a-read", TargetMinutes: 30, Period: models.PeriodDay},
		},
		"g-walk": {
			ID: "g-walk", Name: "Walk streak", Type: models.GoalTypeStreak, CreatedAt: created,
			Config: models.GoalConfig{ActivityID: "a-walk", TargetDays: 7},
		},
	}
	return activities, goals
}

// Run exercises a freshly initialized provider. newProvider must return a
// store that has not been initialized yet.
func Run(t *testing.T, newProvider func(t *testing.T) storage.Provider) {
	t.Run("activity round trip", func(t *testing.T) {
		p := initialized(t, newProvider)
		activities, _ := Fixture()
		for _, a := range activities {
			if err := p.AddActivity(a); err != nil {
				t.Fatalf("AddActivity(%s) error = %v", a.ID, err)
			}
		}

		got, err := p.GetAllActivities()
		if err != nil {
			t.Fatalf("GetAllActivities() error = %v", err)
		}
		if !reflect.DeepEqual(got, activities) {
			t.Errorf("GetAllActivities() = %+v, want %+v", got, activities)
		}

		read, err := p.GetActivity("a-read")
		if err != nil {
			t.Fatalf("GetActivity() error = %v", err)
		}
		if !read.IsRunning() || len(read.Entries) != 2 {
			t.Errorf("GetActivity() entries = %+v, want 2 with the last running", read.Entries)
		}
	})

	t.Run("update replaces entries and checks", func(t *testing.T) {
		p := initialized(t, newProvider)
		activities, _ := Fixture()
		walk := activities["a-walk"]
		if err := p.AddActivity(walk); err != nil {
			t.Fatalf("AddActivity() error = %v", err)
		}

		walk.Name = "Evening walk"
		walk.Checks = map[string]bool{"2026-03-12": true, "2026-03-10": false}
		if err := p.UpdateActivity(walk); err != nil {
			t.Fatalf("UpdateActivity() error = %v", err)
		}

		got, err := p.GetActivity("a-walk")
		if err != nil {
			t.Fatalf("GetActivity() error = %v", err)
		}
		if got.Name != "Evening walk" {
			t.Errorf("Name = %q, want Evening walk", got.Name)
		}
		if got.IsChecked("2026-03-10") || got.IsChecked("2026-03-11") || !got.IsChecked("2026-03-12") {
			t.Errorf("Checks = %v, want only 2026-03-12", got.Checks)
		}
	})

	t.Run("missing ids return ErrNotFound", func(t *testing.T) {
		p := initialized(t, newProvider)
		ghost := models.Activity{ID: "ghost", Name: "Ghost", Type: models.ActivityTypeCheck}

		checks := map[string]error{
			"GetActivity":    func() error { _, err := p.GetActivity("ghost"); return err }(),
			"UpdateActivity": p.UpdateActivity(ghost),
			"DeleteActivity": p.DeleteActivity("ghost"),
			"GetGoal":        func() error { _, err := p.GetGoal("ghost"); return err }(),
			"UpdateGoal":     p.UpdateGoal(models.Goal{ID: "ghost"}),
			"DeleteGoal":     p.DeleteGoal("ghost"),
		}
		for op, err := range checks {
			if !errors.Is(err, apperr.ErrNotFound) {
				t.Errorf("%s() error = %v, want ErrNotFound", op, err)
			}
		}
	})

	t.Run("delete activity", func(t *testing.T) {
		p := initialized(t, newProvider)
		activities, _ := Fixture()
		if err := p.AddActivity(activities["a-read"]); err != nil {
			t.Fatalf("AddActivity() error = %v", err)
		}
		if err := p.DeleteActivity("a-read"); err != nil {
			t.Fatalf("DeleteActivity() error = %v", err)
		}
		all, err := p.GetAllActivities()
		if err != nil {
			t.Fatalf("GetAllActivities() error = %v", err)
		}
		if len(all) != 0 {
			t.Errorf("GetAllActivities() = %v, want empty", all)
		}
	})

	t.Run("goal round trip", func(t *testing.T) {
		p := initialized(t, newProvider)
		_, goals := Fixture()
		for _, g := range goals {
			if err := p.AddGoal(g); err != nil {
				t.Fatalf("AddGoal(%s) error = %v", g.ID, err)
			}
		}

		got, err := p.GetAllGoals()
		if err != nil {
			t.Fatalf("GetAllGoals() error = %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("GetAllGoals() returned %d goals, want 2", len(got))
		}
		for id, want := range goals {
			g := got[id]
			if g.Name != want.Name || g.Type != want.Type || g.Config != want.Config || !g.CreatedAt.Equal(want.CreatedAt) {
				t.Errorf("goal %s = %+v, want %+v", id, g, want)
			}
		}

		updated := goals["g-read"]
		updated.Config.TargetMinutes = 45
		updated.Config.Period = models.PeriodWeek
		if err := p.UpdateGoal(updated); err != nil {
			t.Fatalf("UpdateGoal() error = %v", err)
		}
		g, err := p.GetGoal("g-read")
		if err != nil {
			t.Fatalf("GetGoal() error = %v", err)
		}
		if g.Config.TargetMinutes != 45 || g.Config.Period != models.PeriodWeek {
			t.Errorf("GetGoal() config = %+v after update", g.Config)
		}

		if err := p.DeleteGoal("g-walk"); err != nil {
			t.Fatalf("DeleteGoal() error = %v", err)
		}
		if _, err := p.GetGoal("g-walk"); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("GetGoal() after delete error = %v", err)
		}
	})

	t.Run("data survives reopen", func(t *testing.T) {
		p := newProvider(t)
		if err := p.Init(); err != nil {
			t.Fatalf("Init() error = %v", err)
		}
		activities, _ := Fixture()
		if err := p.AddActivity(activities["a-walk"]); err != nil {
			t.Fatalf("AddActivity() error = %v", err)
		}
		if err := p.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}

		if err := p.Load(); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		t.Cleanup(func() { p.Close() })
		got, err := p.GetActivity("a-walk")
		if err != nil {
			t.Fatalf("GetActivity() error = %v", err)
		}
		if !got.IsChecked("2026-03-11") {
			t.Errorf("reloaded checks = %v", got.Checks)
		}
	})
}

func initialized(t *testing.T, newProvider func(t *testing.T) storage.Provider) storage.Provider {
	t.Helper()
	p := newProvider(t)
	if err := p.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}
