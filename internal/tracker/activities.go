package tracker

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	apperr "github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/period"
)

func (s *Service) CreateActivity(name string, typ models.ActivityType) (models.Activity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Activity{}, apperr.Invalid("activity name cannot be empty")
	}
	if _, err := models.ParseActivityType(string(typ)); err != nil {
		return models.Activity{}, apperr.Invalid("%v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.store.GetAllActivities()
	if err != nil {
		return models.Activity{}, err
	}
	if _, dup := all.FindByName(name); dup {
		return models.Activity{}, apperr.Invalid("an activity named %q already exists", name)
	}

	created := s.Now()
	a := models.Activity{ID: s.newID(), Name: name, Type: typ, CreatedAt: &created}
	if err := s.store.AddActivity(a); err != nil {
		return models.Activity{}, err
	}
	s.log.Debug("Activity created", "id", a.ID, "name", a.Name, "type", a.Type)
	return a, nil
}

func (s *Service) RenameActivity(id, name string) (models.Activity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Activity{}, apperr.Invalid("activity name cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.store.GetAllActivities()
	if err != nil {
		return models.Activity{}, err
	}
	a, ok := all[id]
	if !ok {
		return models.Activity{}, apperr.NotFound("activity", id)
	}
	if other, dup := all.FindByName(name); dup && other.ID != id {
		return models.Activity{}, apperr.Invalid("an activity named %q already exists", name)
	}
	a.Name = name
	if err := s.store.UpdateActivity(a); err != nil {
		return models.Activity{}, err
	}
	return a, nil
}

// DeleteActivity removes the activity and every goal that references it
func (s *Service) DeleteActivity(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	gs, err := s.store.GetAllGoals()
	if err != nil {
		return err
	}
	if err := s.store.DeleteActivity(id); err != nil {
		return err
	}
	for _, g := range gs.ForActivity(id) {
		if err := s.store.DeleteGoal(g.ID); err != nil {
			return fmt.Errorf("failed to delete goal %s: %w", g.Name, err)
		}
		s.log.Debug("Goal removed with its activity", "goal", g.ID, "activity", id)
	}
	return nil
}

func requireType(a *models.Activity, want models.ActivityType) error {
	if a.Type != want {
		return fmt.Errorf("%w: %s is a %s activity", apperr.ErrWrongActivityType, a.Name, a.Type)
	}
	return nil
}

// StartTimer opens a new entry at now. Only one entry per activity may be open.
func (s *Service) StartTimer(ctx context.Context, id string) (models.TimeEntry, error) {
	var started models.TimeEntry
	_, err := s.mutateActivity(ctx, id, func(a *models.Activity) error {
		if err := requireType(a, models.ActivityTypeTime); err != nil {
			return err
		}
		if a.IsRunning() {
			return fmt.Errorf("%w: %s", apperr.ErrAlreadyRunning, a.Name)
		}
		started = models.TimeEntry{Start: s.now().UnixMilli()}
		a.Entries = append(a.Entries, started)
		return nil
	})
	return started, err
}

// StopTimer closes the open entry at now
func (s *Service) StopTimer(ctx context.Context, id string) (models.TimeEntry, error) {
	var stopped models.TimeEntry
	_, err := s.mutateActivity(ctx, id, func(a *models.Activity) error {
		if err := requireType(a, models.ActivityTypeTime); err != nil {
			return err
		}
		if !a.IsRunning() {
			return fmt.Errorf("%w: %s", apperr.ErrNotRunning, a.Name)
		}
		last := len(a.Entries) - 1
		end := s.now().UnixMilli()
		if end < a.Entries[last].Start {
			end = a.Entries[last].Start
		}
		a.Entries[last].End = &end
		stopped = a.Entries[last]
		return nil
	})
	return stopped, err
}

// AddEntry records a closed interval. Closed entries are kept ordered by
// start; a running entry stays last.
func (s *Service) AddEntry(ctx context.Context, id string, start, end time.Time) (models.TimeEntry, error) {
	if !end.After(start) {
		return models.TimeEntry{}, apperr.Invalid("entry end must be after its start")
	}
	endMs := end.UnixMilli()
	entry := models.TimeEntry{Start: start.UnixMilli(), End: &endMs}

	_, err := s.mutateActivity(ctx, id, func(a *models.Activity) error {
		if err := requireType(a, models.ActivityTypeTime); err != nil {
			return err
		}
		running, isRunning := a.RunningEntry()
		closed := a.Entries
		if isRunning {
			if entry.End != nil && *entry.End > running.Start {
				return apperr.Invalid("entry overlaps the running timer")
			}
			closed = a.Entries[:len(a.Entries)-1]
		}
		closed = append(append([]models.TimeEntry{}, closed...), entry)
		sort.SliceStable(closed, func(i, j int) bool { return closed[i].Start < closed[j].Start })
		if isRunning {
			closed = append(closed, running)
		}
		a.Entries = closed
		return nil
	})
	return entry, err
}

// DeleteEntry removes the entry at index, as listed by the activity
func (s *Service) DeleteEntry(ctx context.Context, id string, index int) error {
	_, err := s.mutateActivity(ctx, id, func(a *models.Activity) error {
		if err := requireType(a, models.ActivityTypeTime); err != nil {
			return err
		}
		if index < 0 || index >= len(a.Entries) {
			return apperr.Invalid("entry %d does not exist (activity has %d)", index, len(a.Entries))
		}
		a.Entries = append(a.Entries[:index:index], a.Entries[index+1:]...)
		return nil
	})
	return err
}

// SetCheck marks or clears the local calendar day of day
func (s *Service) SetCheck(ctx context.Context, id string, day time.Time, done bool) error {
	key := period.ISODate(day.In(s.loc))
	_, err := s.mutateActivity(ctx, id, func(a *models.Activity) error {
		if err := requireType(a, models.ActivityTypeCheck); err != nil {
			return err
		}
		if !done {
			delete(a.Checks, key)
			return nil
		}
		if a.Checks == nil {
			a.Checks = map[string]bool{}
		}
		a.Checks[key] = true
		return nil
	})
	return err
}

// ToggleCheck flips the check for day and returns the new state
func (s *Service) ToggleCheck(ctx context.Context, id string, day time.Time) (bool, error) {
	key := period.ISODate(day.In(s.loc))
	var done bool
	_, err := s.mutateActivity(ctx, id, func(a *models.Activity) error {
		if err := requireType(a, models.ActivityTypeCheck); err != nil {
			return err
		}
		done = !a.IsChecked(key)
		if !done {
			delete(a.Checks, key)
			return nil
		}
		if a.Checks == nil {
			a.Checks = map[string]bool{}
		}
		a.Checks[key] = true
		return nil
	})
	return done, err
}
