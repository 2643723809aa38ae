package tracker

import (
	"strings"

	apperr "github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/models"
)

// GoalInput is the user-supplied part of a goal. Target is read as minutes,
// completions or days depending on Type.
type GoalInput struct {
	Name       string
	Type       models.GoalType
	ActivityID string
	Target     int
	Period     models.PeriodKind
}

func (in GoalInput) config() models.GoalConfig {
	cfg := models.GoalConfig{ActivityID: in.ActivityID}
	switch in.Type {
	case models.GoalTypeTime:
		cfg.TargetMinutes = in.Target
		cfg.Period = in.Period
	case models.GoalTypeCount:
		cfg.TargetCount = in.Target
		cfg.Period = in.Period
	case models.GoalTypeStreak:
		cfg.TargetDays = in.Target
	}
	return cfg
}

// CreateGoal validates the definition against the referenced activity: time
// goals need a time activity and count goals a check activity.
func (s *Service) CreateGoal(in GoalInput) (models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.store.GetAllActivities()
	if err != nil {
		return models.Goal{}, err
	}
	a, ok := all[in.ActivityID]
	if !ok {
		return models.Goal{}, apperr.NotFound("activity", in.ActivityID)
	}

	g := models.Goal{
		ID:        s.newID(),
		Name:      strings.TrimSpace(in.Name),
		Type:      in.Type,
		Config:    in.config(),
		CreatedAt: s.Now(),
	}
	if g.Name == "" {
		g.Name = defaultGoalName(in, a)
	}
	if err := g.Validate(); err != nil {
		return models.Goal{}, apperr.Invalid("%v", err)
	}

	switch {
	case g.Type == models.GoalTypeTime && a.Type != models.ActivityTypeTime:
		return models.Goal{}, apperr.Invalid("time goals need a time activity, %s is a %s activity", a.Name, a.Type)
	case g.Type == models.GoalTypeCount && a.Type != models.ActivityTypeCheck:
		return models.Goal{}, apperr.Invalid("count goals need a check activity, %s is a %s activity", a.Name, a.Type)
	}

	if err := s.store.AddGoal(g); err != nil {
		return models.Goal{}, err
	}
	s.log.Debug("Goal created", "id", g.ID, "type", g.Type, "activity", a.ID)
	return g, nil
}

func (s *Service) DeleteGoal(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.DeleteGoal(id)
}

// ResolveGoal finds a goal by id or case-insensitive name
func (s *Service) ResolveGoal(ref string) (models.Goal, error) {
	gs, err := s.Goals()
	if err != nil {
		return models.Goal{}, err
	}
	if g, ok := gs[ref]; ok {
		return g, nil
	}
	for _, g := range gs {
		if strings.EqualFold(g.Name, ref) {
			return g, nil
		}
	}
	return models.Goal{}, apperr.NotFound("goal", ref)
}

func defaultGoalName(in GoalInput, a models.Activity) string {
	if in.Type == models.GoalTypeStreak {
		return a.Name + " streak"
	}
	return a.Name + " " + string(in.Period)
}
