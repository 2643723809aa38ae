// Package tracker is the single writer for activities and goals. It applies
// mutations to the store under a mutex, hands out snapshots to the pure
// aggregation packages and announces goals that become achieved.
package tracker

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	apperr "github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/goals"
	"github.com/julianstephens/tracklit/internal/logger"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/progress"
	"github.com/julianstephens/tracklit/internal/storage"
)

// Notifier receives a message when a goal transitions to achieved
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

type Service struct {
	mu       sync.Mutex
	store    storage.Provider
	now      func() time.Time
	loc      *time.Location
	notifier Notifier
	newID    func() string
	log      *log.Logger
}

type Option func(*Service)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the calendar used for day, week, month and year boundaries
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func WithIDGenerator(f func() string) Option {
	return func(s *Service) { s.newID = f }
}

// New wraps a loaded store
func New(store storage.Provider, opts ...Option) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
		loc:   time.Local,
		newID: uuid.NewString,
		log:   logger.With("component", "tracker"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the current instant in the configured location
func (s *Service) Now() time.Time {
	return s.now().In(s.loc)
}

func (s *Service) Location() *time.Location {
	return s.loc
}

// Activities returns a snapshot of every activity
func (s *Service) Activities() (models.Activities, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.GetAllActivities()
}

func (s *Service) Goals() (models.Goals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.GetAllGoals()
}

// Resolve finds an activity by id, or by case-insensitive name
func (s *Service) Resolve(ref string) (models.Activity, error) {
	all, err := s.Activities()
	if err != nil {
		return models.Activity{}, err
	}
	if a, ok := all[ref]; ok {
		return a, nil
	}
	if a, ok := all.FindByName(ref); ok {
		return a, nil
	}
	return models.Activity{}, apperr.NotFound("activity", ref)
}

// Snapshot builds the progress view of kind around ref
func (s *Service) Snapshot(kind models.PeriodKind, ref time.Time) (progress.Snapshot, error) {
	all, err := s.Activities()
	if err != nil {
		return nil, err
	}
	return progress.Build(kind, all, ref.In(s.loc)), nil
}

// GoalStatus pairs a goal with its evaluation
type GoalStatus struct {
	Goal   models.Goal  `json:"goal" yaml:"goal"`
	Result goals.Result `json:"result" yaml:"result"`
}

// Status evaluates every goal as of now, ordered by goal name
func (s *Service) Status() ([]GoalStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.store.GetAllActivities()
	if err != nil {
		return nil, err
	}
	gs, err := s.store.GetAllGoals()
	if err != nil {
		return nil, err
	}

	now := s.Now()
	out := make([]GoalStatus, 0, len(gs))
	for _, g := range gs {
		out = append(out, GoalStatus{Goal: g, Result: goals.Evaluate(g, all, now)})
	}
	sort.Slice(out, func(i, j int) bool {
		if !strings.EqualFold(out[i].Goal.Name, out[j].Goal.Name) {
			return strings.ToLower(out[i].Goal.Name) < strings.ToLower(out[j].Goal.Name)
		}
		return out[i].Goal.ID < out[j].Goal.ID
	})
	return out, nil
}

// mutateActivity loads one activity, applies fn and persists the result.
// Goals on that activity that flip to achieved are announced afterwards.
func (s *Service) mutateActivity(ctx context.Context, id string, fn func(a *models.Activity) error) (models.Activity, error) {
	s.mu.Lock()

	all, err := s.store.GetAllActivities()
	if err != nil {
		s.mu.Unlock()
		return models.Activity{}, err
	}
	current, ok := all[id]
	if !ok {
		s.mu.Unlock()
		return models.Activity{}, apperr.NotFound("activity", id)
	}
	gs, err := s.store.GetAllGoals()
	if err != nil {
		s.mu.Unlock()
		return models.Activity{}, err
	}

	now := s.Now()
	related := models.Goals{}
	for _, g := range gs.ForActivity(id) {
		related[g.ID] = g
	}
	before := goals.EvaluateAll(related, all, now)

	updated := current.Clone()
	if err := fn(&updated); err != nil {
		s.mu.Unlock()
		return models.Activity{}, err
	}
	if err := updated.Validate(); err != nil {
		s.mu.Unlock()
		return models.Activity{}, apperr.Invalid("%v", err)
	}
	if err := s.store.UpdateActivity(updated); err != nil {
		s.mu.Unlock()
		return models.Activity{}, err
	}

	all[id] = updated
	after := goals.EvaluateAll(related, all, now)
	s.mu.Unlock()

	s.announce(ctx, related, before, after)
	return updated, nil
}

func (s *Service) announce(ctx context.Context, gs models.Goals, before, after map[string]goals.Result) {
	for id, res := range after {
		if !res.Achieved || before[id].Achieved {
			continue
		}
		g := gs[id]
		s.log.Info("Goal achieved", "goal", g.Name, "current", res.Current, "target", res.Target)
		if s.notifier == nil {
			continue
		}
		msg := fmt.Sprintf("Goal achieved: %s (%d/%d %s)", g.Name, res.Current, res.Target, res.Unit)
		if err := s.notifier.Notify(ctx, msg); err != nil {
			s.log.Warn("Failed to send goal notification", "goal", g.Name, "error", err)
		}
	}
}

// Reload re-reads the store, picking up changes written by another process
func (s *Service) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Load()
}
