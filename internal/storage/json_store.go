package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	apperr "github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/logger"
	"github.com/julianstephens/tracklit/internal/models"
)

const jsonStoreVersion = 1

// Store is the on-disk document of the JSON backend
type Store struct {
	Version    int               `json:"version"`
	Activities models.Activities `json:"activities"`
	Goals      models.Goals      `json:"goals"`
}

// JSONStore keeps the whole document in memory and rewrites the file on
// every mutation. Writes go through a temp file and rename.
type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version:    jsonStoreVersion,
		Activities: models.Activities{},
		Goals:      models.Goals{},
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &Store{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Version > jsonStoreVersion {
		return fmt.Errorf("storage version %d is newer than supported version %d", doc.Version, jsonStoreVersion)
	}
	if doc.Activities == nil {
		doc.Activities = models.Activities{}
	}
	if doc.Goals == nil {
		doc.Goals = models.Goals{}
	}
	s.store = doc
	logger.Debug("Loaded JSON store", "path", s.path, "activities", len(doc.Activities), "goals", len(doc.Goals))
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

func (s *JSONStore) AddActivity(a models.Activity) error {
	if s.store == nil {
		return ErrNotLoaded
	}
	if _, ok := s.store.Activities[a.ID]; ok {
		return fmt.Errorf("activity %q already exists", a.ID)
	}
	s.store.Activities[a.ID] = a.Clone()
	return s.save()
}

func (s *JSONStore) GetActivity(id string) (models.Activity, error) {
	if s.store == nil {
		return models.Activity{}, ErrNotLoaded
	}
	a, ok := s.store.Activities[id]
	if !ok {
		return models.Activity{}, apperr.NotFound("activity", id)
	}
	return a.Clone(), nil
}

func (s *JSONStore) GetAllActivities() (models.Activities, error) {
	if s.store == nil {
		return nil, ErrNotLoaded
	}
	out := make(models.Activities, len(s.store.Activities))
	for id, a := range s.store.Activities {
		out[id] = a.Clone()
	}
	return out, nil
}

func (s *JSONStore) UpdateActivity(a models.Activity) error {
	if s.store == nil {
		return ErrNotLoaded
	}
	if _, ok := s.store.Activities[a.ID]; !ok {
		return apperr.NotFound("activity", a.ID)
	}
	s.store.Activities[a.ID] = a.Clone()
	return s.save()
}

func (s *JSONStore) DeleteActivity(id string) error {
	if s.store == nil {
		return ErrNotLoaded
	}
	if _, ok := s.store.Activities[id]; !ok {
		return apperr.NotFound("activity", id)
	}
	delete(s.store.Activities, id)
	return s.save()
}

func (s *JSONStore) AddGoal(g models.Goal) error {
	if s.store == nil {
		return ErrNotLoaded
	}
	if _, ok := s.store.Goals[g.ID]; ok {
		return fmt.Errorf("goal %q already exists", g.ID)
	}
	s.store.Goals[g.ID] = g
	return s.save()
}

func (s *JSONStore) GetGoal(id string) (models.Goal, error) {
	if s.store == nil {
		return models.Goal{}, ErrNotLoaded
	}
	g, ok := s.store.Goals[id]
	if !ok {
		return models.Goal{}, apperr.NotFound("goal", id)
	}
	return g, nil
}

func (s *JSONStore) GetAllGoals() (models.Goals, error) {
	if s.store == nil {
		return nil, ErrNotLoaded
	}
	out := make(models.Goals, len(s.store.Goals))
	for id, g := range s.store.Goals {
		out[id] = g
	}
	return out, nil
}

func (s *JSONStore) UpdateGoal(g models.Goal) error {
	if s.store == nil {
		return ErrNotLoaded
	}
	if _, ok := s.store.Goals[g.ID]; !ok {
		return apperr.NotFound("goal", g.ID)
	}
	s.store.Goals[g.ID] = g
	return s.save()
}

func (s *JSONStore) DeleteGoal(id string) error {
	if s.store == nil {
		return ErrNotLoaded
	}
	if _, ok := s.store.Goals[id]; !ok {
		return apperr.NotFound("goal", id)
	}
	delete(s.store.Goals, id)
	return s.save()
}
