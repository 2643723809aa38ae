package storage

import (
	"errors"

	"github.com/julianstephens/tracklit/internal/models"
)

// ErrNotInitialized is returned by Load when the backing store has never been created
var ErrNotInitialized = errors.New("storage not initialized, run 'tracklit init' first")

// ErrNotLoaded is returned by accessors called before Init or Load
var ErrNotLoaded = errors.New("storage not loaded")

// Provider persists activities and goals. Lookups of unknown ids return an
// error wrapping errors.ErrNotFound from the internal errors package.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Activities. UpdateActivity replaces the stored entries and checks.
	AddActivity(models.Activity) error
	GetActivity(id string) (models.Activity, error)
	GetAllActivities() (models.Activities, error)
	UpdateActivity(models.Activity) error
	DeleteActivity(id string) error

	// Goals
	AddGoal(models.Goal) error
	GetGoal(id string) (models.Goal, error)
	GetAllGoals() (models.Goals, error)
	UpdateGoal(models.Goal) error
	DeleteGoal(id string) error

	// GetConfigPath returns the store location, or a non-sensitive label for
	// network backends
	GetConfigPath() string
}
