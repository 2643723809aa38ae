// Package config loads the YAML settings file and merges command-line
// overrides on top of it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/tracklit/internal/constants"
	"github.com/julianstephens/tracklit/internal/utils"
)

type Config struct {
	Store         string `yaml:"store"`
	Timezone      string `yaml:"timezone"`
	Notifications bool   `yaml:"notifications"`
	Debug         bool   `yaml:"debug"`
	BackupOnStart bool   `yaml:"backup_on_start"`

	// Path is where the config was loaded from; it is not persisted.
	Path string `yaml:"-"`
}

// Overrides carries flag values. Empty strings and nil pointers leave the
// file value untouched.
type Overrides struct {
	Store    string
	Timezone string
	Debug    *bool
}

func Defaults() Config {
	return Config{
		Store:         constants.DefaultStorePath,
		Timezone:      constants.DefaultTimezone,
		Notifications: constants.DefaultNotifications,
		BackupOnStart: constants.DefaultBackupOnStart,
	}
}

// DefaultPath returns ~/.config/tracklit/config.yaml, expanded
func DefaultPath() (string, error) {
	return ExpandPath(filepath.Join(constants.DefaultConfigDir, constants.DefaultConfigFile))
}

// ExpandPath replaces a leading ~ with the user's home directory
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Load reads path over the defaults. A missing file is not an error: the
// defaults are returned with Path set so Save can create it later.
func Load(path string) (Config, error) {
	cfg := Defaults()

	expanded, err := ExpandPath(path)
	if err != nil {
		return cfg, err
	}
	cfg.Path = expanded

	data, err := os.ReadFile(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg.normalize()
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", expanded, err)
	}
	cfg.Path = expanded
	return cfg.normalize()
}

// Apply merges flag overrides into a copy of c
func (c Config) Apply(o Overrides) (Config, error) {
	if o.Store != "" {
		c.Store = o.Store
	}
	if o.Timezone != "" {
		c.Timezone = o.Timezone
	}
	if o.Debug != nil {
		c.Debug = *o.Debug
	}
	return c.normalize()
}

// Save writes c to its Path, creating the parent directory
func (c Config) Save() error {
	if c.Path == "" {
		return fmt.Errorf("config path is not set")
	}
	if err := os.MkdirAll(filepath.Dir(c.Path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(c.Path, data, 0644)
}

// Dir is the directory holding the config file, logs and backups
func (c Config) Dir() string {
	return filepath.Dir(c.Path)
}

func (c Config) Location() (*time.Location, error) {
	return utils.LoadLocation(c.Timezone)
}

func (c Config) normalize() (Config, error) {
	if strings.TrimSpace(c.Store) == "" {
		c.Store = constants.DefaultStorePath
	}
	if c.Timezone == "" {
		c.Timezone = constants.DefaultTimezone
	}
	if !utils.ValidateTimezone(c.Timezone) {
		return c, fmt.Errorf("invalid timezone %q", c.Timezone)
	}
	// Connection strings and the keyring marker are not file paths
	if c.Store != constants.StoreKeyring && !strings.Contains(c.Store, "://") {
		store, err := ExpandPath(c.Store)
		if err != nil {
			return c, err
		}
		c.Store = store
	}
	return c, nil
}
