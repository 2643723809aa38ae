package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/tracklit/internal/constants"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, constants.DefaultTimezone, cfg.Timezone)
	assert.True(t, cfg.Notifications)
	assert.True(t, cfg.BackupOnStart)
	assert.False(t, cfg.Debug)
	assert.True(t, filepath.IsAbs(cfg.Store), "default store path is expanded")
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	store := filepath.Join(dir, "data.json")
	body := "store: " + store + "\nnotifications: false\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, store, cfg.Store)
	assert.False(t, cfg.Notifications)
	assert.True(t, cfg.BackupOnStart)
	assert.Equal(t, dir, cfg.Dir())
}

func TestLoadRejectsBadInput(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("store: [unterminated"), 0644))
	_, err := Load(bad)
	assert.Error(t, err)

	tz := filepath.Join(dir, "tz.yaml")
	require.NoError(t, os.WriteFile(tz, []byte("timezone: Mars/Olympus\n"), 0644))
	_, err = Load(tz)
	assert.ErrorContains(t, err, "invalid timezone")
}

func TestApplyOverrides(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	debug := true
	got, err := cfg.Apply(Overrides{Store: "postgres://localhost/tracklit", Timezone: "UTC", Debug: &debug})
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/tracklit", got.Store, "connection strings are not path-expanded")
	assert.Equal(t, "UTC", got.Timezone)
	assert.True(t, got.Debug)
	assert.False(t, cfg.Debug, "Apply does not mutate the receiver")

	loc, err := got.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	same, err := cfg.Apply(Overrides{})
	require.NoError(t, err)
	assert.Equal(t, cfg, same)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg, err := Load(path)
	require.NoError(t, err)

	cfg.Store = constants.StoreKeyring
	cfg.Timezone = "Europe/Berlin"
	cfg.BackupOnStart = false
	require.NoError(t, cfg.Save())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	assert.Error(t, Config{}.Save())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/x/y.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x", "y.db"), got)

	got, err = ExpandPath("/abs/path")
	require.NoError(t, err)
	assert.Equal(t, "/abs/path", got)
}
