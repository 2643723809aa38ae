package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/tracklit/internal/backup"
	"github.com/julianstephens/tracklit/internal/config"
	"github.com/julianstephens/tracklit/internal/constants"
	"github.com/julianstephens/tracklit/internal/keyring"
	"github.com/julianstephens/tracklit/internal/logger"
	"github.com/julianstephens/tracklit/internal/storage"
	"github.com/julianstephens/tracklit/internal/storage/postgres"
	"github.com/julianstephens/tracklit/internal/storage/sqlite"
	"github.com/julianstephens/tracklit/internal/tracker"
	"github.com/julianstephens/tracklit/internal/utils"
)

// Context is handed to every command's Run method
type Context struct {
	Config  config.Config
	Store   storage.Provider
	Tracker *tracker.Service

	Ctx context.Context
	Out io.Writer
	In  io.Reader
}

// NewContext wires a store and tracker from cfg. The store is not loaded.
func NewContext(cfg config.Config, store storage.Provider, opts ...tracker.Option) (*Context, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	opts = append([]tracker.Option{tracker.WithLocation(loc)}, opts...)
	return &Context{
		Config:  cfg,
		Store:   store,
		Tracker: tracker.New(store, opts...),
		Ctx:     context.Background(),
		Out:     os.Stdout,
		In:      os.Stdin,
	}, nil
}

// OpenStore picks the backend for target: a .json path, a PostgreSQL URI,
// "keyring" for a connection string held in the OS keyring, or a SQLite path.
func OpenStore(target string) (storage.Provider, error) {
	switch {
	case target == constants.StoreKeyring:
		connStr, err := keyring.ResolveConnectionString()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, fmt.Errorf("no connection string found, run 'tracklit keyring set' or set %s", constants.EnvDBConnection)
			}
			return nil, err
		}
		// the keyring is an acceptable home for a password
		if err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, err
		}
		return postgres.New(connStr), nil
	case postgres.IsConnString(target) || strings.Contains(target, "host="):
		if err := postgres.ValidateConnString(target); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w: store it with 'tracklit keyring set' and use --store keyring, or use %s or .pgpass", err, constants.EnvDBConnection)
			}
			return nil, err
		}
		return postgres.New(target), nil
	case strings.EqualFold(filepath.Ext(target), ".json"):
		return storage.NewJSONStore(target), nil
	default:
		return sqlite.NewStore(target), nil
	}
}

// PerformAutomaticBackup backs up file stores and only logs failures
func (c *Context) PerformAutomaticBackup() {
	if !c.Config.BackupOnStart || !isFileStore(c.Store) {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

func isFileStore(s storage.Provider) bool {
	switch s.(type) {
	case *storage.JSONStore, *sqlite.Store:
		return true
	default:
		return false
	}
}

func (c *Context) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) println(args ...interface{}) {
	fmt.Fprintln(c.Out, args...)
}

// confirm asks a yes/no question on In, defaulting to no
func (c *Context) confirm(prompt string) (bool, error) {
	c.printf("%s [y/N]: ", prompt)
	response, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// day resolves a YYYY-MM-DD flag, or today, in the configured timezone
func (c *Context) day(date string) (time.Time, error) {
	return utils.ParseDateOrToday(date, c.Tracker.Now())
}
