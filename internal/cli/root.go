package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/taskflow/internal/backup"
	"github.com/julianstephens/taskflow/internal/config"
	"github.com/julianstephens/taskflow/internal/constants"
	"github.com/julianstephens/taskflow/internal/logger"
	"github.com/julianstephens/taskflow/internal/storage"
	"github.com/julianstephens/taskflow/internal/storage/sqlite"
	"github.com/julianstephens/taskflow/internal/tracker"
	"github.com/julianstephens/taskflow/internal/utils"
)

// ErrBackupsUnsupported is returned for backup commands on a PostgreSQL store.
var ErrBackupsUnsupported = errors.New("backups are only supported for SQLite databases; use pg_dump for PostgreSQL")

type Context struct {
	Store      storage.Provider
	Tracker    *tracker.Service
	Config     *config.Config
	ConfigDir  string
	ConfigFile string
	Now        func() time.Time
}

func NewContext(store storage.Provider, cfg *config.Config, configDir string) *Context {
	c := &Context{
		Store:      store,
		Config:     cfg,
		ConfigDir:  configDir,
		ConfigFile: filepath.Join(configDir, "config.yaml"),
		Now:        time.Now,
	}
	c.Tracker = tracker.New(store, tracker.WithClock(func() time.Time { return c.Now() }))
	return c
}

// Today returns the current civil date.
func (c *Context) Today() time.Time {
	return utils.DateOf(c.Now())
}

func (c *Context) UserID() string {
	return constants.DefaultUserID
}

// BackupManager returns the backup manager for a SQLite store.
func (c *Context) BackupManager() (*backup.Manager, error) {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil, ErrBackupsUnsupported
	}
	var opts []backup.Option
	if c.Config != nil {
		opts = append(opts, backup.WithMaxBackups(c.Config.Backups.Max))
	}
	return backup.NewManager(c.Store.GetConfigPath(), opts...), nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if c.Config != nil && !c.Config.Backups.Enabled {
		return
	}
	mgr, err := c.BackupManager()
	if err != nil {
		return
	}
	if _, err := mgr.Create(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Confirm asks a yes/no question unless skip is set.
func Confirm(title string, skip bool) (bool, error) {
	if skip {
		return true, nil
	}
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if err != nil {
		return false, fmt.Errorf("confirmation aborted: %w", err)
	}
	return ok, nil
}
