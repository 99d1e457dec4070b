package app

import (
	"fmt"
	"os"

	charmLog "github.com/charmbracelet/log"
	"github.com/dori/kanri/internal/config"
	"github.com/dori/kanri/internal/db"
	"github.com/dori/kanri/internal/notify"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// App holds the application state and dependencies
type App struct {
	DB       *db.DB
	Config   config.Config
	Profile  config.Profile
	Paths    config.Paths
	Logger   *charmLog.Logger
	Notifier *notify.Notifier
	State    *State

	lockFile *flock.Flock
	closeLog func() error
}

// Options selects where the app reads and writes
type Options struct {
	Paths config.Paths
	// Profile is the profile name, empty for the configured default
	Profile string
}

// DefaultOptions returns options for the platform directories
func DefaultOptions() (Options, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return Options{}, err
	}
	return Options{Paths: paths}, nil
}

// New creates a new application instance
func New(opts Options) (*App, error) {
	cfg, profile, err := config.Init(opts.Paths.ConfigDir, opts.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Ensure data directory exists
	if err := os.MkdirAll(opts.Paths.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	app := &App{
		Config:   cfg,
		Profile:  profile,
		Paths:    opts.Paths,
		Notifier: notify.NewNotifier(),
		State:    NewState(),
	}

	// Acquire lock to ensure single instance
	if err := app.acquireLock(); err != nil {
		return nil, err
	}

	logger, closeLog, err := newLogger(opts.Paths.LogPath(profile), cfg.LogLevel, uuid.NewString())
	if err != nil {
		app.releaseLock()
		return nil, fmt.Errorf("failed to open log: %w", err)
	}
	app.Logger = logger
	app.closeLog = closeLog

	app.Logger.Info("configuration loaded",
		"profile", profile.Name,
		"config_dir", opts.Paths.ConfigDir,
		"preset", cfg.Colors.Preset,
		"log_level", cfg.LogLevel)

	// Open database
	database, err := db.Open(opts.Paths.DBPath(profile))
	if err != nil {
		app.Logger.Error("sqlite open failed", "db_path", opts.Paths.DBPath(profile), "err", err)
		app.closeLog()
		app.releaseLock()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	database.SetLogger(app.Logger)
	app.DB = database
	app.Logger.Info("sqlite ready", "db_path", opts.Paths.DBPath(profile))

	return app, nil
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
// of the same profile
func (a *App) acquireLock() error {
	a.lockFile = flock.New(a.Paths.LockPath(a.Profile))

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("another instance of kanri is already running with profile %q", a.Profile.Name)
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// SetPreset switches the color preset for this session
func (a *App) SetPreset(name string) {
	a.Config = a.Config.WithPreset(name)
	a.Logger.Debug("color preset changed", "preset", a.Config.Colors.Preset)
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if a.closeLog != nil {
		if err := a.closeLog(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close log: %w", err))
		}
	}

	a.releaseLock()

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
