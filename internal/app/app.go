// Package app provides the application context for quickssh.
// It allows dependency injection for testing.
package app

import (
	"github.com/AndyHazz/quickssh/internal/config"
	"github.com/AndyHazz/quickssh/internal/errors"
	"github.com/AndyHazz/quickssh/internal/hostfile"
	"github.com/AndyHazz/quickssh/internal/journal"
	"github.com/AndyHazz/quickssh/internal/logging"
	"github.com/AndyHazz/quickssh/internal/sshconfig"
	"github.com/AndyHazz/quickssh/internal/state"
	"github.com/AndyHazz/quickssh/internal/system"
)

// App holds the application dependencies
type App struct {
	// Paths holds the configured paths
	Paths *config.Paths

	// Settings are the user preferences from settings.toml
	Settings *config.Settings

	// FS is used for the ssh config and state files
	FS system.FileSystem

	// Executor runs ssh, avahi-browse and terminal commands
	Executor system.CommandExecutor
}

// Option is a function that configures the App
type Option func(*App)

// WithPaths sets custom paths
func WithPaths(paths *config.Paths) Option {
	return func(a *App) {
		a.Paths = paths
	}
}

// WithSettings sets the user settings
func WithSettings(s *config.Settings) Option {
	return func(a *App) {
		a.Settings = s
	}
}

// WithFS sets a custom file system
func WithFS(fs system.FileSystem) Option {
	return func(a *App) {
		a.FS = fs
	}
}

// WithExecutor sets a custom command executor
func WithExecutor(exec system.CommandExecutor) Option {
	return func(a *App) {
		a.Executor = exec
	}
}

// New creates a new App with the given options. Anything not provided
// falls back to the default paths, default settings and the OS
// implementations.
func New(opts ...Option) *App {
	app := &App{}
	for _, opt := range opts {
		opt(app)
	}

	if app.Paths == nil {
		app.Paths = config.DefaultPaths()
	}
	if app.Settings == nil {
		app.Settings = config.DefaultSettings()
	}
	if app.FS == nil {
		app.FS = system.DefaultFS()
	}
	if app.Executor == nil {
		app.Executor = system.DefaultExecutor()
	}
	return app
}

// LoadConfig reads and parses the ssh config.
func (a *App) LoadConfig() (*sshconfig.Document, []sshconfig.Warning, error) {
	doc, warnings, err := hostfile.Load(a.FS, a.Paths.SSHConfig)
	if err != nil {
		return nil, nil, errors.ConfigError("failed to load ssh config", err)
	}
	return doc, warnings, nil
}

// UpdateConfig applies fn to the ssh config and saves it. Typed errors from
// fn are returned unchanged.
func (a *App) UpdateConfig(fn func(*sshconfig.Document) (*sshconfig.Document, error)) (*sshconfig.Document, error) {
	var fnErr error
	doc, err := hostfile.Update(a.FS, a.Paths.SSHConfig, func(d *sshconfig.Document) (*sshconfig.Document, error) {
		updated, err := fn(d)
		fnErr = err
		return updated, err
	})
	if fnErr != nil {
		return nil, fnErr
	}
	if err != nil {
		return nil, errors.ConfigError("failed to update ssh config", err)
	}
	return doc, nil
}

// LoadState reads favorites, collapsed groups and history.
func (a *App) LoadState() (*state.State, error) {
	s, err := state.Load(a.FS, a.Paths.StateFile)
	if err != nil {
		return nil, errors.StateError("failed to load state", err)
	}
	return s, nil
}

// UpdateState applies fn to the stored state and saves it.
func (a *App) UpdateState(fn func(*state.State) *state.State) (*state.State, error) {
	s, err := state.Update(a.FS, a.Paths.StateFile, fn)
	if err != nil {
		return nil, errors.StateError("failed to save state", err)
	}
	return s, nil
}

// Journal returns the per-host event journal.
func (a *App) Journal() *journal.Journal {
	return journal.New(a.Paths)
}

// Record appends a journal event. Journal failures never fail the
// operation being recorded; they are logged instead.
func (a *App) Record(eventType journal.EventType, host, details string) {
	if err := a.Journal().Record(eventType, host, details); err != nil {
		logging.Warn("failed to write journal", "host", host, "event", eventType, "error", err)
	}
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
