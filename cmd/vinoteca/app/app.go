// Package app provides the application context and dependency management
// for the vinoteca CLI. It centralizes configuration, logging and the shared
// catalog instance, and hands them to commands through
// application.Application.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/vinoteca"
	"github.com/agentstation/vinoteca/cmd/application"
	"github.com/agentstation/vinoteca/pkg/catalogs"
	"github.com/agentstation/vinoteca/pkg/errors"
	"github.com/agentstation/vinoteca/pkg/logging"
)

var _ application.Application = (*App)(nil)

// App represents the vinoteca application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Vinoteca instance (lazy-initialized, singleton)
	mu       sync.RWMutex
	vinoteca vinoteca.Vinoteca
}

// New creates a new App instance with the given version information.
// The app is initialized with configuration loaded from the environment,
// which functional options can override.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Vinoteca returns the shared instance, loading the catalog on first use.
// This is thread-safe and ensures only one instance is created.
func (a *App) Vinoteca(ctx context.Context) (vinoteca.Vinoteca, error) {
	a.mu.RLock()
	if a.vinoteca != nil {
		v := a.vinoteca
		a.mu.RUnlock()
		return v, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.vinoteca != nil {
		return a.vinoteca, nil
	}

	ctx = logging.WithLogger(ctx, a.logger)
	v, err := vinoteca.New(ctx, a.vinotecaOptions()...)
	if err != nil {
		return nil, err
	}

	stats := v.Catalog().Stats()
	a.logger.Debug().
		Str("source", stats.Source).
		Int("wineries", stats.Wineries).
		Int("varietals", stats.Varietals).
		Int("wines", stats.Wines).
		Msg("Catalog loaded")

	a.vinoteca = v
	return v, nil
}

// Catalog returns the current snapshot of the shared instance.
func (a *App) Catalog(ctx context.Context) (*catalogs.Catalog, error) {
	v, err := a.Vinoteca(ctx)
	if err != nil {
		return nil, err
	}
	return v.Catalog(), nil
}

// Shutdown stops periodic reloads if the instance was created.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.RLock()
	v := a.vinoteca
	a.mu.RUnlock()

	if v != nil {
		v.AutoReloadOff()
	}
	return nil
}

// vinotecaOptions constructs options from the app configuration.
func (a *App) vinotecaOptions() []vinoteca.Option {
	var opts []vinoteca.Option

	if a.config.DataFile != "" {
		opts = append(opts, vinoteca.WithDataFile(a.config.DataFile))
	} else {
		opts = append(opts, vinoteca.WithEmbedded())
	}

	if a.config.ReloadInterval > 0 {
		opts = append(opts, vinoteca.WithReloadInterval(a.config.ReloadInterval))
	}

	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return &errors.ValidationError{Field: "config", Message: "cannot be nil"}
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithVinoteca sets a custom instance (useful for testing).
func WithVinoteca(v vinoteca.Vinoteca) Option {
	return func(a *App) error {
		a.vinoteca = v
		return nil
	}
}
