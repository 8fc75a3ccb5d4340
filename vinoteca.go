// Package vinoteca serves a read-only catalog of wineries, varietals and wines.
//
// A Vinoteca owns a catalogs.Store loaded from a single data source. The
// catalog can be reloaded manually, on a fixed interval or whenever the data
// file changes; every reload publishes a complete new snapshot, so readers
// never observe a partially loaded catalog.
//
//	v, err := vinoteca.Initialize(ctx, "vinoteca.json")
//	if err != nil {
//		return err
//	}
//	wines, err := v.Catalog().ListWines(catalogs.WineQuery{Sort: catalogs.WineSortName})
package vinoteca

import (
	"context"
	"sync"
	"time"

	"github.com/agentstation/vinoteca/internal/embedded"
	"github.com/agentstation/vinoteca/pkg/catalogs"
	"github.com/agentstation/vinoteca/pkg/errors"
	"github.com/agentstation/vinoteca/pkg/logging"
)

// Compile-time interface checks.
var (
	_ Vinoteca     = (*vinoteca)(nil)
	_ AutoReloader = (*vinoteca)(nil)
)

// Vinoteca manages a catalog store with reloads and event hooks.
type Vinoteca interface {
	// Catalog returns the current snapshot. It is never nil.
	Catalog() *catalogs.Catalog

	// Store returns the underlying store.
	Store() *catalogs.Store

	// Source returns the data source reloads read from.
	Source() catalogs.Source

	// Reload reads the source again and swaps in the new snapshot.
	Reload(ctx context.Context) error

	// Watch reloads the catalog whenever the data file changes, until ctx is done.
	Watch(ctx context.Context) error

	// OnReloaded registers a callback for successful reloads.
	OnReloaded(ReloadedHook)

	// OnReloadFailed registers a callback for failed reloads.
	OnReloadFailed(ReloadFailedHook)

	AutoReloader
}

// vinoteca is the internal implementation of the Vinoteca interface.
type vinoteca struct {
	options *options
	store   *catalogs.Store
	hooks   *hooks

	// guards the auto reload loop
	mu           sync.Mutex
	reloadCancel context.CancelFunc
	reloadDone   chan struct{}
}

// New creates a Vinoteca and performs the initial load.
// A failed initial load returns a *errors.DataLoadError.
func New(ctx context.Context, opts ...Option) (Vinoteca, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.source == nil {
		o.source = embedded.Source()
	}

	v := &vinoteca{
		options: o,
		store:   catalogs.NewStore(),
		hooks:   newHooks(),
	}

	if err := v.store.Load(ctx, o.source); err != nil {
		return nil, err
	}

	if o.reloadInterval > 0 {
		if err := v.AutoReloadOn(ctx); err != nil {
			return nil, err
		}
	}

	return v, nil
}

// Initialize loads the catalog at path. An empty path loads the embedded
// sample catalog.
func Initialize(ctx context.Context, path string, opts ...Option) (Vinoteca, error) {
	if path != "" {
		opts = append([]Option{WithDataFile(path)}, opts...)
	}
	return New(ctx, opts...)
}

// Catalog returns the current snapshot.
func (v *vinoteca) Catalog() *catalogs.Catalog {
	return v.store.Catalog()
}

// Store returns the underlying store.
func (v *vinoteca) Store() *catalogs.Store {
	return v.store
}

// Source returns the configured data source.
func (v *vinoteca) Source() catalogs.Source {
	return v.options.source
}

// Reload reads the source and publishes a new snapshot. On failure the
// previous snapshot keeps serving and the failure hooks run.
func (v *vinoteca) Reload(ctx context.Context) error {
	ctx = logging.WithOperation(ctx, "reload")

	old, published, err := v.store.Replace(ctx, v.options.source)
	if err != nil {
		v.hooks.triggerReloadFailed(err)
		return err
	}

	v.hooks.triggerReloaded(old, published)
	return nil
}

// OnReloaded registers a callback for successful reloads.
func (v *vinoteca) OnReloaded(fn ReloadedHook) {
	v.hooks.OnReloaded(fn)
}

// OnReloadFailed registers a callback for failed reloads.
func (v *vinoteca) OnReloadFailed(fn ReloadFailedHook) {
	v.hooks.OnReloadFailed(fn)
}

// AutoReloader controls periodic reloads.
type AutoReloader interface {
	// AutoReloadOn starts reloading on the configured interval until ctx is
	// done or AutoReloadOff is called.
	AutoReloadOn(ctx context.Context) error

	// AutoReloadOff stops periodic reloads and waits for the loop to exit.
	AutoReloadOff()
}

// AutoReloadOn starts the periodic reload loop.
func (v *vinoteca) AutoReloadOn(ctx context.Context) error {
	interval := v.options.reloadInterval
	if interval <= 0 {
		return &errors.ValidationError{
			Field:   "reloadInterval",
			Value:   interval,
			Message: "reload interval must be positive",
		}
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	// replace any running loop without releasing mu
	if v.reloadCancel != nil {
		v.reloadCancel()
		<-v.reloadDone
	}

	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})
	v.reloadCancel = cancel
	v.reloadDone = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := v.Reload(loopCtx); err != nil {
					logging.FromContext(loopCtx).Warn().Err(err).Msg("Periodic reload failed")
				}
			}
		}
	}()

	return nil
}

// AutoReloadOff stops the periodic reload loop.
func (v *vinoteca) AutoReloadOff() {
	v.mu.Lock()
	cancel, done := v.reloadCancel, v.reloadDone
	v.reloadCancel, v.reloadDone = nil, nil
	v.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}
