package catalogs

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/vinoteca/pkg/errors"
	"github.com/agentstation/vinoteca/pkg/logging"
)

// Store owns the published catalog snapshot.
//
// Load builds a complete new snapshot before publishing it with an atomic
// swap, so readers see either the old catalog or the new one and never a
// partially populated store. A failed load leaves the published snapshot
// untouched; a store that never loaded successfully serves an empty catalog.
type Store struct {
	current    atomic.Pointer[Catalog]
	generation atomic.Uint64

	// serializes loads
	loadMu sync.Mutex
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithCatalog publishes c as the initial snapshot.
func WithCatalog(c *Catalog) StoreOption {
	return func(s *Store) {
		if c != nil {
			s.current.Store(c)
			s.generation.Store(1)
		}
	}
}

// NewStore creates a store serving an empty catalog.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{}
	s.current.Store(Empty())
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the published snapshot. It is never nil.
func (s *Store) Catalog() *Catalog {
	return s.current.Load()
}

// Loaded reports whether a snapshot has been published by a successful load.
func (s *Store) Loaded() bool {
	return s.generation.Load() > 0
}

// Generation returns the number of snapshots published so far.
func (s *Store) Generation() uint64 {
	return s.generation.Load()
}

// Load reads src, builds a new snapshot and publishes it.
// Errors are returned as *errors.DataLoadError.
func (s *Store) Load(ctx context.Context, src Source) error {
	_, _, err := s.Replace(ctx, src)
	return err
}

// Replace is Load that also returns the snapshot it replaced and the one it
// published. Both are captured under the load lock, so concurrent callers
// each get their own consecutive pair. On error both are nil.
func (s *Store) Replace(ctx context.Context, src Source) (previous, published *Catalog, err error) {
	if src == nil {
		return nil, nil, errors.NewDataLoadError("", &errors.ValidationError{
			Field:   "source",
			Message: "cannot be nil",
		})
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	ctx = logging.WithSource(ctx, src.Name())
	logger := logging.FromContext(ctx)
	start := time.Now()

	ds, err := src.Read(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Catalog load failed, keeping previous snapshot")
		return nil, nil, errors.WrapDataLoad(src.Name(), err)
	}

	catalog := NewCatalog(ds).withStats(src.Name(), utc.Now(), time.Since(start))
	for _, dup := range catalog.duplicates {
		logger.Warn().
			Str("kind", dup.Kind.String()).
			Str("id", dup.ID).
			Msg("Dropped duplicate record")
	}

	previous = s.current.Swap(catalog)
	gen := s.generation.Add(1)

	stats := catalog.Stats()
	logger.Info().
		Int("wineries", stats.Wineries).
		Int("varietals", stats.Varietals).
		Int("wines", stats.Wines).
		Int("duplicates", stats.Duplicates).
		Uint64("generation", gen).
		Dur("took", stats.Duration).
		Msg("Catalog loaded")

	return previous, catalog, nil
}
