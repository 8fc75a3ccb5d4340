package vinoteca

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/agentstation/vinoteca/pkg/errors"
	"github.com/agentstation/vinoteca/pkg/logging"
)

// Watch reloads the catalog whenever the data file is written, created or
// renamed into place. It blocks until ctx is done and returns nil then.
// Only file sources can be watched.
func (v *vinoteca) Watch(ctx context.Context) error {
	path := v.options.dataFile
	if path == "" {
		return &errors.ValidationError{
			Field:   "source",
			Value:   v.options.source.Name(),
			Message: "only file sources can be watched",
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapIO("watch", path, err)
	}
	defer watcher.Close()

	// Watch the directory; editors often replace the file instead of writing it.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return errors.WrapIO("watch", dir, err)
	}

	ctx = logging.WithOperation(logging.WithSource(ctx, path), "watch")
	logger := logging.FromContext(ctx)
	logger.Info().Msg("Watching data file for changes")

	target := filepath.Clean(path)
	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug().Str("event", event.Op.String()).Msg("Data file changed")
			if timer == nil {
				timer = time.NewTimer(v.options.watchDebounce)
			} else {
				timer.Reset(v.options.watchDebounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			if err := v.Reload(ctx); err != nil {
				logger.Warn().Err(err).Msg("Reload after file change failed")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("File watcher error")
		}
	}
}
