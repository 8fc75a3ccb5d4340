package vinoteca

import (
	"io/fs"
	"time"

	"github.com/agentstation/vinoteca/internal/embedded"
	"github.com/agentstation/vinoteca/pkg/catalogs"
	"github.com/agentstation/vinoteca/pkg/errors"
)

// DefaultWatchDebounce is how long Watch waits for a burst of file events to
// settle before reloading.
const DefaultWatchDebounce = 100 * time.Millisecond

// Option is a function that configures a Vinoteca instance
type Option func(*options) error

type options struct {
	source         catalogs.Source
	dataFile       string
	reloadInterval time.Duration
	watchDebounce  time.Duration
}

func defaultOptions() *options {
	return &options{
		watchDebounce: DefaultWatchDebounce,
	}
}

// WithDataFile loads the catalog from a JSON or YAML file.
func WithDataFile(path string) Option {
	return func(o *options) error {
		if path == "" {
			return &errors.ValidationError{Field: "dataFile", Message: "cannot be empty"}
		}
		o.dataFile = path
		o.source = catalogs.NewFileSource(path)
		return nil
	}
}

// WithFS loads the catalog from a file inside fsys.
func WithFS(fsys fs.FS, name string) Option {
	return func(o *options) error {
		if fsys == nil {
			return &errors.ValidationError{Field: "fs", Message: "cannot be nil"}
		}
		o.dataFile = ""
		o.source = catalogs.NewFSSource(fsys, name)
		return nil
	}
}

// WithEmbedded loads the sample catalog compiled into the binary.
func WithEmbedded() Option {
	return func(o *options) error {
		o.dataFile = ""
		o.source = embedded.Source()
		return nil
	}
}

// WithSource loads the catalog from a custom source.
func WithSource(src catalogs.Source) Option {
	return func(o *options) error {
		if src == nil {
			return &errors.ValidationError{Field: "source", Message: "cannot be nil"}
		}
		o.dataFile = ""
		if fileSrc, ok := src.(*catalogs.FileSource); ok {
			o.dataFile = fileSrc.Path
		}
		o.source = src
		return nil
	}
}

// WithReloadInterval reloads the catalog periodically.
func WithReloadInterval(interval time.Duration) Option {
	return func(o *options) error {
		if interval < 0 {
			return &errors.ValidationError{
				Field:   "reloadInterval",
				Value:   interval,
				Message: "cannot be negative",
			}
		}
		o.reloadInterval = interval
		return nil
	}
}

// WithWatchDebounce sets how long Watch waits before reloading after a change.
func WithWatchDebounce(d time.Duration) Option {
	return func(o *options) error {
		if d <= 0 {
			d = DefaultWatchDebounce
		}
		o.watchDebounce = d
		return nil
	}
}
