package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/vinoteca"
	"github.com/agentstation/vinoteca/pkg/catalogs"
	"github.com/agentstation/vinoteca/pkg/errors"
)

var _ Application = (*Mock)(nil)

// Mock is an Application for tests. Unset funcs fall back to zero values;
// a nil VinotecaFunc makes Vinoteca and Catalog return errors.ErrNotLoaded.
type Mock struct {
	VinotecaFunc func(ctx context.Context) (vinoteca.Vinoteca, error)
	LoggerFunc   func() *zerolog.Logger
	Format       string
	VersionValue string
}

// Vinoteca calls VinotecaFunc.
func (m *Mock) Vinoteca(ctx context.Context) (vinoteca.Vinoteca, error) {
	if m.VinotecaFunc == nil {
		return nil, errors.ErrNotLoaded
	}
	return m.VinotecaFunc(ctx)
}

// Catalog returns the current snapshot of the mocked instance.
func (m *Mock) Catalog(ctx context.Context) (*catalogs.Catalog, error) {
	v, err := m.Vinoteca(ctx)
	if err != nil {
		return nil, err
	}
	return v.Catalog(), nil
}

// Logger returns LoggerFunc() or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns Format.
func (m *Mock) OutputFormat() string { return m.Format }

// Version returns VersionValue or "dev".
func (m *Mock) Version() string {
	if m.VersionValue == "" {
		return "dev"
	}
	return m.VersionValue
}

// Commit returns "none".
func (m *Mock) Commit() string { return "none" }

// Date returns "unknown".
func (m *Mock) Date() string { return "unknown" }

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string { return "test" }
