// Package application provides the application interface for vinoteca commands.
//
// The Application interface is the contract between the CLI wiring in
// cmd/vinoteca/app and the command and server implementations. Commands accept
// it instead of the concrete App so they can be tested with a Mock.
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            v, err := app.Vinoteca(cmd.Context())
//	            if err != nil {
//	                return err
//	            }
//	            wines, err := v.Catalog().ListWines(catalogs.WineQuery{})
//	            // ...
//	        },
//	    }
//	}
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/vinoteca"
	"github.com/agentstation/vinoteca/pkg/catalogs"
)

// Application provides the dependencies commands need.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Vinoteca returns the shared catalog instance, loading it on first use.
	Vinoteca(ctx context.Context) (vinoteca.Vinoteca, error)

	// Catalog returns the current snapshot of the shared instance.
	Catalog(ctx context.Context) (*catalogs.Catalog, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml, wide).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
