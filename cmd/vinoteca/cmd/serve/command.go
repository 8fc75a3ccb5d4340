// Package serve implements the serve command, which runs the HTTP API.
package serve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/vinoteca/cmd/application"
	"github.com/agentstation/vinoteca/internal/cmd/emoji"
	"github.com/agentstation/vinoteca/internal/server"
	"github.com/agentstation/vinoteca/pkg/constants"
)

// NewCommand creates the serve command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		GroupID: "core",
		Short:   "Start the REST API server",
		Long: `Start an HTTP server exposing the catalog as a read-only JSON API.

Routes (under --prefix, default /api):
  /wineries, /varietals, /wines         list, with sort and vintage parameters
  /wineries/{id}, /varietals/{id}, ...  details with resolved relations
  /bodegas, /cepas, /vinos              Spanish aliases
  /ready, /stats, /reload               operations
  /updates/stream, /updates/ws          catalog events over SSE and WebSocket

Environment variables HTTP_PORT and HTTP_HOST override --port and --host.`,
		Example: `  vinoteca serve                              # Serve the embedded catalog on :8080
  vinoteca serve -d catalog.yaml --watch     # Reload when the file changes
  vinoteca serve --port 3000 --cors          # Custom port with CORS`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := parseConfig(cmd)
			if err != nil {
				return err
			}
			return run(cmd.Context(), app, cfg, mustGetBool(cmd, "watch"), cmd.OutOrStdout())
		},
	}

	defaults := server.DefaultConfig()
	cmd.Flags().IntP("port", "p", defaults.Port, "server port")
	cmd.Flags().String("host", defaults.Host, "bind address")
	cmd.Flags().String("prefix", defaults.PathPrefix, "API path prefix")
	cmd.Flags().Bool("cors", defaults.CORSEnabled, "enable CORS for all origins")
	cmd.Flags().StringSlice("cors-origins", nil, "allowed CORS origins (implies --cors)")
	cmd.Flags().Int("rate-limit", defaults.RateLimit, "requests per minute per client (0 disables)")
	cmd.Flags().Int("cache-ttl", int(defaults.CacheTTL.Seconds()), "response cache TTL in seconds")
	cmd.Flags().Duration("read-timeout", defaults.ReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", defaults.WriteTimeout, "HTTP write timeout")
	cmd.Flags().Duration("idle-timeout", defaults.IdleTimeout, "HTTP idle timeout")
	cmd.Flags().Bool("metrics", defaults.MetricsEnabled, "expose Prometheus metrics at /metrics")
	cmd.Flags().Bool("reload", defaults.ReloadEnabled, "enable POST {prefix}/reload")
	cmd.Flags().Bool("watch", false, "reload the catalog when the data file changes")

	return cmd
}

// run starts background services and the HTTP server and blocks until ctx
// is cancelled or the listener fails.
func run(ctx context.Context, app application.Application, cfg server.Config, watch bool, out io.Writer) error {
	logger := app.Logger()

	v, err := app.Vinoteca(ctx)
	if err != nil {
		return err
	}

	srv, err := server.New(app, cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	srv.Start()

	if watch {
		go func() {
			if err := v.Watch(ctx); err != nil {
				logger.Error().Err(err).Msg("File watch stopped")
			}
		}()
	}

	logger.Debug().
		Str("addr", cfg.Addr()).
		Dur("read_timeout", cfg.ReadTimeout).
		Dur("write_timeout", cfg.WriteTimeout).
		Dur("idle_timeout", cfg.IdleTimeout).
		Msg("Creating HTTP server")

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	return startWithGracefulShutdown(ctx, httpServer, srv, logger, out)
}

// parseConfig parses command flags into server configuration.
func parseConfig(cmd *cobra.Command) (server.Config, error) {
	cfg := server.Config{
		Host:           mustGetString(cmd, "host"),
		Port:           mustGetInt(cmd, "port"),
		PathPrefix:     mustGetString(cmd, "prefix"),
		CORSEnabled:    mustGetBool(cmd, "cors"),
		CORSOrigins:    mustGetStringSlice(cmd, "cors-origins"),
		RateLimit:      mustGetInt(cmd, "rate-limit"),
		CacheTTL:       time.Duration(mustGetInt(cmd, "cache-ttl")) * time.Second,
		ReadTimeout:    mustGetDuration(cmd, "read-timeout"),
		WriteTimeout:   mustGetDuration(cmd, "write-timeout"),
		IdleTimeout:    mustGetDuration(cmd, "idle-timeout"),
		MetricsEnabled: mustGetBool(cmd, "metrics"),
		ReloadEnabled:  mustGetBool(cmd, "reload"),
	}
	if len(cfg.CORSOrigins) > 0 {
		cfg.CORSEnabled = true
	}

	// Override with environment variables
	if envPort := os.Getenv("HTTP_PORT"); envPort != "" {
		p, err := parsePort(envPort)
		if err != nil {
			return server.Config{}, err
		}
		cfg.Port = p
	}
	if envHost := os.Getenv("HTTP_HOST"); envHost != "" {
		cfg.Host = envHost
	}

	if _, err := parsePort(strconv.Itoa(cfg.Port)); err != nil {
		return server.Config{}, err
	}
	return cfg, nil
}

// parsePort safely parses a port string to integer.
func parsePort(portStr string) (int, error) {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, fmt.Errorf("invalid port number: %s", portStr)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port out of range: %d", port)
	}
	return port, nil
}

// startWithGracefulShutdown starts the HTTP server and shuts it down when
// ctx is cancelled.
func startWithGracefulShutdown(ctx context.Context, httpServer *http.Server, srv *server.Server, logger *zerolog.Logger, out io.Writer) error {
	serverErr := make(chan error, 1)

	go func() {
		logger.Info().
			Str("addr", httpServer.Addr).
			Str("service", "API").
			Msg("HTTP server listening")

		fmt.Fprintf(out, "%s API server listening on %s\n", emoji.Rocket, httpServer.Addr)
		fmt.Fprintln(out, "   Press Ctrl+C to stop")

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server failed: %w", err)
		}
	}()

	select {
	case err := <-serverErr:
		_ = srv.Shutdown(context.Background())
		return err
	case <-ctx.Done():
		logger.Info().Msg("Shutdown signal received via context")
		fmt.Fprintf(out, "\n%s Shutting down API server...\n", emoji.Stop)

		// The parent context is already cancelled
		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()

		// Background services first so SSE streams end and Shutdown does not wait on them
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("Background services shutdown had issues")
		}
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("Server stopped gracefully")
		fmt.Fprintf(out, "%s API server stopped gracefully\n", emoji.Success)
		return nil
	}
}

// mustGetInt retrieves an integer flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetInt(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

func mustGetStringSlice(cmd *cobra.Command, name string) []string {
	val, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

func mustGetDuration(cmd *cobra.Command, name string) time.Duration {
	val, err := cmd.Flags().GetDuration(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
