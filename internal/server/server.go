// Package server provides the HTTP server for the vinoteca API.
package server

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/vinoteca/cmd/application"
	"github.com/agentstation/vinoteca/internal/server/cache"
	"github.com/agentstation/vinoteca/internal/server/events"
	"github.com/agentstation/vinoteca/internal/server/events/adapters"
	"github.com/agentstation/vinoteca/internal/server/metrics"
	"github.com/agentstation/vinoteca/internal/server/middleware"
	"github.com/agentstation/vinoteca/internal/server/sse"
	ws "github.com/agentstation/vinoteca/internal/server/websocket"
	"github.com/agentstation/vinoteca/pkg/catalogs"
	"github.com/agentstation/vinoteca/pkg/constants"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	app            application.Application
	cache          *cache.Cache
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	metrics        *metrics.Metrics
	limiter        *middleware.RateLimiter
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
	config         Config
	ctx            context.Context
	cancel         context.CancelFunc
	wg             sync.WaitGroup
	startOnce      sync.Once
	startTime      time.Time
}

// New creates a new server instance with the given configuration. The
// catalog reload hooks are connected to the event broker, the response
// cache and the metrics before New returns.
func New(app application.Application, cfg Config) (*Server, error) {
	logger := app.Logger()

	logger.Debug().Msg("Creating new server instance")

	// Set defaults
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = constants.CacheTTL
	}
	cfg.PathPrefix = "/" + strings.Trim(cfg.PathPrefix, "/")
	if cfg.PathPrefix == "/" {
		cfg.PathPrefix = ""
	}

	broker := events.NewBroker(logger)
	wsHub := ws.NewHub(logger)
	sseBroadcaster := sse.NewBroadcaster(logger)

	// Subscribe transports to broker
	broker.Subscribe(adapters.NewWebSocketSubscriber(wsHub))
	broker.Subscribe(adapters.NewSSESubscriber(sseBroadcaster))
	logger.Debug().Int("subscribers", broker.SubscriberCount()).Msg("Transports subscribed to event broker")

	// Background services run until Shutdown
	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		app:            app,
		cache:          cache.New(cfg.CacheTTL, cfg.CacheTTL*2),
		broker:         broker,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		metrics:        metrics.New(cfg.PathPrefix),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true // Allow all origins for WebSocket
			},
		},
		logger:    logger,
		config:    cfg,
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
	}
	if cfg.RateLimit > 0 {
		s.limiter = middleware.NewRateLimiter(cfg.RateLimit, logger)
	}

	if err := s.connectHooks(); err != nil {
		cancel()
		return nil, err
	}

	logger.Debug().Msg("Server instance created successfully")
	return s, nil
}

// connectHooks registers reload hooks that flush the cache, update metrics
// and publish catalog events.
func (s *Server) connectHooks() error {
	v, err := s.app.Vinoteca(s.ctx)
	if err != nil {
		return err
	}

	s.metrics.ObserveCatalog(v.Catalog().Stats())

	v.OnReloaded(func(_, updated *catalogs.Catalog) {
		s.cache.Clear()
		stats := updated.Stats()
		s.metrics.ObserveCatalog(stats)
		s.metrics.RecordReload(nil)
		s.broker.Publish(events.CatalogReloaded, map[string]any{
			"generation": v.Store().Generation(),
			"catalog":    stats,
		})
		s.logger.Debug().
			Int("wines", stats.Wines).
			Msg("Catalog reloaded event published")
	})

	v.OnReloadFailed(func(err error) {
		s.metrics.RecordReload(err)
		s.broker.Publish(events.CatalogReloadFailed, map[string]any{
			"error": err.Error(),
		})
		s.logger.Debug().Err(err).Msg("Catalog reload failed event published")
	})

	s.logger.Info().Msg("Catalog hooks connected to event broker")
	return nil
}

// Start starts background services (broker, WebSocket hub, SSE broadcaster
// and the rate limiter sweeper). Calling Start more than once is a no-op.
func (s *Server) Start() {
	s.startOnce.Do(func() {
		s.logger.Debug().Msg("Starting background services")

		s.goBackground(func() { s.broker.Run(s.ctx) })
		s.goBackground(func() { s.wsHub.Run(s.ctx) })
		s.goBackground(func() { s.sseBroadcaster.Run(s.ctx) })
		if s.limiter != nil {
			s.goBackground(func() { s.limiter.RunCleanup(s.ctx.Done(), constants.RateLimitCleanupInterval) })
		}

		s.logger.Debug().Msg("All background services started")
	})
}

func (s *Server) goBackground(fn func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn()
	}()
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Shutdown stops background services and waits for them to exit or for ctx
// to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down server background services")

	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info().Msg("Background services shut down successfully")
		return nil
	case <-ctx.Done():
		s.logger.Warn().Msg("Background services shutdown timed out")
		return ctx.Err()
	}
}

// Cache returns the server's cache instance.
func (s *Server) Cache() *cache.Cache {
	return s.cache
}

// WSHub returns the WebSocket hub.
func (s *Server) WSHub() *ws.Hub {
	return s.wsHub
}

// SSEBroadcaster returns the SSE broadcaster.
func (s *Server) SSEBroadcaster() *sse.Broadcaster {
	return s.sseBroadcaster
}

// Broker returns the event broker for publishing events.
func (s *Server) Broker() *events.Broker {
	return s.broker
}

// Metrics returns the server's Prometheus collectors.
func (s *Server) Metrics() *metrics.Metrics {
	return s.metrics
}

// Config returns the effective configuration.
func (s *Server) Config() Config {
	return s.config
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}
