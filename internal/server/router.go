package server

import (
	"net/http"
	"strings"

	"github.com/agentstation/vinoteca/internal/server/handlers"
	"github.com/agentstation/vinoteca/internal/server/middleware"
	"github.com/agentstation/vinoteca/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(handlers.Deps{
		App:            s.app,
		Cache:          s.cache,
		Broker:         s.broker,
		WSHub:          s.wsHub,
		SSEBroadcaster: s.sseBroadcaster,
		Upgrader:       s.upgrader,
		Logger:         s.logger,
		PathPrefix:     s.config.PathPrefix,
		StartTime:      s.startTime,
	})

	s.registerRoutes(mux, h)

	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	mux.HandleFunc("/", h.HandleIndex)

	// Favicon handler (return 204 No Content to avoid 404 logs)
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Health endpoints
	mux.HandleFunc("/health", getOnly(h.HandleHealth))
	if prefix != "" {
		mux.HandleFunc(prefix+"/health", getOnly(h.HandleHealth))
	}
	mux.HandleFunc(prefix+"/ready", getOnly(h.HandleReady))
	mux.HandleFunc(prefix+"/stats", getOnly(h.HandleStats))

	// Catalog resources, each with its Spanish alias
	for _, name := range []string{"wineries", "bodegas"} {
		registerResource(mux, prefix+"/"+name, h.HandleListWineries, h.HandleGetWinery)
	}
	for _, name := range []string{"varietals", "cepas"} {
		registerResource(mux, prefix+"/"+name, h.HandleListVarietals, h.HandleGetVarietal)
	}
	for _, name := range []string{"wines", "vinos"} {
		registerResource(mux, prefix+"/"+name, h.HandleListWines, h.HandleGetWine)
	}

	// Admin endpoints
	if s.config.ReloadEnabled {
		mux.HandleFunc(prefix+"/reload", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				response.MethodNotAllowed(w, r.Method, http.MethodPost)
				return
			}
			h.HandleReload(w, r)
		})
	}

	// Real-time endpoints
	mux.HandleFunc(prefix+"/updates/ws", h.HandleWebSocket)
	mux.HandleFunc(prefix+"/updates/stream", getOnly(h.HandleSSE))

	// Metrics endpoint (optional)
	if s.config.MetricsEnabled {
		mux.Handle("/metrics", s.metrics.Handler())
	}
}

// registerResource wires the list route at base and the detail route at
// base/{id}. Paths nested below an id are not found.
func registerResource(mux *http.ServeMux, base string, list http.HandlerFunc, get func(http.ResponseWriter, *http.Request, string)) {
	mux.HandleFunc(base, getOnly(list))
	mux.HandleFunc(base+"/", getOnly(func(w http.ResponseWriter, r *http.Request) {
		parts := splitPath(strings.TrimPrefix(r.URL.Path, base+"/"))
		switch len(parts) {
		case 0:
			list(w, r)
		case 1:
			get(w, r, extractPathParam(r.URL.Path, base+"/"))
		default:
			response.NotFound(w, "Route not found", r.URL.Path)
		}
	}))
}

// getOnly rejects every method but GET and HEAD.
func getOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			response.MethodNotAllowed(w, r.Method, http.MethodGet)
			return
		}
		next(w, r)
	}
}

// applyMiddleware wraps handler with middleware chain.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cfg := s.config

	// Rate limiting (if enabled)
	if s.limiter != nil {
		handler = middleware.RateLimit(s.limiter)(handler)
	}

	// CORS (if enabled)
	if cfg.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		if len(cfg.CORSOrigins) > 0 {
			corsConfig.AllowedOrigins = cfg.CORSOrigins
			corsConfig.AllowAll = false
		} else {
			corsConfig.AllowAll = true
		}
		handler = middleware.CORS(corsConfig)(handler)
	}

	if cfg.MetricsEnabled {
		handler = s.metrics.Instrument(handler)
	}

	// Request ids, logging and recovery (always enabled)
	return middleware.Standard(s.logger)(handler)
}

// extractPathParam extracts path parameter from URL.
func extractPathParam(path, prefix string) string {
	trimmed := strings.TrimPrefix(path, prefix)
	parts := strings.Split(trimmed, "/")
	if len(parts) > 0 {
		return parts[0]
	}
	return ""
}

// splitPath splits a URL path into parts, removing empty strings.
func splitPath(path string) []string {
	parts := []string{}
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
