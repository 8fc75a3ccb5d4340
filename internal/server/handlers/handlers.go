// Package handlers provides HTTP request handlers for the vinoteca API.
package handlers

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/vinoteca"
	"github.com/agentstation/vinoteca/cmd/application"
	"github.com/agentstation/vinoteca/internal/server/cache"
	"github.com/agentstation/vinoteca/internal/server/events"
	"github.com/agentstation/vinoteca/internal/server/response"
	"github.com/agentstation/vinoteca/internal/server/sse"
	ws "github.com/agentstation/vinoteca/internal/server/websocket"
	"github.com/agentstation/vinoteca/pkg/catalogs"
	"github.com/agentstation/vinoteca/pkg/logging"
)

// Deps are the collaborators the handlers need.
type Deps struct {
	App            application.Application
	Cache          *cache.Cache
	Broker         *events.Broker
	WSHub          *ws.Hub
	SSEBroadcaster *sse.Broadcaster
	Upgrader       websocket.Upgrader
	Logger         *zerolog.Logger
	PathPrefix     string
	StartTime      time.Time
}

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	app            application.Application
	cache          *cache.Cache
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
	prefix         string
	startTime      time.Time
}

// New creates a new Handlers instance.
func New(d Deps) *Handlers {
	if d.StartTime.IsZero() {
		d.StartTime = time.Now()
	}
	return &Handlers{
		app:            d.App,
		cache:          d.Cache,
		broker:         d.Broker,
		wsHub:          d.WSHub,
		sseBroadcaster: d.SSEBroadcaster,
		upgrader:       d.Upgrader,
		logger:         d.Logger,
		prefix:         d.PathPrefix,
		startTime:      d.StartTime,
	}
}

// serveCached renders a payload from the current snapshot, reusing a cached
// copy when the same resource and query were rendered for this generation.
func (h *Handlers) serveCached(w http.ResponseWriter, r *http.Request, resource string, render func(*catalogs.Catalog) (any, error)) {
	v, err := h.app.Vinoteca(r.Context())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	key := cache.Key(v.Store().Generation(), resource, canonicalQuery(r.URL.Query()))
	if cached, ok := h.cache.Get(key); ok {
		response.OK(w, cached)
		return
	}

	data, err := render(v.Catalog())
	if err != nil {
		logging.FromContext(r.Context()).Debug().Err(err).Str("resource", resource).Msg("Request rejected")
		response.ErrorFromType(w, err)
		return
	}

	h.cache.Set(key, data)
	response.OK(w, data)
}

// canonicalQuery sorts parameters so equivalent queries share a cache entry.
func canonicalQuery(q url.Values) string {
	return q.Encode()
}

// vinoteca returns the shared instance or writes an error response.
func (h *Handlers) vinoteca(w http.ResponseWriter, r *http.Request) (vinoteca.Vinoteca, bool) {
	v, err := h.app.Vinoteca(r.Context())
	if err != nil {
		response.ErrorFromType(w, err)
		return nil, false
	}
	return v, true
}
