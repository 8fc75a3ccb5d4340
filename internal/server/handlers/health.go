package handlers

import (
	"net/http"

	"github.com/agentstation/vinoteca/internal/server/response"
)

// HandleHealth handles GET /health (liveness).
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "vinoteca-api",
		"version": h.app.Version(),
	})
}

// HandleReady handles GET /api/ready. The server is ready once a catalog
// snapshot has been loaded.
func (h *Handlers) HandleReady(w http.ResponseWriter, r *http.Request) {
	v, err := h.app.Vinoteca(r.Context())
	if err != nil || !v.Store().Loaded() {
		response.ServiceUnavailable(w, "Catalog not loaded")
		return
	}

	stats := v.Catalog().Stats()
	response.OK(w, map[string]any{
		"status":     "ready",
		"source":     stats.Source,
		"generation": v.Store().Generation(),
		"cache": map[string]any{
			"items": h.cache.ItemCount(),
		},
		"websocket_clients": h.wsHub.ClientCount(),
		"sse_clients":       h.sseBroadcaster.ClientCount(),
	})
}
