package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/agentstation/vinoteca/internal/server/response"
	"github.com/agentstation/vinoteca/pkg/logging"
)

// HandleReload handles POST /api/reload. It re-reads the data source and
// swaps in the new snapshot; on failure the previous snapshot keeps serving.
// Cache invalidation and event publication happen in the reload hooks.
func (h *Handlers) HandleReload(w http.ResponseWriter, r *http.Request) {
	v, ok := h.vinoteca(w, r)
	if !ok {
		return
	}

	logger := logging.FromContext(r.Context())
	if err := v.Reload(r.Context()); err != nil {
		logger.Warn().Err(err).Msg("Manual reload failed")
		response.ErrorFromType(w, err)
		return
	}

	logger.Info().Uint64("generation", v.Store().Generation()).Msg("Manual reload completed")
	response.OK(w, map[string]any{
		"status":     "reloaded",
		"generation": v.Store().Generation(),
		"catalog":    v.Catalog().Stats(),
	})
}

// HandleStats handles GET /api/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	v, ok := h.vinoteca(w, r)
	if !ok {
		return
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	report := v.Catalog().Check()
	response.OK(w, map[string]any{
		"runtime": map[string]any{
			"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
			"goroutines":     runtime.NumGoroutine(),
			"memory_mb":      memStats.Alloc / 1024 / 1024,
		},
		"catalog":    v.Catalog().Stats(),
		"generation": v.Store().Generation(),
		"issues":     len(report.Issues),
		"events": map[string]any{
			"published_total": h.broker.EventsPublished(),
			"dropped_total":   h.broker.EventsDropped(),
			"queue_depth":     h.broker.QueueDepth(),
		},
		"realtime": map[string]any{
			"websocket_clients": h.wsHub.ClientCount(),
			"sse_clients":       h.sseBroadcaster.ClientCount(),
		},
		"cache": h.cache.GetStats(),
	})
}
