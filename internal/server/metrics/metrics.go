// Package metrics exposes Prometheus metrics for the HTTP API and the
// catalog it serves.
package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agentstation/vinoteca/pkg/catalogs"
)

const namespace = "vinoteca"

// Metrics holds the server's collectors and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry
	prefix   string

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	entities   *prometheus.GaugeVec
	issues     prometheus.Gauge
	reloads    *prometheus.CounterVec
	lastReload prometheus.Gauge
}

// New creates a Metrics with its own registry. prefix is the API path prefix
// used to collapse entity ids out of the path label.
func New(prefix string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		prefix:   strings.Trim(prefix, "/"),

		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
		}, []string{"method", "path"}),

		entities: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "entities",
			Help:      "Number of entities in the current catalog snapshot.",
		}, []string{"kind"}),
		issues: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "duplicate_records",
			Help:      "Records dropped from the current snapshot because their id repeated.",
		}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "reloads_total",
			Help:      "Catalog reloads by result.",
		}, []string{"result"}),
		lastReload: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "last_reload_timestamp_seconds",
			Help:      "Unix time of the last successful catalog load.",
		}),
	}

	m.registry.MustRegister(
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		m.entities,
		m.issues,
		m.reloads,
		m.lastReload,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return m
}

// Registry returns the registry the collectors are registered in.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler exposing the registered metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveCatalog records the size of a newly published snapshot.
func (m *Metrics) ObserveCatalog(stats catalogs.Stats) {
	m.entities.WithLabelValues(catalogs.KindWinery.String()).Set(float64(stats.Wineries))
	m.entities.WithLabelValues(catalogs.KindVarietal.String()).Set(float64(stats.Varietals))
	m.entities.WithLabelValues(catalogs.KindWine.String()).Set(float64(stats.Wines))
	m.issues.Set(float64(stats.Duplicates))
	if !stats.LoadedAt.IsZero() {
		m.lastReload.Set(float64(stats.LoadedAt.Unix()))
	}
}

// RecordReload counts a reload attempt.
func (m *Metrics) RecordReload(err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.reloads.WithLabelValues(result).Inc()
}

// Instrument wraps next with request counting and timing.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		path := m.canonicalPath(r.URL.Path)
		method := strings.ToUpper(r.Method)
		m.httpRequests.WithLabelValues(method, path, strconv.Itoa(rec.status)).Inc()
		m.httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush lets SSE streams pass through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack lets WebSocket upgrades pass through the recorder.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer %T does not support hijacking", r.ResponseWriter)
	}
	conn, buf, err := h.Hijack()
	if err == nil {
		r.status = http.StatusSwitchingProtocols
	}
	return conn, buf, err
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// canonicalPath keeps label cardinality bounded: ids under a collection
// become ":id".
func (m *Metrics) canonicalPath(raw string) string {
	trimmed := strings.Trim(raw, "/")
	if trimmed == "" {
		return "/"
	}
	rest := trimmed
	prefix := ""
	if m.prefix != "" {
		if after, ok := strings.CutPrefix(trimmed, m.prefix+"/"); ok {
			prefix = "/" + m.prefix
			rest = after
		} else if trimmed == m.prefix {
			return "/" + m.prefix
		}
	}

	parts := strings.Split(rest, "/")
	switch {
	case prefix == "":
		return "/" + parts[0]
	case len(parts) == 1:
		return prefix + "/" + parts[0]
	case isCollection(parts[0]):
		return prefix + "/" + parts[0] + "/:id"
	default:
		return prefix + "/" + strings.Join(parts, "/")
	}
}

func isCollection(segment string) bool {
	switch segment {
	case "wineries", "varietals", "wines", "bodegas", "cepas", "vinos":
		return true
	}
	return false
}
