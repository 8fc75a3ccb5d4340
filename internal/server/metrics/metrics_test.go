package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agentstation/utc"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/vinoteca/pkg/catalogs"
)

// gather returns the metric family with the given name.
func gather(t *testing.T, m *Metrics, name string) *dto.MetricFamily {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	t.Fatalf("metric %s not found", name)
	return nil
}

func label(metric *dto.Metric, name string) string {
	for _, l := range metric.GetLabel() {
		if l.GetName() == name {
			return l.GetValue()
		}
	}
	return ""
}

func TestCanonicalPath(t *testing.T) {
	m := New("/api")

	tests := []struct {
		in   string
		want string
	}{
		{"/", "/"},
		{"", "/"},
		{"/health", "/health"},
		{"/api", "/api"},
		{"/api/wines", "/api/wines"},
		{"/api/wines/", "/api/wines"},
		{"/api/wines/b8f4", "/api/wines/:id"},
		{"/api/bodegas/123", "/api/bodegas/:id"},
		{"/api/updates/stream", "/api/updates/stream"},
		{"/metrics", "/metrics"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, m.canonicalPath(tt.in))
		})
	}
}

func TestInstrumentCountsRequests(t *testing.T) {
	m := New("/api")
	h := m.Instrument(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "missing") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = io.WriteString(w, "ok")
	}))

	for _, path := range []string{"/api/wines/a", "/api/wines/b", "/api/wines/missing"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	counts := map[string]float64{}
	for _, metric := range gather(t, m, "vinoteca_http_requests_total").GetMetric() {
		assert.Equal(t, "/api/wines/:id", label(metric, "path"))
		counts[label(metric, "status")] = metric.GetCounter().GetValue()
	}
	assert.Equal(t, map[string]float64{"200": 2, "404": 1}, counts)
}

func TestObserveCatalogAndReloads(t *testing.T) {
	m := New("/api")
	m.ObserveCatalog(catalogs.Stats{Wineries: 2, Varietals: 3, Wines: 4, Duplicates: 1, LoadedAt: utc.Now()})
	m.RecordReload(nil)
	m.RecordReload(errors.New("boom"))
	m.RecordReload(nil)

	kinds := map[string]float64{}
	for _, metric := range gather(t, m, "vinoteca_catalog_entities").GetMetric() {
		kinds[label(metric, "kind")] = metric.GetGauge().GetValue()
	}
	assert.Equal(t, map[string]float64{"winery": 2, "varietal": 3, "wine": 4}, kinds)

	dups := gather(t, m, "vinoteca_catalog_duplicate_records").GetMetric()
	require.Len(t, dups, 1)
	assert.Equal(t, float64(1), dups[0].GetGauge().GetValue())

	reloads := map[string]float64{}
	for _, metric := range gather(t, m, "vinoteca_catalog_reloads_total").GetMetric() {
		reloads[label(metric, "result")] = metric.GetCounter().GetValue()
	}
	assert.Equal(t, map[string]float64{"success": 2, "failure": 1}, reloads)

	last := gather(t, m, "vinoteca_catalog_last_reload_timestamp_seconds").GetMetric()
	assert.Positive(t, last[0].GetGauge().GetValue())
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New("/api")
	m.RecordReload(nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `vinoteca_catalog_reloads_total{result="success"} 1`)
}

func TestInstrumentPassesHijack(t *testing.T) {
	m := New("/api")
	srv := httptest.NewServer(m.Instrument(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hj, ok := w.(http.Hijacker)
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		conn, buf, err := hj.Hijack()
		if err != nil {
			return
		}
		defer conn.Close()
		_, _ = buf.WriteString("HTTP/1.1 200 OK\r\nContent-Length: 2\r\nConnection: close\r\n\r\nok")
		_ = buf.Flush()
	})))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/updates/ws")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))

	metric := gather(t, m, "vinoteca_http_requests_total").GetMetric()
	require.Len(t, metric, 1)
	assert.Equal(t, "101", label(metric[0], "status"))

	_, _, err = (&statusRecorder{ResponseWriter: httptest.NewRecorder()}).Hijack()
	assert.Error(t, err)
}
