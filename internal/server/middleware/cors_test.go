package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		config     CORSConfig
		method     string
		origin     string
		wantOrigin string
		wantStatus int
	}{
		{
			name:       "allow all",
			config:     CORSConfig{AllowAll: true},
			method:     http.MethodGet,
			origin:     "https://example.com",
			wantOrigin: "*",
			wantStatus: http.StatusOK,
		},
		{
			name:       "listed origin",
			config:     CORSConfig{AllowedOrigins: []string{"https://a.example", "https://b.example"}},
			method:     http.MethodGet,
			origin:     "https://b.example",
			wantOrigin: "https://b.example",
			wantStatus: http.StatusOK,
		},
		{
			name:       "unlisted origin",
			config:     CORSConfig{AllowedOrigins: []string{"https://a.example"}},
			method:     http.MethodGet,
			origin:     "https://evil.example",
			wantOrigin: "",
			wantStatus: http.StatusOK,
		},
		{
			name:       "empty list allows all",
			config:     CORSConfig{},
			method:     http.MethodGet,
			origin:     "https://x.example",
			wantOrigin: "*",
			wantStatus: http.StatusOK,
		},
		{
			name:       "preflight short-circuits",
			config:     DefaultCORSConfig(),
			method:     http.MethodOptions,
			origin:     "https://x.example",
			wantOrigin: "https://x.example",
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/wines", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()

			CORS(tt.config)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestDefaultCORSConfig(t *testing.T) {
	cfg := DefaultCORSConfig()
	assert.False(t, cfg.AllowAll)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Contains(t, cfg.AllowedHeaders, RequestIDHeader)
	assert.Contains(t, cfg.AllowedMethods, http.MethodPost)
}
