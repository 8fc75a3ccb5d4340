package middleware

import (
	"bufio"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/vinoteca/pkg/logging"
)

func TestChainOrder(t *testing.T) {
	var calls []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls = append(calls, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls = append(calls, "handler")
	})

	Chain(mark("m1"), mark("m2"), mark("m3"))(handler).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"m1", "m2", "m3", "handler"}, calls)

	calls = nil
	Chain()(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"handler"}, calls)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = logging.RequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	var ctxLogged bool
	h := RequestID(Logger(tl.Logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logging.FromContext(r.Context()).Debug().Msg("inside handler")
		ctxLogged = true
		w.WriteHeader(http.StatusTeapot)
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/wines?sort=name", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.True(t, ctxLogged)
	tl.AssertContains(t, `"message":"inside handler"`)
	tl.AssertContains(t, `"message":"HTTP request"`)
	assert.True(t, tl.ContainsAll(`"status":418`, `"path":"/api/wines"`, `"request_id":"req-1"`))
}

func TestLoggerStatusDefaultsTo200(t *testing.T) {
	tl := logging.NewTestLogger(t)
	h := Logger(tl.Logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
		w.WriteHeader(http.StatusInternalServerError) // ignored, header already sent
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	tl.AssertContains(t, `"status":200`)
}

func TestRecovery(t *testing.T) {
	tl := logging.NewTestLogger(t)
	h := Recovery(tl.Logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("corked")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/wines", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"data":null,"error":{"code":"INTERNAL_ERROR","message":"Internal server error","details":"An unexpected error occurred"}}`, rec.Body.String())
	tl.AssertContains(t, "Panic recovered")
	tl.AssertContains(t, "corked")
}

func TestResponseWriterFlush(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	var w http.ResponseWriter = rw
	flusher, ok := w.(http.Flusher)
	require.True(t, ok)
	flusher.Flush()
	assert.True(t, rec.Flushed)
	assert.Same(t, rec, rw.Unwrap())
}

func TestStandardLogsRecoveredPanic(t *testing.T) {
	tl := logging.NewTestLogger(t)
	h := Standard(tl.Logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("corked")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/wines", nil)
	req.Header.Set(RequestIDHeader, "req-9")
	rec := httptest.NewRecorder()
	require.NotPanics(t, func() { h.ServeHTTP(rec, req) })

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "req-9", rec.Header().Get(RequestIDHeader))

	var panicLine, requestLine string
	for _, line := range tl.Lines() {
		switch {
		case strings.Contains(line, "Panic recovered"):
			panicLine = line
		case strings.Contains(line, `"message":"HTTP request"`):
			requestLine = line
		}
	}
	assert.Contains(t, panicLine, `"request_id":"req-9"`)
	assert.Contains(t, requestLine, `"status":500`)
	assert.Contains(t, requestLine, `"request_id":"req-9"`)
}

// hijackRecorder is a recorder that can be hijacked like a real connection.
type hijackRecorder struct {
	*httptest.ResponseRecorder
	hijacked bool
}

func (h *hijackRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h.hijacked = true
	server, client := net.Pipe()
	_ = client.Close()
	return server, bufio.NewReadWriter(bufio.NewReader(server), bufio.NewWriter(server)), nil
}

func TestResponseWriterHijack(t *testing.T) {
	inner := &hijackRecorder{ResponseRecorder: httptest.NewRecorder()}
	tl := logging.NewTestLogger(t)
	h := Logger(tl.Logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hj, ok := w.(http.Hijacker)
		require.True(t, ok)
		conn, _, err := hj.Hijack()
		require.NoError(t, err)
		_ = conn.Close()
	}))

	h.ServeHTTP(inner, httptest.NewRequest(http.MethodGet, "/api/updates/ws", nil))
	assert.True(t, inner.hijacked)
	tl.AssertContains(t, `"status":101`)

	rw := &responseWriter{ResponseWriter: httptest.NewRecorder()}
	_, _, err := rw.Hijack()
	assert.Error(t, err)
}
