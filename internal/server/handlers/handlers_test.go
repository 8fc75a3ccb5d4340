package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/vinoteca"
	"github.com/agentstation/vinoteca/cmd/application"
	"github.com/agentstation/vinoteca/internal/server/cache"
	"github.com/agentstation/vinoteca/internal/server/events"
	"github.com/agentstation/vinoteca/internal/server/sse"
	ws "github.com/agentstation/vinoteca/internal/server/websocket"
	"github.com/agentstation/vinoteca/pkg/logging"
)

func newTestHandlers(t *testing.T) (*Handlers, vinoteca.Vinoteca) {
	t.Helper()

	v, err := vinoteca.Initialize(context.Background(), "")
	require.NoError(t, err)

	logger := zerolog.Nop()
	hub := ws.NewHub(&logger)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	h := New(Deps{
		App: &application.Mock{
			VinotecaFunc: func(context.Context) (vinoteca.Vinoteca, error) { return v, nil },
		},
		Cache:          cache.New(time.Minute, time.Minute),
		Broker:         events.NewBroker(&logger),
		WSHub:          hub,
		SSEBroadcaster: sse.NewBroadcaster(&logger),
		Upgrader:       websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		Logger:         &logger,
		PathPrefix:     "/api",
	})
	return h, v
}

func TestServeCachedReusesRenderedPayload(t *testing.T) {
	h, v := newTestHandlers(t)

	get := func(target string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.HandleListWines(rec, httptest.NewRequest(http.MethodGet, target, nil))
		return rec
	}

	first := get("/api/wines?sort=name&vintage=2020")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, 1, h.cache.ItemCount())

	// same parameters in another order share the entry
	second := get("/api/wines?vintage=2020&sort=name")
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, h.cache.ItemCount())
	assert.Equal(t, uint64(1), h.cache.GetStats().Hits)

	// rejected queries are not cached
	bad := get("/api/wines?sort=price")
	assert.Equal(t, http.StatusBadRequest, bad.Code)
	assert.Equal(t, 1, h.cache.ItemCount())

	// a new generation misses the old entry
	require.NoError(t, v.Reload(context.Background()))
	get("/api/wines?sort=name&vintage=2020")
	assert.Equal(t, 2, h.cache.ItemCount())
}

func TestDetailLookupTagsLogger(t *testing.T) {
	h, _ := newTestHandlers(t)
	tl := logging.NewTestLogger(t)

	req := httptest.NewRequest(http.MethodGet, "/api/wines/missing", nil)
	req = req.WithContext(logging.WithLogger(req.Context(), tl.Logger))
	rec := httptest.NewRecorder()
	h.HandleGetWine(rec, req, "missing")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	tl.AssertContains(t, `"entity_kind":"wine"`)
	tl.AssertContains(t, `"entity_id":"missing"`)
}

func TestHandleIndex(t *testing.T) {
	h, _ := newTestHandlers(t)

	rec := httptest.NewRecorder()
	h.HandleIndex(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), `href="/api/wines"`)
	assert.Contains(t, rec.Body.String(), "Version dev")

	rec = httptest.NewRecorder()
	h.HandleIndex(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"NOT_FOUND"`)
}

func TestHandleStats(t *testing.T) {
	h, _ := newTestHandlers(t)

	rec := httptest.NewRecorder()
	h.HandleStats(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	for _, key := range []string{`"runtime"`, `"catalog"`, `"events"`, `"realtime"`, `"cache"`} {
		assert.Contains(t, rec.Body.String(), key)
	}
}

func TestHandleWebSocketRegistersClient(t *testing.T) {
	h, _ := newTestHandlers(t)

	srv := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	defer conn.Close()

	require.Eventually(t, func() bool {
		return h.wsHub.ClientCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	h.wsHub.Broadcast(ws.Message{Type: "catalog.reloaded", Timestamp: time.Now().UTC()})

	// the connect announcement may arrive first, depending on hub scheduling
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		var msg ws.Message
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type == "catalog.reloaded" {
			break
		}
		assert.Equal(t, "client.connected", msg.Type)
	}
}
