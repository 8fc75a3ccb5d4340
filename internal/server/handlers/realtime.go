package handlers

import (
	"net/http"

	"github.com/agentstation/utc"
	"github.com/google/uuid"

	ws "github.com/agentstation/vinoteca/internal/server/websocket"
)

// HandleWebSocket handles WebSocket connections at /api/updates/ws.
func (h *Handlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response
		h.logger.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := ws.NewClient(uuid.NewString(), h.wsHub, conn)
	h.wsHub.Register(client)
	h.wsHub.Broadcast(ws.Message{
		Type:      "client.connected",
		Timestamp: utc.Now().Time,
		Data: map[string]any{
			"client_id": client.ID(),
		},
	})

	go client.WritePump()
	go client.ReadPump()
}

// HandleSSE handles Server-Sent Events at /api/updates/stream.
func (h *Handlers) HandleSSE(w http.ResponseWriter, r *http.Request) {
	h.sseBroadcaster.ServeHTTP(w, r)
}
