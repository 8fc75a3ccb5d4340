// Package adapters connects the event broker to the realtime transports.
package adapters

import (
	"strconv"

	"github.com/agentstation/vinoteca/internal/server/events"
	"github.com/agentstation/vinoteca/internal/server/sse"
	ws "github.com/agentstation/vinoteca/internal/server/websocket"
)

// SSESubscriber forwards broker events to SSE clients. The event sequence
// number is sent as the SSE id.
type SSESubscriber struct {
	broadcaster *sse.Broadcaster
}

// NewSSESubscriber creates a subscriber feeding broadcaster.
func NewSSESubscriber(broadcaster *sse.Broadcaster) *SSESubscriber {
	return &SSESubscriber{broadcaster: broadcaster}
}

// Send queues event for every SSE client.
func (s *SSESubscriber) Send(event events.Event) error {
	s.broadcaster.Broadcast(sse.Event{
		Event: string(event.Type),
		ID:    strconv.FormatUint(event.Seq, 10),
		Data:  event.Data,
	})
	return nil
}

// Close does nothing; the broadcaster is stopped by its own context.
func (s *SSESubscriber) Close() error { return nil }

// WebSocketSubscriber forwards broker events to WebSocket clients.
type WebSocketSubscriber struct {
	hub *ws.Hub
}

// NewWebSocketSubscriber creates a subscriber feeding hub.
func NewWebSocketSubscriber(hub *ws.Hub) *WebSocketSubscriber {
	return &WebSocketSubscriber{hub: hub}
}

// Send queues event for every WebSocket client.
func (w *WebSocketSubscriber) Send(event events.Event) error {
	w.hub.Broadcast(ws.Message{
		Seq:       event.Seq,
		Type:      string(event.Type),
		Timestamp: event.Timestamp,
		Data:      event.Data,
	})
	return nil
}

// Close does nothing; the hub is stopped by its own context.
func (w *WebSocketSubscriber) Close() error { return nil }
