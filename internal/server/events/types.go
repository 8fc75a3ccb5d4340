// Package events fans catalog events out to the server's realtime transports.
//
// Reload hooks publish to a single Broker; SSE and WebSocket adapters subscribe
// to it, so a reload is announced once regardless of how many transports are
// active.
package events

import "time"

// EventType represents the type of catalog event.
type EventType string

// Event types for catalog changes.
const (
	// Reload events (from vinoteca hooks).
	CatalogReloaded     EventType = "catalog.reloaded"
	CatalogReloadFailed EventType = "catalog.reload_failed"

	// Client events (from transport layers).
	ClientConnected EventType = "client.connected"
)

// Event represents a catalog event. Seq increases by one per published
// event, so a gap seen by a client means events were dropped.
type Event struct {
	Seq       uint64    `json:"seq"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}
