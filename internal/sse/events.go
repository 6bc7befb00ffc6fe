// Package sse implements Server-Sent Events for pushing catalog updates
// to connected browsing sessions.
package sse

import "time"

// EventType represents the type of SSE event.
type EventType string

const (
	// EventCatalogUpdated is sent when a new catalog snapshot is installed.
	EventCatalogUpdated EventType = "catalog.updated"

	// EventHeartbeat is a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event represents an SSE event to be sent to clients.
// The Data field contains the event payload as a JSON object for direct
// deserialization.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Type      EventType `json:"type"`
}

// CatalogUpdatedData is the payload of a catalog.updated event.
type CatalogUpdatedData struct {
	Revision    uint64 `json:"revision"`
	TotalMovies int    `json:"total_movies"`
}

// NewCatalogUpdatedEvent creates a catalog.updated event for a freshly
// installed snapshot.
func NewCatalogUpdatedEvent(revision uint64, totalMovies int) Event {
	return Event{
		Type:      EventCatalogUpdated,
		Timestamp: time.Now(),
		Data: CatalogUpdatedData{
			Revision:    revision,
			TotalMovies: totalMovies,
		},
	}
}

// NewHeartbeatEvent creates a keepalive event.
func NewHeartbeatEvent() Event {
	return Event{
		Type:      EventHeartbeat,
		Timestamp: time.Now(),
		Data:      map[string]string{"status": "alive"},
	}
}
