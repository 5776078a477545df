// Package stream publishes listing mutation events to connected clients.
//
// Each connection owns one Publisher with two independently scheduled
// timers: a fixed heartbeat and a randomized simulated-update interval.
// Both run on a single goroutine, so events on one connection are always
// delivered in emission order.
package stream

import "github.com/propwatch/propwatch/internal/listing"

// EventType identifies the kind of a stream event.
type EventType string

const (
	EventConnected      EventType = "connected"
	EventHeartbeat      EventType = "heartbeat"
	EventListingUpdated EventType = "listing_updated"
)

// Event is one message on a listing event stream.
type Event struct {
	Type      EventType        `json:"type"`
	Listing   *listing.Listing `json:"listing,omitempty"`
	Timestamp int64            `json:"timestamp,omitempty"` // unix milliseconds
}
