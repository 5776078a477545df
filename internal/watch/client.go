package watch

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/propwatch/propwatch/internal/listing"
	"github.com/propwatch/propwatch/internal/stream"
)

// Status is the connection state of a stream client.
type Status string

const (
	StatusConnecting Status = "connecting"
	StatusConnected  Status = "connected"
	StatusErrored    Status = "errored"
)

// DefaultBackoff is the fixed delay between reconnect attempts.
const DefaultBackoff = 3 * time.Second

// Config configures a stream Client.
type Config struct {
	// URL is the websocket endpoint, e.g. ws://host:8080/ws/listings.
	URL string
	// Filter is the subscription criteria applied to incoming events.
	Filter Filter
	// Backoff between reconnect attempts. Zero takes DefaultBackoff.
	Backoff time.Duration
	// NewMarkerTTL controls how long matched listings stay flagged new.
	// Zero takes DefaultNewMarkerTTL.
	NewMarkerTTL time.Duration
	// OnMatch, if set, is called for every matching listing update after
	// the tracker has recorded it.
	OnMatch func(*listing.Listing)
}

// Client consumes the listing event stream over a websocket, evaluates
// each update against its filter, and feeds matches into a Tracker.
// On channel errors it backs off for a fixed delay and reconnects,
// indefinitely, until its context is cancelled.
type Client struct {
	cfg     Config
	tracker *Tracker
	dialer  *websocket.Dialer

	mu     sync.Mutex
	status Status
}

// NewClient creates a stream client. Run must be called to start it.
func NewClient(cfg Config) *Client {
	if cfg.Backoff <= 0 {
		cfg.Backoff = DefaultBackoff
	}
	return &Client{
		cfg:     cfg,
		tracker: NewTracker(cfg.NewMarkerTTL),
		dialer:  websocket.DefaultDialer,
		status:  StatusConnecting,
	}
}

// Tracker returns the client's listing tracker.
func (c *Client) Tracker() *Tracker {
	return c.tracker
}

// Status returns the current connection status.
func (c *Client) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Client) setStatus(s Status) {
	c.mu.Lock()
	c.status = s
	c.mu.Unlock()
}

// Run connects and consumes events until ctx is cancelled. Channel errors
// never escape: the client marks itself errored, waits the fixed backoff,
// and redials. It always returns nil after releasing its resources.
func (c *Client) Run(ctx context.Context) error {
	defer c.tracker.Reset()

	for {
		c.setStatus(StatusConnecting)

		conn, resp, err := c.dialer.DialContext(ctx, c.cfg.URL, nil)
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			slog.Warn("stream dial failed", "url", c.cfg.URL, "error", err)
			c.setStatus(StatusErrored)
			if !c.wait(ctx) {
				return nil
			}
			continue
		}

		c.setStatus(StatusConnected)
		c.consume(ctx, conn)

		if err := conn.Close(); err != nil {
			slog.Debug("closing stream connection", "error", err)
		}
		if ctx.Err() != nil {
			return nil
		}

		c.setStatus(StatusErrored)
		if !c.wait(ctx) {
			return nil
		}
	}
}

// consume reads events from one connection until it fails or ctx is done.
func (c *Client) consume(ctx context.Context, conn *websocket.Conn) {
	// Unblock the read loop when the context is cancelled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				slog.Warn("stream read failed", "error", err)
			}
			return
		}

		var ev stream.Event
		if err := json.Unmarshal(data, &ev); err != nil {
			slog.Warn("skipping malformed stream event", "error", err)
			continue
		}

		c.handle(ev)
	}
}

// handle surfaces a matching listing update. Re-delivered events replace
// the existing snapshot rather than duplicating it.
func (c *Client) handle(ev stream.Event) {
	if ev.Type != stream.EventListingUpdated || ev.Listing == nil {
		return
	}
	if !c.cfg.Filter.Matches(ev.Listing) {
		return
	}

	c.tracker.Mark(ev.Listing)
	if c.cfg.OnMatch != nil {
		c.cfg.OnMatch(ev.Listing)
	}
}

// wait sleeps for the reconnect backoff. It returns false if ctx was
// cancelled while waiting.
func (c *Client) wait(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(c.cfg.Backoff):
		return true
	}
}
