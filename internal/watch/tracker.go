package watch

import (
	"sort"
	"sync"
	"time"

	"github.com/propwatch/propwatch/internal/listing"
)

// DefaultNewMarkerTTL is how long a surfaced listing keeps its "new" marker.
const DefaultNewMarkerTTL = 5 * time.Second

// Tracker keeps the listings surfaced by the event stream, keyed by
// listing ID with last-write-wins replacement, and attaches a transient
// "new" marker that expires after a fixed duration. A duplicate event for
// an already-new listing resets its expiry.
type Tracker struct {
	ttl time.Duration

	mu       sync.Mutex
	listings map[string]*listing.Listing
	timers   map[string]*time.Timer
}

// NewTracker creates a tracker. A non-positive ttl takes the default.
func NewTracker(ttl time.Duration) *Tracker {
	if ttl <= 0 {
		ttl = DefaultNewMarkerTTL
	}
	return &Tracker{
		ttl:      ttl,
		listings: make(map[string]*listing.Listing),
		timers:   make(map[string]*time.Timer),
	}
}

// Mark records a surfaced listing, replacing any previous snapshot with
// the same ID, and (re)starts its "new" marker expiry.
func (t *Tracker) Mark(l *listing.Listing) {
	if l == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.listings[l.ID] = l

	if timer, ok := t.timers[l.ID]; ok {
		timer.Stop()
	}
	id := l.ID
	t.timers[id] = time.AfterFunc(t.ttl, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.timers, id)
	})
}

// IsNew reports whether a listing's "new" marker is still active.
func (t *Tracker) IsNew(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.timers[id]
	return ok
}

// Listings returns the surfaced listings ordered by ID.
func (t *Tracker) Listings() []*listing.Listing {
	t.mu.Lock()
	defer t.mu.Unlock()

	items := make([]*listing.Listing, 0, len(t.listings))
	for _, l := range t.listings {
		items = append(items, l)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

// Reset clears all listings and stops every pending expiry timer. Call on
// teardown; leaking timers is a defect.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for id, timer := range t.timers {
		timer.Stop()
		delete(t.timers, id)
	}
	t.listings = make(map[string]*listing.Listing)
}
