// Package watch consumes a listing event stream, matches events against a
// subscription filter, and tracks recently surfaced listings.
package watch

import (
	"strings"

	"github.com/propwatch/propwatch/internal/listing"
)

// Filter holds the subscription criteria an incoming event is evaluated
// against. Nil or empty fields impose no constraint; active constraints
// are ANDed.
type Filter struct {
	Query    string
	MinPrice *int64
	MaxPrice *int64
	BedsMin  *int
	BathsMin *int
}

// Matches reports whether a listing satisfies every active constraint.
func (f Filter) Matches(l *listing.Listing) bool {
	if l == nil {
		return false
	}
	if f.Query != "" && !strings.Contains(strings.ToLower(l.Address), strings.ToLower(f.Query)) {
		return false
	}
	if f.MinPrice != nil && l.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && l.Price > *f.MaxPrice {
		return false
	}
	if f.BedsMin != nil && l.Beds < *f.BedsMin {
		return false
	}
	if f.BathsMin != nil && l.Baths < *f.BathsMin {
		return false
	}
	return true
}
