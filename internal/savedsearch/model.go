// Package savedsearch provides named filter bundles owned by users.
package savedsearch

import "time"

// SavedSearch is a named filter bundle a user can re-run later. Nil fields
// were not part of the saved criteria. Records are immutable once created.
type SavedSearch struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Query     *string   `json:"q,omitempty"`
	MinPrice  *int64    `json:"min_price,omitempty"`
	MaxPrice  *int64    `json:"max_price,omitempty"`
	BedsMin   *int      `json:"beds_min,omitempty"`
	BathsMin  *int      `json:"baths_min,omitempty"`
	CenterLat *float64  `json:"center_lat,omitempty"`
	CenterLng *float64  `json:"center_lng,omitempty"`
	RadiusKm  *float64  `json:"radius_km,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
