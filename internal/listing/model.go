// Package listing provides the listing catalog model and data access.
package listing

import "time"

// Status represents the sale status of a listing.
type Status string

const (
	StatusForSale Status = "for_sale"
	StatusForRent Status = "for_rent"
)

// Listing is one geolocated property record in the catalog.
type Listing struct {
	ID        string    `json:"id"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Price     int64     `json:"price"` // AED
	Beds      int       `json:"beds"`
	Baths     int       `json:"baths"`
	Status    Status    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidCoordinates returns true if the listing's coordinates are within
// WGS84 bounds.
func (l *Listing) ValidCoordinates() bool {
	return l.Lat >= -90 && l.Lat <= 90 && l.Lng >= -180 && l.Lng <= 180
}
