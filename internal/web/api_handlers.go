package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/propwatch/propwatch/internal/listing"
)

// cacheControl is set on search responses: results may lag the catalog by
// a short, bounded interval.
const cacheControl = "public, max-age=30, s-maxage=60"

const (
	defaultNearbyRadiusKm = 5
	defaultNearbyLimit    = 5
	maxNearbyLimit        = 20
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	resp := map[string]string{"error": msg}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// listingsResponse is the body of a catalog search.
type listingsResponse struct {
	Items []*listing.Listing `json:"items"`
	Total int                `json:"total"`
}

// handleSearchListings serves GET /api/listings.
func (s *Server) handleSearchListings(w http.ResponseWriter, r *http.Request) {
	filters, err := parseSearchFilters(r)
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	items, total, err := s.listingRepo.Search(filters)
	if err != nil {
		apiError(w, fmt.Sprintf("searching listings: %v", err), http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []*listing.Listing{}
	}

	w.Header().Set("Cache-Control", cacheControl)
	apiJSON(w, listingsResponse{Items: items, Total: total}, http.StatusOK)
}

// handleGetListing serves GET /api/listings/{id}.
func (s *Server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	l, err := s.listingRepo.GetByID(id)
	if err != nil {
		apiError(w, "listing not found", http.StatusNotFound)
		return
	}

	apiJSON(w, l, http.StatusOK)
}

// handleNearby serves GET /api/listings/nearby.
func (s *Server) handleNearby(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if q.Get("lat") == "" || q.Get("lng") == "" {
		apiError(w, "lat and lng are required", http.StatusBadRequest)
		return
	}

	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		apiError(w, "lat must be a number", http.StatusBadRequest)
		return
	}
	lng, err := strconv.ParseFloat(q.Get("lng"), 64)
	if err != nil {
		apiError(w, "lng must be a number", http.StatusBadRequest)
		return
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		apiError(w, "lat/lng out of range", http.StatusBadRequest)
		return
	}

	radiusKm := float64(defaultNearbyRadiusKm)
	if v := q.Get("radius_km"); v != "" {
		radiusKm, err = strconv.ParseFloat(v, 64)
		if err != nil {
			apiError(w, "radius_km must be a number", http.StatusBadRequest)
			return
		}
	}

	limit := defaultNearbyLimit
	if v := q.Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil {
			apiError(w, "limit must be an integer", http.StatusBadRequest)
			return
		}
	}
	if limit > maxNearbyLimit {
		limit = maxNearbyLimit
	}

	items, err := s.listingSvc.Nearby(lat, lng, radiusKm, limit)
	if err != nil {
		apiError(w, fmt.Sprintf("searching nearby listings: %v", err), http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []*listing.Listing{}
	}

	w.Header().Set("Cache-Control", cacheControl)
	apiJSON(w, map[string]interface{}{"items": items}, http.StatusOK)
}

// parseSearchFilters reads catalog search parameters from the query
// string. Malformed numerics are a caller error; limit and page clamps
// happen downstream.
func parseSearchFilters(r *http.Request) (listing.SearchFilters, error) {
	q := r.URL.Query()
	filters := listing.SearchFilters{
		Query: q.Get("q"),
		Page:  1,
	}

	if v := q.Get("min_price"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return filters, fmt.Errorf("min_price must be a non-negative integer")
		}
		filters.MinPrice = &n
	}
	if v := q.Get("max_price"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return filters, fmt.Errorf("max_price must be a non-negative integer")
		}
		filters.MaxPrice = &n
	}
	if v := q.Get("beds_min"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return filters, fmt.Errorf("beds_min must be a non-negative integer")
		}
		filters.BedsMin = &n
	}
	if v := q.Get("baths_min"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return filters, fmt.Errorf("baths_min must be a non-negative integer")
		}
		filters.BathsMin = &n
	}
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return filters, fmt.Errorf("page must be a positive integer")
		}
		filters.Page = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return filters, fmt.Errorf("limit must be a positive integer")
		}
		filters.Limit = n
	}

	switch v := q.Get("sort_by"); v {
	case "", string(listing.SortByUpdatedAt):
		filters.SortBy = listing.SortByUpdatedAt
	case string(listing.SortByPrice):
		filters.SortBy = listing.SortByPrice
	default:
		return filters, fmt.Errorf("sort_by must be updated_at or price")
	}

	switch v := q.Get("sort_order"); v {
	case "", string(listing.SortDesc):
		filters.SortOrder = listing.SortDesc
	case string(listing.SortAsc):
		filters.SortOrder = listing.SortAsc
	default:
		return filters, fmt.Errorf("sort_order must be asc or desc")
	}

	return filters, nil
}
