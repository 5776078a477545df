package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/propwatch/propwatch/internal/savedsearch"
)

var validate = validator.New()

// savedSearchRequest is the POST /api/saved-searches body. Field rules
// are enforced by validator struct tags; the price-bound consistency
// check happens separately because it spans two fields.
type savedSearchRequest struct {
	Name      string   `json:"name" validate:"required"`
	Query     *string  `json:"q,omitempty"`
	MinPrice  *int64   `json:"min_price,omitempty" validate:"omitempty,gte=0"`
	MaxPrice  *int64   `json:"max_price,omitempty" validate:"omitempty,gte=0"`
	BedsMin   *int     `json:"beds_min,omitempty" validate:"omitempty,gte=0"`
	BathsMin  *int     `json:"baths_min,omitempty" validate:"omitempty,gte=0"`
	CenterLat *float64 `json:"center_lat,omitempty" validate:"omitempty,gte=-90,lte=90"`
	CenterLng *float64 `json:"center_lng,omitempty" validate:"omitempty,gte=-180,lte=180"`
	RadiusKm  *float64 `json:"radius_km,omitempty" validate:"omitempty,gt=0"`
}

// userID returns the requesting user from the X-User-ID header,
// defaulting to guest. Authentication is out of scope; the header is
// trusted as-is.
func userID(r *http.Request) string {
	if id := r.Header.Get("X-User-ID"); id != "" {
		return id
	}
	return "guest"
}

// handleListSavedSearches serves GET /api/saved-searches.
func (s *Server) handleListSavedSearches(w http.ResponseWriter, r *http.Request) {
	searches, err := s.searchRepo.ListByUser(userID(r))
	if err != nil {
		apiError(w, fmt.Sprintf("listing saved searches: %v", err), http.StatusInternalServerError)
		return
	}
	if searches == nil {
		searches = []*savedsearch.SavedSearch{}
	}

	apiJSON(w, map[string]interface{}{"items": searches}, http.StatusOK)
}

// handleCreateSavedSearch serves POST /api/saved-searches.
func (s *Server) handleCreateSavedSearch(w http.ResponseWriter, r *http.Request) {
	var req savedSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		apiError(w, fmt.Sprintf("validation failed: %v", err), http.StatusBadRequest)
		return
	}
	if req.MinPrice != nil && req.MaxPrice != nil && *req.MinPrice > *req.MaxPrice {
		apiError(w, "min_price must be less than or equal to max_price", http.StatusBadRequest)
		return
	}

	created, err := s.searchRepo.Create(&savedsearch.SavedSearch{
		UserID:    userID(r),
		Name:      req.Name,
		Query:     req.Query,
		MinPrice:  req.MinPrice,
		MaxPrice:  req.MaxPrice,
		BedsMin:   req.BedsMin,
		BathsMin:  req.BathsMin,
		CenterLat: req.CenterLat,
		CenterLng: req.CenterLng,
		RadiusKm:  req.RadiusKm,
	})
	if err != nil {
		apiError(w, fmt.Sprintf("creating saved search: %v", err), http.StatusInternalServerError)
		return
	}

	apiJSON(w, created, http.StatusCreated)
}
