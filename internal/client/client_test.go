package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/propwatch/propwatch/internal/listing"
	"github.com/propwatch/propwatch/internal/savedsearch"
)

func TestSearchListings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/listings" {
			t.Errorf("path = %q, want /api/listings", r.URL.Path)
		}
		if r.Header.Get("X-User-ID") != "alice" {
			t.Errorf("X-User-ID = %q, want alice", r.Header.Get("X-User-ID"))
		}
		w.Header().Set("Content-Type", "application/json")
		resp := SearchResponse{
			Items: []*listing.Listing{{ID: "lst-1", Address: "12 Harbour Street"}},
			Total: 1,
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "alice")
	resp, err := c.SearchListings(SearchOptions{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if resp.Total != 1 || len(resp.Items) != 1 {
		t.Fatalf("resp = %+v, want 1 item total 1", resp)
	}
	if resp.Items[0].Address != "12 Harbour Street" {
		t.Errorf("address = %q", resp.Items[0].Address)
	}
}

func TestSearchListingsQueryParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("min_price") != "1000000" {
			t.Errorf("min_price = %q, want 1000000", q.Get("min_price"))
		}
		if q.Get("beds_min") != "2" {
			t.Errorf("beds_min = %q, want 2", q.Get("beds_min"))
		}
		if q.Get("sort_by") != "price" || q.Get("sort_order") != "asc" {
			t.Errorf("sort = %q %q, want price asc", q.Get("sort_by"), q.Get("sort_order"))
		}
		if q.Has("max_price") {
			t.Error("max_price should not be sent when unset")
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(SearchResponse{}); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	minPrice := int64(1000000)
	beds := 2
	c := New(srv.URL, "")
	_, err := c.SearchListings(SearchOptions{
		MinPrice:  &minPrice,
		BedsMin:   &beds,
		SortBy:    "price",
		SortOrder: "asc",
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
}

func TestGetListing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/listings/lst-42" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(&listing.Listing{ID: "lst-42", Price: 2500000}); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	l, err := c.GetListing("lst-42")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if l.ID != "lst-42" || l.Price != 2500000 {
		t.Errorf("listing = %+v", l)
	}
}

func TestGetListingServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		if _, err := w.Write([]byte(`{"error":"listing not found"}`)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	if _, err := c.GetListing("missing"); err == nil || err.Error() != "listing not found" {
		t.Errorf("err = %v, want server error message", err)
	}
}

func TestNearby(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("lat") != "25.2" || q.Get("lng") != "55.27" {
			t.Errorf("coords = %q %q", q.Get("lat"), q.Get("lng"))
		}
		if q.Get("radius_km") != "5" || q.Get("limit") != "3" {
			t.Errorf("radius/limit = %q %q", q.Get("radius_km"), q.Get("limit"))
		}
		w.Header().Set("Content-Type", "application/json")
		resp := map[string][]*listing.Listing{"items": {{ID: "lst-1"}}}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	items, err := c.Nearby(25.2, 55.27, 5, 3)
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	if len(items) != 1 || items[0].ID != "lst-1" {
		t.Errorf("items = %v", items)
	}
}

func TestCreateSavedSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/saved-searches" {
			t.Errorf("%s %s, want POST /api/saved-searches", r.Method, r.URL.Path)
		}
		var req SavedSearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Name != "Marina two-beds" {
			t.Errorf("name = %q", req.Name)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		created := savedsearch.SavedSearch{ID: "search-abc", Name: req.Name, UserID: "alice"}
		if err := json.NewEncoder(w).Encode(created); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "alice")
	s, err := c.CreateSavedSearch(SavedSearchRequest{Name: "Marina two-beds"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if s.ID != "search-abc" {
		t.Errorf("id = %q", s.ID)
	}
}

func TestListSavedSearches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		resp := map[string][]*savedsearch.SavedSearch{
			"items": {{ID: "search-1", Name: "one"}, {ID: "search-2", Name: "two"}},
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "alice")
	items, err := c.ListSavedSearches()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d searches, want 2", len(items))
	}
}
