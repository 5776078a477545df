// Package client provides an HTTP client for the propwatch REST API.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/propwatch/propwatch/internal/listing"
	"github.com/propwatch/propwatch/internal/savedsearch"
)

// Client is an HTTP client for the propwatch API.
type Client struct {
	baseURL    string
	userID     string
	httpClient *http.Client
}

// New creates a new API client. userID may be empty, in which case the
// server treats requests as the guest user.
func New(baseURL, userID string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userID:     userID,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SearchResponse is the response from GET /api/listings.
type SearchResponse struct {
	Items []*listing.Listing `json:"items"`
	Total int                `json:"total"`
}

// SearchOptions controls filtering and pagination for SearchListings.
type SearchOptions struct {
	Query     string
	MinPrice  *int64
	MaxPrice  *int64
	BedsMin   *int
	BathsMin  *int
	Page      int
	Limit     int
	SortBy    string // updated_at, price (empty = server default)
	SortOrder string // asc, desc (empty = server default)
}

// SearchListings returns a page of listings matching the options.
func (c *Client) SearchListings(opts SearchOptions) (*SearchResponse, error) {
	params := url.Values{}
	if opts.Query != "" {
		params.Set("q", opts.Query)
	}
	if opts.MinPrice != nil {
		params.Set("min_price", fmt.Sprintf("%d", *opts.MinPrice))
	}
	if opts.MaxPrice != nil {
		params.Set("max_price", fmt.Sprintf("%d", *opts.MaxPrice))
	}
	if opts.BedsMin != nil {
		params.Set("beds_min", fmt.Sprintf("%d", *opts.BedsMin))
	}
	if opts.BathsMin != nil {
		params.Set("baths_min", fmt.Sprintf("%d", *opts.BathsMin))
	}
	if opts.Page > 0 {
		params.Set("page", fmt.Sprintf("%d", opts.Page))
	}
	if opts.Limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", opts.Limit))
	}
	if opts.SortBy != "" {
		params.Set("sort_by", opts.SortBy)
	}
	if opts.SortOrder != "" {
		params.Set("sort_order", opts.SortOrder)
	}

	path := "/api/listings"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var resp SearchResponse
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetListing returns a single listing by id.
func (c *Client) GetListing(id string) (*listing.Listing, error) {
	var l listing.Listing
	if err := c.get("/api/listings/"+url.PathEscape(id), &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// Nearby returns listings within radiusKm of a point, closest first.
// Zero radius and limit use the server defaults.
func (c *Client) Nearby(lat, lng, radiusKm float64, limit int) ([]*listing.Listing, error) {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%g", lat))
	params.Set("lng", fmt.Sprintf("%g", lng))
	if radiusKm > 0 {
		params.Set("radius_km", fmt.Sprintf("%g", radiusKm))
	}
	if limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", limit))
	}

	var resp struct {
		Items []*listing.Listing `json:"items"`
	}
	if err := c.get("/api/listings/nearby?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// ListSavedSearches returns the saved searches of the client's user.
func (c *Client) ListSavedSearches() ([]*savedsearch.SavedSearch, error) {
	var resp struct {
		Items []*savedsearch.SavedSearch `json:"items"`
	}
	if err := c.get("/api/saved-searches", &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// SavedSearchRequest is the body for CreateSavedSearch.
type SavedSearchRequest struct {
	Name      string   `json:"name"`
	Query     string   `json:"q,omitempty"`
	MinPrice  *int64   `json:"min_price,omitempty"`
	MaxPrice  *int64   `json:"max_price,omitempty"`
	BedsMin   *int     `json:"beds_min,omitempty"`
	BathsMin  *int     `json:"baths_min,omitempty"`
	CenterLat *float64 `json:"center_lat,omitempty"`
	CenterLng *float64 `json:"center_lng,omitempty"`
	RadiusKm  *float64 `json:"radius_km,omitempty"`
}

// CreateSavedSearch stores a named search for the client's user.
func (c *Client) CreateSavedSearch(req SavedSearchRequest) (*savedsearch.SavedSearch, error) {
	var s savedsearch.SavedSearch
	if err := c.post("/api/saved-searches", req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// get performs a GET request and decodes the response.
func (c *Client) get(path string, result interface{}) error {
	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

// post performs a POST request with a JSON body and decodes the response.
func (c *Client) post(path string, body interface{}, result interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, result)
}

// do executes an HTTP request with the user header and handles errors.
func (c *Client) do(req *http.Request, result interface{}) error {
	if c.userID != "" {
		req.Header.Set("X-User-ID", c.userID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			fmt.Printf("warning: closing response body: %v\n", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return fmt.Errorf("%s", errResp.Error)
		}
		return fmt.Errorf("server error: %s", http.StatusText(resp.StatusCode))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
