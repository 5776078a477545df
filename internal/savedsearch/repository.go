package savedsearch

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository provides storage operations for saved searches.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a saved-search repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const selectColumns = `id, user_id, name, q, min_price, max_price, beds_min, baths_min, center_lat, center_lng, radius_km, created_at`

// Create inserts a saved search, assigning its ID and creation timestamp,
// and returns the stored record.
func (r *Repository) Create(s *SavedSearch) (*SavedSearch, error) {
	s.ID = "search-" + uuid.NewString()
	s.CreatedAt = time.Now().UTC().Truncate(time.Second)

	_, err := r.db.Exec(
		`INSERT INTO saved_searches
		 (id, user_id, name, q, min_price, max_price, beds_min, baths_min, center_lat, center_lng, radius_km, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.Name,
		s.Query, s.MinPrice, s.MaxPrice, s.BedsMin, s.BathsMin,
		s.CenterLat, s.CenterLng, s.RadiusKm,
		s.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting saved search: %w", err)
	}

	return r.GetByID(s.ID)
}

// GetByID returns a saved search by its identifier.
func (r *Repository) GetByID(id string) (*SavedSearch, error) {
	query := fmt.Sprintf("SELECT %s FROM saved_searches WHERE id = ?", selectColumns)
	row := r.db.QueryRow(query, id)

	s, err := scanSavedSearch(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("saved search %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying saved search %s: %w", id, err)
	}

	return s, nil
}

// ListByUser returns the saved searches owned by a user, newest first.
func (r *Repository) ListByUser(userID string) (searches []*SavedSearch, err error) {
	query := fmt.Sprintf(
		"SELECT %s FROM saved_searches WHERE user_id = ? ORDER BY created_at DESC, id ASC",
		selectColumns,
	)
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing saved searches: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		s, err := scanSavedSearch(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning saved search: %w", err)
		}
		searches = append(searches, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating saved searches: %w", err)
	}

	return searches, nil
}

// scanSavedSearch scans a saved search from a database row.
func scanSavedSearch(row interface{ Scan(...interface{}) error }) (*SavedSearch, error) {
	var s SavedSearch
	var q sql.NullString
	var minPrice, maxPrice, bedsMin, bathsMin sql.NullInt64
	var centerLat, centerLng, radiusKm sql.NullFloat64
	var createdAt string

	err := row.Scan(
		&s.ID, &s.UserID, &s.Name,
		&q, &minPrice, &maxPrice, &bedsMin, &bathsMin,
		&centerLat, &centerLng, &radiusKm,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if q.Valid {
		s.Query = &q.String
	}
	if minPrice.Valid {
		s.MinPrice = &minPrice.Int64
	}
	if maxPrice.Valid {
		s.MaxPrice = &maxPrice.Int64
	}
	if bedsMin.Valid {
		v := int(bedsMin.Int64)
		s.BedsMin = &v
	}
	if bathsMin.Valid {
		v := int(bathsMin.Int64)
		s.BathsMin = &v
	}
	if centerLat.Valid {
		s.CenterLat = &centerLat.Float64
	}
	if centerLng.Valid {
		s.CenterLng = &centerLng.Float64
	}
	if radiusKm.Valid {
		s.RadiusKm = &radiusKm.Float64
	}

	s.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}

	return &s, nil
}
