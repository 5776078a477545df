package listing

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Repository provides catalog storage operations for listings.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a listing repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const selectColumns = `id, address, city, lat, lng, price, beds, baths, status, updated_at`

// scanListing scans a listing from a database row.
func scanListing(row interface{ Scan(...interface{}) error }) (*Listing, error) {
	var l Listing
	var status, updatedAt string

	err := row.Scan(
		&l.ID, &l.Address, &l.City, &l.Lat, &l.Lng,
		&l.Price, &l.Beds, &l.Baths, &status, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	l.Status = Status(status)
	l.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at %q: %w", updatedAt, err)
	}

	return &l, nil
}

// Insert adds a new listing to the catalog.
func (r *Repository) Insert(l *Listing) error {
	if !l.ValidCoordinates() {
		return fmt.Errorf("listing %s has out-of-range coordinates (%f, %f)", l.ID, l.Lat, l.Lng)
	}
	if l.Price < 0 {
		return fmt.Errorf("listing %s has negative price %d", l.ID, l.Price)
	}

	_, err := r.db.Exec(
		`INSERT INTO listings (id, address, city, lat, lng, price, beds, baths, status, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.Address, l.City, l.Lat, l.Lng,
		l.Price, l.Beds, l.Baths, string(l.Status),
		l.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting listing %s: %w", l.ID, err)
	}

	return nil
}

// GetByID returns a listing by its identifier.
func (r *Repository) GetByID(id string) (*Listing, error) {
	query := fmt.Sprintf("SELECT %s FROM listings WHERE id = ?", selectColumns)
	row := r.db.QueryRow(query, id)

	l, err := scanListing(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("listing %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying listing %s: %w", id, err)
	}

	return l, nil
}

// buildConditions translates the filter fields into SQL conditions.
// Each present field narrows the match with AND; the text query matches
// the address case-insensitively as a substring.
func buildConditions(f SearchFilters) (conditions []string, args []interface{}) {
	if f.Query != "" {
		conditions = append(conditions, "address LIKE ?")
		args = append(args, "%"+f.Query+"%")
	}
	if f.MinPrice != nil {
		conditions = append(conditions, "price >= ?")
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		conditions = append(conditions, "price <= ?")
		args = append(args, *f.MaxPrice)
	}
	if f.BedsMin != nil {
		conditions = append(conditions, "beds >= ?")
		args = append(args, *f.BedsMin)
	}
	if f.BathsMin != nil {
		conditions = append(conditions, "baths >= ?")
		args = append(args, *f.BathsMin)
	}
	return conditions, args
}

// Search returns one page of listings matching the filters plus the total
// match count before pagination. Equal sort keys are broken by id ascending
// so pages are deterministic.
func (r *Repository) Search(f SearchFilters) (items []*Listing, total int, err error) {
	f = f.normalized()

	conditions, args := buildConditions(f)
	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT COUNT(*) FROM listings" + where
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting listings: %w", err)
	}

	direction := "DESC"
	if f.SortOrder == SortAsc {
		direction = "ASC"
	}
	orderBy := fmt.Sprintf(" ORDER BY %s %s, id ASC", string(f.SortBy), direction)

	query := fmt.Sprintf("SELECT %s FROM listings%s%s LIMIT ? OFFSET ?", selectColumns, where, orderBy)
	pageArgs := append(append([]interface{}{}, args...), f.Limit, f.offset())

	rows, err := r.db.Query(query, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("searching listings: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning listing: %w", err)
		}
		items = append(items, l)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating listings: %w", err)
	}

	return items, total, nil
}

// All returns every listing in the catalog, ordered by id.
// Used by the proximity search, which ranks the full catalog by distance.
func (r *Repository) All() ([]*Listing, error) {
	return r.scanMany(fmt.Sprintf("SELECT %s FROM listings ORDER BY id", selectColumns))
}

// Sample returns up to n listings ordered by id. The update simulator
// draws its random pick from this bounded set.
func (r *Repository) Sample(n int) ([]*Listing, error) {
	if n <= 0 {
		return nil, nil
	}
	return r.scanMany(
		fmt.Sprintf("SELECT %s FROM listings ORDER BY id LIMIT ?", selectColumns), n,
	)
}

func (r *Repository) scanMany(query string, args ...interface{}) (items []*Listing, err error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying listings: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning listing: %w", err)
		}
		items = append(items, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating listings: %w", err)
	}

	return items, nil
}

// UpdatePrice sets a listing's price and bumps its updated_at timestamp.
func (r *Repository) UpdatePrice(id string, price int64, updatedAt time.Time) error {
	if price < 0 {
		return fmt.Errorf("price must be non-negative, got %d", price)
	}

	result, err := r.db.Exec(
		"UPDATE listings SET price = ?, updated_at = ? WHERE id = ?",
		price, updatedAt.UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return fmt.Errorf("updating price: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("listing %s not found", id)
	}

	return nil
}

// Count returns the number of listings in the catalog.
func (r *Repository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM listings").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting listings: %w", err)
	}
	return n, nil
}

// DeleteAll removes every listing. Used when reseeding the catalog.
func (r *Repository) DeleteAll() error {
	if _, err := r.db.Exec("DELETE FROM listings"); err != nil {
		return fmt.Errorf("clearing listings: %w", err)
	}
	return nil
}
