package listing

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed seed_data.json
var seedData []byte

// Seed replaces the catalog contents with the embedded sample listings and
// returns how many were inserted.
func Seed(repo *Repository) (int, error) {
	var items []*Listing
	if err := json.Unmarshal(seedData, &items); err != nil {
		return 0, fmt.Errorf("parsing seed data: %w", err)
	}

	if err := repo.DeleteAll(); err != nil {
		return 0, err
	}

	for _, l := range items {
		if err := repo.Insert(l); err != nil {
			return 0, err
		}
	}

	return len(items), nil
}
