package stream

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/propwatch/propwatch/internal/db"
	"github.com/propwatch/propwatch/internal/listing"
)

func TestTickPerturbsPriceWithinBounds(t *testing.T) {
	repo := testCatalog(t, 2000000)
	sim := NewSimulator(repo)

	for i := 0; i < 20; i++ {
		before, err := repo.GetByID("lst-0")
		if err != nil {
			t.Fatalf("get: %v", err)
		}

		updated, err := sim.Tick()
		if err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
		if updated == nil {
			t.Fatal("tick returned nil listing for non-empty catalog")
		}

		delta := updated.Price - before.Price
		if delta > maxPriceDelta || delta < -maxPriceDelta {
			t.Errorf("tick %d: delta %d exceeds ±%d", i, delta, maxPriceDelta)
		}
		if updated.Price < priceFloor {
			t.Errorf("tick %d: price %d below floor %d", i, updated.Price, priceFloor)
		}
	}
}

func TestTickEnforcesPriceFloor(t *testing.T) {
	repo := testCatalog(t, 60000) // close enough to the floor to hit it
	sim := NewSimulator(repo)

	for i := 0; i < 50; i++ {
		updated, err := sim.Tick()
		if err != nil {
			t.Fatalf("tick: %v", err)
		}
		if updated.Price < priceFloor {
			t.Fatalf("price %d dropped below floor %d", updated.Price, priceFloor)
		}
	}
}

func TestTickBumpsUpdatedAt(t *testing.T) {
	repo := testCatalog(t, 2000000)
	sim := NewSimulator(repo)

	before, err := repo.GetByID("lst-0")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	updated, err := sim.Tick()
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if updated.UpdatedAt.Before(before.UpdatedAt) {
		t.Errorf("updated_at went backwards: %v -> %v", before.UpdatedAt, updated.UpdatedAt)
	}
}

func TestTickEmptyCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	d, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	})

	sim := NewSimulator(listing.NewRepository(d))
	updated, err := sim.Tick()
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if updated != nil {
		t.Errorf("updated = %v, want nil for empty catalog", updated)
	}
}

// closedCatalog returns a repository whose database is already closed, so
// every operation on it fails.
func closedCatalog(t *testing.T) *listing.Repository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "closed.db")
	d, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("close db: %v", err)
	}
	return listing.NewRepository(d)
}

// testCatalog creates a catalog with a single listing at the given price.
func testCatalog(t *testing.T, price int64) *listing.Repository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	d, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	})

	repo := listing.NewRepository(d)
	l := &listing.Listing{
		ID:        "lst-0",
		Address:   "12 Harbour Street",
		City:      "Dubai",
		Lat:       25.2048,
		Lng:       55.2708,
		Price:     price,
		Beds:      2,
		Baths:     1,
		Status:    listing.StatusForSale,
		UpdatedAt: time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC),
	}
	if err := repo.Insert(l); err != nil {
		t.Fatalf("insert: %v", err)
	}
	return repo
}
