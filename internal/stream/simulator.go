package stream

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/propwatch/propwatch/internal/listing"
)

const (
	// sampleSize bounds how much of the catalog the simulator draws from.
	sampleSize = 100
	// maxPriceDelta is the largest single perturbation in either direction.
	maxPriceDelta = 50000
	// priceFloor is the lowest price a perturbation may produce.
	priceFloor = 50000
)

// Simulator stands in for an external mutation source: each tick it picks
// one listing from a bounded sample of the catalog, perturbs its price,
// persists the change, and returns the re-read record. A production
// system would subscribe to a real mutation log instead.
type Simulator struct {
	repo *listing.Repository
	rng  *rand.Rand
}

// NewSimulator creates a simulator over the given catalog.
func NewSimulator(repo *listing.Repository) *Simulator {
	return &Simulator{
		repo: repo,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Tick performs one simulated mutation and returns the updated listing as
// re-read from the store. An empty catalog returns (nil, nil).
func (s *Simulator) Tick() (*listing.Listing, error) {
	sample, err := s.repo.Sample(sampleSize)
	if err != nil {
		return nil, fmt.Errorf("sampling catalog: %w", err)
	}
	if len(sample) == 0 {
		return nil, nil
	}

	pick := sample[s.rng.Intn(len(sample))]

	delta := int64(s.rng.Intn(2*maxPriceDelta+1) - maxPriceDelta)
	newPrice := pick.Price + delta
	if newPrice < priceFloor {
		newPrice = priceFloor
	}

	if err := s.repo.UpdatePrice(pick.ID, newPrice, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("persisting simulated update: %w", err)
	}

	updated, err := s.repo.GetByID(pick.ID)
	if err != nil {
		return nil, fmt.Errorf("re-reading updated listing: %w", err)
	}

	return updated, nil
}
