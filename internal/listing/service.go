package listing

import (
	"sort"

	"github.com/propwatch/propwatch/internal/geo"
)

// Service provides catalog searches that need more than a single SQL query.
type Service struct {
	repo *Repository
}

// NewService creates a listing service backed by the given repository.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Nearby returns the listings within radiusKm of the given point, closest
// first, truncated to limit. Equal distances are broken by id ascending.
// A non-positive radius or limit yields an empty result.
//
// This ranks the full catalog per query, which is fine at the catalog
// sizes this system serves.
func (s *Service) Nearby(lat, lng, radiusKm float64, limit int) ([]*Listing, error) {
	if radiusKm <= 0 || limit <= 0 {
		return []*Listing{}, nil
	}

	all, err := s.repo.All()
	if err != nil {
		return nil, err
	}

	type candidate struct {
		listing  *Listing
		distance float64
	}

	var within []candidate
	for _, l := range all {
		d := geo.Distance(lat, lng, l.Lat, l.Lng)
		if d <= radiusKm {
			within = append(within, candidate{listing: l, distance: d})
		}
	}

	sort.Slice(within, func(i, j int) bool {
		if within[i].distance != within[j].distance {
			return within[i].distance < within[j].distance
		}
		return within[i].listing.ID < within[j].listing.ID
	})

	if len(within) > limit {
		within = within[:limit]
	}

	items := make([]*Listing, len(within))
	for i, c := range within {
		items[i] = c.listing
	}

	return items, nil
}
