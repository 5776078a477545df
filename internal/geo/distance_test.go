package geo

import (
	"math"
	"testing"
)

func TestDistanceZeroForSamePoint(t *testing.T) {
	d := Distance(25.2048, 55.2708, 25.2048, 55.2708)
	if d > 1e-9 {
		t.Errorf("distance to self = %f, want 0", d)
	}
}

func TestDistanceSymmetric(t *testing.T) {
	pairs := [][4]float64{
		{25.2048, 55.2708, 25.0657, 55.1713},
		{51.5007, -0.1246, 48.8530, 2.2945},
		{-33.8688, 151.2093, 35.6762, 139.6503},
		{0, 0, 0, 180},
	}

	for _, p := range pairs {
		ab := Distance(p[0], p[1], p[2], p[3])
		ba := Distance(p[2], p[3], p[0], p[1])
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("Distance(%v) = %f but reversed = %f", p, ab, ba)
		}
	}
}

func TestDistanceKnownValues(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		wantKm                 float64
		tolerance              float64
	}{
		{"london to paris", 51.5007, -0.1246, 48.8530, 2.2945, 334.5, 1.0},
		{"downtown dubai to marina", 25.2048, 55.2708, 25.0805, 55.1403, 19.1, 0.5},
		{"quarter of equator", 0, 0, 0, 90, 10007.5, 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("distance = %.2f km, want %.2f ± %.2f", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestDistanceMonotoneWithSeparation(t *testing.T) {
	// Walking east along a parallel, distance from the origin point
	// must be non-decreasing.
	prev := 0.0
	for lng := 0.1; lng <= 10; lng += 0.1 {
		d := Distance(25.0, 55.0, 25.0, 55.0+lng)
		if d < prev {
			t.Fatalf("distance decreased at lng offset %.1f: %f < %f", lng, d, prev)
		}
		prev = d
	}
}
