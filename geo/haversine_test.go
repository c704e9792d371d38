package geo

import (
	"math"
	"testing"
)

func TestHaversineKmZeroForSamePoint(t *testing.T) {
	pts := []Coordinate{
		{Latitude: 0, Longitude: 0},
		{Latitude: 28.6139, Longitude: 77.2090},
		{Latitude: -33.8688, Longitude: 151.2093},
	}
	for _, p := range pts {
		if d := HaversineKm(p, p); d != 0 {
			t.Fatalf("expected 0 for identical points %+v, got %f", p, d)
		}
	}
}

func TestHaversineKmSymmetric(t *testing.T) {
	a := Coordinate{Latitude: 28.6139, Longitude: 77.2090}
	b := Coordinate{Latitude: 28.6129, Longitude: 77.2080}

	ab := HaversineKm(a, b)
	ba := HaversineKm(b, a)
	if math.Abs(ab-ba) > 1e-9 {
		t.Fatalf("expected symmetric distance, got %f vs %f", ab, ba)
	}
	if ab < 0 {
		t.Fatalf("expected non-negative distance, got %f", ab)
	}
}

func TestHaversineKmKnownDistances(t *testing.T) {
	cases := []struct {
		name      string
		a, b      Coordinate
		wantKm    float64
		tolerance float64
	}{
		{
			name:      "neighbouring blocks in Delhi",
			a:         Coordinate{Latitude: 28.6139, Longitude: 77.2090},
			b:         Coordinate{Latitude: 28.6129, Longitude: 77.2080},
			wantKm:    0.148,
			tolerance: 0.01,
		},
		{
			name:      "Delhi to Mumbai",
			a:         Coordinate{Latitude: 28.6139, Longitude: 77.2090},
			b:         Coordinate{Latitude: 19.0760, Longitude: 72.8777},
			wantKm:    1153,
			tolerance: 15,
		},
		{
			name:      "one degree of longitude at the equator",
			a:         Coordinate{Latitude: 0, Longitude: 0},
			b:         Coordinate{Latitude: 0, Longitude: 1},
			wantKm:    111.19,
			tolerance: 0.1,
		},
	}

	for _, tc := range cases {
		got := HaversineKm(tc.a, tc.b)
		if math.Abs(got-tc.wantKm) > tc.tolerance {
			t.Fatalf("%s: expected ~%f km, got %f", tc.name, tc.wantKm, got)
		}
	}
}
