// Package geo provides the geocoding capability and great-circle distance
// used by location scoring.
package geo

import (
	"context"
	"math"
)

// Point is a geographic coordinate.
type Point struct {
	Latitude  float64
	Longitude float64
}

// Geocoder resolves a location string to coordinates. A nil point with a
// nil error means the location could not be resolved; errors cover
// transport and provider failures. Callers treat both the same way:
// fall back to string comparison.
type Geocoder interface {
	Geocode(ctx context.Context, location string) (*Point, error)
}

const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two points in
// kilometers (haversine formula).
func DistanceKm(a, b Point) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
