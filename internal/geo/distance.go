package geo

import (
	"context"
	"errors"
	"math"
)

var (
	// ErrPlaceNotFound means an endpoint resolved to zero candidates
	ErrPlaceNotFound = errors.New("place could not be resolved")
	// ErrGeocodingUnavailable means the geocoding service failed or timed out
	ErrGeocodingUnavailable = errors.New("geocoding service unavailable")
)

// DistanceEstimator computes great-circle distance between two free-text
// place names. Each endpoint is resolved independently with no retries; a
// single adapter failure surfaces as an error, never a panic.
type DistanceEstimator struct {
	geocoder Geocoder
}

// NewDistanceEstimator creates a distance estimator
func NewDistanceEstimator(geocoder Geocoder) *DistanceEstimator {
	return &DistanceEstimator{geocoder: geocoder}
}

// Distance returns the great-circle distance in kilometers between origin
// and destination, rounded to 2 decimal places.
func (e *DistanceEstimator) Distance(ctx context.Context, origin, destination string) (float64, error) {
	from, status := e.geocoder.Resolve(ctx, origin)
	if status != StatusFound {
		return 0, statusErr(status)
	}

	to, status := e.geocoder.Resolve(ctx, destination)
	if status != StatusFound {
		return 0, statusErr(status)
	}

	return round2(haversineKm(from.Lat, from.Lon, to.Lat, to.Lon)), nil
}

func statusErr(status ResolveStatus) error {
	if status == StatusUnavailable {
		return ErrGeocodingUnavailable
	}
	return ErrPlaceNotFound
}

// haversineKm computes great-circle distance on a spherical earth
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371.0
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
