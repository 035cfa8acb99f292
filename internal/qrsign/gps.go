package qrsign

import (
	"fmt"
	"math"
)

// earthRadiusM is the mean Earth radius used by the haversine formula.
const earthRadiusM = 6371000.0

// DefaultGPSRadiusM is the allowed worker-to-restaurant distance when the
// deployment does not configure its own.
const DefaultGPSRadiusM = 200.0

// Coordinate is a WGS84 point in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GPSResult reports the proximity gate outcome; DistanceM is always filled so
// a rejected worker sees how far off they were.
type GPSResult struct {
	Valid     bool
	DistanceM float64
	ErrorCode string
	Message   string
}

// ValidateGPS runs after signature validation and rejects scans farther from
// the restaurant than radiusMeters (DefaultGPSRadiusM when <= 0).
func ValidateGPS(worker, restaurant Coordinate, radiusMeters float64) GPSResult {
	if radiusMeters <= 0 {
		radiusMeters = DefaultGPSRadiusM
	}
	d := HaversineDistance(worker, restaurant)
	rounded := math.Round(d)
	if d > radiusMeters {
		return GPSResult{
			DistanceM: rounded,
			ErrorCode: CodeGPSOutOfRange,
			Message:   fmt.Sprintf("you are %.0fm from the restaurant (allowed %.0fm)", rounded, radiusMeters),
		}
	}
	return GPSResult{Valid: true, DistanceM: rounded}
}

// HaversineDistance returns the great-circle distance between two points in
// meters.
func HaversineDistance(a, b Coordinate) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusM * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
